package discord

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"

	"github.com/mmeshcher/marketplace-bot/internal/command"
)

// adminPermissions скрывает административные команды от участников без права управления сервером.
// Окончательную проверку прав выполняет сервис.
var adminPermissions int64 = discordgo.PermissionManageServer

var optionTypes = map[command.OptionType]discordgo.ApplicationCommandOptionType{
	command.OptionString:     discordgo.ApplicationCommandOptionString,
	command.OptionInteger:    discordgo.ApplicationCommandOptionInteger,
	command.OptionUser:       discordgo.ApplicationCommandOptionUser,
	command.OptionAttachment: discordgo.ApplicationCommandOptionAttachment,
}

func applicationCommands(defs []command.Definition) []*discordgo.ApplicationCommand {
	cmds := make([]*discordgo.ApplicationCommand, 0, len(defs))
	for _, d := range defs {
		cmd := &discordgo.ApplicationCommand{
			Name:        d.Name,
			Description: d.Description,
			Type:        discordgo.ChatApplicationCommand,
		}
		if d.AdminOnly {
			perms := adminPermissions
			cmd.DefaultMemberPermissions = &perms
		}

		for _, o := range d.Options {
			opt := &discordgo.ApplicationCommandOption{
				Type:        optionTypes[o.Type],
				Name:        o.Name,
				Description: o.Description,
				Required:    o.Required,
			}
			for _, c := range o.Choices {
				opt.Choices = append(opt.Choices, &discordgo.ApplicationCommandOptionChoice{
					Name:  c.Name,
					Value: c.Value,
				})
			}
			cmd.Options = append(cmd.Options, opt)
		}

		cmds = append(cmds, cmd)
	}
	return cmds
}

type commandRegistrar interface {
	ApplicationCommandBulkOverwrite(appID, guildID string, commands []*discordgo.ApplicationCommand, options ...discordgo.RequestOption) ([]*discordgo.ApplicationCommand, error)
}

// registerCommands очищает старые глобальные и серверные команды и регистрирует текущий набор.
// Без guildID команды регистрируются глобально. Ошибки очистки пишутся в журнал и не мешают регистрации.
func registerCommands(r commandRegistrar, logger *zap.Logger, appID, guildID string, cmds []*discordgo.ApplicationCommand) error {
	empty := []*discordgo.ApplicationCommand{}

	if _, err := r.ApplicationCommandBulkOverwrite(appID, "", empty); err != nil {
		logger.Warn("failed to clear global commands", zap.Error(err))
	}
	if guildID != "" {
		if _, err := r.ApplicationCommandBulkOverwrite(appID, guildID, empty); err != nil {
			logger.Warn("failed to clear guild commands", zap.String("guild", guildID), zap.Error(err))
		}
	}

	if _, err := r.ApplicationCommandBulkOverwrite(appID, guildID, cmds); err != nil {
		return fmt.Errorf("register commands: %w", err)
	}
	return nil
}
