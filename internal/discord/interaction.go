package discord

import (
	"github.com/bwmarrin/discordgo"

	"github.com/mmeshcher/marketplace-bot/internal/command"
	"github.com/mmeshcher/marketplace-bot/internal/model"
)

func capabilitiesFromPermissions(perms int64) model.Capability {
	var caps model.Capability
	if perms&discordgo.PermissionAdministrator != 0 {
		caps |= model.CapabilityAdministrator
	}
	if perms&discordgo.PermissionManageServer != 0 {
		caps |= model.CapabilityManageGuild
	}
	if perms&discordgo.PermissionManageMessages != 0 {
		caps |= model.CapabilityManageMessages
	}
	return caps
}

func actorFromInteraction(i *discordgo.Interaction) model.Actor {
	user := i.User
	var perms int64
	if i.Member != nil {
		user = i.Member.User
		perms = i.Member.Permissions
	}
	if user == nil {
		return model.Actor{}
	}

	return model.Actor{
		ID:           user.ID,
		Tag:          user.String(),
		AvatarURL:    user.AvatarURL(""),
		Capabilities: capabilitiesFromPermissions(perms),
	}
}

// invocationFromInteraction приводит данные slash-команды к вызову диспетчера.
// Вложения заменяются их URL, числа приводятся к int64.
func invocationFromInteraction(i *discordgo.Interaction) command.Invocation {
	data := i.ApplicationCommandData()

	opts := make(command.Options, len(data.Options))
	for _, o := range data.Options {
		switch v := o.Value.(type) {
		case float64:
			opts[o.Name] = int64(v)
		case string:
			if o.Type == discordgo.ApplicationCommandOptionAttachment {
				opts[o.Name] = attachmentURL(data.Resolved, v)
				continue
			}
			opts[o.Name] = v
		default:
			opts[o.Name] = v
		}
	}

	return command.Invocation{
		Name:      data.Name,
		Actor:     actorFromInteraction(i),
		ChannelID: i.ChannelID,
		Options:   opts,
	}
}

func attachmentURL(resolved *discordgo.ApplicationCommandInteractionDataResolved, id string) string {
	if resolved == nil {
		return ""
	}
	a, ok := resolved.Attachments[id]
	if !ok || a == nil {
		return ""
	}
	return a.URL
}
