// Package discord связывает шлюз Discord с диспетчером команд и публикует сообщения в каналы.
package discord

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"

	"github.com/mmeshcher/marketplace-bot/internal/command"
)

const interactionTimeout = 15 * time.Second

// Dispatcher выполняет команду и возвращает ответ вызывающему.
type Dispatcher interface {
	Dispatch(ctx context.Context, inv command.Invocation) command.Response
}

type interactionResponder interface {
	InteractionRespond(interaction *discordgo.Interaction, resp *discordgo.InteractionResponse, options ...discordgo.RequestOption) error
	InteractionResponseEdit(interaction *discordgo.Interaction, newresp *discordgo.WebhookEdit, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

// Bot держит сессию шлюза и обслуживает slash-команды.
type Bot struct {
	session  *discordgo.Session
	guildID  string
	commands []*discordgo.ApplicationCommand
	logger   *zap.Logger

	registerOnce sync.Once
}

// New создаёт сессию бота. Соединение открывается в Run.
func New(token, guildID string, logger *zap.Logger) (*Bot, error) {
	s, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("create discord session: %w", err)
	}
	s.Identify.Intents = discordgo.IntentsGuilds | discordgo.IntentsGuildMessages

	return &Bot{
		session:  s,
		guildID:  guildID,
		commands: applicationCommands(command.Definitions()),
		logger:   logger,
	}, nil
}

// Messenger возвращает публикатор сообщений, работающий через сессию бота.
func (b *Bot) Messenger() *Messenger {
	return NewMessenger(b.session)
}

// Run открывает соединение со шлюзом и обслуживает команды до отмены ctx.
func (b *Bot) Run(ctx context.Context, d Dispatcher) error {
	removeReady := b.session.AddHandler(func(s *discordgo.Session, r *discordgo.Ready) {
		b.onReady(s, r)
	})
	defer removeReady()

	removeInteraction := b.session.AddHandler(func(s *discordgo.Session, i *discordgo.InteractionCreate) {
		if i.Type != discordgo.InteractionApplicationCommand {
			return
		}
		hctx, cancel := context.WithTimeout(ctx, interactionTimeout)
		defer cancel()
		b.handleInteraction(hctx, s, d, i.Interaction)
	})
	defer removeInteraction()

	if err := b.session.Open(); err != nil {
		return fmt.Errorf("open discord session: %w", err)
	}

	<-ctx.Done()

	if err := b.session.Close(); err != nil {
		return fmt.Errorf("close discord session: %w", err)
	}
	return nil
}

// onReady вызывается при каждом новом подключении к шлюзу, команды регистрируются только при первом.
func (b *Bot) onReady(reg commandRegistrar, r *discordgo.Ready) {
	b.logger.Info("logged in", zap.String("user", r.User.String()))

	b.registerOnce.Do(func() {
		if err := registerCommands(reg, b.logger, r.User.ID, b.guildID, b.commands); err != nil {
			b.logger.Error("failed to register commands", zap.String("guild", b.guildID), zap.Error(err))
			return
		}
		b.logger.Info("commands registered", zap.Int("count", len(b.commands)), zap.String("guild", b.guildID))
	})
}

func (b *Bot) handleInteraction(ctx context.Context, r interactionResponder, d Dispatcher, i *discordgo.Interaction) {
	err := r.InteractionRespond(i, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{Flags: discordgo.MessageFlagsEphemeral},
	}, discordgo.WithContext(ctx))
	if err != nil {
		b.logger.Error("failed to defer interaction", zap.String("interaction", i.ID), zap.Error(err))
		return
	}

	resp := d.Dispatch(ctx, invocationFromInteraction(i))

	edit := &discordgo.WebhookEdit{}
	if resp.Content != "" {
		edit.Content = &resp.Content
	}
	if resp.Embed != nil {
		edit.Embeds = &[]*discordgo.MessageEmbed{embedFromMessage(*resp.Embed)}
	}

	if _, err := r.InteractionResponseEdit(i, edit, discordgo.WithContext(ctx)); err != nil {
		b.logger.Error("failed to edit interaction reply", zap.String("interaction", i.ID), zap.Error(err))
	}
}
