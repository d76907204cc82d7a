package discord

import (
	"context"
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/mmeshcher/marketplace-bot/internal/format"
)

type embedSender interface {
	ChannelMessageSendEmbed(channelID string, embed *discordgo.MessageEmbed, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

// Messenger публикует оформленные сообщения в каналы Discord.
type Messenger struct {
	sender embedSender
}

// NewMessenger создаёт Messenger поверх сессии Discord.
func NewMessenger(s *discordgo.Session) *Messenger {
	return &Messenger{sender: s}
}

// Send публикует сообщение в канал.
func (m *Messenger) Send(ctx context.Context, channelID string, msg format.Message) error {
	if _, err := m.sender.ChannelMessageSendEmbed(channelID, embedFromMessage(msg), discordgo.WithContext(ctx)); err != nil {
		return fmt.Errorf("send embed to channel %s: %w", channelID, err)
	}
	return nil
}

func embedFromMessage(msg format.Message) *discordgo.MessageEmbed {
	e := &discordgo.MessageEmbed{
		Type:        discordgo.EmbedTypeRich,
		Title:       msg.Title,
		Description: msg.Description,
		Color:       msg.Color,
	}

	if !msg.Timestamp.IsZero() {
		e.Timestamp = msg.Timestamp.UTC().Format(time.RFC3339)
	}
	if msg.Footer != "" {
		e.Footer = &discordgo.MessageEmbedFooter{Text: msg.Footer}
	}
	if msg.ImageURL != "" {
		e.Image = &discordgo.MessageEmbedImage{URL: msg.ImageURL}
	}
	if msg.Author != nil {
		e.Author = &discordgo.MessageEmbedAuthor{Name: msg.Author.Name, IconURL: msg.Author.IconURL}
	}
	for _, f := range msg.Fields {
		e.Fields = append(e.Fields, &discordgo.MessageEmbedField{Name: f.Name, Value: f.Value, Inline: f.Inline})
	}

	return e
}
