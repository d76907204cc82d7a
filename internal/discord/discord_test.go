package discord

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/mmeshcher/marketplace-bot/internal/command"
	"github.com/mmeshcher/marketplace-bot/internal/format"
	"github.com/mmeshcher/marketplace-bot/internal/model"
)

func TestCapabilitiesFromPermissions(t *testing.T) {
	tests := []struct {
		name  string
		perms int64
		want  model.Capability
	}{
		{"none", 0, 0},
		{"send only", discordgo.PermissionSendMessages, 0},
		{"administrator", discordgo.PermissionAdministrator, model.CapabilityAdministrator},
		{"manage server", discordgo.PermissionManageServer, model.CapabilityManageGuild},
		{"manage messages", discordgo.PermissionManageMessages, model.CapabilityManageMessages},
		{
			"all",
			discordgo.PermissionAdministrator | discordgo.PermissionManageServer | discordgo.PermissionManageMessages,
			model.CapabilityAdministrator | model.CapabilityManageGuild | model.CapabilityManageMessages,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, capabilitiesFromPermissions(tt.perms))
		})
	}
}

func productInteraction() *discordgo.Interaction {
	return &discordgo.Interaction{
		ID:        "i-1",
		Type:      discordgo.InteractionApplicationCommand,
		ChannelID: "chan-1",
		Member: &discordgo.Member{
			User:        &discordgo.User{ID: "U1", Username: "seller", Discriminator: "0"},
			Permissions: discordgo.PermissionManageServer,
		},
		Data: discordgo.ApplicationCommandInteractionData{
			Name: command.NameProduct,
			Options: []*discordgo.ApplicationCommandInteractionDataOption{
				{Name: "title", Type: discordgo.ApplicationCommandOptionString, Value: "Netflix"},
				{Name: "percent", Type: discordgo.ApplicationCommandOptionInteger, Value: float64(15)},
				{Name: "seller", Type: discordgo.ApplicationCommandOptionUser, Value: "U7"},
				{Name: "image", Type: discordgo.ApplicationCommandOptionAttachment, Value: "att-1"},
			},
			Resolved: &discordgo.ApplicationCommandInteractionDataResolved{
				Attachments: map[string]*discordgo.MessageAttachment{
					"att-1": {ID: "att-1", URL: "https://cdn.example/img.png"},
				},
			},
		},
	}
}

func TestInvocationFromInteraction(t *testing.T) {
	inv := invocationFromInteraction(productInteraction())

	assert.Equal(t, command.NameProduct, inv.Name)
	assert.Equal(t, "chan-1", inv.ChannelID)
	assert.Equal(t, "U1", inv.Actor.ID)
	assert.Equal(t, "seller", inv.Actor.Tag)
	assert.NotEmpty(t, inv.Actor.AvatarURL)
	assert.Equal(t, model.CapabilityManageGuild, inv.Actor.Capabilities)

	assert.Equal(t, "Netflix", inv.Options.String("title"))
	assert.Equal(t, "U7", inv.Options.String("seller"))
	assert.Equal(t, "https://cdn.example/img.png", inv.Options.String("image"))
	percent, ok := inv.Options.Int("percent")
	require.True(t, ok)
	assert.Equal(t, int64(15), percent)
}

func TestInvocationFromInteraction_DirectUserHasNoCapabilities(t *testing.T) {
	i := &discordgo.Interaction{
		Type: discordgo.InteractionApplicationCommand,
		User: &discordgo.User{ID: "U2", Username: "buyer", Discriminator: "0"},
		Data: discordgo.ApplicationCommandInteractionData{
			Name: command.NameVouch,
			Options: []*discordgo.ApplicationCommandInteractionDataOption{
				{Name: "image", Type: discordgo.ApplicationCommandOptionAttachment, Value: "missing"},
			},
		},
	}

	inv := invocationFromInteraction(i)
	assert.Equal(t, "U2", inv.Actor.ID)
	assert.Zero(t, inv.Actor.Capabilities)
	assert.Empty(t, inv.Options.String("image"))
}

func TestEmbedFromMessage(t *testing.T) {
	at := time.Date(2025, 3, 1, 12, 30, 0, 0, time.FixedZone("MSK", 3*3600))
	msg := format.Message{
		Color:       format.AccentColor,
		Title:       "✅ New Vouch Submitted",
		Description: "desc",
		Author:      &format.Author{Name: "buyer", IconURL: "https://cdn/avatar.png"},
		Fields: []format.Field{
			{Name: "🧑 Seller", Value: "<@U1>", Inline: true},
			{Name: "💬 Comment", Value: "great"},
		},
		ImageURL:  format.DefaultBannerURL,
		Timestamp: at,
		Footer:    "Vouch by buyer",
	}

	e := embedFromMessage(msg)

	assert.Equal(t, format.AccentColor, e.Color)
	assert.Equal(t, "✅ New Vouch Submitted", e.Title)
	assert.Equal(t, "desc", e.Description)
	assert.Equal(t, "2025-03-01T09:30:00Z", e.Timestamp)
	require.NotNil(t, e.Footer)
	assert.Equal(t, "Vouch by buyer", e.Footer.Text)
	require.NotNil(t, e.Image)
	assert.Equal(t, format.DefaultBannerURL, e.Image.URL)
	require.NotNil(t, e.Author)
	assert.Equal(t, "buyer", e.Author.Name)
	assert.Equal(t, "https://cdn/avatar.png", e.Author.IconURL)
	require.Len(t, e.Fields, 2)
	assert.True(t, e.Fields[0].Inline)
	assert.False(t, e.Fields[1].Inline)
	assert.Equal(t, "great", e.Fields[1].Value)
}

func TestEmbedFromMessage_OmitsEmptyParts(t *testing.T) {
	e := embedFromMessage(format.Message{Title: "t"})

	assert.Empty(t, e.Timestamp)
	assert.Nil(t, e.Footer)
	assert.Nil(t, e.Image)
	assert.Nil(t, e.Author)
	assert.Empty(t, e.Fields)
}

func TestApplicationCommands(t *testing.T) {
	cmds := applicationCommands(command.Definitions())
	require.Len(t, cmds, len(command.Definitions()))

	byName := make(map[string]*discordgo.ApplicationCommand, len(cmds))
	for _, c := range cmds {
		byName[c.Name] = c
	}

	vouch := byName[command.NameVouch]
	require.NotNil(t, vouch)
	assert.Nil(t, vouch.DefaultMemberPermissions)
	require.Len(t, vouch.Options, 5)
	assert.Equal(t, discordgo.ApplicationCommandOptionUser, vouch.Options[0].Type)
	assert.True(t, vouch.Options[0].Required)
	require.Len(t, vouch.Options[1].Choices, 5)
	assert.Equal(t, "5", vouch.Options[1].Choices[4].Value)

	product := byName[command.NameProduct]
	require.NotNil(t, product)
	assert.Equal(t, discordgo.ApplicationCommandOptionAttachment, product.Options[5].Type)
	assert.False(t, product.Options[5].Required)

	coupon := byName[command.NameCouponCreate]
	require.NotNil(t, coupon)
	require.NotNil(t, coupon.DefaultMemberPermissions)
	assert.Equal(t, int64(discordgo.PermissionManageServer), *coupon.DefaultMemberPermissions)
	assert.Equal(t, discordgo.ApplicationCommandOptionInteger, coupon.Options[1].Type)
}

type overwriteCall struct {
	guildID string
	count   int
}

type stubRegistrar struct {
	calls  []overwriteCall
	failAt int
}

func (r *stubRegistrar) ApplicationCommandBulkOverwrite(appID, guildID string, cmds []*discordgo.ApplicationCommand, options ...discordgo.RequestOption) ([]*discordgo.ApplicationCommand, error) {
	r.calls = append(r.calls, overwriteCall{guildID: guildID, count: len(cmds)})
	if r.failAt == len(r.calls) {
		return nil, errors.New("missing access")
	}
	return cmds, nil
}

func TestRegisterCommands(t *testing.T) {
	cmds := applicationCommands(command.Definitions())
	logger := zaptest.NewLogger(t)

	tests := []struct {
		name    string
		guildID string
		failAt  int
		want    []overwriteCall
		wantErr bool
	}{
		{
			name:    "guild",
			guildID: "guild-1",
			want: []overwriteCall{
				{guildID: "", count: 0},
				{guildID: "guild-1", count: 0},
				{guildID: "guild-1", count: len(cmds)},
			},
		},
		{
			name: "global",
			want: []overwriteCall{
				{guildID: "", count: 0},
				{guildID: "", count: len(cmds)},
			},
		},
		{
			name:    "global clear fails",
			guildID: "guild-1",
			failAt:  1,
			want: []overwriteCall{
				{guildID: "", count: 0},
				{guildID: "guild-1", count: 0},
				{guildID: "guild-1", count: len(cmds)},
			},
		},
		{
			name:    "guild clear fails",
			guildID: "guild-1",
			failAt:  2,
			want: []overwriteCall{
				{guildID: "", count: 0},
				{guildID: "guild-1", count: 0},
				{guildID: "guild-1", count: len(cmds)},
			},
		},
		{
			name:    "register fails",
			guildID: "guild-1",
			failAt:  3,
			want: []overwriteCall{
				{guildID: "", count: 0},
				{guildID: "guild-1", count: 0},
				{guildID: "guild-1", count: len(cmds)},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := &stubRegistrar{failAt: tt.failAt}

			err := registerCommands(r, logger, "app", tt.guildID, cmds)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "register commands")
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tt.want, r.calls)
		})
	}
}

func TestOnReady_RegistersOnce(t *testing.T) {
	b := &Bot{
		guildID:  "guild-1",
		commands: applicationCommands(command.Definitions()),
		logger:   zaptest.NewLogger(t),
	}
	r := &stubRegistrar{}
	ready := &discordgo.Ready{User: &discordgo.User{ID: "app", Username: "marketbot", Discriminator: "0"}}

	b.onReady(r, ready)
	b.onReady(r, ready)

	require.Len(t, r.calls, 3)
	assert.Equal(t, len(b.commands), r.calls[2].count)
}

type stubResponder struct {
	deferred   *discordgo.InteractionResponse
	edit       *discordgo.WebhookEdit
	respondErr error
}

func (r *stubResponder) InteractionRespond(i *discordgo.Interaction, resp *discordgo.InteractionResponse, options ...discordgo.RequestOption) error {
	r.deferred = resp
	return r.respondErr
}

func (r *stubResponder) InteractionResponseEdit(i *discordgo.Interaction, edit *discordgo.WebhookEdit, options ...discordgo.RequestOption) (*discordgo.Message, error) {
	r.edit = edit
	return &discordgo.Message{}, nil
}

type stubDispatcher struct {
	got  command.Invocation
	resp command.Response
}

func (d *stubDispatcher) Dispatch(ctx context.Context, inv command.Invocation) command.Response {
	d.got = inv
	return d.resp
}

func TestHandleInteraction(t *testing.T) {
	b := &Bot{logger: zaptest.NewLogger(t)}

	t.Run("text reply", func(t *testing.T) {
		r := &stubResponder{}
		d := &stubDispatcher{resp: command.Response{Content: "✅ Product removed."}}

		b.handleInteraction(context.Background(), r, d, productInteraction())

		require.NotNil(t, r.deferred)
		assert.Equal(t, discordgo.InteractionResponseDeferredChannelMessageWithSource, r.deferred.Type)
		assert.Equal(t, discordgo.MessageFlagsEphemeral, r.deferred.Data.Flags)
		assert.Equal(t, command.NameProduct, d.got.Name)

		require.NotNil(t, r.edit)
		require.NotNil(t, r.edit.Content)
		assert.Equal(t, "✅ Product removed.", *r.edit.Content)
		assert.Nil(t, r.edit.Embeds)
	})

	t.Run("embed reply", func(t *testing.T) {
		r := &stubResponder{}
		help := format.Help([]format.HelpLine{{Command: "help", Summary: "Show this help embed"}})
		d := &stubDispatcher{resp: command.Response{Embed: &help}}

		b.handleInteraction(context.Background(), r, d, productInteraction())

		require.NotNil(t, r.edit)
		assert.Nil(t, r.edit.Content)
		require.NotNil(t, r.edit.Embeds)
		require.Len(t, *r.edit.Embeds, 1)
		assert.Equal(t, "🆘 Bot Help", (*r.edit.Embeds)[0].Title)
	})

	t.Run("defer fails", func(t *testing.T) {
		r := &stubResponder{respondErr: errors.New("unknown interaction")}
		d := &stubDispatcher{}

		b.handleInteraction(context.Background(), r, d, productInteraction())

		assert.Empty(t, d.got.Name)
		assert.Nil(t, r.edit)
	})
}
