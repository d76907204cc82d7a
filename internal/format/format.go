// Package format собирает оформленные сообщения для публикации в каналах.
// Функции пакета чистые и ничего не знают о способе доставки.
package format

import (
	"strings"
	"time"

	"github.com/mmeshcher/marketplace-bot/internal/model"
	"github.com/mmeshcher/marketplace-bot/internal/validation"
)

const (
	// AccentColor задаёт фирменный неоново-зелёный цвет сообщений.
	AccentColor = 0x39ff14
	// DefaultBannerURL используется, если к сообщению не приложено изображение.
	DefaultBannerURL = "https://i.imgur.com/GjIQdYt.png"

	helpFooter = "Neon Green Marketplace Bot"
	emptyValue = "—"
)

// Author описывает строку автора над заголовком.
type Author struct {
	Name    string
	IconURL string
}

// Field описывает подписанное поле сообщения.
type Field struct {
	Name   string
	Value  string
	Inline bool
}

// Message описывает оформленное сообщение без привязки к платформе.
type Message struct {
	Color       int
	Title       string
	Description string
	Author      *Author
	Fields      []Field
	ImageURL    string
	Timestamp   time.Time
	Footer      string
}

// ImageOrBanner возвращает url или баннер по умолчанию, если url пуст.
func ImageOrBanner(url string) string {
	if url == "" {
		return DefaultBannerURL
	}
	return url
}

// Stars отображает оценку звёздами.
func Stars(rating int) string {
	return strings.Repeat("⭐", validation.ClampRating(rating))
}

// Vouch оформляет отзыв о продавце.
func Vouch(v model.Vouch, actor model.Actor) Message {
	price := "💰 " + emptyValue
	if v.Price != "" {
		price = "💰 " + v.Price
	}

	return Message{
		Color:  AccentColor,
		Title:  "✅ New Vouch Submitted",
		Author: &Author{Name: actor.Tag, IconURL: actor.AvatarURL},
		Fields: []Field{
			{Name: "🧑 Seller", Value: "<@" + v.SellerID + ">", Inline: true},
			{Name: "🌟 Rating", Value: Stars(v.Rating), Inline: true},
			{Name: "📦 Product", Value: v.Product, Inline: true},
			{Name: "💰 Price", Value: price, Inline: true},
			{Name: "💬 Comment", Value: v.Message},
			{Name: "🆔 Vouch ID", Value: v.ID, Inline: true},
		},
		ImageURL:  DefaultBannerURL,
		Timestamp: v.Timestamp,
		Footer:    "Vouch by " + actor.Tag,
	}
}

// Product оформляет карточку товара.
func Product(p model.Product, actor model.Actor) Message {
	title := "🛒 " + p.Title
	if p.Featured {
		title += " ⭐ Featured"
	}

	features := strings.Join(p.Features, "\n")
	if features == "" {
		features = emptyValue
	}

	return Message{
		Color:       AccentColor,
		Title:       title,
		Description: p.Description,
		Fields: []Field{
			{Name: "✨ Features", Value: features},
			{Name: "💰 Price", Value: p.Price, Inline: true},
			{Name: "🛒 Buy Here", Value: validation.ClassifyBuyLink(p.BuyLinkRaw).Display, Inline: true},
			{Name: "🆔 Product ID", Value: p.ID, Inline: true},
		},
		ImageURL:  ImageOrBanner(p.ImageURL),
		Timestamp: p.Timestamp,
		Footer:    "Product posted by " + actor.Tag,
	}
}

// Promo оформляет короткую промо-публикацию.
func Promo(title, content, imageURL string, actor model.Actor, at time.Time) Message {
	return Message{
		Color:       AccentColor,
		Title:       "🚀 " + title,
		Description: content,
		ImageURL:    ImageOrBanner(imageURL),
		Timestamp:   at,
		Footer:      "Promo by " + actor.Tag,
	}
}

// Announcement оформляет объявление администрации.
func Announcement(title, content string, actor model.Actor, at time.Time) Message {
	return Message{
		Color:       AccentColor,
		Title:       "📢 " + title,
		Description: content,
		ImageURL:    DefaultBannerURL,
		Timestamp:   at,
		Footer:      "Announcement by " + actor.Tag,
	}
}

// HelpLine описывает строку справки по одной команде.
type HelpLine struct {
	Command string
	Summary string
}

// Help оформляет справку по командам.
func Help(lines []HelpLine) Message {
	var b strings.Builder
	for i, l := range lines {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString("**/" + l.Command + "** — " + l.Summary)
	}

	return Message{
		Color:       AccentColor,
		Title:       "🆘 Bot Help",
		Description: b.String(),
		Footer:      helpFooter,
	}
}
