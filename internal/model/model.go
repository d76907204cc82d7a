// Package model содержит доменные сущности маркетплейс-бота.
package model

import "time"

const (
	// VouchMessagePlaceholder подставляется вместо пустого комментария к отзыву.
	VouchMessagePlaceholder = "—"
	// MaxFeatures ограничивает число пунктов в списке особенностей товара.
	MaxFeatures = 20
)

// Vouch описывает отзыв покупателя о продавце.
type Vouch struct {
	ID        string    `json:"id"`
	AuthorID  string    `json:"authorId"`
	SellerID  string    `json:"sellerId"`
	Rating    int       `json:"rating"`
	Product   string    `json:"product"`
	Price     string    `json:"price"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// RecordID возвращает идентификатор отзыва.
func (v Vouch) RecordID() string { return v.ID }

// Product описывает выставленный на продажу товар.
type Product struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Features    []string  `json:"features"`
	Price       string    `json:"price"`
	BuyLinkRaw  string    `json:"buyLinkRaw"`
	ImageURL    string    `json:"imageUrl"`
	AuthorID    string    `json:"authorId"`
	Timestamp   time.Time `json:"timestamp"`
	Featured    bool      `json:"featured"`
}

// RecordID возвращает идентификатор товара.
func (p Product) RecordID() string { return p.ID }

// Coupon описывает купон на скидку. Купоны не сохраняются.
type Coupon struct {
	ID        string    `json:"id"`
	Code      string    `json:"code"`
	Percent   int64     `json:"percent"`
	CreatedBy string    `json:"createdBy"`
	CreatedAt time.Time `json:"createdAt"`
}

// Capability описывает набор прав участника, выданных платформой.
type Capability uint32

const (
	CapabilityAdministrator Capability = 1 << iota
	CapabilityManageGuild
	CapabilityManageMessages
)

// Has сообщает, содержит ли набор хотя бы одно из указанных прав.
func (c Capability) Has(flags Capability) bool {
	return c&flags != 0
}

// Actor описывает пользователя, вызвавшего команду.
type Actor struct {
	ID           string
	Tag          string
	AvatarURL    string
	Capabilities Capability
}
