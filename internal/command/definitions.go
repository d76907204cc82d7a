package command

import "github.com/mmeshcher/marketplace-bot/internal/format"

// Имена команд.
const (
	NameVouch          = "vouch"
	NameProduct        = "product"
	NamePromo          = "promo"
	NameFeatureProduct = "featureproduct"
	NameRemoveProduct  = "removeproduct"
	NameRemoveVouch    = "removevouch"
	NameAnnounce       = "announce"
	NameCouponCreate   = "coupon-create"
	NameHelp           = "help"
)

// OptionType описывает тип значения опции команды.
type OptionType int

const (
	OptionString OptionType = iota
	OptionInteger
	OptionUser
	OptionAttachment
)

// Choice описывает один из допустимых вариантов значения опции.
type Choice struct {
	Name  string
	Value string
}

// OptionDefinition описывает опцию команды.
type OptionDefinition struct {
	Name        string
	Description string
	Type        OptionType
	Required    bool
	Choices     []Choice
}

// Definition описывает команду для регистрации на платформе и для справки.
type Definition struct {
	Name        string
	Description string
	Summary     string
	Options     []OptionDefinition
	AdminOnly   bool
}

var definitions = []Definition{
	{
		Name:        NameVouch,
		Description: "Submit a vouch for a seller",
		Summary:     "Submit a seller vouch",
		Options: []OptionDefinition{
			{Name: "seller", Description: "Seller you vouch for", Type: OptionUser, Required: true},
			{Name: "rating", Description: "Rating 1-5", Type: OptionString, Required: true, Choices: []Choice{
				{Name: "⭐ (1)", Value: "1"},
				{Name: "⭐⭐ (2)", Value: "2"},
				{Name: "⭐⭐⭐ (3)", Value: "3"},
				{Name: "⭐⭐⭐⭐ (4)", Value: "4"},
				{Name: "⭐⭐⭐⭐⭐ (5)", Value: "5"},
			}},
			{Name: "product", Description: "Product/account name", Type: OptionString, Required: true},
			{Name: "price", Description: "Price paid (optional)", Type: OptionString},
			{Name: "message", Description: "Comment (optional)", Type: OptionString},
		},
	},
	{
		Name:        NameProduct,
		Description: "Show a product for sale (posts in current channel)",
		Summary:     "Post a product with optional image",
		Options: []OptionDefinition{
			{Name: "title", Description: "Product title", Type: OptionString, Required: true},
			{Name: "description", Description: "Product description", Type: OptionString, Required: true},
			{Name: "features", Description: "Comma-separated features", Type: OptionString, Required: true},
			{Name: "price", Description: "Product price text", Type: OptionString, Required: true},
			{Name: "buy_link", Description: "URL or channel ID / message link", Type: OptionString, Required: true},
			{Name: "image", Description: "Upload product image", Type: OptionAttachment},
		},
	},
	{
		Name:        NamePromo,
		Description: "Post a short promo (image optional)",
		Summary:     "Short promotional post",
		Options: []OptionDefinition{
			{Name: "title", Description: "Promo title", Type: OptionString, Required: true},
			{Name: "content", Description: "Short content", Type: OptionString, Required: true},
			{Name: "image", Description: "Promo image", Type: OptionAttachment},
		},
	},
	{
		Name:        NameFeatureProduct,
		Description: "(Admin) Toggle product featured by ID",
		Summary:     "Admin: feature product",
		Options: []OptionDefinition{
			{Name: "id", Description: "Product ID", Type: OptionString, Required: true},
		},
		AdminOnly: true,
	},
	{
		Name:        NameRemoveProduct,
		Description: "(Admin) Remove a product by ID",
		Summary:     "Admin: remove product",
		Options: []OptionDefinition{
			{Name: "id", Description: "Product ID", Type: OptionString, Required: true},
		},
		AdminOnly: true,
	},
	{
		Name:        NameRemoveVouch,
		Description: "(Admin) Remove a vouch by ID",
		Summary:     "Admin: remove vouch",
		Options: []OptionDefinition{
			{Name: "id", Description: "Vouch ID", Type: OptionString, Required: true},
		},
		AdminOnly: true,
	},
	{
		Name:        NameAnnounce,
		Description: "(Admin) Post announcement in channel",
		Summary:     "Admin: post announcement",
		Options: []OptionDefinition{
			{Name: "title", Description: "Title", Type: OptionString, Required: true},
			{Name: "content", Description: "Content", Type: OptionString, Required: true},
		},
		AdminOnly: true,
	},
	{
		Name:        NameCouponCreate,
		Description: "(Admin) Create discount coupon",
		Summary:     "Admin: create discount coupon",
		Options: []OptionDefinition{
			{Name: "code", Description: "Coupon code", Type: OptionString, Required: true},
			{Name: "percent", Description: "% off", Type: OptionInteger, Required: true},
		},
		AdminOnly: true,
	},
	{
		Name:        NameHelp,
		Description: "Show help about commands",
		Summary:     "Show this help embed",
	},
}

// Definitions возвращает описание всех команд бота в порядке регистрации.
func Definitions() []Definition {
	out := make([]Definition, len(definitions))
	copy(out, definitions)
	return out
}

func helpLines() []format.HelpLine {
	lines := make([]format.HelpLine, 0, len(definitions))
	for _, d := range definitions {
		lines = append(lines, format.HelpLine{Command: d.Name, Summary: d.Summary})
	}
	return lines
}
