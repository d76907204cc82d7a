// Package validation содержит функции валидации и нормализации входных данных команд.
package validation

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/mmeshcher/marketplace-bot/internal/model"
)

const (
	// MinRating задаёт минимальную оценку продавца.
	MinRating = 1
	// MaxRating соответствует пяти звёздам.
	MaxRating = 5

	// MinPercent задаёт минимальную скидку купона в процентах.
	MinPercent = 1
	// MaxPercent задаёт максимальную скидку купона в процентах.
	MaxPercent = 100

	featureBullet = "• "
)

var (
	// ErrInvalidRating возвращается, если оценку не удалось разобрать как целое число.
	ErrInvalidRating = errors.New("invalid rating")

	channelRefPattern = regexp.MustCompile(`^\d{17,19}$`)
	urlPattern        = regexp.MustCompile(`^https?://`)
)

// ClampRating приводит оценку к диапазону [MinRating, MaxRating].
func ClampRating(n int) int {
	return max(MinRating, min(MaxRating, n))
}

// ParseRating разбирает оценку из строки и приводит её к допустимому диапазону.
func ParseRating(raw string) (int, error) {
	s := strings.TrimSpace(raw)

	n, err := strconv.Atoi(s)
	if err != nil {
		var numErr *strconv.NumError
		if errors.As(err, &numErr) && errors.Is(numErr.Err, strconv.ErrRange) {
			if strings.HasPrefix(s, "-") {
				return MinRating, nil
			}
			return MaxRating, nil
		}
		return 0, fmt.Errorf("%w: %q", ErrInvalidRating, raw)
	}

	return ClampRating(n), nil
}

// SplitFeatures разбивает строку особенностей по запятым и оформляет каждую как пункт списка.
func SplitFeatures(raw string) []string {
	parts := strings.Split(raw, ",")
	if len(parts) > model.MaxFeatures {
		parts = parts[:model.MaxFeatures]
	}

	features := make([]string, 0, len(parts))
	for _, p := range parts {
		features = append(features, featureBullet+strings.TrimSpace(p))
	}
	return features
}

// BuyLinkKind описывает, на что указывает ссылка покупки.
type BuyLinkKind int

const (
	BuyLinkText BuyLinkKind = iota
	BuyLinkChannel
	BuyLinkURL
)

// BuyLink содержит классифицированную ссылку покупки и её отображаемое значение.
type BuyLink struct {
	Kind    BuyLinkKind
	Raw     string
	Display string
}

// ClassifyBuyLink определяет тип ссылки покупки: упоминание канала, URL или произвольный текст.
func ClassifyBuyLink(raw string) BuyLink {
	switch {
	case channelRefPattern.MatchString(raw):
		return BuyLink{Kind: BuyLinkChannel, Raw: raw, Display: "<#" + raw + ">"}
	case urlPattern.MatchString(raw):
		return BuyLink{Kind: BuyLinkURL, Raw: raw, Display: "[Buy Here](" + raw + ")"}
	default:
		return BuyLink{Kind: BuyLinkText, Raw: raw, Display: raw}
	}
}

// ValidPercent проверяет, что процент скидки лежит в диапазоне [MinPercent, MaxPercent].
func ValidPercent(percent int64) bool {
	return percent >= MinPercent && percent <= MaxPercent
}

// NormalizeCouponCode приводит код купона к верхнему регистру.
func NormalizeCouponCode(code string) string {
	return strings.ToUpper(code)
}
