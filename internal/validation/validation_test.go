package validation

import (
	"errors"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRating(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want int
	}{
		{name: "in range low", raw: "1", want: 1},
		{name: "in range high", raw: "5", want: 5},
		{name: "above range", raw: "6", want: 5},
		{name: "zero", raw: "0", want: 1},
		{name: "negative", raw: "-3", want: 1},
		{name: "surrounding spaces", raw: " 4 ", want: 4},
		{name: "overflow positive", raw: "99999999999999999999999", want: 5},
		{name: "overflow negative", raw: "-99999999999999999999999", want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseRating(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseRating_IdentityInRange(t *testing.T) {
	for n := MinRating; n <= MaxRating; n++ {
		got, err := ParseRating(strconv.Itoa(n))
		require.NoError(t, err)
		assert.Equal(t, n, got)
	}
}

func TestParseRating_NotANumber(t *testing.T) {
	for _, raw := range []string{"", "abc", "4.5", "five"} {
		_, err := ParseRating(raw)
		if !errors.Is(err, ErrInvalidRating) {
			t.Fatalf("ParseRating(%q) error = %v, want ErrInvalidRating", raw, err)
		}
	}
}

func TestSplitFeatures(t *testing.T) {
	got := SplitFeatures("fast, secure , 24/7 support")
	assert.Equal(t, []string{"• fast", "• secure", "• 24/7 support"}, got)
}

func TestSplitFeatures_Capped(t *testing.T) {
	raw := strings.TrimSuffix(strings.Repeat("x,", 30), ",")

	got := SplitFeatures(raw)
	assert.Len(t, got, 20)
	for _, f := range got {
		assert.Equal(t, "• x", f)
	}
}

func TestClassifyBuyLink(t *testing.T) {
	tests := []struct {
		name        string
		raw         string
		wantKind    BuyLinkKind
		wantDisplay string
	}{
		{
			name:        "channel id 18 digits",
			raw:         "123456789012345678",
			wantKind:    BuyLinkChannel,
			wantDisplay: "<#123456789012345678>",
		},
		{
			name:        "channel id 17 digits",
			raw:         "12345678901234567",
			wantKind:    BuyLinkChannel,
			wantDisplay: "<#12345678901234567>",
		},
		{
			name:        "too short for channel id",
			raw:         "1234567890123456",
			wantKind:    BuyLinkText,
			wantDisplay: "1234567890123456",
		},
		{
			name:        "https url",
			raw:         "https://x.com/y",
			wantKind:    BuyLinkURL,
			wantDisplay: "[Buy Here](https://x.com/y)",
		},
		{
			name:        "http url",
			raw:         "http://shop.example/item",
			wantKind:    BuyLinkURL,
			wantDisplay: "[Buy Here](http://shop.example/item)",
		},
		{
			name:        "literal text",
			raw:         "see pinned post",
			wantKind:    BuyLinkText,
			wantDisplay: "see pinned post",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ClassifyBuyLink(tt.raw)
			assert.Equal(t, tt.wantKind, got.Kind)
			assert.Equal(t, tt.wantDisplay, got.Display)
			assert.Equal(t, tt.raw, got.Raw)
		})
	}
}

func TestValidPercent(t *testing.T) {
	tests := []struct {
		percent int64
		valid   bool
	}{
		{percent: 0, valid: false},
		{percent: 1, valid: true},
		{percent: 50, valid: true},
		{percent: 100, valid: true},
		{percent: 101, valid: false},
		{percent: -5, valid: false},
	}

	for _, tt := range tests {
		if got := ValidPercent(tt.percent); got != tt.valid {
			t.Fatalf("ValidPercent(%d) = %v, want %v", tt.percent, got, tt.valid)
		}
	}
}

func TestNormalizeCouponCode(t *testing.T) {
	assert.Equal(t, "SUMMER10", NormalizeCouponCode("summer10"))
}
