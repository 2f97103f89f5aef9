package store

import (
	"fmt"
	"math"
	"strings"
	"unicode"

	"creature_packs/internal/balance"
)

const (
	// PackSize is the number of creatures awarded per pack.
	PackSize = 5
	// LocationIdBaseIncrease drives exponential price growth across pack ids.
	LocationIdBaseIncrease = 3.0
	// SecondsInFiveMinutes anchors prices and reward XP to the accrual tick.
	SecondsInFiveMinutes = 300
)

// PackPrice derives a pack's price from its location id alone. Prices grow
// geometrically: each subsequent location costs triple the previous one,
// scaled down by the accrual-rate constant so price and passive income stay
// coherent.
func PackPrice(locationID int) int64 {
	raw := float64(PackSize*SecondsInFiveMinutes) *
		math.Pow(LocationIdBaseIncrease, float64(locationID-1)) /
		balance.IncreaseRateScalingFactor
	return int64(raw)
}

// PackColor derives a pack's display color from its location id via a fixed
// xorshift mix. The output is the pack's visual identity and must stay
// bit-exact: same shift amounts, unsigned right shifts, 24-bit mask.
func PackColor(locationID int) string {
	s0 := uint64(int64(math.Sqrt(5) * float64(locationID) * 0x1000000))
	s1 := uint64(int64(locationID))

	s0 ^= s0 << 23
	s0 ^= s0 >> 17
	s0 ^= s1 ^ (s1 >> 26)

	return fmt.Sprintf("%06x", (s0+s1)&0xffffff)
}

// PackDisplayName turns a raw hyphenated location name like "viridian-forest"
// into "Viridian Forest".
func PackDisplayName(raw string) string {
	segments := strings.Split(raw, "-")
	for i, seg := range segments {
		segments[i] = capitalize(seg)
	}
	return strings.Join(segments, " ")
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	runes := []rune(s)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
