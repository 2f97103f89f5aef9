package store

import (
	"testing"
)

func TestPackPriceDeterministic(t *testing.T) {
	for id := 1; id <= 25; id++ {
		first := PackPrice(id)
		for i := 0; i < 10; i++ {
			if got := PackPrice(id); got != first {
				t.Fatalf("price for id %d changed between calls: %d vs %d", id, first, got)
			}
		}
	}
}

func TestPackPriceGoldenValues(t *testing.T) {
	// floor(5 * 300 * 3^(id-1) / 10)
	cases := map[int]int64{
		1: 150,
		2: 450,
		3: 1350,
		4: 4050,
		5: 12150,
	}
	for id, want := range cases {
		if got := PackPrice(id); got != want {
			t.Errorf("PackPrice(%d) = %d, want %d", id, got, want)
		}
	}
}

func TestPackPriceStrictlyIncreasing(t *testing.T) {
	prev := int64(0)
	for id := 1; id <= 25; id++ {
		price := PackPrice(id)
		if price <= prev {
			t.Fatalf("price not strictly increasing at id %d: %d <= %d", id, price, prev)
		}
		prev = price
	}
}

func TestPackColorGoldenValues(t *testing.T) {
	// Hand-computed through the xorshift sequence; regression anchors for
	// the bit-exact requirement.
	cases := map[int]string{
		1:  "a7d32d",
		2:  "4fa65a",
		3:  "e67906",
		5:  "249f18",
		7:  "652583",
		10: "493e30",
		25: "53bfc5",
	}
	for id, want := range cases {
		if got := PackColor(id); got != want {
			t.Errorf("PackColor(%d) = %q, want %q", id, got, want)
		}
	}
}

func TestPackColorFormat(t *testing.T) {
	for id := 1; id <= 200; id++ {
		col := PackColor(id)
		if len(col) != 6 {
			t.Fatalf("PackColor(%d) = %q, want exactly 6 characters", id, col)
		}
		for _, r := range col {
			if !(r >= '0' && r <= '9' || r >= 'a' && r <= 'f') {
				t.Fatalf("PackColor(%d) = %q contains non-hex or uppercase char %q", id, col, r)
			}
		}
	}
}

func TestPackColorDeterministic(t *testing.T) {
	for id := 1; id <= 25; id++ {
		first := PackColor(id)
		if got := PackColor(id); got != first {
			t.Fatalf("color for id %d changed between calls: %s vs %s", id, first, got)
		}
	}
}

func TestPackDisplayName(t *testing.T) {
	cases := map[string]string{
		"viridian-forest":      "Viridian Forest",
		"canalave-city":        "Canalave City",
		"sinnoh-route-201":     "Sinnoh Route 201",
		"seafoam-islands":      "Seafoam Islands",
		"plain":                "Plain",
		"":                     "",
		"already Capitalized":  "Already Capitalized",
	}
	for raw, want := range cases {
		if got := PackDisplayName(raw); got != want {
			t.Errorf("PackDisplayName(%q) = %q, want %q", raw, got, want)
		}
	}
}
