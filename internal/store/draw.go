package store

import (
	"math"
	"math/rand"
	"sort"

	"creature_packs/internal/domain"
)

// DrawnReward is one creature rolled from a pack, carrying the XP that will
// be persisted.
type DrawnReward struct {
	SpeciesID int
	Name      string
	XP        int64
}

// OpenPack draws PackSize rewards from a pack's stock. Selection is
// rank-weighted: the stock is sorted by descending weight and the k-th ranked
// species occupies k slots in the draw pool, so common low-weight species
// come up more often than headline ones. Multiplicity follows rank position,
// not weight magnitude.
func OpenPack(stock []domain.CreatureStock, packPrice int64) []DrawnReward {
	return openPack(stock, packPrice, globalRand)
}

var globalRand = rand.New(rand.NewSource(rand.Int63()))

func openPack(stock []domain.CreatureStock, packPrice int64, rng *rand.Rand) []DrawnReward {
	sorted := make([]domain.CreatureStock, len(stock))
	copy(sorted, stock)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].XP > sorted[j].XP
	})

	// Rank k (0-based) appears k+1 times.
	var pool []domain.CreatureStock
	for i, creature := range sorted {
		for n := 0; n <= i; n++ {
			pool = append(pool, creature)
		}
	}

	rng.Shuffle(len(pool), func(i, j int) {
		pool[i], pool[j] = pool[j], pool[i]
	})

	rewards := make([]DrawnReward, 0, PackSize)
	for i := 0; i < PackSize; i++ {
		// Wrap when the stock is so small the pool has fewer than
		// PackSize slots; a pack always yields PackSize creatures.
		picked := pool[i%len(pool)]
		rewards = append(rewards, DrawnReward{
			SpeciesID: picked.SpeciesID,
			Name:      picked.Name,
			XP:        rollXP(packPrice, rng),
		})
	}
	return rewards
}

// rollXP assigns a reward's experience from the pack price tier with
// per-creature variance. The mean of three uniform draws approximates a
// normal distribution centered at 0.5 and bounded in [0, 1).
func rollXP(packPrice int64, rng *rand.Rand) int64 {
	z := normalish(rng)
	xp := int64(math.Ceil((z + 1) * float64(packPrice) / float64(SecondsInFiveMinutes*PackSize)))

	// The cheapest packs round to 1 XP almost every time, which barely
	// registers on the accrual curve. Bump roughly 45% of those to 2.
	if xp == 1 && rng.Float64() > 0.55 {
		xp = 2
	}
	return xp
}

func normalish(rng *rand.Rand) float64 {
	return (rng.Float64() + rng.Float64() + rng.Float64()) / 3
}
