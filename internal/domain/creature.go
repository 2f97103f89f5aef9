package domain

import "time"

// CreatureStock is one species obtainable from a booster pack. XP carries the
// provider's base experience and is used as a sorting signal when the pack is
// opened; the awarded value is rolled separately.
type CreatureStock struct {
	SpeciesID int    `json:"species_id"`
	Name      string `json:"name"`
	XP        int64  `json:"xp"`
}

// OwnedCreature is a creature persisted to a user's collection. Records are
// written once at purchase time and never updated except by merging.
type OwnedCreature struct {
	ID         int64     `db:"id" json:"id"`
	SpeciesID  int       `db:"species_id" json:"species_id"`
	OwnerID    int64     `db:"owner_id" json:"owner_id"`
	XP         int64     `db:"xp" json:"xp"`
	AcquiredAt time.Time `db:"acquired_at" json:"acquired_at"`
}
