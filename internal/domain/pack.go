package domain

// Boosterpack is a purchasable pack rendered from a provider location. Price
// and color are pure functions of the location id, so a cached entry and a
// freshly built one never disagree.
type Boosterpack struct {
	LocationID int             `json:"location_id"`
	Name       string          `json:"name"`
	Price      int64           `json:"price"`
	HexColor   string          `json:"hex_color"`
	Creatures  []CreatureStock `json:"creatures"`
}
