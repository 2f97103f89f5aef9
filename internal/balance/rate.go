package balance

import (
	"context"
	"math"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// IncreaseRateScalingFactor converts experience into pokedollar value. It is
// shared with the pack pricing formula: price and accrual-per-pokedollar must
// move together or the economy drifts.
const IncreaseRateScalingFactor = 10.0

// RateManager maintains each user's passive pokedollar accrual rate, in
// pokedollars per accrual interval.
type RateManager struct {
	db *pgxpool.Pool
}

func NewRateManager(db *pgxpool.Pool) *RateManager {
	return &RateManager{db: db}
}

// RateDelta converts experience gained from a purchase into an accrual rate
// increase.
func RateDelta(gainedXP int64) int64 {
	return int64(math.Ceil(float64(gainedXP) / IncreaseRateScalingFactor))
}

// UpdateIncreaseRateWithTx bumps the user's accrual rate by the value of the
// experience gained, inside an existing transaction so the purchase settles
// as one unit.
func (m *RateManager) UpdateIncreaseRateWithTx(ctx context.Context, tx pgx.Tx, userID int64, gainedXP int64) error {
	_, err := tx.Exec(ctx,
		`UPDATE users SET increase_rate = increase_rate + $1 WHERE id = $2`,
		RateDelta(gainedXP), userID,
	)
	return err
}

// GetIncreaseRate returns the user's current accrual rate.
func (m *RateManager) GetIncreaseRate(ctx context.Context, userID int64) (int64, error) {
	var rate int64
	err := m.db.QueryRow(ctx, `SELECT increase_rate FROM users WHERE id = $1`, userID).Scan(&rate)
	return rate, err
}
