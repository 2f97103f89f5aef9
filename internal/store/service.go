package store

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"creature_packs/internal/balance"
	"creature_packs/internal/cache"
	"creature_packs/internal/domain"
	"creature_packs/internal/pokeapi"
	"creature_packs/internal/repository"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrPackNotFound      = errors.New("this booster pack does not exist")
	ErrInsufficientFunds = errors.New("not enough pokedollars")
	ErrUserNotFound      = errors.New("user not found")
)

// Service is the booster pack store: it renders the pack catalog from the
// external provider and executes purchases.
type Service struct {
	db           *pgxpool.Pool
	api          *pokeapi.Client
	cache        *cache.CatalogCache
	creatures    *repository.CreatureRepository
	transactions *repository.TransactionRepository
	rates        *balance.RateManager
	packLimit    int
}

// NewService wires the store. catalogCache may be disabled; the store then
// hits the provider on every lookup with identical results.
func NewService(db *pgxpool.Pool, api *pokeapi.Client, catalogCache *cache.CatalogCache, packLimit int) *Service {
	return &Service{
		db:           db,
		api:          api,
		cache:        catalogCache,
		creatures:    repository.NewCreatureRepository(db),
		transactions: repository.NewTransactionRepository(db),
		rates:        balance.NewRateManager(db),
		packLimit:    packLimit,
	}
}

// PurchaseResult is what a successful pack opening returns.
type PurchaseResult struct {
	Creatures  []domain.OwnedCreature `json:"creatures"`
	TotalXP    int64                  `json:"total_xp"`
	NewBalance int64                  `json:"pokedollars"`
}

// Buy purchases and opens one booster pack for a user. The balance check,
// reward inserts, debit and accrual-rate update all run inside a single
// transaction holding a row lock on the user, so two concurrent purchases
// against the same balance cannot both pass the check.
func (s *Service) Buy(ctx context.Context, packID int, userID int64) (*PurchaseResult, error) {
	pack, err := s.GetPack(ctx, packID)
	if err != nil {
		return nil, err
	}
	if pack == nil {
		return nil, ErrPackNotFound
	}

	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, fmt.Errorf("begin purchase: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	// Lock and check balance
	var bal int64
	if err := tx.QueryRow(ctx, `SELECT pokedollars FROM users WHERE id=$1 FOR UPDATE`, userID).Scan(&bal); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("lock balance: %w", err)
	}
	if bal < pack.Price {
		return nil, ErrInsufficientFunds
	}

	rewards := OpenPack(pack.Creatures, pack.Price)

	owned := make([]domain.OwnedCreature, 0, len(rewards))
	var totalXP int64
	for _, reward := range rewards {
		c, err := s.creatures.InsertWithTx(ctx, tx, reward.SpeciesID, userID, reward.XP)
		if err != nil {
			return nil, fmt.Errorf("persist reward: %w", err)
		}
		owned = append(owned, *c)
		totalXP += reward.XP
	}

	var newBalance int64
	if err := tx.QueryRow(ctx,
		`UPDATE users SET pokedollars = pokedollars - $1 WHERE id=$2 RETURNING pokedollars`,
		pack.Price, userID,
	).Scan(&newBalance); err != nil {
		return nil, fmt.Errorf("debit balance: %w", err)
	}

	record := &domain.Transaction{
		UserID: userID,
		Type:   domain.TxTypeBoosterpack,
		Amount: -pack.Price,
		Meta: map[string]interface{}{
			"pack_id":  pack.LocationID,
			"total_xp": totalXP,
		},
	}
	if err := s.transactions.CreateWithTx(ctx, tx, record); err != nil {
		return nil, fmt.Errorf("record transaction: %w", err)
	}

	if err := s.rates.UpdateIncreaseRateWithTx(ctx, tx, userID, totalXP); err != nil {
		return nil, fmt.Errorf("update accrual rate: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit purchase: %w", err)
	}

	packsPurchased.WithLabelValues(strconv.Itoa(pack.LocationID)).Inc()
	creaturesAwarded.Add(float64(len(owned)))

	return &PurchaseResult{
		Creatures:  owned,
		TotalXP:    totalXP,
		NewBalance: newBalance,
	}, nil
}
