package repository

import (
	"context"
	"errors"

	"creature_packs/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type UserRepository struct {
	db *pgxpool.Pool
}

func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{db: db}
}

// Starting account values for fresh registrations. The initial balance covers
// the first booster pack exactly.
const (
	initialPokedollars  = 150
	initialIncreaseRate = 5
)

// Create inserts a new user. The caller is expected to have checked name
// availability first.
func (r *UserRepository) Create(ctx context.Context, u *domain.User) error {
	u.Pokedollars = initialPokedollars
	u.IncreaseRate = initialIncreaseRate

	return r.db.QueryRow(ctx,
		`INSERT INTO users (username, email, password_hash, pokedollars, increase_rate)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, created_at`,
		u.Username, u.Email, u.PasswordHash, u.Pokedollars, u.IncreaseRate,
	).Scan(&u.ID, &u.CreatedAt)
}

// GetByUsername returns the user with the given name, or nil if none exists.
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	row := r.db.QueryRow(ctx,
		`SELECT id, username, email, password_hash, pokedollars, increase_rate, created_at
		 FROM users
		 WHERE username = $1`,
		username,
	)

	var u domain.User
	if err := row.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.Pokedollars, &u.IncreaseRate, &u.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	row := r.db.QueryRow(ctx,
		`SELECT id, username, email, password_hash, pokedollars, increase_rate, created_at
		 FROM users
		 WHERE id = $1`,
		id,
	)

	var u domain.User
	if err := row.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.Pokedollars, &u.IncreaseRate, &u.CreatedAt); err != nil {
		return nil, err
	}
	return &u, nil
}

// GetBalance returns the user's current pokedollar balance.
func (r *UserRepository) GetBalance(ctx context.Context, userID int64) (int64, error) {
	var balance int64
	err := r.db.QueryRow(ctx, `SELECT pokedollars FROM users WHERE id = $1`, userID).Scan(&balance)
	return balance, err
}

// LeaderboardEntry is one row of the balance leaderboard.
type LeaderboardEntry struct {
	Rank        int    `json:"rank"`
	Username    string `json:"username"`
	Pokedollars int64  `json:"pokedollars"`
	Creatures   int64  `json:"creatures"`
}

// TopByBalance returns users ordered by balance, richest first.
func (r *UserRepository) TopByBalance(ctx context.Context, limit int) ([]LeaderboardEntry, error) {
	rows, err := r.db.Query(ctx, `
		SELECT u.username, u.pokedollars, COALESCE(c.cnt, 0)
		FROM users u
		LEFT JOIN (
			SELECT owner_id, COUNT(*) AS cnt FROM creatures GROUP BY owner_id
		) c ON c.owner_id = u.id
		ORDER BY u.pokedollars DESC
		LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []LeaderboardEntry
	rank := 1
	for rows.Next() {
		var e LeaderboardEntry
		if err := rows.Scan(&e.Username, &e.Pokedollars, &e.Creatures); err != nil {
			return nil, err
		}
		e.Rank = rank
		rank++
		res = append(res, e)
	}
	return res, rows.Err()
}
