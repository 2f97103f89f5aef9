package domain

import "time"

type User struct {
	ID           int64     `db:"id" json:"id"`
	Username     string    `db:"username" json:"username"`
	Email        string    `db:"email" json:"-"`
	PasswordHash string    `db:"password_hash" json:"-"`
	Pokedollars  int64     `db:"pokedollars" json:"pokedollars"`
	IncreaseRate int64     `db:"increase_rate" json:"increase_rate"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}
