package domain

import "time"

// Transaction is a ledger entry recording a balance mutation. Amount is
// negative for debits (pack purchases) and positive for credits.
type Transaction struct {
	ID        int64                  `db:"id" json:"id"`
	UserID    int64                  `db:"user_id" json:"user_id"`
	Type      string                 `db:"type" json:"type"`
	Amount    int64                  `db:"amount" json:"amount"`
	Meta      map[string]interface{} `db:"meta" json:"meta,omitempty"`
	CreatedAt time.Time              `db:"created_at" json:"created_at"`
}

// TxTypeBoosterpack marks the debit written for a pack purchase.
const TxTypeBoosterpack = "boosterpack"
