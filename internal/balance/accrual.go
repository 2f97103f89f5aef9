package balance

import (
	"context"
	"time"

	"creature_packs/internal/logger"

	"github.com/jackc/pgx/v5/pgxpool"
)

// AccrualWorker credits every user's balance with their accrual rate once per
// interval. One bulk UPDATE per tick; no per-user state is held in memory.
type AccrualWorker struct {
	db       *pgxpool.Pool
	interval time.Duration
	stop     chan struct{}
	done     chan struct{}
}

func NewAccrualWorker(db *pgxpool.Pool, interval time.Duration) *AccrualWorker {
	return &AccrualWorker{
		db:       db,
		interval: interval,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Start runs the accrual loop in a background goroutine.
func (w *AccrualWorker) Start() {
	go func() {
		defer close(w.done)
		ticker := time.NewTicker(w.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				w.credit()
			case <-w.stop:
				return
			}
		}
	}()
	logger.Info("accrual worker started", "interval", w.interval.String())
}

// Stop halts the loop and waits for an in-flight tick to finish.
func (w *AccrualWorker) Stop() {
	close(w.stop)
	<-w.done
}

func (w *AccrualWorker) credit() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	tag, err := w.db.Exec(ctx,
		`UPDATE users SET pokedollars = pokedollars + increase_rate WHERE increase_rate > 0`)
	if err != nil {
		logger.Error("accrual credit failed", "error", err)
		return
	}
	logger.Debug("accrual credited", "users", tag.RowsAffected())
}
