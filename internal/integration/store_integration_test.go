package integration

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"creature_packs/internal/pokeapi"
	"creature_packs/internal/store"

	"github.com/jackc/pgx/v5/pgxpool"
)

func applyMigrations(t *testing.T, db *pgxpool.Pool) {
	t.Helper()
	migDir := filepath.Join("..", "..", "internal", "migrations")
	files, err := os.ReadDir(migDir)
	if err != nil {
		t.Fatalf("read migrations: %v", err)
	}
	for _, f := range files {
		b, err := os.ReadFile(filepath.Join(migDir, f.Name()))
		if err != nil {
			t.Fatalf("read file: %v", err)
		}
		if _, err := db.Exec(context.Background(), string(b)); err != nil {
			t.Fatalf("apply migration %s: %v", f.Name(), err)
		}
	}
}

func connectDB(t *testing.T) *pgxpool.Pool {
	t.Helper()
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		t.Skip("DATABASE_URL not set")
	}
	db, err := pgxpool.New(context.Background(), dsn)
	if err != nil {
		t.Fatalf("connect db: %v", err)
	}
	t.Cleanup(db.Close)
	applyMigrations(t, db)
	return db
}

func createUser(t *testing.T, db *pgxpool.Pool, balance int64) int64 {
	t.Helper()
	var id int64
	name := fmt.Sprintf("it_%d", time.Now().UnixNano())
	err := db.QueryRow(context.Background(),
		`INSERT INTO users (username, password_hash, pokedollars, increase_rate)
		 VALUES ($1, 'x', $2, 0) RETURNING id`,
		name, balance,
	).Scan(&id)
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	return id
}

// singlePackProvider serves one stocked location with id 1.
func singlePackProvider(t *testing.T) *httptest.Server {
	t.Helper()
	var srv *httptest.Server
	mux := http.NewServeMux()
	mux.HandleFunc("/location/1", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, map[string]any{
			"id":   1,
			"name": "pallet-meadow",
			"areas": []map[string]string{
				{"name": "area", "url": srv.URL + "/location-area/11"},
			},
		})
	})
	mux.HandleFunc("/location-area/11", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, map[string]any{
			"pokemon_encounters": []map[string]any{
				{"pokemon": map[string]string{"name": "pidgey", "url": srv.URL + "/pokemon/16"}},
				{"pokemon": map[string]string{"name": "rattata", "url": srv.URL + "/pokemon/19"}},
			},
		})
	})
	mux.HandleFunc("/pokemon/16", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, map[string]any{"id": 16, "name": "pidgey", "base_experience": 50})
	})
	mux.HandleFunc("/pokemon/19", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, map[string]any{"id": 19, "name": "rattata", "base_experience": 51})
	})
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})
	srv = httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func writeJSON(t *testing.T, w http.ResponseWriter, v any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		t.Fatalf("encode response: %v", err)
	}
}

func TestBuyPersistsRewardsAndDebits(t *testing.T) {
	db := connectDB(t)
	srv := singlePackProvider(t)
	s := store.NewService(db, pokeapi.NewClient(srv.URL), nil, 1)

	price := store.PackPrice(1)
	userID := createUser(t, db, price+25)

	res, err := s.Buy(context.Background(), 1, userID)
	if err != nil {
		t.Fatalf("Buy: %v", err)
	}
	if len(res.Creatures) != store.PackSize {
		t.Fatalf("awarded %d creatures, want %d", len(res.Creatures), store.PackSize)
	}
	if res.NewBalance != 25 {
		t.Fatalf("new balance = %d, want 25", res.NewBalance)
	}

	var count int64
	if err := db.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM creatures WHERE owner_id = $1`, userID).Scan(&count); err != nil {
		t.Fatalf("count creatures: %v", err)
	}
	if count != store.PackSize {
		t.Fatalf("persisted %d creatures, want %d", count, store.PackSize)
	}

	var rate int64
	if err := db.QueryRow(context.Background(),
		`SELECT increase_rate FROM users WHERE id = $1`, userID).Scan(&rate); err != nil {
		t.Fatalf("read rate: %v", err)
	}
	if rate < 1 {
		t.Fatalf("accrual rate = %d, want >= 1 after a purchase", rate)
	}
}

func TestBuyInsufficientFundsLeavesNoTrace(t *testing.T) {
	db := connectDB(t)
	srv := singlePackProvider(t)
	s := store.NewService(db, pokeapi.NewClient(srv.URL), nil, 1)

	price := store.PackPrice(1)
	userID := createUser(t, db, price-1)

	if _, err := s.Buy(context.Background(), 1, userID); !errors.Is(err, store.ErrInsufficientFunds) {
		t.Fatalf("Buy error = %v, want ErrInsufficientFunds", err)
	}

	var count int64
	if err := db.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM creatures WHERE owner_id = $1`, userID).Scan(&count); err != nil {
		t.Fatalf("count creatures: %v", err)
	}
	if count != 0 {
		t.Fatalf("persisted %d creatures on failed purchase, want 0", count)
	}

	var balance int64
	if err := db.QueryRow(context.Background(),
		`SELECT pokedollars FROM users WHERE id = $1`, userID).Scan(&balance); err != nil {
		t.Fatalf("read balance: %v", err)
	}
	if balance != price-1 {
		t.Fatalf("balance = %d, want untouched %d", balance, price-1)
	}
}

func TestBuyUnknownPackLeavesNoTrace(t *testing.T) {
	db := connectDB(t)
	srv := singlePackProvider(t)
	s := store.NewService(db, pokeapi.NewClient(srv.URL), nil, 1)

	userID := createUser(t, db, 10000)

	if _, err := s.Buy(context.Background(), 99, userID); !errors.Is(err, store.ErrPackNotFound) {
		t.Fatalf("Buy error = %v, want ErrPackNotFound", err)
	}

	var balance int64
	if err := db.QueryRow(context.Background(),
		`SELECT pokedollars FROM users WHERE id = $1`, userID).Scan(&balance); err != nil {
		t.Fatalf("read balance: %v", err)
	}
	if balance != 10000 {
		t.Fatalf("balance = %d, want untouched 10000", balance)
	}
}

// With a balance covering exactly one pack, two concurrent purchases must
// resolve to one success and one insufficient-funds failure. The row lock on
// the user serializes the check-then-debit sequence.
func TestConcurrentBuyNoDoubleSpend(t *testing.T) {
	db := connectDB(t)
	srv := singlePackProvider(t)
	s := store.NewService(db, pokeapi.NewClient(srv.URL), nil, 1)

	price := store.PackPrice(1)
	userID := createUser(t, db, price)

	// Warm the catalog so both goroutines race on the purchase itself.
	if pack, err := s.GetPack(context.Background(), 1); err != nil || pack == nil {
		t.Fatalf("warm catalog: pack=%v err=%v", pack, err)
	}

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = s.Buy(context.Background(), 1, userID)
		}(i)
	}
	wg.Wait()

	successes, insufficient := 0, 0
	for _, err := range errs {
		switch {
		case err == nil:
			successes++
		case errors.Is(err, store.ErrInsufficientFunds):
			insufficient++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if successes != 1 || insufficient != 1 {
		t.Fatalf("got %d successes and %d insufficient-funds failures, want exactly 1 and 1", successes, insufficient)
	}

	var balance int64
	if err := db.QueryRow(context.Background(),
		`SELECT pokedollars FROM users WHERE id = $1`, userID).Scan(&balance); err != nil {
		t.Fatalf("read balance: %v", err)
	}
	if balance != 0 {
		t.Fatalf("final balance = %d, want 0 (exactly one price debited)", balance)
	}
}
