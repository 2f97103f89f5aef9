package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"creature_packs/internal/config"
	"creature_packs/internal/db"
	"creature_packs/internal/logger"
)

// Applies every .sql file under internal/migrations in lexical order,
// recording applied names in schema_migrations so reruns are no-ops.
func main() {
	apply := flag.Bool("apply", false, "apply pending migrations (default: list them)")
	flag.Parse()

	cfg := config.Load()
	logger.Init(cfg.LogLevel, cfg.LogJSON)

	ctx := context.Background()
	pool := db.Connect(cfg.DatabaseURL)
	defer pool.Close()

	if _, err := pool.Exec(ctx,
		`CREATE TABLE IF NOT EXISTS schema_migrations (name TEXT PRIMARY KEY, applied_at TIMESTAMPTZ NOT NULL DEFAULT now())`,
	); err != nil {
		logger.Fatal("create schema_migrations", "err", err)
	}

	applied := make(map[string]bool)
	rows, err := pool.Query(ctx, `SELECT name FROM schema_migrations`)
	if err != nil {
		logger.Fatal("read schema_migrations", "err", err)
	}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			logger.Fatal("scan schema_migrations", "err", err)
		}
		applied[name] = true
	}
	rows.Close()

	migDir := filepath.Join("internal", "migrations")
	entries, err := os.ReadDir(migDir)
	if err != nil {
		logger.Fatal("read migrations dir", "dir", migDir, "err", err)
	}

	var names []string
	for _, e := range entries {
		if filepath.Ext(e.Name()) == ".sql" {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	for _, name := range names {
		if applied[name] {
			continue
		}
		if !*apply {
			fmt.Printf("pending: %s\n", name)
			continue
		}
		b, err := os.ReadFile(filepath.Join(migDir, name))
		if err != nil {
			logger.Fatal("read migration", "file", name, "err", err)
		}
		if _, err := pool.Exec(ctx, string(b)); err != nil {
			logger.Fatal("apply migration", "file", name, "err", err)
		}
		if _, err := pool.Exec(ctx, `INSERT INTO schema_migrations (name) VALUES ($1)`, name); err != nil {
			logger.Fatal("record migration", "file", name, "err", err)
		}
		logger.Info("applied migration", "file", name)
	}
}
