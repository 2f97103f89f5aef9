package http

import (
	"creature_packs/internal/cache"
	"creature_packs/internal/config"
	"creature_packs/internal/http/handlers"
	"creature_packs/internal/http/middleware"
	"creature_packs/internal/pokeapi"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

// RegisterRoutes wires every endpoint onto the engine.
func RegisterRoutes(r *gin.Engine, db *pgxpool.Pool, catalogCache *cache.CatalogCache, cfg *config.Config, version string) {
	api := pokeapi.NewClient(cfg.PokeAPIBaseURL)
	h := handlers.NewHandler(db, api, catalogCache, cfg.BoosterpackAmountLimit)
	healthHandler := handlers.NewHealthHandler(db, version)

	// Health checks (no rate limiting)
	r.GET("/health", healthHandler.Health)
	r.GET("/healthz", healthHandler.Liveness)
	r.GET("/readyz", healthHandler.Readiness)

	// Redis-backed limiter when available, in-memory fallback otherwise.
	rateLimit := middleware.SimpleRateLimit
	if middleware.RedisRateLimiterEnabled() {
		rateLimit = middleware.RedisRateLimit
	}

	v1 := r.Group("/api/v1")
	v1.Use(rateLimit(cfg.APIRateLimit, cfg.APIRateWindow))

	// Auth
	auth := v1.Group("/auth")
	auth.Use(rateLimit(cfg.AuthRateLimit, cfg.AuthRateWindow))
	{
		auth.POST("/register", h.Register)
		auth.POST("/login", h.Login)
	}

	// Booster pack store
	storeGroup := v1.Group("/store")
	{
		storeGroup.GET("/packs", h.ListPacks)
		storeGroup.GET("/packs/:id", h.GetPack)
		storeGroup.POST("/packs/:id/buy",
			middleware.JWT(),
			middleware.PurchaseRateLimit(cfg.PurchaseRateLimit, cfg.PurchaseRateWindow),
			h.BuyPack)
	}

	// Authenticated user surface
	me := v1.Group("/me")
	me.Use(middleware.JWT())
	{
		me.GET("", h.Me)
		me.GET("/creatures", h.MyCreatures)
		me.POST("/creatures/merge", h.MergeCreatures)
		me.GET("/transactions", h.MyTransactions)
	}

	// Leaderboard
	v1.GET("/leaderboard", h.Leaderboard)
}
