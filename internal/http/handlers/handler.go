package handlers

import (
	"creature_packs/internal/balance"
	"creature_packs/internal/cache"
	"creature_packs/internal/pokeapi"
	"creature_packs/internal/repository"
	"creature_packs/internal/service"
	"creature_packs/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Handler struct {
	DB           *pgxpool.Pool
	Users        *repository.UserRepository
	Creatures    *repository.CreatureRepository
	Transactions *repository.TransactionRepository
	Store        *store.Service
	Auth         *service.AuthService
	Rates        *balance.RateManager
}

func NewHandler(db *pgxpool.Pool, api *pokeapi.Client, catalogCache *cache.CatalogCache, packLimit int) *Handler {
	users := repository.NewUserRepository(db)
	return &Handler{
		DB:           db,
		Users:        users,
		Creatures:    repository.NewCreatureRepository(db),
		Transactions: repository.NewTransactionRepository(db),
		Store:        store.NewService(db, api, catalogCache, packLimit),
		Auth:         service.NewAuthService(users),
		Rates:        balance.NewRateManager(db),
	}
}

// getUserID extracts the authenticated user id set by the JWT middleware.
func getUserID(c *gin.Context) (int64, bool) {
	uidVal, ok := c.Get("user_id")
	if !ok {
		return 0, false
	}
	switch v := uidVal.(type) {
	case int64:
		return v, true
	case float64:
		return int64(v), true
	default:
		return 0, false
	}
}
