package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"creature_packs/internal/store"

	"github.com/gin-gonic/gin"
)

// ListPacks returns the full booster pack catalog.
func (h *Handler) ListPacks(c *gin.Context) {
	packs, err := h.Store.GetCatalog(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "catalog unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"packs": packs})
}

// GetPack returns one booster pack.
func (h *Handler) GetPack(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid pack id"})
		return
	}

	pack, err := h.Store.GetPack(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "catalog unavailable"})
		return
	}
	if pack == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": store.ErrPackNotFound.Error()})
		return
	}
	c.JSON(http.StatusOK, pack)
}

// BuyPack purchases and opens a booster pack for the authenticated user.
func (h *Handler) BuyPack(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid pack id"})
		return
	}

	result, err := h.Store.Buy(c.Request.Context(), id, userID)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrPackNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, store.ErrInsufficientFunds):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, store.ErrUserNotFound):
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "purchase failed"})
		}
		return
	}

	c.JSON(http.StatusOK, result)
}
