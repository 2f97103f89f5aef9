package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
)

// MyCreatures lists the authenticated user's collection.
func (h *Handler) MyCreatures(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}

	creatures, err := h.Creatures.GetByOwner(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"creatures": creatures})
}

type MergeRequest struct {
	CreatureIDs []int64 `json:"creature_ids" binding:"required,min=2"`
}

// MergeCreatures combines two or more owned creatures into the strongest
// one. The survivor absorbs the donors' experience; the donors are removed.
// The whole merge is one transaction.
func (h *Handler) MergeCreatures(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}

	var req MergeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}

	ctx := c.Request.Context()

	tx, err := h.DB.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
		return
	}
	defer func() { _ = tx.Rollback(ctx) }()

	// Ordered by xp desc, so the first row is the survivor.
	locked, err := h.Creatures.LockByIDsWithTx(ctx, tx, req.CreatureIDs, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
		return
	}
	if len(locked) != len(req.CreatureIDs) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "one or more creatures do not exist or are not yours"})
		return
	}

	survivor := locked[0]
	var totalXP int64
	donorIDs := make([]int64, 0, len(locked)-1)
	for _, creature := range locked {
		totalXP += creature.XP
		if creature.ID != survivor.ID {
			donorIDs = append(donorIDs, creature.ID)
		}
	}

	if err := h.Creatures.SetXPWithTx(ctx, tx, survivor.ID, totalXP); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
		return
	}
	if err := h.Creatures.DeleteByIDsWithTx(ctx, tx, donorIDs); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
		return
	}

	if err := tx.Commit(ctx); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
		return
	}

	survivor.XP = totalXP
	c.JSON(http.StatusOK, survivor)
}
