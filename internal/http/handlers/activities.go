package handlers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"taskhub/internal/config"
	"taskhub/internal/domain/activity"
)

type ActivityStore interface {
	FindRecent(ctx context.Context, limit int) ([]activity.Log, error)
}

type ActivitiesHandler struct {
	repo ActivityStore
}

func NewActivitiesHandler(repo ActivityStore) *ActivitiesHandler {
	return &ActivitiesHandler{repo: repo}
}

// ListRecent returns the newest entries first. ?limit= caps the page.
func (h *ActivitiesHandler) ListRecent(ctx *gin.Context) {
	limit := 0
	if raw := ctx.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			RespondBadRequest(ctx, "limit must be a non-negative integer", nil)
			return
		}
		limit = n
	}

	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	items, err := h.repo.FindRecent(cctx, limit)
	if err != nil {
		RespondAppError(ctx, err, "Could not list activity")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"items": items,
		"count": len(items),
	})
}
