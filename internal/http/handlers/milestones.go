package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"taskhub/internal/config"
	"taskhub/internal/domain/milestone"
)

type MilestonesStore interface {
	FindByID(ctx context.Context, id string) (milestone.Milestone, error)
	FindByProject(ctx context.Context, projectID string) ([]milestone.Milestone, error)
	Create(ctx context.Context, m milestone.Milestone) (milestone.Milestone, error)
	Update(ctx context.Context, m milestone.Milestone) (milestone.Milestone, error)
	Delete(ctx context.Context, id string) error
}

type MilestonesHandler struct {
	repo MilestonesStore
}

func NewMilestonesHandler(repo MilestonesStore) *MilestonesHandler {
	return &MilestonesHandler{repo: repo}
}

type CreateMilestoneRequest struct {
	Name        string     `json:"name" binding:"required,min=1,max=200"`
	Description *string    `json:"description"`
	DueDate     *time.Time `json:"dueDate"`
}

type UpdateMilestoneRequest struct {
	Name        *string    `json:"name" binding:"omitempty,min=1,max=200"`
	Description *string    `json:"description"`
	DueDate     *time.Time `json:"dueDate"`
	Completed   *bool      `json:"completed"`
}

// ListByProject serves /projects/:id/milestones.
func (h *MilestonesHandler) ListByProject(ctx *gin.Context) {
	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	items, err := h.repo.FindByProject(cctx, ctx.Param("id"))
	if err != nil {
		RespondAppError(ctx, err, "Could not list milestones")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"items": items,
		"count": len(items),
	})
}

func (h *MilestonesHandler) Create(ctx *gin.Context) {
	var req CreateMilestoneRequest
	if !BindJSON(ctx, &req) {
		return
	}

	cctx, cancel := config.WithTimeout(3 * time.Second)
	defer cancel()

	m := milestone.New(ctx.Param("id"), req.Name, req.Description, req.DueDate)

	created, err := h.repo.Create(cctx, m)
	if err != nil {
		RespondAppError(ctx, err, "Could not create milestone")
		return
	}

	ctx.JSON(http.StatusCreated, created)
}

func (h *MilestonesHandler) Get(ctx *gin.Context) {
	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	m, err := h.repo.FindByID(cctx, ctx.Param("id"))
	if err != nil {
		RespondAppError(ctx, err, "Could not fetch milestone")
		return
	}

	ctx.JSON(http.StatusOK, m)
}

func (h *MilestonesHandler) Update(ctx *gin.Context) {
	var req UpdateMilestoneRequest
	if !BindJSON(ctx, &req) {
		return
	}

	cctx, cancel := config.WithTimeout(3 * time.Second)
	defer cancel()

	m, err := h.repo.FindByID(cctx, ctx.Param("id"))
	if err != nil {
		RespondAppError(ctx, err, "Could not fetch milestone")
		return
	}

	if req.Name != nil {
		m.Name = *req.Name
	}
	if req.Description != nil {
		m.Description = req.Description
	}
	if req.DueDate != nil {
		m.DueDate = req.DueDate
	}
	if req.Completed != nil && *req.Completed {
		m.MarkCompleted()
	}
	m.UpdatedAt = time.Now().UTC()

	updated, err := h.repo.Update(cctx, m)
	if err != nil {
		RespondAppError(ctx, err, "Could not update milestone")
		return
	}

	ctx.JSON(http.StatusOK, updated)
}

func (h *MilestonesHandler) Delete(ctx *gin.Context) {
	cctx, cancel := config.WithTimeout(3 * time.Second)
	defer cancel()

	if err := h.repo.Delete(cctx, ctx.Param("id")); err != nil {
		RespondAppError(ctx, err, "Could not delete milestone")
		return
	}

	ctx.Status(http.StatusNoContent)
}
