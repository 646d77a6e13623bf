package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"taskhub/internal/apperr"
	"taskhub/internal/config"
	"taskhub/internal/domain/project"
	"taskhub/internal/domain/task"
	"taskhub/internal/http/middlewares"
)

type ProjectsStore interface {
	FindByID(ctx context.Context, id string) (project.Project, error)
	FindAll(ctx context.Context) ([]project.Project, error)
	Create(ctx context.Context, p project.Project) (project.Project, error)
	Update(ctx context.Context, p project.Project) (project.Project, error)
	Delete(ctx context.Context, id string) error
}

type ProjectsHandler struct {
	repo ProjectsStore
}

func NewProjectsHandler(repo ProjectsStore) *ProjectsHandler {
	return &ProjectsHandler{repo: repo}
}

type CreateProjectRequest struct {
	Name        string     `json:"name" binding:"required,min=1,max=200"`
	Description *string    `json:"description"`
	Status      string     `json:"status" binding:"omitempty,oneof=planning active onhold completed cancelled"`
	Priority    string     `json:"priority" binding:"omitempty,oneof=low medium high critical"`
	StartDate   *time.Time `json:"startDate"`
	EndDate     *time.Time `json:"endDate"`
	Budget      *float64   `json:"budget"`
}

type UpdateProjectRequest struct {
	Name        *string    `json:"name" binding:"omitempty,min=1,max=200"`
	Description *string    `json:"description"`
	Status      *string    `json:"status" binding:"omitempty,oneof=planning active onhold completed cancelled"`
	Priority    *string    `json:"priority" binding:"omitempty,oneof=low medium high critical"`
	StartDate   *time.Time `json:"startDate"`
	EndDate     *time.Time `json:"endDate"`
	Budget      *float64   `json:"budget"`
}

func (h *ProjectsHandler) List(ctx *gin.Context) {
	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	projects, err := h.repo.FindAll(cctx)
	if err != nil {
		RespondAppError(ctx, err, "Could not list projects")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"items": projects,
		"count": len(projects),
	})
}

func (h *ProjectsHandler) Get(ctx *gin.Context) {
	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	p, err := h.repo.FindByID(cctx, ctx.Param("id"))
	if err != nil {
		RespondAppError(ctx, err, "Could not fetch project")
		return
	}

	ctx.JSON(http.StatusOK, p)
}

func (h *ProjectsHandler) Create(ctx *gin.Context) {
	var req CreateProjectRequest
	if !BindJSON(ctx, &req) {
		return
	}

	ownerID, ok := middlewares.UserIDFromContext(ctx)
	if !ok {
		RespondUnAuthorized(ctx, "unauthorized", "Missing identity context")
		return
	}

	cctx, cancel := config.WithTimeout(3 * time.Second)
	defer cancel()

	p := project.New(req.Name, req.Description, ownerID,
		project.Status(req.Status), task.Priority(req.Priority),
		req.StartDate, req.EndDate, req.Budget)

	created, err := h.repo.Create(cctx, p)
	if err != nil {
		RespondAppError(ctx, err, "Could not create project")
		return
	}

	ctx.JSON(http.StatusCreated, created)
}

func (h *ProjectsHandler) Update(ctx *gin.Context) {
	var req UpdateProjectRequest
	if !BindJSON(ctx, &req) {
		return
	}

	cctx, cancel := config.WithTimeout(3 * time.Second)
	defer cancel()

	p, err := h.repo.FindByID(cctx, ctx.Param("id"))
	if err != nil {
		RespondAppError(ctx, err, "Could not fetch project")
		return
	}

	if req.Name != nil {
		p.Name = *req.Name
	}
	if req.Description != nil {
		p.Description = req.Description
	}
	if req.Status != nil {
		s := project.Status(*req.Status)
		if !s.Valid() {
			RespondAppError(ctx, apperr.Validation("invalid project status"), "")
			return
		}
		p.UpdateStatus(s)
	}
	if req.Priority != nil {
		p.Priority = task.Priority(*req.Priority)
	}
	if req.StartDate != nil {
		p.StartDate = req.StartDate
	}
	if req.EndDate != nil {
		p.EndDate = req.EndDate
	}
	if req.Budget != nil {
		p.Budget = req.Budget
	}
	p.UpdatedAt = time.Now().UTC()

	updated, err := h.repo.Update(cctx, p)
	if err != nil {
		RespondAppError(ctx, err, "Could not update project")
		return
	}

	ctx.JSON(http.StatusOK, updated)
}

func (h *ProjectsHandler) Delete(ctx *gin.Context) {
	cctx, cancel := config.WithTimeout(3 * time.Second)
	defer cancel()

	if err := h.repo.Delete(cctx, ctx.Param("id")); err != nil {
		RespondAppError(ctx, err, "Could not delete project")
		return
	}

	ctx.Status(http.StatusNoContent)
}
