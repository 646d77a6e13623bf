package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"taskhub/internal/config"
	"taskhub/internal/domain/team"
)

type TeamsStore interface {
	FindByID(ctx context.Context, id string) (team.Team, error)
	FindAll(ctx context.Context) ([]team.Team, error)
	Create(ctx context.Context, t team.Team) (team.Team, error)
	Update(ctx context.Context, t team.Team) (team.Team, error)
	Delete(ctx context.Context, id string) error
	FindMembers(ctx context.Context, teamID string) ([]team.Member, error)
	AddMember(ctx context.Context, m team.Member) (team.Member, error)
}

type TeamsHandler struct {
	repo TeamsStore
}

func NewTeamsHandler(repo TeamsStore) *TeamsHandler {
	return &TeamsHandler{repo: repo}
}

type CreateTeamRequest struct {
	Name        string  `json:"name" binding:"required,min=1,max=200"`
	Description *string `json:"description"`
	LeadID      *string `json:"leadId"`
}

type UpdateTeamRequest struct {
	Name        *string `json:"name" binding:"omitempty,min=1,max=200"`
	Description *string `json:"description"`
	LeadID      *string `json:"leadId"`
}

type AddMemberRequest struct {
	UserID string `json:"userId" binding:"required"`
	Role   string `json:"role" binding:"omitempty,oneof=lead member"`
}

func (h *TeamsHandler) List(ctx *gin.Context) {
	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	teams, err := h.repo.FindAll(cctx)
	if err != nil {
		RespondAppError(ctx, err, "Could not list teams")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"items": teams,
		"count": len(teams),
	})
}

func (h *TeamsHandler) Get(ctx *gin.Context) {
	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	t, err := h.repo.FindByID(cctx, ctx.Param("id"))
	if err != nil {
		RespondAppError(ctx, err, "Could not fetch team")
		return
	}

	ctx.JSON(http.StatusOK, t)
}

func (h *TeamsHandler) Create(ctx *gin.Context) {
	var req CreateTeamRequest
	if !BindJSON(ctx, &req) {
		return
	}

	cctx, cancel := config.WithTimeout(3 * time.Second)
	defer cancel()

	created, err := h.repo.Create(cctx, team.New(req.Name, req.Description, req.LeadID))
	if err != nil {
		RespondAppError(ctx, err, "Could not create team")
		return
	}

	ctx.JSON(http.StatusCreated, created)
}

func (h *TeamsHandler) Update(ctx *gin.Context) {
	var req UpdateTeamRequest
	if !BindJSON(ctx, &req) {
		return
	}

	cctx, cancel := config.WithTimeout(3 * time.Second)
	defer cancel()

	t, err := h.repo.FindByID(cctx, ctx.Param("id"))
	if err != nil {
		RespondAppError(ctx, err, "Could not fetch team")
		return
	}

	if req.Name != nil {
		t.Name = *req.Name
	}
	if req.Description != nil {
		t.Description = req.Description
	}
	if req.LeadID != nil {
		t.SetLead(req.LeadID)
	}
	t.UpdatedAt = time.Now().UTC()

	updated, err := h.repo.Update(cctx, t)
	if err != nil {
		RespondAppError(ctx, err, "Could not update team")
		return
	}

	ctx.JSON(http.StatusOK, updated)
}

func (h *TeamsHandler) Delete(ctx *gin.Context) {
	cctx, cancel := config.WithTimeout(3 * time.Second)
	defer cancel()

	if err := h.repo.Delete(cctx, ctx.Param("id")); err != nil {
		RespondAppError(ctx, err, "Could not delete team")
		return
	}

	ctx.Status(http.StatusNoContent)
}

func (h *TeamsHandler) ListMembers(ctx *gin.Context) {
	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	members, err := h.repo.FindMembers(cctx, ctx.Param("id"))
	if err != nil {
		RespondAppError(ctx, err, "Could not list team members")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"items": members,
		"count": len(members),
	})
}

func (h *TeamsHandler) AddMember(ctx *gin.Context) {
	var req AddMemberRequest
	if !BindJSON(ctx, &req) {
		return
	}

	cctx, cancel := config.WithTimeout(3 * time.Second)
	defer cancel()

	m := team.NewMember(ctx.Param("id"), req.UserID, team.MemberRole(req.Role))

	created, err := h.repo.AddMember(cctx, m)
	if err != nil {
		RespondAppError(ctx, err, "Could not add team member")
		return
	}

	ctx.JSON(http.StatusCreated, created)
}
