package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"taskhub/internal/accounts"
	"taskhub/internal/config"
	"taskhub/internal/http/middlewares"
)

type UsersHandler struct {
	svc *accounts.Service
}

func NewUsersHandler(svc *accounts.Service) *UsersHandler {
	return &UsersHandler{svc: svc}
}

func (h *UsersHandler) Me(ctx *gin.Context) {
	id, ok := middlewares.UserIDFromContext(ctx)
	if !ok {
		RespondUnAuthorized(ctx, "unauthorized", "Missing identity context")
		return
	}

	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	u, err := h.svc.Get(cctx, id)
	if err != nil {
		RespondAppError(ctx, err, "Could not fetch user")
		return
	}

	ctx.JSON(http.StatusOK, u)
}

func (h *UsersHandler) List(ctx *gin.Context) {
	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	users, err := h.svc.List(cctx)
	if err != nil {
		RespondAppError(ctx, err, "Could not list users")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"items": users,
		"count": len(users),
	})
}

func (h *UsersHandler) Get(ctx *gin.Context) {
	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	u, err := h.svc.Get(cctx, ctx.Param("id"))
	if err != nil {
		RespondAppError(ctx, err, "Could not fetch user")
		return
	}

	ctx.JSON(http.StatusOK, u)
}

func (h *UsersHandler) Delete(ctx *gin.Context) {
	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	if err := h.svc.Delete(cctx, ctx.Param("id")); err != nil {
		RespondAppError(ctx, err, "Could not delete user")
		return
	}

	ctx.Status(http.StatusNoContent)
}
