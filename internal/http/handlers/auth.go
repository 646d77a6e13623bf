package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"taskhub/internal/accounts"
	"taskhub/internal/config"
	"taskhub/internal/domain/user"
)

type AuthHandler struct {
	svc *accounts.Service
	log *slog.Logger
}

func NewAuthHandler(svc *accounts.Service, log *slog.Logger) *AuthHandler {
	return &AuthHandler{svc: svc, log: log}
}

type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8,max=128"`
	Name     string `json:"name" binding:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func (h *AuthHandler) Register(ctx *gin.Context) {
	var req RegisterRequest
	if !BindJSON(ctx, &req) {
		return
	}

	cctx, cancel := config.WithTimeout(3 * time.Second)
	defer cancel()

	// self-service signups always start as members
	u, err := h.svc.Register(cctx, accounts.RegisterInput{
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
		Role:     user.RoleMember,
	})
	if err != nil {
		h.log.Warn("registration failed", "email", req.Email, "error", err)
		RespondAppError(ctx, err, "Could not create user")
		return
	}

	h.log.Info("new user registered", "user_id", u.ID, "email", u.Email)
	ctx.JSON(http.StatusCreated, u)
}

func (h *AuthHandler) Login(ctx *gin.Context) {
	var req LoginRequest
	if !BindJSON(ctx, &req) {
		return
	}

	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	token, u, err := h.svc.Login(cctx, req.Email, req.Password)
	if err != nil {
		h.log.Warn("login attempt failed", "email", req.Email)
		// one message regardless of which check failed
		RespondUnAuthorized(ctx, "invalid_credentials", "Email or password is incorrect.")
		return
	}

	h.log.Info("user logged in", "user_id", u.ID)
	ctx.JSON(http.StatusOK, gin.H{
		"token": token,
		"user":  u,
	})
}
