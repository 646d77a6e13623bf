package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"taskhub/internal/config"
	"taskhub/internal/domain/notification"
	"taskhub/internal/http/middlewares"
)

type NotificationsStore interface {
	FindByUser(ctx context.Context, userID string, unreadOnly bool) ([]notification.Notification, error)
	CountUnread(ctx context.Context, userID string) (int, error)
	MarkRead(ctx context.Context, id, userID string) error
	MarkAllRead(ctx context.Context, userID string) error
	Delete(ctx context.Context, id, userID string) error
}

// NotificationsHandler only ever operates on the caller's own rows;
// the user id always comes from the token, never from the request.
type NotificationsHandler struct {
	repo NotificationsStore
}

func NewNotificationsHandler(repo NotificationsStore) *NotificationsHandler {
	return &NotificationsHandler{repo: repo}
}

func (h *NotificationsHandler) caller(ctx *gin.Context) (string, bool) {
	id, ok := middlewares.UserIDFromContext(ctx)
	if !ok {
		RespondUnAuthorized(ctx, "unauthorized", "Missing identity context")
	}
	return id, ok
}

func (h *NotificationsHandler) List(ctx *gin.Context) {
	userID, ok := h.caller(ctx)
	if !ok {
		return
	}

	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	unreadOnly := ctx.Query("unread") == "true"

	items, err := h.repo.FindByUser(cctx, userID, unreadOnly)
	if err != nil {
		RespondAppError(ctx, err, "Could not list notifications")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"items": items,
		"count": len(items),
	})
}

func (h *NotificationsHandler) UnreadCount(ctx *gin.Context) {
	userID, ok := h.caller(ctx)
	if !ok {
		return
	}

	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	count, err := h.repo.CountUnread(cctx, userID)
	if err != nil {
		RespondAppError(ctx, err, "Could not count notifications")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"unread": count})
}

func (h *NotificationsHandler) MarkRead(ctx *gin.Context) {
	userID, ok := h.caller(ctx)
	if !ok {
		return
	}

	cctx, cancel := config.WithTimeout(3 * time.Second)
	defer cancel()

	if err := h.repo.MarkRead(cctx, ctx.Param("id"), userID); err != nil {
		RespondAppError(ctx, err, "Could not mark notification read")
		return
	}

	ctx.Status(http.StatusNoContent)
}

func (h *NotificationsHandler) MarkAllRead(ctx *gin.Context) {
	userID, ok := h.caller(ctx)
	if !ok {
		return
	}

	cctx, cancel := config.WithTimeout(3 * time.Second)
	defer cancel()

	if err := h.repo.MarkAllRead(cctx, userID); err != nil {
		RespondAppError(ctx, err, "Could not mark notifications read")
		return
	}

	ctx.Status(http.StatusNoContent)
}

func (h *NotificationsHandler) Delete(ctx *gin.Context) {
	userID, ok := h.caller(ctx)
	if !ok {
		return
	}

	cctx, cancel := config.WithTimeout(3 * time.Second)
	defer cancel()

	if err := h.repo.Delete(cctx, ctx.Param("id"), userID); err != nil {
		RespondAppError(ctx, err, "Could not delete notification")
		return
	}

	ctx.Status(http.StatusNoContent)
}
