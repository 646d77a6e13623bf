package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"taskhub/internal/config"
	"taskhub/internal/domain/task"
	"taskhub/internal/http/middlewares"
	"taskhub/internal/tasks"
)

type TasksHandler struct {
	svc *tasks.Service
}

func NewTasksHandler(svc *tasks.Service) *TasksHandler {
	return &TasksHandler{svc: svc}
}

type CreateTaskRequest struct {
	ProjectID      string     `json:"projectId" binding:"required"`
	MilestoneID    *string    `json:"milestoneId"`
	Title          string     `json:"title" binding:"required,min=1,max=200"`
	Description    *string    `json:"description"`
	Priority       string     `json:"priority" binding:"omitempty,oneof=low medium high critical"`
	AssigneeID     *string    `json:"assigneeId"`
	DueDate        *time.Time `json:"dueDate"`
	EstimatedHours *float64   `json:"estimatedHours"`
}

type UpdateTaskRequest struct {
	Title          *string    `json:"title" binding:"omitempty,min=1,max=200"`
	Description    *string    `json:"description"`
	Status         *string    `json:"status" binding:"omitempty,oneof=todo inprogress review done blocked"`
	Priority       *string    `json:"priority" binding:"omitempty,oneof=low medium high critical"`
	MilestoneID    *string    `json:"milestoneId"`
	DueDate        *time.Time `json:"dueDate"`
	EstimatedHours *float64   `json:"estimatedHours"`
}

type AssignTaskRequest struct {
	// null clears the assignee
	AssigneeID *string `json:"assigneeId"`
}

type LogHoursRequest struct {
	Hours float64 `json:"hours" binding:"required"`
}

func (h *TasksHandler) actor(ctx *gin.Context) string {
	id, _ := middlewares.UserIDFromContext(ctx)
	return id
}

func (h *TasksHandler) List(ctx *gin.Context) {
	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	var (
		items []task.Task
		err   error
	)

	switch {
	case ctx.Query("projectId") != "":
		items, err = h.svc.ListByProject(cctx, ctx.Query("projectId"))
	case ctx.Query("assigneeId") != "":
		items, err = h.svc.ListByAssignee(cctx, ctx.Query("assigneeId"))
	case ctx.Query("status") != "":
		items, err = h.svc.ListByStatus(cctx, task.Status(ctx.Query("status")))
	default:
		items, err = h.svc.List(cctx)
	}

	if err != nil {
		RespondAppError(ctx, err, "Could not list tasks")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"items": items,
		"count": len(items),
	})
}

// ListByProject serves /projects/:id/tasks.
func (h *TasksHandler) ListByProject(ctx *gin.Context) {
	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	items, err := h.svc.ListByProject(cctx, ctx.Param("id"))
	if err != nil {
		RespondAppError(ctx, err, "Could not list tasks")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"items": items,
		"count": len(items),
	})
}

func (h *TasksHandler) Get(ctx *gin.Context) {
	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	t, err := h.svc.Get(cctx, ctx.Param("id"))
	if err != nil {
		RespondAppError(ctx, err, "Could not fetch task")
		return
	}

	ctx.JSON(http.StatusOK, t)
}

func (h *TasksHandler) Create(ctx *gin.Context) {
	var req CreateTaskRequest
	if !BindJSON(ctx, &req) {
		return
	}

	cctx, cancel := config.WithTimeout(3 * time.Second)
	defer cancel()

	t, err := h.svc.Create(cctx, h.actor(ctx), tasks.CreateInput{
		ProjectID:      req.ProjectID,
		MilestoneID:    req.MilestoneID,
		Title:          req.Title,
		Description:    req.Description,
		Priority:       task.Priority(req.Priority),
		AssigneeID:     req.AssigneeID,
		DueDate:        req.DueDate,
		EstimatedHours: req.EstimatedHours,
	})
	if err != nil {
		RespondAppError(ctx, err, "Could not create task")
		return
	}

	ctx.JSON(http.StatusCreated, t)
}

func (h *TasksHandler) Update(ctx *gin.Context) {
	var req UpdateTaskRequest
	if !BindJSON(ctx, &req) {
		return
	}

	cctx, cancel := config.WithTimeout(3 * time.Second)
	defer cancel()

	in := tasks.UpdateInput{
		Title:          req.Title,
		Description:    req.Description,
		MilestoneID:    req.MilestoneID,
		DueDate:        req.DueDate,
		EstimatedHours: req.EstimatedHours,
	}
	if req.Status != nil {
		s := task.Status(*req.Status)
		in.Status = &s
	}
	if req.Priority != nil {
		p := task.Priority(*req.Priority)
		in.Priority = &p
	}

	t, err := h.svc.Update(cctx, h.actor(ctx), ctx.Param("id"), in)
	if err != nil {
		RespondAppError(ctx, err, "Could not update task")
		return
	}

	ctx.JSON(http.StatusOK, t)
}

func (h *TasksHandler) Assign(ctx *gin.Context) {
	var req AssignTaskRequest
	if !BindJSON(ctx, &req) {
		return
	}

	cctx, cancel := config.WithTimeout(3 * time.Second)
	defer cancel()

	t, err := h.svc.Assign(cctx, h.actor(ctx), ctx.Param("id"), req.AssigneeID)
	if err != nil {
		RespondAppError(ctx, err, "Could not assign task")
		return
	}

	ctx.JSON(http.StatusOK, t)
}

func (h *TasksHandler) LogHours(ctx *gin.Context) {
	var req LogHoursRequest
	if !BindJSON(ctx, &req) {
		return
	}

	cctx, cancel := config.WithTimeout(3 * time.Second)
	defer cancel()

	t, err := h.svc.LogHours(cctx, h.actor(ctx), ctx.Param("id"), req.Hours)
	if err != nil {
		RespondAppError(ctx, err, "Could not log hours")
		return
	}

	ctx.JSON(http.StatusOK, t)
}

func (h *TasksHandler) Delete(ctx *gin.Context) {
	cctx, cancel := config.WithTimeout(3 * time.Second)
	defer cancel()

	if err := h.svc.Delete(cctx, h.actor(ctx), ctx.Param("id")); err != nil {
		RespondAppError(ctx, err, "Could not delete task")
		return
	}

	ctx.Status(http.StatusNoContent)
}
