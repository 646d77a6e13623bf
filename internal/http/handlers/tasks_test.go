package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"taskhub/internal/http/handlers"
	"taskhub/internal/http/middlewares"
	"taskhub/internal/repo/memory"
	"taskhub/internal/tasks"
)

func tasksRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	svc := tasks.NewService(memory.NewTasksRepo(), nil, nil,
		slog.New(slog.NewTextHandler(io.Discard, nil)))
	h := handlers.NewTasksHandler(svc)

	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set(middlewares.CtxUserID, "actor-1")
	})
	r.GET("/tasks", h.List)
	r.GET("/tasks/:id", h.Get)
	r.POST("/tasks", h.Create)
	r.PUT("/tasks/:id", h.Update)
	r.POST("/tasks/:id/assign", h.Assign)
	r.POST("/tasks/:id/hours", h.LogHours)
	r.DELETE("/tasks/:id", h.Delete)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	var buf io.Reader
	if body != "" {
		buf = bytes.NewBufferString(body)
	}
	req := httptest.NewRequest(method, path, buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

type taskResponse struct {
	ID          string   `json:"id"`
	Status      string   `json:"status"`
	AssigneeID  *string  `json:"assigneeId"`
	ActualHours *float64 `json:"actualHours"`
}

func createTask(t *testing.T, r *gin.Engine) taskResponse {
	t.Helper()

	w := doJSON(t, r, http.MethodPost, "/tasks",
		`{"projectId":"p-1","title":"Ship the release"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("create: got %d, body=%s", w.Code, w.Body.String())
	}

	var resp taskResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	return resp
}

func TestCreateTask_DefaultsToTodo(t *testing.T) {
	r := tasksRouter(t)

	created := createTask(t, r)
	if created.Status != "todo" {
		t.Fatalf("got status %q, want todo", created.Status)
	}
}

func TestUpdateTask_LegalTransition(t *testing.T) {
	r := tasksRouter(t)
	created := createTask(t, r)

	w := doJSON(t, r, http.MethodPut, "/tasks/"+created.ID, `{"status":"inprogress"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("got %d, body=%s", w.Code, w.Body.String())
	}

	var resp taskResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.Status != "inprogress" {
		t.Fatalf("got status %q, want inprogress", resp.Status)
	}
}

func TestUpdateTask_IllegalTransitionRejected(t *testing.T) {
	r := tasksRouter(t)
	created := createTask(t, r)

	// todo -> done skips the pipeline
	w := doJSON(t, r, http.MethodPut, "/tasks/"+created.ID, `{"status":"done"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("got %d, want 400, body=%s", w.Code, w.Body.String())
	}

	// and the stored task is untouched
	get := doJSON(t, r, http.MethodGet, "/tasks/"+created.ID, "")
	var resp taskResponse
	if err := json.Unmarshal(get.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.Status != "todo" {
		t.Fatalf("status changed to %q after rejected update", resp.Status)
	}
}

func TestAssignTask_SetAndClear(t *testing.T) {
	r := tasksRouter(t)
	created := createTask(t, r)

	w := doJSON(t, r, http.MethodPost, "/tasks/"+created.ID+"/assign", `{"assigneeId":"u-9"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("assign: got %d, body=%s", w.Code, w.Body.String())
	}
	var resp taskResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.AssigneeID == nil || *resp.AssigneeID != "u-9" {
		t.Fatalf("got assignee %v, want u-9", resp.AssigneeID)
	}

	w = doJSON(t, r, http.MethodPost, "/tasks/"+created.ID+"/assign", `{"assigneeId":null}`)
	if w.Code != http.StatusOK {
		t.Fatalf("unassign: got %d, body=%s", w.Code, w.Body.String())
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.AssigneeID != nil {
		t.Fatalf("assignee not cleared: %v", *resp.AssigneeID)
	}
}

func TestLogHours_Accumulates(t *testing.T) {
	r := tasksRouter(t)
	created := createTask(t, r)

	doJSON(t, r, http.MethodPost, "/tasks/"+created.ID+"/hours", `{"hours":2.5}`)
	w := doJSON(t, r, http.MethodPost, "/tasks/"+created.ID+"/hours", `{"hours":1.0}`)
	if w.Code != http.StatusOK {
		t.Fatalf("got %d, body=%s", w.Code, w.Body.String())
	}

	var resp taskResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.ActualHours == nil || *resp.ActualHours != 3.5 {
		t.Fatalf("got hours %v, want 3.5", resp.ActualHours)
	}
}

func TestLogHours_NegativeRejected(t *testing.T) {
	r := tasksRouter(t)
	created := createTask(t, r)

	w := doJSON(t, r, http.MethodPost, "/tasks/"+created.ID+"/hours", `{"hours":-1}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("got %d, want 400, body=%s", w.Code, w.Body.String())
	}
}

func TestGetTask_NotFound(t *testing.T) {
	r := tasksRouter(t)

	w := doJSON(t, r, http.MethodGet, "/tasks/missing", "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("got %d, want 404, body=%s", w.Code, w.Body.String())
	}
}
