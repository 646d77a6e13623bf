package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"taskhub/internal/accounts"
	"taskhub/internal/auth"
	"taskhub/internal/http/handlers"
	"taskhub/internal/repo/memory"
)

func authRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	svc := accounts.NewService(memory.NewUsersRepo(), auth.NewManager("test-secret", time.Hour))
	h := handlers.NewAuthHandler(svc, slog.New(slog.NewTextHandler(io.Discard, nil)))

	r := gin.New()
	r.POST("/auth/register", h.Register)
	r.POST("/auth/login", h.Login)
	return r
}

func postJSON(t *testing.T, r *gin.Engine, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRegister_CreatesUser(t *testing.T) {
	r := authRouter(t)

	w := postJSON(t, r, "/auth/register",
		`{"email":"alice@example.com","password":"Str0ng!pass","name":"Alice"}`)

	if w.Code != http.StatusCreated {
		t.Fatalf("got status %d, want 201, body=%s", w.Code, w.Body.String())
	}

	var u struct {
		ID    string `json:"id"`
		Email string `json:"email"`
		Role  string `json:"role"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &u); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if u.ID == "" || u.Email != "alice@example.com" || u.Role != "member" {
		t.Fatalf("unexpected user: %+v", u)
	}
	if bytes.Contains(w.Body.Bytes(), []byte("password")) {
		t.Fatalf("response leaks password material: %s", w.Body.String())
	}
}

func TestRegister_DuplicateEmailConflicts(t *testing.T) {
	r := authRouter(t)

	body := `{"email":"bob@example.com","password":"Str0ng!pass","name":"Bob"}`
	if w := postJSON(t, r, "/auth/register", body); w.Code != http.StatusCreated {
		t.Fatalf("first register: got %d", w.Code)
	}

	w := postJSON(t, r, "/auth/register", body)
	if w.Code != http.StatusConflict {
		t.Fatalf("got status %d, want 409, body=%s", w.Code, w.Body.String())
	}
}

func TestRegister_WeakPasswordRejected(t *testing.T) {
	r := authRouter(t)

	// passes binding length but fails the policy (no digit, no special)
	w := postJSON(t, r, "/auth/register",
		`{"email":"carol@example.com","password":"weakpassword","name":"Carol"}`)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("got status %d, want 400, body=%s", w.Code, w.Body.String())
	}
}

func TestLogin_ReturnsTokenAndUser(t *testing.T) {
	r := authRouter(t)

	postJSON(t, r, "/auth/register",
		`{"email":"dave@example.com","password":"Str0ng!pass","name":"Dave"}`)

	w := postJSON(t, r, "/auth/login",
		`{"email":"dave@example.com","password":"Str0ng!pass"}`)

	if w.Code != http.StatusOK {
		t.Fatalf("got status %d, want 200, body=%s", w.Code, w.Body.String())
	}

	var resp struct {
		Token string `json:"token"`
		User  struct {
			Email string `json:"email"`
		} `json:"user"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if resp.Token == "" {
		t.Fatalf("expected a token, body=%s", w.Body.String())
	}
	if resp.User.Email != "dave@example.com" {
		t.Fatalf("unexpected user: %+v", resp.User)
	}
}

func TestLogin_SameErrorForUnknownEmailAndWrongPassword(t *testing.T) {
	r := authRouter(t)

	postJSON(t, r, "/auth/register",
		`{"email":"erin@example.com","password":"Str0ng!pass","name":"Erin"}`)

	unknown := postJSON(t, r, "/auth/login",
		`{"email":"nobody@example.com","password":"Str0ng!pass"}`)
	wrongPass := postJSON(t, r, "/auth/login",
		`{"email":"erin@example.com","password":"Wr0ng!pass!"}`)

	if unknown.Code != http.StatusUnauthorized || wrongPass.Code != http.StatusUnauthorized {
		t.Fatalf("got %d and %d, want 401 for both", unknown.Code, wrongPass.Code)
	}

	var a, b struct {
		Error struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(unknown.Body.Bytes(), &a); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if err := json.Unmarshal(wrongPass.Body.Bytes(), &b); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if a.Error.Code != b.Error.Code || a.Error.Message != b.Error.Message {
		t.Fatalf("error bodies must not distinguish the failure: %q vs %q",
			unknown.Body.String(), wrongPass.Body.String())
	}
}
