package accounts_test

import (
	"context"
	"testing"
	"time"

	"taskhub/internal/accounts"
	"taskhub/internal/apperr"
	"taskhub/internal/auth"
	"taskhub/internal/domain/user"
	"taskhub/internal/repo/memory"
)

func newService() (*accounts.Service, *memory.UsersRepo) {
	users := memory.NewUsersRepo()
	tokens := auth.NewManager("test-secret", time.Hour)

	return accounts.NewService(users, tokens), users
}

func TestRegisterSuccess(t *testing.T) {
	svc, _ := newService()

	u, err := svc.Register(context.Background(), accounts.RegisterInput{
		Email:    "Dev@Example.com",
		Password: "Password1!",
		Name:     "Dev",
	})
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	if u.Email != "dev@example.com" {
		t.Fatalf("email not normalized: %q", u.Email)
	}
	if u.Role != user.RoleMember {
		t.Fatalf("default role = %s, want member", u.Role)
	}
	if u.ID == "" {
		t.Fatalf("expected generated id")
	}
	if u.PasswordHash == "" || u.PasswordHash == "Password1!" {
		t.Fatalf("password not hashed")
	}
}

func TestRegisterValidation(t *testing.T) {
	svc, _ := newService()

	tests := []struct {
		name     string
		email    string
		password string
		wantKind apperr.Kind
	}{
		{"empty email", "", "Password1!", apperr.KindValidation},
		{"bad email shape", "not-an-email", "Password1!", apperr.KindValidation},
		{"weak password no special", "dev@example.com", "password1", apperr.KindValidation},
		{"weak password short", "dev@example.com", "Pw1!", apperr.KindValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Register(context.Background(), accounts.RegisterInput{
				Email:    tt.email,
				Password: tt.password,
				Name:     "Dev",
			})
			if err == nil {
				t.Fatalf("expected error")
			}
			if apperr.KindOf(err) != tt.wantKind {
				t.Fatalf("kind = %v, want %v", apperr.KindOf(err), tt.wantKind)
			}
		})
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()

	if _, err := svc.Register(ctx, accounts.RegisterInput{
		Email:    "dev@example.com",
		Password: "Password1!",
		Name:     "Dev",
	}); err != nil {
		t.Fatalf("first Register failed: %v", err)
	}

	// Same address with different casing still collides.
	_, err := svc.Register(ctx, accounts.RegisterInput{
		Email:    "DEV@example.com",
		Password: "Password1!",
		Name:     "Dev Again",
	})
	if err == nil {
		t.Fatalf("duplicate email registered")
	}
	if apperr.KindOf(err) != apperr.KindAlreadyExists {
		t.Fatalf("kind = %v, want already_exists", apperr.KindOf(err))
	}
}

func TestRegisterRejectsUnknownRole(t *testing.T) {
	svc, _ := newService()

	_, err := svc.Register(context.Background(), accounts.RegisterInput{
		Email:    "dev@example.com",
		Password: "Password1!",
		Name:     "Dev",
		Role:     "superuser",
	})
	if apperr.KindOf(err) != apperr.KindValidation {
		t.Fatalf("kind = %v, want validation", apperr.KindOf(err))
	}
}

func TestLoginSuccess(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()

	registered, err := svc.Register(ctx, accounts.RegisterInput{
		Email:    "dev@example.com",
		Password: "Password1!",
		Name:     "Dev",
		Role:     user.RoleManager,
	})
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	token, u, err := svc.Login(ctx, "dev@example.com", "Password1!")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if token == "" {
		t.Fatalf("empty token")
	}
	if u.ID != registered.ID {
		t.Fatalf("login returned a different user")
	}

	claims, err := auth.NewManager("test-secret", time.Hour).Validate(token)
	if err != nil {
		t.Fatalf("minted token did not validate: %v", err)
	}
	if claims.UserID != registered.ID || claims.Role != user.RoleManager {
		t.Fatalf("claims mismatch: %+v", claims)
	}
}

// Unknown email and wrong password must be indistinguishable.
func TestLoginEnumerationResistance(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()

	if _, err := svc.Register(ctx, accounts.RegisterInput{
		Email:    "dev@example.com",
		Password: "Password1!",
		Name:     "Dev",
	}); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	_, _, errWrongPassword := svc.Login(ctx, "dev@example.com", "WrongPass1!")
	_, _, errUnknownEmail := svc.Login(ctx, "nobody@example.com", "Password1!")

	if errWrongPassword == nil || errUnknownEmail == nil {
		t.Fatalf("expected both logins to fail")
	}
	if apperr.KindOf(errWrongPassword) != apperr.KindUnauthorized {
		t.Fatalf("wrong password kind = %v", apperr.KindOf(errWrongPassword))
	}
	if apperr.KindOf(errUnknownEmail) != apperr.KindUnauthorized {
		t.Fatalf("unknown email kind = %v", apperr.KindOf(errUnknownEmail))
	}
	if errWrongPassword.Error() != errUnknownEmail.Error() {
		t.Fatalf("login errors differ: %q vs %q", errWrongPassword, errUnknownEmail)
	}
}

func TestLoginMatchesCaseInsensitively(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()

	if _, err := svc.Register(ctx, accounts.RegisterInput{
		Email:    "Dev@Example.com",
		Password: "Password1!",
		Name:     "Dev",
	}); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	if _, _, err := svc.Login(ctx, "dev@EXAMPLE.com", "Password1!"); err != nil {
		t.Fatalf("case-insensitive login failed: %v", err)
	}
}

func TestGetAndDelete(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()

	u, err := svc.Register(ctx, accounts.RegisterInput{
		Email:    "dev@example.com",
		Password: "Password1!",
		Name:     "Dev",
	})
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	got, err := svc.Get(ctx, u.ID)
	if err != nil || got.ID != u.ID {
		t.Fatalf("Get failed: %v", err)
	}

	if err := svc.Delete(ctx, u.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	if _, err := svc.Get(ctx, u.ID); apperr.KindOf(err) != apperr.KindNotFound {
		t.Fatalf("deleted user still found, err=%v", err)
	}
	if err := svc.Delete(ctx, u.ID); apperr.KindOf(err) != apperr.KindNotFound {
		t.Fatalf("double delete kind = %v, want not_found", apperr.KindOf(err))
	}
}
