package accounts

import (
	"context"

	"taskhub/internal/apperr"
	"taskhub/internal/domain/user"
	"taskhub/internal/security"
)

// UserRepository is the account store port. Postgres implements it for
// real; the memory repo stands in for unit tests.
type UserRepository interface {
	FindByID(ctx context.Context, id string) (user.User, error)
	FindByEmail(ctx context.Context, email string) (user.User, error)
	FindAll(ctx context.Context) ([]user.User, error)
	Create(ctx context.Context, u user.User) (user.User, error)
	Update(ctx context.Context, u user.User) (user.User, error)
	Delete(ctx context.Context, id string) error
}

// TokenMinter is the slice of the token manager this service needs.
type TokenMinter interface {
	Mint(userID, email string, role user.Role) (string, error)
}

type Service struct {
	users  UserRepository
	tokens TokenMinter
}

func NewService(users UserRepository, tokens TokenMinter) *Service {
	return &Service{
		users:  users,
		tokens: tokens,
	}
}

type RegisterInput struct {
	Email    string
	Password string
	Name     string
	Role     user.Role
}

// Register validates input before touching storage: email shape, password
// policy, then uniqueness. The password is hashed only once those pass.
func (s *Service) Register(ctx context.Context, in RegisterInput) (user.User, error) {
	email, err := user.NormalizeEmail(in.Email)
	if err != nil {
		return user.User{}, err
	}

	if err := user.ValidatePassword(in.Password); err != nil {
		return user.User{}, err
	}

	if in.Role != "" && !in.Role.Valid() {
		return user.User{}, apperr.Validation("invalid role")
	}

	_, err = s.users.FindByEmail(ctx, email)
	if err == nil {
		return user.User{}, apperr.AlreadyExists("email already registered")
	}
	if !apperr.IsKind(err, apperr.KindNotFound) {
		return user.User{}, apperr.Internal("could not check email uniqueness", err)
	}

	hash, err := security.HashPassword(in.Password)
	if err != nil {
		return user.User{}, err
	}

	u := user.New(email, hash, in.Name, in.Role)

	created, err := s.users.Create(ctx, u)
	if err != nil {
		return user.User{}, apperr.Internal("could not create user", err)
	}

	return created, nil
}

// Login authenticates by email and password and mints a bearer token.
// Unknown email and wrong password fail identically so the endpoint
// cannot be used to enumerate registered addresses.
func (s *Service) Login(ctx context.Context, email, password string) (string, user.User, error) {
	errInvalid := apperr.Unauthorized("invalid credentials")

	normalized, err := user.NormalizeEmail(email)
	if err != nil {
		return "", user.User{}, errInvalid
	}

	u, err := s.users.FindByEmail(ctx, normalized)
	if err != nil {
		if apperr.IsKind(err, apperr.KindNotFound) {
			return "", user.User{}, errInvalid
		}
		return "", user.User{}, apperr.Internal("could not look up user", err)
	}

	ok, err := security.CheckPassword(password, u.PasswordHash)
	if err != nil {
		return "", user.User{}, err
	}
	if !ok {
		return "", user.User{}, errInvalid
	}

	token, err := s.tokens.Mint(u.ID, u.Email, u.Role)
	if err != nil {
		return "", user.User{}, err
	}

	return token, u, nil
}

func (s *Service) Get(ctx context.Context, id string) (user.User, error) {
	u, err := s.users.FindByID(ctx, id)
	if err != nil {
		if apperr.IsKind(err, apperr.KindNotFound) {
			return user.User{}, apperr.NotFound("user not found")
		}
		return user.User{}, apperr.Internal("could not load user", err)
	}
	return u, nil
}

func (s *Service) List(ctx context.Context) ([]user.User, error) {
	users, err := s.users.FindAll(ctx)
	if err != nil {
		return nil, apperr.Internal("could not list users", err)
	}
	return users, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	err := s.users.Delete(ctx, id)
	if err != nil {
		if apperr.IsKind(err, apperr.KindNotFound) {
			return apperr.NotFound("user not found")
		}
		return apperr.Internal("could not delete user", err)
	}
	return nil
}
