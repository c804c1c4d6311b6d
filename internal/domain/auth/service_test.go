package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/mx70/mx70-api/internal/domain/user"
	"github.com/mx70/mx70-api/internal/pkg/jwt"
	"github.com/mx70/mx70-api/internal/pkg/password"
)

type fakeUserRepo struct {
	created *user.User
	byEmail *user.User
	byID    *user.User
}

func (f *fakeUserRepo) Create(ctx context.Context, u *user.User) error {
	f.created = u
	f.byID = u
	f.byEmail = u
	return nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	if f.byID != nil && f.byID.ID == id {
		return f.byID, nil
	}
	return nil, nil
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	if f.byEmail != nil && f.byEmail.Email == email {
		return f.byEmail, nil
	}
	return nil, nil
}

func (f *fakeUserRepo) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	return nil
}

func newTestJWT() *jwt.Service {
	return jwt.NewService("test-secret", 15*time.Minute, 7*24*time.Hour)
}

func TestRegisterCreatesUserWithRole(t *testing.T) {
	repo := &fakeUserRepo{}
	svc := NewService(repo, newTestJWT(), nil)

	resp, err := svc.Register(context.Background(), &RegisterRequest{
		Email:    "Biz@Example.COM",
		Password: "secret-password",
		Role:     "business_local",
	})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	if repo.created == nil {
		t.Fatal("user was not persisted")
	}
	if repo.created.Email != "biz@example.com" {
		t.Errorf("email not normalized: %q", repo.created.Email)
	}
	if repo.created.Role != user.RoleBusiness {
		t.Errorf("unexpected role %q", repo.created.Role)
	}
	if !repo.created.IsActive {
		t.Error("new user must be active")
	}
	if repo.created.PasswordHash == "secret-password" {
		t.Error("password stored in plain text")
	}
	if resp.Tokens.AccessToken == "" || resp.Tokens.RefreshToken == "" {
		t.Error("expected token pair in response")
	}
	if resp.Tokens.TokenType != "Bearer" {
		t.Errorf("unexpected token type %q", resp.Tokens.TokenType)
	}
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	repo := &fakeUserRepo{}
	svc := NewService(repo, newTestJWT(), nil)

	req := &RegisterRequest{Email: "c@example.com", Password: "secret-password", Role: "clipper"}
	if _, err := svc.Register(context.Background(), req); err != nil {
		t.Fatalf("first register failed: %v", err)
	}

	_, err := svc.Register(context.Background(), &RegisterRequest{
		Email: "c@example.com", Password: "other-password", Role: "clipper",
	})
	if !errors.Is(err, ErrEmailAlreadyExists) {
		t.Fatalf("expected ErrEmailAlreadyExists, got %v", err)
	}
}

func TestRegisterRejectsUnknownRole(t *testing.T) {
	svc := NewService(&fakeUserRepo{}, newTestJWT(), nil)

	_, err := svc.Register(context.Background(), &RegisterRequest{
		Email: "x@example.com", Password: "secret-password", Role: "admin",
	})
	if !errors.Is(err, ErrInvalidRole) {
		t.Fatalf("expected ErrInvalidRole, got %v", err)
	}
}

func TestLogin(t *testing.T) {
	hash, err := password.Hash("correct-password")
	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}

	u := &user.User{
		ID:           uuid.New(),
		Email:        "clipper@example.com",
		PasswordHash: hash,
		Role:         user.RoleClipper,
		IsActive:     true,
	}
	repo := &fakeUserRepo{byEmail: u, byID: u}
	svc := NewService(repo, newTestJWT(), nil)

	t.Run("success", func(t *testing.T) {
		resp, err := svc.Login(context.Background(), &LoginRequest{
			Email: "clipper@example.com", Password: "correct-password",
		})
		if err != nil {
			t.Fatalf("login failed: %v", err)
		}
		if resp.User.Role != "clipper" {
			t.Errorf("unexpected role %q", resp.User.Role)
		}
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Login(context.Background(), &LoginRequest{
			Email: "clipper@example.com", Password: "wrong",
		})
		if !errors.Is(err, ErrInvalidCredentials) {
			t.Fatalf("expected ErrInvalidCredentials, got %v", err)
		}
	})

	t.Run("unknown email", func(t *testing.T) {
		_, err := svc.Login(context.Background(), &LoginRequest{
			Email: "nobody@example.com", Password: "correct-password",
		})
		if !errors.Is(err, ErrInvalidCredentials) {
			t.Fatalf("expected ErrInvalidCredentials, got %v", err)
		}
	})

	t.Run("inactive user", func(t *testing.T) {
		u.IsActive = false
		defer func() { u.IsActive = true }()
		_, err := svc.Login(context.Background(), &LoginRequest{
			Email: "clipper@example.com", Password: "correct-password",
		})
		if !errors.Is(err, ErrUserInactive) {
			t.Fatalf("expected ErrUserInactive, got %v", err)
		}
	})
}

func TestRefreshRotatesTokens(t *testing.T) {
	repo := &fakeUserRepo{}
	svc := NewService(repo, newTestJWT(), nil)

	resp, err := svc.Register(context.Background(), &RegisterRequest{
		Email: "biz@example.com", Password: "secret-password", Role: "business_local",
	})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	refreshed, err := svc.Refresh(context.Background(), resp.Tokens.RefreshToken)
	if err != nil {
		t.Fatalf("refresh failed: %v", err)
	}
	if refreshed.Tokens.AccessToken == "" {
		t.Error("expected new access token")
	}

	if _, err := svc.Refresh(context.Background(), "not-a-token"); !errors.Is(err, ErrInvalidRefreshToken) {
		t.Fatalf("expected ErrInvalidRefreshToken, got %v", err)
	}

	if _, err := svc.Refresh(context.Background(), ""); !errors.Is(err, ErrRefreshTokenRequired) {
		t.Fatalf("expected ErrRefreshTokenRequired, got %v", err)
	}
}
