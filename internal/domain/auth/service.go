package auth

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/mx70/mx70-api/internal/domain/user"
	"github.com/mx70/mx70-api/internal/pkg/jwt"
	"github.com/mx70/mx70-api/internal/pkg/password"
)

// Emailer queues account lifecycle emails
type Emailer interface {
	SendWelcome(to, toName, userName, role, dashboardURL string)
}

// Service handles authentication business logic
type Service struct {
	userRepo   user.Repository
	jwtService *jwt.Service
	redis      *redis.Client // nil if Redis disabled

	emails       Emailer // nil if email disabled
	dashboardURL string
}

// NewService creates auth service
func NewService(userRepo user.Repository, jwtService *jwt.Service, redis *redis.Client) *Service {
	return &Service{
		userRepo:   userRepo,
		jwtService: jwtService,
		redis:      redis,
	}
}

// SetEmailer enables the welcome email on registration
func (s *Service) SetEmailer(e Emailer, dashboardURL string) {
	s.emails = e
	s.dashboardURL = dashboardURL
}

// Register creates new user account
func (s *Service) Register(ctx context.Context, req *RegisterRequest) (*AuthResponse, error) {
	req.Email = normalizeEmail(req.Email)

	existing, _ := s.userRepo.GetByEmail(ctx, req.Email)
	if existing != nil {
		return nil, ErrEmailAlreadyExists
	}

	if !user.IsValidRole(req.Role) {
		return nil, ErrInvalidRole
	}

	hash, err := password.Hash(req.Password)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	u := &user.User{
		ID:           uuid.New(),
		Email:        req.Email,
		PasswordHash: hash,
		Role:         user.Role(req.Role),
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.userRepo.Create(ctx, u); err != nil {
		return nil, err
	}

	if s.emails != nil {
		name := req.Email
		if i := strings.Index(name, "@"); i > 0 {
			name = name[:i]
		}
		s.emails.SendWelcome(u.Email, name, name, string(u.Role), s.dashboardURL)
	}

	return s.generateTokens(ctx, u)
}

// Login authenticates user and returns tokens
func (s *Service) Login(ctx context.Context, req *LoginRequest) (*AuthResponse, error) {
	req.Email = normalizeEmail(req.Email)

	u, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrInvalidCredentials
	}

	if !password.Verify(req.Password, u.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	if !u.IsActive {
		return nil, ErrUserInactive
	}

	return s.generateTokens(ctx, u)
}

// Refresh exchanges a valid refresh token for a new token pair
func (s *Service) Refresh(ctx context.Context, refreshToken string) (*AuthResponse, error) {
	if refreshToken == "" {
		return nil, ErrRefreshTokenRequired
	}

	claims, err := s.jwtService.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, ErrInvalidRefreshToken
	}

	// Token must still be whitelisted (not revoked by logout)
	known, err := s.refreshTokenKnown(ctx, refreshToken, claims.UserID)
	if err != nil {
		return nil, err
	}
	if !known {
		return nil, ErrInvalidRefreshToken
	}

	u, err := s.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrUserNotFound
	}
	if !u.IsActive {
		return nil, ErrUserInactive
	}

	// Rotate: revoke old token, issue a fresh pair
	_ = s.revokeRefreshToken(ctx, refreshToken)

	return s.generateTokens(ctx, u)
}

// Logout revokes a refresh token
func (s *Service) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return ErrRefreshTokenRequired
	}
	return s.revokeRefreshToken(ctx, refreshToken)
}

// Me returns the current user
func (s *Service) Me(ctx context.Context, userID uuid.UUID) (*user.User, error) {
	u, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrUserNotFound
	}
	return u, nil
}

func (s *Service) generateTokens(ctx context.Context, u *user.User) (*AuthResponse, error) {
	accessToken, err := s.jwtService.GenerateAccessToken(u.ID, string(u.Role))
	if err != nil {
		return nil, err
	}

	refreshToken, _, _, err := s.jwtService.GenerateRefreshToken(u.ID)
	if err != nil {
		return nil, err
	}

	if err := s.storeRefreshToken(ctx, refreshToken, u.ID); err != nil {
		return nil, err
	}

	return &AuthResponse{
		User: NewUserResponse(u),
		Tokens: TokensResponse{
			AccessToken:  accessToken,
			RefreshToken: refreshToken,
			ExpiresIn:    int(s.jwtService.GetAccessTTL().Seconds()),
			TokenType:    "Bearer",
		},
	}, nil
}

// Redis helpers (handle nil redis gracefully)

func (s *Service) storeRefreshToken(ctx context.Context, token string, userID uuid.UUID) error {
	if s.redis == nil {
		return nil
	}
	key := "refresh:" + jwt.HashRefreshToken(token)
	return s.redis.Set(ctx, key, userID.String(), s.jwtService.GetRefreshTTL()).Err()
}

func (s *Service) refreshTokenKnown(ctx context.Context, token string, userID uuid.UUID) (bool, error) {
	if s.redis == nil {
		return true, nil
	}
	key := "refresh:" + jwt.HashRefreshToken(token)
	val, err := s.redis.Get(ctx, key).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return val == userID.String(), nil
}

func (s *Service) revokeRefreshToken(ctx context.Context, token string) error {
	if s.redis == nil {
		return nil
	}
	key := "refresh:" + jwt.HashRefreshToken(token)
	return s.redis.Del(ctx, key).Err()
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
