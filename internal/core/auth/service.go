package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

var (
	ErrMissingCredentials = errors.New("email and password are required")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

type Service struct {
	repo       *Repository
	jwtService *JWTService
	now        func() time.Time
}

func NewService(repo *Repository, jwtService *JWTService) *Service {
	return &Service{
		repo:       repo,
		jwtService: jwtService,
		now:        time.Now,
	}
}

// Login checks the password and issues a token. Unknown email and wrong
// password both yield ErrInvalidCredentials.
func (s *Service) Login(ctx context.Context, req *LoginRequest) (*LoginResponse, error) {
	if normalizeEmail(req.Email) == "" || req.Password == "" {
		return nil, ErrMissingCredentials
	}

	admin, err := s.repo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to get admin: %w", err)
	}

	if err := VerifyPassword(admin.PasswordHash, req.Password); err != nil {
		return nil, ErrInvalidCredentials
	}

	if err := s.repo.UpdateLastLogin(ctx, admin.ID, s.now()); err != nil {
		log.Warn().Err(err).Str("admin_id", admin.ID.String()).Msg("failed to record last login")
	}

	token, _, err := s.jwtService.GenerateToken(&TokenClaims{AdminID: admin.ID.String(), Email: admin.Email})
	if err != nil {
		return nil, err
	}

	log.Info().Str("admin_id", admin.ID.String()).Msg("admin logged in")
	return &LoginResponse{
		Token: token,
		Admin: AdminInfo{ID: admin.ID.String(), Email: admin.Email},
	}, nil
}

func (s *Service) ValidateToken(token string) (*TokenClaims, error) {
	return s.jwtService.ValidateToken(token)
}

// EnsureDefaultAdmin creates the configured admin account when it does not exist yet.
// It reports whether an account was created.
func (s *Service) EnsureDefaultAdmin(ctx context.Context, email, password string) (bool, error) {
	if normalizeEmail(email) == "" || password == "" {
		return false, nil
	}

	_, err := s.repo.GetByEmail(ctx, email)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, fmt.Errorf("failed to look up default admin: %w", err)
	}

	hash, err := HashPassword(password)
	if err != nil {
		return false, err
	}
	admin := &Admin{Email: email, PasswordHash: hash}
	if err := s.repo.Create(ctx, admin); err != nil {
		return false, fmt.Errorf("failed to create default admin: %w", err)
	}

	log.Info().Str("email", admin.Email).Msg("default admin created")
	return true, nil
}
