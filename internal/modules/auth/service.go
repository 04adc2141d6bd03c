package auth

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/Mikee100/Uni-Sporting-Equipment/internal/domain"
	"github.com/Mikee100/Uni-Sporting-Equipment/internal/logger"
	"github.com/Mikee100/Uni-Sporting-Equipment/internal/pkg/apperr"
	"github.com/Mikee100/Uni-Sporting-Equipment/internal/repository"
)

// Service contains all business logic for authentication
type Service struct {
	users    UserRepositoryInterface
	jwt      tokenIssuer
	throttle LoginThrottle
	log      *slog.Logger
}

// NewService wires the auth service. throttle may be nil.
func NewService(users UserRepositoryInterface, jwt tokenIssuer, throttle LoginThrottle) *Service {
	return &Service{
		users:    users,
		jwt:      jwt,
		throttle: throttle,
		log:      logger.WithService("auth"),
	}
}

type Result struct {
	User  *domain.User
	Token string
}

// Signup registers a student account. Requested staff or admin roles are
// ignored; those accounts are created by an admin.
func (s *Service) Signup(ctx context.Context, req SignupRequest) (*Result, error) {
	if req.Role != "" {
		if role, ok := domain.ParseRole(req.Role); ok && role != domain.RoleStudent {
			s.log.Warn("signup requested elevated role", "email", req.Email, "role", req.Role)
		}
	}

	hash, err := s.hashPassword(req.Password)
	if err != nil {
		return nil, apperr.Internal("Failed to register user.", err)
	}

	u := &domain.User{
		Name:         strings.TrimSpace(req.Name),
		Email:        repository.NormalizeEmail(req.Email),
		PasswordHash: hash,
		Role:         domain.RoleStudent,
	}
	if err := s.users.Create(ctx, u); err != nil {
		if apperr.IsUniqueViolation(err) {
			return nil, ErrEmailAlreadyExists
		}
		return nil, apperr.Internal("Failed to register user.", err)
	}

	token, err := s.jwt.GenerateToken(u.ID, u.Role)
	if err != nil {
		return nil, apperr.Internal("Failed to issue token.", err)
	}
	s.log.Info("user registered", "user_id", u.ID)
	return &Result{User: u, Token: token}, nil
}

func (s *Service) Login(ctx context.Context, req LoginRequest) (*Result, error) {
	email := repository.NormalizeEmail(req.Email)

	if s.throttle != nil {
		ok, err := s.throttle.Allowed(ctx, email)
		if err != nil {
			// a throttle outage must not lock everyone out
			s.log.Warn("login throttle unavailable", "error", err)
		} else if !ok {
			return nil, ErrTooManyAttempts
		}
	}

	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			s.recordFailure(ctx, email)
			return nil, ErrInvalidCredentials
		}
		return nil, apperr.Internal("Failed to log in.", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
		s.recordFailure(ctx, email)
		return nil, ErrInvalidCredentials
	}

	if s.throttle != nil {
		if err := s.throttle.Reset(ctx, email); err != nil {
			s.log.Warn("login throttle reset failed", "error", err)
		}
	}

	token, err := s.jwt.GenerateToken(u.ID, u.Role)
	if err != nil {
		return nil, apperr.Internal("Failed to issue token.", err)
	}
	return &Result{User: u, Token: token}, nil
}

func (s *Service) recordFailure(ctx context.Context, email string) {
	if s.throttle == nil {
		return
	}
	if err := s.throttle.RecordFailure(ctx, email); err != nil {
		s.log.Warn("login throttle update failed", "error", err)
	}
}

func (s *Service) hashPassword(password string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
