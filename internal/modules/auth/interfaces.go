package auth

import (
	"context"

	"github.com/Mikee100/Uni-Sporting-Equipment/internal/domain"
)

// UserRepositoryInterface is the slice of the user repository auth needs.
type UserRepositoryInterface interface {
	Create(ctx context.Context, u *domain.User) error
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}

type tokenIssuer interface {
	GenerateToken(userID int64, role domain.UserRole) (string, error)
}

// LoginThrottle limits repeated failed logins for one email.
type LoginThrottle interface {
	Allowed(ctx context.Context, email string) (bool, error)
	RecordFailure(ctx context.Context, email string) error
	Reset(ctx context.Context, email string) error
}
