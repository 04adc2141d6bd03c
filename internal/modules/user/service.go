package user

import (
	"context"
	"log/slog"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/Mikee100/Uni-Sporting-Equipment/internal/domain"
	"github.com/Mikee100/Uni-Sporting-Equipment/internal/logger"
	"github.com/Mikee100/Uni-Sporting-Equipment/internal/pkg/apperr"
	"github.com/Mikee100/Uni-Sporting-Equipment/internal/policy"
	"github.com/Mikee100/Uni-Sporting-Equipment/internal/repository"
)

type Service struct {
	db      *gorm.DB
	users   *repository.UserRepository
	borrows *repository.BorrowRepository
	log     *slog.Logger
}

func NewService(db *gorm.DB) *Service {
	return &Service{
		db:      db,
		users:   repository.NewUserRepository(db),
		borrows: repository.NewBorrowRepository(db),
		log:     logger.WithService("user"),
	}
}

type CreateInput struct {
	Name     string
	Email    string
	Password string
	Role     string
}

type UpdateInput struct {
	Name  *string
	Email *string
	Role  *string
}

// HashPassword is shared with signup and the seeder.
func HashPassword(password string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func (s *Service) Create(ctx context.Context, caller policy.Caller, in CreateInput) (*domain.User, error) {
	if err := policy.Check(caller, policy.UserWrite); err != nil {
		return nil, err
	}

	name := strings.TrimSpace(in.Name)
	email := repository.NormalizeEmail(in.Email)
	if name == "" || email == "" || in.Password == "" || in.Role == "" {
		return nil, ErrFieldsRequired
	}
	role, ok := domain.ParseRole(in.Role)
	if !ok {
		return nil, ErrInvalidRole
	}

	hash, err := HashPassword(in.Password)
	if err != nil {
		return nil, apperr.Internal("Failed to create user.", err)
	}

	u := &domain.User{Name: name, Email: email, PasswordHash: hash, Role: role}
	if err := s.users.Create(ctx, u); err != nil {
		if apperr.IsUniqueViolation(err) {
			return nil, ErrEmailExists
		}
		return nil, apperr.Internal("Failed to create user.", err)
	}
	s.log.Info("user created", "user_id", u.ID, "role", u.Role, "actor_id", caller.UserID)
	return u, nil
}

func (s *Service) Get(ctx context.Context, caller policy.Caller, id int64) (*domain.User, error) {
	if err := policy.Check(caller, policy.UserGet); err != nil {
		return nil, err
	}
	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, apperr.FromDB(err, ErrNotFound, "Failed to fetch user.")
	}
	return u, nil
}

// List returns all users for admins. Staff may only list students, which is
// how they pick the borrower when recording a hand-out.
func (s *Service) List(ctx context.Context, caller policy.Caller, role string) ([]domain.User, error) {
	var filter domain.UserRole
	if role != "" {
		r, ok := domain.ParseRole(role)
		if !ok {
			return nil, ErrInvalidRole
		}
		filter = r
	}

	op := policy.UserList
	if filter == domain.RoleStudent {
		op = policy.UserListStudents
	}
	if err := policy.Check(caller, op); err != nil {
		return nil, err
	}

	users, err := s.users.List(ctx, filter)
	if err != nil {
		return nil, apperr.Internal("Failed to fetch users.", err)
	}
	return users, nil
}

func (s *Service) Update(ctx context.Context, caller policy.Caller, id int64, in UpdateInput) (*domain.User, error) {
	if err := policy.Check(caller, policy.UserWrite); err != nil {
		return nil, err
	}

	fields := map[string]any{}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, ErrFieldsRequired
		}
		fields["name"] = name
	}
	if in.Email != nil {
		email := repository.NormalizeEmail(*in.Email)
		if email == "" {
			return nil, ErrFieldsRequired
		}
		fields["email"] = email
	}
	if in.Role != nil {
		role, ok := domain.ParseRole(*in.Role)
		if !ok {
			return nil, ErrInvalidRole
		}
		fields["role"] = role
	}
	if len(fields) == 0 {
		return nil, ErrNoChanges
	}

	if err := s.users.Update(ctx, id, fields); err != nil {
		if apperr.IsUniqueViolation(err) {
			return nil, ErrEmailExists
		}
		return nil, apperr.FromDB(err, ErrNotFound, "Failed to update user.")
	}
	return s.Get(ctx, caller, id)
}

// Delete removes a user who has no borrow history.
func (s *Service) Delete(ctx context.Context, caller policy.Caller, id int64) error {
	if err := policy.Check(caller, policy.UserWrite); err != nil {
		return err
	}
	if id == caller.UserID {
		return ErrSelfDelete
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		used, err := s.borrows.WithTx(tx).Referencing(ctx, "user_id", id)
		if err != nil {
			return err
		}
		if used {
			return ErrHasRecords
		}
		return s.users.WithTx(tx).Delete(ctx, id)
	})
	if err != nil {
		return apperr.FromDB(err, ErrNotFound, "Failed to delete user.")
	}
	s.log.Info("user deleted", "user_id", id, "actor_id", caller.UserID)
	return nil
}
