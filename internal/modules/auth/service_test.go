package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/Mikee100/Uni-Sporting-Equipment/internal/domain"
	"github.com/Mikee100/Uni-Sporting-Equipment/internal/pkg/jwt"
)

// Mock User Repository implementing the interface
type mockUserRepo struct {
	mock.Mock
}

func (m *mockUserRepo) Create(ctx context.Context, u *domain.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

type mockThrottle struct {
	mock.Mock
}

func (m *mockThrottle) Allowed(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *mockThrottle) RecordFailure(ctx context.Context, email string) error {
	return m.Called(ctx, email).Error(0)
}

func (m *mockThrottle) Reset(ctx context.Context, email string) error {
	return m.Called(ctx, email).Error(0)
}

func hashed(t *testing.T, password string) string {
	t.Helper()
	b, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(b)
}

func newJWT() *jwt.Service {
	return jwt.New("test-secret", time.Hour)
}

func TestSignup_AlwaysStudent(t *testing.T) {
	repo := new(mockUserRepo)
	repo.On("Create", mock.Anything, mock.MatchedBy(func(u *domain.User) bool {
		return u.Role == domain.RoleStudent && u.Email == "new@uni.test" && u.PasswordHash != "secret123"
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*domain.User).ID = 11
	}).Return(nil)

	tokens := newJWT()
	svc := NewService(repo, tokens, nil)

	res, err := svc.Signup(context.Background(), SignupRequest{
		Name:     "New",
		Email:    "New@Uni.test",
		Password: "secret123",
		Role:     "admin",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(11), res.User.ID)

	claims, err := tokens.ValidateToken(res.Token)
	require.NoError(t, err)
	assert.Equal(t, int64(11), claims.UserID)
	assert.Equal(t, string(domain.RoleStudent), claims.Role)
	repo.AssertExpectations(t)
}

func TestSignup_DuplicateEmail(t *testing.T) {
	repo := new(mockUserRepo)
	repo.On("Create", mock.Anything, mock.Anything).Return(errors.New("UNIQUE constraint failed: users.email"))

	svc := NewService(repo, newJWT(), nil)
	_, err := svc.Signup(context.Background(), SignupRequest{Name: "A", Email: "a@uni.test", Password: "secret123"})
	assert.Equal(t, ErrEmailAlreadyExists, err)
}

func TestLogin_Success(t *testing.T) {
	repo := new(mockUserRepo)
	throttle := new(mockThrottle)
	user := &domain.User{ID: 3, Email: "stu@uni.test", Role: domain.RoleStudent, PasswordHash: hashed(t, "pw123456")}

	throttle.On("Allowed", mock.Anything, "stu@uni.test").Return(true, nil)
	throttle.On("Reset", mock.Anything, "stu@uni.test").Return(nil)
	repo.On("GetByEmail", mock.Anything, "stu@uni.test").Return(user, nil)

	svc := NewService(repo, newJWT(), throttle)
	res, err := svc.Login(context.Background(), LoginRequest{Email: " STU@uni.test", Password: "pw123456"})
	require.NoError(t, err)
	assert.NotEmpty(t, res.Token)
	assert.Equal(t, int64(3), res.User.ID)

	throttle.AssertExpectations(t)
	throttle.AssertNotCalled(t, "RecordFailure", mock.Anything, mock.Anything)
}

func TestLogin_WrongPasswordCountsFailure(t *testing.T) {
	repo := new(mockUserRepo)
	throttle := new(mockThrottle)
	user := &domain.User{ID: 3, Email: "stu@uni.test", Role: domain.RoleStudent, PasswordHash: hashed(t, "pw123456")}

	throttle.On("Allowed", mock.Anything, "stu@uni.test").Return(true, nil)
	throttle.On("RecordFailure", mock.Anything, "stu@uni.test").Return(nil).Once()
	repo.On("GetByEmail", mock.Anything, "stu@uni.test").Return(user, nil)

	svc := NewService(repo, newJWT(), throttle)
	_, err := svc.Login(context.Background(), LoginRequest{Email: "stu@uni.test", Password: "wrong"})
	assert.Equal(t, ErrInvalidCredentials, err)
	throttle.AssertExpectations(t)
}

func TestLogin_UnknownEmail(t *testing.T) {
	repo := new(mockUserRepo)
	repo.On("GetByEmail", mock.Anything, "ghost@uni.test").Return(nil, gorm.ErrRecordNotFound)

	svc := NewService(repo, newJWT(), nil)
	_, err := svc.Login(context.Background(), LoginRequest{Email: "ghost@uni.test", Password: "x"})
	assert.Equal(t, ErrInvalidCredentials, err)
}

func TestLogin_Throttled(t *testing.T) {
	repo := new(mockUserRepo)
	throttle := new(mockThrottle)
	throttle.On("Allowed", mock.Anything, "stu@uni.test").Return(false, nil)

	svc := NewService(repo, newJWT(), throttle)
	_, err := svc.Login(context.Background(), LoginRequest{Email: "stu@uni.test", Password: "pw123456"})
	assert.Equal(t, ErrTooManyAttempts, err)
	repo.AssertNotCalled(t, "GetByEmail", mock.Anything, mock.Anything)
}

func TestLogin_ThrottleOutageStillLogsIn(t *testing.T) {
	repo := new(mockUserRepo)
	throttle := new(mockThrottle)
	user := &domain.User{ID: 2, Email: "staff@uni.test", Role: domain.RoleStaff, PasswordHash: hashed(t, "pw123456")}

	throttle.On("Allowed", mock.Anything, "staff@uni.test").Return(false, errors.New("connection refused"))
	throttle.On("Reset", mock.Anything, "staff@uni.test").Return(errors.New("connection refused"))
	repo.On("GetByEmail", mock.Anything, "staff@uni.test").Return(user, nil)

	svc := NewService(repo, newJWT(), throttle)
	res, err := svc.Login(context.Background(), LoginRequest{Email: "staff@uni.test", Password: "pw123456"})
	require.NoError(t, err)
	assert.Equal(t, domain.RoleStaff, res.User.Role)
}
