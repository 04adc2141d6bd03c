package jwt

import (
	"testing"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Mikee100/Uni-Sporting-Equipment/internal/domain"
)

func TestGenerateAndValidate(t *testing.T) {
	svc := New("test-secret", time.Hour)

	token, err := svc.GenerateToken(7, domain.RoleStaff)
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, int64(7), claims.UserID)
	assert.Equal(t, "staff", claims.Role)
}

func TestValidateRejectsWrongSecretAndExpiry(t *testing.T) {
	issuer := New("secret-a", time.Hour)
	token, err := issuer.GenerateToken(7, domain.RoleAdmin)
	require.NoError(t, err)

	_, err = New("secret-b", time.Hour).ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	expired := New("secret-a", time.Minute)
	expired.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	old, err := expired.GenerateToken(7, domain.RoleAdmin)
	require.NoError(t, err)

	_, err = issuer.ValidateToken(old)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateNormalizesLegacyStudentRole(t *testing.T) {
	svc := New("secret", time.Hour)
	raw := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, Claims{
		UserID: 3,
		Role:   "user",
		RegisteredClaims: jwtlib.RegisteredClaims{
			ExpiresAt: jwtlib.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	token, err := raw.SignedString([]byte("secret"))
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, string(domain.RoleStudent), claims.Role)
}

func TestValidateRejectsUnknownRole(t *testing.T) {
	svc := New("secret", time.Hour)
	raw := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, Claims{
		UserID: 3,
		Role:   "superuser",
		RegisteredClaims: jwtlib.RegisteredClaims{
			ExpiresAt: jwtlib.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	token, err := raw.SignedString([]byte("secret"))
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
