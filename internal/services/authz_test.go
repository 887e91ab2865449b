package services

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yungbote/orderbridge-backend/internal/data/repos/testutil"
	"github.com/yungbote/orderbridge-backend/internal/domain/auth"
)

const testSecret = "test-secret"

func sign(t *testing.T, method jwt.SigningMethod, key any, claims OrderClaims) string {
	t.Helper()
	raw, err := jwt.NewWithClaims(method, claims).SignedString(key)
	require.NoError(t, err)
	return raw
}

func claimsFor(sub, tenant, role string, exp time.Time) OrderClaims {
	return OrderClaims{
		TenantID: tenant,
		Role:     role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   sub,
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}
}

func TestJWTVerifier(t *testing.T) {
	v := NewJWTVerifier(testutil.Logger(t), testSecret, 0)
	user, tenant := uuid.New(), uuid.New()
	later := time.Now().Add(time.Hour)

	p, err := v.Verify(sign(t, jwt.SigningMethodHS256, []byte(testSecret), claimsFor(user.String(), tenant.String(), "manager", later)))
	require.NoError(t, err)
	assert.Equal(t, auth.Principal{UserID: user, TenantID: tenant, Role: auth.RoleManager}, p)

	admin, err := v.Verify(sign(t, jwt.SigningMethodHS256, []byte(testSecret), claimsFor(user.String(), "", "PLATFORM_ADMIN", later)))
	require.NoError(t, err)
	assert.Equal(t, uuid.Nil, admin.TenantID)

	rejected := map[string]string{
		"wrong secret": sign(t, jwt.SigningMethodHS256, []byte("other"), claimsFor(user.String(), tenant.String(), "OWNER", later)),
		"wrong alg":    sign(t, jwt.SigningMethodHS512, []byte(testSecret), claimsFor(user.String(), tenant.String(), "OWNER", later)),
		"expired":      sign(t, jwt.SigningMethodHS256, []byte(testSecret), claimsFor(user.String(), tenant.String(), "OWNER", time.Now().Add(-time.Hour))),
		"nil subject":  sign(t, jwt.SigningMethodHS256, []byte(testSecret), claimsFor(uuid.Nil.String(), tenant.String(), "COLLABORATOR", later)),
		"bad subject":  sign(t, jwt.SigningMethodHS256, []byte(testSecret), claimsFor("alice", tenant.String(), "OWNER", later)),
		"bad role":     sign(t, jwt.SigningMethodHS256, []byte(testSecret), claimsFor(user.String(), tenant.String(), "ROOT", later)),
		"no tenant":    sign(t, jwt.SigningMethodHS256, []byte(testSecret), claimsFor(user.String(), "", "COLLABORATOR", later)),
		"garbage":      "not.a.token",
	}
	for name, raw := range rejected {
		_, err := v.Verify(raw)
		assert.True(t, errors.Is(err, ErrInvalidToken), "%s: %v", name, err)
	}

	_, err = v.Verify("  ")
	assert.ErrorIs(t, err, ErrMissingToken)
}
