package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/yungbote/orderbridge-backend/internal/domain/auth"
	"github.com/yungbote/orderbridge-backend/internal/platform/logger"
)

var (
	ErrMissingToken = errors.New("missing bearer token")
	ErrInvalidToken = errors.New("invalid token")
)

// TokenVerifier turns a bearer token issued by the identity service into a
// principal. Tokens are never issued here.
type TokenVerifier interface {
	Verify(raw string) (auth.Principal, error)
}

// OrderClaims are the claims the identity service puts into access tokens.
type OrderClaims struct {
	TenantID string `json:"tenant_id"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

type jwtVerifier struct {
	log    *logger.Logger
	secret []byte
	leeway time.Duration
}

func NewJWTVerifier(log *logger.Logger, secret string, leeway time.Duration) TokenVerifier {
	return &jwtVerifier{
		log:    log.With("service", "JWTVerifier"),
		secret: []byte(secret),
		leeway: leeway,
	}
}

func (v *jwtVerifier) Verify(raw string) (auth.Principal, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return auth.Principal{}, ErrMissingToken
	}
	if len(v.secret) == 0 {
		return auth.Principal{}, fmt.Errorf("%w: verifier has no secret", ErrInvalidToken)
	}

	var claims OrderClaims
	_, err := jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (interface{}, error) {
		return v.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithLeeway(v.leeway), jwt.WithExpirationRequired())
	if err != nil {
		v.log.Debug("token rejected", "error", err)
		return auth.Principal{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	userID, err := uuid.Parse(strings.TrimSpace(claims.Subject))
	if err != nil || userID == uuid.Nil {
		return auth.Principal{}, fmt.Errorf("%w: subject is not a user id", ErrInvalidToken)
	}
	role, ok := auth.ParseRole(claims.Role)
	if !ok {
		return auth.Principal{}, fmt.Errorf("%w: unknown role", ErrInvalidToken)
	}
	p := auth.Principal{UserID: userID, Role: role}
	if tid := strings.TrimSpace(claims.TenantID); tid != "" {
		p.TenantID, err = uuid.Parse(tid)
		if err != nil {
			return auth.Principal{}, fmt.Errorf("%w: tenant_id is not a uuid", ErrInvalidToken)
		}
	}
	if p.TenantID == uuid.Nil && role != auth.RolePlatformAdmin {
		return auth.Principal{}, fmt.Errorf("%w: tenant_id is required", ErrInvalidToken)
	}
	return p, nil
}
