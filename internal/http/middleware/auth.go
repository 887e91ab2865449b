package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/orderbridge-backend/internal/domain/auth"
	"github.com/yungbote/orderbridge-backend/internal/http/response"
	"github.com/yungbote/orderbridge-backend/internal/platform/ctxutil"
	"github.com/yungbote/orderbridge-backend/internal/platform/logger"
	"github.com/yungbote/orderbridge-backend/internal/services"
)

const principalKey = "principal"

type AuthMiddleware struct {
	log      *logger.Logger
	verifier services.TokenVerifier
}

func NewAuthMiddleware(log *logger.Logger, verifier services.TokenVerifier) *AuthMiddleware {
	return &AuthMiddleware{log: log.With("middleware", "AuthMiddleware"), verifier: verifier}
}

// RequireAuth resolves the bearer token into a principal and attaches it to
// both the gin context and the request context.
func (am *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		p, err := am.verifier.Verify(extractBearer(c))
		if err != nil {
			am.log.Debug("unauthenticated request", "path", c.Request.URL.Path, "error", err)
			response.AbortError(c, http.StatusUnauthorized, "unauthorized", "missing or invalid token")
			return
		}
		ctx := ctxutil.WithRequestData(c.Request.Context(), &ctxutil.RequestData{
			UserID:   p.UserID,
			TenantID: p.TenantID,
			Role:     string(p.Role),
		})
		c.Request = c.Request.WithContext(ctx)
		c.Set(principalKey, p)
		c.Next()
	}
}

// RequireCapability rejects principals whose role is not granted cap.
func RequireCapability(cap auth.Capability) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := Principal(c)
		if !ok {
			response.AbortError(c, http.StatusUnauthorized, "unauthorized", "missing or invalid token")
			return
		}
		if !auth.Can(p.Role, cap) {
			response.AbortError(c, http.StatusForbidden, "forbidden", "forbidden")
			return
		}
		c.Next()
	}
}

// Principal returns the caller resolved by RequireAuth.
func Principal(c *gin.Context) (auth.Principal, bool) {
	v, ok := c.Get(principalKey)
	if !ok {
		return auth.Principal{}, false
	}
	p, ok := v.(auth.Principal)
	return p, ok
}

func extractBearer(c *gin.Context) string {
	h := c.GetHeader("Authorization")
	if len(h) > 7 && strings.EqualFold(h[:7], "Bearer ") {
		return strings.TrimSpace(h[7:])
	}
	return ""
}
