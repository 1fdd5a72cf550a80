package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	identityapp "github.com/idcashier/backend/internal/application/identity"
	"github.com/idcashier/backend/internal/domain/shared"
	"github.com/idcashier/backend/internal/infrastructure/logger"
	"github.com/idcashier/backend/internal/interfaces/http/dto"
	"go.uber.org/zap"
)

// TenantKey is where the resolved tenant context is stored
const TenantKey = "tenant_context"

// TenantResolver maps an authenticated user to the tenant it acts for
type TenantResolver interface {
	ResolveTenant(ctx context.Context, userID uuid.UUID) (*identityapp.TenantContext, error)
}

// ResolveTenant loads the caller's tenant from the user record on every
// request. The tenant claim in the token is never trusted on its own, so a
// deactivated or deleted cashier loses access at once. Must run after JWTAuth.
func ResolveTenant(resolver TenantResolver, log *zap.Logger) gin.HandlerFunc {
	if log == nil {
		log = zap.NewNop()
	}
	return func(c *gin.Context) {
		claims := GetJWTClaims(c)
		if claims == nil {
			abortWithError(c, http.StatusUnauthorized, dto.ErrCodeUnauthorized, "Authentication required")
			return
		}
		userID, err := claims.UserUUID()
		if err != nil {
			abortWithError(c, http.StatusUnauthorized, dto.ErrCodeTokenInvalid, "Invalid token")
			return
		}

		tc, err := resolver.ResolveTenant(c.Request.Context(), userID)
		if err != nil {
			var de *shared.DomainError
			if errors.As(err, &de) {
				code := dto.NormalizeErrorCode(de.Code)
				abortWithError(c, dto.GetHTTPStatus(code), code, de.Message)
				return
			}
			log.Error("Failed to resolve tenant", zap.String("user_id", userID.String()), zap.Error(err))
			abortWithError(c, http.StatusInternalServerError, dto.ErrCodeInternal, "An unexpected error occurred")
			return
		}

		c.Set(TenantKey, *tc)
		ctx := logger.WithIdentity(c.Request.Context(), tc.TenantID.String(), tc.UserID.String())
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// RequireOwner rejects callers that are not the tenant owner
func RequireOwner() gin.HandlerFunc {
	return func(c *gin.Context) {
		tc, ok := GetTenant(c)
		if !ok {
			abortWithError(c, http.StatusUnauthorized, dto.ErrCodeUnauthorized, "Authentication required")
			return
		}
		if !tc.IsOwner() {
			abortWithError(c, http.StatusForbidden, dto.ErrCodeForbidden, "Only the store owner can do this")
			return
		}
		c.Next()
	}
}

// GetTenant returns the tenant context stored by ResolveTenant
func GetTenant(c *gin.Context) (identityapp.TenantContext, bool) {
	if v, ok := c.Get(TenantKey); ok {
		if tc, ok := v.(identityapp.TenantContext); ok {
			return tc, true
		}
	}
	return identityapp.TenantContext{}, false
}
