package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	identityapp "github.com/idcashier/backend/internal/application/identity"
	"github.com/idcashier/backend/internal/domain/identity"
	"github.com/idcashier/backend/internal/infrastructure/auth"
	"github.com/idcashier/backend/internal/infrastructure/config"
	"github.com/idcashier/backend/internal/interfaces/http/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestJWTService() *auth.JWTService {
	return auth.NewJWTService(config.JWTConfig{
		Secret:                "test-secret-key-at-least-32-chars",
		AccessTokenExpiration: 15 * time.Minute,
		Issuer:                "idcashier-test",
	})
}

type resolverFunc func(ctx context.Context, userID uuid.UUID) (*identityapp.TenantContext, error)

func (f resolverFunc) ResolveTenant(ctx context.Context, userID uuid.UUID) (*identityapp.TenantContext, error) {
	return f(ctx, userID)
}

func resolverFor(users ...*identity.User) resolverFunc {
	return func(_ context.Context, userID uuid.UUID) (*identityapp.TenantContext, error) {
		for _, u := range users {
			if u.ID == userID {
				if !u.Active {
					return nil, identityapp.ErrAccountInactive
				}
				return &identityapp.TenantContext{TenantID: u.TenantID, UserID: u.ID, Role: u.Role, Name: u.Name}, nil
			}
		}
		return nil, identityapp.ErrUnknownUser
	}
}

func authRouter(jwtService *auth.JWTService, blacklist auth.TokenBlacklist, resolver TenantResolver) *gin.Engine {
	r := gin.New()
	r.Use(RequestID())
	api := r.Group("/api/v1", JWTAuth(JWTConfig{Tokens: jwtService, Revocations: blacklist}), ResolveTenant(resolver, nil))
	api.GET("/me", func(c *gin.Context) {
		tc, _ := GetTenant(c)
		c.JSON(http.StatusOK, gin.H{"tenant_id": tc.TenantID, "role": tc.Role})
	})
	api.GET("/owner-only", RequireOwner(), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	return r
}

func doRequest(r http.Handler, method, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if token != "" {
		req.Header.Set(AuthHeaderKey, BearerPrefix+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func errorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.Error)
	return resp.Error.Code
}

func mustOwner(t *testing.T) *identity.User {
	t.Helper()
	owner, err := identity.NewOwner("Budi", "budi@warung.id", "rahasia123")
	require.NoError(t, err)
	return owner
}

func TestJWTAuth(t *testing.T) {
	jwtService := newTestJWTService()
	owner := mustOwner(t)
	cashier, err := identity.NewCashier(owner, "Sari", "sari@warung.id", "rahasia123")
	require.NoError(t, err)
	blacklist := auth.NewInMemoryTokenBlacklist()
	router := authRouter(jwtService, blacklist, resolverFor(owner, cashier))

	ownerToken, err := jwtService.Generate(owner)
	require.NoError(t, err)
	cashierToken, err := jwtService.Generate(cashier)
	require.NoError(t, err)

	t.Run("valid token resolves the tenant", func(t *testing.T) {
		w := doRequest(router, http.MethodGet, "/api/v1/me", cashierToken.AccessToken)
		require.Equal(t, http.StatusOK, w.Code)
		var body map[string]string
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, owner.TenantID.String(), body["tenant_id"])
		assert.Equal(t, "cashier", body["role"])
	})

	t.Run("missing header", func(t *testing.T) {
		w := doRequest(router, http.MethodGet, "/api/v1/me", "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, dto.ErrCodeUnauthorized, errorCode(t, w))
	})

	t.Run("garbage token", func(t *testing.T) {
		w := doRequest(router, http.MethodGet, "/api/v1/me", "not-a-jwt")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, dto.ErrCodeTokenInvalid, errorCode(t, w))
	})

	t.Run("token signed with another secret", func(t *testing.T) {
		other := auth.NewJWTService(config.JWTConfig{Secret: "another-secret-key-at-least-32-chars", Issuer: "idcashier-test"})
		forged, err := other.Generate(owner)
		require.NoError(t, err)
		w := doRequest(router, http.MethodGet, "/api/v1/me", forged.AccessToken)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("revoked token", func(t *testing.T) {
		token, err := jwtService.Generate(owner)
		require.NoError(t, err)
		claims, err := jwtService.Validate(token.AccessToken)
		require.NoError(t, err)
		require.NoError(t, blacklist.Revoke(context.Background(), claims.ID, time.Minute))

		w := doRequest(router, http.MethodGet, "/api/v1/me", token.AccessToken)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, dto.ErrCodeTokenRevoked, errorCode(t, w))
	})

	t.Run("owner-only route", func(t *testing.T) {
		assert.Equal(t, http.StatusNoContent, doRequest(router, http.MethodGet, "/api/v1/owner-only", ownerToken.AccessToken).Code)

		w := doRequest(router, http.MethodGet, "/api/v1/owner-only", cashierToken.AccessToken)
		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Equal(t, dto.ErrCodeForbidden, errorCode(t, w))
	})
}

func TestResolveTenant(t *testing.T) {
	jwtService := newTestJWTService()
	owner := mustOwner(t)
	token, err := jwtService.Generate(owner)
	require.NoError(t, err)

	t.Run("deleted user", func(t *testing.T) {
		router := authRouter(jwtService, nil, resolverFor())
		w := doRequest(router, http.MethodGet, "/api/v1/me", token.AccessToken)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("deactivated account", func(t *testing.T) {
		inactive := *owner
		inactive.Active = false
		router := authRouter(jwtService, nil, resolverFor(&inactive))
		w := doRequest(router, http.MethodGet, "/api/v1/me", token.AccessToken)
		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Equal(t, dto.ErrCodeAccountInactive, errorCode(t, w))
	})

	t.Run("store failure is a 500 without details", func(t *testing.T) {
		router := authRouter(jwtService, nil, resolverFunc(func(context.Context, uuid.UUID) (*identityapp.TenantContext, error) {
			return nil, errors.New("connection refused")
		}))
		w := doRequest(router, http.MethodGet, "/api/v1/me", token.AccessToken)
		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.NotContains(t, w.Body.String(), "connection refused")
	})
}

type failingBlacklist struct{}

func (failingBlacklist) Revoke(context.Context, string, time.Duration) error { return nil }
func (failingBlacklist) IsRevoked(context.Context, string) (bool, error) {
	return false, errors.New("redis down")
}

func TestJWTAuth_BlacklistFailureFailsOpen(t *testing.T) {
	jwtService := newTestJWTService()
	owner := mustOwner(t)
	token, err := jwtService.Generate(owner)
	require.NoError(t, err)

	router := authRouter(jwtService, failingBlacklist{}, resolverFor(owner))
	w := doRequest(router, http.MethodGet, "/api/v1/me", token.AccessToken)
	assert.Equal(t, http.StatusOK, w.Code)
}
