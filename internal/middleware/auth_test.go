package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"heritage-archive-api/internal/domain"
	"heritage-archive-api/internal/response"
)

// stubValidator lets each test decide how token validation behaves
type stubValidator struct {
	userID uuid.UUID
	err    error
}

func (s *stubValidator) ValidateToken(ctx context.Context, tokenStr string) (uuid.UUID, error) {
	return s.userID, s.err
}

func setupAuthDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.Exec(`
		CREATE TABLE users (
			id TEXT PRIMARY KEY,
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL,
			deleted_at DATETIME,
			email TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL,
			display_name TEXT NOT NULL,
			role TEXT NOT NULL DEFAULT 'user',
			locale TEXT NOT NULL DEFAULT 'en',
			is_active INTEGER NOT NULL DEFAULT 1
		)
	`).Error
	require.NoError(t, err, "Failed to create users table")

	return db
}

func seedUser(t *testing.T, db *gorm.DB, active bool) *domain.User {
	t.Helper()

	user := &domain.User{
		BaseModel:    domain.BaseModel{ID: uuid.New()},
		Email:        uuid.NewString() + "@example.com",
		PasswordHash: "x",
		DisplayName:  "Middleware Tester",
		Role:         domain.UserRoleUser,
		Locale:       "en",
		IsActive:     active,
	}
	// Select("*") forces the zero-valued is_active through; plain Create
	// drops it in favor of the column default and the row comes back active
	require.NoError(t, db.Select("*").Create(user).Error)
	return user
}

// identityEcho registers a route behind the middleware that echoes the
// identity keys the middleware set
func identityEcho(mw gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/whoami", mw, func(c *gin.Context) {
		userID, hasUser := c.Get("user_id")
		role, hasRole := c.Get("user_role")

		resp := gin.H{"authenticated": hasUser && hasRole}
		if hasUser {
			resp["userId"] = userID.(uuid.UUID).String()
			resp["role"] = string(role.(domain.UserRole))
		}
		c.JSON(http.StatusOK, resp)
	})
	return router
}

func errorCode(t *testing.T, body []byte) string {
	t.Helper()

	var resp response.ErrorResponse
	require.NoError(t, json.Unmarshal(body, &resp))
	return resp.Error
}

func TestAuth_MissingHeader(t *testing.T) {
	db := setupAuthDB(t)
	router := identityEcho(Auth(&stubValidator{}, db))

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, response.ErrCodeUnauthenticated, errorCode(t, w.Body.Bytes()))
}

func TestAuth_MalformedHeader(t *testing.T) {
	db := setupAuthDB(t)
	router := identityEcho(Auth(&stubValidator{}, db))

	tests := []struct {
		name   string
		header string
	}{
		{name: "no scheme", header: "some-token"},
		{name: "wrong scheme", header: "Basic dXNlcjpwYXNz"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
			req.Header.Set("Authorization", tt.header)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.Equal(t, response.ErrCodeInvalidCredential, errorCode(t, w.Body.Bytes()))
		})
	}
}

func TestAuth_InvalidToken(t *testing.T) {
	db := setupAuthDB(t)
	validator := &stubValidator{err: errors.New("invalid or expired token")}
	router := identityEcho(Auth(validator, db))

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer bad-token")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, response.ErrCodeInvalidCredential, errorCode(t, w.Body.Bytes()))
}

func TestAuth_ValidTokenSetsIdentity(t *testing.T) {
	db := setupAuthDB(t)
	user := seedUser(t, db, true)
	router := identityEcho(Auth(&stubValidator{userID: user.ID}, db))

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, true, resp["authenticated"])
	assert.Equal(t, user.ID.String(), resp["userId"])
	assert.Equal(t, string(domain.UserRoleUser), resp["role"])
}

func TestAuth_DeletedAccount(t *testing.T) {
	db := setupAuthDB(t)

	// Token still validates but the account is gone
	router := identityEcho(Auth(&stubValidator{userID: uuid.New()}, db))

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, response.ErrCodeIdentityUnavailable, errorCode(t, w.Body.Bytes()))
}

func TestAuth_DeactivatedAccount(t *testing.T) {
	db := setupAuthDB(t)
	user := seedUser(t, db, false)
	router := identityEcho(Auth(&stubValidator{userID: user.ID}, db))

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, response.ErrCodeIdentityUnavailable, errorCode(t, w.Body.Bytes()))
}

func TestAuth_RoleChangeTakesEffectImmediately(t *testing.T) {
	db := setupAuthDB(t)
	user := seedUser(t, db, true)
	router := identityEcho(Auth(&stubValidator{userID: user.ID}, db))

	// Promote after the token was issued; the middleware reloads the account
	// on every request so the new role applies right away
	require.NoError(t, db.Model(&domain.User{}).
		Where("id = ?", user.ID).
		Update("role", domain.UserRoleAdmin).Error)

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, string(domain.UserRoleAdmin), resp["role"])
}

func TestOptionalAuth_AnonymousPassesThrough(t *testing.T) {
	db := setupAuthDB(t)
	router := identityEcho(OptionalAuth(&stubValidator{}, db))

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, false, resp["authenticated"])
}

func TestOptionalAuth_InvalidTokenStillRejected(t *testing.T) {
	db := setupAuthDB(t)
	validator := &stubValidator{err: errors.New("invalid or expired token")}
	router := identityEcho(OptionalAuth(validator, db))

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer bad-token")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestOptionalAuth_ValidTokenSetsIdentity(t *testing.T) {
	db := setupAuthDB(t)
	user := seedUser(t, db, true)
	router := identityEcho(OptionalAuth(&stubValidator{userID: user.ID}, db))

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, true, resp["authenticated"])
	assert.Equal(t, user.ID.String(), resp["userId"])
}
