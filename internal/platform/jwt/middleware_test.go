package jwtmw

import (
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
)

const testSecret = "test-secret-key"

// TestMain はテスト実行前にGinをテストモードに設定します。
func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func newTestContext(authHeader string) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	if authHeader != "" {
		c.Request.Header.Set("Authorization", authHeader)
	}
	return c, w
}

// TestAuthRequired_MissingBearerToken はBearerトークンがない場合やプレフィックスが不正な場合に401が返されることを検証します。
func TestAuthRequired_MissingBearerToken(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		authHeader string
	}{
		{"no header", ""},
		{"basic auth", "Basic dXNlcjpwYXNz"},
		{"bearer lowercase", "bearer token123"},
		{"no space after Bearer", "Bearertoken123"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c, w := newTestContext(tt.authHeader)
			AuthRequired(testSecret)(c)

			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.True(t, c.IsAborted())
		})
	}
}

// TestAuthRequired_MissingJWTSecret は署名鍵が未設定の場合に500が返されることを検証します。
func TestAuthRequired_MissingJWTSecret(t *testing.T) {
	t.Parallel()

	c, w := newTestContext("Bearer sometoken")
	AuthRequired("")(c)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

// TestAuthRequired_InvalidToken は不正なトークン（改ざん・期限切れ等）で401が返されることを検証します。
func TestAuthRequired_InvalidToken(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		token string
	}{
		{"malformed token", "not.a.valid.token"},
		{"random string", "randomstring"},
		{"wrong secret", createTokenWithSecret("wrong-secret", 1, time.Hour)},
		{"expired token", createTokenWithSecret(testSecret, 1, -time.Hour)},
		{"zero subject", createTokenWithSecret(testSecret, 0, time.Hour)},
		{"none algorithm", createUnsignedToken()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c, w := newTestContext("Bearer " + tt.token)
			AuthRequired(testSecret)(c)

			assert.Equal(t, http.StatusUnauthorized, w.Code)
			_, exists := c.Get(ContextUserID)
			assert.False(t, exists)
		})
	}
}

// TestAuthRequired_ValidToken は有効なトークンでコンテキストにユーザーIDが設定されることを検証します。
func TestAuthRequired_ValidToken(t *testing.T) {
	t.Parallel()

	for _, userID := range []uint{1, 42, 999} {
		c, w := newTestContext("Bearer " + createTokenWithSecret(testSecret, userID, time.Hour))
		AuthRequired(testSecret)(c)

		assert.False(t, c.IsAborted(), w.Body.String())
		assert.Equal(t, userID, UserID(c))
	}
}

// TestAuthOptional は匿名リクエストを通し、不正なトークンのみ拒否することを検証します。
func TestAuthOptional(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		authHeader  string
		wantAborted bool
		wantUserID  uint
	}{
		{"anonymous", "", false, 0},
		{"valid token", "Bearer " + createTokenWithSecret(testSecret, 5, time.Hour), false, 5},
		{"invalid token", "Bearer garbage", true, 0},
		{"expired token", "Bearer " + createTokenWithSecret(testSecret, 5, -time.Hour), true, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c, w := newTestContext(tt.authHeader)
			AuthOptional(testSecret)(c)

			assert.Equal(t, tt.wantAborted, c.IsAborted())
			if tt.wantAborted {
				assert.Equal(t, http.StatusUnauthorized, w.Code)
			}
			assert.Equal(t, tt.wantUserID, UserID(c))
		})
	}
}

// createTokenWithSecret はテスト用に指定されたシークレットとユーザーIDで署名済みJWTトークンを生成します。
func createTokenWithSecret(secret string, userID uint, expiration time.Duration) string {
	claims := jwt.MapClaims{
		"sub":   float64(userID),
		"exp":   time.Now().Add(expiration).Unix(),
		"iat":   time.Now().Unix(),
		"email": "test@example.com",
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, _ := token.SignedString([]byte(secret))
	return signed
}

func createUnsignedToken() string {
	token := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
		"sub": float64(1),
		"exp": time.Now().Add(time.Hour).Unix(),
		"iat": time.Now().Unix(),
	})
	s, _ := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
	return s
}
