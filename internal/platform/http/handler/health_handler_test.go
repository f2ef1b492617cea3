package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

type mockPinger struct {
	err error
}

func (m *mockPinger) PingContext(ctx context.Context) error { return m.err }

func setupRouter(db Pinger) *gin.Engine {
	h := NewHealthHandler(db)
	r := gin.New()
	r.GET("/healthz", h.Health)
	r.HEAD("/healthz", h.Health)
	r.OPTIONS("/healthz", h.Health)
	return r
}

func TestHealth(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		method         string
		db             Pinger
		expectedStatus int
		expectedBody   string
	}{
		{"GET without db", http.MethodGet, nil, http.StatusOK, "ok"},
		{"GET with healthy db", http.MethodGet, &mockPinger{}, http.StatusOK, "ok"},
		{"GET with failing db", http.MethodGet, &mockPinger{err: errors.New("connection refused")}, http.StatusServiceUnavailable, "unavailable"},
		{"HEAD", http.MethodHead, &mockPinger{}, http.StatusOK, ""},
		{"HEAD with failing db", http.MethodHead, &mockPinger{err: errors.New("down")}, http.StatusServiceUnavailable, ""},
		{"OPTIONS", http.MethodOptions, &mockPinger{err: errors.New("down")}, http.StatusNoContent, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			w := httptest.NewRecorder()
			setupRouter(tt.db).ServeHTTP(w, httptest.NewRequest(tt.method, "/healthz", nil))

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Equal(t, "no-store", w.Header().Get("Cache-Control"))

			if tt.expectedBody == "" {
				assert.Zero(t, w.Body.Len())
				return
			}
			var response map[string]string
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
			assert.Equal(t, tt.expectedBody, response["status"])
		})
	}
}
