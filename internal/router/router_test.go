package router_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"verdicto/internal/handler"
	"verdicto/internal/router"
	"verdicto/mocks"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestSetup_Routes(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	r := router.Setup(
		new(mocks.MockAuthService),
		handler.NewComparisonHandler(new(mocks.MockComparisonService)),
		handler.NewHealthHandler(sqlx.NewDb(db, "pgx")),
		[]string{"http://localhost:3000"},
	)

	registered := make(map[string]bool)
	for _, route := range r.Routes() {
		registered[route.Method+" "+route.Path] = true
	}
	for _, want := range []string{
		"GET /healthz",
		"GET /readyz",
		"POST /api/v1/comparisons",
		"GET /api/v1/comparisons",
		"GET /api/v1/comparisons/:id",
		"GET /api/v1/comparisons/:id/export",
		"DELETE /api/v1/comparisons/:id",
	} {
		assert.True(t, registered[want], "missing route %s", want)
	}
}

func TestSetup_ProtectedRoutesRequireToken(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	r := router.Setup(
		new(mocks.MockAuthService),
		handler.NewComparisonHandler(new(mocks.MockComparisonService)),
		handler.NewHealthHandler(sqlx.NewDb(db, "pgx")),
		nil,
	)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/api/v1/comparisons", http.NoBody)
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

	w = httptest.NewRecorder()
	req, _ = http.NewRequest(http.MethodGet, "/healthz", http.NoBody)
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}
