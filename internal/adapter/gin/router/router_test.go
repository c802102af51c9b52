package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"user-admin-service/internal/adapter/gin/handler"
)

// Route registration must not panic: gin rejects a static file that sits
// under a wildcard route, so the OpenAPI document and the swagger UI have
// to live on separate prefixes.
func TestSetupRouter_RegistersWithoutPanic(t *testing.T) {
	logger := zaptest.NewLogger(t)

	var engine http.Handler
	require.NotPanics(t, func() {
		engine = SetupRouter(
			handler.NewUserHandler(nil, logger),
			handler.NewScreenHandler(nil, logger),
			nil,
			logger,
		)
	})

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestSetupRouter_SwaggerRoutes(t *testing.T) {
	logger := zaptest.NewLogger(t)
	engine := SetupRouter(
		handler.NewUserHandler(nil, logger),
		handler.NewScreenHandler(nil, logger),
		nil,
		logger,
	)

	// The UI route resolves even when the document file is absent on disk
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/swagger/index.html", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	// The document route is registered; it may 404 when the file is not
	// present in the test working directory, but never conflicts
	w = httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/openapi/users.swagger.json", nil))
	assert.NotEqual(t, http.StatusMethodNotAllowed, w.Code)
}
