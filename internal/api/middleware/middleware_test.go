package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dhima/time-machine/pkg/travel"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRouter(mw gin.HandlerFunc, handler gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(mw)
	router.GET("/test", handler)
	return router
}

func TestRequestID_WhenClientProvidesRequestID_ThenUsesProvidedID(t *testing.T) {
	// Arrange
	var seen any
	router := newRouter(RequestID(), func(c *gin.Context) {
		seen, _ = c.Get(RequestIDKey)
		c.Status(http.StatusOK)
	})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set(RequestIDHeader, "client-provided-request-id")

	// Act
	router.ServeHTTP(w, req)

	// Assert
	assert.Equal(t, "client-provided-request-id", seen)
	assert.Equal(t, "client-provided-request-id", w.Header().Get(RequestIDHeader))
}

func TestRequestID_WhenClientDoesNotProvideRequestID_ThenEachRequestGetsNewID(t *testing.T) {
	// Arrange
	router := newRouter(RequestID(), func(c *gin.Context) { c.Status(http.StatusOK) })
	first := httptest.NewRecorder()
	second := httptest.NewRecorder()

	// Act
	router.ServeHTTP(first, httptest.NewRequest(http.MethodGet, "/test", nil))
	router.ServeHTTP(second, httptest.NewRequest(http.MethodGet, "/test", nil))

	// Assert
	assert.NotEmpty(t, first.Header().Get(RequestIDHeader))
	assert.NotEqual(t, first.Header().Get(RequestIDHeader), second.Header().Get(RequestIDHeader))
}

func TestVirtualTime_WhenNotTravelling_ThenNoHeader(t *testing.T) {
	// Arrange
	router := newRouter(VirtualTime(), func(c *gin.Context) { c.Status(http.StatusOK) })
	w := httptest.NewRecorder()

	// Act
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test", nil))

	// Assert
	assert.Empty(t, w.Header().Get(VirtualTimeHeader))
}

func TestVirtualTime_WhenTravelling_ThenHeaderCarriesVirtualTime(t *testing.T) {
	// Arrange
	tr, err := travel.New("2000-01-01T00:00:00Z", travel.WithTick(false))
	require.NoError(t, err)
	_, err = tr.Start()
	require.NoError(t, err)
	t.Cleanup(func() { _ = tr.Stop() })

	router := newRouter(VirtualTime(), func(c *gin.Context) { c.Status(http.StatusOK) })
	w := httptest.NewRecorder()

	// Act
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test", nil))

	// Assert
	got, err := time.Parse(time.RFC3339Nano, w.Header().Get(VirtualTimeHeader))
	require.NoError(t, err)
	assert.True(t, got.Equal(time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)))
}
