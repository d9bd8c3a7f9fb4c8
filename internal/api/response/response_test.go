package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newContext() (*httptest.ResponseRecorder, *gin.Context) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	return w, c
}

func TestSuccess_WhenCalled_ThenReturnsSuccessResponse(t *testing.T) {
	// Arrange
	w, c := newContext()

	// Act
	Success(c, http.StatusOK, map[string]string{"key": "value"}, "success message")

	// Assert
	assert.Equal(t, http.StatusOK, w.Code)
	var resp SuccessResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "success message", resp.Message)
	assert.Equal(t, map[string]any{"key": "value"}, resp.Data)
}

func TestError_WhenCalledWithRequestID_ThenIncludesTraceID(t *testing.T) {
	// Arrange
	w, c := newContext()
	c.Set("request_id", "test-trace-id")

	// Act
	Error(c, http.StatusBadRequest, "test error", nil)

	// Assert
	assert.Equal(t, http.StatusBadRequest, w.Code)
	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "test error", resp.Error)
	assert.Equal(t, "test-trace-id", resp.TraceID)
}

func TestError_WhenCalledWithoutRequestID_ThenGeneratesTraceID(t *testing.T) {
	// Arrange
	w, c := newContext()

	// Act
	Error(c, http.StatusInternalServerError, "test error", "details")

	// Assert
	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.TraceID)
	assert.Equal(t, "details", resp.Details)
}

func TestStatusHelpers_WhenCalled_ThenWriteTheirStatus(t *testing.T) {
	tests := []struct {
		name string
		call func(c *gin.Context)
		want int
	}{
		{"bad request", func(c *gin.Context) { BadRequest(c, "bad", nil) }, http.StatusBadRequest},
		{"not found", func(c *gin.Context) { NotFound(c, "missing") }, http.StatusNotFound},
		{"conflict", func(c *gin.Context) { Conflict(c, "not travelling", nil) }, http.StatusConflict},
		{"internal", func(c *gin.Context) { InternalServerError(c, "boom") }, http.StatusInternalServerError},
		{"ok", func(c *gin.Context) { OK(c, "data") }, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, c := newContext()

			tt.call(c)

			assert.Equal(t, tt.want, w.Code)
		})
	}
}

func TestNoContent_WhenCalled_ThenReturns204WithoutBody(t *testing.T) {
	// Arrange
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	_, router := gin.CreateTestContext(w)
	router.DELETE("/x", NoContent)

	// Act
	router.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/x", nil))

	// Assert
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.String())
}

func TestGetRequestID_WhenRequestIDIsNotString_ThenGeneratesNew(t *testing.T) {
	// Arrange
	_, c := newContext()
	c.Set("request_id", 42)

	// Act
	id := GetRequestID(c)

	// Assert
	assert.NotEmpty(t, id)
	assert.NotEqual(t, "42", id)
}

func TestValidationErrors_WhenCalled_ThenReturnsBadRequestWithErrors(t *testing.T) {
	// Arrange
	w, c := newContext()

	// Act
	ValidationErrors(c, []ValidationError{{Field: "destination", Message: "destination is required"}})

	// Assert
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), `"field":"destination"`)
	assert.Contains(t, w.Body.String(), `"error":"validation failed"`)
}
