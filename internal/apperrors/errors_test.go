package apperrors

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func serve(t *testing.T, err error) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Handler(zap.NewNop()))
	r.GET("/", func(c *gin.Context) { _ = c.Error(err) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	return w
}

func TestHandler_ValidationError(t *testing.T) {
	w := serve(t, NewValidationError([]FieldError{
		{Field: "name", Message: "Category name is required!"},
		{Field: "name", Message: "Category name length should be at most 50 chars!"},
	}))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	var body struct {
		Error []FieldError `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Len(t, body.Error, 2)
	assert.Equal(t, "name", body.Error[0].Field)
}

func TestHandler_HTTPErrors(t *testing.T) {
	cases := []struct {
		err  error
		code int
	}{
		{BadRequest("Invalid product id!"), http.StatusBadRequest},
		{NotFound("Product not found!"), http.StatusBadRequest},
		{Unauthorized("Unauthorized"), http.StatusUnauthorized},
		{Forbidden("You don't have enough permissions"), http.StatusForbidden},
		{RequestTooLarge("File too large"), http.StatusRequestEntityTooLarge},
		{fmt.Errorf("find product: %w", NotFound("Product not found!")), http.StatusBadRequest},
	}
	for _, tc := range cases {
		w := serve(t, tc.err)
		assert.Equal(t, tc.code, w.Code, tc.err.Error())

		var body map[string]string
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.NotEmpty(t, body["message"])
	}
}

func TestHandler_UnknownErrorIs500(t *testing.T) {
	w := serve(t, errors.New("connection refused"))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "connection refused")
}

func TestNewValidationError_EmptyIsNil(t *testing.T) {
	assert.NoError(t, NewValidationError(nil))
}
