package response

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

	"github.com/sanisamoj/Borai-sub000/internal/pkg/apperr"
)

func TestErrFromService(t *testing.T) {
	tests := []struct {
		kind apperr.Kind
		want int
	}{
		{apperr.KindAlreadyExists, http.StatusConflict},
		{apperr.KindNotFound, http.StatusNotFound},
		{apperr.KindInvalidState, http.StatusUnprocessableEntity},
		{apperr.KindUnauthorized, http.StatusForbidden},
		{apperr.KindInvalidInput, http.StatusBadRequest},
		{apperr.KindInternal, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			err := fmt.Errorf("wrapped -> %w", apperr.New(tt.kind, "boom"))
			got := ErrFromService(err)
			assert.Equal(t, tt.want, got.HTTPStatusCode)
			assert.NotContains(t, got.ErrorMsg, "wrapped")
		})
	}

	assert.Equal(t, http.StatusInternalServerError, ErrFromService(errors.New("db down")).HTTPStatusCode)
}

func TestRenderErr(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	ctx, _ := gin.CreateTestContext(rec)
	ctx.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	RenderErr(ctx, ErrInternalServerError(errors.New("secret detail")))

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "internal server error", body["error"])
	assert.NotContains(t, rec.Body.String(), "secret detail")
	assert.True(t, ctx.IsAborted())
}
