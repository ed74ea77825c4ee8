package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/debtledger/backend/internal/domain/identity"
	"github.com/debtledger/backend/internal/domain/shared"
	"github.com/debtledger/backend/internal/interfaces/http/dto"
	"github.com/debtledger/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestContext() (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/", nil)
	return c, w
}

func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) dto.Response {
	t.Helper()
	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestBaseHandler_Actor(t *testing.T) {
	h := BaseHandler{}

	t.Run("returns the authenticated user", func(t *testing.T) {
		c, _ := newTestContext()
		user := &identity.User{Role: identity.RoleEmployee}
		c.Set(middleware.ContextUserKey, user)

		got, ok := h.actor(c)
		assert.True(t, ok)
		assert.Same(t, user, got)
	})

	t.Run("aborts with 401 when missing", func(t *testing.T) {
		c, w := newTestContext()

		_, ok := h.actor(c)
		assert.False(t, ok)
		assert.Equal(t, http.StatusUnauthorized, w.Code)

		resp := decodeResponse(t, w)
		assert.False(t, resp.Success)
		assert.Equal(t, shared.ErrUnauthorized.Code, resp.Error.Code)
	})
}

func TestBaseHandler_PathID(t *testing.T) {
	h := BaseHandler{}

	t.Run("parses a valid UUID", func(t *testing.T) {
		c, _ := newTestContext()
		want := uuid.New()
		c.Params = gin.Params{{Key: "id", Value: want.String()}}

		got, ok := h.pathID(c)
		assert.True(t, ok)
		assert.Equal(t, want, got)
	})

	t.Run("rejects malformed IDs", func(t *testing.T) {
		c, w := newTestContext()
		c.Params = gin.Params{{Key: "id", Value: "42"}}

		_, ok := h.pathID(c)
		assert.False(t, ok)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestBaseHandler_HandleError(t *testing.T) {
	h := BaseHandler{}

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"not found", shared.ErrNotFound, http.StatusNotFound, "NOT_FOUND"},
		{"forbidden", shared.ErrForbidden, http.StatusForbidden, "FORBIDDEN"},
		{"insufficient balance", shared.ErrInsufficientBalance, http.StatusUnprocessableEntity, "INSUFFICIENT_BALANCE"},
		{"last admin", shared.NewDomainError("LAST_ADMIN", "At least one active administrator must remain"), http.StatusConflict, "LAST_ADMIN"},
		{"unknown domain code", shared.NewDomainError("SOMETHING_ODD", "odd"), http.StatusBadRequest, "SOMETHING_ODD"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, w := newTestContext()
			h.HandleError(c, tt.err)

			assert.Equal(t, tt.wantStatus, w.Code)
			resp := decodeResponse(t, w)
			assert.Equal(t, tt.wantCode, resp.Error.Code)
		})
	}

	t.Run("opaque 500 for non-domain errors", func(t *testing.T) {
		c, w := newTestContext()
		h.HandleError(c, errors.New("pq: connection refused"))

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		resp := decodeResponse(t, w)
		assert.Equal(t, dto.ErrCodeInternal, resp.Error.Code)
		assert.NotContains(t, w.Body.String(), "connection refused")
	})

	t.Run("wrapped domain errors unwrap", func(t *testing.T) {
		c, w := newTestContext()
		h.HandleError(c, fmt.Errorf("loading entity: %w", shared.ErrNotFound))

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestBaseHandler_ErrorResponseCarriesRequestID(t *testing.T) {
	h := BaseHandler{}
	c, w := newTestContext()
	c.Set(middleware.RequestIDKey, "req-7")

	h.BadRequest(c, "nope")

	resp := decodeResponse(t, w)
	assert.Equal(t, "req-7", resp.RequestID)
}

func TestBaseHandler_SuccessWithMeta(t *testing.T) {
	h := BaseHandler{}
	c, w := newTestContext()

	h.SuccessWithMeta(c, []string{"a", "b"}, 41, 2, 20)

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decodeResponse(t, w)
	assert.True(t, resp.Success)
	require.NotNil(t, resp.Meta)
	assert.Equal(t, int64(41), resp.Meta.Total)
	assert.Equal(t, 2, resp.Meta.Page)
	assert.Equal(t, 3, resp.Meta.TotalPages)
}
