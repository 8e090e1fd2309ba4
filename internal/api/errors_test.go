package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/spotlog/spotlog/internal/errs"
)

func TestStatusOf(t *testing.T) {
	tests := []struct {
		category errs.Category
		want     int
	}{
		{errs.CategoryNotFound, http.StatusNotFound},
		{errs.CategoryNotAllowed, http.StatusForbidden},
		{errs.CategoryAccessDenied, http.StatusForbidden},
		{errs.CategoryConflict, http.StatusConflict},
		{errs.CategoryInvalidRequest, http.StatusBadRequest},
		{errs.CategoryInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(string(tt.category), func(t *testing.T) {
			if got := statusOf(tt.category); got != tt.want {
				t.Errorf("Expected status %d, got %d", tt.want, got)
			}
		})
	}
}

func TestWriteError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("taxonomy error keeps code and message", func(t *testing.T) {
		rec := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(rec)

		writeError(c, errs.NotFound("user %d not found", 42))

		if rec.Code != http.StatusNotFound {
			t.Errorf("Expected 404, got %d", rec.Code)
		}
		var body errorResponse
		if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
			t.Fatalf("Failed to decode body: %v", err)
		}
		if body.Category != errs.CategoryNotFound {
			t.Errorf("Expected NOT_FOUND category, got %s", body.Category)
		}
		if body.Message != "user 42 not found" {
			t.Errorf("Unexpected message: %q", body.Message)
		}
	})

	t.Run("unknown error surfaces opaquely", func(t *testing.T) {
		rec := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(rec)

		writeError(c, errors.New("pq: connection reset"))

		if rec.Code != http.StatusInternalServerError {
			t.Errorf("Expected 500, got %d", rec.Code)
		}
		var body errorResponse
		if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
			t.Fatalf("Failed to decode body: %v", err)
		}
		if body.Message != "internal error" {
			t.Errorf("Expected opaque message, got %q", body.Message)
		}
	})

	t.Run("internal taxonomy error is also masked", func(t *testing.T) {
		rec := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(rec)

		writeError(c, errs.Internal(errors.New("query timeout")))

		var body errorResponse
		if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
			t.Fatalf("Failed to decode body: %v", err)
		}
		if body.Message != "internal error" {
			t.Errorf("Expected masked message, got %q", body.Message)
		}
	})
}
