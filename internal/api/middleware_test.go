package api

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/spotlog/spotlog/internal/models"
)

func TestCallerMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name     string
		headers  map[string]string
		wantID   int64
		wantRole string
	}{
		{
			name:    "no headers yields anonymous caller",
			headers: nil,
		},
		{
			name:     "identity headers populate caller",
			headers:  map[string]string{"X-User-Id": "7", "X-User-Role": models.RoleModerator},
			wantID:   7,
			wantRole: models.RoleModerator,
		},
		{
			name:    "malformed id stays anonymous",
			headers: map[string]string{"X-User-Id": "not-a-number", "X-User-Role": models.RoleUser},
		},
		{
			name:    "non-positive id stays anonymous",
			headers: map[string]string{"X-User-Id": "0"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := gin.CreateTestContext(httptest.NewRecorder())
			c.Request = httptest.NewRequest("GET", "/users", nil)
			for k, v := range tt.headers {
				c.Request.Header.Set(k, v)
			}

			CallerMiddleware()(c)

			caller := callerOf(c)
			if caller.ID != tt.wantID {
				t.Errorf("Expected caller ID %d, got %d", tt.wantID, caller.ID)
			}
			if caller.Role != tt.wantRole {
				t.Errorf("Expected role %q, got %q", tt.wantRole, caller.Role)
			}
			if tt.wantID == 0 && !caller.IsAnonymous() {
				t.Error("Expected anonymous caller")
			}
		})
	}
}

func TestCallerOfWithoutMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())

	caller := callerOf(c)
	if !caller.IsAnonymous() {
		t.Error("Expected anonymous caller when middleware never ran")
	}
}
