package counters

import (
	"context"
	"testing"

	"github.com/spotlog/spotlog/internal/errs"
)

func TestCountRejectsUnknownKind(t *testing.T) {
	// Validation must happen before any storage access, so a nil
	// handle is safe here.
	c := New(nil)

	_, err := c.Count(context.Background(), Kind("level"), 1)
	if err == nil {
		t.Fatal("Expected error for unknown count kind")
	}
	if !errs.Is(err, errs.CategoryInvalidRequest) {
		t.Errorf("Expected INVALID_REQUEST, got %s", errs.CategoryOf(err))
	}
}
