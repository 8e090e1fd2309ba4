package errs

import (
	"errors"
	"fmt"
	"testing"
)

func TestCategoryOf(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected Category
	}{
		{name: "not found", err: NotFound("user %d not found", 7), expected: CategoryNotFound},
		{name: "not allowed", err: NotAllowed("review is blocked"), expected: CategoryNotAllowed},
		{name: "conflict", err: Conflict("already following"), expected: CategoryConflict},
		{name: "invalid request", err: InvalidRequest("unknown sort key"), expected: CategoryInvalidRequest},
		{name: "access denied", err: AccessDenied("not the author"), expected: CategoryAccessDenied},
		{name: "wrapped", err: fmt.Errorf("outer: %w", Conflict("duplicate heart")), expected: CategoryConflict},
		{name: "plain error", err: errors.New("boom"), expected: CategoryInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CategoryOf(tt.err); got != tt.expected {
				t.Errorf("CategoryOf() = %s, want %s", got, tt.expected)
			}
		})
	}
}

func TestStableCodes(t *testing.T) {
	if NotFound("x").Code != 2000 {
		t.Error("NotFound code changed")
	}
	if Conflict("x").Code != 2002 {
		t.Error("Conflict code changed")
	}
	if InvalidRequest("x").Code != 2003 {
		t.Error("InvalidRequest code changed")
	}
}

func TestIs(t *testing.T) {
	err := fmt.Errorf("tx: %w", NotFound("gone"))
	if !Is(err, CategoryNotFound) {
		t.Error("Expected wrapped error to match its category")
	}
	if Is(err, CategoryConflict) {
		t.Error("Did not expect category match")
	}
}
