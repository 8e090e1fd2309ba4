package ranking

import (
	"context"
	"testing"

	"github.com/spotlog/spotlog/internal/errs"
	"github.com/spotlog/spotlog/internal/models"
)

func TestQueryValidate(t *testing.T) {
	tests := []struct {
		name    string
		query   Query
		wantErr bool
	}{
		{name: "valid defaults", query: Query{Page: 0, Size: 20}},
		{name: "explicit sort", query: Query{Page: 3, Size: 5, Sort: SortUsername, Ascending: true}},
		{name: "negative page", query: Query{Page: -1, Size: 20}, wantErr: true},
		{name: "zero size", query: Query{Page: 0, Size: 0}, wantErr: true},
		{name: "unknown sort key", query: Query{Page: 0, Size: 20, Sort: SortKey("karma")}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.query.validate(KindUsers)
			if tt.wantErr {
				if err == nil {
					t.Fatal("Expected validation error")
				}
				if !errs.Is(err, errs.CategoryInvalidRequest) {
					t.Errorf("Expected INVALID_REQUEST, got %s", errs.CategoryOf(err))
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
		})
	}
}

func TestValidateBeforeQuery(t *testing.T) {
	// A request with a bad sort key must fail before any query
	// executes; a nil handle proves no storage access happened.
	e := NewEngine(nil)

	_, _, err := e.PageUsers(context.Background(), Query{Page: 0, Size: 10, Sort: SortKey("reputation")})
	if err == nil {
		t.Fatal("Expected error for unknown sort key")
	}
	if !errs.Is(err, errs.CategoryInvalidRequest) {
		t.Errorf("Expected INVALID_REQUEST, got %s", errs.CategoryOf(err))
	}

	_, _, err = e.PageReviews(context.Background(), Query{Page: -2, Size: 10})
	if err == nil {
		t.Fatal("Expected error for negative page")
	}
}

func TestTrim(t *testing.T) {
	mk := func(n int) []*models.User {
		users := make([]*models.User, n)
		for i := range users {
			users[i] = &models.User{ID: int64(i + 1)}
		}
		return users
	}

	tests := []struct {
		name        string
		fetched     int
		size        int
		wantLen     int
		wantHasNext bool
	}{
		{name: "probe row present", fetched: 6, size: 5, wantLen: 5, wantHasNext: true},
		{name: "exactly full page", fetched: 5, size: 5, wantLen: 5, wantHasNext: false},
		{name: "short page", fetched: 2, size: 5, wantLen: 2, wantHasNext: false},
		{name: "empty", fetched: 0, size: 5, wantLen: 0, wantHasNext: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, hasNext := trimUsers(mk(tt.fetched), tt.size)
			if len(got) != tt.wantLen {
				t.Errorf("len = %d, want %d", len(got), tt.wantLen)
			}
			if hasNext != tt.wantHasNext {
				t.Errorf("hasNext = %v, want %v", hasNext, tt.wantHasNext)
			}
		})
	}
}

func TestLikePattern(t *testing.T) {
	tests := []struct {
		keyword  string
		expected string
	}{
		{keyword: "user", expected: "%user%"},
		{keyword: "50%", expected: `%50\%%`},
		{keyword: "a_b", expected: `%a\_b%`},
		{keyword: `c:\temp`, expected: `%c:\\temp%`},
	}

	for _, tt := range tests {
		if got := likePattern(tt.keyword); got != tt.expected {
			t.Errorf("likePattern(%q) = %q, want %q", tt.keyword, got, tt.expected)
		}
	}
}
