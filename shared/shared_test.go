package shared_test

import (
	"strings"
	"testing"

	"innkeep/shared"
	"innkeep/shared/dto"
)

func TestCalculateTotalPage(t *testing.T) {
	tests := []struct {
		name     string
		total    int
		limit    int
		expected int
	}{
		{name: "zero total", total: 0, limit: 10, expected: 1},
		{name: "zero limit", total: 50, limit: 0, expected: 1},
		{name: "exact pages", total: 40, limit: 10, expected: 4},
		{name: "partial last page", total: 41, limit: 10, expected: 5},
		{name: "single item", total: 1, limit: 10, expected: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := shared.CalculateTotalPage(tt.total, tt.limit); got != tt.expected {
				t.Errorf("expected %d, got %d", tt.expected, got)
			}
		})
	}
}

func TestGenerateCode(t *testing.T) {
	code := shared.GenerateCode("BK", 8)

	if !strings.HasPrefix(code, "BK-") {
		t.Errorf("expected BK- prefix, got %s", code)
	}

	if len(code) != len("BK-")+8 {
		t.Errorf("expected length %d, got %d", len("BK-")+8, len(code))
	}

	for _, forbidden := range []string{"0", "O", "1", "I"} {
		if strings.Contains(code[3:], forbidden) {
			t.Errorf("code %s contains ambiguous character %s", code, forbidden)
		}
	}

	// no two codes should collide in a trivial sample
	seen := map[string]bool{}
	for range 100 {
		c := shared.GenerateCode("", 8)
		if seen[c] {
			t.Fatalf("duplicate code generated: %s", c)
		}

		seen[c] = true
	}
}

func TestGenerateCode_NoPrefix(t *testing.T) {
	code := shared.GenerateCode("", 6)

	if strings.Contains(code, "-") {
		t.Errorf("expected bare code, got %s", code)
	}

	if len(code) != 6 {
		t.Errorf("expected length 6, got %d", len(code))
	}
}

func TestBuildCacheKey(t *testing.T) {
	key := shared.BuildCacheKey("booking", "get", "abc")

	if key != "booking:get:abc" {
		t.Errorf("expected booking:get:abc, got %s", key)
	}
}

func TestBuildCacheKeyWithQuery_DistinctFilters(t *testing.T) {
	params := dto.QueryParams{Page: 1, Limit: 10}

	keyA := shared.BuildCacheKeyWithQuery("booking:gets", params, dto.FilterGroup{
		Operator: dto.FilterGroupOperatorAnd,
		Filters: []any{
			dto.Filter{Field: "status", Operator: dto.FilterOperatorEq, Value: "reserved"},
		},
	})
	keyB := shared.BuildCacheKeyWithQuery("booking:gets", params, dto.FilterGroup{
		Operator: dto.FilterGroupOperatorAnd,
		Filters: []any{
			dto.Filter{Field: "status", Operator: dto.FilterOperatorEq, Value: "cancelled"},
		},
	})

	if keyA == keyB {
		t.Error("cache keys for different filters must not collide")
	}
}

func TestFilterByID(t *testing.T) {
	group := shared.FilterByID("some-id", "id", "bookings")

	where, args := group.GetWhereClause()

	if !strings.Contains(where, "bookings.id = :id") {
		t.Errorf("unexpected where clause: %s", where)
	}

	if args["id"] != "some-id" {
		t.Errorf("expected arg some-id, got %v", args["id"])
	}
}
