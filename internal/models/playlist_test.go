package models

import "testing"

func TestNewPagination(t *testing.T) {
	cases := []struct {
		name       string
		total      int
		page       int
		limit      int
		totalPages int
	}{
		{"Empty", 0, 1, 10, 0},
		{"Exact Fit", 20, 1, 10, 2},
		{"Partial Last Page", 15, 2, 10, 2},
		{"Single Result", 1, 1, 10, 1},
		{"Zero Limit", 5, 1, 0, 0},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			p := NewPagination(c.total, c.page, c.limit)
			if p.TotalPages != c.totalPages {
				t.Errorf("expected totalPages=%d, got %d", c.totalPages, p.TotalPages)
			}
			if p.Total != c.total || p.CurrentPage != c.page || p.Limit != c.limit {
				t.Errorf("unexpected pagination: %+v", p)
			}
		})
	}
}
