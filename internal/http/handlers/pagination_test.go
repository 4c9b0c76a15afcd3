package handlers

import (
	"net/http"
	"testing"
)

func TestPaginate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		totalCount int64
		page       int
		perPage    int
		wantPage   int
		wantPages  int
		wantOffset int
	}{
		{name: "empty list", totalCount: 0, page: 1, perPage: 20, wantPage: 1, wantPages: 1, wantOffset: 0},
		{name: "first page", totalCount: 55, page: 1, perPage: 20, wantPage: 1, wantPages: 3, wantOffset: 0},
		{name: "middle page", totalCount: 55, page: 2, perPage: 20, wantPage: 2, wantPages: 3, wantOffset: 20},
		{name: "page past end clamps", totalCount: 55, page: 9, perPage: 20, wantPage: 3, wantPages: 3, wantOffset: 40},
		{name: "zero page clamps up", totalCount: 55, page: 0, perPage: 20, wantPage: 1, wantPages: 3, wantOffset: 0},
		{name: "exact boundary", totalCount: 40, page: 2, perPage: 20, wantPage: 2, wantPages: 2, wantOffset: 20},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			page, totalPages, offset := paginate(tc.totalCount, tc.page, tc.perPage)
			if page != tc.wantPage || totalPages != tc.wantPages || offset != tc.wantOffset {
				t.Fatalf("paginate(%d, %d, %d) = (%d, %d, %d), want (%d, %d, %d)",
					tc.totalCount, tc.page, tc.perPage,
					page, totalPages, offset,
					tc.wantPage, tc.wantPages, tc.wantOffset)
			}
		})
	}
}

func TestShowingRange(t *testing.T) {
	t.Parallel()

	if from, to := showingRange(0, 0, 0); from != 0 || to != 0 {
		t.Fatalf("empty list: got (%d, %d), want (0, 0)", from, to)
	}
	if from, to := showingRange(55, 20, 20); from != 21 || to != 40 {
		t.Fatalf("middle page: got (%d, %d), want (21, 40)", from, to)
	}
	if from, to := showingRange(55, 40, 15); from != 41 || to != 55 {
		t.Fatalf("last page: got (%d, %d), want (41, 55)", from, to)
	}
}

func TestParsePageParam(t *testing.T) {
	t.Parallel()

	cases := map[string]int{
		"http://example.com/user/assets":            1,
		"http://example.com/user/assets?page=3":     3,
		"http://example.com/user/assets?page=0":     1,
		"http://example.com/user/assets?page=-2":    1,
		"http://example.com/user/assets?page=junk": 1,
		"http://example.com/user/assets?page=2.5":  1,
	}
	for target, want := range cases {
		c, _ := newTestContext(http.MethodGet, target)
		if got := parsePageParam(c); got != want {
			t.Errorf("parsePageParam(%q) = %d, want %d", target, got, want)
		}
	}
}
