package handlers

import (
	"strconv"
	"strings"

	"github.com/labstack/echo/v5"
)

func parsePageParam(c *echo.Context) int {
	raw := strings.TrimSpace(c.QueryParam("page"))
	if raw == "" {
		return 1
	}
	page, err := strconv.Atoi(raw)
	if err != nil || page < 1 {
		return 1
	}
	return page
}

// paginate clamps page into [1, totalPages] and returns the page actually
// served, the page count and the row offset for the query. totalPages is
// never below 1 so an empty list still renders page 1 of 1.
func paginate(totalCount int64, page, perPage int) (int, int, int) {
	if perPage < 1 {
		perPage = 1
	}

	totalPages := 1
	if totalCount > 0 {
		totalPages = int((totalCount + int64(perPage) - 1) / int64(perPage))
	}

	switch {
	case page < 1:
		page = 1
	case page > totalPages:
		page = totalPages
	}

	return page, totalPages, (page - 1) * perPage
}

// showingRange converts an offset window into the 1-based "Showing X-Y"
// bounds for list footers; both are 0 when the list is empty.
func showingRange(totalCount int64, offset, showingCount int) (int, int) {
	if totalCount <= 0 || showingCount <= 0 {
		return 0, 0
	}
	to := offset + showingCount
	if int64(to) > totalCount {
		to = int(totalCount)
	}
	return offset + 1, to
}
