package handlers

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v5"
)

// isHX reports whether the request was issued by htmx. Any handler that
// branches on it must also addVary("HX-Request") so caches keep the two
// renderings apart.
func isHX(c *echo.Context) bool {
	if c == nil || c.Request() == nil {
		return false
	}
	return strings.EqualFold(strings.TrimSpace(c.Request().Header.Get("HX-Request")), "true")
}

func setHXRedirect(c *echo.Context, url string) {
	if c == nil {
		return
	}
	c.Response().Header().Set("HX-Redirect", url)
}

// addVary appends header names to the response Vary header, keeping each name
// once and leaving a wildcard Vary alone.
func addVary(c *echo.Context, names ...string) {
	if c == nil || len(names) == 0 {
		return
	}
	header := c.Response().Header()

	tokens := []string{}
	for _, line := range header.Values(echo.HeaderVary) {
		tokens = append(tokens, strings.Split(line, ",")...)
	}
	tokens = append(tokens, names...)

	seen := map[string]bool{}
	merged := make([]string, 0, len(tokens))
	for _, token := range tokens {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}
		if token == "*" {
			header.Set(echo.HeaderVary, "*")
			return
		}
		canonical := http.CanonicalHeaderKey(token)
		if seen[strings.ToLower(canonical)] {
			continue
		}
		seen[strings.ToLower(canonical)] = true
		merged = append(merged, canonical)
	}

	if len(merged) > 0 {
		header.Set(echo.HeaderVary, strings.Join(merged, ", "))
	}
}
