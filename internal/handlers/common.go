package handlers

import (
	"github.com/labstack/echo/v4"
)

// getUserIDFromContext returns the authenticated viewer's id, or 0
// when the request carries no valid session.
func getUserIDFromContext(c echo.Context) uint {
	if id, ok := c.Get("userID").(uint); ok {
		return id
	}
	return 0
}

// getUsernameFromContext returns the authenticated viewer's username,
// or the empty string.
func getUsernameFromContext(c echo.Context) string {
	if username, ok := c.Get("username").(string); ok {
		return username
	}
	return ""
}
