package middleware

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"

	"github.com/quillhub/quill/backend/internal/models"
)

// SessionCookieName carries the signed session token between requests
const SessionCookieName = "quill_session"

// LoginPath is where unauthenticated requests to protected pages are
// sent, with the original path preserved in the next parameter.
const LoginPath = "/auth/login/"

const (
	ctxUserIDKey   = "userID"
	ctxUsernameKey = "username"
)

// RequireAuth redirects unauthenticated requests to the login page
// with next set to the originally requested URL.
func RequireAuth(jwtSecret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, ok := parseSession(c, jwtSecret)
			if !ok {
				target := LoginPath + "?next=" + url.QueryEscape(c.Request().URL.RequestURI())
				return c.Redirect(http.StatusFound, target)
			}
			c.Set(ctxUserIDKey, claims.UserID)
			c.Set(ctxUsernameKey, claims.Username)
			return next(c)
		}
	}
}

// OptionalAuth annotates the request with the viewer's identity when a
// valid session is present, and passes through otherwise.
func OptionalAuth(jwtSecret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if claims, ok := parseSession(c, jwtSecret); ok {
				c.Set(ctxUserIDKey, claims.UserID)
				c.Set(ctxUsernameKey, claims.Username)
			}
			return next(c)
		}
	}
}

// parseSession reads the token from the session cookie, falling back
// to a bearer Authorization header for non-browser clients.
func parseSession(c echo.Context, jwtSecret string) (*models.JwtCustomClaims, bool) {
	tokenString := ""
	if cookie, err := c.Cookie(SessionCookieName); err == nil && cookie.Value != "" {
		tokenString = cookie.Value
	} else if authHeader := c.Request().Header.Get("Authorization"); authHeader != "" {
		parts := strings.Split(authHeader, " ")
		if len(parts) == 2 && strings.ToLower(parts[0]) == "bearer" {
			tokenString = parts[1]
		}
	}
	if tokenString == "" {
		return nil, false
	}

	claims := &models.JwtCustomClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenUnverifiable
		}
		return []byte(jwtSecret), nil
	})
	if err != nil || !token.Valid || claims.UserID == 0 {
		return nil, false
	}
	return claims, true
}
