package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"

	"github.com/quillhub/quill/backend/internal/middleware"
	"github.com/quillhub/quill/backend/internal/models"
	"github.com/quillhub/quill/backend/internal/repositories"
	"github.com/quillhub/quill/backend/validators"
)

const sessionLifetime = 72 * time.Hour

// AuthHandler handles signup, login and logout
type AuthHandler struct {
	userRepository repositories.UserRepository
	jwtSecret      string
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(userRepo repositories.UserRepository, jwtSecret string) *AuthHandler {
	return &AuthHandler{
		userRepository: userRepo,
		jwtSecret:      jwtSecret,
	}
}

// RegisterAuthRoutes registers authentication-related routes
func (h *AuthHandler) RegisterAuthRoutes(e *echo.Echo) {
	e.POST("/auth/signup/", h.Signup)
	e.POST("/auth/login/", h.Login)
	e.GET("/auth/login/", h.LoginForm)
	e.GET("/auth/logout/", h.Logout)
}

// LoginForm returns the data a login page needs, echoing next back so
// the form can carry it through the POST.
func (h *AuthHandler) LoginForm(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"form": echo.Map{"username": "", "password": ""},
		"next": c.QueryParam("next"),
	})
}

// Signup creates a local account and signs the new user in
func (h *AuthHandler) Signup(c echo.Context) error {
	var req models.SignupRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	if errs := validators.Check(req); errs != nil {
		return c.JSON(http.StatusOK, echo.Map{"errors": errs})
	}

	if _, err := h.userRepository.GetUserByUsername(req.Username); err == nil {
		return c.JSON(http.StatusOK, echo.Map{"errors": map[string]string{
			"Username": "a user with that username already exists",
		}})
	}
	if _, err := h.userRepository.GetUserByEmail(req.Email); err == nil {
		return c.JSON(http.StatusOK, echo.Map{"errors": map[string]string{
			"Email": "a user with that email already exists",
		}})
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to hash password")
	}

	user := &models.User{
		Username: req.Username,
		Email:    req.Email,
		Password: string(hashedPassword),
	}
	if err := h.userRepository.CreateUser(user); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if err := h.setSessionCookie(c, user); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to generate token after signup")
	}
	return c.Redirect(http.StatusFound, "/")
}

// Login verifies credentials, sets the session cookie and redirects to
// next (default the global feed). Bad credentials re-render the form.
func (h *AuthHandler) Login(c echo.Context) error {
	var req models.LoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	if errs := validators.Check(req); errs != nil {
		return c.JSON(http.StatusOK, echo.Map{"errors": errs, "next": req.Next})
	}

	user, err := h.userRepository.GetUserByUsername(req.Username)
	if err != nil {
		return c.JSON(http.StatusOK, echo.Map{"errors": map[string]string{
			"_form": "invalid username or password",
		}, "next": req.Next})
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return c.JSON(http.StatusOK, echo.Map{"errors": map[string]string{
			"_form": "invalid username or password",
		}, "next": req.Next})
	}

	if err := h.setSessionCookie(c, user); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to generate token")
	}
	return c.Redirect(http.StatusFound, safeNext(req.Next))
}

// Logout clears the session cookie
func (h *AuthHandler) Logout(c echo.Context) error {
	c.SetCookie(&http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
	return c.Redirect(http.StatusFound, "/")
}

// GenerateToken signs a session token for a user. Exported for tests
// that need an authenticated client without going through login.
func (h *AuthHandler) GenerateToken(user *models.User) (string, error) {
	claims := &models.JwtCustomClaims{
		UserID:   user.ID,
		Username: user.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(sessionLifetime)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(h.jwtSecret))
}

func (h *AuthHandler) setSessionCookie(c echo.Context, user *models.User) error {
	token, err := h.GenerateToken(user)
	if err != nil {
		return err
	}
	c.SetCookie(&http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(sessionLifetime),
		HttpOnly: true,
	})
	return nil
}

// safeNext keeps redirects on-site: only relative paths are honored
func safeNext(next string) string {
	if next == "" || !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") {
		return "/"
	}
	return next
}
