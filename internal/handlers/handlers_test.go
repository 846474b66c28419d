package handlers_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/quillhub/quill/backend/internal/handlers"
	"github.com/quillhub/quill/backend/internal/middleware"
	"github.com/quillhub/quill/backend/internal/models"
	"github.com/quillhub/quill/backend/internal/repositories"
	"github.com/quillhub/quill/backend/internal/router"
	"github.com/quillhub/quill/backend/pkg/config"
	"github.com/quillhub/quill/backend/validators"
)

const testJWTSecret = "test-secret"

var testDBCounter int64

// testApp is a fully wired server over an in-memory database. Mongo
// and Redis are absent; image uploads and the follow cache stay off.
type testApp struct {
	e  *echo.Echo
	db *gorm.DB
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()

	n := atomic.AddInt64(&testDBCounter, 1)
	dsn := fmt.Sprintf("file:handlertest%d?mode=memory&cache=shared&_foreign_keys=on", n)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	e := echo.New()
	e.Validator = validators.NewValidator()
	cfg := &config.Config{JWTSecret: testJWTSecret, PageSize: 10}
	router.SetupRoutes(e, db, nil, nil, cfg)

	return &testApp{e: e, db: db}
}

// createUser inserts a user with a bcrypt-hashed password
func (a *testApp) createUser(t *testing.T, username, password string) *models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	user := &models.User{Username: username, Email: username + "@example.com", Password: string(hash)}
	if err := a.db.Create(user).Error; err != nil {
		t.Fatalf("create user %s: %v", username, err)
	}
	return user
}

// sessionCookie builds a signed session cookie for a user
func (a *testApp) sessionCookie(t *testing.T, user *models.User) *http.Cookie {
	t.Helper()
	authHandler := handlers.NewAuthHandler(repositories.NewPostgresUserRepository(a.db), testJWTSecret)
	token, err := authHandler.GenerateToken(user)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}
	return &http.Cookie{Name: middleware.SessionCookieName, Value: token}
}

// get performs a GET request, optionally authenticated
func (a *testApp) get(path string, cookie *http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	a.e.ServeHTTP(rec, req)
	return rec
}

// postForm performs a form-encoded POST, optionally authenticated
func (a *testApp) postForm(path string, form url.Values, cookie *http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	a.e.ServeHTTP(rec, req)
	return rec
}

// decodeBody unmarshals a JSON response body
func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body %q: %v", rec.Body.String(), err)
	}
	return body
}

// bodyList pulls a JSON array field out of a decoded body
func bodyList(t *testing.T, body map[string]interface{}, key string) []interface{} {
	t.Helper()
	raw, ok := body[key]
	if !ok || raw == nil {
		return nil
	}
	list, ok := raw.([]interface{})
	if !ok {
		t.Fatalf("field %q is %T, not a list", key, raw)
	}
	return list
}
