package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"inkwell/internal/auth"
	"inkwell/internal/config"
	"inkwell/internal/database"
	"inkwell/internal/featureflags"
	"inkwell/internal/protection"
	"inkwell/internal/repository"
	"inkwell/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const testSecret = "handler-test-secret-32-chars-long!!!"

// newTestServer builds a Server over an in-memory SQLite database with
// routes registered on a bare Fiber app. protectionURL may be empty to
// allow every request.
func newTestServer(t *testing.T, protectionURL string) (*Server, *fiber.App) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	cfg := &config.Config{
		Port:         "8370",
		Env:          "test",
		JWTSecret:    testSecret,
		FeatureFlags: "premium_checkout=on",
	}

	authenticator, err := auth.NewAuthenticator(cfg.JWTSecret)
	require.NoError(t, err)

	userRepo := repository.NewUserRepository(db)
	postRepo := repository.NewPostRepository(db)
	commentRepo := repository.NewCommentRepository(db)

	s := &Server{
		config:        cfg,
		db:            db,
		authenticator: authenticator,
		protector:     protection.NewClient(protectionURL, "test-key", time.Second),
		featureFlags:  featureflags.NewManager(cfg.FeatureFlags),
		userRepo:      userRepo,
		postRepo:      postRepo,
		commentRepo:   commentRepo,
	}
	s.userService = service.NewUserService(userRepo)
	s.postService = service.NewPostService(postRepo)
	s.commentService = service.NewCommentService(commentRepo)

	app := fiber.New()
	s.SetupRoutes(app)

	return s, app
}

// doJSON performs a JSON request against the app and decodes the response body.
func doJSON(t *testing.T, app *fiber.App, method, path string, body any, cookies ...*http.Cookie) (*http.Response, map[string]any) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}

	resp, err := app.Test(req, int(10*time.Second/time.Millisecond))
	require.NoError(t, err)

	defer func() { _ = resp.Body.Close() }()
	var decoded map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&decoded))

	return resp, decoded
}

// sessionCookie extracts the session cookie from a response, failing when absent.
func sessionCookie(t *testing.T, resp *http.Response) *http.Cookie {
	t.Helper()
	for _, cookie := range resp.Cookies() {
		if cookie.Name == auth.CookieName && cookie.Value != "" {
			return cookie
		}
	}
	t.Fatal("session cookie not set")
	return nil
}

// hasSessionCookie reports whether the response sets a non-empty session cookie.
func hasSessionCookie(resp *http.Response) bool {
	for _, cookie := range resp.Cookies() {
		if cookie.Name == auth.CookieName && cookie.Value != "" {
			return true
		}
	}
	return false
}
