package server

import (
	"net/http"
	"strings"
	"testing"

	"inkwell/internal/auth"
	"inkwell/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func registerBody(email string) map[string]string {
	return map[string]string{
		"name":     "Ada",
		"email":    email,
		"password": "secret1",
	}
}

func TestRegister_Success(t *testing.T) {
	_, app := newTestServer(t, "")

	resp, body := doJSON(t, app, http.MethodPost, "/api/auth/register", registerBody("ada@example.com"))

	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, true, body["success"])

	user, ok := body["user"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "ada@example.com", user["email"])
	// The bcrypt hash must never appear in a response.
	_, leaked := user["password"]
	assert.False(t, leaked)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	s, app := newTestServer(t, "")

	resp, _ := doJSON(t, app, http.MethodPost, "/api/auth/register", registerBody("dup@example.com"))
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, body := doJSON(t, app, http.MethodPost, "/api/auth/register", registerBody("dup@example.com"))
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "User already exists!", body["error"])

	var count int64
	require.NoError(t, s.db.Model(&models.User{}).Where("email = ?", "dup@example.com").Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestRegister_ValidationFirstViolation(t *testing.T) {
	_, app := newTestServer(t, "")

	resp, body := doJSON(t, app, http.MethodPost, "/api/auth/register", map[string]string{
		"name":     "Ada",
		"email":    "ada@example.com",
		"password": "short",
	})

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Password must be at least 6 characters long.", body["error"])
}

func TestLogin_Success_SetsCookie(t *testing.T) {
	s, app := newTestServer(t, "")
	doJSON(t, app, http.MethodPost, "/api/auth/register", registerBody("login@example.com"))

	resp, body := doJSON(t, app, http.MethodPost, "/api/auth/login", map[string]string{
		"email":    "login@example.com",
		"password": "secret1",
	})

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["success"])

	cookie := sessionCookie(t, resp)
	assert.True(t, cookie.HttpOnly)
	assert.Equal(t, "/", cookie.Path)
	assert.Equal(t, int(auth.TokenTTL.Seconds()), cookie.MaxAge)

	claims := s.authenticator.Verify(cookie.Value)
	require.NotNil(t, claims)
	assert.Equal(t, "login@example.com", claims.Email)
	assert.False(t, claims.IsPremiumUser)
}

func TestLogin_WrongPassword_NoCookie(t *testing.T) {
	_, app := newTestServer(t, "")
	doJSON(t, app, http.MethodPost, "/api/auth/register", registerBody("wrongpw@example.com"))

	resp, body := doJSON(t, app, http.MethodPost, "/api/auth/login", map[string]string{
		"email":    "wrongpw@example.com",
		"password": "not-the-password",
	})

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "Invalid credentials!", body["error"])
	assert.False(t, hasSessionCookie(resp))
}

func TestLogin_UnknownEmail(t *testing.T) {
	_, app := newTestServer(t, "")

	resp, body := doJSON(t, app, http.MethodPost, "/api/auth/login", map[string]string{
		"email":    "ghost@example.com",
		"password": "secret1",
	})

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "User not found! Please register first.", body["error"])
	assert.False(t, hasSessionCookie(resp))
}

func TestLogout_ClearsCookie(t *testing.T) {
	_, app := newTestServer(t, "")

	resp, body := doJSON(t, app, http.MethodPost, "/api/auth/logout", nil)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["success"])

	cleared := false
	for _, cookie := range resp.Cookies() {
		if cookie.Name == auth.CookieName && cookie.Value == "" && cookie.MaxAge < 0 {
			cleared = true
		}
	}
	assert.True(t, cleared, "logout must expire the session cookie")
}

func TestEndToEnd_RegisterLoginCreatePost(t *testing.T) {
	_, app := newTestServer(t, "")

	resp, _ := doJSON(t, app, http.MethodPost, "/api/auth/register", registerBody("writer@example.com"))
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, _ = doJSON(t, app, http.MethodPost, "/api/auth/login", map[string]string{
		"email":    "writer@example.com",
		"password": "secret1",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	cookie := sessionCookie(t, resp)

	resp, body := doJSON(t, app, http.MethodPost, "/api/posts", map[string]string{
		"title":      "Hello World",
		"content":    "The very first post.",
		"category":   "intro",
		"coverImage": "https://img.example.com/cover.jpg",
	}, cookie)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	post, ok := body["post"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Hello World", post["title"])

	author, ok := post["author"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Ada", author["name"])

	resp, body = doJSON(t, app, http.MethodGet, "/api/posts", nil, cookie)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	posts, ok := body["posts"].([]any)
	require.True(t, ok)
	require.Len(t, posts, 1)

	summary := posts[0].(map[string]any)
	assert.Equal(t, "Hello World", summary["title"])
	// The listing shape omits the content body.
	_, hasContent := summary["content"]
	assert.False(t, hasContent)

	if !strings.HasPrefix(summary["coverImage"].(string), "https://") {
		t.Errorf("unexpected coverImage: %v", summary["coverImage"])
	}
}
