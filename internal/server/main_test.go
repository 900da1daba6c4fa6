package server

import (
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"postboard/internal/config"
	"postboard/internal/models"
	"postboard/internal/testutil"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const testSecret = "handler-test-secret-0123456789abcdef"

func testConfig() *config.Config {
	return &config.Config{
		Env:               "test",
		Port:              "0",
		JWTSecret:         testSecret,
		SessionCookieName: "postboard_session",
		SessionTTLHours:   1,
	}
}

type testApp struct {
	server *Server
	app    *fiber.App
	db     *gorm.DB
}

func newTestApp(t *testing.T) *testApp {
	return newTestAppWith(t, testConfig(), nil)
}

func newTestAppWith(t *testing.T, cfg *config.Config, rdb *redis.Client) *testApp {
	t.Helper()
	db := testutil.NewDB(t)
	s, err := NewServerWithDeps(cfg, db, rdb)
	require.NoError(t, err)
	return &testApp{server: s, app: s.App(), db: db}
}

// sessionCookie returns a Cookie header value logged in as user.
func (ta *testApp) sessionCookie(t *testing.T, user *models.User) string {
	t.Helper()
	token, _, err := ta.server.tokens.Issue(user.ID, user.Username)
	require.NoError(t, err)
	return ta.server.config.SessionCookieName + "=" + token
}

func (ta *testApp) do(t *testing.T, req *http.Request) *http.Response {
	t.Helper()
	resp, err := ta.app.Test(req, -1)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func (ta *testApp) get(t *testing.T, target, cookie string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	if cookie != "" {
		req.Header.Set("Cookie", cookie)
	}
	return ta.do(t, req)
}

func (ta *testApp) postForm(t *testing.T, target, cookie string, values url.Values) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if cookie != "" {
		req.Header.Set("Cookie", cookie)
	}
	return ta.do(t, req)
}

func body(t *testing.T, resp *http.Response) string {
	t.Helper()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(b)
}

func countPosts(t *testing.T, db *gorm.DB) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(&models.Post{}).Count(&n).Error)
	return n
}

func sessionFrom(resp *http.Response, name string) string {
	for _, c := range resp.Cookies() {
		if c.Name == name && c.Value != "" {
			return c.Name + "=" + c.Value
		}
	}
	return ""
}
