package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Skotchmaster/restaurant_pos/pkg/authclient"
	"github.com/Skotchmaster/restaurant_pos/pkg/tokens"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var secret = []byte("test-jwt-secret")

func okHandler(c echo.Context) error {
	return c.String(http.StatusOK, OperatorID(c))
}

func newContext(req *http.Request) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func mustToken(t *testing.T, role string, exp time.Time) string {
	t.Helper()
	tok, err := tokens.NewAccessToken("op-1", role, exp, secret)
	require.NoError(t, err)
	return tok
}

func TestRequireAuth_BearerToken(t *testing.T) {
	t.Parallel()

	m := NewAutoRefreshMiddleware(secret, nil)
	req := httptest.NewRequest(http.MethodGet, "/tables", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+mustToken(t, "staff", time.Now().Add(time.Minute)))
	c, rec := newContext(req)

	require.NoError(t, m.RequireAuth(okHandler)(c))
	assert.Equal(t, "op-1", rec.Body.String())
}

func TestRequireAuth_MissingToken(t *testing.T) {
	t.Parallel()

	m := NewAutoRefreshMiddleware(secret, nil)
	c, _ := newContext(httptest.NewRequest(http.MethodGet, "/tables", nil))

	err := m.RequireAuth(okHandler)(c)
	he, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusUnauthorized, he.Code)
}

func TestRequireAdmin_RejectsStaff(t *testing.T) {
	t.Parallel()

	m := NewAutoRefreshMiddleware(secret, nil)
	req := httptest.NewRequest(http.MethodPost, "/catalog/products", nil)
	req.AddCookie(&http.Cookie{Name: "accessToken", Value: mustToken(t, "staff", time.Now().Add(time.Minute))})
	c, _ := newContext(req)

	err := m.RequireAdmin(okHandler)(c)
	he, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusForbidden, he.Code)
}

func TestRequireAuth_ExpiredWithoutAuthClient(t *testing.T) {
	t.Parallel()

	m := NewAutoRefreshMiddleware(secret, nil)
	req := httptest.NewRequest(http.MethodGet, "/tables", nil)
	req.AddCookie(&http.Cookie{Name: "accessToken", Value: mustToken(t, "staff", time.Now().Add(-time.Minute))})
	c, _ := newContext(req)

	err := m.RequireAuth(okHandler)(c)
	he, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusUnauthorized, he.Code)
}

func TestRequireAuth_RefreshesExpiredToken(t *testing.T) {
	t.Parallel()

	fresh := mustToken(t, "staff", time.Now().Add(time.Hour))
	auth := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/refresh", r.URL.Path)
		_ = json.NewEncoder(w).Encode(authclient.RefreshResponse{
			AccessToken:  fresh,
			RefreshToken: "new-refresh",
			AccessExp:    time.Now().Add(time.Hour).Unix(),
			RefreshExp:   time.Now().Add(24 * time.Hour).Unix(),
		})
	}))
	t.Cleanup(auth.Close)

	m := NewAutoRefreshMiddleware(secret, authclient.NewClient(auth.URL))
	req := httptest.NewRequest(http.MethodGet, "/tables", nil)
	req.AddCookie(&http.Cookie{Name: "accessToken", Value: mustToken(t, "staff", time.Now().Add(-time.Minute))})
	req.AddCookie(&http.Cookie{Name: "refreshToken", Value: "old-refresh"})
	c, rec := newContext(req)

	require.NoError(t, m.RequireAuth(okHandler)(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Values("Set-Cookie")[0], "accessToken="+fresh)
}
