package user

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newIdentityRouter() (*gin.Engine, *string) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(IdentityMiddleware())
	var seen string
	r.GET("/ping", func(c *gin.Context) {
		seen = UUIDFromContext(c)
		c.Status(http.StatusOK)
	})
	return r, &seen
}

func TestIdentityMiddlewareIssuesUUID(t *testing.T) {
	r, seen := newIdentityRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	r.ServeHTTP(w, req)

	// 无Cookie时签发新身份, 写回Cookie并注入上下文
	require.NotEmpty(t, *seen)
	id, err := uuid.Parse(*seen)
	require.NoError(t, err)
	assert.Equal(t, uuid.Version(7), id.Version())

	var issued *http.Cookie
	for _, ck := range w.Result().Cookies() {
		if ck.Name == userCookieName {
			issued = ck
		}
	}
	require.NotNil(t, issued)
	assert.Equal(t, *seen, issued.Value)
	assert.True(t, issued.HttpOnly)
}

func TestIdentityMiddlewareKeepsExistingUUID(t *testing.T) {
	r, seen := newIdentityRouter()
	existing := uuid.Must(uuid.NewV7()).String()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.AddCookie(&http.Cookie{Name: userCookieName, Value: existing})
	r.ServeHTTP(w, req)

	// 合法Cookie原样沿用, 不重复签发
	assert.Equal(t, existing, *seen)
	assert.Empty(t, w.Result().Cookies())
}

func TestIdentityMiddlewareReplacesInvalidCookie(t *testing.T) {
	r, seen := newIdentityRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.AddCookie(&http.Cookie{Name: userCookieName, Value: "not-a-uuid"})
	r.ServeHTTP(w, req)

	require.NotEmpty(t, *seen)
	assert.NotEqual(t, "not-a-uuid", *seen)
	require.NoError(t, uuid.Validate(*seen))
}
