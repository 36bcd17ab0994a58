package middleware

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"taskify/internal/auth"
	"taskify/internal/database/dbtest"
	"taskify/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// headerResolver trusts the X-User header; enough to drive the middleware.
type headerResolver struct{}

func (headerResolver) Resolve(r *http.Request) (auth.Identity, bool) {
	if r.Header.Get("X-User") == "" {
		return auth.Identity{}, false
	}
	return auth.Identity{ID: 7, Username: r.Header.Get("X-User")}, true
}

func serve(r *gin.Engine, method, path string, header http.Header) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	for k, vv := range header {
		for _, v := range vv {
			req.Header.Add(k, v)
		}
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestIdentifyAndRequireAuth(t *testing.T) {
	r := gin.New()
	r.Use(Identify(headerResolver{}))
	r.GET("/open", func(c *gin.Context) {
		id, ok := CurrentIdentity(c)
		c.JSON(http.StatusOK, gin.H{"ok": ok, "user": id.Username})
	})
	r.GET("/closed", RequireAuth(), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})

	rec := serve(r, http.MethodGet, "/open", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"ok":false,"user":""}`, rec.Body.String())

	rec = serve(r, http.MethodGet, "/open", http.Header{"X-User": {"alice"}})
	assert.JSONEq(t, `{"ok":true,"user":"alice"}`, rec.Body.String())

	rec = serve(r, http.MethodGet, "/closed", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"error":"Authentication required","code":40101}`, rec.Body.String())

	rec = serve(r, http.MethodGet, "/closed", http.Header{"X-User": {"alice"}})
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestCurrentIdentity_ZeroIDIsAnonymous(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Set(identityKey, auth.Identity{})
	_, ok := CurrentIdentity(c)
	assert.False(t, ok)
}

func TestRequestLogger(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(slog.NewTextHandler(&buf, nil))

	r := gin.New()
	r.Use(RequestLogger(log), Identify(headerResolver{}))
	r.GET("/ping", func(c *gin.Context) {
		Logger(c).Info("inside")
		c.Status(http.StatusOK)
	})

	rec := serve(r, http.MethodGet, "/ping", http.Header{RequestIDHeader: {"req-1"}, "X-User": {"alice"}})
	assert.Equal(t, "req-1", rec.Header().Get(RequestIDHeader))

	out := buf.String()
	assert.Equal(t, 2, strings.Count(out, "request_id=req-1"))
	assert.Contains(t, out, "path=/ping")
	assert.Contains(t, out, "status=200")
	assert.Contains(t, out, "user_id=7")

	rec = serve(r, http.MethodGet, "/ping", nil)
	assert.NotEmpty(t, rec.Header().Get(RequestIDHeader))
}

func TestLogger_Default(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	assert.Same(t, slog.Default(), Logger(c))
}

func TestActivity(t *testing.T) {
	db := dbtest.New(t)
	user := dbtest.CreateUser(t, db, "alice")

	resolver := fixedResolver{id: auth.Identity{ID: user.ID, Username: user.Username}}
	r := gin.New()
	r.Use(Identify(resolver), Activity(db))
	r.Any("/things", func(c *gin.Context) { c.Status(http.StatusCreated) })
	r.POST("/fail", func(c *gin.Context) { c.Status(http.StatusBadRequest) })

	serve(r, http.MethodPost, "/things", http.Header{"X-User": {"yes"}})
	serve(r, http.MethodDelete, "/things", http.Header{"X-User": {"yes"}})
	serve(r, http.MethodGet, "/things", http.Header{"X-User": {"yes"}})
	serve(r, http.MethodPost, "/fail", http.Header{"X-User": {"yes"}})
	serve(r, http.MethodPost, "/things", nil) // anonymous

	var logs []models.ActivityLog
	require.NoError(t, db.Order("id ASC").Find(&logs).Error)
	require.Len(t, logs, 2)
	assert.Equal(t, http.MethodPost, logs[0].Method)
	assert.Equal(t, http.MethodDelete, logs[1].Method)
	assert.Equal(t, "/things", logs[0].Path)
	assert.Equal(t, http.StatusCreated, logs[0].Status)
	assert.Equal(t, user.ID, logs[0].UserID)
}

// fixedResolver resolves every request carrying X-User to id.
type fixedResolver struct{ id auth.Identity }

func (f fixedResolver) Resolve(r *http.Request) (auth.Identity, bool) {
	if r.Header.Get("X-User") == "" {
		return auth.Identity{}, false
	}
	return f.id, true
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", truncate("abc", 5))
	assert.Equal(t, "ab", truncate("abc", 2))
}
