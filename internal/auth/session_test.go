package auth

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// replay copies the cookies set on rec into a fresh request, the way a
// browser would on its next call.
func replay(rec *httptest.ResponseRecorder) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	for _, c := range rec.Result().Cookies() {
		if c.MaxAge < 0 {
			continue
		}
		req.AddCookie(&http.Cookie{Name: c.Name, Value: c.Value})
	}
	return req
}

func TestCookies_AttachRead(t *testing.T) {
	rec := httptest.NewRecorder()
	Cookies{}.Attach(rec, "signed.token.value")

	got, ok := Cookies{}.Read(replay(rec))
	require.True(t, ok)
	assert.Equal(t, "signed.token.value", got)
}

func TestCookies_AttachAttributes(t *testing.T) {
	rec := httptest.NewRecorder()
	Cookies{Secure: true}.Attach(rec, "tok")

	header := rec.Header().Get("Set-Cookie")
	assert.True(t, strings.HasPrefix(header, "auth_token=tok"), header)
	assert.Contains(t, header, "Path=/")
	assert.Contains(t, header, "Max-Age=86400")
	assert.Contains(t, header, "HttpOnly")
	assert.Contains(t, header, "SameSite=Strict")
	assert.Contains(t, header, "Secure")
	assert.Equal(t, int(TokenTTL/time.Second), CookieMaxAge)
}

func TestCookies_NotSecureOutsideProduction(t *testing.T) {
	rec := httptest.NewRecorder()
	Cookies{}.Attach(rec, "tok")
	assert.NotContains(t, rec.Header().Get("Set-Cookie"), "Secure")
}

func TestCookies_Detach(t *testing.T) {
	rec := httptest.NewRecorder()
	Cookies{}.Detach(rec)

	header := rec.Header().Get("Set-Cookie")
	assert.True(t, strings.HasPrefix(header, "auth_token=;"), header)
	assert.Contains(t, header, "Max-Age=0")
	assert.Contains(t, header, "Path=/")
	assert.Contains(t, header, "HttpOnly")
	assert.Contains(t, header, "SameSite=Strict")

	// a client that still sends the emptied value is treated as absent
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: ""})
	_, ok := Cookies{}.Read(req)
	assert.False(t, ok)

	_, ok = Cookies{}.Read(replay(rec))
	assert.False(t, ok)
}

func TestCookies_ReadAbsent(t *testing.T) {
	_, ok := Cookies{}.Read(httptest.NewRequest(http.MethodGet, "/", nil))
	assert.False(t, ok)

	_, ok = Cookies{}.Read(nil)
	assert.False(t, ok)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "other", Value: "x"})
	_, ok = Cookies{}.Read(req)
	assert.False(t, ok)
}

func TestCookieMaxAge_MatchesTokenTTL(t *testing.T) {
	assert.Equal(t, 86400, CookieMaxAge)
	assert.Equal(t, TokenTTL, time.Duration(CookieMaxAge)*time.Second)
}
