package auth

import (
	"net/http"
	"strings"
	"time"
)

// CookieName is the session cookie carrying the signed token.
const CookieName = "auth_token"

// CookieMaxAge matches TokenTTL, in seconds.
const CookieMaxAge = int(TokenTTL / time.Second)

// Cookies binds tokens to the session cookie. Attach and Detach share one
// template so name, path and SameSite never drift apart.
type Cookies struct {
	// Secure marks the cookie HTTPS-only; set in production.
	Secure bool
}

func (c Cookies) cookie(value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     CookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   c.Secure,
		SameSite: http.SameSiteStrictMode,
	}
}

// Attach sets the session cookie for token.
func (c Cookies) Attach(w http.ResponseWriter, token string) {
	http.SetCookie(w, c.cookie(token, CookieMaxAge))
}

// Detach overwrites the session cookie with an empty, immediately
// expiring one (Max-Age=0 on the wire).
func (c Cookies) Detach(w http.ResponseWriter) {
	http.SetCookie(w, c.cookie("", -1))
}

// Read returns the raw session cookie value. An empty value is absent.
func (c Cookies) Read(r *http.Request) (string, bool) {
	if r == nil {
		return "", false
	}
	cookie, err := r.Cookie(CookieName)
	if err != nil {
		return "", false
	}
	value := strings.TrimSpace(cookie.Value)
	if value == "" {
		return "", false
	}
	return value, true
}
