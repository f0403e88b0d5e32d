// Package cookies centralizes the session cookie contract: names, attributes
// and max-ages. The frontend lives on another origin, so both cookies are
// cross-site (SameSite=None + Secure) and HttpOnly.
package cookies

import (
	"net/http"
	"time"

	"resourcehub/internal/token"
)

const (
	AccessCookie  = "access_token"
	RefreshCookie = "refresh_token"
)

// Set writes both session cookies for a freshly issued token pair.
func Set(w http.ResponseWriter, pair *token.Pair, accessTTL, refreshTTL time.Duration) {
	http.SetCookie(w, sessionCookie(AccessCookie, pair.Access, int(accessTTL.Seconds())))
	http.SetCookie(w, sessionCookie(RefreshCookie, pair.Refresh, int(refreshTTL.Seconds())))
}

// SetAccess refreshes only the access cookie (silent refresh without rotation).
func SetAccess(w http.ResponseWriter, accessToken string, accessTTL time.Duration) {
	http.SetCookie(w, sessionCookie(AccessCookie, accessToken, int(accessTTL.Seconds())))
}

// Clear expires both session cookies.
func Clear(w http.ResponseWriter) {
	http.SetCookie(w, sessionCookie(AccessCookie, "", -1))
	http.SetCookie(w, sessionCookie(RefreshCookie, "", -1))
}

func sessionCookie(name, value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteNoneMode,
	}
}
