// Package session manages the session cookie carried between requests.
package session

import (
	"net/http"
	"time"
)

// CookieName is the session cookie sent to and read from clients.
const CookieName = "sessionId"

// cookieTTL matches the 7-day session lifetime.
const cookieTTL = 7 * 24 * time.Hour

// SetCookie attaches a session cookie carrying the token.
func SetCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:   CookieName,
		Value:  token,
		Path:   "/",
		MaxAge: int(cookieTTL.Seconds()),
	})
}

// ClearCookie expires the session cookie on the client.
func ClearCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:    CookieName,
		Value:   "",
		Path:    "/",
		Expires: time.Unix(0, 0),
		MaxAge:  -1,
	})
}
