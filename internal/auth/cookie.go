package auth

import "net/http"

// CookieName is the session cookie carrying the signed token.
const CookieName = "accessToken"

// SessionCookie builds the session cookie for a freshly issued token.
// HttpOnly keeps it away from client-side scripts, SameSite=Lax defends
// against CSRF, and Secure is enabled in production where HTTPS is
// guaranteed.
func SessionCookie(token string, secure bool) *http.Cookie {
	return &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(TokenTTL.Seconds()),
	}
}

// ClearedCookie builds an immediately expiring cookie that instructs the
// client to drop its session token. The token itself is stateless and is
// not revoked server-side.
func ClearedCookie(secure bool) *http.Cookie {
	return &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	}
}
