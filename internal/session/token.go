// Package session relays the backend-issued conversation token.
//
// The token is opaque: it is read from and written to the "sid" cookie but
// never parsed, generated or stored here.
package session

import (
	"net/http"
)

// CookieName is the cookie carrying the session token.
const CookieName = "sid"

// Token is an opaque backend-issued session credential.
type Token string

// Empty reports whether no token is held.
func (t Token) Empty() bool {
	return t == ""
}

// FromRequest returns the token carried by the incoming request, or an empty
// token when the cookie is absent.
func FromRequest(r *http.Request) Token {
	c, err := r.Cookie(CookieName)
	if err != nil {
		return ""
	}
	return Token(c.Value)
}

// Attach sets the outbound cookie header for t. An empty token leaves the
// request untouched.
func Attach(req *http.Request, t Token) {
	if t.Empty() {
		return
	}
	req.Header.Set("Cookie", CookieName+"="+string(t))
}

// SetCookies returns every Set-Cookie header value of h in received order.
func SetCookies(h http.Header) []string {
	values := h.Values("Set-Cookie")
	if len(values) == 0 {
		return nil
	}
	out := make([]string, len(values))
	copy(out, values)
	return out
}

// Relay re-emits the given Set-Cookie values on w unchanged.
func Relay(w http.ResponseWriter, setCookies []string) {
	for _, v := range setCookies {
		w.Header().Add("Set-Cookie", v)
	}
}
