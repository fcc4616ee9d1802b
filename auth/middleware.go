package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// CookieName is the cookie carrying the session token.
const CookieName = "session_token"

const ctxUserKey = "auth.userID"

// CurrentUser returns the authenticated user id set by the session
// middleware. ok is false when the request carries no valid session;
// callers must branch explicitly instead of assuming authentication.
func CurrentUser(c *gin.Context) (string, bool) {
	v, exists := c.Get(ctxUserKey)
	if !exists {
		return "", false
	}
	id, ok := v.(string)
	return id, ok && id != ""
}

func sessionUserID(c *gin.Context, sessions *SessionManager) (string, bool) {
	// Bearer token takes precedence so non-browser clients need no cookies
	if h := c.GetHeader("Authorization"); strings.HasPrefix(h, "Bearer ") {
		if id, err := sessions.Verify(strings.TrimPrefix(h, "Bearer ")); err == nil {
			return id, true
		}
		return "", false
	}

	token, err := c.Cookie(CookieName)
	if err != nil || token == "" {
		return "", false
	}
	id, err := sessions.Verify(token)
	if err != nil {
		return "", false
	}
	return id, true
}

// RequireSession gates page routes. A missing or invalid session redirects
// to /login and never reaches the handler; the redirect is deliberately
// silent, never an error page.
func RequireSession(sessions *SessionManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := sessionUserID(c, sessions)
		if !ok {
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}
		c.Set(ctxUserKey, id)
		c.Next()
	}
}

// RequireSessionAPI gates JSON routes, answering 401 instead of redirecting.
func RequireSessionAPI(sessions *SessionManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := sessionUserID(c, sessions)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Authentication required"})
			return
		}
		c.Set(ctxUserKey, id)
		c.Next()
	}
}

// OptionalSession records the user id when a valid session is present but
// never blocks or redirects. Used by routes that branch on sign-in state.
func OptionalSession(sessions *SessionManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		if id, ok := sessionUserID(c, sessions); ok {
			c.Set(ctxUserKey, id)
		}
		c.Next()
	}
}

// RedirectIfAuthenticated sends already-signed-in visitors of /login and
// /register straight to the dashboard.
func RedirectIfAuthenticated(sessions *SessionManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := sessionUserID(c, sessions); ok {
			c.Redirect(http.StatusFound, "/dashboard")
			c.Abort()
			return
		}
		c.Next()
	}
}
