package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func newTestRouter(sessions *SessionManager) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	pages := r.Group("/", RequireSession(sessions))
	for _, route := range []string{"/dashboard", "/devices", "/profile"} {
		pages.GET(route, func(c *gin.Context) {
			id, ok := CurrentUser(c)
			if !ok {
				c.String(http.StatusInternalServerError, "no user in context")
				return
			}
			c.String(http.StatusOK, id)
		})
	}

	r.GET("/login", RedirectIfAuthenticated(sessions), func(c *gin.Context) {
		c.String(http.StatusOK, "login page")
	})
	return r
}

func TestRequireSessionRedirectsUnauthenticated(t *testing.T) {
	sessions := NewSessionManager([]byte("test-secret"), time.Hour)
	r := newTestRouter(sessions)

	for _, route := range []string{"/dashboard", "/devices", "/profile"} {
		req := httptest.NewRequest(http.MethodGet, route, nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusFound {
			t.Errorf("%s: expected 302, got %d", route, w.Code)
		}
		if loc := w.Header().Get("Location"); loc != "/login" {
			t.Errorf("%s: expected redirect to /login, got %q", route, loc)
		}
	}
}

func TestRequireSessionRejectsBadToken(t *testing.T) {
	sessions := NewSessionManager([]byte("test-secret"), time.Hour)
	r := newTestRouter(sessions)

	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: "tampered"})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusFound {
		t.Errorf("expected 302, got %d", w.Code)
	}
}

func TestRequireSessionPassesValidCookie(t *testing.T) {
	sessions := NewSessionManager([]byte("test-secret"), time.Hour)
	r := newTestRouter(sessions)

	token, err := sessions.Issue("user-42")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: token})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if w.Body.String() != "user-42" {
		t.Errorf("expected user id pass-through, got %q", w.Body.String())
	}
}

func TestRequireSessionAcceptsBearerToken(t *testing.T) {
	sessions := NewSessionManager([]byte("test-secret"), time.Hour)
	r := newTestRouter(sessions)

	token, _ := sessions.Issue("user-42")
	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200 with bearer token, got %d", w.Code)
	}
}

func TestRedirectIfAuthenticated(t *testing.T) {
	sessions := NewSessionManager([]byte("test-secret"), time.Hour)
	r := newTestRouter(sessions)

	// No session: login page renders
	req := httptest.NewRequest(http.MethodGet, "/login", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Errorf("unauthenticated /login: expected 200, got %d", w.Code)
	}

	// Valid session: straight to the dashboard
	token, _ := sessions.Issue("user-42")
	req = httptest.NewRequest(http.MethodGet, "/login", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: token})
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusFound {
		t.Fatalf("authenticated /login: expected 302, got %d", w.Code)
	}
	if loc := w.Header().Get("Location"); loc != "/dashboard" {
		t.Errorf("expected redirect to /dashboard, got %q", loc)
	}
}
