package httpHandler

import (
	"errors"
	"net/http"
	"strings"

	"energy-dashboard/auth"
	"energy-dashboard/usecases"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type LoginHandler struct {
	useCase  *usecases.AuthUseCase
	sessions *auth.SessionManager
	log      *zap.Logger
}

func NewLoginHandler(useCase *usecases.AuthUseCase, sessions *auth.SessionManager, logger *zap.Logger) *LoginHandler {
	return &LoginHandler{useCase: useCase, sessions: sessions, log: logger}
}

type loginRequest struct {
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}

func wantsJSON(c *gin.Context) bool {
	return strings.Contains(c.GetHeader("Content-Type"), "application/json") ||
		strings.Contains(c.GetHeader("Accept"), "application/json")
}

// Login handles POST /api/auth/login for both the login form and JSON
// clients. Failures are uniform regardless of whether the email exists.
func (h *LoginHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBind(&req); err != nil || req.Email == "" || req.Password == "" {
		h.fail(c)
		return
	}

	identity, err := h.useCase.VerifyCredentials(req.Email, req.Password)
	if err != nil {
		if !errors.Is(err, usecases.ErrInvalidCredentials) {
			h.log.Error("credential verification failed", zap.Error(err))
		}
		h.fail(c)
		return
	}

	token, err := h.sessions.Issue(identity.ID)
	if err != nil {
		h.log.Error("session token issue failed", zap.Error(err))
		if wantsJSON(c) {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		} else {
			c.Redirect(http.StatusSeeOther, "/login?error=1")
		}
		return
	}

	maxAge := int(h.sessions.TTL().Seconds())
	c.SetCookie(auth.CookieName, token, maxAge, "/", "", false, true)

	if wantsJSON(c) {
		c.JSON(http.StatusOK, gin.H{"token": token, "user": identity})
		return
	}
	c.Redirect(http.StatusSeeOther, "/dashboard")
}

func (h *LoginHandler) fail(c *gin.Context) {
	if wantsJSON(c) {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid email or password"})
		return
	}
	c.Redirect(http.StatusSeeOther, "/login?error=1")
}

// Logout handles POST /api/auth/logout: clears the session cookie.
func (h *LoginHandler) Logout(c *gin.Context) {
	c.SetCookie(auth.CookieName, "", -1, "/", "", false, true)
	if wantsJSON(c) {
		c.JSON(http.StatusOK, gin.H{"message": "Signed out"})
		return
	}
	c.Redirect(http.StatusSeeOther, "/login")
}
