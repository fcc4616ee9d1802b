package httpHandler

import (
	"errors"
	"net/http"

	"energy-dashboard/auth"
	"energy-dashboard/usecases"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// PageHandler renders the server-side pages. All data routes run behind
// auth.RequireSession, so CurrentUser is expected to succeed; the explicit
// branch stays because the contract is a redirect, never a panic.
type PageHandler struct {
	dashboard *usecases.DashboardUseCase
	log       *zap.Logger
}

func NewPageHandler(dashboard *usecases.DashboardUseCase, logger *zap.Logger) *PageHandler {
	return &PageHandler{dashboard: dashboard, log: logger}
}

// Home handles GET /: dashboard when signed in, login otherwise.
func (h *PageHandler) Home(c *gin.Context) {
	if _, ok := auth.CurrentUser(c); ok {
		c.Redirect(http.StatusFound, "/dashboard")
		return
	}
	c.Redirect(http.StatusFound, "/login")
}

// LoginPage handles GET /login
func (h *PageHandler) LoginPage(c *gin.Context) {
	c.HTML(http.StatusOK, "login.html", gin.H{
		"Error": c.Query("error") != "",
	})
}

// RegisterPage handles GET /register
func (h *PageHandler) RegisterPage(c *gin.Context) {
	c.HTML(http.StatusOK, "register.html", nil)
}

// Dashboard handles GET /dashboard
func (h *PageHandler) Dashboard(c *gin.Context) {
	userID, ok := auth.CurrentUser(c)
	if !ok {
		c.Redirect(http.StatusFound, "/login")
		return
	}

	data, err := h.dashboard.Dashboard(userID)
	if err != nil {
		h.log.Error("dashboard data assembly failed", zap.String("user_id", userID), zap.Error(err))
		c.String(http.StatusInternalServerError, "Something went wrong")
		return
	}

	c.HTML(http.StatusOK, "dashboard.html", gin.H{"Data": data})
}

// DashboardJSON handles GET /api/dashboard for non-browser clients.
func (h *PageHandler) DashboardJSON(c *gin.Context) {
	userID, ok := auth.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Authentication required"})
		return
	}

	data, err := h.dashboard.Dashboard(userID)
	if err != nil {
		h.log.Error("dashboard data assembly failed", zap.String("user_id", userID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		return
	}
	c.JSON(http.StatusOK, data)
}

// Devices handles GET /devices
func (h *PageHandler) Devices(c *gin.Context) {
	profile, ok := h.profileOrRedirect(c)
	if !ok {
		return
	}
	c.HTML(http.StatusOK, "devices.html", gin.H{"Profile": profile})
}

// Profile handles GET /profile
func (h *PageHandler) Profile(c *gin.Context) {
	profile, ok := h.profileOrRedirect(c)
	if !ok {
		return
	}
	c.HTML(http.StatusOK, "profile.html", gin.H{"Profile": profile})
}

func (h *PageHandler) profileOrRedirect(c *gin.Context) (*usecases.ProfileData, bool) {
	userID, ok := auth.CurrentUser(c)
	if !ok {
		c.Redirect(http.StatusFound, "/login")
		return nil, false
	}

	profile, err := h.dashboard.Profile(userID)
	if err != nil {
		// A session pointing at a deleted user redirects exactly like a
		// missing session
		if errors.Is(err, usecases.ErrUserNotFound) {
			c.Redirect(http.StatusFound, "/login")
			return nil, false
		}
		h.log.Error("profile data assembly failed", zap.String("user_id", userID), zap.Error(err))
		c.String(http.StatusInternalServerError, "Something went wrong")
		return nil, false
	}
	return profile, true
}
