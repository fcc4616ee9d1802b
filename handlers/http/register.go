package httpHandler

import (
	"errors"
	"net/http"

	"energy-dashboard/usecases"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type RegisterHandler struct {
	useCase *usecases.AuthUseCase
	log     *zap.Logger
}

func NewRegisterHandler(useCase *usecases.AuthUseCase, logger *zap.Logger) *RegisterHandler {
	return &RegisterHandler{useCase: useCase, log: logger}
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register handles POST /api/auth/register
func (h *RegisterHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Missing required fields"})
		return
	}

	userID, err := h.useCase.Register(req.Name, req.Email, req.Password)
	switch {
	case err == nil:
		c.JSON(http.StatusCreated, gin.H{
			"message": "User created successfully",
			"userId":  userID,
		})
	case errors.Is(err, usecases.ErrMissingFields):
		c.JSON(http.StatusBadRequest, gin.H{"message": "Missing required fields"})
	case errors.Is(err, usecases.ErrEmailTaken):
		c.JSON(http.StatusConflict, gin.H{"message": "User already exists with this email"})
	default:
		// Detail stays server-side; the client gets a generic message
		h.log.Error("registration failed", zap.String("email", req.Email), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
	}
}
