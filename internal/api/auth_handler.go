package api

import (
	"alcyxob/fitness-bot/internal/domain" // For domain.Role
	"alcyxob/fitness-bot/internal/service"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
)

// GatewaySecretHeader carries the shared secret of the chat gateway.
const GatewaySecretHeader = "X-Gateway-Secret"

// AuthHandler holds the authentication service dependency.
type AuthHandler struct {
	authService service.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// --- Request/Response Structs ---

type TokenRequest struct {
	UserID int64 `json:"user_id" binding:"required,gt=0"`
}

type TokenResponse struct {
	Token  string      `json:"token"`
	UserID int64       `json:"user_id"`
	Role   domain.Role `json:"role"`
}

// IssueToken godoc
// @Summary Exchange a chat user id for an API token
// @Description Called by the chat gateway; the user is registered on first contact.
// @Tags Auth
// @Accept json
// @Produce json
// @Param X-Gateway-Secret header string true "Gateway shared secret"
// @Param body body TokenRequest true "Chat user"
// @Success 200 {object} TokenResponse
// @Failure 400 {object} gin.H "Invalid input"
// @Failure 401 {object} gin.H "Invalid gateway secret"
// @Failure 500 {object} gin.H "Internal Server Error"
// @Router /auth/token [post]
func (h *AuthHandler) IssueToken(c *gin.Context) {
	var req TokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	token, role, err := h.authService.IssueToken(c.Request.Context(), c.GetHeader(GatewaySecretHeader), req.UserID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidGatewaySecret):
			abortWithError(c, http.StatusUnauthorized, err.Error())
		case errors.Is(err, service.ErrInvalidUserID):
			abortWithError(c, http.StatusBadRequest, err.Error())
		default:
			slog.ErrorContext(c.Request.Context(), "issue token", slog.Int64("user_id", req.UserID), slog.Any("error", err))
			abortWithError(c, http.StatusInternalServerError, "Could not issue token")
		}
		return
	}

	c.JSON(http.StatusOK, TokenResponse{Token: token, UserID: req.UserID, Role: role})
}
