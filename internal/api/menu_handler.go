package api

import (
	"alcyxob/fitness-bot/internal/menu"
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

// MenuResolver turns an address into a screen. It never fails.
type MenuResolver interface {
	Resolve(ctx context.Context, addr menu.Address) menu.Screen
}

// MenuHandler serves the navigation menu to the chat gateway.
type MenuHandler struct {
	resolver MenuResolver
}

// NewMenuHandler creates a new MenuHandler.
func NewMenuHandler(resolver MenuResolver) *MenuHandler {
	return &MenuHandler{resolver: resolver}
}

// Resolve godoc
// @Summary Resolve a menu address
// @Description Decodes a button payload and returns the screen to render. Failures surface as an error screen, not an HTTP error.
// @Tags Menu
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param address body menu.Address true "Flat button payload"
// @Success 200 {object} menu.Screen
// @Failure 400 {object} gin.H "Malformed payload"
// @Failure 401 {object} gin.H "Unauthorized"
// @Router /menu/resolve [post]
func (h *MenuHandler) Resolve(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user.")
		return
	}

	var addr menu.Address
	if err := c.ShouldBindJSON(&addr); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Invalid menu address: %v", err))
		return
	}
	// The caller is whoever the token says, whatever the payload claims.
	addr.UserID = userID

	c.JSON(http.StatusOK, h.resolver.Resolve(c.Request.Context(), addr))
}
