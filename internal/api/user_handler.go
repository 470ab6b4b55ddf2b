package api

import (
	"alcyxob/fitness-bot/internal/domain"
	"alcyxob/fitness-bot/internal/service"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// UserHandler serves profile and program management for the caller.
type UserHandler struct {
	programService service.ProgramService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(programService service.ProgramService) *UserHandler {
	return &UserHandler{programService: programService}
}

// --- DTOs ---

type UpdateProfileRequest struct {
	Name   string  `json:"name" binding:"required"`
	Weight float64 `json:"weight" binding:"gte=0"`
}

type UserResponse struct {
	UserID          int64     `json:"user_id"`
	Name            string    `json:"name"`
	Weight          float64   `json:"weight"`
	ActiveProgramID *string   `json:"active_program_id,omitempty"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// MapUserToResponse converts a domain User to a UserResponse DTO.
func MapUserToResponse(user *domain.User) UserResponse {
	if user == nil {
		return UserResponse{}
	}
	resp := UserResponse{
		UserID:    user.UserID,
		Name:      user.Name,
		Weight:    user.Weight,
		UpdatedAt: user.UpdatedAt,
	}
	if user.ActiveProgramID != nil {
		hex := user.ActiveProgramID.Hex()
		resp.ActiveProgramID = &hex
	}
	return resp
}

type CreateProgramRequest struct {
	Name string   `json:"name" binding:"required"`
	Days []string `json:"days" binding:"required,min=1,dive,required"`
}

type ProgramResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// --- Handler Methods ---

// UpdateProfile godoc
// @Summary Update my profile
// @Tags Users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param profile body UpdateProfileRequest true "Name and weight"
// @Success 200 {object} UserResponse
// @Failure 400 {object} gin.H "Invalid input"
// @Failure 500 {object} gin.H "Internal Server Error"
// @Router /profile [put]
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user.")
		return
	}
	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	user, err := h.programService.UpdateProfile(c.Request.Context(), userID, req.Name, req.Weight)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to update profile.")
		return
	}
	c.JSON(http.StatusOK, MapUserToResponse(user))
}

// CreateProgram godoc
// @Summary Create a training program
// @Description Creates a program with one training day per entry of days, in order.
// @Tags Programs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param program body CreateProgramRequest true "Program name and day names"
// @Success 201 {object} ProgramResponse
// @Failure 400 {object} gin.H "Invalid input"
// @Failure 500 {object} gin.H "Internal Server Error"
// @Router /programs [post]
func (h *UserHandler) CreateProgram(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user.")
		return
	}
	var req CreateProgramRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	program, err := h.programService.CreateProgram(c.Request.Context(), userID, req.Name, req.Days)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to create program.")
		return
	}
	c.JSON(http.StatusCreated, ProgramResponse{ID: program.ID.Hex(), Name: program.Name, CreatedAt: program.CreatedAt})
}
