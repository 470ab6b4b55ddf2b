package api

import (
	"alcyxob/fitness-bot/internal/domain"
	"alcyxob/fitness-bot/internal/service"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ExerciseHandler serves exercises placed in training days, their attempt
// sets and position maintenance.
type ExerciseHandler struct {
	exerciseService service.ExerciseService
	workoutService  service.WorkoutService
	orderingService service.OrderingService
}

// NewExerciseHandler creates a new ExerciseHandler.
func NewExerciseHandler(exerciseService service.ExerciseService, workoutService service.WorkoutService, orderingService service.OrderingService) *ExerciseHandler {
	return &ExerciseHandler{
		exerciseService: exerciseService,
		workoutService:  workoutService,
		orderingService: orderingService,
	}
}

// --- DTOs for API (Data Transfer Objects) ---

// ExerciseResponse is the DTO for returning an exercise with its planned sets.
type ExerciseResponse struct {
	ID            string    `json:"id"`
	TrainingDayID string    `json:"training_day_id"`
	Name          string    `json:"name"`
	Description   string    `json:"description,omitempty"`
	Position      int       `json:"position"`
	Origin        string    `json:"origin"`
	PlannedReps   []int     `json:"planned_reps"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// MapExerciseToResponse converts a domain.Exercise and its planned sets to ExerciseResponse DTO.
func MapExerciseToResponse(ex *domain.Exercise, planned []domain.ExerciseSet) ExerciseResponse {
	if ex == nil {
		return ExerciseResponse{}
	}
	reps := make([]int, len(planned))
	for i, s := range planned {
		reps[i] = s.Reps
	}
	return ExerciseResponse{
		ID:            ex.ID.Hex(),
		TrainingDayID: ex.TrainingDayID.Hex(),
		Name:          ex.Name,
		Description:   ex.Description,
		Position:      ex.Position,
		Origin:        string(ex.Origin.Kind),
		PlannedReps:   reps,
		UpdatedAt:     ex.UpdatedAt,
	}
}

// RecordSetRequest is one attempt made during a live session.
type RecordSetRequest struct {
	ExerciseID        string  `json:"exercise_id" binding:"required"`
	Weight            float64 `json:"weight" binding:"gte=0"`
	Repetitions       int     `json:"repetitions" binding:"required,gt=0"`
	TrainingSessionID string  `json:"training_session_id" binding:"omitempty,uuid"`
}

type SetResponse struct {
	ID                string    `json:"id"`
	ExerciseID        string    `json:"exercise_id"`
	Weight            float64   `json:"weight"`
	Repetitions       int       `json:"repetitions"`
	TrainingSessionID string    `json:"training_session_id"`
	CreatedAt         time.Time `json:"created_at"`
}

// MapSetsToResponse converts recorded sets to SetResponse DTOs.
func MapSetsToResponse(sets []domain.Set) []SetResponse {
	responses := make([]SetResponse, len(sets))
	for i, s := range sets {
		responses[i] = SetResponse{
			ID:                s.ID.Hex(),
			ExerciseID:        s.ExerciseID.Hex(),
			Weight:            s.Weight,
			Repetitions:       s.Repetitions,
			TrainingSessionID: s.TrainingSessionID,
			CreatedAt:         s.CreatedAt,
		}
	}
	return responses
}

type RenumberResponse struct {
	Renumbered int `json:"renumbered"`
}

// --- Handler Methods ---

// GetExercise godoc
// @Summary Get an exercise with its planned sets
// @Tags Exercises
// @Produce json
// @Security BearerAuth
// @Param id path string true "Exercise ObjectID Hex"
// @Success 200 {object} ExerciseResponse
// @Failure 400 {object} gin.H "Invalid exercise ID format"
// @Failure 404 {object} gin.H "Exercise not found"
// @Failure 500 {object} gin.H "Internal Server Error"
// @Router /exercises/{id} [get]
func (h *ExerciseHandler) GetExercise(c *gin.Context) {
	exerciseID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid exercise ID format.")
		return
	}

	exercise, err := h.exerciseService.GetExercise(c.Request.Context(), exerciseID)
	if err != nil {
		if errors.Is(err, service.ErrExerciseNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to retrieve exercise.")
		}
		return
	}
	planned, err := h.exerciseService.PlannedSets(c.Request.Context(), exerciseID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to retrieve planned sets.")
		return
	}
	c.JSON(http.StatusOK, MapExerciseToResponse(exercise, planned))
}

// RecordSet godoc
// @Summary Record an attempt
// @Description Stores one attempt. Without a training_session_id a new session is started; reuse the returned id for later attempts.
// @Tags Sets
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param set body RecordSetRequest true "Attempt"
// @Success 201 {object} SetResponse
// @Failure 400 {object} gin.H "Invalid input"
// @Failure 404 {object} gin.H "Exercise not found"
// @Failure 500 {object} gin.H "Internal Server Error"
// @Router /sets [post]
func (h *ExerciseHandler) RecordSet(c *gin.Context) {
	var req RecordSetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	exerciseID, err := primitive.ObjectIDFromHex(req.ExerciseID)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid exercise ID format.")
		return
	}

	set, err := h.workoutService.RecordSet(c.Request.Context(), exerciseID, req.Weight, req.Repetitions, req.TrainingSessionID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrExerciseNotFound):
			abortWithError(c, http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrInvalidAttempt):
			abortWithError(c, http.StatusBadRequest, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to record set.")
		}
		return
	}
	c.JSON(http.StatusCreated, MapSetsToResponse([]domain.Set{*set})[0])
}

// GetSessionSets godoc
// @Summary List the attempts of one session
// @Tags Sets
// @Produce json
// @Security BearerAuth
// @Param id path string true "Exercise ObjectID Hex"
// @Param session query string true "Training session id"
// @Success 200 {array} SetResponse
// @Failure 400 {object} gin.H "Invalid input"
// @Failure 500 {object} gin.H "Internal Server Error"
// @Router /exercises/{id}/sets [get]
func (h *ExerciseHandler) GetSessionSets(c *gin.Context) {
	exerciseID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid exercise ID format.")
		return
	}
	session := c.Query("session")
	if session == "" {
		abortWithError(c, http.StatusBadRequest, "Query parameter 'session' is required.")
		return
	}

	sets, err := h.workoutService.SessionSets(c.Request.Context(), exerciseID, session)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to retrieve sets.")
		return
	}
	c.JSON(http.StatusOK, MapSetsToResponse(sets))
}

// RenumberDay godoc
// @Summary Rewrite a day's positions as 0..N-1 in insertion order
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param dayId path string true "Training day ObjectID Hex"
// @Success 200 {object} RenumberResponse
// @Failure 400 {object} gin.H "Invalid day ID format"
// @Failure 403 {object} gin.H "Forbidden (not an admin)"
// @Failure 500 {object} gin.H "Internal Server Error"
// @Router /admin/days/{dayId}/renumber [post]
func (h *ExerciseHandler) RenumberDay(c *gin.Context) {
	dayID, err := primitive.ObjectIDFromHex(c.Param("dayId"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid day ID format.")
		return
	}

	n, err := h.orderingService.Renumber(c.Request.Context(), dayID)
	if err != nil {
		slog.ErrorContext(c.Request.Context(), "renumber day", slog.String("training_day_id", dayID.Hex()), slog.Any("error", err))
		abortWithError(c, http.StatusInternalServerError, "Failed to renumber positions.")
		return
	}
	c.JSON(http.StatusOK, RenumberResponse{Renumbered: n})
}

// RenumberAll godoc
// @Summary Renumber every training day holding exercises
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} RenumberResponse
// @Failure 403 {object} gin.H "Forbidden (not an admin)"
// @Failure 500 {object} gin.H "Internal Server Error"
// @Router /admin/positions/renumber [post]
func (h *ExerciseHandler) RenumberAll(c *gin.Context) {
	n, err := h.orderingService.RenumberAll(c.Request.Context())
	if err != nil {
		slog.ErrorContext(c.Request.Context(), "renumber all days", slog.Int("renumbered", n), slog.Any("error", err))
		abortWithError(c, http.StatusInternalServerError, "Failed to renumber some days.")
		return
	}
	c.JSON(http.StatusOK, RenumberResponse{Renumbered: n})
}
