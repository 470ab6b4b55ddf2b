package service

import (
	"alcyxob/fitness-bot/internal/domain"
	"alcyxob/fitness-bot/internal/repository"
	"context"
	"errors"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var ErrInvalidAttempt = errors.New("repetitions must be positive and weight non-negative")

// WorkoutService records attempts made during a live training session.
type WorkoutService interface {
	// RecordSet stores an attempt. An empty sessionID starts a new session;
	// the returned set carries the session id to reuse for later attempts.
	RecordSet(ctx context.Context, exerciseID primitive.ObjectID, weight float64, repetitions int, sessionID string) (*domain.Set, error)
	SessionSets(ctx context.Context, exerciseID primitive.ObjectID, sessionID string) ([]domain.Set, error)
}

type workoutService struct {
	exerciseRepo repository.ExerciseRepository
	setRepo      repository.SetRepository
}

// NewWorkoutService creates a new instance of workoutService.
func NewWorkoutService(exerciseRepo repository.ExerciseRepository, setRepo repository.SetRepository) WorkoutService {
	return &workoutService{
		exerciseRepo: exerciseRepo,
		setRepo:      setRepo,
	}
}

func (s *workoutService) RecordSet(ctx context.Context, exerciseID primitive.ObjectID, weight float64, repetitions int, sessionID string) (*domain.Set, error) {
	if repetitions <= 0 || weight < 0 {
		return nil, ErrInvalidAttempt
	}
	if _, err := s.exerciseRepo.GetByID(ctx, exerciseID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrExerciseNotFound
		}
		return nil, err
	}
	if sessionID == "" {
		sessionID = uuid.NewString()
	} else if _, err := uuid.Parse(sessionID); err != nil {
		return nil, errors.New("training session id must be a uuid")
	}

	set := &domain.Set{
		ExerciseID:        exerciseID,
		Weight:            weight,
		Repetitions:       repetitions,
		TrainingSessionID: sessionID,
	}
	if _, err := s.setRepo.Create(ctx, set); err != nil {
		return nil, err
	}
	return set, nil
}

func (s *workoutService) SessionSets(ctx context.Context, exerciseID primitive.ObjectID, sessionID string) ([]domain.Set, error) {
	if sessionID == "" {
		return nil, errors.New("training session id is required")
	}
	return s.setRepo.GetBySession(ctx, exerciseID, sessionID)
}
