package service

import (
	"alcyxob/fitness-bot/internal/domain"
	"alcyxob/fitness-bot/internal/repository"
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// appendAttempts bounds retries of an append that lost the race for the next
// position. A lost race aborts the whole transaction, so nothing was written.
const appendAttempts = 3

// MoveResult is the outcome of a reorder request that reached the store.
type MoveResult int

const (
	MoveMoved MoveResult = iota
	MoveAtBoundary
	MoveNotFound
	MoveConflict
)

func (r MoveResult) String() string {
	switch r {
	case MoveMoved:
		return "moved"
	case MoveAtBoundary:
		return "boundary"
	case MoveNotFound:
		return "not_found"
	case MoveConflict:
		return "conflict"
	default:
		return fmt.Sprintf("MoveResult(%d)", int(r))
	}
}

// OrderingService keeps the exercises of a training day in a dense,
// zero-based position sequence.
type OrderingService interface {
	// Append inserts exercise at the end of its day and, in the same
	// transaction, one planned set per element of plannedReps.
	Append(ctx context.Context, exercise *domain.Exercise, plannedReps []int) (int, error)
	MoveUp(ctx context.Context, exerciseID primitive.ObjectID) (MoveResult, error)
	MoveDown(ctx context.Context, exerciseID primitive.ObjectID) (MoveResult, error)
	// Renumber rewrites the day's positions as 0..N-1 in insertion order.
	Renumber(ctx context.Context, dayID primitive.ObjectID) (int, error)
	// RenumberAll renumbers every day holding exercises and returns the number of days.
	RenumberAll(ctx context.Context) (int, error)
}

type orderingService struct {
	tx              repository.Transactor
	exerciseRepo    repository.ExerciseRepository
	exerciseSetRepo repository.ExerciseSetRepository
}

// NewOrderingService creates a new instance of orderingService.
func NewOrderingService(tx repository.Transactor, exerciseRepo repository.ExerciseRepository, exerciseSetRepo repository.ExerciseSetRepository) OrderingService {
	return &orderingService{
		tx:              tx,
		exerciseRepo:    exerciseRepo,
		exerciseSetRepo: exerciseSetRepo,
	}
}

func (s *orderingService) Append(ctx context.Context, exercise *domain.Exercise, plannedReps []int) (int, error) {
	if exercise.TrainingDayID == primitive.NilObjectID {
		return 0, errors.New("exercise requires a training day")
	}

	var err error
	for attempt := 0; attempt < appendAttempts; attempt++ {
		err = s.tx.WithTransaction(ctx, func(ctx context.Context) error {
			highest, ok, err := s.exerciseRepo.MaxPosition(ctx, exercise.TrainingDayID)
			if err != nil {
				return err
			}
			exercise.Position = 0
			if ok {
				exercise.Position = highest + 1
			}
			exercise.Version = 0

			id, err := s.exerciseRepo.Create(ctx, exercise)
			if err != nil {
				return err
			}
			exercise.ID = id

			for _, reps := range plannedReps {
				if _, err := s.exerciseSetRepo.Create(ctx, &domain.ExerciseSet{ExerciseID: id, Reps: reps}); err != nil {
					return err
				}
			}
			return nil
		})
		if !errors.Is(err, repository.ErrConflict) {
			break
		}
	}
	if err != nil {
		return 0, err
	}
	return exercise.Position, nil
}

func (s *orderingService) MoveUp(ctx context.Context, exerciseID primitive.ObjectID) (MoveResult, error) {
	return s.move(ctx, exerciseID, -1)
}

func (s *orderingService) MoveDown(ctx context.Context, exerciseID primitive.ObjectID) (MoveResult, error) {
	return s.move(ctx, exerciseID, +1)
}

// move swaps the exercise with its neighbor in direction dir. The exercise is
// parked at a negative position first so the unique (day, position) index
// never sees two rows at the same place.
func (s *orderingService) move(ctx context.Context, exerciseID primitive.ObjectID, dir int) (MoveResult, error) {
	result := MoveMoved
	err := s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		exercise, err := s.exerciseRepo.GetByID(ctx, exerciseID)
		if err != nil {
			return err
		}
		siblings, err := s.exerciseRepo.GetByDayID(ctx, exercise.TrainingDayID)
		if err != nil {
			return err
		}

		idx := -1
		for i := range siblings {
			if siblings[i].ID == exerciseID {
				idx = i
				break
			}
		}
		if idx < 0 {
			return repository.ErrNotFound
		}
		next := idx + dir
		if next < 0 || next >= len(siblings) {
			result = MoveAtBoundary
			return nil
		}

		self, neighbor := siblings[idx], siblings[next]
		if err := s.exerciseRepo.UpdatePosition(ctx, self.ID, self.Version, -1-self.Position); err != nil {
			return err
		}
		if err := s.exerciseRepo.UpdatePosition(ctx, neighbor.ID, neighbor.Version, self.Position); err != nil {
			return err
		}
		return s.exerciseRepo.UpdatePosition(ctx, self.ID, self.Version+1, neighbor.Position)
	})

	switch {
	case err == nil:
		return result, nil
	case errors.Is(err, repository.ErrNotFound):
		return MoveNotFound, nil
	case errors.Is(err, repository.ErrConflict):
		return MoveConflict, nil
	default:
		return MoveConflict, err
	}
}

func (s *orderingService) Renumber(ctx context.Context, dayID primitive.ObjectID) (int, error) {
	var n int
	err := s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		exercises, err := s.exerciseRepo.GetByDayIDInsertionOrder(ctx, dayID)
		if err != nil {
			return err
		}
		// Two passes: park every row at a distinct negative position, then
		// write the final ones.
		for i, e := range exercises {
			if err := s.exerciseRepo.UpdatePosition(ctx, e.ID, e.Version, -(i + 1)); err != nil {
				return err
			}
		}
		for i, e := range exercises {
			if err := s.exerciseRepo.UpdatePosition(ctx, e.ID, e.Version+1, i); err != nil {
				return err
			}
		}
		n = len(exercises)
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("renumber day %s: %w", dayID.Hex(), err)
	}
	return n, nil
}

func (s *orderingService) RenumberAll(ctx context.Context) (int, error) {
	dayIDs, err := s.exerciseRepo.DayIDs(ctx)
	if err != nil {
		return 0, err
	}
	var errs []error
	done := 0
	for _, dayID := range dayIDs {
		if _, err := s.Renumber(ctx, dayID); err != nil {
			errs = append(errs, err)
			continue
		}
		done++
	}
	return done, errors.Join(errs...)
}
