package service

import (
	"alcyxob/fitness-bot/internal/domain"
	"alcyxob/fitness-bot/internal/repository" // Import repository package
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrExerciseNotFound   = errors.New("exercise not found")
	ErrTemplateNotFound   = errors.New("exercise template not found")
	ErrPlannedSetNotFound = errors.New("planned set not found")
)

// ExerciseService places templates into training days and tunes their planned sets.
type ExerciseService interface {
	// AddFromTemplate appends a copy of the template to the day and seeds its
	// default planned sets. User templates resolve only for their author.
	AddFromTemplate(ctx context.Context, userID int64, dayID primitive.ObjectID, origin domain.Origin) (*domain.Exercise, error)
	GetExercise(ctx context.Context, exerciseID primitive.ObjectID) (*domain.Exercise, error)
	// DeleteExercise removes the exercise with its sets. Sibling positions are kept.
	DeleteExercise(ctx context.Context, exerciseID primitive.ObjectID) error
	PlannedSets(ctx context.Context, exerciseID primitive.ObjectID) ([]domain.ExerciseSet, error)
	// AddPlannedSet appends a set repeating the last set's reps.
	AddPlannedSet(ctx context.Context, exerciseID primitive.ObjectID) error
	// RemovePlannedSet drops the last set unless only one remains.
	RemovePlannedSet(ctx context.Context, exerciseID primitive.ObjectID) (bool, error)
	// AdjustReps adds delta to a set's reps, never going below one.
	AdjustReps(ctx context.Context, setID primitive.ObjectID, delta int) (int, error)
}

// exerciseService implements the ExerciseService interface.
type exerciseService struct {
	tx              repository.Transactor
	dayRepo         repository.TrainingDayRepository
	exerciseRepo    repository.ExerciseRepository
	exerciseSetRepo repository.ExerciseSetRepository
	setRepo         repository.SetRepository
	templateRepo    repository.TemplateRepository
	ordering        OrderingService
}

// NewExerciseService creates a new instance of exerciseService.
func NewExerciseService(
	tx repository.Transactor,
	dayRepo repository.TrainingDayRepository,
	exerciseRepo repository.ExerciseRepository,
	exerciseSetRepo repository.ExerciseSetRepository,
	setRepo repository.SetRepository,
	templateRepo repository.TemplateRepository,
	ordering OrderingService,
) ExerciseService {
	return &exerciseService{
		tx:              tx,
		dayRepo:         dayRepo,
		exerciseRepo:    exerciseRepo,
		exerciseSetRepo: exerciseSetRepo,
		setRepo:         setRepo,
		templateRepo:    templateRepo,
		ordering:        ordering,
	}
}

func (s *exerciseService) template(ctx context.Context, userID int64, origin domain.Origin) (domain.Template, error) {
	if err := origin.Validate(); err != nil {
		return domain.Template{}, err
	}
	switch origin.Kind {
	case domain.OriginUser:
		e, err := s.templateRepo.GetUserExercise(ctx, origin.TemplateID)
		if err != nil {
			return domain.Template{}, err
		}
		if e.UserID != userID {
			return domain.Template{}, repository.ErrNotFound
		}
		return e.AsTemplate(), nil
	default:
		e, err := s.templateRepo.GetAdminExercise(ctx, origin.TemplateID)
		if err != nil {
			return domain.Template{}, err
		}
		return e.AsTemplate(), nil
	}
}

func (s *exerciseService) AddFromTemplate(ctx context.Context, userID int64, dayID primitive.ObjectID, origin domain.Origin) (*domain.Exercise, error) {
	tmpl, err := s.template(ctx, userID, origin)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTemplateNotFound
		}
		return nil, err
	}
	if _, err := s.dayRepo.GetByID(ctx, dayID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrDayNotFound
		}
		return nil, err
	}

	exercise := tmpl.NewExercise(dayID)
	reps := make([]int, tmpl.Sets)
	for i := range reps {
		reps[i] = tmpl.Reps
	}
	if _, err := s.ordering.Append(ctx, exercise, reps); err != nil {
		return nil, err
	}
	return exercise, nil
}

func (s *exerciseService) GetExercise(ctx context.Context, exerciseID primitive.ObjectID) (*domain.Exercise, error) {
	exercise, err := s.exerciseRepo.GetByID(ctx, exerciseID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrExerciseNotFound
		}
		return nil, err
	}
	return exercise, nil
}

func (s *exerciseService) DeleteExercise(ctx context.Context, exerciseID primitive.ObjectID) error {
	err := s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		if err := s.exerciseRepo.Delete(ctx, exerciseID); err != nil {
			return err
		}
		ids := []primitive.ObjectID{exerciseID}
		if err := s.exerciseSetRepo.DeleteByExerciseIDs(ctx, ids); err != nil {
			return err
		}
		return s.setRepo.DeleteByExerciseIDs(ctx, ids)
	})
	if errors.Is(err, repository.ErrNotFound) {
		return ErrExerciseNotFound
	}
	return err
}

func (s *exerciseService) PlannedSets(ctx context.Context, exerciseID primitive.ObjectID) ([]domain.ExerciseSet, error) {
	return s.exerciseSetRepo.GetByExerciseID(ctx, exerciseID)
}

func (s *exerciseService) AddPlannedSet(ctx context.Context, exerciseID primitive.ObjectID) error {
	exercise, err := s.GetExercise(ctx, exerciseID)
	if err != nil {
		return err
	}
	sets, err := s.exerciseSetRepo.GetByExerciseID(ctx, exerciseID)
	if err != nil {
		return err
	}
	reps := exercise.BaseReps
	if len(sets) > 0 {
		reps = sets[len(sets)-1].Reps
	}
	if reps <= 0 {
		reps = domain.DefaultBaseReps
	}
	_, err = s.exerciseSetRepo.Create(ctx, &domain.ExerciseSet{ExerciseID: exerciseID, Reps: reps})
	return err
}

func (s *exerciseService) RemovePlannedSet(ctx context.Context, exerciseID primitive.ObjectID) (bool, error) {
	if _, err := s.GetExercise(ctx, exerciseID); err != nil {
		return false, err
	}
	sets, err := s.exerciseSetRepo.GetByExerciseID(ctx, exerciseID)
	if err != nil {
		return false, err
	}
	if len(sets) <= 1 {
		return false, nil
	}
	if err := s.exerciseSetRepo.Delete(ctx, sets[len(sets)-1].ID); err != nil {
		return false, err
	}
	return true, nil
}

func (s *exerciseService) AdjustReps(ctx context.Context, setID primitive.ObjectID, delta int) (int, error) {
	set, err := s.exerciseSetRepo.GetByID(ctx, setID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return 0, ErrPlannedSetNotFound
		}
		return 0, err
	}
	reps := set.Reps + delta
	if reps < 1 {
		reps = 1
	}
	if reps == set.Reps {
		return reps, nil
	}
	if err := s.exerciseSetRepo.UpdateReps(ctx, setID, reps); err != nil {
		return 0, err
	}
	return reps, nil
}
