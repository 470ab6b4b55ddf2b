package service

import (
	"alcyxob/fitness-bot/internal/domain"
	"alcyxob/fitness-bot/internal/repository"
	"context"
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrProgramNotFound = errors.New("training program not found")
	ErrDayNotFound     = errors.New("training day not found")
	ErrUserNotFound    = errors.New("user not found")
)

// ProgramService manages a user's programs and their training days.
type ProgramService interface {
	CreateProgram(ctx context.Context, userID int64, name string, days []string) (*domain.TrainingProgram, error)
	// GetProgram returns the program if userID owns it.
	GetProgram(ctx context.Context, userID int64, programID primitive.ObjectID) (*domain.TrainingProgram, error)
	// SetActive makes programID the user's active program; nil deactivates.
	SetActive(ctx context.Context, userID int64, programID *primitive.ObjectID) error
	// Delete removes the program with its days, exercises, planned and recorded sets.
	Delete(ctx context.Context, userID int64, programID primitive.ObjectID) error
	UpdateProfile(ctx context.Context, userID int64, name string, weight float64) (*domain.User, error)
}

// programService implements the ProgramService interface.
type programService struct {
	tx              repository.Transactor
	userRepo        repository.UserRepository
	programRepo     repository.TrainingProgramRepository
	dayRepo         repository.TrainingDayRepository
	exerciseRepo    repository.ExerciseRepository
	exerciseSetRepo repository.ExerciseSetRepository
	setRepo         repository.SetRepository
}

// NewProgramService creates a new instance of programService.
func NewProgramService(
	tx repository.Transactor,
	userRepo repository.UserRepository,
	programRepo repository.TrainingProgramRepository,
	dayRepo repository.TrainingDayRepository,
	exerciseRepo repository.ExerciseRepository,
	exerciseSetRepo repository.ExerciseSetRepository,
	setRepo repository.SetRepository,
) ProgramService {
	return &programService{
		tx:              tx,
		userRepo:        userRepo,
		programRepo:     programRepo,
		dayRepo:         dayRepo,
		exerciseRepo:    exerciseRepo,
		exerciseSetRepo: exerciseSetRepo,
		setRepo:         setRepo,
	}
}

func (s *programService) CreateProgram(ctx context.Context, userID int64, name string, days []string) (*domain.TrainingProgram, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errors.New("program name cannot be empty")
	}
	program := &domain.TrainingProgram{UserID: userID, Name: name}
	err := s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		if _, err := s.programRepo.Create(ctx, program); err != nil {
			return err
		}
		for _, day := range days {
			if _, err := s.dayRepo.Create(ctx, &domain.TrainingDay{TrainingProgramID: program.ID, DayOfWeek: day}); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return program, nil
}

func (s *programService) GetProgram(ctx context.Context, userID int64, programID primitive.ObjectID) (*domain.TrainingProgram, error) {
	program, err := s.programRepo.GetByID(ctx, programID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProgramNotFound
		}
		return nil, err
	}
	if program.UserID != userID {
		// Another user's program is indistinguishable from a missing one.
		return nil, ErrProgramNotFound
	}
	return program, nil
}

func (s *programService) SetActive(ctx context.Context, userID int64, programID *primitive.ObjectID) error {
	if programID != nil {
		if _, err := s.GetProgram(ctx, userID, *programID); err != nil {
			return err
		}
	}
	err := s.userRepo.SetActiveProgram(ctx, userID, programID)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrUserNotFound
	}
	return err
}

func (s *programService) Delete(ctx context.Context, userID int64, programID primitive.ObjectID) error {
	if _, err := s.GetProgram(ctx, userID, programID); err != nil {
		return err
	}
	return s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		days, err := s.dayRepo.GetByProgramID(ctx, programID)
		if err != nil {
			return err
		}
		dayIDs := make([]primitive.ObjectID, 0, len(days))
		for _, d := range days {
			dayIDs = append(dayIDs, d.ID)
		}

		exerciseIDs, err := s.exerciseRepo.DeleteByDayIDs(ctx, dayIDs)
		if err != nil {
			return err
		}
		if err := s.exerciseSetRepo.DeleteByExerciseIDs(ctx, exerciseIDs); err != nil {
			return err
		}
		if err := s.setRepo.DeleteByExerciseIDs(ctx, exerciseIDs); err != nil {
			return err
		}
		if err := s.dayRepo.DeleteByProgramID(ctx, programID); err != nil {
			return err
		}
		if err := s.userRepo.ClearActiveProgram(ctx, programID); err != nil {
			return err
		}
		return s.programRepo.Delete(ctx, programID)
	})
}

func (s *programService) UpdateProfile(ctx context.Context, userID int64, name string, weight float64) (*domain.User, error) {
	if userID <= 0 {
		return nil, errors.New("user id must be positive")
	}
	if weight < 0 {
		return nil, errors.New("weight cannot be negative")
	}
	user := &domain.User{UserID: userID, Name: strings.TrimSpace(name), Weight: weight}
	if err := s.userRepo.Upsert(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}
