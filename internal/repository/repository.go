package repository

import (
	"alcyxob/fitness-bot/internal/domain" // Import our defined domain models
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Error constants for repository layer
var (
	ErrNotFound = RepositoryError("not found")
	// ErrConflict reports a concurrent mutation: duplicate key, stale version
	// or a transaction write conflict. The write did not happen.
	ErrConflict = RepositoryError("conflict")
)

// RepositoryError helps distinguish repository errors
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// Transactor runs fn so that every repository call made with the context it
// receives commits or aborts together. fn is invoked at most once.
type Transactor interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// UserRepository defines the interface for interacting with user data.
type UserRepository interface {
	GetByUserID(ctx context.Context, userID int64) (*domain.User, error)
	// Upsert creates the user or updates name and weight of an existing one.
	Upsert(ctx context.Context, user *domain.User) error
	SetActiveProgram(ctx context.Context, userID int64, programID *primitive.ObjectID) error
	// ClearActiveProgram unsets the active program of every user pointing at programID.
	ClearActiveProgram(ctx context.Context, programID primitive.ObjectID) error
}

// TrainingProgramRepository defines the interface for interacting with program data.
type TrainingProgramRepository interface {
	Create(ctx context.Context, program *domain.TrainingProgram) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.TrainingProgram, error)
	GetByUserID(ctx context.Context, userID int64) ([]domain.TrainingProgram, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// TrainingDayRepository defines the interface for interacting with training day data.
type TrainingDayRepository interface {
	Create(ctx context.Context, day *domain.TrainingDay) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.TrainingDay, error)
	// GetByProgramID returns the days of a program in creation order.
	GetByProgramID(ctx context.Context, programID primitive.ObjectID) ([]domain.TrainingDay, error)
	DeleteByProgramID(ctx context.Context, programID primitive.ObjectID) error
}

// ExerciseRepository defines the interface for interacting with exercises placed in days.
type ExerciseRepository interface {
	// Create inserts the exercise with its Position as given. A duplicate
	// (trainingDayId, position) yields ErrConflict.
	Create(ctx context.Context, exercise *domain.Exercise) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Exercise, error)
	// GetByDayID returns the day's exercises sorted by position, then id.
	GetByDayID(ctx context.Context, dayID primitive.ObjectID) ([]domain.Exercise, error)
	// GetByDayIDInsertionOrder returns the day's exercises sorted by creation.
	GetByDayIDInsertionOrder(ctx context.Context, dayID primitive.ObjectID) ([]domain.Exercise, error)
	// MaxPosition returns the highest position in the day; ok is false for an empty day.
	MaxPosition(ctx context.Context, dayID primitive.ObjectID) (max int, ok bool, err error)
	// UpdatePosition writes position if the stored version equals version and
	// bumps the version. A stale version or a duplicate position yields ErrConflict.
	UpdatePosition(ctx context.Context, id primitive.ObjectID, version int64, position int) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	DeleteByDayIDs(ctx context.Context, dayIDs []primitive.ObjectID) ([]primitive.ObjectID, error)
	// DayIDs lists every training day that holds at least one exercise.
	DayIDs(ctx context.Context) ([]primitive.ObjectID, error)
}

// ExerciseSetRepository defines the interface for planned sets of an exercise.
type ExerciseSetRepository interface {
	Create(ctx context.Context, set *domain.ExerciseSet) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.ExerciseSet, error)
	// GetByExerciseID returns planned sets in creation order.
	GetByExerciseID(ctx context.Context, exerciseID primitive.ObjectID) ([]domain.ExerciseSet, error)
	UpdateReps(ctx context.Context, id primitive.ObjectID, reps int) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	DeleteByExerciseIDs(ctx context.Context, exerciseIDs []primitive.ObjectID) error
}

// SetRepository defines the interface for recorded attempts.
type SetRepository interface {
	Create(ctx context.Context, set *domain.Set) (primitive.ObjectID, error)
	GetBySession(ctx context.Context, exerciseID primitive.ObjectID, sessionID string) ([]domain.Set, error)
	DeleteByExerciseIDs(ctx context.Context, exerciseIDs []primitive.ObjectID) error
}

// TemplateRepository defines the interface for admin- and user-authored exercise templates.
type TemplateRepository interface {
	CreateAdminExercise(ctx context.Context, exercise *domain.AdminExercise) (primitive.ObjectID, error)
	GetAdminExercise(ctx context.Context, id primitive.ObjectID) (*domain.AdminExercise, error)
	GetAdminExercisesByCategory(ctx context.Context, categoryID primitive.ObjectID) ([]domain.AdminExercise, error)

	CreateUserExercise(ctx context.Context, exercise *domain.UserExercise) (primitive.ObjectID, error)
	GetUserExercise(ctx context.Context, id primitive.ObjectID) (*domain.UserExercise, error)
	GetUserExercises(ctx context.Context, userID int64) ([]domain.UserExercise, error)
	GetUserExercisesByCategory(ctx context.Context, categoryID primitive.ObjectID, userID int64) ([]domain.UserExercise, error)
}

// CategoryRepository defines the interface for exercise categories.
type CategoryRepository interface {
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Category, error)
	// ListWithCounts returns categories sorted by name with the number of
	// admin templates plus userID's templates in each.
	ListWithCounts(ctx context.Context, userID int64) ([]domain.CategoryCount, error)
	// CreateIfEmpty inserts the named categories only when none exist.
	CreateIfEmpty(ctx context.Context, names []string) (int, error)
}

// BannerRepository defines the interface for static page content.
type BannerRepository interface {
	GetByName(ctx context.Context, name string) (*domain.Banner, error)
	// UpsertDescription sets the description of the named banner, creating it if needed.
	UpsertDescription(ctx context.Context, name, description string) error
}
