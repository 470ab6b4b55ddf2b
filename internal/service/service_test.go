package service

import (
	"alcyxob/fitness-bot/internal/domain"
	"alcyxob/fitness-bot/internal/repository/memory"
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const testUserID int64 = 1001

type fixture struct {
	ctx       context.Context
	store     *memory.Store
	ordering  OrderingService
	exercises ExerciseService
	programs  ProgramService
	program   *domain.TrainingProgram
	day       primitive.ObjectID
	category  primitive.ObjectID
	admin     *domain.AdminExercise
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	store := memory.New()

	f := &fixture{ctx: ctx, store: store}
	f.ordering = NewOrderingService(store.Transactor(), store.Exercises(), store.ExerciseSets())
	f.exercises = NewExerciseService(store.Transactor(), store.Days(), store.Exercises(), store.ExerciseSets(), store.Sets(), store.Templates(), f.ordering)
	f.programs = NewProgramService(store.Transactor(), store.Users(), store.Programs(), store.Days(), store.Exercises(), store.ExerciseSets(), store.Sets())

	require.NoError(t, store.Users().Upsert(ctx, &domain.User{UserID: testUserID, Name: "Tester"}))

	program, err := f.programs.CreateProgram(ctx, testUserID, "Split", []string{"Понедельник", "Четверг"})
	require.NoError(t, err)
	f.program = program
	days, err := store.Days().GetByProgramID(ctx, program.ID)
	require.NoError(t, err)
	require.Len(t, days, 2)
	f.day = days[0].ID

	_, err = store.Categories().CreateIfEmpty(ctx, []string{"Ноги"})
	require.NoError(t, err)
	cats, err := store.Categories().ListWithCounts(ctx, testUserID)
	require.NoError(t, err)
	f.category = cats[0].ID

	f.admin = &domain.AdminExercise{CategoryID: f.category, Name: "Squat", DefaultSets: 4, DefaultReps: 12}
	_, err = store.Templates().CreateAdminExercise(ctx, f.admin)
	require.NoError(t, err)
	return f
}

// appendNamed places a bare exercise at the end of dayID.
func (f *fixture) appendNamed(t *testing.T, dayID primitive.ObjectID, name string) *domain.Exercise {
	t.Helper()
	e := &domain.Exercise{TrainingDayID: dayID, Name: name, Origin: domain.AdminOrigin(f.admin.ID)}
	_, err := f.ordering.Append(f.ctx, e, nil)
	require.NoError(t, err)
	return e
}

// positions maps exercise names of the day to their stored positions.
func (f *fixture) positions(t *testing.T, dayID primitive.ObjectID) map[string]int {
	t.Helper()
	list, err := f.store.Exercises().GetByDayID(f.ctx, dayID)
	require.NoError(t, err)
	out := make(map[string]int, len(list))
	for _, e := range list {
		out[e.Name] = e.Position
	}
	return out
}

// requireDense fails unless the day's positions are exactly 0..N-1.
func (f *fixture) requireDense(t *testing.T, dayID primitive.ObjectID) {
	t.Helper()
	list, err := f.store.Exercises().GetByDayID(f.ctx, dayID)
	require.NoError(t, err)
	for i, e := range list {
		require.Equal(t, i, e.Position, "exercise %s", e.Name)
	}
}
