package menu

import (
	"context"
	"testing"

	"alcyxob/fitness-bot/internal/domain"
	"alcyxob/fitness-bot/internal/repository"
	"alcyxob/fitness-bot/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const otherUserID int64 = 777

const userProgramMedia = "https://img.example/user_program.jpg"

func (f *fixture) resolveAs(userID int64, a Address) Screen {
	a.UserID = userID
	return f.d.Resolve(f.ctx, a)
}

// otherDay creates a program of otherUserID and returns its only day.
func (f *fixture) otherDay(t *testing.T) domain.TrainingDay {
	t.Helper()
	program, err := f.programs.CreateProgram(f.ctx, otherUserID, "Other", []string{"Вторник"})
	require.NoError(t, err)
	days, err := f.store.Days().GetByProgramID(f.ctx, program.ID)
	require.NoError(t, err)
	require.Len(t, days, 1)
	return days[0]
}

func (f *fixture) plannedReps(t *testing.T, exerciseID primitive.ObjectID) []int {
	t.Helper()
	sets, err := f.plans.PlannedSets(f.ctx, exerciseID)
	require.NoError(t, err)
	out := make([]int, 0, len(sets))
	for _, s := range sets {
		out = append(out, s.Reps)
	}
	return out
}

type withoutPage struct {
	PageSource
	name string
}

func (p withoutPage) GetPage(ctx context.Context, name string) (service.Page, error) {
	if name == p.name {
		return service.Page{}, service.ErrPageNotFound
	}
	return p.PageSource.GetPage(ctx, name)
}

type conflictingPlans struct {
	service.ExerciseService
}

func (conflictingPlans) AddFromTemplate(context.Context, int64, primitive.ObjectID, domain.Origin) (*domain.Exercise, error) {
	return nil, repository.ErrConflict
}

func TestResolveEditorScreensCarryBanner(t *testing.T) {
	f := newFixture(t)
	squat := f.addExercise(t, f.monday.ID, "Squat")

	for _, a := range []Address{
		{Level: LevelDayEditor, Action: "day", DayID: f.monday.ID},
		{Level: LevelExerciseEdit, Action: ActionEditExercises, DayID: f.monday.ID},
		{Level: LevelExerciseEdit, Action: ActionDelete, DayID: f.monday.ID},
		{Level: LevelExerciseEdit, Action: "shd/mv", DayID: f.monday.ID},
		{Level: LevelExerciseEdit, Action: ActionCategories, DayID: f.monday.ID},
		{Level: LevelExercise, Action: ActionExerciseSetting, DayID: f.monday.ID, ExerciseID: squat.ID},
		{Level: LevelExercise, Action: ActionCategory, DayID: f.monday.ID, CategoryID: f.category},
		{Level: LevelCustom, Action: ActionCustom, DayID: f.monday.ID, Empty: true},
	} {
		s := f.resolve(a)
		assert.Equal(t, userProgramMedia, s.Media, "level %d action %q: %s", int(a.Level), a.Action, s.Caption)
	}
}

func TestResolveDayEditorMissingBanner(t *testing.T) {
	f := newFixture(t)
	f.d = f.dispatcher(withoutPage{PageSource: f.d.deps.Pages, name: pageUserProgram})

	s := f.resolve(Address{Level: LevelDayEditor, Action: "day", DayID: f.monday.ID})
	assert.Equal(t, testErrorMedia, s.Media)
	assert.Equal(t, []string{"🏠 Main menu"}, labels(s))
	assert.Equal(t, string(KindNotFound), f.lastRecord(t)["kind"])
}

func TestResolveForeignDayActsAsMissing(t *testing.T) {
	f := newFixture(t)
	a := f.addExercise(t, f.monday.ID, "A")
	b := f.addExercise(t, f.monday.ID, "B")

	for _, addr := range []Address{
		{Level: LevelDayEditor, Action: "day", DayID: f.monday.ID},
		{Level: LevelExerciseEdit, Action: ActionDelete, DayID: f.monday.ID, ExerciseID: a.ID},
		{Level: LevelExerciseEdit, Action: ActionMoveDown, DayID: f.monday.ID, ExerciseID: a.ID},
		{Level: LevelExercise, Action: ActionIncrement, DayID: f.monday.ID, ExerciseID: a.ID},
		{Level: LevelExercise, Action: ActionIncrement, ExerciseID: a.ID},
		{Level: LevelExercise, Action: ActionAddAdmin, DayID: f.monday.ID, CategoryID: f.category, ExerciseID: f.admin.ID},
		{Level: LevelProgram, Action: ActionTrainingProcess, DayID: f.monday.ID},
	} {
		s := f.resolveAs(otherUserID, addr)
		assert.Equal(t, []string{"🏠 Main menu"}, labels(s), "level %d action %q", int(addr.Level), addr.Action)
		assert.Equal(t, string(KindNotFound), f.lastRecord(t)["kind"])
	}

	_, err := f.store.Exercises().GetByID(f.ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"A": 0, "B": 1}, f.positions(t, f.monday.ID))
	assert.Equal(t, []int{10, 10, 10}, f.plannedReps(t, a.ID))
	assert.Equal(t, []int{10, 10, 10}, f.plannedReps(t, b.ID))
}

func TestResolveExerciseOfAnotherDay(t *testing.T) {
	f := newFixture(t)
	mine := f.addExercise(t, f.monday.ID, "Mine")
	other := f.otherDay(t)
	foreign := f.addExercise(t, other.ID, "Foreign")

	at := func(action string, id primitive.ObjectID) Address {
		return Address{Level: LevelExerciseEdit, Action: action, DayID: f.monday.ID, ExerciseID: id}
	}

	s := f.resolve(at(ActionDelete, foreign.ID))
	assert.Contains(t, s.Caption, "Exercise not found.")
	_, err := f.store.Exercises().GetByID(f.ctx, foreign.ID)
	require.NoError(t, err, "the other user's exercise is kept")

	s = f.resolve(at(ActionMoveUp, foreign.ID))
	assert.Contains(t, s.Caption, "Exercise not found.")

	// An exercise on the caller's own other day does not belong to this one.
	thursday := f.addExercise(t, f.thursday.ID, "Thursday")
	s = f.resolve(at(ActionDelete, thursday.ID))
	assert.Contains(t, s.Caption, "Exercise not found.")
	_, err = f.store.Exercises().GetByID(f.ctx, thursday.ID)
	require.NoError(t, err)

	s = f.resolve(Address{Level: LevelExercise, Action: ActionExerciseSetting, DayID: f.monday.ID, ExerciseID: foreign.ID})
	assert.Equal(t, []string{"🏠 Main menu"}, labels(s))
	s = f.resolve(Address{Level: LevelExercise, Action: ActionExerciseSetting, DayID: f.monday.ID, ExerciseID: mine.ID})
	assert.Contains(t, s.Caption, "Mine")
}

func TestResolveSetOfAnotherExercise(t *testing.T) {
	f := newFixture(t)
	a := f.addExercise(t, f.monday.ID, "A")
	b := f.addExercise(t, f.monday.ID, "B")
	sets, err := f.plans.PlannedSets(f.ctx, b.ID)
	require.NoError(t, err)

	addr := Address{Level: LevelExercise, Action: ActionIncrement, DayID: f.monday.ID, ExerciseID: a.ID, SetID: sets[0].ID}
	s := f.resolve(addr)
	assert.Contains(t, s.Caption, "Set not found.")
	assert.Equal(t, []int{10, 10, 10}, f.plannedReps(t, a.ID))
	assert.Equal(t, []int{10, 10, 10}, f.plannedReps(t, b.ID))
}

func TestResolveCategoryWithoutCategoryListsCustom(t *testing.T) {
	f := newFixture(t)

	s := f.resolve(Address{Level: LevelExercise, Action: ActionCategory, DayID: f.monday.ID})
	assert.Equal(t, "My exercises\n\n🔘 Bulgarian split squat", s.Caption)
	assert.Equal(t, userProgramMedia, s.Media)
	add := findButton(t, s, "⭐ Bulgarian split squat").Target
	assert.Equal(t, ActionAddCustom, add.Action)
	assert.Equal(t, f.custom.ID, add.ExerciseID)

	s = f.resolve(Address{Level: LevelExercise, Action: ActionCategory, DayID: f.monday.ID, CategoryID: f.category, Empty: true})
	assert.Equal(t, "My exercises\n\n🔘 Bulgarian split squat", s.Caption)
}

func TestResolveAddConflictNotice(t *testing.T) {
	f := newFixture(t)
	f.d.deps.Plans = conflictingPlans{f.plans}

	s := f.resolve(Address{Level: LevelExercise, Action: ActionAddAdmin, DayID: f.monday.ID, CategoryID: f.category, ExerciseID: f.admin.ID})
	assert.Contains(t, s.Caption, "The list was changed at the same time. Try again.")
	assert.Contains(t, s.Caption, "Ноги")
	assert.Equal(t, userProgramMedia, s.Media)
	assert.Equal(t, "INFO", f.lastRecord(t)["level"])
}
