package menu

import (
	"errors"
	"testing"
	"time"

	"alcyxob/fitness-bot/internal/domain"
	"alcyxob/fitness-bot/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestResolveProgramsCatalog(t *testing.T) {
	f := newFixture(t)
	other, err := f.programs.CreateProgram(f.ctx, testUserID, "Full body", []string{"Среда"})
	require.NoError(t, err)
	f.activate(t)

	s := f.resolve(Address{Level: LevelSection, Action: ActionPrograms})
	assert.Equal(t, "About program", s.Caption)
	assert.Equal(t, []string{"🟢 Split", "Full body", "🏠 Main menu"}, labels(s))
	assert.Equal(t, Address{Level: LevelProgram, Action: ActionPrograms, ProgramID: other.ID}, findButton(t, s, "Full body").Target)
}

func TestResolveProfile(t *testing.T) {
	f := newFixture(t)
	_, err := f.programs.UpdateProfile(f.ctx, testUserID, "Tester", 82.5)
	require.NoError(t, err)

	s := f.resolve(Address{Level: LevelSection, Action: ActionProfile})
	assert.Equal(t, "About profile\n\nName: Tester\nWeight: 82.5 kg", s.Caption)

	s = f.d.Resolve(f.ctx, Address{Level: LevelSection, Action: ActionProfile, UserID: 777})
	assert.Contains(t, s.Caption, "Name: not set")
}

func TestResolveScheduleWithoutActiveProgram(t *testing.T) {
	f := newFixture(t)
	for _, action := range []string{ActionSchedule, ActionMonthSchedule, ActionScheduleDay} {
		s := f.resolve(Address{Level: LevelSection, Action: action})
		assert.Contains(t, s.Caption, "You have no active program.", action)
		assert.Equal(t, []string{"💪 Programs", "🏠 Main menu"}, labels(s), action)
	}
}

func TestResolveScheduleToday(t *testing.T) {
	f := newFixture(t)
	f.activate(t)
	f.addExercise(t, f.monday.ID, "Squat")

	s := f.resolve(Address{Level: LevelSection, Action: ActionSchedule})
	assert.Equal(t, "https://img.example/schedule.jpg", s.Media)
	assert.Contains(t, s.Caption, "Понедельник")
	assert.Contains(t, s.Caption, "🔘 Squat")
	start := findButton(t, s, "▶ Start training")
	assert.Equal(t, Address{Level: LevelProgram, Action: ActionTrainingProcess, ProgramID: f.program.ID, DayID: f.monday.ID}, start.Target)
	edit := findButton(t, s, "✏ Edit day")
	assert.Equal(t, "shd/day", edit.Target.Action)
	assert.False(t, edit.Target.Empty)

	f.d.now = func() time.Time { return monday.AddDate(0, 0, 1) }
	s = f.resolve(Address{Level: LevelSection, Action: ActionSchedule})
	assert.Contains(t, s.Caption, "No training planned for today.")
	assert.NotContains(t, labels(s), "▶ Start training")
}

func TestResolveScheduleDay(t *testing.T) {
	f := newFixture(t)
	f.activate(t)

	s := f.resolve(Address{Level: LevelSection, Action: ActionScheduleDay, DayID: f.thursday.ID})
	assert.Contains(t, s.Caption, "Четверг")
	assert.Contains(t, s.Caption, "No exercises for today.")
	assert.NotContains(t, labels(s), "▶ Start training")
	assert.True(t, findButton(t, s, "✏ Edit day").Target.Empty)

	s = f.resolve(Address{Level: LevelSection, Action: ActionScheduleDay, DayID: primitive.NewObjectID()})
	assert.Contains(t, s.Caption, "Training day not found.")
}

func TestResolveMonthSchedule(t *testing.T) {
	f := newFixture(t)
	f.activate(t)

	s := f.resolve(Address{Level: LevelSection, Action: ActionMonthSchedule})
	assert.Contains(t, s.Caption, "October 2026")
	dates := 0
	for _, b := range s.Keyboard.Buttons {
		if b.Target.Action == ActionScheduleDay {
			dates++
		}
	}
	assert.Equal(t, 9, dates, "Mondays and Thursdays of October 2026")
	assert.Equal(t, f.monday.ID, findButton(t, s, "📍12").Target.DayID)
	assert.Equal(t, f.thursday.ID, findButton(t, s, "15").Target.DayID)
	prev := findButton(t, s, "◀").Target
	assert.Equal(t, [2]int{2026, 9}, [2]int{prev.Year, prev.Month})

	s = f.resolve(Address{Level: LevelSection, Action: ActionMonthSchedule, Year: 2026, Month: 2})
	assert.Contains(t, s.Caption, "February 2026")
	next := findButton(t, s, "▶").Target
	assert.Equal(t, [2]int{2026, 3}, [2]int{next.Year, next.Month})
}

func TestResolveProgramIndicator(t *testing.T) {
	f := newFixture(t)
	a := Address{Level: LevelProgram, Action: ActionPrograms, ProgramID: f.program.ID}

	s := f.resolve(a)
	assert.Equal(t, "About user_program\n\nProgram: Split\nStatus: 🔴 inactive", s.Caption)
	assert.Equal(t, []string{"📋 Training days", "⚙ Settings", "⬅ Back"}, labels(s))
	assert.Equal(t, 1, findButton(t, s, "📋 Training days").Target.Page)

	s = f.resolve(Address{Level: LevelProgramSettings, Action: ActionTurnOn, ProgramID: f.program.ID})
	assert.Contains(t, s.Caption, "Program turned on.")
	assert.Contains(t, labels(s), "🔴 Turn off")
	user, err := f.store.Users().GetByUserID(f.ctx, testUserID)
	require.NoError(t, err)
	assert.True(t, user.IsActiveProgram(f.program.ID))

	s = f.resolve(a)
	assert.Contains(t, s.Caption, "Status: 🟢 active")

	s = f.resolve(Address{Level: LevelProgramSettings, Action: ActionTurnOff, ProgramID: f.program.ID})
	assert.Contains(t, s.Caption, "Program turned off.")
	assert.Contains(t, labels(s), "🟢 Turn on")
	user, err = f.store.Users().GetByUserID(f.ctx, testUserID)
	require.NoError(t, err)
	assert.Nil(t, user.ActiveProgramID)
}

func TestResolveProgramOfAnotherUser(t *testing.T) {
	f := newFixture(t)
	s := f.d.Resolve(f.ctx, Address{Level: LevelProgram, ProgramID: f.program.ID, UserID: 2002})
	assert.Equal(t, []string{"🏠 Main menu"}, labels(s))
	assert.Equal(t, "not_found", f.lastRecord(t)["kind"])
}

func TestResolveProgramDelete(t *testing.T) {
	f := newFixture(t)
	f.activate(t)
	f.addExercise(t, f.monday.ID, "Squat")

	s := f.resolve(Address{Level: LevelProgramSettings, Action: ActionConfirmDelete, ProgramID: f.program.ID})
	assert.Equal(t, []string{"🗑 Yes, delete", "Cancel"}, labels(s))
	confirm := findButton(t, s, "🗑 Yes, delete").Target
	assert.Equal(t, f.program.ID, confirm.ProgramID)

	s = f.resolve(confirm)
	assert.Equal(t, "Program Split deleted.", s.Caption)
	assert.Equal(t, []string{"💪 Programs", "🏠 Main menu"}, labels(s))

	_, err := f.store.Programs().GetByID(f.ctx, f.program.ID)
	assert.True(t, errors.Is(err, repository.ErrNotFound))
	exercises, err := f.store.Exercises().GetByDayID(f.ctx, f.monday.ID)
	require.NoError(t, err)
	assert.Empty(t, exercises)
	user, err := f.store.Users().GetByUserID(f.ctx, testUserID)
	require.NoError(t, err)
	assert.Nil(t, user.ActiveProgramID)

	s = f.resolve(Address{Level: LevelProgram, ProgramID: f.program.ID})
	assert.Equal(t, []string{"🏠 Main menu"}, labels(s))
}

func TestResolveTrainingDaysPagination(t *testing.T) {
	f := newFixture(t)
	f.addExercise(t, f.thursday.ID, "Deadlift")

	s := f.resolve(Address{Level: LevelProgramSettings, Action: ActionTrainingDays, ProgramID: f.program.ID, Page: 0})
	assert.Contains(t, s.Caption, "Day 1 of 2 (Понедельник)")
	assert.Contains(t, s.Caption, noExercisesCaption)
	assert.Equal(t, []string{"▶", "✏ Edit day", "⬅ Back"}, labels(s))
	assert.True(t, findButton(t, s, "✏ Edit day").Target.Empty)

	s = f.resolve(Address{Level: LevelProgramSettings, Action: ActionTrainingDays, ProgramID: f.program.ID, Page: 5})
	assert.Contains(t, s.Caption, "Day 2 of 2 (Четверг)")
	assert.Contains(t, s.Caption, "🔘 Deadlift")
	assert.Equal(t, []string{"◀", "✏ Edit day", "⬅ Back"}, labels(s))
	assert.Equal(t, 1, findButton(t, s, "◀").Target.Page)
	edit := findButton(t, s, "✏ Edit day").Target
	assert.Equal(t, f.thursday.ID, edit.DayID)
	assert.False(t, edit.Empty)
}

func TestResolveDayEditor(t *testing.T) {
	f := newFixture(t)

	s := f.resolve(Address{Level: LevelDayEditor, Action: "day", ProgramID: f.program.ID, DayID: f.monday.ID, Page: 1})
	assert.Equal(t, []string{"➕ Add exercise", "⬅ Back"}, labels(s))
	assert.Equal(t, LevelProgramSettings, findButton(t, s, "⬅ Back").Target.Level)

	f.addExercise(t, f.monday.ID, "Squat")
	s = f.resolve(Address{Level: LevelDayEditor, Action: "shd/day", DayID: f.monday.ID})
	assert.Equal(t, []string{"➕ Add exercise", "⚙ Sets and reps", "↕ Reorder", "🗑 Delete", "⬅ Back"}, labels(s))
	assert.Equal(t, "shd/mv", findButton(t, s, "↕ Reorder").Target.Action)
	back := findButton(t, s, "⬅ Back").Target
	assert.Equal(t, Address{Level: LevelSection, Action: ActionScheduleDay, ProgramID: f.program.ID, DayID: f.monday.ID}, back)
}

func TestResolveMoveNotices(t *testing.T) {
	f := newFixture(t)
	a := f.addExercise(t, f.monday.ID, "A")
	b := f.addExercise(t, f.monday.ID, "B")
	c := f.addExercise(t, f.monday.ID, "C")
	at := func(action string, id primitive.ObjectID) Address {
		return Address{Level: LevelExerciseEdit, Action: action, DayID: f.monday.ID, ExerciseID: id}
	}

	s := f.resolve(at(ActionMoveUp, c.ID))
	assert.Equal(t, "Exercise moved.\n\nПонедельник\n\nYour exercises:\n\n🔘 A\n🔘 C\n🔘 B", s.Caption)
	assert.Equal(t, map[string]int{"A": 0, "C": 1, "B": 2}, f.positions(t, f.monday.ID))
	assert.Equal(t, []int{2, 2, 2, 1}, s.Keyboard.Sizes)

	s = f.resolve(at(ActionMoveUp, a.ID))
	assert.Contains(t, s.Caption, "The exercise is already first.")
	s = f.resolve(at(Scoped(ScopeSchedule, ActionMoveDown), b.ID))
	assert.Contains(t, s.Caption, "The exercise is already last.")
	assert.Equal(t, "shd/mv_up", s.Keyboard.Buttons[0].Target.Action)
	s = f.resolve(at(ActionMoveUp, primitive.NewObjectID()))
	assert.Contains(t, s.Caption, "Exercise not found.")
	assert.Equal(t, map[string]int{"A": 0, "C": 1, "B": 2}, f.positions(t, f.monday.ID))

	s = f.resolve(at(ActionMoveDown, c.ID))
	assert.Contains(t, s.Caption, "Exercise moved.")
	assert.Equal(t, map[string]int{"A": 0, "B": 1, "C": 2}, f.positions(t, f.monday.ID))
}

func TestResolveDeleteExercise(t *testing.T) {
	f := newFixture(t)
	f.addExercise(t, f.monday.ID, "A")
	b := f.addExercise(t, f.monday.ID, "B")
	f.addExercise(t, f.monday.ID, "C")
	del := Address{Level: LevelExerciseEdit, Action: ActionDelete, DayID: f.monday.ID}

	s := f.resolve(del)
	assert.Equal(t, []string{"❌ A", "❌ B", "❌ C", "⬅ Back"}, labels(s))

	s = f.resolve(findButton(t, s, "❌ B").Target)
	assert.Contains(t, s.Caption, "Exercise deleted.")
	assert.Equal(t, map[string]int{"A": 0, "C": 2}, f.positions(t, f.monday.ID), "siblings keep their positions")
	sets, err := f.store.ExerciseSets().GetByExerciseID(f.ctx, b.ID)
	require.NoError(t, err)
	assert.Empty(t, sets)

	s = f.resolve(Address{Level: LevelExerciseEdit, Action: ActionDelete, DayID: f.monday.ID, ExerciseID: b.ID})
	assert.Contains(t, s.Caption, "Exercise not found.")
}

func TestResolveEditExercisesMissingDay(t *testing.T) {
	f := newFixture(t)
	s := f.resolve(Address{Level: LevelExerciseEdit, Action: ActionEditExercises, DayID: primitive.NewObjectID()})
	assert.Equal(t, []string{"🏠 Main menu"}, labels(s))
	assert.Equal(t, testErrorMedia, s.Media)
}

func TestResolveCategories(t *testing.T) {
	f := newFixture(t)
	s := f.resolve(Address{Level: LevelExerciseEdit, Action: "shd/ctgs", DayID: f.monday.ID})

	assert.Equal(t, "Choose a category:", s.Caption)
	assert.Equal(t, []string{"Ноги (2)", "Спина (0)", "⭐ My exercises (1)", "⬅ Back"}, labels(s))
	assert.Equal(t, []int{2, 1, 1}, s.Keyboard.Sizes)
	legs := findButton(t, s, "Ноги (2)").Target
	assert.Equal(t, Address{Level: LevelExercise, Action: "shd/ctg", DayID: f.monday.ID, CategoryID: f.category}, legs)
	mine := findButton(t, s, "⭐ My exercises (1)").Target
	assert.Equal(t, LevelCustom, mine.Level)
	assert.True(t, mine.Empty)
}

func TestResolveCategoryExercises(t *testing.T) {
	f := newFixture(t)
	s := f.resolve(Address{Level: LevelExercise, Action: ActionCategory, DayID: f.monday.ID, CategoryID: f.category})

	assert.Equal(t, []string{"Squat", "⭐ Bulgarian split squat", "⬅ Back"}, labels(s))
	add := findButton(t, s, "Squat").Target
	assert.Equal(t, ActionAddAdmin, add.Action)
	assert.Equal(t, f.admin.ID, add.ExerciseID)
	assert.Equal(t, ActionAddCustom, findButton(t, s, "⭐ Bulgarian split squat").Target.Action)
}

func TestResolveAddAdminTemplate(t *testing.T) {
	f := newFixture(t)
	add := Address{Level: LevelExercise, Action: ActionAddAdmin, DayID: f.monday.ID, CategoryID: f.category, ExerciseID: f.admin.ID}

	s := f.resolve(add)
	assert.Contains(t, s.Caption, "Squat added.")
	assert.Contains(t, labels(s), "✅ Squat")

	add.Action = Scoped(ScopeSchedule, ActionAddAdmin)
	f.resolve(add)

	exercises, err := f.store.Exercises().GetByDayID(f.ctx, f.monday.ID)
	require.NoError(t, err)
	require.Len(t, exercises, 2)
	for i, e := range exercises {
		assert.Equal(t, i, e.Position)
		assert.Equal(t, domain.AdminOrigin(f.admin.ID), e.Origin)
		sets, err := f.store.ExerciseSets().GetByExerciseID(f.ctx, e.ID)
		require.NoError(t, err)
		require.Len(t, sets, 4)
		for _, set := range sets {
			assert.Equal(t, 12, set.Reps)
		}
	}
}

// A user template added through the category screen lands at the next
// position with its default sets.
func TestResolveAddCustomTemplate(t *testing.T) {
	f := newFixture(t)
	f.addExercise(t, f.monday.ID, "Squat")

	s := f.resolve(Address{Level: LevelExercise, Action: "add_custom_42", DayID: f.monday.ID, ExerciseID: f.custom.ID})

	assert.Contains(t, s.Caption, "Bulgarian split squat added.")
	assert.Contains(t, labels(s), "✅ ⭐ Bulgarian split squat")
	exercises, err := f.store.Exercises().GetByDayID(f.ctx, f.monday.ID)
	require.NoError(t, err)
	require.Len(t, exercises, 2)
	added := exercises[1]
	assert.Equal(t, "Bulgarian split squat", added.Name)
	assert.Equal(t, 1, added.Position)
	assert.Equal(t, domain.UserOrigin(f.custom.ID), added.Origin)

	sets, err := f.store.ExerciseSets().GetByExerciseID(f.ctx, added.ID)
	require.NoError(t, err)
	require.Len(t, sets, 2)
	for _, set := range sets {
		assert.Equal(t, 15, set.Reps)
	}
}

func TestResolveAddForeignTemplate(t *testing.T) {
	f := newFixture(t)
	foreign := &domain.UserExercise{CategoryID: f.category, UserID: 2002, Name: "Secret move"}
	_, err := f.store.Templates().CreateUserExercise(f.ctx, foreign)
	require.NoError(t, err)

	s := f.resolve(Address{Level: LevelExercise, Action: ActionAddCustom, DayID: f.monday.ID, CategoryID: f.category, ExerciseID: foreign.ID})
	assert.Contains(t, s.Caption, "Exercise template not found.")
	assert.NotContains(t, labels(s), "⭐ Secret move")
	exercises, err := f.store.Exercises().GetByDayID(f.ctx, f.monday.ID)
	require.NoError(t, err)
	assert.Empty(t, exercises)
}

func TestResolveExerciseSettings(t *testing.T) {
	f := newFixture(t)
	squat, err := f.plans.AddFromTemplate(f.ctx, testUserID, f.monday.ID, domain.AdminOrigin(f.admin.ID))
	require.NoError(t, err)
	at := func(action string) Address {
		return Address{Level: LevelExercise, Action: action, DayID: f.monday.ID, ExerciseID: squat.ID}
	}

	s := f.resolve(at(ActionExerciseSetting))
	assert.Equal(t, []int{3, 3, 3, 3, 2, 1}, s.Keyboard.Sizes)
	assert.Contains(t, s.Caption, "Set 4: 12 reps")

	s = f.resolve(at(ActionIncrement))
	assert.Contains(t, s.Caption, "Set 5: 12 reps")

	first := s.Keyboard.Buttons[0].Target
	require.Equal(t, ActionDecrement, first.Action)
	s = f.resolve(first)
	assert.Contains(t, s.Caption, "Set 1: 11 reps")

	inc := at(Scoped(ScopeSchedule, ActionIncrement))
	inc.SetID = first.SetID
	s = f.resolve(inc)
	assert.Contains(t, s.Caption, "Set 1: 12 reps")
	assert.Equal(t, "shd/edit_excs", findButton(t, s, "⬅ Back").Target.Action)

	for i := 0; i < 5; i++ {
		s = f.resolve(at(ActionDecrement))
	}
	assert.Contains(t, s.Caption, "An exercise keeps at least one set.")
	sets, err := f.plans.PlannedSets(f.ctx, squat.ID)
	require.NoError(t, err)
	assert.Len(t, sets, 1)
}

func TestResolveCustomExercises(t *testing.T) {
	f := newFixture(t)
	_, err := f.store.Templates().CreateUserExercise(f.ctx, &domain.UserExercise{CategoryID: f.category, UserID: 2002, Name: "Secret move"})
	require.NoError(t, err)

	s := f.resolve(Address{Level: LevelCustom, Action: ActionCustom, DayID: f.monday.ID, Empty: true})
	assert.Equal(t, "My exercises\n\n🔘 Bulgarian split squat", s.Caption)
	add := findButton(t, s, "⭐ Bulgarian split squat").Target
	assert.Equal(t, Address{Level: LevelExercise, Action: ActionAddCustom, DayID: f.monday.ID, CategoryID: f.category, ExerciseID: f.custom.ID}, add)

	s = f.resolve(Address{Level: LevelCustom, DayID: f.monday.ID, CategoryID: f.category})
	assert.Contains(t, s.Caption, "My exercises: Ноги")
}

func TestResolveTrainingProcess(t *testing.T) {
	f := newFixture(t)
	squat := f.addExercise(t, f.monday.ID, "Squat")

	s := f.resolve(Address{Level: LevelProgram, Action: ActionTrainingProcess, DayID: f.monday.ID})
	assert.Equal(t, "https://img.example/training_process.jpg", s.Media)
	assert.Contains(t, s.Caption, "🔘 Squat")
	tune := findButton(t, s, "🔘 Squat").Target
	assert.Equal(t, squat.ID, tune.ExerciseID)
	assert.Equal(t, "shd/ex_stg", tune.Action)

	s = f.resolve(Address{Level: LevelProgram, Action: ActionTrainingProcess})
	assert.Equal(t, []string{"🏠 Main menu"}, labels(s))
}
