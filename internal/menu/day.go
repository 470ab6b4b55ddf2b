package menu

import (
	"context"
	"errors"
	"fmt"

	"alcyxob/fitness-bot/internal/domain"
	"alcyxob/fitness-bot/internal/service"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/sync/errgroup"
)

// dayBack leaves the day editor towards the flow it was opened from.
func dayBack(scope Scope, here Address) Button {
	if scope == ScopeSchedule {
		return backButton(here.Next(LevelSection, ActionScheduleDay))
	}
	return backButton(here.Next(LevelProgramSettings, ActionTrainingDays))
}

// ownedDay loads a training day of one of userID's programs. Days of other
// users read as missing.
func (d *Dispatcher) ownedDay(ctx context.Context, userID int64, dayID primitive.ObjectID) (*domain.TrainingDay, error) {
	day, err := d.deps.Days.GetByID(ctx, dayID)
	if err != nil {
		return nil, err
	}
	if _, err := d.deps.ProgramActions.GetProgram(ctx, userID, day.TrainingProgramID); err != nil {
		if errors.Is(err, service.ErrProgramNotFound) {
			return nil, service.ErrDayNotFound
		}
		return nil, err
	}
	return day, nil
}

// exerciseInDay loads an exercise placed in dayID.
func (d *Dispatcher) exerciseInDay(ctx context.Context, dayID, exerciseID primitive.ObjectID) (*domain.Exercise, error) {
	exercise, err := d.deps.Plans.GetExercise(ctx, exerciseID)
	if err != nil {
		return nil, err
	}
	if exercise.TrainingDayID != dayID {
		return nil, service.ErrExerciseNotFound
	}
	return exercise, nil
}

func (d *Dispatcher) dayExercises(ctx context.Context, a Address) (*domain.TrainingDay, []domain.Exercise, error) {
	day, err := d.ownedDay(ctx, a.UserID, a.DayID)
	if err != nil {
		return nil, nil, err
	}
	exercises, err := d.deps.Exercises.GetByDayID(ctx, day.ID)
	if err != nil {
		return nil, nil, err
	}
	return day, exercises, nil
}

// dayEditor lists a day's exercises. Reorder and delete are offered only
// when the day has exercises.
func (d *Dispatcher) dayEditor(ctx context.Context, a Address) (Screen, error) {
	scope, _ := ParseAction(a.Action)
	page, err := d.page(ctx, pageUserProgram)
	if err != nil {
		return Screen{}, err
	}
	day, exercises, err := d.dayExercises(ctx, a)
	if err != nil {
		return Screen{}, err
	}
	here := Address{ProgramID: day.TrainingProgramID, DayID: day.ID, Page: a.Page}
	empty := len(exercises) == 0

	var kb Keyboard
	kb.Row(button("➕ Add exercise", here.Next(LevelExerciseEdit, Scoped(scope, ActionCategories))))
	if !empty {
		kb.Row(button("⚙ Sets and reps", here.Next(LevelExerciseEdit, Scoped(scope, ActionEditExercises))))
		kb.Row(
			button("↕ Reorder", here.Next(LevelExerciseEdit, Scoped(scope, ActionMove))),
			button("🗑 Delete", here.Next(LevelExerciseEdit, Scoped(scope, ActionDelete))),
		)
	}
	kb.Row(dayBack(scope, here))
	caption := fmt.Sprintf("%s\n\n%s", day.DayOfWeek, exerciseList(exercises))
	return Screen{Caption: caption, Media: page.Media, Keyboard: kb}, nil
}

func moveNotice(result service.MoveResult, up bool) string {
	switch result {
	case service.MoveMoved:
		return "Exercise moved."
	case service.MoveAtBoundary:
		if up {
			return "The exercise is already first."
		}
		return "The exercise is already last."
	case service.MoveNotFound:
		return "Exercise not found."
	default:
		return "The list was changed at the same time. Try again."
	}
}

// editExercises hosts the edit modes of a day: tune, delete and reorder.
// Delete and move requests carrying an exercise id are applied first and
// reported as a notice.
func (d *Dispatcher) editExercises(ctx context.Context, a Address) (Screen, error) {
	scope, verb := ParseAction(a.Action)
	page, err := d.page(ctx, pageUserProgram)
	if err != nil {
		return Screen{}, err
	}
	day, err := d.ownedDay(ctx, a.UserID, a.DayID)
	if err != nil {
		return Screen{}, err
	}

	var notice string
	if !a.ExerciseID.IsZero() && (verb == ActionDelete || verb == ActionMoveUp || verb == ActionMoveDown) {
		notice, err = d.applyEdit(ctx, verb, day.ID, a.ExerciseID)
		if err != nil {
			return Screen{}, err
		}
	}

	exercises, err := d.deps.Exercises.GetByDayID(ctx, day.ID)
	if err != nil {
		return Screen{}, err
	}
	here := Address{ProgramID: day.TrainingProgramID, DayID: day.ID, Page: a.Page}

	var kb Keyboard
	for _, e := range exercises {
		switch verb {
		case ActionDelete:
			kb.Row(button("❌ "+e.Name, here.Next(LevelExerciseEdit, Scoped(scope, ActionDelete)).withExercise(e.ID)))
		case ActionMove, ActionMoveUp, ActionMoveDown:
			kb.Row(
				button("⬆ "+e.Name, here.Next(LevelExerciseEdit, Scoped(scope, ActionMoveUp)).withExercise(e.ID)),
				button("⬇", here.Next(LevelExerciseEdit, Scoped(scope, ActionMoveDown)).withExercise(e.ID)),
			)
		default:
			kb.Row(button("🔘 "+e.Name, here.Next(LevelExercise, Scoped(scope, ActionExerciseSetting)).withExercise(e.ID)))
		}
	}
	back := here.Next(LevelDayEditor, Scoped(scope, dayEditorAction))
	back.Empty = len(exercises) == 0
	kb.Row(backButton(back))

	caption := withNotice(notice, fmt.Sprintf("%s\n\n%s", day.DayOfWeek, exerciseList(exercises)))
	return Screen{Caption: caption, Media: page.Media, Keyboard: kb}, nil
}

// applyEdit deletes or moves an exercise of dayID and describes the outcome.
func (d *Dispatcher) applyEdit(ctx context.Context, verb string, dayID, exerciseID primitive.ObjectID) (string, error) {
	if _, err := d.exerciseInDay(ctx, dayID, exerciseID); err != nil {
		if errors.Is(err, service.ErrExerciseNotFound) {
			return "Exercise not found.", nil
		}
		return "", err
	}

	if verb == ActionDelete {
		err := d.deps.Plans.DeleteExercise(ctx, exerciseID)
		switch {
		case err == nil:
			return "Exercise deleted.", nil
		case errors.Is(err, service.ErrExerciseNotFound):
			return "Exercise not found.", nil
		default:
			return "", err
		}
	}

	move := d.deps.Ordering.MoveDown
	if verb == ActionMoveUp {
		move = d.deps.Ordering.MoveUp
	}
	result, err := move(ctx, exerciseID)
	if err != nil {
		return "", err
	}
	return moveNotice(result, verb == ActionMoveUp), nil
}

// categories lists template categories with counts and the user's own
// exercises as an extra entry.
func (d *Dispatcher) categories(ctx context.Context, a Address) (Screen, error) {
	scope, _ := ParseAction(a.Action)
	page, err := d.page(ctx, pageUserProgram)
	if err != nil {
		return Screen{}, err
	}
	if _, err := d.ownedDay(ctx, a.UserID, a.DayID); err != nil {
		return Screen{}, err
	}

	var (
		categories []domain.CategoryCount
		custom     []domain.UserExercise
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		categories, err = d.deps.Categories.ListWithCounts(gctx, a.UserID)
		return err
	})
	g.Go(func() (err error) {
		custom, err = d.deps.Templates.GetUserExercises(gctx, a.UserID)
		return err
	})
	if err := g.Wait(); err != nil {
		return Screen{}, err
	}

	here := Address{ProgramID: a.ProgramID, DayID: a.DayID, Page: a.Page}
	buttons := make([]Button, 0, len(categories))
	for _, c := range categories {
		label := fmt.Sprintf("%s (%d)", c.Name, c.Count)
		buttons = append(buttons, button(label, here.Next(LevelExercise, Scoped(scope, ActionCategory)).withCategory(c.ID)))
	}

	var kb Keyboard
	kb.Grid(2, buttons...)
	mine := here.Next(LevelCustom, Scoped(scope, ActionCustom))
	mine.Empty = true
	kb.Row(button(fmt.Sprintf("⭐ My exercises (%d)", len(custom)), mine))
	kb.Row(backButton(here.Next(LevelDayEditor, Scoped(scope, dayEditorAction))))

	caption := "Choose a category:"
	if len(categories) == 0 {
		caption = "No categories yet."
	}
	return Screen{Caption: caption, Media: page.Media, Keyboard: kb}, nil
}
