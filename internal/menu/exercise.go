package menu

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"alcyxob/fitness-bot/internal/domain"
	"alcyxob/fitness-bot/internal/repository"
	"alcyxob/fitness-bot/internal/service"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/sync/errgroup"
)

const addPrefix = "add_"

// exerciseSettings tunes planned sets: the glyph actions without a set id
// add or drop a set, with a set id they change that set's reps by one.
func (d *Dispatcher) exerciseSettings(ctx context.Context, a Address) (Screen, error) {
	scope, verb := ParseAction(a.Action)
	page, err := d.page(ctx, pageUserProgram)
	if err != nil {
		return Screen{}, err
	}
	exercise, err := d.deps.Plans.GetExercise(ctx, a.ExerciseID)
	if err != nil {
		return Screen{}, err
	}
	if !a.DayID.IsZero() && exercise.TrainingDayID != a.DayID {
		return Screen{}, service.ErrExerciseNotFound
	}
	if _, err := d.ownedDay(ctx, a.UserID, exercise.TrainingDayID); err != nil {
		if errors.Is(err, service.ErrDayNotFound) {
			return Screen{}, service.ErrExerciseNotFound
		}
		return Screen{}, err
	}

	var notice string
	if notice, err = d.tuneSets(ctx, verb, exercise.ID, a.SetID); err != nil {
		return Screen{}, err
	}

	sets, err := d.deps.Plans.PlannedSets(ctx, exercise.ID)
	if err != nil {
		return Screen{}, err
	}

	here := Address{ProgramID: a.ProgramID, DayID: exercise.TrainingDayID, Page: a.Page, ExerciseID: exercise.ID}
	at := func(action string) Address {
		return here.Next(LevelExercise, Scoped(scope, action)).withExercise(exercise.ID)
	}

	var kb Keyboard
	var b strings.Builder
	b.WriteString(exercise.Name)
	if exercise.Description != "" {
		b.WriteString("\n\n")
		b.WriteString(exercise.Description)
	}
	b.WriteString("\n")
	for i, s := range sets {
		label := fmt.Sprintf("Set %d: %d reps", i+1, s.Reps)
		fmt.Fprintf(&b, "\n%s", label)
		kb.Row(
			button(ActionDecrement, at(ActionDecrement).withSet(s.ID)),
			button(label, at(ActionExerciseSetting)),
			button(ActionIncrement, at(ActionIncrement).withSet(s.ID)),
		)
	}
	kb.Row(
		button(ActionDecrement+" Set", at(ActionDecrement)),
		button(ActionIncrement+" Set", at(ActionIncrement)),
	)
	kb.Row(backButton(here.Next(LevelExerciseEdit, Scoped(scope, ActionEditExercises))))
	return Screen{Caption: withNotice(notice, b.String()), Media: page.Media, Keyboard: kb}, nil
}

// tuneSets applies a glyph action to the planned sets of exerciseID. A set id
// must name one of that exercise's sets.
func (d *Dispatcher) tuneSets(ctx context.Context, verb string, exerciseID, setID primitive.ObjectID) (string, error) {
	increment := strings.HasPrefix(verb, ActionIncrement)
	if !increment && !strings.HasPrefix(verb, ActionDecrement) {
		return "", nil
	}

	if setID.IsZero() {
		if increment {
			return "", d.deps.Plans.AddPlannedSet(ctx, exerciseID)
		}
		removed, err := d.deps.Plans.RemovePlannedSet(ctx, exerciseID)
		if err == nil && !removed {
			return "An exercise keeps at least one set.", nil
		}
		return "", err
	}

	sets, err := d.deps.Plans.PlannedSets(ctx, exerciseID)
	if err != nil {
		return "", err
	}
	if !slices.ContainsFunc(sets, func(s domain.ExerciseSet) bool { return s.ID == setID }) {
		return "Set not found.", nil
	}
	delta := -1
	if increment {
		delta = 1
	}
	if _, err := d.deps.Plans.AdjustReps(ctx, setID, delta); err != nil {
		if errors.Is(err, service.ErrPlannedSetNotFound) {
			return "Set not found.", nil
		}
		return "", err
	}
	return "", nil
}

// templateCategory finds the category of the template an add request points at.
func (d *Dispatcher) templateCategory(ctx context.Context, origin domain.Origin) (primitive.ObjectID, error) {
	if origin.Kind == domain.OriginUser {
		t, err := d.deps.Templates.GetUserExercise(ctx, origin.TemplateID)
		if err != nil {
			return primitive.NilObjectID, err
		}
		return t.CategoryID, nil
	}
	t, err := d.deps.Templates.GetAdminExercise(ctx, origin.TemplateID)
	if err != nil {
		return primitive.NilObjectID, err
	}
	return t.CategoryID, nil
}

func placed(exercises []domain.Exercise) map[domain.Origin]bool {
	out := make(map[domain.Origin]bool, len(exercises))
	for _, e := range exercises {
		out[e.Origin] = true
	}
	return out
}

// categoryExercises browses the templates of a category. An add_ action with
// an exercise id first appends that template to the current day. The day
// must belong to the caller.
func (d *Dispatcher) categoryExercises(ctx context.Context, a Address) (Screen, error) {
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
	categoryID := a.CategoryID
	if strings.HasPrefix(verb, addPrefix) && !a.ExerciseID.IsZero() {
		origin := domain.AdminOrigin(a.ExerciseID)
		if strings.Contains(verb, ActionCustom) {
			origin = domain.UserOrigin(a.ExerciseID)
		}
		exercise, err := d.deps.Plans.AddFromTemplate(ctx, a.UserID, day.ID, origin)
		switch {
		case err == nil:
			notice = fmt.Sprintf("%s added.", exercise.Name)
		case errors.Is(err, service.ErrTemplateNotFound):
			notice = "Exercise template not found."
		case errors.Is(err, repository.ErrConflict):
			notice = "The list was changed at the same time. Try again."
		default:
			return Screen{}, err
		}
		if categoryID.IsZero() && err == nil {
			if categoryID, err = d.templateCategory(ctx, origin); err != nil {
				return Screen{}, err
			}
		}
	}

	// Without a category the user's own exercises are offered.
	if categoryID.IsZero() || a.Empty {
		screen, err := d.customExercises(ctx, Address{UserID: a.UserID, Action: a.Action, ProgramID: a.ProgramID, DayID: day.ID, Page: a.Page})
		if err != nil {
			return Screen{}, err
		}
		screen.Caption = withNotice(notice, screen.Caption)
		return screen, nil
	}
	here := Address{ProgramID: a.ProgramID, DayID: day.ID, Page: a.Page}
	back := backButton(here.Next(LevelExerciseEdit, Scoped(scope, ActionCategories)))

	var (
		category  *domain.Category
		admin     []domain.AdminExercise
		custom    []domain.UserExercise
		exercises []domain.Exercise
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		category, err = d.deps.Categories.GetByID(gctx, categoryID)
		return err
	})
	g.Go(func() (err error) {
		admin, err = d.deps.Templates.GetAdminExercisesByCategory(gctx, categoryID)
		return err
	})
	g.Go(func() (err error) {
		custom, err = d.deps.Templates.GetUserExercisesByCategory(gctx, categoryID, a.UserID)
		return err
	})
	g.Go(func() (err error) {
		exercises, err = d.deps.Exercises.GetByDayID(gctx, day.ID)
		return err
	})
	if err := g.Wait(); err != nil {
		return Screen{}, err
	}

	inDay := placed(exercises)
	mark := func(origin domain.Origin, name string) string {
		if inDay[origin] {
			return "✅ " + name
		}
		return name
	}

	here = here.withCategory(category.ID)
	var kb Keyboard
	for _, t := range admin {
		target := here.Next(LevelExercise, Scoped(scope, ActionAddAdmin)).withCategory(category.ID).withExercise(t.ID)
		kb.Row(button(mark(domain.AdminOrigin(t.ID), t.Name), target))
	}
	for _, t := range custom {
		target := here.Next(LevelExercise, Scoped(scope, ActionAddCustom)).withCategory(category.ID).withExercise(t.ID)
		kb.Row(button(mark(domain.UserOrigin(t.ID), "⭐ "+t.Name), target))
	}
	kb.Row(back)

	caption := category.Name
	if len(admin)+len(custom) == 0 {
		caption += "\n\n" + noExercisesCaption
	} else {
		caption += "\n\nTap an exercise to add it to the day."
	}
	return Screen{Caption: withNotice(notice, caption), Media: page.Media, Keyboard: kb}, nil
}

// customExercises lists the user's own templates: all of them when the
// address is flagged empty or carries no category, otherwise one category.
func (d *Dispatcher) customExercises(ctx context.Context, a Address) (Screen, error) {
	scope, _ := ParseAction(a.Action)
	page, err := d.page(ctx, pageUserProgram)
	if err != nil {
		return Screen{}, err
	}

	var (
		templates []domain.UserExercise
		title     = "My exercises"
	)
	if a.Empty || a.CategoryID.IsZero() {
		templates, err = d.deps.Templates.GetUserExercises(ctx, a.UserID)
	} else {
		var category *domain.Category
		category, err = d.deps.Categories.GetByID(ctx, a.CategoryID)
		if err == nil {
			title = fmt.Sprintf("My exercises: %s", category.Name)
			templates, err = d.deps.Templates.GetUserExercisesByCategory(ctx, category.ID, a.UserID)
		}
	}
	if err != nil {
		return Screen{}, err
	}

	here := Address{ProgramID: a.ProgramID, DayID: a.DayID, Page: a.Page}
	var kb Keyboard
	for _, t := range templates {
		target := here.Next(LevelExercise, Scoped(scope, ActionAddCustom)).withCategory(t.CategoryID).withExercise(t.ID)
		kb.Row(button("⭐ "+t.Name, target))
	}
	kb.Row(backButton(here.Next(LevelExerciseEdit, Scoped(scope, ActionCategories))))
	return Screen{Caption: title + "\n\n" + templateList(templates), Media: page.Media, Keyboard: kb}, nil
}
