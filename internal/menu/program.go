package menu

import (
	"context"
	"fmt"
	"strings"

	"alcyxob/fitness-bot/internal/domain"
	"alcyxob/fitness-bot/internal/pagination"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/sync/errgroup"
)

const dayEditorAction = "day"

func statusLine(active bool) string {
	if active {
		return "Status: 🟢 active"
	}
	return "Status: 🔴 inactive"
}

// ownedProgram loads the program together with the caller, whose active
// program drives the on/off indicator.
func (d *Dispatcher) ownedProgram(ctx context.Context, a Address) (*domain.TrainingProgram, *domain.User, error) {
	var (
		program *domain.TrainingProgram
		user    *domain.User
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		program, err = d.deps.ProgramActions.GetProgram(gctx, a.UserID, a.ProgramID)
		return err
	})
	g.Go(func() (err error) {
		user, err = d.user(gctx, a.UserID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return program, user, nil
}

func (d *Dispatcher) program(ctx context.Context, a Address) (Screen, error) {
	page, err := d.page(ctx, pageUserProgram)
	if err != nil {
		return Screen{}, err
	}
	program, user, err := d.ownedProgram(ctx, a)
	if err != nil {
		return Screen{}, err
	}
	caption := fmt.Sprintf("%s\n\nProgram: %s\n%s", page.Description, program.Name, statusLine(user.IsActiveProgram(program.ID)))

	here := Address{ProgramID: program.ID}
	var kb Keyboard
	kb.Row(button("📋 Training days", here.withPage(1).Next(LevelProgramSettings, ActionTrainingDays)))
	kb.Row(button("⚙ Settings", here.Next(LevelProgramSettings, ActionProgramSettings)))
	kb.Row(backButton(Address{Level: LevelSection, Action: ActionPrograms}))
	return Screen{Caption: caption, Media: page.Media, Keyboard: kb}, nil
}

// trainingProcess is the live session: the day's exercises without program chrome.
func (d *Dispatcher) trainingProcess(ctx context.Context, a Address) (Screen, error) {
	page, err := d.page(ctx, pageTrainingProcess)
	if err != nil {
		return Screen{}, err
	}
	day, err := d.ownedDay(ctx, a.UserID, a.DayID)
	if err != nil {
		return Screen{}, err
	}
	exercises, err := d.deps.Exercises.GetByDayID(ctx, day.ID)
	if err != nil {
		return Screen{}, err
	}

	here := Address{ProgramID: day.TrainingProgramID, DayID: day.ID}
	var kb Keyboard
	for _, e := range exercises {
		kb.Row(button("🔘 "+e.Name, here.Next(LevelExercise, Scoped(ScopeSchedule, ActionExerciseSetting)).withExercise(e.ID)))
	}
	kb.Row(backButton(here.Next(LevelSection, ActionScheduleDay)))
	caption := fmt.Sprintf("%s\n\n%s\n%s", page.Description, day.DayOfWeek, exerciseList(exercises))
	return Screen{Caption: caption, Media: page.Media, Keyboard: kb}, nil
}

func (d *Dispatcher) programSettings(ctx context.Context, a Address) (Screen, error) {
	page, err := d.page(ctx, pageUserProgram)
	if err != nil {
		return Screen{}, err
	}
	program, user, err := d.ownedProgram(ctx, a)
	if err != nil {
		return Screen{}, err
	}
	here := Address{ProgramID: program.ID}
	var kb Keyboard

	switch {
	case strings.HasPrefix(a.Action, ActionDeleteProgram):
		if err := d.deps.ProgramActions.Delete(ctx, a.UserID, program.ID); err != nil {
			return Screen{}, err
		}
		kb.Row(button("💪 Programs", Address{Level: LevelSection, Action: ActionPrograms}))
		kb.Row(mainMenuButton())
		return Screen{Caption: fmt.Sprintf("Program %s deleted.", program.Name), Media: page.Media, Keyboard: kb}, nil

	case strings.HasPrefix(a.Action, ActionConfirmDelete):
		kb.Row(
			button("🗑 Yes, delete", here.Next(LevelProgramSettings, ActionDeleteProgram)),
			button("Cancel", here.Next(LevelProgramSettings, ActionProgramSettings)),
		)
		caption := fmt.Sprintf("Delete program %s with all its days, exercises and sets?", program.Name)
		return Screen{Caption: caption, Media: page.Media, Keyboard: kb}, nil
	}

	active := user.IsActiveProgram(program.ID)
	var notice string
	switch a.Action {
	case ActionTurnOn:
		id := program.ID
		if err := d.deps.ProgramActions.SetActive(ctx, a.UserID, &id); err != nil {
			return Screen{}, err
		}
		active, notice = true, "Program turned on."
	case ActionTurnOff:
		if active {
			if err := d.deps.ProgramActions.SetActive(ctx, a.UserID, nil); err != nil {
				return Screen{}, err
			}
		}
		active, notice = false, "Program turned off."
	}

	if active {
		kb.Row(button("🔴 Turn off", here.Next(LevelProgramSettings, ActionTurnOff)))
	} else {
		kb.Row(button("🟢 Turn on", here.Next(LevelProgramSettings, ActionTurnOn)))
	}
	kb.Row(button("🗑 Delete program", here.Next(LevelProgramSettings, ActionConfirmDelete)))
	kb.Row(backButton(here.Next(LevelProgram, ActionPrograms)))
	caption := withNotice(notice, fmt.Sprintf("Settings of %s\n%s", program.Name, statusLine(active)))
	return Screen{Caption: caption, Media: page.Media, Keyboard: kb}, nil
}

// trainingDays pages through the program's days, one day per page.
func (d *Dispatcher) trainingDays(ctx context.Context, a Address) (Screen, error) {
	page, err := d.page(ctx, pageUserProgram)
	if err != nil {
		return Screen{}, err
	}
	program, err := d.deps.ProgramActions.GetProgram(ctx, a.UserID, a.ProgramID)
	if err != nil {
		return Screen{}, err
	}
	days, err := d.deps.Days.GetByProgramID(ctx, program.ID)
	if err != nil {
		return Screen{}, err
	}

	here := Address{ProgramID: program.ID}
	back := backButton(here.Next(LevelProgram, ActionPrograms))
	var kb Keyboard
	p, ok := pagination.Paginate(days, a.Page)
	if !ok {
		kb.Row(back)
		return Screen{Caption: withNotice("This program has no training days.", program.Name), Media: page.Media, Keyboard: kb}, nil
	}

	exercises, err := d.deps.Exercises.GetByDayID(ctx, p.Item.ID)
	if err != nil {
		return Screen{}, err
	}
	here = here.withDay(p.Item.ID).withPage(p.Number)
	caption := fmt.Sprintf("%s\nDay %d of %d (%s)\n\n%s", program.Name, p.Number, p.Pages, p.Item.DayOfWeek, exerciseList(exercises))

	kb.Row(pageButtons(here, p)...)
	edit := here.Next(LevelDayEditor, dayEditorAction)
	edit.Empty = len(exercises) == 0
	kb.Row(button("✏ Edit day", edit))
	kb.Row(back)
	return Screen{Caption: caption, Media: page.Media, Keyboard: kb}, nil
}

func pageButtons(here Address, p pagination.Page[domain.TrainingDay]) []Button {
	var out []Button
	if p.HasPrevious {
		out = append(out, button("◀", here.withDay(primitive.NilObjectID).withPage(p.Number-1).Next(LevelProgramSettings, ActionTrainingDays)))
	}
	if p.HasNext {
		out = append(out, button("▶", here.withDay(primitive.NilObjectID).withPage(p.Number+1).Next(LevelProgramSettings, ActionTrainingDays)))
	}
	return out
}
