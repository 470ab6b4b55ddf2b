package menu

import (
	"context"
	"fmt"
	"strings"
	"time"

	"alcyxob/fitness-bot/internal/domain"
	"alcyxob/fitness-bot/internal/service"

	"golang.org/x/sync/errgroup"
)

func (d *Dispatcher) mainMenu(ctx context.Context, a Address) (Screen, error) {
	page, err := d.page(ctx, pageMain)
	if err != nil {
		return Screen{}, err
	}
	var kb Keyboard
	kb.Row(
		button("💪 Programs", a.Next(LevelSection, ActionPrograms)),
		button("👤 Profile", a.Next(LevelSection, ActionProfile)),
	)
	kb.Row(button("📅 Schedule", a.Next(LevelSection, ActionSchedule)))
	return Screen{Caption: page.Description, Media: page.Media, Keyboard: kb}, nil
}

func (d *Dispatcher) programsCatalog(ctx context.Context, a Address) (Screen, error) {
	var (
		page     service.Page
		user     *domain.User
		programs []domain.TrainingProgram
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		page, err = d.page(gctx, pagePrograms)
		return err
	})
	g.Go(func() (err error) {
		user, err = d.user(gctx, a.UserID)
		return err
	})
	g.Go(func() (err error) {
		programs, err = d.deps.Programs.GetByUserID(gctx, a.UserID)
		return err
	})
	if err := g.Wait(); err != nil {
		return Screen{}, err
	}

	var kb Keyboard
	for _, p := range programs {
		label := p.Name
		if user.IsActiveProgram(p.ID) {
			label = "🟢 " + label
		}
		target := Address{Level: LevelProgram, Action: ActionPrograms, ProgramID: p.ID}
		kb.Row(button(label, target))
	}
	kb.Row(mainMenuButton())

	caption := page.Description
	if len(programs) == 0 {
		caption = withNotice("You have no programs yet.", caption)
	}
	return Screen{Caption: caption, Media: page.Media, Keyboard: kb}, nil
}

func (d *Dispatcher) profile(ctx context.Context, a Address) (Screen, error) {
	page, err := d.page(ctx, pageProfile)
	if err != nil {
		return Screen{}, err
	}
	user, err := d.user(ctx, a.UserID)
	if err != nil {
		return Screen{}, err
	}
	name := user.Name
	if name == "" {
		name = "not set"
	}
	caption := fmt.Sprintf("%s\n\nName: %s\nWeight: %g kg", page.Description, name, user.Weight)

	var kb Keyboard
	kb.Row(mainMenuButton())
	return Screen{Caption: caption, Media: page.Media, Keyboard: kb}, nil
}

// noActiveProgram invites the user to pick a program instead of failing.
func noActiveProgram(page service.Page) Screen {
	var kb Keyboard
	kb.Row(button("💪 Programs", Address{Level: LevelSection, Action: ActionPrograms}))
	kb.Row(mainMenuButton())
	return Screen{
		Caption:  withNotice("You have no active program. Turn one on in its settings.", page.Description),
		Media:    page.Media,
		Keyboard: kb,
	}
}

func dayKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// weekdayName maps t onto the configured Monday-first names.
func (d *Dispatcher) weekdayName(t time.Time) string {
	return d.weekdayNames[(int(t.Weekday())+6)%7]
}

// activeDays returns the user's active program and its days indexed by
// normalized day-of-week name. program is nil without an active program.
func (d *Dispatcher) activeDays(ctx context.Context, userID int64) (*domain.User, []domain.TrainingDay, error) {
	user, err := d.user(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	if user.ActiveProgramID == nil {
		return user, nil, nil
	}
	days, err := d.deps.Days.GetByProgramID(ctx, *user.ActiveProgramID)
	if err != nil {
		return nil, nil, err
	}
	return user, days, nil
}

// schedule shows today's training day, or the day picked from the calendar.
func (d *Dispatcher) schedule(ctx context.Context, a Address) (Screen, error) {
	page, err := d.page(ctx, pageSchedule)
	if err != nil {
		return Screen{}, err
	}
	user, days, err := d.activeDays(ctx, a.UserID)
	if err != nil {
		return Screen{}, err
	}
	if user.ActiveProgramID == nil {
		return noActiveProgram(page), nil
	}

	var day *domain.TrainingDay
	if a.Action == ActionScheduleDay && !a.DayID.IsZero() {
		for i := range days {
			if days[i].ID == a.DayID {
				day = &days[i]
				break
			}
		}
	} else {
		byName := make(map[string]*domain.TrainingDay, len(days))
		for i := range days {
			if _, dup := byName[dayKey(days[i].DayOfWeek)]; !dup {
				byName[dayKey(days[i].DayOfWeek)] = &days[i]
			}
		}
		day = byName[dayKey(d.weekdayName(d.now().In(d.loc)))]
	}

	here := Address{Level: LevelSection, ProgramID: *user.ActiveProgramID}
	var kb Keyboard
	if day == nil {
		kb.Row(button("🗓 Month", here.Next(LevelSection, ActionMonthSchedule)))
		kb.Row(mainMenuButton())
		caption := withNotice("Training day not found.", page.Description)
		if a.Action != ActionScheduleDay {
			caption = withNotice("No training planned for today.", page.Description)
		}
		return Screen{Caption: caption, Media: page.Media, Keyboard: kb}, nil
	}

	exercises, err := d.deps.Exercises.GetByDayID(ctx, day.ID)
	if err != nil {
		return Screen{}, err
	}
	list := exerciseList(exercises)
	if len(exercises) == 0 {
		list = "No exercises for today."
	}
	caption := fmt.Sprintf("%s\n\n%s\n%s", page.Description, day.DayOfWeek, list)

	here = here.withDay(day.ID)
	if len(exercises) > 0 {
		kb.Row(button("▶ Start training", here.Next(LevelProgram, ActionTrainingProcess)))
	}
	edit := here.Next(LevelDayEditor, Scoped(ScopeSchedule, dayEditorAction))
	edit.Empty = len(exercises) == 0
	kb.Row(button("✏ Edit day", edit), button("🗓 Month", here.Next(LevelSection, ActionMonthSchedule)))
	kb.Row(mainMenuButton())
	return Screen{Caption: caption, Media: page.Media, Keyboard: kb}, nil
}

// monthSchedule is a calendar of one month with a button for every date
// whose weekday has a training day in the active program.
func (d *Dispatcher) monthSchedule(ctx context.Context, a Address) (Screen, error) {
	page, err := d.page(ctx, pageSchedule)
	if err != nil {
		return Screen{}, err
	}
	user, days, err := d.activeDays(ctx, a.UserID)
	if err != nil {
		return Screen{}, err
	}
	if user.ActiveProgramID == nil {
		return noActiveProgram(page), nil
	}

	now := d.now().In(d.loc)
	year, month := now.Year(), now.Month()
	if a.Year > 0 && a.Month >= 1 && a.Month <= 12 {
		year, month = a.Year, time.Month(a.Month)
	}
	first := time.Date(year, month, 1, 0, 0, 0, 0, d.loc)

	byName := make(map[string]domain.TrainingDay, len(days))
	for _, td := range days {
		if _, dup := byName[dayKey(td.DayOfWeek)]; !dup {
			byName[dayKey(td.DayOfWeek)] = td
		}
	}

	here := Address{Level: LevelSection, ProgramID: *user.ActiveProgramID}
	var dates []Button
	for t := first; t.Month() == month; t = t.AddDate(0, 0, 1) {
		td, ok := byName[dayKey(d.weekdayName(t))]
		if !ok {
			continue
		}
		label := fmt.Sprintf("%02d", t.Day())
		if t.Year() == now.Year() && t.YearDay() == now.YearDay() {
			label = "📍" + label
		}
		dates = append(dates, button(label, here.withDay(td.ID).Next(LevelSection, ActionScheduleDay)))
	}

	var kb Keyboard
	kb.Grid(7, dates...)
	prev, next := first.AddDate(0, -1, 0), first.AddDate(0, 1, 0)
	prevTarget := here.Next(LevelSection, ActionMonthSchedule)
	prevTarget.Year, prevTarget.Month = prev.Year(), int(prev.Month())
	nextTarget := here.Next(LevelSection, ActionMonthSchedule)
	nextTarget.Year, nextTarget.Month = next.Year(), int(next.Month())
	kb.Row(button("◀", prevTarget), button("▶", nextTarget))
	kb.Row(button("📅 Today", here.Next(LevelSection, ActionSchedule)), mainMenuButton())

	caption := fmt.Sprintf("%s\n\n%s %d", page.Description, month, year)
	if len(dates) == 0 {
		caption = withNotice("No training days this month.", caption)
	}
	return Screen{Caption: caption, Media: page.Media, Keyboard: kb}, nil
}
