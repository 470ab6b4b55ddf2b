// Package menu turns navigation addresses into screens for the chat bot.
package menu

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"alcyxob/fitness-bot/internal/domain"
	"alcyxob/fitness-bot/internal/repository"
	"alcyxob/fitness-bot/internal/service"
)

// PageSource returns the static content of a named page.
type PageSource interface {
	GetPage(ctx context.Context, name string) (service.Page, error)
}

// Dependencies are the stores and services resolvers read and write.
type Dependencies struct {
	Pages      PageSource
	Users      repository.UserRepository
	Programs   repository.TrainingProgramRepository
	Days       repository.TrainingDayRepository
	Exercises  repository.ExerciseRepository
	Templates  repository.TemplateRepository
	Categories repository.CategoryRepository

	ProgramActions service.ProgramService
	Plans          service.ExerciseService
	Ordering       service.OrderingService
}

// Options tune presentation and observability.
type Options struct {
	ErrorMedia   string
	WeekdayNames []string // Monday first, as stored in TrainingDay.DayOfWeek
	Location     *time.Location
	Now          func() time.Time
	Logger       *slog.Logger
}

// Page names of the banners each screen is built on.
const (
	pageMain            = "main"
	pageProfile         = "profile"
	pagePrograms        = "program"
	pageSchedule        = "schedule"
	pageUserProgram     = "user_program"
	pageTrainingProcess = "training_process"
)

type resolver func(d *Dispatcher, ctx context.Context, a Address) (Screen, error)

var resolvers = map[Route]resolver{
	RouteMain:              (*Dispatcher).mainMenu,
	RoutePrograms:          (*Dispatcher).programsCatalog,
	RouteProfile:           (*Dispatcher).profile,
	RouteSchedule:          (*Dispatcher).schedule,
	RouteScheduleDay:       (*Dispatcher).schedule,
	RouteMonthSchedule:     (*Dispatcher).monthSchedule,
	RouteTrainingProcess:   (*Dispatcher).trainingProcess,
	RouteProgram:           (*Dispatcher).program,
	RouteProgramSettings:   (*Dispatcher).programSettings,
	RouteTrainingDays:      (*Dispatcher).trainingDays,
	RouteDayEditor:         (*Dispatcher).dayEditor,
	RouteEditExercises:     (*Dispatcher).editExercises,
	RouteCategories:        (*Dispatcher).categories,
	RouteExerciseSettings:  (*Dispatcher).exerciseSettings,
	RouteCategoryExercises: (*Dispatcher).categoryExercises,
	RouteCustomExercises:   (*Dispatcher).customExercises,
}

// Dispatcher is the entry point of the menu: one Resolve call per button tap.
// It is safe for concurrent use.
type Dispatcher struct {
	deps         Dependencies
	errorMedia   string
	weekdayNames []string
	loc          *time.Location
	now          func() time.Time
	log          *slog.Logger
}

// NewDispatcher creates a Dispatcher, filling unset options with defaults.
func NewDispatcher(deps Dependencies, opts Options) *Dispatcher {
	d := &Dispatcher{
		deps:         deps,
		errorMedia:   opts.ErrorMedia,
		weekdayNames: opts.WeekdayNames,
		loc:          opts.Location,
		now:          opts.Now,
		log:          opts.Logger,
	}
	if d.errorMedia == "" {
		d.errorMedia = "https://postimg.cc/Ty7d15kq"
	}
	if len(d.weekdayNames) != 7 {
		d.weekdayNames = []string{"Понедельник", "Вторник", "Среда", "Четверг", "Пятница", "Суббота", "Воскресенье"}
	}
	if d.loc == nil {
		d.loc = time.Local
	}
	if d.now == nil {
		d.now = time.Now
	}
	if d.log == nil {
		d.log = slog.Default()
	}
	return d
}

// Resolve returns the screen for a. It never fails: errors and panics become
// an error screen and a log record. Resolve does not retry, since a resolver
// may already have written before failing.
func (d *Dispatcher) Resolve(ctx context.Context, a Address) (screen Screen) {
	start := time.Now()
	var (
		route Route
		err   error
	)
	defer func() {
		if p := recover(); p != nil {
			err = &Error{Op: route.String(), Kind: KindStoreFailure, Err: fmt.Errorf("panic: %v", p)}
			screen = errorScreen(d.errorMedia, "Failed to load the menu")
		}
		d.logResolve(ctx, a, route, time.Since(start), err)
	}()

	route, ok := Classify(a.Level, a.Action)
	if !ok {
		err = &Error{Op: "resolve", Kind: KindUnknownAddress, Err: fmt.Errorf("unknown menu level %d", int(a.Level))}
		return errorScreen(d.errorMedia, "Error: unknown menu level")
	}

	screen, err = resolvers[route](d, ctx, a)
	if err != nil {
		err = wrap(route.String(), err)
		return errorScreen(d.errorMedia, "Failed to load "+route.String())
	}
	if screen.Media == "" {
		screen.Media = d.errorMedia
	}
	return screen
}

func (d *Dispatcher) logResolve(ctx context.Context, a Address, route Route, took time.Duration, err error) {
	attrs := []slog.Attr{
		slog.Int("menu_level", int(a.Level)),
		slog.String("action", a.Action),
		slog.Int64("user_id", a.UserID),
		slog.Duration("duration", took),
	}
	if err == nil {
		attrs = append(attrs, slog.String("route", route.String()))
		d.log.LogAttrs(ctx, slog.LevelInfo, "menu.resolve", attrs...)
		return
	}

	attrs = append(attrs, slog.String("error", err.Error()), slog.String("kind", string(kindOf(err))))
	for _, id := range []struct {
		key string
		hex string
	}{
		{"training_program_id", hexOrEmpty(a.ProgramID)},
		{"training_day_id", hexOrEmpty(a.DayID)},
		{"exercise_id", hexOrEmpty(a.ExerciseID)},
		{"category_id", hexOrEmpty(a.CategoryID)},
	} {
		if id.hex != "" {
			attrs = append(attrs, slog.String(id.key, id.hex))
		}
	}
	level := slog.LevelError
	if IsKind(err, KindUnknownAddress) || IsKind(err, KindNotFound) {
		level = slog.LevelWarn
	}
	d.log.LogAttrs(ctx, level, "menu.resolve", attrs...)
}

// page loads a banner, failing when it is missing.
func (d *Dispatcher) page(ctx context.Context, name string) (service.Page, error) {
	p, err := d.deps.Pages.GetPage(ctx, name)
	if err != nil {
		return service.Page{}, fmt.Errorf("page %q: %w", name, err)
	}
	return p, nil
}

// user loads the caller; an unregistered caller is an empty user.
func (d *Dispatcher) user(ctx context.Context, userID int64) (*domain.User, error) {
	u, err := d.deps.Users.GetByUserID(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return &domain.User{UserID: userID}, nil
	}
	return u, err
}
