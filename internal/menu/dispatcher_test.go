package menu

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"sync/atomic"
	"testing"
	"time"

	"alcyxob/fitness-bot/internal/domain"
	"alcyxob/fitness-bot/internal/repository/memory"
	"alcyxob/fitness-bot/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type spyPages struct {
	calls atomic.Int32
}

func (s *spyPages) GetPage(context.Context, string) (service.Page, error) {
	s.calls.Add(1)
	return service.Page{Media: "https://img.example/spy.jpg", Description: "spy"}, nil
}

type panicPages struct{}

func (panicPages) GetPage(context.Context, string) (service.Page, error) {
	panic("broken page source")
}

func requireRenderable(t *testing.T, s Screen, msg string) {
	t.Helper()
	require.NotEmpty(t, s.Caption, msg)
	require.NotEmpty(t, s.Media, msg)
	require.NotEmpty(t, s.Keyboard.Buttons, msg)
	total := 0
	for _, n := range s.Keyboard.Sizes {
		require.Positive(t, n, msg)
		total += n
	}
	require.Equal(t, len(s.Keyboard.Buttons), total, msg)
}

func TestResolveMainMenu(t *testing.T) {
	f := newFixture(t)
	s := f.resolve(Address{Level: LevelMain, Action: ActionMain})

	assert.Equal(t, "About main", s.Caption)
	assert.Equal(t, "https://img.example/main.jpg", s.Media)
	assert.Equal(t, []string{"💪 Programs", "👤 Profile", "📅 Schedule"}, labels(s))
	assert.Equal(t, []int{2, 1}, s.Keyboard.Sizes)
	assert.Equal(t, Address{Level: LevelSection, Action: ActionSchedule}, findButton(t, s, "📅 Schedule").Target)

	rec := f.lastRecord(t)
	assert.Equal(t, "menu.resolve", rec["msg"])
	assert.Equal(t, "INFO", rec["level"])
	assert.Equal(t, "main", rec["route"])
	assert.EqualValues(t, testUserID, rec["user_id"])
	assert.Contains(t, rec, "duration")
	assert.NotContains(t, rec, "error")
}

func TestResolveMissingBanner(t *testing.T) {
	f := newFixture(t)
	empty := memory.New()
	f.d = f.dispatcher(service.NewPageService(empty.Banners(), nil, time.Minute))

	for _, a := range []Address{
		{Level: LevelMain},
		{Level: LevelSection, Action: ActionProfile},
		{Level: LevelProgram, ProgramID: f.program.ID},
	} {
		s := f.resolve(a)
		assert.Equal(t, testErrorMedia, s.Media)
		assert.Equal(t, []string{"🏠 Main menu"}, labels(s))
		assert.NotContains(t, s.Caption, "About")

		rec := f.lastRecord(t)
		assert.Equal(t, "not_found", rec["kind"])
		assert.Equal(t, "WARN", rec["level"])
	}
}

func TestResolveUnknownLevel(t *testing.T) {
	var logs bytes.Buffer
	pages := &spyPages{}
	// Nil stores: any store call would panic and be logged as a store failure.
	d := NewDispatcher(Dependencies{Pages: pages}, Options{
		ErrorMedia: testErrorMedia,
		Logger:     slog.New(slog.NewJSONHandler(&logs, nil)),
	})
	f := &fixture{logs: &logs}

	s := d.Resolve(context.Background(), Address{Level: 99, Action: "x"})

	assert.Equal(t, errorScreen(testErrorMedia, "Error: unknown menu level"), s)
	assert.Zero(t, pages.calls.Load())
	rec := f.lastRecord(t)
	assert.Equal(t, "unknown_address", rec["kind"])
	assert.EqualValues(t, 99, rec["menu_level"])
	assert.Equal(t, "x", rec["action"])
}

func TestResolveRecoversPanic(t *testing.T) {
	f := newFixture(t)
	f.d = f.dispatcher(panicPages{})

	s := f.resolve(Address{Level: LevelMain})

	assert.Equal(t, errorScreen(testErrorMedia, "Failed to load the menu"), s)
	rec := f.lastRecord(t)
	assert.Equal(t, "store_failure", rec["kind"])
	assert.Equal(t, "ERROR", rec["level"])
	assert.Contains(t, rec["error"], "broken page source")
}

func TestResolveEmptyMediaFallsBack(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.store.PutBanner(f.ctx, domain.Banner{Name: pageMain, Description: "Hello"}))

	s := f.resolve(Address{Level: LevelMain})
	assert.Equal(t, "Hello", s.Caption)
	assert.Equal(t, testErrorMedia, s.Media)
}

const fuzzAlphabet = "abcdefghijklmnopqrstuvwxyz_/0123456789"

var fuzzFragments = []string{
	"", "shd/", "mv", "mv_up", "del", "ex_stg", "➕", "➖", "add_", "add_custom", "ctg",
	"to_edit", "prg_stg", "turn_on_prgm", "trd", "t_day", "schedule", "custom", "🤖", "\x00",
}

func randomAction(r *rand.Rand) string {
	var b []byte
	for i, n := 0, r.Intn(3); i < n; i++ {
		b = append(b, fuzzFragments[r.Intn(len(fuzzFragments))]...)
	}
	for i, n := 0, r.Intn(8); i < n; i++ {
		b = append(b, fuzzAlphabet[r.Intn(len(fuzzAlphabet))])
	}
	return string(b)
}

// Every level answers every action with a renderable screen.
func TestResolveRoutingTotality(t *testing.T) {
	f := newFixture(t)
	f.activate(t)
	squat := f.addExercise(t, f.monday.ID, "Squat")
	r := rand.New(rand.NewSource(42))

	ids := func(real primitive.ObjectID) primitive.ObjectID {
		switch r.Intn(3) {
		case 0:
			return primitive.NilObjectID
		case 1:
			return primitive.NewObjectID()
		default:
			return real
		}
	}

	for level := LevelMain; level <= LevelCustom; level++ {
		for i := 0; i < 150; i++ {
			a := Address{
				Level:      level,
				Action:     randomAction(r),
				ProgramID:  ids(f.program.ID),
				DayID:      ids(f.monday.ID),
				ExerciseID: ids(squat.ID),
				CategoryID: ids(f.category),
				Page:       r.Intn(5) - 1,
				Empty:      r.Intn(2) == 0,
				Year:       2020 + r.Intn(10),
				Month:      r.Intn(14) - 1,
			}
			requireRenderable(t, f.resolve(a), fmt.Sprintf("level %d action %q", level, a.Action))
		}
	}
}

func TestResolveConcurrentMoves(t *testing.T) {
	f := newFixture(t)
	var list []primitive.ObjectID
	for _, name := range []string{"A", "B", "C", "D", "E"} {
		list = append(list, f.addExercise(t, f.monday.ID, name).ID)
	}

	done := make(chan Screen)
	for i := 0; i < 20; i++ {
		action := ActionMoveUp
		if i%2 == 1 {
			action = Scoped(ScopeSchedule, ActionMoveDown)
		}
		a := Address{Level: LevelExerciseEdit, Action: action, DayID: f.monday.ID, ExerciseID: list[i%len(list)]}
		go func() { done <- f.resolve(a) }()
	}
	for i := 0; i < 20; i++ {
		requireRenderable(t, <-done, "concurrent move")
	}

	exercises, err := f.store.Exercises().GetByDayID(f.ctx, f.monday.ID)
	require.NoError(t, err)
	require.Len(t, exercises, 5)
	for i, e := range exercises {
		assert.Equal(t, i, e.Position, e.Name)
	}
}
