package menu

import (
	"fmt"
	"strings"
)

// Level is the depth of a screen in the navigation tree.
type Level int

const (
	LevelMain            Level = iota // main menu
	LevelSection                      // programs, profile, schedule
	LevelProgram                      // program card or live session
	LevelProgramSettings              // program settings or day list
	LevelDayEditor                    // training day editor
	LevelExerciseEdit                 // exercise editor or category list
	LevelExercise                     // exercise settings or category contents
	LevelCustom                       // custom exercises
)

// Valid reports whether l is one of the known levels.
func (l Level) Valid() bool {
	return l >= LevelMain && l <= LevelCustom
}

// Route is the screen a (level, action) pair resolves to.
type Route int

const (
	RouteMain Route = iota
	RoutePrograms
	RouteProfile
	RouteSchedule
	RouteMonthSchedule
	RouteScheduleDay
	RouteTrainingProcess
	RouteProgram
	RouteProgramSettings
	RouteTrainingDays
	RouteDayEditor
	RouteEditExercises
	RouteCategories
	RouteExerciseSettings
	RouteCategoryExercises
	RouteCustomExercises
)

var routeNames = [...]string{
	RouteMain:              "main",
	RoutePrograms:          "programs",
	RouteProfile:           "profile",
	RouteSchedule:          "schedule",
	RouteMonthSchedule:     "month_schedule",
	RouteScheduleDay:       "schedule_day",
	RouteTrainingProcess:   "training_process",
	RouteProgram:           "program",
	RouteProgramSettings:   "program_settings",
	RouteTrainingDays:      "training_days",
	RouteDayEditor:         "day_editor",
	RouteEditExercises:     "edit_exercises",
	RouteCategories:        "categories",
	RouteExerciseSettings:  "exercise_settings",
	RouteCategoryExercises: "category_exercises",
	RouteCustomExercises:   "custom_exercises",
}

func (r Route) String() string {
	if r >= 0 && int(r) < len(routeNames) {
		return routeNames[r]
	}
	return fmt.Sprintf("Route(%d)", int(r))
}

// Actions understood by the routing tables and the resolvers.
const (
	ActionMain            = "main"
	ActionPrograms        = "program"
	ActionProfile         = "profile"
	ActionSchedule        = "schedule"
	ActionMonthSchedule   = "month_schedule"
	ActionScheduleDay     = "t_day"
	ActionTrainingProcess = "training_process"
	ActionProgramSettings = "prg_stg"
	ActionTurnOn          = "turn_on_prgm"
	ActionTurnOff         = "turn_off_prgm"
	ActionConfirmDelete   = "to_del_prgm"
	ActionDeleteProgram   = "prgm_del"
	ActionTrainingDays    = "trd"
	ActionEditExercises   = "edit_excs"
	ActionToEdit          = "to_edit"
	ActionDelete          = "del"
	ActionMove            = "mv"
	ActionMoveUp          = "mv_up"
	ActionMoveDown        = "mv_down"
	ActionCategories      = "ctgs"
	ActionExerciseSetting = "ex_stg"
	ActionIncrement       = "➕"
	ActionDecrement       = "➖"
	ActionCategory        = "ctg"
	ActionAddAdmin        = "add_admin"
	ActionAddCustom       = "add_custom"
	ActionCustom          = "custom"
)

type prefixRoute struct {
	prefix string
	route  Route
}

// routeTable classifies the actions of one level: exact literals first,
// then prefixes, then the level's default.
type routeTable struct {
	exact    map[string]Route
	prefixes []prefixRoute
	fallback Route
}

func (t routeTable) classify(action string) Route {
	if r, ok := t.exact[action]; ok {
		return r
	}
	for _, p := range t.prefixes {
		if strings.HasPrefix(action, p.prefix) {
			return p.route
		}
	}
	return t.fallback
}

// withSchedule registers every literal plain and with the schedule prefix.
func withSchedule(route Route, actions ...string) map[string]Route {
	m := make(map[string]Route, 2*len(actions))
	for _, a := range actions {
		m[a] = route
		m[schedulePrefix+a] = route
	}
	return m
}

var routeTables = [...]routeTable{
	LevelMain: {fallback: RouteMain},
	LevelSection: {
		exact: map[string]Route{
			ActionPrograms:      RoutePrograms,
			ActionProfile:       RouteProfile,
			ActionSchedule:      RouteSchedule,
			ActionMonthSchedule: RouteMonthSchedule,
			ActionScheduleDay:   RouteScheduleDay,
		},
		fallback: RoutePrograms,
	},
	LevelProgram: {
		exact:    map[string]Route{ActionTrainingProcess: RouteTrainingProcess},
		fallback: RouteProgram,
	},
	LevelProgramSettings: {
		exact: map[string]Route{
			ActionProgramSettings: RouteProgramSettings,
			ActionTurnOn:          RouteProgramSettings,
			ActionTurnOff:         RouteProgramSettings,
		},
		prefixes: []prefixRoute{
			{ActionConfirmDelete, RouteProgramSettings},
			{ActionDeleteProgram, RouteProgramSettings},
		},
		fallback: RouteTrainingDays,
	},
	LevelDayEditor: {fallback: RouteDayEditor},
	LevelExerciseEdit: {
		exact: withSchedule(RouteEditExercises,
			ActionEditExercises, ActionToEdit, ActionDelete, ActionMove, ActionMoveUp, ActionMoveDown),
		fallback: RouteCategories,
	},
	LevelExercise: {
		exact: withSchedule(RouteExerciseSettings, ActionExerciseSetting),
		prefixes: []prefixRoute{
			{ActionIncrement, RouteExerciseSettings},
			{ActionDecrement, RouteExerciseSettings},
			{schedulePrefix + ActionIncrement, RouteExerciseSettings},
			{schedulePrefix + ActionDecrement, RouteExerciseSettings},
		},
		fallback: RouteCategoryExercises,
	},
	LevelCustom: {fallback: RouteCustomExercises},
}

// Classify selects the route for action within level. ok is false for an
// unknown level; unknown actions fall through to the level's default.
func Classify(level Level, action string) (Route, bool) {
	if !level.Valid() {
		return 0, false
	}
	return routeTables[level].classify(action), true
}
