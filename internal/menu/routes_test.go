package menu

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		level  Level
		action string
		want   Route
	}{
		{LevelMain, "", RouteMain},
		{LevelMain, "anything", RouteMain},
		{LevelSection, "program", RoutePrograms},
		{LevelSection, "profile", RouteProfile},
		{LevelSection, "schedule", RouteSchedule},
		{LevelSection, "month_schedule", RouteMonthSchedule},
		{LevelSection, "t_day", RouteScheduleDay},
		{LevelSection, "garbage", RoutePrograms},
		{LevelProgram, "training_process", RouteTrainingProcess},
		{LevelProgram, "program", RouteProgram},
		{LevelProgram, "", RouteProgram},
		{LevelProgramSettings, "prg_stg", RouteProgramSettings},
		{LevelProgramSettings, "turn_on_prgm", RouteProgramSettings},
		{LevelProgramSettings, "turn_off_prgm", RouteProgramSettings},
		{LevelProgramSettings, "to_del_prgm", RouteProgramSettings},
		{LevelProgramSettings, "to_del_prgm_42", RouteProgramSettings},
		{LevelProgramSettings, "prgm_del_42", RouteProgramSettings},
		{LevelProgramSettings, "trd", RouteTrainingDays},
		{LevelProgramSettings, "turn_on", RouteTrainingDays},
		{LevelDayEditor, "day", RouteDayEditor},
		{LevelDayEditor, "shd/day", RouteDayEditor},
		{LevelExerciseEdit, "edit_excs", RouteEditExercises},
		{LevelExerciseEdit, "to_edit", RouteEditExercises},
		{LevelExerciseEdit, "del", RouteEditExercises},
		{LevelExerciseEdit, "mv", RouteEditExercises},
		{LevelExerciseEdit, "mv_up", RouteEditExercises},
		{LevelExerciseEdit, "shd/mv_down", RouteEditExercises},
		{LevelExerciseEdit, "shd/del", RouteEditExercises},
		{LevelExerciseEdit, "ctgs", RouteCategories},
		{LevelExerciseEdit, "delete", RouteCategories},
		{LevelExercise, "ex_stg", RouteExerciseSettings},
		{LevelExercise, "shd/ex_stg", RouteExerciseSettings},
		{LevelExercise, "➕", RouteExerciseSettings},
		{LevelExercise, "➖_set", RouteExerciseSettings},
		{LevelExercise, "shd/➕", RouteExerciseSettings},
		{LevelExercise, "ctg", RouteCategoryExercises},
		{LevelExercise, "add_custom_42", RouteCategoryExercises},
		{LevelExercise, "ex_stg2", RouteCategoryExercises},
		{LevelCustom, "custom", RouteCustomExercises},
		{LevelCustom, "", RouteCustomExercises},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%d/%s", tt.level, tt.action), func(t *testing.T) {
			got, ok := Classify(tt.level, tt.action)
			require.True(t, ok)
			assert.Equal(t, tt.want, got, "got %s", got)
		})
	}
}

func TestClassifyUnknownLevel(t *testing.T) {
	for _, level := range []Level{-1, 8, 99} {
		_, ok := Classify(level, "program")
		assert.False(t, ok, "level %d", int(level))
	}
}

func TestParseAction(t *testing.T) {
	scope, verb := ParseAction("shd/mv_up")
	assert.Equal(t, ScopeSchedule, scope)
	assert.Equal(t, "mv_up", verb)

	scope, verb = ParseAction("mv_up")
	assert.Equal(t, ScopeProgram, scope)
	assert.Equal(t, "mv_up", verb)

	assert.Equal(t, "shd/del", Scoped(ScopeSchedule, "del"))
	assert.Equal(t, "del", Scoped(ScopeProgram, "del"))
}

func TestAddressJSON(t *testing.T) {
	day := primitive.NewObjectID()
	exercise := primitive.NewObjectID()
	in := Address{Level: LevelExercise, Action: "add_custom", UserID: 7, DayID: day, ExerciseID: exercise, Page: 2, Empty: true}

	raw, err := json.Marshal(in)
	require.NoError(t, err)

	var flat map[string]any
	require.NoError(t, json.Unmarshal(raw, &flat))
	assert.Equal(t, day.Hex(), flat["training_day_id"])
	assert.Equal(t, exercise.Hex(), flat["exercise_id"])
	assert.NotContains(t, flat, "training_program_id")
	assert.NotContains(t, flat, "set_id")

	var out Address
	require.NoError(t, json.Unmarshal(raw, &out))
	assert.Equal(t, in, out)
}

func TestAddressJSONRejectsMalformedIDs(t *testing.T) {
	var a Address
	err := json.Unmarshal([]byte(`{"level":4,"training_day_id":"7"}`), &a)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "training_day_id")
}

func TestKeyboardGrid(t *testing.T) {
	var kb Keyboard
	b := button("x", Address{})
	kb.Grid(3, b, b, b, b, b, b, b)
	kb.Row()
	assert.Equal(t, []int{3, 3, 1}, kb.Sizes)
	assert.Len(t, kb.Buttons, 7)
}
