package menu

import (
	"encoding/json"
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Address identifies a requested screen: a level, an action scoped to that
// level and the context ids the action refers to. Zero ids are absent.
type Address struct {
	Level      Level
	Action     string
	UserID     int64
	ProgramID  primitive.ObjectID
	DayID      primitive.ObjectID
	ExerciseID primitive.ObjectID
	CategoryID primitive.ObjectID
	SetID      primitive.ObjectID
	Page       int
	Empty      bool
	Year       int
	Month      int
}

// Next returns the address of a screen reached from a. The program, day and
// page context is carried over; everything else starts empty.
func (a Address) Next(level Level, action string) Address {
	return Address{
		Level:     level,
		Action:    action,
		ProgramID: a.ProgramID,
		DayID:     a.DayID,
		Page:      a.Page,
	}
}

func (a Address) withExercise(id primitive.ObjectID) Address { a.ExerciseID = id; return a }
func (a Address) withCategory(id primitive.ObjectID) Address { a.CategoryID = id; return a }
func (a Address) withSet(id primitive.ObjectID) Address { a.SetID = id; return a }
func (a Address) withDay(id primitive.ObjectID) Address { a.DayID = id; return a }
func (a Address) withPage(page int) Address { a.Page = page; return a }

// Scope tells which flow an editor screen was entered from, so its back
// buttons return there.
type Scope int

const (
	ScopeProgram Scope = iota
	ScopeSchedule
)

const schedulePrefix = "shd/"

// ParseAction splits the schedule scope marker off an action.
func ParseAction(action string) (Scope, string) {
	if verb, ok := strings.CutPrefix(action, schedulePrefix); ok {
		return ScopeSchedule, verb
	}
	return ScopeProgram, action
}

// Scoped prefixes verb with the scope marker when needed.
func Scoped(scope Scope, verb string) string {
	if scope == ScopeSchedule {
		return schedulePrefix + verb
	}
	return verb
}

// addressJSON is the flat wire form of an Address.
type addressJSON struct {
	Level      int    `json:"level"`
	Action     string `json:"action,omitempty"`
	UserID     int64  `json:"user_id,omitempty"`
	ProgramID  string `json:"training_program_id,omitempty"`
	DayID      string `json:"training_day_id,omitempty"`
	ExerciseID string `json:"exercise_id,omitempty"`
	CategoryID string `json:"category_id,omitempty"`
	SetID      string `json:"set_id,omitempty"`
	Page       int    `json:"page,omitempty"`
	Empty      bool   `json:"empty,omitempty"`
	Year       int    `json:"year,omitempty"`
	Month      int    `json:"month,omitempty"`
}

func hexOrEmpty(id primitive.ObjectID) string {
	if id.IsZero() {
		return ""
	}
	return id.Hex()
}

func parseID(field, s string) (primitive.ObjectID, error) {
	if s == "" {
		return primitive.NilObjectID, nil
	}
	id, err := primitive.ObjectIDFromHex(s)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("invalid %s: %w", field, err)
	}
	return id, nil
}

func (a Address) MarshalJSON() ([]byte, error) {
	return json.Marshal(addressJSON{
		Level:      int(a.Level),
		Action:     a.Action,
		UserID:     a.UserID,
		ProgramID:  hexOrEmpty(a.ProgramID),
		DayID:      hexOrEmpty(a.DayID),
		ExerciseID: hexOrEmpty(a.ExerciseID),
		CategoryID: hexOrEmpty(a.CategoryID),
		SetID:      hexOrEmpty(a.SetID),
		Page:       a.Page,
		Empty:      a.Empty,
		Year:       a.Year,
		Month:      a.Month,
	})
}

func (a *Address) UnmarshalJSON(b []byte) error {
	var raw addressJSON
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	out := Address{
		Level:  Level(raw.Level),
		Action: raw.Action,
		UserID: raw.UserID,
		Page:   raw.Page,
		Empty:  raw.Empty,
		Year:   raw.Year,
		Month:  raw.Month,
	}
	ids := []struct {
		field string
		src   string
		dst   *primitive.ObjectID
	}{
		{"training_program_id", raw.ProgramID, &out.ProgramID},
		{"training_day_id", raw.DayID, &out.DayID},
		{"exercise_id", raw.ExerciseID, &out.ExerciseID},
		{"category_id", raw.CategoryID, &out.CategoryID},
		{"set_id", raw.SetID, &out.SetID},
	}
	for _, id := range ids {
		v, err := parseID(id.field, id.src)
		if err != nil {
			return err
		}
		*id.dst = v
	}
	*a = out
	return nil
}
