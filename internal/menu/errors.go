package menu

import (
	"errors"
	"fmt"

	"alcyxob/fitness-bot/internal/repository"
	"alcyxob/fitness-bot/internal/service"
)

// Kind classifies resolution failures.
type Kind string

const (
	KindNotFound       Kind = "not_found"
	KindBoundary       Kind = "boundary"
	KindConflict       Kind = "conflict"
	KindStoreFailure   Kind = "store_failure"
	KindUnknownAddress Kind = "unknown_address"
)

// Error is a failed resolution of one route.
type Error struct {
	Op   string
	Kind Kind
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("menu %s: %s", e.Op, e.Kind)
	}
	return fmt.Sprintf("menu %s: %s: %v", e.Op, e.Kind, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// IsKind reports whether err is a menu *Error of the given kind.
func IsKind(err error, kind Kind) bool {
	var me *Error
	return errors.As(err, &me) && me.Kind == kind
}

var notFoundErrors = []error{
	repository.ErrNotFound,
	service.ErrPageNotFound,
	service.ErrProgramNotFound,
	service.ErrDayNotFound,
	service.ErrExerciseNotFound,
	service.ErrTemplateNotFound,
	service.ErrPlannedSetNotFound,
	service.ErrUserNotFound,
}

// kindOf maps store and service errors onto the menu taxonomy.
func kindOf(err error) Kind {
	var me *Error
	if errors.As(err, &me) {
		return me.Kind
	}
	for _, target := range notFoundErrors {
		if errors.Is(err, target) {
			return KindNotFound
		}
	}
	if errors.Is(err, repository.ErrConflict) {
		return KindConflict
	}
	return KindStoreFailure
}

func wrap(op string, err error) *Error {
	var me *Error
	if errors.As(err, &me) {
		return me
	}
	return &Error{Op: op, Kind: kindOf(err), Err: err}
}
