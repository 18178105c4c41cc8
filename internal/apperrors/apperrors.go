package apperrors

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound      = errors.New("resource not found")
	ErrAlreadyExists = errors.New("resource already exists")

	ErrInvalidRequest = errors.New("invalid request body")

	ErrInvalidOperation  = errors.New("operation is not valid for the current state")
	ErrPermissionDenied  = errors.New("actor is not allowed to perform this action")
	ErrPlanLocked        = errors.New("approved plan is read-only outside the planning window")
	ErrAbsenceDuplicated = errors.New("an approved absence already exists for this date")
)

// InvalidTransitionError reports a plan lifecycle action applied in a state
// that does not permit it.
type InvalidTransitionError struct {
	Action string
	Status string
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("cannot %s a plan in status '%s'", e.Action, e.Status)
}
func (e *InvalidTransitionError) Is(target error) bool { return target == ErrInvalidOperation }

// AbsenceExistsError reports a second APPROVED absence for the same rep and date.
type AbsenceExistsError struct {
	RepID   string
	DateKey string
}

func (e *AbsenceExistsError) Error() string {
	return fmt.Sprintf("rep '%s' already has an approved absence on %s", e.RepID, e.DateKey)
}
func (e *AbsenceExistsError) Is(target error) bool {
	return target == ErrAbsenceDuplicated || target == ErrAlreadyExists
}
