package setup

import "errors"

// Service errors
var (
	// ErrNotAuthorized is returned when a non-admin tries to drive the
	// wizard
	ErrNotAuthorized = errors.New("not authorized")

	// ErrSessionActive is returned when the room already runs a sign-up
	ErrSessionActive = errors.New("session already active for this room")

	// ErrDraftNotFound is returned when the room has no draft to act on
	ErrDraftNotFound = errors.New("draft not found")

	// ErrInvalidFormat is returned for an unknown match format
	ErrInvalidFormat = errors.New("invalid match format")

	// ErrInvalidStatus is returned for an unknown schedule certainty
	ErrInvalidStatus = errors.New("invalid schedule status")

	// ErrInvalidStep is returned for a jump to an unknown wizard step
	ErrInvalidStep = errors.New("invalid wizard step")

	// ErrIncompleteDraft is returned by Launch while format, date or
	// time is still unset
	ErrIncompleteDraft = errors.New("draft is incomplete")
)
