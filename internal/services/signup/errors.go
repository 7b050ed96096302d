package signup

import "errors"

// Service errors
var (
	// ErrInvalidFormat is returned for an unknown match format
	ErrInvalidFormat = errors.New("invalid match format")

	// ErrSessionAlreadyActive is returned when the room already runs a
	// sign-up
	ErrSessionAlreadyActive = errors.New("session already active for this room")

	// ErrNoActiveSession is returned when an operation needs an active
	// session and the room has none, or the target session is closed
	ErrNoActiveSession = errors.New("no active session")

	// ErrSessionNotFound is returned for an unknown session ID
	ErrSessionNotFound = errors.New("session not found")

	// ErrNotAuthorized is returned when the requester may not perform
	// the action
	ErrNotAuthorized = errors.New("not authorized")

	// ErrIncompleteDraft is returned when a draft lacks what a launch
	// requires
	ErrIncompleteDraft = errors.New("draft is incomplete")
)
