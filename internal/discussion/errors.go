package discussion

import (
	"errors"
)

// ValidationError covers everything the caller can fix and resubmit. These
// never reach the gateways.
type ValidationError string

func (e ValidationError) Error() string { return string(e) }

const (
	ErrBodyEmpty         ValidationError = "comment body is empty"
	ErrBodyTooShort      ValidationError = "comment body is too short"
	ErrBodyTooLong       ValidationError = "comment body is too long"
	ErrParentNotTopLevel ValidationError = "parent must be a top-level comment"
	ErrInvalidVoteValue  ValidationError = "vote value must be +1 or -1"
	ErrUnknownComment    ValidationError = "no such comment in this discussion"
)

// ErrAuthenticationRequired is returned by gateways when the caller has no
// authenticated identity. Surfaced as-is, never retried.
var ErrAuthenticationRequired = errors.New("authentication required")
