package domain

import "time"

// TokenPair is what a successful login or refresh hands back: the short-lived
// signed access token (JWT) and the opaque refresh token with its expiry.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
	ExpiresAt    time.Time // absolute expiry of the refresh token
}

// RollbackOutcome reports how a compensating action during registration
// played out. A failed compensation is surfaced as a distinct state so the
// caller cannot mistake a half-created account for a clean failure.
type RollbackOutcome int

const (
	// RollbackNotNeeded means the operation succeeded end to end.
	RollbackNotNeeded RollbackOutcome = iota

	// RolledBack means the operation failed and the compensating delete
	// cleaned up the partial state.
	RolledBack

	// FatallyInconsistent means the operation failed AND the compensating
	// delete failed, leaving an orphaned account row behind.
	FatallyInconsistent
)

func (o RollbackOutcome) String() string {
	switch o {
	case RollbackNotNeeded:
		return "success"
	case RolledBack:
		return "rolled_back"
	case FatallyInconsistent:
		return "fatally_inconsistent"
	default:
		return "unknown"
	}
}
