package arenacheck

import "errors"

var (
	// ErrInvalidConfig indicates unusable generator or verifier settings.
	ErrInvalidConfig = errors.New("invalid arena-check config")
	// ErrRequest indicates the service could not be queried.
	ErrRequest = errors.New("arena request failed")
	// ErrInvariant indicates the served leaderboard broke a rule.
	ErrInvariant = errors.New("leaderboard invariant violated")
)
