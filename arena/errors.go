package arena

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// Failure classes for core operations. Handlers translate these to HTTP
// status codes; callers inside a sweep use them to decide whether to skip a
// single match or give up on the cycle.
var (
	// ErrValidation means the input was malformed. Nothing was mutated.
	ErrValidation = errors.New("validation failure")
	// ErrNotEligible means a qualification, judge or credibility gate
	// failed. Retrying without a state change will fail again.
	ErrNotEligible = errors.New("not eligible")
	// ErrConflict means a duplicate submission, a repeated vote, or a
	// wrong-state transition. Existing data is untouched.
	ErrConflict = errors.New("conflict")
	// ErrNotFound means an unknown match, participant or prompt.
	ErrNotFound = errors.New("not found")
	// ErrTransient means an external generation or evaluation call failed.
	// Safe to retry with backoff; never papered over with a fabricated vote.
	ErrTransient = errors.New("transient unavailable")
	// ErrLockHeld means the sweep lease is taken. Skip the cycle.
	ErrLockHeld = errors.New("sweep already running")
)

// isUniqueViolation reports whether err is a Postgres unique-constraint
// violation (SQLSTATE 23505). Other storage errors must not be mistaken
// for conflicts, or callers would give up on retryable failures.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
