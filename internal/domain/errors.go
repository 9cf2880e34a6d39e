package domain

import "errors"

// Kind groups match errors by how a driver should react to them.
type Kind string

const (
	KindNotFound         Kind = "not_found"
	KindDuplicate        Kind = "duplicate"
	KindInvalidOperation Kind = "invalid_operation"
)

// Error is a match error tagged with its kind. Two errors match under errors.Is
// when they share a kind, so callers can test against ErrNotFound, ErrDuplicate
// or ErrInvalidOperation without knowing the specific sentinel.
type Error struct {
	Kind Kind
	Msg  string
}

func (e *Error) Error() string {
	return e.Msg
}

// Is reports whether target is an *Error of the same kind.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	// Kind-only errors (empty message) act as wildcards for their kind.
	if t.Msg == "" {
		return e.Kind == t.Kind
	}
	return e.Kind == t.Kind && e.Msg == t.Msg
}

func newError(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Msg: msg}
}

var (
	// ErrNotFound matches every error of kind KindNotFound.
	ErrNotFound = &Error{Kind: KindNotFound}
	// ErrDuplicate matches every error of kind KindDuplicate.
	ErrDuplicate = &Error{Kind: KindDuplicate}
	// ErrInvalidOperation matches every error of kind KindInvalidOperation.
	ErrInvalidOperation = &Error{Kind: KindInvalidOperation}
)

var (
	// ErrPlayerNotFound is returned when an id does not belong to a player in the match.
	ErrPlayerNotFound = newError(KindNotFound, "player not found in match")
	// ErrQuestionNotFound is returned when a question id is not in the pool.
	ErrQuestionNotFound = newError(KindNotFound, "question not found")
	// ErrCategoryNotFound is returned by registry lookups for unknown categories.
	ErrCategoryNotFound = newError(KindNotFound, "category not found")
	// ErrSnapshotNotFound is returned when there is no history left to undo.
	ErrSnapshotNotFound = newError(KindNotFound, "no snapshot to restore")

	// ErrPlayerExists is returned when a player id is registered twice.
	ErrPlayerExists = newError(KindDuplicate, "player already registered")
	// ErrCategoryConflict is returned when a category id is reused for a different name.
	ErrCategoryConflict = newError(KindDuplicate, "category id already used by another name")

	ErrAlreadyAssigned     = newError(KindInvalidOperation, "question already assigned")
	ErrNotAssigned         = newError(KindInvalidOperation, "question not assigned")
	ErrAlreadyAnswered     = newError(KindInvalidOperation, "question already answered")
	ErrWrongPlayer         = newError(KindInvalidOperation, "question is assigned to another player")
	ErrNoQuestionHeld      = newError(KindInvalidOperation, "player holds no question")
	ErrPlayerBusy          = newError(KindInvalidOperation, "player already holds a question")
	ErrNoSkipsLeft         = newError(KindInvalidOperation, "no skips left")
	ErrSkipPassedQuestion  = newError(KindInvalidOperation, "a passed question cannot be skipped")
	ErrNotEnoughPlayers    = newError(KindInvalidOperation, "match needs exactly two players")
	ErrMatchFull           = newError(KindInvalidOperation, "match already has two players")
	ErrMatchNotWaiting     = newError(KindInvalidOperation, "match is not waiting for players")
	ErrMatchNotInProgress  = newError(KindInvalidOperation, "match is not in progress")
	ErrMatchNotFinished    = newError(KindInvalidOperation, "match is not finished")
	ErrNotPlayersTurn      = newError(KindInvalidOperation, "it is not this player's turn")
	ErrPassBusy            = newError(KindInvalidOperation, "another question is already passed")
	ErrNoTie               = newError(KindInvalidOperation, "match did not end in a tie")
	ErrTieBreakerActive    = newError(KindInvalidOperation, "tie-breaker already running")
	ErrTieBreakerNotActive = newError(KindInvalidOperation, "no tie-breaker running")
	ErrInvalidRoundBudget  = newError(KindInvalidOperation, "round budget must be positive")
)
