package engine

import (
	"errors"
	"fmt"
)

// ErrScriptExhausted is returned by a scripted provider when its response
// list runs out before the session terminates. The session surfaces it
// wrapped in an InputUnavailableError.
var ErrScriptExhausted = errors.New("engine: script exhausted")

// TransitionError reports a transition phase that rejected its state and
// response combination. The fault is deterministic: retrying with the same
// inputs cannot succeed, so the session aborts and leaves the decision to
// the caller.
type TransitionError struct {
	Tick  int    // index of the tick being computed
	Phase string // "apply", "integrate" or "resolve"
	Err   error
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("engine: transition %s phase failed at tick %d: %v", e.Phase, e.Tick, e.Err)
}

func (e *TransitionError) Unwrap() error { return e.Err }

// InputUnavailableError reports that the response provider could not
// produce the response for a tick, either because a live capability timed
// out or failed, or because a script ran out of entries.
type InputUnavailableError struct {
	Tick int
	Err  error
}

func (e *InputUnavailableError) Error() string {
	return fmt.Sprintf("engine: no response available at tick %d: %v", e.Tick, e.Err)
}

func (e *InputUnavailableError) Unwrap() error { return e.Err }

// NonTerminationError reports that the tick budget ran out before a
// terminal state appeared. This is a policy signal rather than a defect:
// the published prefix stays intact and Advance may be called again with a
// fresh budget to continue the same session.
type NonTerminationError struct {
	Budget int // ticks granted to the Advance call that gave up
	Tick   int // total ticks published when the budget ran out
}

func (e *NonTerminationError) Error() string {
	return fmt.Sprintf("engine: no terminal state within %d ticks (at tick %d)", e.Budget, e.Tick)
}

// CancelledError reports caller-initiated cancellation. No score is
// produced; the published prefix remains inspectable and the session
// resumable.
type CancelledError struct {
	Tick int // tick that was in flight when cancellation hit
	Err  error
}

func (e *CancelledError) Error() string {
	return fmt.Sprintf("engine: session cancelled at tick %d: %v", e.Tick, e.Err)
}

func (e *CancelledError) Unwrap() error { return e.Err }
