package engine

import "context"

// Script is a pure response provider backed by an ordered list of canned
// responses indexed by tick. It is total over its list; past the end it
// either repeats from the start (Repeat) or reports ErrScriptExhausted,
// which the session surfaces as an InputUnavailableError.
//
// A Script together with the initial state and identity is sufficient to
// reproduce a session's score bit-exactly.
type Script[S, R any] struct {
	Responses []R
	Repeat    bool
}

// NewScript creates a finite script from the given responses.
func NewScript[S, R any](responses ...R) *Script[S, R] {
	return &Script[S, R]{Responses: responses}
}

// Respond returns the scripted response for the tick implied by the prefix
// length. The identity is accepted (and required) even though the lookup
// does not read it; see Identity for why it is part of the signature.
func (s *Script[S, R]) Respond(_ context.Context, _ Identity, prefix []S) (R, error) {
	tick := len(prefix) - 1
	if tick < 0 {
		tick = 0
	}

	n := len(s.Responses)
	if n == 0 {
		var zero R
		return zero, ErrScriptExhausted
	}
	if tick >= n {
		if !s.Repeat {
			var zero R
			return zero, ErrScriptExhausted
		}
		tick %= n
	}
	return s.Responses[tick], nil
}
