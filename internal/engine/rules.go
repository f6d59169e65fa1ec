package engine

// Score is the outcome extracted from the terminal state of a session.
type Score int

// Phase is a pure value transform applied to a state during a transition.
// It must be deterministic: no clock, no ambient randomness, no external
// reads. Randomness a game needs is carried inside the state itself (for
// example a seeded generator value advanced each tick).
type Phase[S any] func(S) (S, error)

// Rules bundles the pure functions a host supplies to define a game.
// Apply, Integrate and Resolve make up the transition from state[i] and
// response[i] to state[i+1], always composed in that fixed order:
//
//  1. Apply folds the response's effect into the entities it targets.
//  2. Integrate advances motion and time-driven behavior for one tick.
//  3. Resolve detects interactions (collisions, captures, scoring) and
//     applies their effects.
//
// Terminal and Score classify and value states; Terminal is only ever
// asked about the most recently published state, and Score is applied
// exactly once, to the first terminal state.
type Rules[S, R any] struct {
	Apply     func(S, R) (S, error)
	Integrate Phase[S]
	Resolve   Phase[S]
	Terminal  func(S) bool
	Score     func(S) Score
}

// transition runs the three phases in order, reporting which phase failed.
func (r Rules[S, R]) transition(state S, resp R) (S, string, error) {
	next, err := r.Apply(state, resp)
	if err != nil {
		return next, "apply", err
	}
	if r.Integrate != nil {
		if next, err = r.Integrate(next); err != nil {
			return next, "integrate", err
		}
	}
	if r.Resolve != nil {
		if next, err = r.Resolve(next); err != nil {
			return next, "resolve", err
		}
	}
	return next, "", nil
}
