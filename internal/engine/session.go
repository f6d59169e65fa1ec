// Package engine implements a demand-driven game simulation core.
//
// A session advances a game by growing two mutually dependent append-only
// sequences: state snapshots and participant responses. Nothing is
// computed ahead of demand; each tick the scheduler asks the response
// provider for response[i] (which may read the whole published state
// prefix [0..i]), then derives state[i+1] from state[i] and response[i]
// through a fixed three-phase pure transition, then checks the new state
// for termination. The game rules and the response source are pluggable;
// the engine owns only the coordination, ordering and error contract.
package engine

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
)

// Session drives one play-through. It exclusively owns the two sequence
// stores for its lifetime; the response provider and any diagnostics code
// may read published prefixes concurrently, but only the session appends.
//
// Advance must not be called concurrently with itself. It may be called
// repeatedly: after a NonTerminationError or a CancelledError the session
// resumes from the published prefix, recomputing nothing.
type Session[S, R any] struct {
	rules     Rules[S, R]
	provider  ResponseProvider[S, R]
	identity  Identity
	states    *Store[S]
	responses *Store[R]
	logger    *log.Logger

	done  bool
	score Score
}

// Option configures a session.
type Option[S, R any] func(*Session[S, R])

// WithLogger attaches a structured logger for tick-level diagnostics.
// The session is silent without one.
func WithLogger[S, R any](logger *log.Logger) Option[S, R] {
	return func(s *Session[S, R]) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewSession creates a session from an externally supplied initial state,
// a participant identity, the game rules and a response provider. The
// initial state is published as state[0] immediately.
func NewSession[S, R any](initial S, id Identity, rules Rules[S, R], provider ResponseProvider[S, R], opts ...Option[S, R]) (*Session[S, R], error) {
	switch {
	case rules.Apply == nil:
		return nil, errors.New("engine: rules require an Apply phase")
	case rules.Terminal == nil:
		return nil, errors.New("engine: rules require a Terminal predicate")
	case rules.Score == nil:
		return nil, errors.New("engine: rules require a Score function")
	case provider == nil:
		return nil, errors.New("engine: a response provider is required")
	case id == "":
		return nil, errors.New("engine: a participant identity is required")
	}

	s := &Session[S, R]{
		rules:     rules,
		provider:  provider,
		identity:  id,
		states:    NewStore[S](),
		responses: NewStore[R](),
		logger:    log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.states.Append(initial)
	return s, nil
}

// Identity returns the session's participant identity token.
func (s *Session[S, R]) Identity() Identity { return s.identity }

// States returns the session's state sequence for read-only inspection.
func (s *Session[S, R]) States() *Store[S] { return s.states }

// Responses returns the session's response sequence for read-only
// inspection (and for persisting a replay record).
func (s *Session[S, R]) Responses() *Store[R] { return s.responses }

// Ticks returns the number of completed ticks (published responses).
func (s *Session[S, R]) Ticks() int { return s.responses.Len() }

// respondRequest asks the responder for response[tick] given the published
// state prefix [0..tick].
type respondRequest[S any] struct {
	tick   int
	prefix []S
}

type respondResult[R any] struct {
	resp R
	err  error
}

// stepRequest asks the stepper for state[tick+1] from state[tick] and
// response[tick].
type stepRequest[S, R any] struct {
	tick  int
	state S
	resp  R
}

type stepResult[S any] struct {
	state S
	phase string
	err   error
}

// Advance runs the session for at most tickBudget ticks and returns the
// score of the first terminal state it publishes.
//
// The response and transition computations run as two cooperating workers
// joined to the scheduler by one-slot rendezvous channels; the scheduler
// suspends while either is in flight and at no other point. Cancelling ctx
// unblocks any pending rendezvous, discards the in-flight unpublished
// element and returns a CancelledError; everything already published stays
// intact. On budget exhaustion it returns a NonTerminationError; calling
// Advance again continues the same session with a fresh budget.
func (s *Session[S, R]) Advance(ctx context.Context, tickBudget int) (Score, error) {
	if s.done {
		return s.score, nil
	}
	if tickBudget <= 0 {
		return 0, fmt.Errorf("engine: tick budget must be positive, got %d", tickBudget)
	}

	// The externally supplied initial state (or the tail of a resumed
	// prefix) may already be terminal; nothing needs computing then.
	if last, ok := s.states.Last(); ok && s.rules.Terminal(last) {
		return s.finish(last)
	}

	wctx, cancel := context.WithCancel(ctx)
	defer cancel()

	respReq := make(chan respondRequest[S])
	respOut := make(chan respondResult[R], 1)
	stepReq := make(chan stepRequest[S, R])
	stepOut := make(chan stepResult[S], 1)
	go s.respondLoop(wctx, respReq, respOut)
	go s.stepLoop(wctx, stepReq, stepOut)

	s.logger.Debug("advancing session",
		"identity", s.identity, "from_tick", s.responses.Len(), "budget", tickBudget)

	for spent := 0; spent < tickBudget; spent++ {
		tick := s.responses.Len()

		if s.responses.Len() == s.states.Len() {
			// A previous Advance was cancelled between publishing the
			// response and publishing its state. Finish that tick without
			// recomputing the response.
			tick = s.responses.Len() - 1
		} else {
			resp, err := s.requestResponse(ctx, tick, respReq, respOut)
			if err != nil {
				return 0, err
			}
			s.responses.Append(resp)
		}

		state, _ := s.states.At(tick)
		resp, _ := s.responses.At(tick)
		next, err := s.requestStep(ctx, tick, state, resp, stepReq, stepOut)
		if err != nil {
			return 0, err
		}
		s.states.Append(next)

		if s.rules.Terminal(next) {
			return s.finish(next)
		}
	}

	s.logger.Debug("tick budget exhausted",
		"identity", s.identity, "tick", s.responses.Len(), "budget", tickBudget)
	return 0, &NonTerminationError{Budget: tickBudget, Tick: s.responses.Len()}
}

// requestResponse performs the response-side rendezvous for one tick.
func (s *Session[S, R]) requestResponse(ctx context.Context, tick int, req chan<- respondRequest[S], out <-chan respondResult[R]) (R, error) {
	var zero R

	select {
	case req <- respondRequest[S]{tick: tick, prefix: s.states.Prefix()}:
	case <-ctx.Done():
		return zero, &CancelledError{Tick: tick, Err: ctx.Err()}
	}

	select {
	case res := <-out:
		if res.err != nil {
			if ctx.Err() != nil {
				return zero, &CancelledError{Tick: tick, Err: ctx.Err()}
			}
			return zero, &InputUnavailableError{Tick: tick, Err: res.err}
		}
		return res.resp, nil
	case <-ctx.Done():
		return zero, &CancelledError{Tick: tick, Err: ctx.Err()}
	}
}

// requestStep performs the transition-side rendezvous for one tick.
func (s *Session[S, R]) requestStep(ctx context.Context, tick int, state S, resp R, req chan<- stepRequest[S, R], out <-chan stepResult[S]) (S, error) {
	var zero S

	select {
	case req <- stepRequest[S, R]{tick: tick, state: state, resp: resp}:
	case <-ctx.Done():
		return zero, &CancelledError{Tick: tick, Err: ctx.Err()}
	}

	select {
	case res := <-out:
		if res.err != nil {
			return zero, &TransitionError{Tick: tick, Phase: res.phase, Err: res.err}
		}
		return res.state, nil
	case <-ctx.Done():
		return zero, &CancelledError{Tick: tick, Err: ctx.Err()}
	}
}

// respondLoop is the response generator worker. One request in flight at a
// time; results hand off through a one-slot channel so the worker never
// outlives an abandoned rendezvous.
func (s *Session[S, R]) respondLoop(ctx context.Context, req <-chan respondRequest[S], out chan<- respondResult[R]) {
	for {
		select {
		case r := <-req:
			resp, err := s.provider.Respond(ctx, s.identity, r.prefix)
			select {
			case out <- respondResult[R]{resp: resp, err: err}:
			case <-ctx.Done():
				return
			}
		case <-ctx.Done():
			return
		}
	}
}

// stepLoop is the state generator worker.
func (s *Session[S, R]) stepLoop(ctx context.Context, req <-chan stepRequest[S, R], out chan<- stepResult[S]) {
	for {
		select {
		case r := <-req:
			next, phase, err := s.rules.transition(r.state, r.resp)
			select {
			case out <- stepResult[S]{state: next, phase: phase, err: err}:
			case <-ctx.Done():
				return
			}
		case <-ctx.Done():
			return
		}
	}
}

// finish scores the terminal state and caches the result.
func (s *Session[S, R]) finish(terminal S) (Score, error) {
	s.done = true
	s.score = s.rules.Score(terminal)
	s.logger.Debug("session terminated",
		"identity", s.identity, "tick", s.responses.Len(), "score", s.score)
	return s.score, nil
}
