package registry

import (
	"context"
	"fmt"

	"github.com/vovakirdan/lazytick/internal/engine"
	"github.com/vovakirdan/lazytick/internal/live"
)

// Spec implements Definition for a concrete game by bundling its typed
// rules with the codecs the host needs: script token encode/decode for
// persistence, raw-input decode for live play, and a frame renderer.
type Spec[S, R any] struct {
	GameID    string
	GameTitle string

	// Initial builds state[0] from a seed (loading game tuning as needed).
	Initial func(seed int64) (S, error)

	// Rules are the game's pure transition, termination and scoring.
	Rules engine.Rules[S, R]

	// Decode and Encode map responses to and from script tokens.
	Decode func(token string) (R, error)
	Encode func(R) string

	// FromInput maps raw live input to a response.
	FromInput func(live.RawInput) (R, error)

	// Render builds the participant's view of a state.
	Render func(S) string
}

// ID returns the game identifier.
func (sp Spec[S, R]) ID() string { return sp.GameID }

// Title returns the display name.
func (sp Spec[S, R]) Title() string { return sp.GameTitle }

// NewSession builds a typed engine session and boxes it behind the
// game-agnostic Session interface.
func (sp Spec[S, R]) NewSession(opts Options) (Session, error) {
	initial, err := sp.Initial(opts.Seed)
	if err != nil {
		return nil, fmt.Errorf("registry: cannot build initial %s state: %w", sp.GameID, err)
	}

	id := opts.Identity
	if id == "" {
		id = engine.NewIdentity()
	}

	var provider engine.ResponseProvider[S, R]
	if opts.Source != nil {
		provider = &live.Provider[S, R]{
			Source:  opts.Source,
			Sink:    opts.Sink,
			Decode:  sp.FromInput,
			Render:  sp.Render,
			Timeout: opts.PollTimeout,
			Logger:  opts.Logger,
		}
	} else {
		responses := make([]R, 0, len(opts.Script))
		for i, token := range opts.Script {
			r, err := sp.Decode(token)
			if err != nil {
				return nil, fmt.Errorf("registry: bad script token %q at index %d: %w", token, i, err)
			}
			responses = append(responses, r)
		}
		provider = &engine.Script[S, R]{Responses: responses, Repeat: opts.Repeat}
	}

	var sessOpts []engine.Option[S, R]
	if opts.Logger != nil {
		sessOpts = append(sessOpts, engine.WithLogger[S, R](opts.Logger))
	}

	sess, err := engine.NewSession(initial, id, sp.Rules, provider, sessOpts...)
	if err != nil {
		return nil, err
	}
	return &boxed[S, R]{sess: sess, spec: sp}, nil
}

// boxed adapts a typed engine session to the Session interface.
type boxed[S, R any] struct {
	sess *engine.Session[S, R]
	spec Spec[S, R]
}

func (b *boxed[S, R]) Advance(ctx context.Context, tickBudget int) (engine.Score, error) {
	return b.sess.Advance(ctx, tickBudget)
}

func (b *boxed[S, R]) Ticks() int { return b.sess.Ticks() }

func (b *boxed[S, R]) Identity() engine.Identity { return b.sess.Identity() }

func (b *boxed[S, R]) ScriptTokens() []string {
	responses := b.sess.Responses().Prefix()
	tokens := make([]string, len(responses))
	for i, r := range responses {
		tokens[i] = b.spec.Encode(r)
	}
	return tokens
}

func (b *boxed[S, R]) Frame() string {
	last, ok := b.sess.States().Last()
	if !ok {
		return ""
	}
	return b.spec.Render(last)
}
