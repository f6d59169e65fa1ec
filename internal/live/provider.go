package live

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/lazytick/internal/engine"
)

// Provider is the live response provider. It satisfies
// engine.ResponseProvider by bridging the session to a Source and an
// optional Sink; Decode translates raw input into the game's response
// type and Render builds the participant's view of a state.
type Provider[S, R any] struct {
	Source  Source
	Sink    Sink
	Decode  func(RawInput) (R, error)
	Render  func(S) string
	Timeout time.Duration // per-poll budget; 0 means wait for ctx
	Logger  *log.Logger
}

// Respond pushes the view of the latest published state, polls the input
// capability once, and decodes the result. The identity is accepted
// explicitly like every provider; the live variant does not read it.
func (p *Provider[S, R]) Respond(ctx context.Context, _ engine.Identity, prefix []S) (R, error) {
	var zero R
	if p.Source == nil {
		return zero, fmt.Errorf("live: no input source configured: %w", ErrUnavailable)
	}

	tick := len(prefix) - 1
	if p.Sink != nil && p.Render != nil {
		if err := p.Sink.PushFrame(Frame{Tick: tick, View: p.Render(prefix[tick])}); err != nil {
			p.logger().Warn("dropping frame", "tick", tick, "error", err)
		}
	}

	pollCtx := ctx
	if p.Timeout > 0 {
		var cancel context.CancelFunc
		pollCtx, cancel = context.WithTimeout(ctx, p.Timeout)
		defer cancel()
	}

	in, err := p.Source.Poll(pollCtx)
	if err != nil {
		if ctx.Err() != nil {
			// Session-level cancellation, not a device fault.
			return zero, ctx.Err()
		}
		return zero, fmt.Errorf("live: poll failed at tick %d: %w (%w)", tick, err, ErrUnavailable)
	}

	resp, err := p.Decode(in)
	if err != nil {
		return zero, fmt.Errorf("live: cannot decode input %q at tick %d: %w", in.Key, tick, err)
	}
	return resp, nil
}

func (p *Provider[S, R]) logger() *log.Logger {
	if p.Logger != nil {
		return p.Logger
	}
	return log.New(io.Discard)
}
