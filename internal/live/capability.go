// Package live implements the device-backed response provider. It is the
// explicitly impure counterpart to the engine's scripted provider: each
// tick it pushes the freshly published state's view to an output
// capability, polls an input capability for the participant's raw input,
// and decodes that into the game's response type. The host selects it at
// session construction; the engine never branches on an input mode.
package live

import (
	"context"
	"errors"
)

// RawInput is one unit of raw participant input, as delivered by the
// device capability. An empty Key means the participant did nothing this
// tick, which games decode to their idle response.
type RawInput struct {
	Key string
}

// Frame carries the participant's view of one newly published state.
type Frame struct {
	Tick int
	View string
}

// Source is the input capability. Poll is called at most once per tick and
// blocks until input arrives, the tick's grace interval passes, or ctx is
// done. A failed or unavailable device surfaces an error, which the engine
// reports as input-unavailable for that tick.
type Source interface {
	Poll(ctx context.Context) (RawInput, error)
}

// Sink is the output capability. PushFrame is invoked once per tick with
// the participant's rendered view. Delivery failure is logged by the
// provider, never fatal to the session.
type Sink interface {
	PushFrame(Frame) error
}

// ErrUnavailable reports that the input capability could not produce input
// within its allotted time.
var ErrUnavailable = errors.New("live: input unavailable")

// ErrClosed reports that the capability was shut down.
var ErrClosed = errors.New("live: capability closed")
