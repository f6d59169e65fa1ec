package engine

import "context"

// ResponseProvider produces the participant's response for one tick.
//
// The prefix is the full ordered run of published states up to and
// including the current tick; a provider may inspect any of it (a player
// watches the evolution, not a single frame) but can never see beyond it.
// The identity argument is mandatory on every call (see Identity).
//
// Providers come in two flavors, chosen by the host when the session is
// constructed: pure (Script, ProviderFunc) for replay and testing, and
// capability-backed live providers that poll a real input device and are
// explicitly impure. The session does not know or care which it holds.
type ResponseProvider[S, R any] interface {
	Respond(ctx context.Context, id Identity, prefix []S) (R, error)
}

// ProviderFunc adapts a function to the ResponseProvider interface.
type ProviderFunc[S, R any] func(ctx context.Context, id Identity, prefix []S) (R, error)

// Respond calls f.
func (f ProviderFunc[S, R]) Respond(ctx context.Context, id Identity, prefix []S) (R, error) {
	return f(ctx, id, prefix)
}
