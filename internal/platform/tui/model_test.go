package tui

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/vovakirdan/lazytick/internal/engine"
	"github.com/vovakirdan/lazytick/internal/live"
	"github.com/vovakirdan/lazytick/internal/registry"
	"github.com/vovakirdan/lazytick/internal/storage"
)

// testDefinition satisfies registry.Definition for summary rendering.
type testDefinition struct{}

func (testDefinition) ID() string    { return "counter" }
func (testDefinition) Title() string { return "Counter" }
func (testDefinition) NewSession(registry.Options) (registry.Session, error) {
	return nil, errors.New("not used in these tests")
}

// fakeSession is a finished play-through for exercising the model without
// a Bubble Tea program.
type fakeSession struct {
	ticks int
}

func (f *fakeSession) Advance(context.Context, int) (engine.Score, error) { return 0, nil }
func (f *fakeSession) Ticks() int                                         { return f.ticks }
func (f *fakeSession) Identity() engine.Identity                          { return "fake-session" }
func (f *fakeSession) ScriptTokens() []string                             { return nil }
func (f *fakeSession) Frame() string                                      { return "" }

func TestHandleDoneReleasesFramePump(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	m := PlayModel{
		source: live.NewKeySource(0, 1),
		frames: live.NewFrameBuffer(1),
		ctx:    ctx,
		cancel: cancel,
	}

	next, _ := m.handleDone(sessionDoneMsg{score: 3})
	done, ok := next.(PlayModel)
	if !ok {
		t.Fatalf("handleDone returned %T, expected PlayModel", next)
	}

	if !done.Finished() {
		t.Error("model not finished after the session ended")
	}
	if ctx.Err() == nil {
		t.Error("context still live after the session ended")
	}

	// With the context cancelled the frame pump must return even though no
	// frame will ever arrive.
	released := make(chan struct{})
	go func() {
		done.waitFrame()()
		close(released)
	}()
	select {
	case <-released:
	case <-time.After(2 * time.Second):
		t.Fatal("waitFrame still blocked after the session ended")
	}
}

func TestSummaryShowsBestScore(t *testing.T) {
	m := PlayModel{
		def:      testDefinition{},
		session:  &fakeSession{ticks: 4},
		finished: true,
		outcome:  storage.OutcomeCompleted,
		score:    7,
		best:     9,
	}

	summary := m.renderSummary()
	if !strings.Contains(summary, "score 7") {
		t.Errorf("summary missing the final score:\n%s", summary)
	}
	if !strings.Contains(summary, "Best for this game: 9") {
		t.Errorf("summary missing the best score:\n%s", summary)
	}
}
