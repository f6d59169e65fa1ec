// Package tui provides the Bubble Tea integration for the host. It runs
// live sessions against a terminal, browses saved sessions, and serves
// both over SSH.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/lazytick/internal/engine"
	"github.com/vovakirdan/lazytick/internal/live"
	"github.com/vovakirdan/lazytick/internal/registry"
	"github.com/vovakirdan/lazytick/internal/storage"
)

// PlayOptions tunes a live play-through.
type PlayOptions struct {
	Seed   int64
	Budget int           // tick budget for the run
	Idle   time.Duration // per-tick grace before the game idles forward
	Logger *log.Logger
}

// frameMsg delivers a rendered frame from the session.
type frameMsg live.Frame

// sessionDoneMsg reports the outcome of the advance call.
type sessionDoneMsg struct {
	score engine.Score
	err   error
}

// PlayModel is the Bubble Tea model for a live session. The session runs
// in its own goroutine; keystrokes feed its input source and rendered
// frames arrive back as messages.
type PlayModel struct {
	def       registry.Definition
	store     *storage.Store
	opts      PlayOptions
	session   registry.Session
	source    *live.KeySource
	frames    *live.FrameBuffer
	keyMapper *KeyMapper
	cancel    context.CancelFunc
	ctx       context.Context

	view     string
	tick     int
	finished bool
	outcome  string
	score    engine.Score
	best     int
	runErr   error
	saveErr  error
	quitting bool
	leaving  bool
}

// NewPlayModel builds a live session for the given game and wraps it in a
// Bubble Tea model. The session does not start advancing until Init.
func NewPlayModel(def registry.Definition, store *storage.Store, opts PlayOptions) (PlayModel, error) {
	if opts.Budget <= 0 {
		opts.Budget = 10000
	}
	if opts.Idle <= 0 {
		opts.Idle = 120 * time.Millisecond
	}
	if opts.Seed == 0 {
		opts.Seed = time.Now().UnixNano()
	}

	source := live.NewKeySource(opts.Idle, 16)
	frames := live.NewFrameBuffer(4)

	session, err := def.NewSession(registry.Options{
		Seed:   opts.Seed,
		Source: source,
		Sink:   frames,
		Logger: opts.Logger,
	})
	if err != nil {
		source.Close()
		return PlayModel{}, fmt.Errorf("tui: cannot create session: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())

	return PlayModel{
		def:       def,
		store:     store,
		opts:      opts,
		session:   session,
		source:    source,
		frames:    frames,
		keyMapper: NewKeyMapper(),
		ctx:       ctx,
		cancel:    cancel,
	}, nil
}

// Init starts the session goroutine and the frame pump.
func (m PlayModel) Init() tea.Cmd {
	return tea.Batch(m.advanceCmd(), m.waitFrame())
}

// advanceCmd runs the session until it terminates, exhausts its budget,
// or is cancelled.
func (m PlayModel) advanceCmd() tea.Cmd {
	return func() tea.Msg {
		score, err := m.session.Advance(m.ctx, m.opts.Budget)
		return sessionDoneMsg{score: score, err: err}
	}
}

// waitFrame blocks until the session publishes its next frame.
func (m PlayModel) waitFrame() tea.Cmd {
	return func() tea.Msg {
		select {
		case f := <-m.frames.Frames():
			return frameMsg(f)
		case <-m.ctx.Done():
			return nil
		}
	}
}

// Update handles messages and updates the model state.
func (m PlayModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case frameMsg:
		m.view = msg.View
		m.tick = msg.Tick
		return m, m.waitFrame()

	case sessionDoneMsg:
		return m.handleDone(msg)
	}

	return m, nil
}

// handleKey feeds keystrokes to the session's input source.
func (m PlayModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.finished {
		// Any key dismisses the summary.
		m.leaving = true
		return m, tea.Quit
	}

	token, isQuit := m.keyMapper.MapKey(msg)
	if isQuit {
		m.quitting = true
		m.cancel()
		// Wait for sessionDoneMsg so the saved record includes the
		// cancelled prefix.
		return m, nil
	}

	if token != "" {
		m.source.Push(token)
	}
	return m, nil
}

// handleDone records the outcome and persists the session. The engine
// workers are gone by now; cancelling releases the frame pump so a
// long-lived host does not accumulate one blocked goroutine per game.
func (m PlayModel) handleDone(msg sessionDoneMsg) (tea.Model, tea.Cmd) {
	m.finished = true
	m.score = msg.score
	m.runErr = msg.err
	m.outcome = classifyOutcome(msg.err)
	m.source.Close()
	m.cancel()

	if m.store != nil {
		_, err := m.store.SaveSession(storage.SessionRecord{
			Key:     string(m.session.Identity()),
			GameID:  m.def.ID(),
			Seed:    m.opts.Seed,
			Budget:  m.opts.Budget,
			Script:  m.session.ScriptTokens(),
			Ticks:   m.session.Ticks(),
			Score:   int(m.score),
			Outcome: m.outcome,
		})
		m.saveErr = err
		if best, bestErr := m.store.HighScore(m.def.ID()); bestErr == nil {
			m.best = best
		}
	}

	if m.quitting {
		return m, tea.Quit
	}
	return m, nil
}

// classifyOutcome maps an advance result to a stored outcome label.
func classifyOutcome(err error) string {
	var budgetErr *engine.NonTerminationError
	var cancelErr *engine.CancelledError

	switch {
	case err == nil:
		return storage.OutcomeCompleted
	case errors.As(err, &budgetErr):
		return storage.OutcomeBudget
	case errors.As(err, &cancelErr):
		return storage.OutcomeCancelled
	default:
		return storage.OutcomeError
	}
}

var (
	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	summaryStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("57")).
			Padding(1, 3)

	summaryTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("229"))
)

// View renders the latest frame, or the summary once the session ends.
func (m PlayModel) View() string {
	if m.quitting && !m.finished {
		return "stopping...\n"
	}
	if m.leaving {
		return ""
	}

	if m.finished {
		return m.renderSummary()
	}

	var b strings.Builder
	b.WriteString(m.view)
	b.WriteString("\n")
	b.WriteString(statusStyle.Render(fmt.Sprintf(
		"session %s  tick %d  [q] quit", m.session.Identity(), m.tick,
	)))
	b.WriteString("\n")
	return b.String()
}

// renderSummary shows the final score and outcome.
func (m PlayModel) renderSummary() string {
	var b strings.Builder
	b.WriteString(summaryTitleStyle.Render(m.def.Title()))
	b.WriteString("\n\n")

	switch m.outcome {
	case storage.OutcomeCompleted:
		b.WriteString(fmt.Sprintf("Finished with score %d in %d ticks.", m.score, m.session.Ticks()))
		if m.best > 0 {
			b.WriteString(fmt.Sprintf("\nBest for this game: %d.", m.best))
		}
	case storage.OutcomeBudget:
		b.WriteString(fmt.Sprintf("Tick budget of %d exhausted without finishing.", m.opts.Budget))
	case storage.OutcomeCancelled:
		b.WriteString(fmt.Sprintf("Stopped after %d ticks.", m.session.Ticks()))
	default:
		b.WriteString(fmt.Sprintf("Session failed: %v", m.runErr))
	}

	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("Session key: %s", m.session.Identity()))
	if m.saveErr != nil {
		b.WriteString(fmt.Sprintf("\nCould not save session: %v", m.saveErr))
	} else if m.store != nil {
		b.WriteString("\nSaved. Replay with: lazytick replay " + string(m.session.Identity()))
	}
	b.WriteString("\n\nPress any key to exit.")

	return summaryStyle.Render(b.String()) + "\n"
}

// Finished reports whether the session has reached an outcome.
func (m PlayModel) Finished() bool {
	return m.finished
}

// Closed reports whether the play-through is over and dismissed, either by
// leaving the summary or by quitting mid-session.
func (m PlayModel) Closed() bool {
	return m.leaving || (m.finished && m.quitting)
}

// Outcome returns the stored outcome label, valid once Finished.
func (m PlayModel) Outcome() string {
	return m.outcome
}

// Run plays one live session in the local terminal.
func Run(def registry.Definition, store *storage.Store, opts PlayOptions) error {
	model, err := NewPlayModel(def, store, opts)
	if err != nil {
		return err
	}

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err = p.Run()
	return err
}
