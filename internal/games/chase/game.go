// Package chase implements a grid pursuit game: the player flees a pack
// of hunters toward the exit. All rules are pure value transforms; hunter
// unpredictability comes from a generator state carried inside the game
// state, so identical seeds replay identical hunts.
package chase

import (
	"fmt"

	"github.com/vovakirdan/lazytick/internal/config"
	"github.com/vovakirdan/lazytick/internal/core"
	"github.com/vovakirdan/lazytick/internal/engine"
)

// Move is the participant's response for one tick.
type Move int

const (
	Stay Move = iota
	North
	South
	East
	West
)

// Token returns the script token for the move.
func (m Move) Token() string {
	switch m {
	case Stay:
		return "stay"
	case North:
		return "n"
	case South:
		return "s"
	case East:
		return "e"
	case West:
		return "w"
	default:
		return fmt.Sprintf("move(%d)", int(m))
	}
}

// ParseMove decodes a script token into a move.
func ParseMove(token string) (Move, error) {
	switch token {
	case "stay", "", ".":
		return Stay, nil
	case "n":
		return North, nil
	case "s":
		return South, nil
	case "e":
		return East, nil
	case "w":
		return West, nil
	default:
		return Stay, fmt.Errorf("chase: unknown move token %q", token)
	}
}

// delta returns the move's grid displacement.
func (m Move) delta() (int, int, error) {
	switch m {
	case Stay:
		return 0, 0, nil
	case North:
		return 0, -1, nil
	case South:
		return 0, 1, nil
	case East:
		return 1, 0, nil
	case West:
		return -1, 0, nil
	default:
		return 0, 0, fmt.Errorf("chase: invalid move %d", int(m))
	}
}

// State is one tick's snapshot. It is a value: every transform returns a
// fresh copy and never mutates shared slices.
type State struct {
	Width, Height int
	Player        core.Point
	Exit          core.Point
	Hunters       []core.Point
	Rng           core.Rand
	Tick          int
	Jitter        float64
	EscapeBonus   int
	Caught        bool
	Escaped       bool
}

// clone returns a deep copy safe to modify.
func (s State) clone() State {
	next := s
	next.Hunters = make([]core.Point, len(s.Hunters))
	copy(next.Hunters, s.Hunters)
	return next
}

// bounds returns the playfield rectangle everyone stays inside.
func (s State) bounds() core.Rect {
	return core.NewRect(0, 0, s.Width, s.Height)
}

// NewState builds state[0] from a config and seed. The player starts at
// the west edge, the exit sits at the east edge, and hunters spread along
// the exit side so the player has to slip through them.
func NewState(cfg config.ChaseConfig, seed int64) (State, error) {
	if err := cfg.Validate(); err != nil {
		return State{}, err
	}

	w, h := cfg.Grid.Width, cfg.Grid.Height
	_, midY := core.NewRect(0, 0, w, h).Center()
	s := State{
		Width:       w,
		Height:      h,
		Player:      core.Point{X: 0, Y: midY},
		Exit:        core.Point{X: w - 1, Y: midY},
		Rng:         core.NewRand(seed),
		Jitter:      cfg.Jitter,
		EscapeBonus: cfg.EscapeBonus,
	}

	s.Hunters = make([]core.Point, cfg.Hunters)
	for i := range s.Hunters {
		// Spread hunters evenly across the eastern half.
		y := (h * (i + 1)) / (cfg.Hunters + 1)
		s.Hunters[i] = core.Point{X: w - 1 - (i%2)*2, Y: core.Clamp(y, 0, h-1)}
	}
	return s, nil
}

// Apply moves the player according to the response, clamped to the grid.
func Apply(s State, m Move) (State, error) {
	dx, dy, err := m.delta()
	if err != nil {
		return s, err
	}

	next := s.clone()
	next.Player = s.bounds().ClampPoint(s.Player.Add(dx, dy))
	return next, nil
}

// Integrate advances the hunt by one tick: each hunter either pursues the
// player along its widest axis gap or, with the configured jitter chance,
// wanders in a random direction.
func Integrate(s State) (State, error) {
	next := s.clone()
	next.Tick = s.Tick + 1

	rng := s.Rng
	field := s.bounds()
	for i, h := range next.Hunters {
		var roll float64
		rng, roll = rng.Float()

		dx, dy := 0, 0
		if roll < next.Jitter {
			var dir int
			rng, dir = rng.Intn(4)
			switch dir {
			case 0:
				dy = -1
			case 1:
				dy = 1
			case 2:
				dx = 1
			case 3:
				dx = -1
			}
		} else {
			gapX := next.Player.X - h.X
			gapY := next.Player.Y - h.Y
			if core.Abs(gapX) >= core.Abs(gapY) && gapX != 0 {
				dx = sign(gapX)
			} else if gapY != 0 {
				dy = sign(gapY)
			}
		}

		next.Hunters[i] = field.ClampPoint(h.Add(dx, dy))
	}
	next.Rng = rng
	return next, nil
}

// Resolve detects capture and escape. Capture wins a tie: a player who
// reaches the exit on the same tick a hunter reaches them is caught.
func Resolve(s State) (State, error) {
	next := s.clone()
	for _, h := range next.Hunters {
		if h == next.Player {
			next.Caught = true
			return next, nil
		}
	}
	if next.Player == next.Exit {
		next.Escaped = true
	}
	return next, nil
}

// Terminal reports whether the hunt is over.
func Terminal(s State) bool {
	return s.Caught || s.Escaped
}

// Score values a terminal state: a fast escape is worth more, a capture
// is worth nothing.
func Score(s State) engine.Score {
	if !s.Escaped {
		return 0
	}
	score := s.EscapeBonus - s.Tick
	if score < 1 {
		score = 1
	}
	return engine.Score(score)
}

// Rules bundles the chase transforms for the engine.
func Rules() engine.Rules[State, Move] {
	return engine.Rules[State, Move]{
		Apply:     Apply,
		Integrate: Integrate,
		Resolve:   Resolve,
		Terminal:  Terminal,
		Score:     Score,
	}
}

func sign(v int) int {
	if v < 0 {
		return -1
	}
	return 1
}
