package chase

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/lazytick/internal/config"
	"github.com/vovakirdan/lazytick/internal/core"
	"github.com/vovakirdan/lazytick/internal/live"
	"github.com/vovakirdan/lazytick/internal/registry"
)

// Glyphs for the grid view.
const (
	playerChar = '@'
	hunterChar = 'H'
	exitChar   = 'E'
	floorChar  = '.'
)

// Render draws the grid as plain text, one row per line, with a status
// footer.
func Render(s State) string {
	var b strings.Builder
	b.Grow((s.Width + 1) * (s.Height + 2))

	for y := range s.Height {
		for x := range s.Width {
			b.WriteRune(glyphAt(s, core.Point{X: x, Y: y}))
		}
		b.WriteByte('\n')
	}

	switch {
	case s.Caught:
		fmt.Fprintf(&b, "caught at tick %d", s.Tick)
	case s.Escaped:
		fmt.Fprintf(&b, "escaped at tick %d", s.Tick)
	default:
		fmt.Fprintf(&b, "tick %d", s.Tick)
	}
	return b.String()
}

func glyphAt(s State, p core.Point) rune {
	for _, h := range s.Hunters {
		if h == p {
			return hunterChar
		}
	}
	if s.Player == p {
		return playerChar
	}
	if s.Exit == p {
		return exitChar
	}
	return floorChar
}

// configPath optionally points at a custom tuning file, set by the CLI
// before sessions are created.
var configPath string

// SetConfigPath overrides the tuning config location.
func SetConfigPath(path string) {
	configPath = path
}

// fromInput maps live key tokens to moves; unknown keys mean stay so a
// stray key never kills a live session.
func fromInput(in live.RawInput) (Move, error) {
	switch in.Key {
	case "up", "w", "k":
		return North, nil
	case "down", "s", "j":
		return South, nil
	case "right", "d", "l":
		return East, nil
	case "left", "a", "h":
		return West, nil
	default:
		return Stay, nil
	}
}

// Definition returns the registry entry for chase.
func Definition() registry.Definition {
	return registry.Spec[State, Move]{
		GameID:    "chase",
		GameTitle: "Hunter Chase",
		Initial: func(seed int64) (State, error) {
			cfg, err := config.LoadChase(configPath)
			if err != nil {
				return State{}, err
			}
			return NewState(cfg, seed)
		},
		Rules:     Rules(),
		Decode:    ParseMove,
		Encode:    Move.Token,
		FromInput: fromInput,
		Render:    Render,
	}
}

func init() {
	registry.Register(Definition())
}
