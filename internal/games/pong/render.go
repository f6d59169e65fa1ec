package pong

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/lazytick/internal/config"
	"github.com/vovakirdan/lazytick/internal/live"
	"github.com/vovakirdan/lazytick/internal/registry"
)

// Glyphs for the field view.
const (
	paddleChar = '█'
	ballChar   = '●'
	netChar    = '│'
)

// Render draws the field as plain text with a score footer.
func Render(s State) string {
	grid := make([][]rune, s.Height)
	for y := range grid {
		grid[y] = make([]rune, s.Width)
		for x := range grid[y] {
			grid[y][x] = ' '
		}
	}

	set := func(x, y int, r rune) {
		if x >= 0 && x < s.Width && y >= 0 && y < s.Height {
			grid[y][x] = r
		}
	}

	centerX := s.Width / 2
	for y := 1; y < s.Height-1; y += 2 {
		set(centerX, y, netChar)
	}

	paddle1X := s.PaddleOffset
	paddle2X := s.Width - s.PaddleOffset - 1
	for i := range s.PaddleH {
		set(paddle1X, int(s.Paddle1Y)+i, paddleChar)
		set(paddle2X, int(s.Paddle2Y)+i, paddleChar)
	}

	// Blink the ball while serving.
	if !s.Serving || (s.ServeDelay/10)%2 == 0 {
		set(int(s.BallX), int(s.BallY), ballChar)
	}

	var b strings.Builder
	b.Grow((s.Width + 1) * (s.Height + 1))
	for _, row := range grid {
		b.WriteString(string(row))
		b.WriteByte('\n')
	}

	switch s.Winner {
	case 1:
		fmt.Fprintf(&b, "you win %d-%d at tick %d", s.Score1, s.Score2, s.Tick)
	case 2:
		fmt.Fprintf(&b, "cpu wins %d-%d at tick %d", s.Score2, s.Score1, s.Tick)
	default:
		fmt.Fprintf(&b, "P1 %d  CPU %d  tick %d", s.Score1, s.Score2, s.Tick)
	}
	return b.String()
}

// configPath optionally points at a custom tuning file, set by the CLI
// before sessions are created.
var configPath string

// SetConfigPath overrides the tuning config location.
func SetConfigPath(path string) {
	configPath = path
}

// fromInput maps live key tokens to moves; unknown keys mean stay.
func fromInput(in live.RawInput) (Move, error) {
	switch in.Key {
	case "up", "w", "k":
		return Up, nil
	case "down", "s", "j":
		return Down, nil
	default:
		return Stay, nil
	}
}

// Definition returns the registry entry for pong.
func Definition() registry.Definition {
	return registry.Spec[State, Move]{
		GameID:    "pong",
		GameTitle: "Pong",
		Initial: func(seed int64) (State, error) {
			cfg, err := config.LoadPong(configPath)
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
