// Package pong implements classic Pong against a CPU opponent as pure
// value transforms. The player drives the left paddle; the CPU tracks the
// ball with configurable skill. Serve angles come from a generator state
// carried inside the game state, keeping every rally replayable from the
// seed.
package pong

import (
	"fmt"
	"math"

	"github.com/vovakirdan/lazytick/internal/config"
	"github.com/vovakirdan/lazytick/internal/core"
	"github.com/vovakirdan/lazytick/internal/engine"
)

// Move is the participant's response for one tick.
type Move int

const (
	Stay Move = iota
	Up
	Down
)

// Token returns the script token for the move.
func (m Move) Token() string {
	switch m {
	case Stay:
		return "stay"
	case Up:
		return "up"
	case Down:
		return "down"
	default:
		return fmt.Sprintf("move(%d)", int(m))
	}
}

// ParseMove decodes a script token into a move.
func ParseMove(token string) (Move, error) {
	switch token {
	case "stay", "", ".":
		return Stay, nil
	case "up", "u":
		return Up, nil
	case "down", "d":
		return Down, nil
	default:
		return Stay, fmt.Errorf("pong: unknown move token %q", token)
	}
}

// State is one tick's snapshot of the match. It is a plain value; the
// phase functions return fresh copies.
type State struct {
	// Field and tuning, fixed for the match.
	Width, Height int
	PaddleH       int
	PaddleOffset  int
	PaddleSpeed   float64
	BallSpeed     float64
	CPUSkill      float64
	WinScore      int
	ServeTicks    int

	// Live match state.
	Paddle1Y   float64
	Paddle2Y   float64
	BallX      float64
	BallY      float64
	BallVX     float64
	BallVY     float64
	Score1     int
	Score2     int
	Serving    bool
	ServeDelay int
	Winner     int // 0 while playing, then 1 or 2
	Tick       int
	Rng        core.Rand
}

// NewState builds state[0] from a config and seed: paddles centered,
// first serve toward the player.
func NewState(cfg config.PongConfig, seed int64) (State, error) {
	if err := cfg.Validate(); err != nil {
		return State{}, err
	}

	s := State{
		Width:        cfg.Field.Width,
		Height:       cfg.Field.Height,
		PaddleH:      cfg.Paddles.Height,
		PaddleOffset: cfg.Paddles.Offset,
		PaddleSpeed:  cfg.Paddles.Speed,
		BallSpeed:    cfg.Ball.Speed,
		CPUSkill:     cfg.Paddles.CPUSkill,
		WinScore:     cfg.WinScore,
		ServeTicks:   cfg.Ball.ServeDelay,
		Rng:          core.NewRand(seed),
	}

	centerY := float64(s.Height) / 2.0
	s.Paddle1Y = centerY - float64(s.PaddleH)/2.0
	s.Paddle2Y = s.Paddle1Y

	return serve(s, 1), nil
}

// serve centers the ball and aims it at the side that was scored against,
// with a random vertical angle drawn from the carried generator.
func serve(s State, server int) State {
	s.Serving = true
	s.ServeDelay = s.ServeTicks
	s.BallX = float64(s.Width) / 2.0
	s.BallY = float64(s.Height) / 2.0

	speed := s.BallSpeed
	if server == 1 {
		s.BallVX = -speed
	} else {
		s.BallVX = speed
	}

	var angle float64
	s.Rng, angle = s.Rng.Float()
	s.BallVY = speed * (angle - 0.5) * 0.6

	return s
}

// Apply moves the player paddle according to the response.
func Apply(s State, m Move) (State, error) {
	var dy float64
	switch m {
	case Stay:
	case Up:
		dy = -s.PaddleSpeed
	case Down:
		dy = s.PaddleSpeed
	default:
		return s, fmt.Errorf("pong: invalid move %d", int(m))
	}

	s.Paddle1Y = core.ClampF(s.Paddle1Y+dy, 1, s.maxPaddleY())
	return s, nil
}

// Integrate advances one tick of motion: the serve countdown, the CPU
// paddle and the ball.
func Integrate(s State) (State, error) {
	s.Tick++

	if s.Serving {
		s.ServeDelay--
		if s.ServeDelay <= 0 {
			s.Serving = false
		}
	}

	s = moveCPU(s)

	if !s.Serving {
		s.BallX += s.BallVX
		s.BallY += s.BallVY
	}
	return s, nil
}

// moveCPU tracks the ball with skill-limited speed, and only while the
// ball is inbound.
func moveCPU(s State) State {
	if s.BallVX <= 0 {
		return s
	}

	target := s.BallY - float64(s.PaddleH)/2.0
	diff := target - s.Paddle2Y
	moveSpeed := s.PaddleSpeed * s.CPUSkill
	if math.Abs(diff) > moveSpeed {
		if diff > 0 {
			s.Paddle2Y += moveSpeed
		} else {
			s.Paddle2Y -= moveSpeed
		}
	}

	s.Paddle2Y = core.ClampF(s.Paddle2Y, 1, s.maxPaddleY())
	return s
}

// Resolve handles wall and paddle bounces, scoring and win detection.
func Resolve(s State) (State, error) {
	if s.Winner != 0 {
		return s, nil
	}

	// Walls.
	if s.BallY <= 1 {
		s.BallY = 1
		s.BallVY = -s.BallVY
	}
	if s.BallY >= float64(s.Height-2) {
		s.BallY = float64(s.Height - 2)
		s.BallVY = -s.BallVY
	}

	paddle1X := float64(s.PaddleOffset)
	paddle2X := float64(s.Width - s.PaddleOffset - 1)

	// Player paddle.
	if s.BallX <= paddle1X+1 && s.BallVX < 0 {
		if s.BallY >= s.Paddle1Y && s.BallY <= s.Paddle1Y+float64(s.PaddleH) {
			s.BallX = paddle1X + 1
			s.BallVX = -s.BallVX
			hitPos := (s.BallY - s.Paddle1Y) / float64(s.PaddleH)
			s.BallVY += (hitPos - 0.5) * 0.3
			s.BallVX *= 1.02
		}
	}

	// CPU paddle.
	if s.BallX >= paddle2X && s.BallVX > 0 {
		if s.BallY >= s.Paddle2Y && s.BallY <= s.Paddle2Y+float64(s.PaddleH) {
			s.BallX = paddle2X - 1
			s.BallVX = -s.BallVX
			hitPos := (s.BallY - s.Paddle2Y) / float64(s.PaddleH)
			s.BallVY += (hitPos - 0.5) * 0.3
			s.BallVX *= 1.02
		}
	}

	// Cap rally speed.
	maxSpeed := s.BallSpeed * 3
	if math.Abs(s.BallVX) > maxSpeed {
		s.BallVX = math.Copysign(maxSpeed, s.BallVX)
	}
	if math.Abs(s.BallVY) > maxSpeed/2 {
		s.BallVY = math.Copysign(maxSpeed/2, s.BallVY)
	}

	// Points.
	if s.BallX < 0 {
		s.Score2++
		if s.Score2 >= s.WinScore {
			s.Winner = 2
		} else {
			s = serve(s, 2)
		}
	}
	if s.BallX > float64(s.Width) {
		s.Score1++
		if s.Score1 >= s.WinScore {
			s.Winner = 1
		} else {
			s = serve(s, 1)
		}
	}

	return s, nil
}

// Terminal reports whether a side has won the match.
func Terminal(s State) bool {
	return s.Winner != 0
}

// Score values a terminal state as the player's points.
func Score(s State) engine.Score {
	return engine.Score(s.Score1)
}

// Rules bundles the pong transforms for the engine.
func Rules() engine.Rules[State, Move] {
	return engine.Rules[State, Move]{
		Apply:     Apply,
		Integrate: Integrate,
		Resolve:   Resolve,
		Terminal:  Terminal,
		Score:     Score,
	}
}

func (s State) maxPaddleY() float64 {
	return float64(s.Height - s.PaddleH - 1)
}
