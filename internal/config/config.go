// Package config provides YAML-based configuration loading: per-game
// tuning parameters and session spec documents for scripted runs.
package config

import (
	"errors"
	"fmt"
)

// PongConfig contains all tuning parameters for the Pong rules.
type PongConfig struct {
	Field    PongField   `yaml:"field"`
	Paddles  PongPaddles `yaml:"paddles"`
	Ball     PongBall    `yaml:"ball"`
	WinScore int         `yaml:"win_score"`
}

// PongField defines the playing field dimensions.
type PongField struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// PongPaddles defines paddle geometry and movement.
type PongPaddles struct {
	Height   int     `yaml:"height"`
	Offset   int     `yaml:"offset"` // distance from the field edge
	Speed    float64 `yaml:"speed"`
	CPUSkill float64 `yaml:"cpu_skill"` // 0..1, fraction of full tracking speed
}

// PongBall defines ball movement.
type PongBall struct {
	Speed      float64 `yaml:"speed"`
	ServeDelay int     `yaml:"serve_delay"` // ticks between a point and the next serve
}

// Validate checks the config for values the rules cannot work with.
func (c PongConfig) Validate() error {
	if c.Field.Width < 20 || c.Field.Height < 10 {
		return fmt.Errorf("config: pong field %dx%d is too small", c.Field.Width, c.Field.Height)
	}
	if c.Paddles.Height < 1 || c.Paddles.Height >= c.Field.Height {
		return fmt.Errorf("config: pong paddle height %d does not fit the field", c.Paddles.Height)
	}
	if c.Ball.Speed <= 0 {
		return errors.New("config: pong ball speed must be positive")
	}
	if c.WinScore < 1 {
		return errors.New("config: pong win score must be at least 1")
	}
	if c.Paddles.CPUSkill < 0 || c.Paddles.CPUSkill > 1 {
		return errors.New("config: pong cpu skill must be within [0, 1]")
	}
	return nil
}

// ChaseConfig contains all tuning parameters for the Chase rules.
type ChaseConfig struct {
	Grid        ChaseGrid `yaml:"grid"`
	Hunters     int       `yaml:"hunters"`
	Jitter      float64   `yaml:"jitter"` // chance per tick a hunter wanders instead of pursuing
	EscapeBonus int       `yaml:"escape_bonus"`
}

// ChaseGrid defines the grid dimensions.
type ChaseGrid struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// Validate checks the config for values the rules cannot work with.
func (c ChaseConfig) Validate() error {
	if c.Grid.Width < 4 || c.Grid.Height < 4 {
		return fmt.Errorf("config: chase grid %dx%d is too small", c.Grid.Width, c.Grid.Height)
	}
	if c.Hunters < 1 {
		return errors.New("config: chase needs at least one hunter")
	}
	if c.Jitter < 0 || c.Jitter > 1 {
		return errors.New("config: chase jitter must be within [0, 1]")
	}
	if c.EscapeBonus < 1 {
		return errors.New("config: chase escape bonus must be positive")
	}
	return nil
}

// SessionSpec is a YAML document describing one scripted session: the game
// to run, the deterministic seed, the tick budget and the canned response
// script. Together with the identity this is everything needed to replay
// the session bit-exactly.
type SessionSpec struct {
	Game     string   `yaml:"game"`
	Seed     int64    `yaml:"seed"`
	Identity string   `yaml:"identity"` // optional; generated when empty
	Budget   int      `yaml:"budget"`
	Script   []string `yaml:"script"`
	Repeat   bool     `yaml:"repeat"` // cycle the script instead of exhausting it
}

// Validate checks the spec for structural problems.
func (s SessionSpec) Validate() error {
	if s.Game == "" {
		return errors.New("config: session spec needs a game")
	}
	if s.Budget < 1 {
		return errors.New("config: session spec needs a positive tick budget")
	}
	if len(s.Script) == 0 {
		return errors.New("config: session spec needs a non-empty script")
	}
	return nil
}
