package config

import (
	_ "embed"
)

//go:embed defaults/pong.yaml
var defaultPongYAML []byte

//go:embed defaults/chase.yaml
var defaultChaseYAML []byte

// DefaultPongConfig returns the default Pong configuration.
func DefaultPongConfig() PongConfig {
	return PongConfig{
		Field: PongField{
			Width:  60,
			Height: 20,
		},
		Paddles: PongPaddles{
			Height:   4,
			Offset:   2,
			Speed:    1.0,
			CPUSkill: 0.7,
		},
		Ball: PongBall{
			Speed:      0.5,
			ServeDelay: 30,
		},
		WinScore: 3,
	}
}

// DefaultChaseConfig returns the default Chase configuration.
func DefaultChaseConfig() ChaseConfig {
	return ChaseConfig{
		Grid: ChaseGrid{
			Width:  24,
			Height: 12,
		},
		Hunters:     2,
		Jitter:      0.15,
		EscapeBonus: 100,
	}
}
