package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/lazytick/internal/games/chase"
	"github.com/vovakirdan/lazytick/internal/games/pong"
	"github.com/vovakirdan/lazytick/internal/platform/tui"
	"github.com/vovakirdan/lazytick/internal/registry"
	"github.com/vovakirdan/lazytick/internal/storage"
)

var (
	flagPlayConfig string
	flagPlayIdle   int
)

var playCmd = &cobra.Command{
	Use:   "play <game>",
	Short: "Play a game live in the terminal",
	Long: `Start a live session of the specified game.

The session advances one tick per input; if you stay idle it moves on
with the game's idle input after a short grace interval. When the game
ends (or you quit) the play-through is saved and can be replayed.

Controls:
  Arrows/WASD  - Move
  Q/Ctrl+C     - Stop (the partial session is still saved)

Examples:
  lazytick play chase
  lazytick play pong --seed 42
  lazytick play chase --config ./my-chase.yaml
  lazytick play chase --idle 200`,
	Args: cobra.ExactArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagPlayConfig, "config", "", "Path to custom game config YAML")
	playCmd.Flags().IntVar(&flagPlayIdle, "idle", 120, "Idle grace per tick in milliseconds")
}

func runPlay(cmd *cobra.Command, args []string) {
	gameID := args[0]

	def, err := registry.Get(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: unknown game %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'lazytick list' to see available games.")
		os.Exit(1)
	}

	// Point the game at a custom config before the session is built
	if flagPlayConfig != "" {
		switch gameID {
		case "pong":
			pong.SetConfigPath(flagPlayConfig)
		case "chase":
			chase.SetConfigPath(flagPlayConfig)
		}
	}

	// Open session storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open sessions database: %v\n", err)
		// Continue without storage - the game still works
		store = nil
	}

	runErr := tui.Run(def, store, tui.PlayOptions{
		Seed:   flagSeed,
		Budget: flagBudget,
		Idle:   time.Duration(flagPlayIdle) * time.Millisecond,
	})

	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}
