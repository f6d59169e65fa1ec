// lazytick is a demand-driven game simulation host for the terminal.
//
// Usage:
//
//	lazytick list              - List available games
//	lazytick play <game>       - Play a game live in the terminal
//	lazytick run <game>        - Run a scripted session headless
//	lazytick replay <key>      - Re-run a saved session and verify it
//	lazytick sessions          - Browse saved sessions
//	lazytick serve             - Start SSH server for remote play
//
// Global flags:
//
//	--seed <value>   - Set RNG seed for reproducible sessions
//	--budget <n>     - Tick budget per advance call
//	--db <path>      - Set database path (default: ~/.lazytick/sessions.db)
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Import games to register them
	_ "github.com/vovakirdan/lazytick/internal/games/chase"
	_ "github.com/vovakirdan/lazytick/internal/games/pong"
)

var (
	// Global flags
	flagSeed   int64
	flagBudget int
	flagDBPath string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "lazytick",
	Short: "lazytick - demand-driven game sessions in your terminal",
	Long: `lazytick runs small games as pull-based simulations. A session only
computes the ticks you ask for, every run is replayable from a seed and
an input script, and a live play-through records the script it consumed.

Available commands:
  list      - Show all available games
  play      - Play a game live in the terminal
  run       - Run a scripted session without a UI
  replay    - Re-run a saved session and verify the outcome
  sessions  - Browse saved sessions
  serve     - Start SSH server for remote play

Examples:
  lazytick list
  lazytick play chase
  lazytick run chase --script "e,e,n,e" --seed 7
  lazytick replay b2h4k9w3x7pq
  lazytick serve --ssh :2222`,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().IntVar(&flagBudget, "budget", 10000, "Tick budget per advance call")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.lazytick/sessions.db", "Path to sessions database")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(replayCmd)
	rootCmd.AddCommand(sessionsCmd)
	rootCmd.AddCommand(serveCmd)
}
