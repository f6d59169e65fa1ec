package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/lazytick/internal/engine"
	"github.com/vovakirdan/lazytick/internal/registry"
	"github.com/vovakirdan/lazytick/internal/storage"
)

var flagReplayShow bool

var replayCmd = &cobra.Command{
	Use:   "replay <key>",
	Short: "Re-run a saved session and verify the outcome",
	Long: `Rebuild a saved session from its seed and recorded input script,
run it again, and check that it reproduces the recorded score and tick
count. A mismatch means the game's rules changed since the session was
recorded.

Examples:
  lazytick replay b2h4k9w3x7pq
  lazytick replay b2h4k9w3x7pq --show`,
	Args: cobra.ExactArgs(1),
	Run:  runReplay,
}

func init() {
	replayCmd.Flags().BoolVar(&flagReplayShow, "show", false, "Print the final frame")
}

func runReplay(cmd *cobra.Command, args []string) {
	key := args[0]

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening sessions database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	rec, err := store.GetSession(key)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			fmt.Fprintf(os.Stderr, "Error: no saved session %q\n", key)
			fmt.Fprintln(os.Stderr, "Run 'lazytick sessions --plain' to see saved sessions.")
		} else {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}

	def, err := registry.Get(rec.GameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: session %q belongs to unknown game %q\n", key, rec.GameID)
		os.Exit(1)
	}

	session, err := def.NewSession(registry.Options{
		Seed:     rec.Seed,
		Identity: engine.Identity(rec.Key),
		Script:   rec.Script,
		Repeat:   rec.Repeat,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating session: %v\n", err)
		os.Exit(1)
	}

	score, runErr := session.Advance(context.Background(), rec.Budget)
	outcome := outcomeOf(runErr)

	fmt.Printf("Game:     %s\n", def.Title())
	fmt.Printf("Session:  %s\n", rec.Key)
	fmt.Printf("Recorded: outcome=%s score=%d ticks=%d\n", rec.Outcome, rec.Score, rec.Ticks)
	fmt.Printf("Replayed: outcome=%s score=%d ticks=%d\n", replayedOutcome(outcome, runErr), score, session.Ticks())

	if flagReplayShow {
		fmt.Println()
		fmt.Println(session.Frame())
	}

	if !replayMatches(rec, outcome, int(score), session.Ticks()) {
		fmt.Println()
		fmt.Println("MISMATCH: the session no longer reproduces its recorded outcome.")
		os.Exit(1)
	}
	fmt.Println()
	fmt.Println("Verified: the session reproduces its recorded outcome.")
}

// replayedOutcome labels the replay result. A cancelled session was saved
// with only the inputs consumed before the cancel, so its replay stops on
// script exhaustion rather than a cancel.
func replayedOutcome(outcome string, err error) string {
	if outcome == storage.OutcomeError && errors.Is(err, engine.ErrScriptExhausted) {
		return "script exhausted"
	}
	return outcome
}

// replayMatches checks the replay against the recorded session.
func replayMatches(rec storage.SessionRecord, outcome string, score, ticks int) bool {
	switch rec.Outcome {
	case storage.OutcomeCompleted:
		return outcome == storage.OutcomeCompleted && score == rec.Score && ticks == rec.Ticks
	case storage.OutcomeBudget:
		return outcome == storage.OutcomeBudget && ticks == rec.Ticks
	case storage.OutcomeCancelled:
		// The recorded script is the prefix consumed before the cancel;
		// replaying it runs out of input at the recorded tick unless the
		// game happens to terminate there.
		return ticks == rec.Ticks || outcome == storage.OutcomeCompleted
	default:
		return true
	}
}
