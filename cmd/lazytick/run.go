package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/lazytick/internal/config"
	"github.com/vovakirdan/lazytick/internal/engine"
	"github.com/vovakirdan/lazytick/internal/registry"
	"github.com/vovakirdan/lazytick/internal/storage"
)

var (
	flagRunScript   string
	flagRunRepeat   bool
	flagRunSpec     string
	flagRunIdentity string
	flagRunNoSave   bool
	flagRunShow     bool
)

var runCmd = &cobra.Command{
	Use:   "run [game]",
	Short: "Run a scripted session without a UI",
	Long: `Run a game session headless, feeding it responses from a script.

The script is a comma-separated list of input tokens; run 'lazytick play'
and check the saved session for examples of each game's tokens. With
--repeat the script cycles forever instead of exhausting.

A session can also be described by a YAML spec file:

  game: chase
  seed: 7
  budget: 200
  script: [e, e, n, e]

Examples:
  lazytick run chase --script "e,e,n,e" --seed 7
  lazytick run pong --script "up,up,stay" --repeat --budget 500
  lazytick run --spec ./session.yaml
  lazytick run chase --script "e,e" --show`,
	Args: cobra.MaximumNArgs(1),
	Run:  runRun,
}

func init() {
	runCmd.Flags().StringVar(&flagRunScript, "script", "", "Comma-separated input tokens")
	runCmd.Flags().BoolVar(&flagRunRepeat, "repeat", false, "Cycle the script instead of exhausting it")
	runCmd.Flags().StringVar(&flagRunSpec, "spec", "", "Path to a YAML session spec")
	runCmd.Flags().StringVar(&flagRunIdentity, "identity", "", "Session key (generated if empty)")
	runCmd.Flags().BoolVar(&flagRunNoSave, "no-save", false, "Do not record the session")
	runCmd.Flags().BoolVar(&flagRunShow, "show", false, "Print the final frame")
}

// resolveSessionSpec merges the spec file, positional game and flags into
// one session description. Flags win over the spec file.
func resolveSessionSpec(args []string) (config.SessionSpec, error) {
	var spec config.SessionSpec

	if flagRunSpec != "" {
		loaded, err := config.LoadSessionSpec(flagRunSpec)
		if err != nil {
			return spec, err
		}
		spec = loaded
	}

	if len(args) > 0 {
		spec.Game = args[0]
	}
	if flagRunScript != "" {
		spec.Script = splitScript(flagRunScript)
	}
	if flagRunRepeat {
		spec.Repeat = true
	}
	if flagRunIdentity != "" {
		spec.Identity = flagRunIdentity
	}
	if flagSeed != 0 {
		spec.Seed = flagSeed
	}
	if spec.Budget == 0 {
		spec.Budget = flagBudget
	}
	if spec.Seed == 0 {
		spec.Seed = time.Now().UnixNano()
	}

	return spec, spec.Validate()
}

func splitScript(s string) []string {
	parts := strings.Split(s, ",")
	tokens := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			tokens = append(tokens, p)
		}
	}
	return tokens
}

func runRun(cmd *cobra.Command, args []string) {
	spec, err := resolveSessionSpec(args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	def, err := registry.Get(spec.Game)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		fmt.Fprintln(os.Stderr, "Run 'lazytick list' to see available games.")
		os.Exit(1)
	}

	session, err := def.NewSession(registry.Options{
		Seed:     spec.Seed,
		Identity: engine.Identity(spec.Identity),
		Script:   spec.Script,
		Repeat:   spec.Repeat,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating session: %v\n", err)
		os.Exit(1)
	}

	score, runErr := session.Advance(context.Background(), spec.Budget)
	outcome := outcomeOf(runErr)

	fmt.Printf("Game:    %s\n", def.Title())
	fmt.Printf("Session: %s\n", session.Identity())
	fmt.Printf("Seed:    %d\n", spec.Seed)
	fmt.Printf("Ticks:   %d\n", session.Ticks())

	switch outcome {
	case storage.OutcomeCompleted:
		fmt.Printf("Score:   %d\n", score)
	case storage.OutcomeBudget:
		fmt.Printf("Outcome: tick budget of %d exhausted\n", spec.Budget)
	default:
		fmt.Printf("Outcome: %v\n", runErr)
	}

	if flagRunShow {
		fmt.Println()
		fmt.Println(session.Frame())
	}

	if !flagRunNoSave {
		saveRun(def.ID(), spec, session, int(score), outcome)
	}

	if outcome == storage.OutcomeError {
		os.Exit(1)
	}
}

// saveRun records the finished session; failures warn but don't fail the
// run.
func saveRun(gameID string, spec config.SessionSpec, session registry.Session, score int, outcome string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open sessions database: %v\n", err)
		return
	}
	defer store.Close()

	_, err = store.SaveSession(storage.SessionRecord{
		Key:     string(session.Identity()),
		GameID:  gameID,
		Seed:    spec.Seed,
		Budget:  spec.Budget,
		Script:  session.ScriptTokens(),
		Repeat:  spec.Repeat,
		Ticks:   session.Ticks(),
		Score:   score,
		Outcome: outcome,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not save session: %v\n", err)
		return
	}
	fmt.Printf("Saved. Replay with: lazytick replay %s\n", session.Identity())
}

// outcomeOf maps an advance result to a stored outcome label.
func outcomeOf(err error) string {
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
