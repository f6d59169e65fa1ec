package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/lazytick/internal/platform/tui"
	"github.com/vovakirdan/lazytick/internal/registry"
	"github.com/vovakirdan/lazytick/internal/storage"
)

var (
	flagSessionsPlain bool
	flagSessionsTop   bool
	flagSessionsLimit int
	flagSessionsClear bool
)

var sessionsCmd = &cobra.Command{
	Use:   "sessions [game]",
	Short: "Browse saved sessions",
	Long: `Browse saved sessions in an interactive table, or print them with
--plain for scripting. With --top, completed sessions are ranked by
score instead of listed by recency.

Examples:
  lazytick sessions
  lazytick sessions chase --plain
  lazytick sessions chase --plain --top --limit 10
  lazytick sessions chase --clear`,
	Args: cobra.MaximumNArgs(1),
	Run:  runSessions,
}

func init() {
	sessionsCmd.Flags().BoolVar(&flagSessionsPlain, "plain", false, "Print a plain table instead of the interactive browser")
	sessionsCmd.Flags().BoolVar(&flagSessionsTop, "top", false, "Rank completed sessions by score")
	sessionsCmd.Flags().IntVar(&flagSessionsLimit, "limit", 20, "Maximum sessions to show (plain mode)")
	sessionsCmd.Flags().BoolVar(&flagSessionsClear, "clear", false, "Delete all saved sessions for the given game")
}

func runSessions(cmd *cobra.Command, args []string) {
	gameID := ""
	if len(args) > 0 {
		gameID = args[0]
		if !registry.Exists(gameID) {
			fmt.Fprintf(os.Stderr, "Error: unknown game %q\n", gameID)
			fmt.Fprintln(os.Stderr, "Run 'lazytick list' to see available games.")
			os.Exit(1)
		}
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening sessions database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagSessionsClear {
		if gameID == "" {
			fmt.Fprintln(os.Stderr, "Error: --clear requires a game")
			os.Exit(1)
		}
		if err := store.DeleteSessions(gameID); err != nil {
			fmt.Fprintf(os.Stderr, "Error clearing sessions: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Cleared saved sessions for %s.\n", gameID)
		return
	}

	if flagSessionsPlain {
		printSessions(store, gameID)
		return
	}

	// Interactive browser
	width, height := 80, 24
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	if _, err := tui.RunBrowser(store, width, height); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// printSessions writes a plain table for scripts and pipelines.
func printSessions(store *storage.Store, gameID string) {
	var (
		records []storage.SessionRecord
		err     error
	)
	if flagSessionsTop {
		if gameID == "" {
			fmt.Fprintln(os.Stderr, "Error: --top requires a game")
			os.Exit(1)
		}
		records, err = store.TopScores(gameID, flagSessionsLimit)
	} else {
		records, err = store.ListSessions(gameID, flagSessionsLimit)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving sessions: %v\n", err)
		os.Exit(1)
	}

	if len(records) == 0 {
		fmt.Println("No sessions recorded yet.")
		return
	}

	fmt.Printf("%-14s  %-8s  %-7s  %-7s  %-10s  %s\n", "Key", "Game", "Score", "Ticks", "Outcome", "Date")
	for _, rec := range records {
		fmt.Printf("%-14s  %-8s  %-7d  %-7d  %-10s  %s\n",
			rec.Key, rec.GameID, rec.Score, rec.Ticks, rec.Outcome,
			rec.CreatedAt.Format("2006-01-02 15:04"),
		)
	}
}
