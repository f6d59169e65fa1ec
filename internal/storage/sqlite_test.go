package storage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func record(key, game string, score int, outcome string) SessionRecord {
	return SessionRecord{
		Key:     key,
		GameID:  game,
		Seed:    42,
		Budget:  500,
		Script:  []string{"e", "e", "n", "stay"},
		Repeat:  true,
		Ticks:   4,
		Score:   score,
		Outcome: outcome,
	}
}

func TestStoreOpenCreatesFile(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "nested", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("database file was not created")
	}
}

func TestSaveAndGetSession(t *testing.T) {
	store := openTestStore(t)

	want := record("abc123", "chase", 70, OutcomeCompleted)
	if _, err := store.SaveSession(want); err != nil {
		t.Fatalf("SaveSession() failed: %v", err)
	}

	got, err := store.GetSession("abc123")
	if err != nil {
		t.Fatalf("GetSession() failed: %v", err)
	}

	if got.GameID != want.GameID || got.Seed != want.Seed || got.Budget != want.Budget {
		t.Errorf("record fields mismatch: %+v", got)
	}
	if got.Score != 70 || got.Outcome != OutcomeCompleted || got.Ticks != 4 {
		t.Errorf("outcome fields mismatch: %+v", got)
	}
	if !got.Repeat {
		t.Error("repeat flag lost")
	}
	if len(got.Script) != 4 || got.Script[0] != "e" || got.Script[3] != "stay" {
		t.Errorf("script round trip failed: %v", got.Script)
	}
}

func TestGetSessionNotFound(t *testing.T) {
	store := openTestStore(t)

	if _, err := store.GetSession("never-saved"); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetSession() = %v, expected ErrNotFound", err)
	}
}

func TestSessionKeyUnique(t *testing.T) {
	store := openTestStore(t)

	if _, err := store.SaveSession(record("dup", "pong", 1, OutcomeCompleted)); err != nil {
		t.Fatalf("SaveSession() failed: %v", err)
	}
	if _, err := store.SaveSession(record("dup", "pong", 2, OutcomeCompleted)); err == nil {
		t.Error("SaveSession() accepted a duplicate session key")
	}
}

func TestListSessions(t *testing.T) {
	store := openTestStore(t)

	for _, rec := range []SessionRecord{
		record("s1", "chase", 10, OutcomeCompleted),
		record("s2", "pong", 3, OutcomeCompleted),
		record("s3", "chase", 0, OutcomeBudget),
	} {
		if _, err := store.SaveSession(rec); err != nil {
			t.Fatalf("SaveSession(%s) failed: %v", rec.Key, err)
		}
	}

	all, err := store.ListSessions("", 10)
	if err != nil {
		t.Fatalf("ListSessions() failed: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("ListSessions(\"\") returned %d records, expected 3", len(all))
	}
	if all[0].Key != "s3" {
		t.Errorf("newest-first ordering broken: first key = %q", all[0].Key)
	}

	chase, err := store.ListSessions("chase", 10)
	if err != nil {
		t.Fatalf("ListSessions(chase) failed: %v", err)
	}
	if len(chase) != 2 {
		t.Errorf("ListSessions(chase) returned %d records, expected 2", len(chase))
	}
}

func TestTopScoresFiltersOutcome(t *testing.T) {
	store := openTestStore(t)

	for _, rec := range []SessionRecord{
		record("t1", "chase", 50, OutcomeCompleted),
		record("t2", "chase", 90, OutcomeCompleted),
		record("t3", "chase", 999, OutcomeBudget), // incomplete, must not rank
		record("t4", "pong", 3, OutcomeCompleted),
	} {
		if _, err := store.SaveSession(rec); err != nil {
			t.Fatalf("SaveSession(%s) failed: %v", rec.Key, err)
		}
	}

	top, err := store.TopScores("chase", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(top) != 2 {
		t.Fatalf("TopScores() returned %d records, expected 2", len(top))
	}
	if top[0].Score != 90 || top[1].Score != 50 {
		t.Errorf("scores out of order: %d, %d", top[0].Score, top[1].Score)
	}

	high, err := store.HighScore("chase")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 90 {
		t.Errorf("HighScore() = %d, expected 90", high)
	}
}

func TestHighScoreEmpty(t *testing.T) {
	store := openTestStore(t)

	high, err := store.HighScore("nothing-played")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 0 {
		t.Errorf("HighScore() = %d on an empty table, expected 0", high)
	}
}

func TestDeleteSessions(t *testing.T) {
	store := openTestStore(t)

	if _, err := store.SaveSession(record("d1", "chase", 10, OutcomeCompleted)); err != nil {
		t.Fatalf("SaveSession() failed: %v", err)
	}
	if err := store.DeleteSessions("chase"); err != nil {
		t.Fatalf("DeleteSessions() failed: %v", err)
	}

	records, err := store.ListSessions("chase", 10)
	if err != nil {
		t.Fatalf("ListSessions() failed: %v", err)
	}
	if len(records) != 0 {
		t.Errorf("%d records remain after DeleteSessions()", len(records))
	}
}
