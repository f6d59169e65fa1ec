package registry

import (
	"context"
	"strconv"
	"testing"

	"github.com/vovakirdan/lazytick/internal/engine"
	"github.com/vovakirdan/lazytick/internal/live"
)

// testSpec is a minimal counter game: tokens are integers added to the
// state, terminal at 3.
func testSpec(id string) Spec[int, int] {
	return Spec[int, int]{
		GameID:    id,
		GameTitle: "Counter",
		Initial:   func(int64) (int, error) { return 0, nil },
		Rules: engine.Rules[int, int]{
			Apply:    func(s, r int) (int, error) { return s + r, nil },
			Terminal: func(s int) bool { return s >= 3 },
			Score:    func(s int) engine.Score { return engine.Score(s) },
		},
		Decode:    strconv.Atoi,
		Encode:    strconv.Itoa,
		FromInput: func(in live.RawInput) (int, error) { return strconv.Atoi(in.Key) },
		Render:    func(s int) string { return "count: " + strconv.Itoa(s) },
	}
}

func TestRegisterAndList(t *testing.T) {
	Register(testSpec("list-test-b"))
	Register(testSpec("list-test-a"))

	if !Exists("list-test-a") {
		t.Error("Exists() = false for a registered game")
	}
	if Exists("never-registered") {
		t.Error("Exists() = true for an unregistered game")
	}

	infos := List()
	posA, posB := -1, -1
	for i, info := range infos {
		switch info.ID {
		case "list-test-a":
			posA = i
		case "list-test-b":
			posB = i
		}
	}
	if posA == -1 || posB == -1 {
		t.Fatal("List() missing registered games")
	}
	if posA > posB {
		t.Error("List() is not sorted by ID")
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	Register(testSpec("dup-test"))

	defer func() {
		if recover() == nil {
			t.Error("duplicate Register() did not panic")
		}
	}()
	Register(testSpec("dup-test"))
}

func TestGetUnknown(t *testing.T) {
	if _, err := Get("no-such-game"); err == nil {
		t.Error("Get() succeeded for an unknown game")
	}
}

func TestSpecScriptedSession(t *testing.T) {
	sp := testSpec("scripted-test")
	Register(sp)

	def, err := Get("scripted-test")
	if err != nil {
		t.Fatalf("Get() failed: %v", err)
	}

	sess, err := def.NewSession(Options{Script: []string{"1"}, Repeat: true})
	if err != nil {
		t.Fatalf("NewSession() failed: %v", err)
	}

	score, err := sess.Advance(context.Background(), 100)
	if err != nil {
		t.Fatalf("Advance() failed: %v", err)
	}
	if score != 3 {
		t.Errorf("score = %d, expected 3", score)
	}
	if sess.Ticks() != 3 {
		t.Errorf("Ticks() = %d, expected 3", sess.Ticks())
	}
	if sess.Identity() == "" {
		t.Error("session has no generated identity")
	}

	tokens := sess.ScriptTokens()
	if len(tokens) != 3 {
		t.Fatalf("ScriptTokens() returned %d tokens, expected 3", len(tokens))
	}
	for i, tok := range tokens {
		if tok != "1" {
			t.Errorf("token[%d] = %q, expected %q", i, tok, "1")
		}
	}

	if sess.Frame() != "count: 3" {
		t.Errorf("Frame() = %q, expected %q", sess.Frame(), "count: 3")
	}
}

func TestSpecRejectsBadScriptToken(t *testing.T) {
	sp := testSpec("bad-token-test")
	if _, err := sp.NewSession(Options{Script: []string{"1", "oops"}}); err == nil {
		t.Error("NewSession() accepted an undecodable script token")
	}
}

func TestSpecLiveSession(t *testing.T) {
	sp := testSpec("live-test")

	src := live.NewKeySource(0, 8)
	defer src.Close()
	for range 3 {
		src.Push("1")
	}

	sink := live.NewFrameBuffer(8)
	sess, err := sp.NewSession(Options{Source: src, Sink: sink})
	if err != nil {
		t.Fatalf("NewSession() failed: %v", err)
	}

	score, err := sess.Advance(context.Background(), 10)
	if err != nil {
		t.Fatalf("Advance() failed: %v", err)
	}
	if score != 3 {
		t.Errorf("score = %d, expected 3", score)
	}

	// One frame per tick was pushed to the sink.
	select {
	case f := <-sink.Frames():
		if f.Tick != 0 || f.View != "count: 0" {
			t.Errorf("first frame = %+v, expected tick 0 of the initial state", f)
		}
	default:
		t.Error("no frames reached the sink")
	}
}

func TestSpecPreservesIdentity(t *testing.T) {
	sp := testSpec("identity-test")

	sess, err := sp.NewSession(Options{Identity: engine.Identity("fixed-token"), Script: []string{"1"}, Repeat: true})
	if err != nil {
		t.Fatalf("NewSession() failed: %v", err)
	}
	if sess.Identity() != engine.Identity("fixed-token") {
		t.Errorf("Identity() = %q, expected the supplied token", sess.Identity())
	}
}
