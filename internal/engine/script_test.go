package engine

import (
	"context"
	"errors"
	"testing"
)

func TestScriptRespond(t *testing.T) {
	script := NewScript[int]("left", "right", "stay")

	tests := []struct {
		name      string
		prefixLen int
		want      string
	}{
		{"tick 0", 1, "left"},
		{"tick 1", 2, "right"},
		{"tick 2", 3, "stay"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			prefix := make([]int, tc.prefixLen)
			got, err := script.Respond(context.Background(), Identity("x"), prefix)
			if err != nil {
				t.Fatalf("Respond() failed: %v", err)
			}
			if got != tc.want {
				t.Errorf("Respond() = %q, expected %q", got, tc.want)
			}
		})
	}
}

func TestScriptExhaustion(t *testing.T) {
	script := NewScript[int](1, 2)

	_, err := script.Respond(context.Background(), Identity("x"), make([]int, 3))
	if !errors.Is(err, ErrScriptExhausted) {
		t.Errorf("Respond() past the end = %v, expected ErrScriptExhausted", err)
	}

	_, err = (&Script[int, int]{}).Respond(context.Background(), Identity("x"), make([]int, 1))
	if !errors.Is(err, ErrScriptExhausted) {
		t.Errorf("Respond() on empty script = %v, expected ErrScriptExhausted", err)
	}
}

func TestScriptRepeat(t *testing.T) {
	script := &Script[int, int]{Responses: []int{7, 8, 9}, Repeat: true}

	for i, want := range []int{7, 8, 9, 7, 8, 9, 7} {
		got, err := script.Respond(context.Background(), Identity("x"), make([]int, i+1))
		if err != nil {
			t.Fatalf("Respond() at tick %d failed: %v", i, err)
		}
		if got != want {
			t.Errorf("Respond() at tick %d = %d, expected %d", i, got, want)
		}
	}
}
