package engine

import (
	"sync"
	"testing"
)

func TestStoreAppendAndRead(t *testing.T) {
	s := NewStore[string]()

	if s.Len() != 0 {
		t.Errorf("Len() = %d on empty store, expected 0", s.Len())
	}
	if _, ok := s.Last(); ok {
		t.Error("Last() reported an element on an empty store")
	}
	if _, ok := s.At(0); ok {
		t.Error("At(0) reported an element on an empty store")
	}

	s.Append("a")
	s.Append("b")
	s.Append("c")

	if s.Len() != 3 {
		t.Errorf("Len() = %d, expected 3", s.Len())
	}

	tests := []struct {
		idx  int
		want string
		ok   bool
	}{
		{0, "a", true},
		{1, "b", true},
		{2, "c", true},
		{3, "", false},
		{-1, "", false},
	}
	for _, tc := range tests {
		got, ok := s.At(tc.idx)
		if ok != tc.ok || got != tc.want {
			t.Errorf("At(%d) = (%q, %v), expected (%q, %v)", tc.idx, got, ok, tc.want, tc.ok)
		}
	}

	if last, ok := s.Last(); !ok || last != "c" {
		t.Errorf("Last() = (%q, %v), expected (\"c\", true)", last, ok)
	}
}

func TestStorePrefixStability(t *testing.T) {
	s := NewStore[int]()
	s.Append(10)
	s.Append(20)

	prefix := s.Prefix()
	s.Append(30)
	s.Append(40)

	// The prefix taken earlier must be unaffected by later appends.
	if len(prefix) != 2 {
		t.Fatalf("prefix length = %d, expected 2", len(prefix))
	}
	if prefix[0] != 10 || prefix[1] != 20 {
		t.Errorf("prefix = %v, expected [10 20]", prefix)
	}

	// And appending to a stale prefix header must not write through to the
	// store's backing array (full-capacity slice).
	_ = append(prefix, 99)
	if v, _ := s.At(2); v != 30 {
		t.Errorf("state[2] = %d after stale-prefix append, expected 30", v)
	}
}

func TestStoreConcurrentReaders(t *testing.T) {
	s := NewStore[int]()

	var wg sync.WaitGroup
	stop := make(chan struct{})

	for range 4 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-stop:
					return
				default:
				}
				n := s.Len()
				p := s.Prefix()
				if len(p) < n {
					t.Errorf("Prefix() shorter than Len(): %d < %d", len(p), n)
					return
				}
				for i, v := range p {
					if v != i {
						t.Errorf("prefix[%d] = %d, expected %d", i, v, i)
						return
					}
				}
			}
		}()
	}

	for i := range 1000 {
		s.Append(i)
	}
	close(stop)
	wg.Wait()
}
