package engine

import "testing"

func TestNewIdentityUnique(t *testing.T) {
	seen := make(map[Identity]bool)
	for range 1000 {
		id := NewIdentity()
		if seen[id] {
			t.Fatalf("NewIdentity() returned duplicate token %q", id)
		}
		seen[id] = true
	}
}

func TestNewIdentityShape(t *testing.T) {
	id := NewIdentity()
	if len(id) != identityLen {
		t.Errorf("identity length = %d, expected %d", len(id), identityLen)
	}
	if id.String() == "" {
		t.Error("String() returned an empty token")
	}
}
