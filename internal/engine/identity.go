package engine

import (
	"crypto/rand"
	"encoding/base32"
	"strings"
)

// Identity is an opaque token distinguishing one play-through from every
// other, including play-throughs with identical initial states and
// identical response histories. It is not gameplay data: it exists so that
// two sessions are never the same function application, which keeps any
// memoizing layer from substituting one session's recorded responses into
// another. Every Respond call receives it explicitly.
type Identity string

// identityLen is the token length in base32 characters.
const identityLen = 12

// NewIdentity generates a fresh random identity token.
func NewIdentity() Identity {
	buf := make([]byte, 8)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand failing means the platform is broken; there is no
		// reasonable fallback that preserves uniqueness.
		panic("engine: cannot generate identity: " + err.Error())
	}

	enc := base32.StdEncoding.WithPadding(base32.NoPadding).EncodeToString(buf)
	enc = strings.ToLower(enc)
	if len(enc) > identityLen {
		enc = enc[:identityLen]
	}
	return Identity(enc)
}

// String returns the token text.
func (id Identity) String() string { return string(id) }
