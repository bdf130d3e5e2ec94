// Package access defines the interfaces for the access rights control.
package access

import (
	"encoding"
	"strings"

	"github.com/todoledger/todoledger/core/store"
)

// Identity is an abstraction to uniquely identify a signer.
type Identity interface {
	encoding.TextMarshaler

	// Equal returns true when the other object is the same identity.
	Equal(other interface{}) bool
}

// Credential is an abstraction of an access control credential. It is composed
// of an identifier and a rule that scopes the access.
type Credential interface {
	// GetID returns the identifier of the credential.
	GetID() []byte

	// GetRule returns the rule of the credential.
	GetRule() string
}

// Service is an access control service that can be used to verify and to
// grant an access to a given credential.
type Service interface {
	// Match returns nil when every identity is allowed to use the credential
	// according to the accesses stored.
	Match(store store.Readable, creds Credential, idents ...Identity) error

	// Grant updates the store so that the identities will be allowed to use
	// the credential.
	Grant(store store.Snapshot, creds Credential, idents ...Identity) error
}

// Compile returns a compacted rule from the string segments.
func Compile(segments ...string) string {
	return strings.Join(segments, ":")
}
