// Package crypto defines the cryptographic primitives needed to sign the
// transactions of the ledger.
package crypto

import (
	"crypto/sha256"
	"encoding"
	"hash"
)

// HashFactory is an interface to produce a hash digest.
type HashFactory interface {
	New() hash.Hash
}

// Sha256Factory is a hash factory that is using the SHA-256 algorithm.
//
// - implements crypto.HashFactory
type Sha256Factory struct{}

// NewSha256Factory returns a new instance of the factory.
func NewSha256Factory() Sha256Factory {
	return Sha256Factory{}
}

// New implements crypto.HashFactory. It returns a new SHA-256 instance.
func (f Sha256Factory) New() hash.Hash {
	return sha256.New()
}

// PublicKey is a public identity that can be used to verify a signature.
type PublicKey interface {
	encoding.BinaryMarshaler
	encoding.TextMarshaler

	// Verify returns nil if the signature matches the message for this public
	// key.
	Verify(msg []byte, signature Signature) error

	// Equal returns true when the other object is equal to this public key.
	Equal(other interface{}) bool
}

// Signature is a verifiable element for a unique message.
type Signature interface {
	encoding.BinaryMarshaler

	// Equal returns true when the other object is equal to this signature.
	Equal(other Signature) bool
}

// Signer provides the primitives to sign and verify signatures.
type Signer interface {
	// GetPublicKey returns the public key of the signer.
	GetPublicKey() PublicKey

	// Sign signs the message and returns the signature.
	Sign(msg []byte) (Signature, error)
}
