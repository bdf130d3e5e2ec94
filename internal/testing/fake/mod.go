// Package fake provides fake implementations for interfaces commonly used in
// the repository.
//
// The implementations offer configuration to return errors when it is needed
// by the unit tests.
package fake

import (
	"github.com/todoledger/todoledger/crypto"
	"golang.org/x/xerrors"
)

var fakeErr = xerrors.New("fake error")

// GetError returns the fake error.
func GetError() error {
	return fakeErr
}

// Err returns the expected format of an error wrapping the fake error with the
// given message.
func Err(msg string) string {
	return msg + ": fake error"
}

// PublicKey is a fake implementation of crypto.PublicKey. It also implements
// access.Identity.
type PublicKey struct {
	name string
	err  error
}

// NewNamedPublicKey returns a fake public key with a name, so that two fake
// identities can be distinguished.
func NewNamedPublicKey(name string) PublicKey {
	return PublicKey{name: name}
}

// NewBadPublicKey returns a new fake public key that returns an error when
// appropriate.
func NewBadPublicKey() PublicKey {
	return PublicKey{err: fakeErr}
}

// MarshalBinary implements encoding.BinaryMarshaler.
func (pk PublicKey) MarshalBinary() ([]byte, error) {
	return []byte("PK"), pk.err
}

// MarshalText implements encoding.TextMarshaler.
func (pk PublicKey) MarshalText() ([]byte, error) {
	return []byte(pk.String()), pk.err
}

// Verify implements crypto.PublicKey.
func (pk PublicKey) Verify([]byte, crypto.Signature) error {
	return pk.err
}

// Equal implements crypto.PublicKey.
func (pk PublicKey) Equal(other interface{}) bool {
	pubkey, ok := other.(PublicKey)

	return ok && pubkey.name == pk.name
}

// String implements fmt.Stringer.
func (pk PublicKey) String() string {
	if pk.name != "" {
		return "fake.PublicKey[" + pk.name + "]"
	}

	return "fake.PublicKey"
}

// Signature is a fake implementation of crypto.Signature.
type Signature struct {
	err error
}

// MarshalBinary implements encoding.BinaryMarshaler.
func (sig Signature) MarshalBinary() ([]byte, error) {
	return []byte("SIG"), sig.err
}

// Equal implements crypto.Signature.
func (sig Signature) Equal(other crypto.Signature) bool {
	_, ok := other.(Signature)

	return ok
}

// Signer is a fake implementation of crypto.Signer.
type Signer struct {
	err error
}

// NewBadSigner returns a fake signer that will return an error when
// appropriate.
func NewBadSigner() Signer {
	return Signer{err: fakeErr}
}

// GetPublicKey implements crypto.Signer.
func (s Signer) GetPublicKey() crypto.PublicKey {
	return PublicKey{}
}

// Sign implements crypto.Signer.
func (s Signer) Sign([]byte) (crypto.Signature, error) {
	return Signature{}, s.err
}
