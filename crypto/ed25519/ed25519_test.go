package ed25519

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSigner_SignAndVerify(t *testing.T) {
	signer := NewSigner()

	sig, err := signer.Sign([]byte("deadbeef"))
	require.NoError(t, err)

	err = signer.GetPublicKey().Verify([]byte("deadbeef"), sig)
	require.NoError(t, err)

	err = signer.GetPublicKey().Verify([]byte("beefdead"), sig)
	require.Error(t, err)
	require.Contains(t, err.Error(), "schnorr verify failed")
}

func TestSigner_MarshalRoundTrip(t *testing.T) {
	signer := NewSigner()

	data, err := signer.MarshalBinary()
	require.NoError(t, err)

	restored, err := NewSignerFromBytes(data)
	require.NoError(t, err)

	require.True(t, signer.GetPublicKey().Equal(restored.GetPublicKey()))

	sig, err := restored.Sign([]byte("deadbeef"))
	require.NoError(t, err)

	err = signer.GetPublicKey().Verify([]byte("deadbeef"), sig)
	require.NoError(t, err)
}

func TestPublicKey_MarshalText(t *testing.T) {
	signer := NewSigner()

	pk := signer.GetPublicKey()

	text, err := pk.MarshalText()
	require.NoError(t, err)
	require.Regexp(t, "^schnorr:[0-9a-f]{64}$", string(text))

	data, err := pk.MarshalBinary()
	require.NoError(t, err)

	restored, err := NewPublicKey(data)
	require.NoError(t, err)
	require.True(t, pk.Equal(restored))

	_, err = NewPublicKey([]byte{1, 2, 3})
	require.Error(t, err)
}

func TestPublicKey_Equal(t *testing.T) {
	signer := NewSigner()

	pk := signer.GetPublicKey()
	require.True(t, pk.Equal(pk))
	require.False(t, pk.Equal(struct{}{}))
	require.False(t, pk.Equal(NewSigner().GetPublicKey()))
}

func TestSignature_Equal(t *testing.T) {
	sig := NewSignature([]byte{1, 2, 3})

	require.True(t, sig.Equal(NewSignature([]byte{1, 2, 3})))
	require.False(t, sig.Equal(NewSignature([]byte{3, 2, 1})))
}
