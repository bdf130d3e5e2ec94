package access

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestContractCredential_GetID(t *testing.T) {
	creds := NewContractCreds([]byte{1, 2, 3}, "Todo", "all")

	id := creds.GetID()
	require.Equal(t, []byte{1, 2, 3}, id)

	// The identifier must be a copy.
	id[0] = 4
	require.Equal(t, []byte{1, 2, 3}, creds.GetID())
}

func TestContractCredential_GetRule(t *testing.T) {
	creds := NewContractCreds([]byte{1}, "Todo", "all")

	require.Equal(t, "Todo:all", creds.GetRule())
}

func TestCompile(t *testing.T) {
	require.Equal(t, "a:b:c", Compile("a", "b", "c"))
}
