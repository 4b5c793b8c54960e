package types_test

import (
	"testing"

	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/stretchr/testify/require"

	"github.com/novachain/compute/x/compute/internal/types"
)

func TestCodeIndexKeyRoundTrips(t *testing.T) {
	addr := sdk.AccAddress([]byte("contract____________"))
	key := types.GetCodeIndexKey(7, addr)

	require.True(t, len(key) > 0 && key[0] == types.CodeIndexKeyPrefix[0])

	suffix := key[1:]
	require.Equal(t, uint64(7), types.ParseCodeIDFromIndexKey(suffix))
	require.Equal(t, addr.String(), types.ParseAddrFromIndexKey(suffix).String())
}

func TestCodeIndexIteratorPrefixIsAKeyPrefix(t *testing.T) {
	addr := sdk.AccAddress([]byte("contract____________"))
	key := types.GetCodeIndexKey(7, addr)
	prefix := types.GetCodeIndexIteratorPrefix(7)

	require.True(t, len(key) >= len(prefix))
	require.Equal(t, prefix, key[:len(prefix)])

	otherPrefix := types.GetCodeIndexIteratorPrefix(8)
	require.NotEqual(t, prefix, otherPrefix)
}

func TestDistinctKeyPrefixesNeverCollide(t *testing.T) {
	addr := sdk.AccAddress([]byte("contract____________"))
	keys := [][]byte{
		types.GetCodeKey(1),
		types.GetCodeRawKey(1),
		types.GetContractAddressKey(addr),
		types.GetContractStorePrefixKey(addr),
		types.GetCodeIndexKey(1, addr),
		types.GetMigrationHistoryKey(addr, 1),
		types.GetContractLabelKey("label"),
	}
	seen := map[byte]bool{}
	for _, k := range keys {
		require.False(t, seen[k[0]], "prefix byte %x reused", k[0])
		seen[k[0]] = true
	}
}
