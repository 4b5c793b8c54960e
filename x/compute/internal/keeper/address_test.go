package keeper

import (
	"testing"

	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/stretchr/testify/require"
)

func TestSequentialContractAddressIsDeterministic(t *testing.T) {
	addr1 := sequentialContractAddress(1, 1)
	addr2 := sequentialContractAddress(1, 1)
	require.Equal(t, addr1, addr2)
	require.Len(t, addr1, 20)

	addr3 := sequentialContractAddress(1, 2)
	require.NotEqual(t, addr1, addr3)

	addr4 := sequentialContractAddress(2, 1)
	require.NotEqual(t, addr1, addr4)
}

func TestPredictableContractAddressIsDeterministic(t *testing.T) {
	checksum := []byte("0123456789abcdef0123456789abcdef")
	creator := sdk.AccAddress([]byte("creator_____________"))
	salt := []byte("a-salt")
	initMsg := []byte(`{"count":1}`)

	addr1 := predictableContractAddress(checksum, creator, salt, initMsg)
	addr2 := predictableContractAddress(checksum, creator, salt, initMsg)
	require.Equal(t, addr1, addr2)
	require.Len(t, addr1, 20)

	addrDifferentSalt := predictableContractAddress(checksum, creator, []byte("other-salt"), initMsg)
	require.NotEqual(t, addr1, addrDifferentSalt)

	addrDifferentMsg := predictableContractAddress(checksum, creator, salt, []byte(`{"count":2}`))
	require.NotEqual(t, addr1, addrDifferentMsg)
}
