package keeper_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/novachain/compute/x/compute/internal/types"
)

func TestExportGenesisThenInitGenesisRoundTrips(t *testing.T) {
	f := setupTest(t)

	codeID, err := f.Keeper.StoreCode(f.Ctx, creator, []byte("fake wasm bytecode"), "https://example.com/src", "", nil)
	require.NoError(t, err)
	contractAddr, _, err := f.Keeper.Instantiate(f.Ctx, codeID, creator, admin, []byte(`{}`), "genesis contract", nil)
	require.NoError(t, err)

	f.Engine.ExecuteFn = func(checksum []byte, env types.Env, info types.MessageInfo, msg []byte) (*types.Response, uint64, error) {
		return &types.Response{}, 1, nil
	}
	_, err = f.Keeper.Execute(f.Ctx, contractAddr, other, []byte(`{"noop":{}}`), nil)
	require.NoError(t, err)

	exported := f.Keeper.ExportGenesis(f.Ctx)
	require.Len(t, exported.Codes, 1)
	require.Len(t, exported.Contracts, 1)

	g2 := setupTest(t)
	require.NoError(t, g2.Keeper.InitGenesis(g2.Ctx, exported))

	info, ok := g2.Keeper.GetCodeInfo(g2.Ctx, codeID)
	require.True(t, ok)
	require.Equal(t, creator.String(), info.Creator.String())

	cInfo, ok := g2.Keeper.GetContractInfo(g2.Ctx, contractAddr)
	require.True(t, ok)
	require.Equal(t, "genesis contract", cInfo.Label)

	reExported := g2.Keeper.ExportGenesis(g2.Ctx)
	require.Equal(t, exported.Codes, reExported.Codes)
	require.Equal(t, exported.Contracts, reExported.Contracts)

	newCodeID, err := g2.Keeper.StoreCode(g2.Ctx, creator, []byte("next wasm bytecode"), "", "", nil)
	require.NoError(t, err)
	require.Equal(t, codeID+1, newCodeID)
}
