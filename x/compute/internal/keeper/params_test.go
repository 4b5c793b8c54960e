package keeper_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/novachain/compute/x/compute/internal/types"
)

func TestSetParamsPushesChangeThroughToEngine(t *testing.T) {
	f := setupTest(t)

	newParams := types.DefaultParams()
	newParams.MaxWasmCodeSize = 2048
	newParams.MemoryCacheSize = 7

	require.NoError(t, f.Keeper.SetParams(f.Ctx, newParams))

	got := f.Keeper.GetParams(f.Ctx)
	require.Equal(t, uint64(2048), got.MaxWasmCodeSize)
	require.Equal(t, uint32(7), got.MemoryCacheSize)
	require.Equal(t, newParams, f.Engine.LastParams)
}

func TestSetParamsRejectsInvalidParams(t *testing.T) {
	f := setupTest(t)

	bad := types.DefaultParams()
	bad.MaxWasmCodeSize = 0

	require.Error(t, f.Keeper.SetParams(f.Ctx, bad))
}
