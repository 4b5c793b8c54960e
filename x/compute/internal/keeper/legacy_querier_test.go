package keeper_test

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	abci "github.com/tendermint/tendermint/abci/types"

	"github.com/novachain/compute/x/compute/internal/keeper"
	"github.com/novachain/compute/x/compute/internal/types"
)

func TestLegacyQuerierRoutesEachPath(t *testing.T) {
	f := setupTest(t)
	querier := keeper.NewLegacyQuerier(f.Keeper)

	codeID, err := f.Keeper.StoreCode(f.Ctx, creator, []byte("fake wasm bytecode"), "", "", nil)
	require.NoError(t, err)
	contractAddr, _, err := f.Keeper.Instantiate(f.Ctx, codeID, creator, admin, []byte(`{}`), "queried", nil)
	require.NoError(t, err)

	f.Engine.QueryFn = func(checksum []byte, env types.Env, msg []byte) ([]byte, uint64, error) {
		return []byte(`{"ok":true}`), 1, nil
	}

	t.Run("contract-info", func(t *testing.T) {
		bz, err := querier(f.Ctx, []string{keeper.QueryGetContract, contractAddr.String()}, abci.RequestQuery{})
		require.NoError(t, err)
		var resp types.QueryContractInfoResponse
		require.NoError(t, json.Unmarshal(bz, &resp))
	})

	t.Run("code", func(t *testing.T) {
		bz, err := querier(f.Ctx, []string{keeper.QueryGetCode, fmt.Sprintf("%d", codeID)}, abci.RequestQuery{})
		require.NoError(t, err)
		var resp types.QueryCodeResponse
		require.NoError(t, json.Unmarshal(bz, &resp))
	})

	t.Run("list-contracts-by-code", func(t *testing.T) {
		bz, err := querier(f.Ctx, []string{keeper.QueryListContractByCode, fmt.Sprintf("%d", codeID)}, abci.RequestQuery{})
		require.NoError(t, err)
		var resp types.QueryContractsByCodeResponse
		require.NoError(t, json.Unmarshal(bz, &resp))
		require.Len(t, resp.Addresses, 1)
	})

	t.Run("smart", func(t *testing.T) {
		bz, err := querier(f.Ctx, []string{keeper.QuerySmartContractState, contractAddr.String()}, abci.RequestQuery{Data: []byte(`{"get":{}}`)})
		require.NoError(t, err)
		require.JSONEq(t, `{"ok":true}`, string(bz))
	})

	t.Run("raw", func(t *testing.T) {
		bz, err := querier(f.Ctx, []string{keeper.QueryRawContractState, contractAddr.String()}, abci.RequestQuery{Data: []byte("missing-key")})
		require.NoError(t, err)
		require.Empty(t, bz)
	})

	t.Run("unknown path", func(t *testing.T) {
		_, err := querier(f.Ctx, []string{"not-a-real-path"}, abci.RequestQuery{})
		require.ErrorIs(t, err, types.ErrInvalidRequest)
	})

	t.Run("bad address", func(t *testing.T) {
		_, err := querier(f.Ctx, []string{keeper.QueryGetContract, "not-bech32"}, abci.RequestQuery{})
		require.ErrorIs(t, err, types.ErrInvalidRequest)
	})
}
