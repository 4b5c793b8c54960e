package keeper_test

import (
	"testing"

	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/stretchr/testify/require"

	"github.com/novachain/compute/x/compute/internal/types"
)

func TestExecuteDispatchesBankSendSubMessage(t *testing.T) {
	f := setupTest(t)

	codeID, err := f.Keeper.StoreCode(f.Ctx, creator, []byte("fake wasm bytecode"), "", "", nil)
	require.NoError(t, err)
	contractAddr, _, err := f.Keeper.Instantiate(f.Ctx, codeID, creator, admin, []byte(`{}`), "payer", nil)
	require.NoError(t, err)
	f.Bank.balances[contractAddr.String()] = sdk.NewCoins(sdk.NewInt64Coin("stake", 100))

	f.Engine.ExecuteFn = func(checksum []byte, env types.Env, info types.MessageInfo, msg []byte) (*types.Response, uint64, error) {
		return &types.Response{
			Messages: []types.SubMsg{
				{
					ID:      1,
					ReplyOn: types.ReplyNever,
					Msg: types.CosmosMsg{
						Bank: &types.BankMsg{
							Send: &types.SendMsg{
								ToAddress: other.String(),
								Amount:    []types.Coin{{Denom: "stake", Amount: "5"}},
							},
						},
					},
				},
			},
		}, 1000, nil
	}

	_, err = f.Keeper.Execute(f.Ctx, contractAddr, other, []byte(`{"pay":{}}`), nil)
	require.NoError(t, err)

	require.Equal(t, int64(5), f.Bank.GetBalance(f.Ctx, other, "stake").Amount.Int64())
	require.Equal(t, int64(95), f.Bank.GetBalance(f.Ctx, contractAddr, "stake").Amount.Int64())
}

func TestSubMessageReplyOnErrorInvokesReply(t *testing.T) {
	f := setupTest(t)

	codeID, err := f.Keeper.StoreCode(f.Ctx, creator, []byte("fake wasm bytecode"), "", "", nil)
	require.NoError(t, err)
	contractAddr, _, err := f.Keeper.Instantiate(f.Ctx, codeID, creator, admin, []byte(`{}`), "replier", nil)
	require.NoError(t, err)

	var replyInvoked bool
	f.Engine.ReplyFn = func(checksum []byte, env types.Env, reply types.Reply) (*types.Response, uint64, error) {
		replyInvoked = true
		require.NotEmpty(t, reply.Result.Err)
		return &types.Response{}, 500, nil
	}
	f.Engine.ExecuteFn = func(checksum []byte, env types.Env, info types.MessageInfo, msg []byte) (*types.Response, uint64, error) {
		return &types.Response{
			Messages: []types.SubMsg{
				{
					ID:      7,
					ReplyOn: types.ReplyError,
					Msg: types.CosmosMsg{
						Wasm: &types.WasmMsg{
							Execute: &types.ExecuteMsg{
								ContractAddr: sdk.AccAddress([]byte("no-such-contract____")).String(),
								Msg:          []byte(`{}`),
							},
						},
					},
				},
			},
		}, 1000, nil
	}

	_, err = f.Keeper.Execute(f.Ctx, contractAddr, other, []byte(`{"trigger":{}}`), nil)
	require.NoError(t, err)
	require.True(t, replyInvoked, "ReplyOn=error sub-message failure must invoke the parent contract's Reply")
}
