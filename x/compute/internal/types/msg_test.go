package types_test

import (
	"testing"

	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/stretchr/testify/require"

	"github.com/novachain/compute/x/compute/internal/types"
)

var validSender = sdk.AccAddress([]byte("sender______________")).String()

func TestMsgStoreCodeValidateBasic(t *testing.T) {
	cases := map[string]struct {
		msg     types.MsgStoreCode
		wantErr bool
	}{
		"valid": {
			msg:     types.MsgStoreCode{Sender: validSender, WASMByteCode: []byte("wasm")},
			wantErr: false,
		},
		"bad sender": {
			msg:     types.MsgStoreCode{Sender: "not-a-bech32-addr", WASMByteCode: []byte("wasm")},
			wantErr: true,
		},
		"empty code": {
			msg:     types.MsgStoreCode{Sender: validSender},
			wantErr: true,
		},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			err := tc.msg.ValidateBasic()
			if tc.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestMsgInstantiateContractValidateBasic(t *testing.T) {
	base := types.MsgInstantiateContract{
		Sender:  validSender,
		CodeID:  1,
		Label:   "a label",
		InitMsg: []byte(`{}`),
		Funds:   sdk.NewCoins(),
	}
	require.NoError(t, base.ValidateBasic())

	missingCodeID := base
	missingCodeID.CodeID = 0
	require.Error(t, missingCodeID.ValidateBasic())

	missingLabel := base
	missingLabel.Label = ""
	require.Error(t, missingLabel.ValidateBasic())

	missingInitMsg := base
	missingInitMsg.InitMsg = nil
	require.Error(t, missingInitMsg.ValidateBasic())

	badAdmin := base
	badAdmin.Admin = "not-a-bech32-addr"
	require.Error(t, badAdmin.ValidateBasic())
}

func TestMsgGetSignersReturnsSender(t *testing.T) {
	msg := types.MsgExecuteContract{Sender: validSender, Contract: validSender, Msg: []byte(`{}`), Funds: sdk.NewCoins()}
	signers := msg.GetSigners()
	require.Len(t, signers, 1)
	require.Equal(t, validSender, signers[0].String())
}
