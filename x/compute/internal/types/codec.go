package types

import (
	"github.com/cosmos/cosmos-sdk/codec"
	cryptocodec "github.com/cosmos/cosmos-sdk/crypto/codec"
)

// ModuleCdc is used only for sign-bytes generation (legacy amino JSON); all
// persistent state uses the LegacyAmino binary encoding of the codec
// injected into the keeper.
var ModuleCdc = codec.NewLegacyAmino()

// RegisterLegacyAminoCodec registers this module's interfaces and concrete
// message types on the provided LegacyAmino codec.
func RegisterLegacyAminoCodec(cdc *codec.LegacyAmino) {
	cdc.RegisterConcrete(MsgStoreCode{}, "compute/MsgStoreCode", nil)
	cdc.RegisterConcrete(MsgInstantiateContract{}, "compute/MsgInstantiateContract", nil)
	cdc.RegisterConcrete(MsgExecuteContract{}, "compute/MsgExecuteContract", nil)
	cdc.RegisterConcrete(MsgMigrateContract{}, "compute/MsgMigrateContract", nil)
	cdc.RegisterConcrete(MsgUpdateAdmin{}, "compute/MsgUpdateAdmin", nil)
	cdc.RegisterConcrete(MsgClearAdmin{}, "compute/MsgClearAdmin", nil)
}

func init() {
	RegisterLegacyAminoCodec(ModuleCdc)
	cryptocodec.RegisterCrypto(ModuleCdc)
	ModuleCdc.Seal()
}
