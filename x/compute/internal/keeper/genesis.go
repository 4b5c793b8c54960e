package keeper

import (
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/novachain/compute/x/compute/internal/types"
)

// InitGenesis replays a previously exported GenesisState: codes are
// recompiled through the engine (their checksum must round-trip
// byte-identical, the determinism contract §4.3.1 requires), contracts are
// recreated with their exact stored state, and the sequence counters are
// restored so the next StoreCode/Instantiate continues exactly where the
// exported chain left off.
func (k Keeper) InitGenesis(ctx sdk.Context, data types.GenesisState) error {
	if err := k.SetParams(ctx, data.Params); err != nil {
		return err
	}

	var maxCodeID uint64
	for _, code := range data.Codes {
		checksum, err := k.engine.StoreCode(code.CodeID, code.CodeBytes)
		if err != nil {
			return err
		}
		info := code.CodeInfo
		info.CodeHash = checksum
		k.storeCodeInfo(ctx, code.CodeID, info)
		if len(code.CodeBytes) > 0 {
			ctx.KVStore(k.storeKey).Set(types.GetCodeRawKey(code.CodeID), code.CodeBytes)
		}
		if code.CodeID > maxCodeID {
			maxCodeID = code.CodeID
		}
	}

	var maxInstanceSeq uint64
	for _, contract := range data.Contracts {
		addr, err := sdk.AccAddressFromBech32(contract.ContractAddress)
		if err != nil {
			return err
		}
		k.setContractInfo(ctx, addr, contract.ContractInfo)
		k.setCodeIndex(ctx, contract.ContractInfo.CodeID, addr)
		k.importContractState(ctx, addr, contract.ContractState)
		maxInstanceSeq++
	}

	for _, seq := range data.Sequences {
		if err := k.importAutoIncrementID(ctx, seq.IDKey, seq.Value); err != nil {
			return err
		}
	}
	return nil
}

// ExportGenesis captures the module's full state: every code (metadata plus
// the raw bytes the engine has on file), every contract (metadata plus its
// complete key/value state), and the sequence counters, so InitGenesis can
// reproduce an identical store.
func (k Keeper) ExportGenesis(ctx sdk.Context) types.GenesisState {
	state := types.GenesisState{Params: k.GetParams(ctx)}

	k.IterateCodeInfos(ctx, func(codeID uint64, info types.CodeInfo) bool {
		bytecode, err := k.engine.GetCode(info.CodeHash)
		if err != nil {
			bytecode = nil
		}
		state.Codes = append(state.Codes, types.Code{
			CodeID:    codeID,
			CodeInfo:  info,
			CodeBytes: bytecode,
		})
		return false
	})

	k.IterateContractInfo(ctx, func(addr sdk.AccAddress, info types.ContractInfo) bool {
		state.Contracts = append(state.Contracts, types.Contract{
			ContractAddress: addr.String(),
			ContractInfo:    info,
			ContractState:   k.GetContractState(ctx, addr),
		})
		return false
	})

	state.Sequences = []types.Sequence{
		{IDKey: types.SequenceKeyLastCodeID, Value: k.peekAutoIncrementID(ctx, types.SequenceKeyLastCodeID) - 1},
		{IDKey: types.SequenceKeyLastInstanceID, Value: k.peekAutoIncrementID(ctx, types.SequenceKeyLastInstanceID) - 1},
	}
	return state
}
