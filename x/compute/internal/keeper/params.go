package keeper

import (
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/novachain/compute/x/compute/internal/types"
)

// GetParams returns the module's current governance-mutable parameter set.
func (k Keeper) GetParams(ctx sdk.Context) types.Params {
	var params types.Params
	k.paramSpace.GetParamSet(ctx, &params)
	return params
}

// SetParams overwrites the module's parameter set and pushes the change
// through to the engine, so a resized module cache takes effect immediately
// rather than at the next restart.
func (k Keeper) SetParams(ctx sdk.Context, params types.Params) error {
	if err := params.Validate(); err != nil {
		return err
	}
	k.paramSpace.SetParamSet(ctx, &params)
	k.moduleCache.resize(int(params.MemoryCacheSize))
	k.engine.OnParamsChanged(params)
	return nil
}
