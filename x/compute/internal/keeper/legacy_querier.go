package keeper

import (
	"encoding/json"
	"strconv"

	sdk "github.com/cosmos/cosmos-sdk/types"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"
	abci "github.com/tendermint/tendermint/abci/types"

	"github.com/novachain/compute/x/compute/internal/types"
)

// Legacy query route path segments, matching the wire-compatible query set
// of the module's external query surface.
const (
	QueryListContractByCode = "list-contracts-by-code"
	QueryGetContract        = "contract-info"
	QueryGetCode            = "code"
	QuerySmartContractState = "smart"
	QueryRawContractState   = "raw"
)

// NewLegacyQuerier builds the module's legacy (path-routed) query handler,
// answering the external query shapes as plain JSON (encoding/json).
func NewLegacyQuerier(keeper Keeper) sdk.Querier {
	return func(ctx sdk.Context, path []string, req abci.RequestQuery) ([]byte, error) {
		if len(path) < 1 {
			return nil, sdkerrors.Wrap(types.ErrInvalidRequest, "unknown query path")
		}
		switch path[0] {
		case QueryGetContract:
			if len(path) < 2 {
				return nil, sdkerrors.Wrap(types.ErrInvalidRequest, "missing contract address")
			}
			addr, err := sdk.AccAddressFromBech32(path[1])
			if err != nil {
				return nil, sdkerrors.Wrap(types.ErrInvalidRequest, err.Error())
			}
			resp, err := keeper.QueryContractInfo(ctx, addr)
			if err != nil {
				return nil, err
			}
			return json.Marshal(resp)

		case QueryGetCode:
			if len(path) < 2 {
				return nil, sdkerrors.Wrap(types.ErrInvalidRequest, "missing code id")
			}
			codeID, err := strconv.ParseUint(path[1], 10, 64)
			if err != nil {
				return nil, sdkerrors.Wrap(types.ErrInvalidRequest, "invalid code id")
			}
			resp, err := keeper.QueryCode(ctx, codeID)
			if err != nil {
				return nil, err
			}
			return json.Marshal(resp)

		case QueryListContractByCode:
			if len(path) < 2 {
				return nil, sdkerrors.Wrap(types.ErrInvalidRequest, "missing code id")
			}
			codeID, err := strconv.ParseUint(path[1], 10, 64)
			if err != nil {
				return nil, sdkerrors.Wrap(types.ErrInvalidRequest, "invalid code id")
			}
			resp, err := keeper.QueryContractsByCode(ctx, codeID, types.PageRequest{})
			if err != nil {
				return nil, err
			}
			return json.Marshal(resp)

		case QuerySmartContractState:
			if len(path) < 2 {
				return nil, sdkerrors.Wrap(types.ErrInvalidRequest, "missing contract address")
			}
			addr, err := sdk.AccAddressFromBech32(path[1])
			if err != nil {
				return nil, sdkerrors.Wrap(types.ErrInvalidRequest, err.Error())
			}
			return keeper.QuerySmart(ctx, addr, req.Data)

		case QueryRawContractState:
			if len(path) < 2 {
				return nil, sdkerrors.Wrap(types.ErrInvalidRequest, "missing contract address")
			}
			addr, err := sdk.AccAddressFromBech32(path[1])
			if err != nil {
				return nil, sdkerrors.Wrap(types.ErrInvalidRequest, err.Error())
			}
			return keeper.QueryRaw(ctx, addr, req.Data), nil

		default:
			return nil, sdkerrors.Wrap(types.ErrInvalidRequest, "unknown query path")
		}
	}
}
