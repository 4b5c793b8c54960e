package keeper

import (
	"encoding/json"

	sdk "github.com/cosmos/cosmos-sdk/types"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"

	"github.com/novachain/compute/x/compute/internal/types"
)

// MaxQueryDepth is the recursion bound on a contract query that itself
// issues a Wasm smart-query against another contract. A depth of exactly
// MaxQueryDepth succeeds; one more fails with ErrQueryError.
const MaxQueryDepth = 10

// GasCostQuery is charged to the caller's gas budget for every recursive
// query the Querier routes, independent of what the query itself costs.
const GasCostQuery uint64 = 10 * GasMultiplier

// Querier is handed to the engine so a contract can issue queries against
// other modules (bank, staking, …) or other contracts, recursively.
type Querier interface {
	Query(request types.QueryRequest, gasLimit uint64) ([]byte, error)
	GasConsumed() uint64
}

// BankQuerier answers the Bank branch of QueryRequest.
type BankQuerier func(ctx sdk.Context, req types.BankQuery) ([]byte, error)

// StakingQuerier answers the Staking branch of QueryRequest.
type StakingQuerier func(ctx sdk.Context, req types.StakingQuery) ([]byte, error)

// CustomQuerier answers the Custom branch of QueryRequest; nil if the chain
// defines no custom queries.
type CustomQuerier func(ctx sdk.Context, raw json.RawMessage) ([]byte, error)

// QueryPlugins is the full set of recursive query routes the Querier may
// dispatch to, beyond the module's own Wasm smart/raw queries which the
// QueryHandler always answers directly via the keeper.
type QueryPlugins struct {
	Bank    BankQuerier
	Staking StakingQuerier
	Custom  CustomQuerier
}

// Merge overlays non-nil fields of o onto a copy of p, letting chains
// override individual plugins without re-specifying the rest.
func (p QueryPlugins) Merge(o *QueryPlugins) QueryPlugins {
	if o == nil {
		return p
	}
	if o.Bank != nil {
		p.Bank = o.Bank
	}
	if o.Staking != nil {
		p.Staking = o.Staking
	}
	if o.Custom != nil {
		p.Custom = o.Custom
	}
	return p
}

// DefaultQueryPlugins wires the bank and staking collaborators into their
// query plugin slots.
func DefaultQueryPlugins(bankKeeper types.BankKeeper, stakingKeeper types.StakingKeeper) QueryPlugins {
	return QueryPlugins{
		Bank:    bankQuerier(bankKeeper),
		Staking: stakingQuerier(stakingKeeper),
	}
}

func bankQuerier(bankKeeper types.BankKeeper) BankQuerier {
	return func(ctx sdk.Context, req types.BankQuery) ([]byte, error) {
		switch {
		case req.Balance != nil:
			addr, err := sdk.AccAddressFromBech32(req.Balance.Address)
			if err != nil {
				return nil, sdkerrors.Wrap(types.ErrInvalidRequest, err.Error())
			}
			coin := bankKeeper.GetBalance(ctx, addr, req.Balance.Denom)
			return json.Marshal(types.BalanceResponse{Amount: types.Coin{Denom: coin.Denom, Amount: coin.Amount.String()}})
		case req.AllBalances != nil:
			addr, err := sdk.AccAddressFromBech32(req.AllBalances.Address)
			if err != nil {
				return nil, sdkerrors.Wrap(types.ErrInvalidRequest, err.Error())
			}
			coins := bankKeeper.GetAllBalances(ctx, addr)
			return json.Marshal(types.AllBalancesResponse{Amount: types.NewCoinsFromSDK(coins)})
		default:
			return nil, sdkerrors.Wrap(types.ErrQueryError, "unknown bank query")
		}
	}
}

func stakingQuerier(stakingKeeper types.StakingKeeper) StakingQuerier {
	return func(ctx sdk.Context, req types.StakingQuery) ([]byte, error) {
		switch {
		case req.BondedDenom != nil:
			return json.Marshal(types.BondedDenomResponse{Denom: stakingKeeper.BondDenom(ctx)})
		default:
			return nil, sdkerrors.Wrap(types.ErrQueryError, "unsupported staking query")
		}
	}
}

// QueryHandler is the per-invocation Querier implementation: it threads the
// originating sdk.Context and recursion depth through to the keeper's own
// smart-query path, and to the chain's query plugins for everything else.
type QueryHandler struct {
	Ctx        sdk.Context
	Plugins    QueryPlugins
	Keeper     *Keeper
	Caller     sdk.AccAddress
	QueryDepth uint32
}

// GasConsumed reports the caller's gas meter consumption, used by the
// engine to compute the delta a recursive query spent.
func (q QueryHandler) GasConsumed() uint64 {
	return q.Ctx.GasMeter().GasConsumed() * GasMultiplier
}

// Query routes req to the appropriate plugin or, for Wasm queries, back into
// the keeper itself, enforcing the recursion depth bound and charging the
// caller's gas budget along the way.
func (q QueryHandler) Query(req types.QueryRequest, gasLimit uint64) ([]byte, error) {
	if q.QueryDepth >= MaxQueryDepth {
		return nil, sdkerrors.Wrapf(types.ErrQueryError, "query recursion depth exceeded (max %d)", MaxQueryDepth)
	}
	q.Ctx.GasMeter().ConsumeGas(GasCostQuery/GasMultiplier, "contract sub-query")

	switch {
	case req.Bank != nil:
		if q.Plugins.Bank == nil {
			return nil, sdkerrors.Wrap(types.ErrQueryError, "bank queries not supported")
		}
		return q.Plugins.Bank(q.Ctx, *req.Bank)
	case req.Staking != nil:
		if q.Plugins.Staking == nil {
			return nil, sdkerrors.Wrap(types.ErrQueryError, "staking queries not supported")
		}
		return q.Plugins.Staking(q.Ctx, *req.Staking)
	case req.Custom != nil:
		if q.Plugins.Custom == nil {
			return nil, sdkerrors.Wrap(types.ErrQueryError, "custom queries not supported")
		}
		return q.Plugins.Custom(q.Ctx, req.Custom)
	case req.Wasm != nil:
		return q.queryWasm(*req.Wasm, gasLimit)
	default:
		return nil, sdkerrors.Wrap(types.ErrQueryError, "empty query request")
	}
}

func (q QueryHandler) queryWasm(req types.WasmQuery, gasLimit uint64) ([]byte, error) {
	if q.Keeper == nil {
		return nil, sdkerrors.Wrap(types.ErrInternal, "query handler missing keeper reference")
	}
	switch {
	case req.Smart != nil:
		addr, err := sdk.AccAddressFromBech32(req.Smart.ContractAddr)
		if err != nil {
			return nil, sdkerrors.Wrap(types.ErrInvalidRequest, err.Error())
		}
		return q.Keeper.querySmartRecursive(q.Ctx, addr, req.Smart.Msg, q.QueryDepth+1, gasLimit)
	case req.Raw != nil:
		addr, err := sdk.AccAddressFromBech32(req.Raw.ContractAddr)
		if err != nil {
			return nil, sdkerrors.Wrap(types.ErrInvalidRequest, err.Error())
		}
		return q.Keeper.QueryRaw(q.Ctx, addr, req.Raw.Key), nil
	default:
		return nil, sdkerrors.Wrap(types.ErrQueryError, "empty wasm query")
	}
}
