package compute

import (
	sdk "github.com/cosmos/cosmos-sdk/types"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"

	"github.com/novachain/compute/x/compute/internal/keeper"
	"github.com/novachain/compute/x/compute/internal/types"
)

// NewHandler routes the module's legacy sdk.Msg types to their keeper
// operation, translating the keeper's typed errors into the ABCI result the
// baseapp message router expects.
func NewHandler(k keeper.Keeper) sdk.Handler {
	return func(ctx sdk.Context, msg sdk.Msg) (*sdk.Result, error) {
		ctx = ctx.WithEventManager(sdk.NewEventManager())
		switch msg := msg.(type) {
		case types.MsgStoreCode:
			return handleStoreCode(ctx, k, &msg)
		case types.MsgInstantiateContract:
			return handleInstantiate(ctx, k, &msg)
		case types.MsgExecuteContract:
			return handleExecute(ctx, k, &msg)
		case types.MsgMigrateContract:
			return handleMigrate(ctx, k, &msg)
		case types.MsgUpdateAdmin:
			return handleUpdateAdmin(ctx, k, &msg)
		case types.MsgClearAdmin:
			return handleClearAdmin(ctx, k, &msg)
		default:
			return nil, sdkerrors.Wrapf(sdkerrors.ErrUnknownRequest, "unrecognized %s message type: %T", types.ModuleName, msg)
		}
	}
}

func handleStoreCode(ctx sdk.Context, k keeper.Keeper, msg *types.MsgStoreCode) (*sdk.Result, error) {
	sender, err := sdk.AccAddressFromBech32(msg.Sender)
	if err != nil {
		return nil, err
	}
	codeID, err := k.StoreCode(ctx, sender, msg.WASMByteCode, msg.Source, msg.Builder, msg.InstantiatePermission)
	if err != nil {
		return nil, err
	}
	return &sdk.Result{
		Data:   sdk.Uint64ToBigEndian(codeID),
		Events: ctx.EventManager().ABCIEvents(),
	}, nil
}

func handleInstantiate(ctx sdk.Context, k keeper.Keeper, msg *types.MsgInstantiateContract) (*sdk.Result, error) {
	sender, err := sdk.AccAddressFromBech32(msg.Sender)
	if err != nil {
		return nil, err
	}
	var admin sdk.AccAddress
	if msg.Admin != "" {
		admin, err = sdk.AccAddressFromBech32(msg.Admin)
		if err != nil {
			return nil, err
		}
	}

	var contractAddr sdk.AccAddress
	var data []byte
	if len(msg.Salt) > 0 {
		contractAddr, data, err = k.Instantiate2(ctx, msg.CodeID, sender, admin, msg.InitMsg, msg.Label, msg.Funds, msg.Salt)
	} else {
		contractAddr, data, err = k.Instantiate(ctx, msg.CodeID, sender, admin, msg.InitMsg, msg.Label, msg.Funds)
	}
	if err != nil {
		return nil, err
	}
	return &sdk.Result{
		Data:   append(contractAddr, data...),
		Events: ctx.EventManager().ABCIEvents(),
	}, nil
}

func handleExecute(ctx sdk.Context, k keeper.Keeper, msg *types.MsgExecuteContract) (*sdk.Result, error) {
	sender, err := sdk.AccAddressFromBech32(msg.Sender)
	if err != nil {
		return nil, err
	}
	contractAddr, err := sdk.AccAddressFromBech32(msg.Contract)
	if err != nil {
		return nil, err
	}
	data, err := k.Execute(ctx, contractAddr, sender, msg.Msg, msg.Funds)
	if err != nil {
		return nil, err
	}
	return &sdk.Result{Data: data, Events: ctx.EventManager().ABCIEvents()}, nil
}

func handleMigrate(ctx sdk.Context, k keeper.Keeper, msg *types.MsgMigrateContract) (*sdk.Result, error) {
	sender, err := sdk.AccAddressFromBech32(msg.Sender)
	if err != nil {
		return nil, err
	}
	contractAddr, err := sdk.AccAddressFromBech32(msg.Contract)
	if err != nil {
		return nil, err
	}
	data, err := k.Migrate(ctx, contractAddr, sender, msg.NewCodeID, msg.Msg)
	if err != nil {
		return nil, err
	}
	return &sdk.Result{Data: data, Events: ctx.EventManager().ABCIEvents()}, nil
}

func handleUpdateAdmin(ctx sdk.Context, k keeper.Keeper, msg *types.MsgUpdateAdmin) (*sdk.Result, error) {
	sender, err := sdk.AccAddressFromBech32(msg.Sender)
	if err != nil {
		return nil, err
	}
	contractAddr, err := sdk.AccAddressFromBech32(msg.Contract)
	if err != nil {
		return nil, err
	}
	newAdmin, err := sdk.AccAddressFromBech32(msg.NewAdmin)
	if err != nil {
		return nil, err
	}
	if err := k.UpdateAdmin(ctx, contractAddr, sender, newAdmin); err != nil {
		return nil, err
	}
	return &sdk.Result{Events: ctx.EventManager().ABCIEvents()}, nil
}

func handleClearAdmin(ctx sdk.Context, k keeper.Keeper, msg *types.MsgClearAdmin) (*sdk.Result, error) {
	sender, err := sdk.AccAddressFromBech32(msg.Sender)
	if err != nil {
		return nil, err
	}
	contractAddr, err := sdk.AccAddressFromBech32(msg.Contract)
	if err != nil {
		return nil, err
	}
	if err := k.ClearAdmin(ctx, contractAddr, sender); err != nil {
		return nil, err
	}
	return &sdk.Result{Events: ctx.EventManager().ABCIEvents()}, nil
}
