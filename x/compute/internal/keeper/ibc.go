package keeper

import (
	sdk "github.com/cosmos/cosmos-sdk/types"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"

	"github.com/novachain/compute/x/compute/internal/types"
)

// contractEngineArgs bundles the codeInfo lookup and per-call backend
// adapters shared by every IBC entry point below. A contract's port is bound
// lazily, on its first IBC touch, rather than at Instantiate time: most
// contracts never open a channel and should never claim a capability.
func (k Keeper) contractEngineArgs(ctx sdk.Context, contractAddr sdk.AccAddress) (types.ContractInfo, types.CodeInfo, Storage, QueryHandler, error) {
	info, ok := k.GetContractInfo(ctx, contractAddr)
	if !ok {
		return types.ContractInfo{}, types.CodeInfo{}, nil, QueryHandler{}, sdkerrors.Wrap(types.ErrNotFound, "contract")
	}
	codeInfo, ok := k.GetCodeInfo(ctx, info.CodeID)
	if !ok {
		return types.ContractInfo{}, types.CodeInfo{}, nil, QueryHandler{}, sdkerrors.Wrap(types.ErrNotFound, "code")
	}
	if info.IBCPortID == "" {
		portID, err := k.ensureIbcPort(ctx, contractAddr)
		if err != nil {
			return types.ContractInfo{}, types.CodeInfo{}, nil, QueryHandler{}, err
		}
		info.IBCPortID = portID
		k.setContractInfo(ctx, contractAddr, info)
	}
	if _, err := k.resolveCodeAnalysis(codeInfo.CodeHash); err != nil {
		return types.ContractInfo{}, types.CodeInfo{}, nil, QueryHandler{}, err
	}
	store := newStorageAdapter(ctx, k.storeKey, contractAddr, false)
	return info, codeInfo, store, k.newQueryHandler(ctx, contractAddr), nil
}

// ensureIbcPort binds a deterministic port id for contractAddr with 05-port
// and claims the resulting capability, so later channel handshakes can be
// authenticated against it. Idempotent per contract: called only when the
// contract's stored IBCPortID is still empty.
func (k Keeper) ensureIbcPort(ctx sdk.Context, contractAddr sdk.AccAddress) (string, error) {
	portID := PortIDForContract(contractAddr)
	if _, ok := k.capKeeper.GetCapability(ctx, portPath(portID)); ok {
		return portID, nil
	}
	cap := k.portKeeper.BindPort(ctx, portID)
	if err := k.capKeeper.ClaimCapability(ctx, cap, portPath(portID)); err != nil {
		return "", sdkerrors.Wrap(types.ErrExecuteFailed, "claim ibc port capability: "+err.Error())
	}
	return portID, nil
}

// PortIDForContract derives the stable IBC port id a contract's channels are
// opened under: "wasm." followed by the contract's bech32 address.
func PortIDForContract(contractAddr sdk.AccAddress) string {
	return "wasm." + contractAddr.String()
}

func portPath(portID string) string {
	return "ports/" + portID
}

// OnOpenChannel lets a contract participate in the IBC channel handshake:
// Channel Open Init on the initiating chain, Channel Open Try on the
// counterparty.
func (k Keeper) OnOpenChannel(ctx sdk.Context, contractAddr sdk.AccAddress, channel IBCChannel) error {
	_, codeInfo, store, querier, err := k.contractEngineArgs(ctx, contractAddr)
	if err != nil {
		return err
	}
	env := types.NewEnv(ctx, contractAddr)
	gasMeter := NewMultipliedGasMeter(ctx)
	gasUsed, execErr := k.engine.IBCChannelOpen(codeInfo.CodeHash, env, channel, store, defaultAPI, querier, gasMeter, gasForContract(ctx))
	consumeGas(ctx, gasUsed)
	if execErr != nil {
		return sdkerrors.Wrap(types.ErrExecuteFailed, execErr.Error())
	}
	return nil
}

// OnConnectChannel lets a contract know the IBC channel handshake completed:
// Channel Open Ack on the initiating chain, Channel Open Confirm on the
// counterparty.
func (k Keeper) OnConnectChannel(ctx sdk.Context, contractAddr sdk.AccAddress, channel IBCChannel) error {
	info, codeInfo, store, querier, err := k.contractEngineArgs(ctx, contractAddr)
	if err != nil {
		return err
	}
	env := types.NewEnv(ctx, contractAddr)
	gasMeter := NewMultipliedGasMeter(ctx)
	resp, gasUsed, execErr := k.engine.IBCChannelConnect(codeInfo.CodeHash, env, channel, store, defaultAPI, querier, gasMeter, gasForContract(ctx))
	consumeGas(ctx, gasUsed)
	if execErr != nil {
		return sdkerrors.Wrap(types.ErrExecuteFailed, execErr.Error())
	}
	_, err = k.handleContractResponse(ctx, contractAddr, info.IBCPortID, resp)
	return err
}

// OnCloseChannel lets a contract know its IBC channel was closed. Closed
// channel identifiers are never reused, so this fires at most once per
// channel.
func (k Keeper) OnCloseChannel(ctx sdk.Context, contractAddr sdk.AccAddress, channel IBCChannel) error {
	info, codeInfo, store, querier, err := k.contractEngineArgs(ctx, contractAddr)
	if err != nil {
		return err
	}
	env := types.NewEnv(ctx, contractAddr)
	gasMeter := NewMultipliedGasMeter(ctx)
	resp, gasUsed, execErr := k.engine.IBCChannelClose(codeInfo.CodeHash, env, channel, store, defaultAPI, querier, gasMeter, gasForContract(ctx))
	consumeGas(ctx, gasUsed)
	if execErr != nil {
		return sdkerrors.Wrap(types.ErrExecuteFailed, execErr.Error())
	}
	_, err = k.handleContractResponse(ctx, contractAddr, info.IBCPortID, resp)
	return err
}

// OnRecvPacket hands an incoming IBC packet to the contract and returns the
// acknowledgement bytes it produced; the contract fully owns the
// acknowledgement envelope.
func (k Keeper) OnRecvPacket(ctx sdk.Context, contractAddr sdk.AccAddress, packet IBCPacket) ([]byte, error) {
	info, codeInfo, store, querier, err := k.contractEngineArgs(ctx, contractAddr)
	if err != nil {
		return nil, err
	}
	env := types.NewEnv(ctx, contractAddr)
	gasMeter := NewMultipliedGasMeter(ctx)
	result, gasUsed, execErr := k.engine.IBCPacketReceive(codeInfo.CodeHash, env, packet, store, defaultAPI, querier, gasMeter, gasForContract(ctx))
	consumeGas(ctx, gasUsed)
	if execErr != nil {
		return nil, sdkerrors.Wrap(types.ErrExecuteFailed, execErr.Error())
	}
	if _, err := k.handleContractResponse(ctx, contractAddr, info.IBCPortID, &result.Response); err != nil {
		return nil, err
	}
	return result.Acknowledgement, nil
}

// OnAckPacket delivers the acknowledgement for a packet the contract
// previously sent.
func (k Keeper) OnAckPacket(ctx sdk.Context, contractAddr sdk.AccAddress, ack IBCAcknowledgement) error {
	info, codeInfo, store, querier, err := k.contractEngineArgs(ctx, contractAddr)
	if err != nil {
		return err
	}
	env := types.NewEnv(ctx, contractAddr)
	gasMeter := NewMultipliedGasMeter(ctx)
	resp, gasUsed, execErr := k.engine.IBCPacketAck(codeInfo.CodeHash, env, ack, store, defaultAPI, querier, gasMeter, gasForContract(ctx))
	consumeGas(ctx, gasUsed)
	if execErr != nil {
		return sdkerrors.Wrap(types.ErrExecuteFailed, execErr.Error())
	}
	_, err = k.handleContractResponse(ctx, contractAddr, info.IBCPortID, resp)
	return err
}

// OnTimeoutPacket tells the contract that a packet it sent timed out
// without being acknowledged.
func (k Keeper) OnTimeoutPacket(ctx sdk.Context, contractAddr sdk.AccAddress, packet IBCPacket) error {
	info, codeInfo, store, querier, err := k.contractEngineArgs(ctx, contractAddr)
	if err != nil {
		return err
	}
	env := types.NewEnv(ctx, contractAddr)
	gasMeter := NewMultipliedGasMeter(ctx)
	resp, gasUsed, execErr := k.engine.IBCPacketTimeout(codeInfo.CodeHash, env, packet, store, defaultAPI, querier, gasMeter, gasForContract(ctx))
	consumeGas(ctx, gasUsed)
	if execErr != nil {
		return sdkerrors.Wrap(types.ErrExecuteFailed, execErr.Error())
	}
	_, err = k.handleContractResponse(ctx, contractAddr, info.IBCPortID, resp)
	return err
}
