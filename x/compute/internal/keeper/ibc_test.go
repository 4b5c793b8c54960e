package keeper_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/novachain/compute/x/compute/internal/keeper"
)

func TestOnOpenChannelBindsPortOnFirstTouch(t *testing.T) {
	f := setupTest(t)
	codeID, err := f.Keeper.StoreCode(f.Ctx, creator, []byte("fake wasm bytecode"), "", "", nil)
	require.NoError(t, err)
	contractAddr, _, err := f.Keeper.Instantiate(f.Ctx, codeID, creator, admin, []byte(`{}`), "ibc contract", nil)
	require.NoError(t, err)

	info, ok := f.Keeper.GetContractInfo(f.Ctx, contractAddr)
	require.True(t, ok)
	require.Empty(t, info.IBCPortID, "port must not be bound until the contract's first IBC touch")

	channel := keeper.IBCChannel{
		Endpoint:     keeper.IBCEndpoint{PortID: keeper.PortIDForContract(contractAddr), ChannelID: "channel-0"},
		Counterparty: keeper.IBCEndpoint{PortID: "counterparty-port", ChannelID: "channel-1"},
		Order:        "ORDER_UNORDERED",
		Version:      "ics20-1",
	}
	require.NoError(t, f.Keeper.OnOpenChannel(f.Ctx, contractAddr, channel))

	info, ok = f.Keeper.GetContractInfo(f.Ctx, contractAddr)
	require.True(t, ok)
	require.Equal(t, keeper.PortIDForContract(contractAddr), info.IBCPortID)

	require.NoError(t, f.Keeper.OnConnectChannel(f.Ctx, contractAddr, channel))
	info2, ok := f.Keeper.GetContractInfo(f.Ctx, contractAddr)
	require.True(t, ok)
	require.Equal(t, info.IBCPortID, info2.IBCPortID, "binding the port a second time must be a no-op")
}

func TestIBCEntryPointsRequireAnExistingContract(t *testing.T) {
	f := setupTest(t)
	unknownAddr := other

	channel := keeper.IBCChannel{Endpoint: keeper.IBCEndpoint{PortID: "wasm.unknown", ChannelID: "channel-0"}}
	require.Error(t, f.Keeper.OnOpenChannel(f.Ctx, unknownAddr, channel))
	require.Error(t, f.Keeper.OnConnectChannel(f.Ctx, unknownAddr, channel))
	require.Error(t, f.Keeper.OnCloseChannel(f.Ctx, unknownAddr, channel))

	packet := keeper.IBCPacket{Data: []byte(`{}`), Sequence: 1}
	_, err := f.Keeper.OnRecvPacket(f.Ctx, unknownAddr, packet)
	require.Error(t, err)
	require.Error(t, f.Keeper.OnTimeoutPacket(f.Ctx, unknownAddr, packet))
	require.Error(t, f.Keeper.OnAckPacket(f.Ctx, unknownAddr, keeper.IBCAcknowledgement{OriginalPacket: packet}))
}

func TestOnRecvPacketReturnsAcknowledgement(t *testing.T) {
	f := setupTest(t)
	codeID, err := f.Keeper.StoreCode(f.Ctx, creator, []byte("fake wasm bytecode"), "", "", nil)
	require.NoError(t, err)
	contractAddr, _, err := f.Keeper.Instantiate(f.Ctx, codeID, creator, admin, []byte(`{}`), "recv target", nil)
	require.NoError(t, err)

	packet := keeper.IBCPacket{Data: []byte(`{"transfer":{}}`), Sequence: 1}
	ack, err := f.Keeper.OnRecvPacket(f.Ctx, contractAddr, packet)
	require.NoError(t, err)
	require.Empty(t, ack, "the stub engine's zero-value result carries no acknowledgement bytes")
}
