package keeper

import (
	"github.com/novachain/compute/x/compute/internal/types"
)

// CodeAnalysisReport is the result of static analysis performed at StoreCode
// time and cached in the module cache; it is recomputed after an eviction.
type CodeAnalysisReport struct {
	HasIBCEntryPoints    bool
	RequiredCapabilities string
}

// VerificationInfo holds the sign-bytes of a signed transaction (kept from
// the teacher's shape). No Engine method takes it and the keeper never
// builds one.
type VerificationInfo struct {
	Bytes     []byte
	ModeInfo  []byte
	PublicKey []byte
	Signature []byte
	SignMode  string
}

// Engine is a capability interface over a WASM runtime with a compiled
// module cache. The concrete VM is injected at keeper construction; the
// engine never captures a keeper reference, and receives backend adapters as
// plain arguments so its lifetime is bounded by the call that drives it.
//
// Implementations must guarantee: given identical backend observations
// (storage reads, api returns, querier returns, gas-left) and identical
// inputs, outputs and gas-used are bit-identical. This is the determinism
// contract the keeper relies on.
type Engine interface {
	StoreCode(codeID uint64, wasmCode []byte) (checksum []byte, err error)
	AnalyzeCode(checksum []byte) (CodeAnalysisReport, error)
	GetCode(checksum []byte) ([]byte, error)

	Instantiate(checksum []byte, env types.Env, info types.MessageInfo, initMsg []byte, store Storage, api APIAdapter, querier Querier, gasMeter GasMeter, gasLimit uint64) (*types.Response, uint64, error)
	Execute(checksum []byte, env types.Env, info types.MessageInfo, msg []byte, store Storage, api APIAdapter, querier Querier, gasMeter GasMeter, gasLimit uint64) (*types.Response, uint64, error)
	Migrate(checksum []byte, env types.Env, msg []byte, store Storage, api APIAdapter, querier Querier, gasMeter GasMeter, gasLimit uint64) (*types.Response, uint64, error)
	Query(checksum []byte, env types.Env, msg []byte, store Storage, api APIAdapter, querier Querier, gasMeter GasMeter, gasLimit uint64) ([]byte, uint64, error)
	Sudo(checksum []byte, env types.Env, msg []byte, store Storage, api APIAdapter, querier Querier, gasMeter GasMeter, gasLimit uint64) (*types.Response, uint64, error)
	Reply(checksum []byte, env types.Env, reply types.Reply, store Storage, api APIAdapter, querier Querier, gasMeter GasMeter, gasLimit uint64) (*types.Response, uint64, error)

	IBCChannelOpen(checksum []byte, env types.Env, channel IBCChannel, store Storage, api APIAdapter, querier Querier, gasMeter GasMeter, gasLimit uint64) (uint64, error)
	IBCChannelConnect(checksum []byte, env types.Env, channel IBCChannel, store Storage, api APIAdapter, querier Querier, gasMeter GasMeter, gasLimit uint64) (*types.Response, uint64, error)
	IBCChannelClose(checksum []byte, env types.Env, channel IBCChannel, store Storage, api APIAdapter, querier Querier, gasMeter GasMeter, gasLimit uint64) (*types.Response, uint64, error)
	IBCPacketReceive(checksum []byte, env types.Env, packet IBCPacket, store Storage, api APIAdapter, querier Querier, gasMeter GasMeter, gasLimit uint64) (*IBCReceiveResult, uint64, error)
	IBCPacketAck(checksum []byte, env types.Env, ack IBCAcknowledgement, store Storage, api APIAdapter, querier Querier, gasMeter GasMeter, gasLimit uint64) (*types.Response, uint64, error)
	IBCPacketTimeout(checksum []byte, env types.Env, packet IBCPacket, store Storage, api APIAdapter, querier Querier, gasMeter GasMeter, gasLimit uint64) (*types.Response, uint64, error)

	Pin(checksum []byte) error
	Unpin(checksum []byte) error

	// OnParamsChanged is invoked once, atomically, from the governance
	// parameter-change hook so the in-memory module cache can be resized.
	OnParamsChanged(params types.Params)
}

// IBCChannel, IBCPacket and IBCAcknowledgement are trimmed, host-side mirrors
// of the records CosmWasm's IBC entry points expect; the module only ever
// moves them opaquely between the SDK's IBC stack and the engine.
type IBCChannel struct {
	Endpoint    IBCEndpoint `json:"endpoint"`
	Counterparty IBCEndpoint `json:"counterparty_endpoint"`
	Order       string      `json:"order"`
	Version     string      `json:"version"`
	ConnectionID string     `json:"connection_id"`
}

type IBCEndpoint struct {
	PortID    string `json:"port_id"`
	ChannelID string `json:"channel_id"`
}

type IBCPacket struct {
	Data     []byte      `json:"data"`
	Src      IBCEndpoint `json:"src"`
	Dest     IBCEndpoint `json:"dest"`
	Sequence uint64      `json:"sequence"`
	Timeout  int64       `json:"timeout"`
}

type IBCAcknowledgement struct {
	Acknowledgement []byte    `json:"acknowledgement"`
	OriginalPacket  IBCPacket `json:"original_packet"`
}

// IBCReceiveResult additionally carries the acknowledgement bytes the
// contract wants written back onto the channel.
type IBCReceiveResult struct {
	Response        types.Response
	Acknowledgement []byte
}
