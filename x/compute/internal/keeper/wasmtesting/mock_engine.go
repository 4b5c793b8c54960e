// Package wasmtesting provides a scripted stand-in for the real CosmWasm
// engine, so the keeper's control flow (gas accounting, sub-message
// dispatch, rollback, authorization) can be exercised without embedding an
// actual WASM runtime. Per the module's design notes, the engine is a
// capability interface specifically so it can be swapped for a stub like
// this one in tests.
package wasmtesting

import (
	"crypto/sha256"
	"sync"

	"github.com/novachain/compute/x/compute/internal/keeper"
	"github.com/novachain/compute/x/compute/internal/types"
)

// InstantiateFn, ExecuteFn etc. let a test script the engine's response to
// a particular call without needing a distinct mock type per test.
type (
	InstantiateFn func(checksum []byte, env types.Env, info types.MessageInfo, msg []byte) (*types.Response, uint64, error)
	ExecuteFn     func(checksum []byte, env types.Env, info types.MessageInfo, msg []byte) (*types.Response, uint64, error)
	MigrateFn     func(checksum []byte, env types.Env, msg []byte) (*types.Response, uint64, error)
	QueryFn       func(checksum []byte, env types.Env, msg []byte) ([]byte, uint64, error)
	ReplyFn       func(checksum []byte, env types.Env, reply types.Reply) (*types.Response, uint64, error)
	SudoFn        func(checksum []byte, env types.Env, msg []byte) (*types.Response, uint64, error)
)

// MockEngine implements keeper.Engine by reading a scripted response table;
// an engine from NewMockEngine with no ...Fn set returns empty, successful
// responses from every entry point, so tests only need to override the
// functions they care about.
type MockEngine struct {
	mu sync.Mutex

	codes map[string][]byte // checksum (hex) -> raw bytes

	InstantiateFn InstantiateFn
	ExecuteFn     ExecuteFn
	MigrateFn     MigrateFn
	QueryFn       QueryFn
	ReplyFn       ReplyFn
	SudoFn        SudoFn

	LastParams types.Params
	Pinned     map[string]bool
}

// NewMockEngine constructs an empty, default-behavior stub engine.
func NewMockEngine() *MockEngine {
	return &MockEngine{
		codes:  make(map[string][]byte),
		Pinned: make(map[string]bool),
	}
}

var _ keeper.Engine = (*MockEngine)(nil)

func checksumOf(code []byte) []byte {
	sum := sha256.Sum256(code)
	return sum[:]
}

// StoreCode records wasmCode under its checksum. nextCodeID is accepted for
// interface symmetry with the real engine but unused: the stub keys purely
// by content hash.
func (m *MockEngine) StoreCode(nextCodeID uint64, wasmCode []byte) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	checksum := checksumOf(wasmCode)
	m.codes[string(checksum)] = append([]byte{}, wasmCode...)
	return checksum, nil
}

func (m *MockEngine) AnalyzeCode(checksum []byte) (keeper.CodeAnalysisReport, error) {
	return keeper.CodeAnalysisReport{}, nil
}

func (m *MockEngine) GetCode(checksum []byte) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	code, ok := m.codes[string(checksum)]
	if !ok {
		return nil, types.ErrNotFound
	}
	return code, nil
}

func (m *MockEngine) Instantiate(checksum []byte, env types.Env, info types.MessageInfo, msg []byte, _ keeper.Storage, _ keeper.APIAdapter, _ keeper.Querier, _ keeper.GasMeter, gasLimit uint64) (*types.Response, uint64, error) {
	if m.InstantiateFn != nil {
		return m.InstantiateFn(checksum, env, info, msg)
	}
	return &types.Response{}, InstanceGasUsed, nil
}

func (m *MockEngine) Execute(checksum []byte, env types.Env, info types.MessageInfo, msg []byte, _ keeper.Storage, _ keeper.APIAdapter, _ keeper.Querier, _ keeper.GasMeter, gasLimit uint64) (*types.Response, uint64, error) {
	if m.ExecuteFn != nil {
		return m.ExecuteFn(checksum, env, info, msg)
	}
	return &types.Response{}, InstanceGasUsed, nil
}

func (m *MockEngine) Migrate(checksum []byte, env types.Env, msg []byte, _ keeper.Storage, _ keeper.APIAdapter, _ keeper.Querier, _ keeper.GasMeter, gasLimit uint64) (*types.Response, uint64, error) {
	if m.MigrateFn != nil {
		return m.MigrateFn(checksum, env, msg)
	}
	return &types.Response{}, InstanceGasUsed, nil
}

func (m *MockEngine) Query(checksum []byte, env types.Env, msg []byte, _ keeper.Storage, _ keeper.APIAdapter, _ keeper.Querier, _ keeper.GasMeter, gasLimit uint64) ([]byte, uint64, error) {
	if m.QueryFn != nil {
		return m.QueryFn(checksum, env, msg)
	}
	return []byte(`{}`), InstanceGasUsed, nil
}

func (m *MockEngine) Sudo(checksum []byte, env types.Env, msg []byte, _ keeper.Storage, _ keeper.APIAdapter, _ keeper.Querier, _ keeper.GasMeter, gasLimit uint64) (*types.Response, uint64, error) {
	if m.SudoFn != nil {
		return m.SudoFn(checksum, env, msg)
	}
	return &types.Response{}, InstanceGasUsed, nil
}

func (m *MockEngine) Reply(checksum []byte, env types.Env, reply types.Reply, _ keeper.Storage, _ keeper.APIAdapter, _ keeper.Querier, _ keeper.GasMeter, gasLimit uint64) (*types.Response, uint64, error) {
	if m.ReplyFn != nil {
		return m.ReplyFn(checksum, env, reply)
	}
	return &types.Response{}, InstanceGasUsed, nil
}

func (m *MockEngine) IBCChannelOpen(checksum []byte, env types.Env, channel keeper.IBCChannel, _ keeper.Storage, _ keeper.APIAdapter, _ keeper.Querier, _ keeper.GasMeter, gasLimit uint64) (uint64, error) {
	return InstanceGasUsed, nil
}

func (m *MockEngine) IBCChannelConnect(checksum []byte, env types.Env, channel keeper.IBCChannel, _ keeper.Storage, _ keeper.APIAdapter, _ keeper.Querier, _ keeper.GasMeter, gasLimit uint64) (*types.Response, uint64, error) {
	return &types.Response{}, InstanceGasUsed, nil
}

func (m *MockEngine) IBCChannelClose(checksum []byte, env types.Env, channel keeper.IBCChannel, _ keeper.Storage, _ keeper.APIAdapter, _ keeper.Querier, _ keeper.GasMeter, gasLimit uint64) (*types.Response, uint64, error) {
	return &types.Response{}, InstanceGasUsed, nil
}

func (m *MockEngine) IBCPacketReceive(checksum []byte, env types.Env, packet keeper.IBCPacket, _ keeper.Storage, _ keeper.APIAdapter, _ keeper.Querier, _ keeper.GasMeter, gasLimit uint64) (*keeper.IBCReceiveResult, uint64, error) {
	return &keeper.IBCReceiveResult{}, InstanceGasUsed, nil
}

func (m *MockEngine) IBCPacketAck(checksum []byte, env types.Env, ack keeper.IBCAcknowledgement, _ keeper.Storage, _ keeper.APIAdapter, _ keeper.Querier, _ keeper.GasMeter, gasLimit uint64) (*types.Response, uint64, error) {
	return &types.Response{}, InstanceGasUsed, nil
}

func (m *MockEngine) IBCPacketTimeout(checksum []byte, env types.Env, packet keeper.IBCPacket, _ keeper.Storage, _ keeper.APIAdapter, _ keeper.Querier, _ keeper.GasMeter, gasLimit uint64) (*types.Response, uint64, error) {
	return &types.Response{}, InstanceGasUsed, nil
}

func (m *MockEngine) Pin(checksum []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Pinned[string(checksum)] = true
	return nil
}

func (m *MockEngine) Unpin(checksum []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.Pinned, string(checksum))
	return nil
}

func (m *MockEngine) OnParamsChanged(params types.Params) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LastParams = params
}

// InstanceGasUsed is the fixed gas the stub reports for every call, chosen
// to be comfortably below any test's default gas limit while still
// non-zero so gas-accounting assertions have something to check.
const InstanceGasUsed = 1000 * keeper.GasMultiplier
