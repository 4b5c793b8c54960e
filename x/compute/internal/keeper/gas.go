package keeper

import (
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// GasMultiplier is the consensus gas_ratio: the number of VM-internal gas
// units charged per unit of host (SDK) gas. This value is not specified by
// the module's design notes (an explicit Open Question); 100 is adopted
// because it is the constant the CosmWasm family of chains (including the
// teacher) has shipped since the v0.1x gas-metering redesign, and the pack
// gives no other concrete number to prefer.
const GasMultiplier uint64 = 100

// MaxGas caps the VM-internal gas handed to a single engine call,
// regardless of how much host gas remains, bounding worst-case call latency.
const MaxGas = 10_000_000_000

// InstanceCost is charged once per engine entry point call, covering the
// fixed overhead of resolving/loading the compiled module.
const InstanceCost = 40_000

// CompileCost is charged per byte of WASM uploaded via StoreCode.
const CompileCost = 2

// gasForContract computes the VM-internal gas limit for the next engine
// call: the host gas remaining, converted by GasMultiplier, capped at
// MaxGas. This is the keeper-side half of §4.5.3's gas accounting rule.
func gasForContract(ctx sdk.Context) uint64 {
	meter := ctx.GasMeter()
	remaining := (meter.Limit() - meter.GasConsumed()) * GasMultiplier
	if remaining > MaxGas {
		return MaxGas
	}
	return remaining
}

// consumeGas debits the host gas meter for VM-internal gas actually spent,
// converting back by GasMultiplier and rounding up by one unit so that a
// call which exactly exhausts its limit is always reported as out-of-gas
// rather than silently landing on zero.
func consumeGas(ctx sdk.Context, gasUsed uint64) {
	consumed := (gasUsed / GasMultiplier) + 1
	ctx.GasMeter().ConsumeGas(consumed, "wasm contract")
}

// GasMeter is the minimal view of gas consumption the engine is allowed to
// read; it deliberately exposes nothing that would let an implementation
// charge or refund gas itself, since the keeper alone owns the host meter.
type GasMeter interface {
	GasConsumed() sdk.Gas
}

// MultipliedGasMeter exposes the host's gas meter to the engine in
// VM-internal units, so the VM's own internal bookkeeping sees a consistent
// scale regardless of which host gas config is active.
type MultipliedGasMeter struct {
	originalMeter sdk.GasMeter
}

var _ GasMeter = MultipliedGasMeter{}

// NewMultipliedGasMeter wraps ctx's gas meter for the engine's view of it.
func NewMultipliedGasMeter(ctx sdk.Context) MultipliedGasMeter {
	return MultipliedGasMeter{originalMeter: ctx.GasMeter()}
}

// GasConsumed reports gas already spent, in VM-internal units.
func (m MultipliedGasMeter) GasConsumed() sdk.Gas {
	return m.originalMeter.GasConsumed() * GasMultiplier
}
