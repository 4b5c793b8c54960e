package types

import (
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"
)

// Codespace is the module's unique error codespace.
const Codespace = ModuleName

// Registered error kinds. The set is closed: every failure the keeper or
// engine can produce maps to exactly one of these codes. Do not add a new
// kind without updating the taxonomy in the module spec.
var (
	// ErrCompileError: WASM syntactically invalid or failed static analysis.
	ErrCompileError = sdkerrors.Register(Codespace, 2, "compile wasm code failed")
	// ErrInstantiateError: VM setup failed before contract code ran.
	ErrInstantiateError = sdkerrors.Register(Codespace, 3, "instantiate wasm contract failed")
	// ErrExecuteError: contract trapped or returned an error.
	ErrExecuteError = sdkerrors.Register(Codespace, 4, "execute wasm contract failed")
	// ErrNotFound: no code/contract at the referenced id/address.
	ErrNotFound = sdkerrors.Register(Codespace, 5, "not found")
	// ErrUnauthorized: caller lacks upload/migrate/admin rights.
	ErrUnauthorized = sdkerrors.Register(Codespace, 6, "unauthorized")
	// ErrInvalidRequest: decode/shape/size check failed.
	ErrInvalidRequest = sdkerrors.Register(Codespace, 7, "invalid request")
	// ErrOutOfGas: gas exhausted inside the VM or host-side.
	ErrOutOfGas = sdkerrors.Register(Codespace, 8, "out of gas")
	// ErrInsufficientFunds: bank refused transfer.
	ErrInsufficientFunds = sdkerrors.Register(Codespace, 9, "insufficient funds")
	// ErrQueryError: external query via Querier failed.
	ErrQueryError = sdkerrors.Register(Codespace, 10, "query failed")
	// ErrInternal: invariant violation; should be impossible.
	ErrInternal = sdkerrors.Register(Codespace, 11, "internal invariant violation")

	// Finer-grained aliases used at call sites, all mapping back onto the
	// closed taxonomy above via their codespace+code pair.
	ErrAccountExists    = ErrInvalidRequest
	ErrDuplicate        = ErrInvalidRequest
	ErrInvalid          = ErrInvalidRequest
	ErrCreateFailed     = ErrCompileError
	ErrInstantiateFailed = ErrInstantiateError
	ErrExecuteFailed    = ErrExecuteError
	ErrMigrationFailed  = ErrExecuteError
	ErrReplyFailed      = ErrExecuteError
	ErrQueryFailed      = ErrQueryError
	ErrSigFailed        = ErrInvalidRequest
	ErrGasLimitExceeded = ErrOutOfGas
	ErrMaxIBCChannels   = ErrInvalidRequest
)
