package types

// ReplyOn selects when the keeper calls back into the contract's Reply entry
// point after dispatching one of its sub-messages.
type ReplyOn string

const (
	ReplyAlways  ReplyOn = "always"
	ReplySuccess ReplyOn = "success"
	ReplyError   ReplyOn = "error"
	ReplyNever   ReplyOn = "never"
)

// BankMsg is the subset of bank operations a contract may request.
type BankMsg struct {
	Send *SendMsg `json:"send,omitempty"`
}

// SendMsg instructs the bank collaborator to move funds from the contract.
type SendMsg struct {
	ToAddress string `json:"to_address"`
	Amount    []Coin `json:"amount"`
}

// ExecuteMsg dispatches a call into another contract at a known address.
type ExecuteMsg struct {
	ContractAddr string `json:"contract_addr"`
	Funds        []Coin `json:"funds"`
	Msg          []byte `json:"msg"`
}

// InstantiateMsg spawns a new contract instance from a previously uploaded code.
type InstantiateMsg struct {
	Admin  string `json:"admin,omitempty"`
	CodeID uint64 `json:"code_id"`
	Funds  []Coin `json:"funds"`
	Label  string `json:"label"`
	Msg    []byte `json:"msg"`
}

// Instantiate2Msg is InstantiateMsg using predictable address derivation.
type Instantiate2Msg struct {
	Admin  string `json:"admin,omitempty"`
	CodeID uint64 `json:"code_id"`
	Funds  []Coin `json:"funds"`
	Label  string `json:"label"`
	Msg    []byte `json:"msg"`
	Salt   []byte `json:"salt"`
}

// MigrateMsg migrates an existing contract to a new code id.
type MigrateMsg struct {
	ContractAddr string `json:"contract_addr"`
	Msg          []byte `json:"msg"`
	NewCodeID    uint64 `json:"new_code_id"`
}

// UpdateAdminMsg sets a new admin on the target contract.
type UpdateAdminMsg struct {
	Admin        string `json:"admin"`
	ContractAddr string `json:"contract_addr"`
}

// ClearAdminMsg clears the admin on the target contract.
type ClearAdminMsg struct {
	ContractAddr string `json:"contract_addr"`
}

// WasmMsg is the enum of compute-module actions a contract may request as a
// sub-message.
type WasmMsg struct {
	Execute      *ExecuteMsg      `json:"execute,omitempty"`
	Instantiate  *InstantiateMsg  `json:"instantiate,omitempty"`
	Instantiate2 *Instantiate2Msg `json:"instantiate2,omitempty"`
	Migrate      *MigrateMsg      `json:"migrate,omitempty"`
	UpdateAdmin  *UpdateAdminMsg  `json:"update_admin,omitempty"`
	ClearAdmin   *ClearAdminMsg   `json:"clear_admin,omitempty"`
}

// StakingMsg is the subset of staking operations a contract may request.
type StakingMsg struct {
	Delegate   *DelegateMsg   `json:"delegate,omitempty"`
	Undelegate *UndelegateMsg `json:"undelegate,omitempty"`
	Redelegate *RedelegateMsg `json:"redelegate,omitempty"`
	Withdraw   *WithdrawMsg   `json:"withdraw,omitempty"`
}

type DelegateMsg struct {
	Validator string `json:"validator"`
	Amount    Coin   `json:"amount"`
}

type UndelegateMsg struct {
	Validator string `json:"validator"`
	Amount    Coin   `json:"amount"`
}

type RedelegateMsg struct {
	SrcValidator string `json:"src_validator"`
	DstValidator string `json:"dst_validator"`
	Amount       Coin   `json:"amount"`
}

type WithdrawMsg struct {
	Validator string `json:"validator"`
}

// CosmosMsg is a rust-enum-shaped union: exactly one field should be set.
type CosmosMsg struct {
	Bank    *BankMsg    `json:"bank,omitempty"`
	Custom  []byte      `json:"custom,omitempty"`
	Staking *StakingMsg `json:"staking,omitempty"`
	Wasm    *WasmMsg    `json:"wasm,omitempty"`
}

// SubMsg is a queued operation a contract asks the host to dispatch after
// the producing call commits.
type SubMsg struct {
	ID       uint64    `json:"id"`
	Msg      CosmosMsg `json:"msg"`
	GasLimit *uint64   `json:"gas_limit,omitempty"`
	ReplyOn  ReplyOn   `json:"reply_on"`
}

// EventAttribute is one key/value pair of a contract-emitted event.
type EventAttribute struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Event is a custom, contract-defined event (distinct from the module's own
// wasm/instantiate/execute/migrate events).
type Event struct {
	Type       string           `json:"type"`
	Attributes []EventAttribute `json:"attributes"`
}

// SubMsgResponse carries the outcome of a successful sub-message back into
// the parent contract's Reply entry point.
type SubMsgResponse struct {
	Events []Event `json:"events"`
	Data   []byte  `json:"data,omitempty"`
}

// SubMsgResult is the Ok/Err union passed to Reply.
type SubMsgResult struct {
	Ok  *SubMsgResponse `json:"ok,omitempty"`
	Err string          `json:"error,omitempty"`
}

// Reply is the callback payload delivered to a contract's Reply entry point.
type Reply struct {
	ID     uint64       `json:"id"`
	Result SubMsgResult `json:"result"`
}

// Response is what every contract entry point (instantiate/execute/migrate/
// sudo/reply) returns to the engine.
type Response struct {
	Data       []byte           `json:"data,omitempty"`
	Attributes []EventAttribute `json:"attributes"`
	Events     []Event          `json:"events"`
	Messages   []SubMsg         `json:"messages"`
	GasUsed    uint64           `json:"-"`
}
