package types

// QueryRequest is the rust-enum-shaped union of queries a contract may issue
// through the Querier. Exactly one field should be set.
type QueryRequest struct {
	Bank    *BankQuery    `json:"bank,omitempty"`
	Custom  []byte        `json:"custom,omitempty"`
	Staking *StakingQuery `json:"staking,omitempty"`
	Wasm    *WasmQuery    `json:"wasm,omitempty"`
}

type BankQuery struct {
	Balance     *BalanceQuery     `json:"balance,omitempty"`
	AllBalances *AllBalancesQuery `json:"all_balances,omitempty"`
}

type BalanceQuery struct {
	Address string `json:"address"`
	Denom   string `json:"denom"`
}

type BalanceResponse struct {
	Amount Coin `json:"amount"`
}

type AllBalancesQuery struct {
	Address string `json:"address"`
}

type AllBalancesResponse struct {
	Amount []Coin `json:"amount"`
}

type StakingQuery struct {
	BondedDenom   *struct{}            `json:"bonded_denom,omitempty"`
	Delegation    *DelegationQuery     `json:"delegation,omitempty"`
	AllDelegations *AllDelegationsQuery `json:"all_delegations,omitempty"`
}

type DelegationQuery struct {
	Delegator string `json:"delegator"`
	Validator string `json:"validator"`
}

type AllDelegationsQuery struct {
	Delegator string `json:"delegator"`
}

type BondedDenomResponse struct {
	Denom string `json:"denom"`
}

// WasmQuery is the union of queries routed back into this module, allowing
// one contract to read another's state.
type WasmQuery struct {
	Smart *SmartQuery `json:"smart,omitempty"`
	Raw   *RawQuery   `json:"raw,omitempty"`
}

type SmartQuery struct {
	ContractAddr string `json:"contract_addr"`
	Msg          []byte `json:"msg"`
}

type RawQuery struct {
	ContractAddr string `json:"contract_addr"`
	Key          []byte `json:"key"`
}

//-------- external query tags (§6 of the module spec) --------

// QuerySmartContractStateRequest is the SmartContractState query.
type QuerySmartContractStateRequest struct {
	Address string `json:"address"`
	Msg     []byte `json:"msg"`
}

// QueryRawContractStateRequest is the RawContractState query.
type QueryRawContractStateRequest struct {
	Address string `json:"address"`
	Key     []byte `json:"key"`
}

// QueryCodeRequest is the Code query.
type QueryCodeRequest struct {
	CodeID uint64 `json:"code_id"`
}

// QueryCodeResponse answers QueryCodeRequest.
type QueryCodeResponse struct {
	CodeID   uint64 `json:"code_id"`
	Creator  string `json:"creator"`
	Checksum []byte `json:"checksum"`
	Source   string `json:"source"`
	Data     []byte `json:"data"`
}

// QueryContractInfoRequest is the ContractInfo query.
type QueryContractInfoRequest struct {
	Address string `json:"address"`
}

// QueryContractInfoResponse answers QueryContractInfoRequest.
type QueryContractInfoResponse struct {
	Address   string `json:"address"`
	CodeID    uint64 `json:"code_id"`
	Creator   string `json:"creator"`
	Admin     string `json:"admin,omitempty"`
	Label     string `json:"label"`
	IBCPortID string `json:"ibc_port_id,omitempty"`
}

// PageRequest is a minimal offset-free pagination request (limit + opaque
// next_key, matching the SDK's PageRequest shape).
type PageRequest struct {
	Key   []byte `json:"key,omitempty"`
	Limit uint64 `json:"limit,omitempty"`
}

// PageResponse echoes the next page's opaque key, or empty when exhausted.
type PageResponse struct {
	NextKey []byte `json:"next_key,omitempty"`
}

// QueryContractsByCodeRequest is the ContractsByCode query.
type QueryContractsByCodeRequest struct {
	CodeID     uint64      `json:"code_id"`
	Pagination PageRequest `json:"pagination"`
}

// QueryContractsByCodeResponse answers QueryContractsByCodeRequest.
type QueryContractsByCodeResponse struct {
	Addresses  []string     `json:"contracts"`
	Pagination PageResponse `json:"pagination"`
}
