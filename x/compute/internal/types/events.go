package types

import (
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// Event type and attribute key constants emitted by the keeper itself
// (distinct from contract-custom events, which pass through verbatim).
const (
	EventTypeStoreCode    = "store_code"
	EventTypeInstantiate  = "instantiate"
	EventTypeExecute      = "execute"
	EventTypeMigrate      = "migrate"
	EventTypeUpdateAdmin  = "update_contract_admin"
	EventTypeClearAdmin   = "clear_contract_admin"
	EventTypeReply        = "reply"

	AttributeKeyContractAddr = "contract_address"
	AttributeKeyCodeID       = "code_id"
	AttributeKeyChecksum     = "code_checksum"
	AttributeKeySigner       = "signer"
)

// ContractLogsToSdkEvents converts the attribute log a contract returns into
// a single "wasm" event carrying the contract address plus the contract's
// own key/value attributes, matching the convention CosmWasm-family chains
// use to keep contract-authored data out of the module's own typed events.
func ContractLogsToSdkEvents(logs []EventAttribute, contractAddr sdk.AccAddress) sdk.Events {
	if len(logs) == 0 {
		return nil
	}
	attrs := make([]sdk.Attribute, 0, len(logs)+1)
	attrs = append(attrs, sdk.NewAttribute(AttributeKeyContractAddr, contractAddr.String()))
	for _, l := range logs {
		attrs = append(attrs, sdk.NewAttribute(l.Key, l.Value))
	}
	return sdk.Events{sdk.NewEvent("wasm", attrs...)}
}

// NewCustomEvents converts the v1-response Events a contract returns into
// sdk.Events, each namespaced as "wasm-<type>" and stamped with the
// contract's address so event consumers can attribute them.
func NewCustomEvents(events []Event, contractAddr sdk.AccAddress) (sdk.Events, error) {
	out := make(sdk.Events, 0, len(events))
	for _, ev := range events {
		attrs := make([]sdk.Attribute, 0, len(ev.Attributes)+1)
		attrs = append(attrs, sdk.NewAttribute(AttributeKeyContractAddr, contractAddr.String()))
		for _, a := range ev.Attributes {
			attrs = append(attrs, sdk.NewAttribute(a.Key, a.Value))
		}
		out = append(out, sdk.NewEvent("wasm-"+ev.Type, attrs...))
	}
	return out, nil
}
