package keeper

import (
	"fmt"

	sdk "github.com/cosmos/cosmos-sdk/types"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"

	"github.com/novachain/compute/x/compute/internal/types"
)

// Messenger is an extension point for dispatching a contract's CosmosMsg
// into the bank/staking/wasm collaborators it names.
type Messenger interface {
	DispatchMsg(ctx sdk.Context, contractAddr sdk.AccAddress, ibcPort string, msg types.CosmosMsg) (events []sdk.Event, data [][]byte, err error)
}

// Replyer is the subset of the keeper the dispatcher calls back into once a
// sub-message's outcome is known.
type Replyer interface {
	reply(ctx sdk.Context, contractAddr sdk.AccAddress, reply types.Reply) ([]byte, error)
}

// MessageDispatcher coordinates sub-message sending and the reply/state
// commit protocol around it.
type MessageDispatcher struct {
	messenger Messenger
	keeper    Replyer
}

// NewMessageDispatcher constructs a dispatcher pairing a Messenger with the
// keeper's reply path.
func NewMessageDispatcher(messenger Messenger, keeper Replyer) *MessageDispatcher {
	return &MessageDispatcher{messenger: messenger, keeper: keeper}
}

func filterEvents(events []sdk.Event) []sdk.Event {
	res := make([]sdk.Event, 0, len(events))
	for _, ev := range events {
		if ev.Type != "message" {
			res = append(res, ev)
		}
	}
	return res
}

func sdkEventsToWasmEvents(events []sdk.Event) []types.Event {
	res := make([]types.Event, len(events))
	for i, ev := range events {
		attrs := make([]types.EventAttribute, len(ev.Attributes))
		for j, a := range ev.Attributes {
			attrs[j] = types.EventAttribute{Key: string(a.Key), Value: string(a.Value)}
		}
		res[i] = types.Event{Type: ev.Type, Attributes: attrs}
	}
	return res
}

// dispatchMsgWithGasLimit sends msg under a capped gas meter, charging the
// parent meter only for what was actually spent, and converting an
// out-of-gas panic from the sandbox into a plain error so the caller's own
// gas accounting stays intact.
func (d MessageDispatcher) dispatchMsgWithGasLimit(ctx sdk.Context, contractAddr sdk.AccAddress, ibcPort string, msg types.CosmosMsg, gasLimit uint64) (events []sdk.Event, data [][]byte, err error) {
	limitedMeter := sdk.NewGasMeter(gasLimit)
	subCtx := ctx.WithGasMeter(limitedMeter)

	defer func() {
		if r := recover(); r != nil {
			if _, ok := r.(sdk.ErrorOutOfGas); !ok {
				panic(r)
			}
			ctx.GasMeter().ConsumeGas(gasLimit, "sub-message out of gas")
			err = sdkerrors.Wrap(types.ErrOutOfGas, "sub-message hit its gas limit")
		}
	}()
	events, data, err = d.messenger.DispatchMsg(subCtx, contractAddr, ibcPort, msg)

	spent := subCtx.GasMeter().GasConsumed()
	ctx.GasMeter().ConsumeGas(spent, "from limited sub-message")

	return events, data, err
}

// InvalidRequest, InvalidResponse, NoSuchContract, Unknown and
// UnsupportedRequest are the stable error shapes a Messenger may return;
// they survive into a contract's Reply as a redacted string, never as
// structured data, to keep replay deterministic across nodes.
type InvalidRequest struct {
	Err     string `json:"error"`
	Request []byte `json:"request"`
}

func (e InvalidRequest) Error() string {
	return fmt.Sprintf("invalid request: %s - original request: %s", e.Err, string(e.Request))
}

type InvalidResponse struct {
	Err      string `json:"error"`
	Response []byte `json:"response"`
}

func (e InvalidResponse) Error() string {
	return fmt.Sprintf("invalid response: %s - original response: %s", e.Err, string(e.Response))
}

type NoSuchContract struct {
	Addr string `json:"addr,omitempty"`
}

func (e NoSuchContract) Error() string {
	return fmt.Sprintf("no such contract: %s", e.Addr)
}

type Unknown struct{}

func (e Unknown) Error() string { return "unknown system error" }

type UnsupportedRequest struct {
	Kind string `json:"kind,omitempty"`
}

func (e UnsupportedRequest) Error() string {
	return fmt.Sprintf("unsupported request: %s", e.Kind)
}

// redactError collapses an arbitrary Go error down to its stable ABCI
// codespace/code pair before it is allowed to cross back into a contract's
// Reply, so the message a dependency library happens to format on a given
// patch release never becomes part of consensus state.
func redactError(err error) error {
	codespace, code, _ := sdkerrors.ABCIInfo(err, false)
	return fmt.Errorf("codespace: %s, code: %d", codespace, code)
}

// DispatchSubmessages runs each queued SubMsg in its own cache-context
// sandbox, commits or discards it depending on the outcome, and delivers a
// Reply back into the dispatching contract according to its ReplyOn
// strategy.
func (d MessageDispatcher) DispatchSubmessages(ctx sdk.Context, contractAddr sdk.AccAddress, ibcPort string, msgs []types.SubMsg) ([]byte, error) {
	var rsp []byte
	for _, msg := range msgs {
		switch msg.ReplyOn {
		case types.ReplySuccess, types.ReplyError, types.ReplyAlways, types.ReplyNever:
		default:
			return nil, sdkerrors.Wrap(types.ErrInvalid, "replyOn value")
		}

		subCtx, commit := ctx.CacheContext()
		em := sdk.NewEventManager()
		subCtx = subCtx.WithEventManager(em)

		gasRemaining := ctx.GasMeter().Limit() - ctx.GasMeter().GasConsumed()
		limitGas := msg.GasLimit != nil && (*msg.GasLimit < gasRemaining)

		var err error
		var events []sdk.Event
		var data [][]byte
		if limitGas {
			events, data, err = d.dispatchMsgWithGasLimit(subCtx, contractAddr, ibcPort, msg.Msg, *msg.GasLimit)
		} else {
			events, data, err = d.messenger.DispatchMsg(subCtx, contractAddr, ibcPort, msg.Msg)
		}

		var filteredEvents []sdk.Event
		if err == nil {
			commit()
			filteredEvents = filterEvents(append(em.Events(), events...))
			ctx.EventManager().EmitEvents(filteredEvents)
		}

		if (msg.ReplyOn == types.ReplySuccess || msg.ReplyOn == types.ReplyNever) && err != nil {
			return nil, err
		}
		if msg.ReplyOn == types.ReplyNever || (msg.ReplyOn == types.ReplyError && err == nil) {
			continue
		}

		var result types.SubMsgResult
		if err == nil {
			var responseData []byte
			if len(data) > 0 {
				responseData = data[0]
			}
			result = types.SubMsgResult{
				Ok: &types.SubMsgResponse{
					Events: sdkEventsToWasmEvents(filteredEvents),
					Data:   responseData,
				},
			}
		} else {
			result = types.SubMsgResult{Err: redactError(err).Error()}
		}

		reply := types.Reply{ID: msg.ID, Result: result}
		rspData, err := d.keeper.reply(ctx, contractAddr, reply)
		switch {
		case err != nil:
			return nil, err
		case rspData != nil:
			rsp = rspData
		}
	}
	return rsp, nil
}
