package transfers

import (
	"github.com/ethpandaops/frenscan/ethtypes"
	"github.com/ethpandaops/frenscan/types"
	"github.com/ethpandaops/frenscan/utils"
)

// isEligibleCall reports whether value and logs of the call may produce
// transfers. Delegate calls and calls with reverted state never do.
func isEligibleCall(call *ethtypes.Call) bool {
	return call.CallType != ethtypes.CallTypeDelegate && !call.StateReverted
}

// newValueTransferFromCall returns the native value moved by an eligible call
// touching a treasury address, or nil if the call carries no value bytes.
// A present zero value still yields a record.
func (ctx *blockContext) newValueTransferFromCall(trace *ethtypes.TransactionTrace, call *ethtypes.Call) *types.ValueTransfer {
	if !ctx.registry.IsTreasury(call.Caller) && !ctx.registry.IsTreasury(call.Address) {
		return nil
	}
	if call.Value.IsEmpty() {
		return nil
	}

	return &types.ValueTransfer{
		Hash:      utils.HexHash(trace.Hash),
		TxIndex:   trace.Index,
		CallIndex: call.Index,
		From:      utils.HexAddress(call.Caller),
		To:        utils.HexAddress(call.Address),
		Value:     utils.EncodeAmount(call.Value.Int()),
		Input:     utils.HexBytes(call.Input),
		Reason:    ethtypes.ReasonTransfer,
	}
}
