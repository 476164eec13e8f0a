package transfers

import (
	"encoding/json"
	"fmt"

	"github.com/ethpandaops/frenscan/ethtypes"
	"github.com/ethpandaops/frenscan/types"
	"github.com/ethpandaops/frenscan/utils"
)

// qualifyingTxHashes returns the hashes of all transactions that produced a
// token transfer or a value transfer other than a mining reward.
func (ctx *blockContext) qualifyingTxHashes() map[string]struct{} {
	hashes := make(map[string]struct{}, len(ctx.tokenTransfers)+len(ctx.valueTransfers))

	for _, transfer := range ctx.tokenTransfers {
		hashes[transfer.TxHash] = struct{}{}
	}
	for _, transfer := range ctx.issuedTransfers {
		hashes[transfer.TxHash] = struct{}{}
	}
	for _, transfer := range ctx.valueTransfers {
		switch transfer.Reason {
		case ethtypes.ReasonRewardMineBlock, ethtypes.ReasonRewardMineUncle:
			continue
		}
		hashes[transfer.Hash] = struct{}{}
	}

	return hashes
}

// collectCallTraces serializes the full call tree of every qualifying
// transaction, in block order.
func (ctx *blockContext) collectCallTraces(qualifying map[string]struct{}) ([]*types.CallTraceRecord, error) {
	records := []*types.CallTraceRecord{}

	for _, trace := range ctx.block.TransactionTraces {
		txHash := utils.HexHash(trace.Hash)
		if _, found := qualifying[txHash]; !found {
			continue
		}

		record, err := newCallTraceRecord(txHash, trace)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}

	return records, nil
}

func newCallTraceRecord(txHash string, trace *ethtypes.TransactionTrace) (*types.CallTraceRecord, error) {
	calls := make([]*types.CallTrace, 0, len(trace.Calls))
	for _, call := range trace.Calls {
		var value []byte
		if call.Value != nil {
			value = call.Value.Bytes
		}

		calls = append(calls, &types.CallTrace{
			Index:          call.Index,
			ParentIndex:    call.ParentIndex,
			Depth:          call.Depth,
			CallType:       int32(call.CallType),
			Caller:         utils.HexAddress(call.Caller),
			Address:        utils.HexAddress(call.Address),
			Value:          utils.HexBytes(value),
			GasLimit:       call.GasLimit,
			GasConsumed:    call.GasConsumed,
			ReturnData:     utils.HexBytes(call.ReturnData),
			Input:          utils.HexBytes(call.Input),
			ExecutedCode:   call.ExecutedCode,
			Suicide:        call.Suicide,
			StatusFailed:   call.StatusFailed,
			StatusReverted: call.StatusReverted,
			FailureReason:  utils.HexBytes([]byte(call.FailureReason)),
			StateReverted:  call.StateReverted,
		})
	}

	tracesJson, err := json.Marshal(calls)
	if err != nil {
		return nil, fmt.Errorf("failed serializing call traces of tx %v: %w", txHash, err)
	}

	return &types.CallTraceRecord{
		Hash:   txHash,
		Index:  trace.Index,
		Traces: "'" + string(tracesJson) + "'",
	}, nil
}
