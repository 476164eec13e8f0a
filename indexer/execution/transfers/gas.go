package transfers

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"github.com/ethpandaops/frenscan/ethtypes"
	"github.com/ethpandaops/frenscan/types"
	"github.com/ethpandaops/frenscan/utils"
)

// resolveGasTransfers classifies the treasury balance changes of a root call.
// Gas buy and refund changes are netted into one record at the transaction's
// end ordinal, all other changes are emitted at their own ordinal.
// Only the root call is inspected, nested calls' gas changes are ignored.
func (ctx *blockContext) resolveGasTransfers(trace *ethtypes.TransactionTrace, rootCall *ethtypes.Call) []*types.ValueTransfer {
	transfers := []*types.ValueTransfer{}
	txHash := utils.HexHash(trace.Hash)

	gasTotal := new(big.Int)
	var gasAddress *common.Address

	for _, change := range rootCall.BalanceChanges {
		if !ctx.registry.IsTreasury(change.Address) {
			continue
		}

		switch {
		case change.Reason == ethtypes.ReasonTransfer, change.Reason == ethtypes.ReasonRewardTransactionFee:
			continue
		case !change.Reason.IsKnown():
			ctx.logger.Debugf("skipping balance change with unknown reason %v in tx %v", int32(change.Reason), trace.Hash.Hex())
			continue
		case change.Reason == ethtypes.ReasonGasBuy, change.Reason == ethtypes.ReasonGasRefund:
			if gasAddress == nil {
				address := change.Address
				gasAddress = &address
			}
			gasTotal.Add(gasTotal, change.Delta())
		default:
			from, to, value := classifyDelta(change.Address, change.Delta())
			transfers = append(transfers, &types.ValueTransfer{
				Hash:      txHash,
				TxIndex:   trace.Index,
				CallIndex: uint32(change.Ordinal),
				From:      from,
				To:        to,
				Value:     value,
				Reason:    change.Reason,
			})
		}
	}

	if gasTotal.Sign() != 0 {
		reason := ethtypes.ReasonGasBuy
		if gasTotal.Sign() > 0 {
			reason = ethtypes.ReasonGasRefund
		}

		from, to, value := classifyDelta(*gasAddress, gasTotal)
		transfers = append(transfers, &types.ValueTransfer{
			Hash:      txHash,
			TxIndex:   trace.Index,
			CallIndex: uint32(trace.EndOrdinal),
			From:      from,
			To:        to,
			Value:     value,
			Reason:    reason,
		})
	}

	return transfers
}
