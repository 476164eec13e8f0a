package transfers

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"github.com/ethpandaops/frenscan/ethtypes"
	"github.com/ethpandaops/frenscan/types"
	"github.com/ethpandaops/frenscan/utils"
)

// rewardAccumulator nets balance deltas of several reward changes into one
// signed total credited to the first address seen.
type rewardAccumulator struct {
	total   *big.Int
	address *common.Address
}

func newRewardAccumulator() *rewardAccumulator {
	return &rewardAccumulator{
		total: new(big.Int),
	}
}

func (acc *rewardAccumulator) add(change *ethtypes.BalanceChange) {
	if acc.address == nil {
		address := change.Address
		acc.address = &address
	}
	acc.total.Add(acc.total, change.Delta())
}

// aggregate returns the fee reward record, or nil unless the total is positive.
func (acc *rewardAccumulator) aggregate(blockHash string) *types.ValueTransfer {
	if acc.total.Sign() <= 0 {
		return nil
	}
	return &types.ValueTransfer{
		Hash:   blockHash,
		To:     utils.HexAddress(*acc.address),
		Value:  utils.EncodeAmount(acc.total),
		Reason: ethtypes.ReasonRewardTransactionFee,
	}
}

// resolveBlockRewards extracts withdrawals and the netted block and fee
// rewards of treasury addresses. It returns nil if there are none.
func (ctx *blockContext) resolveBlockRewards() ([]*types.ValueTransfer, error) {
	transfers := []*types.ValueTransfer{}
	blockHash := utils.HexHash(ctx.block.Hash)

	// block level balance changes
	blockRewards := newRewardAccumulator()
	for _, change := range ctx.block.BalanceChanges {
		if !ctx.registry.IsTreasury(change.Address) {
			continue
		}

		switch change.Reason {
		case ethtypes.ReasonWithdrawal:
			withdrawn := new(big.Int).Sub(change.OldValue.Int(), change.NewValue.Int())
			transfers = append(transfers, &types.ValueTransfer{
				Hash:   blockHash,
				To:     utils.HexAddress(change.Address),
				Value:  utils.EncodeAmount(withdrawn),
				Reason: change.Reason,
			})
		case ethtypes.ReasonRewardMineBlock, ethtypes.ReasonRewardMineUncle, ethtypes.ReasonRewardTransactionFee:
			blockRewards.add(change)
		}
	}
	if transfer := blockRewards.aggregate(blockHash); transfer != nil {
		transfers = append(transfers, transfer)
	}

	// transaction fee rewards credited in the root calls
	feeRewards := newRewardAccumulator()
	for _, trace := range ctx.block.TransactionTraces {
		rootCall := trace.RootCall()
		if rootCall == nil {
			return nil, &MissingRootCallError{
				BlockNumber: ctx.block.Number,
				TxHash:      trace.Hash,
				TxIndex:     trace.Index,
			}
		}

		for _, change := range rootCall.BalanceChanges {
			if change.Reason != ethtypes.ReasonRewardTransactionFee || !ctx.registry.IsTreasury(change.Address) {
				continue
			}
			feeRewards.add(change)
		}
	}
	if transfer := feeRewards.aggregate(blockHash); transfer != nil {
		transfers = append(transfers, transfer)
	}

	if len(transfers) == 0 {
		return nil, nil
	}
	return transfers, nil
}
