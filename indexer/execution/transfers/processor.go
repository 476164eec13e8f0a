package transfers

import (
	"errors"
	"sort"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/ethpandaops/frenscan/ethtypes"
	"github.com/ethpandaops/frenscan/registry"
	"github.com/ethpandaops/frenscan/types"
)

// ErrNilBlock is returned when ProcessBlock is called without a block.
var ErrNilBlock = errors.New("no block supplied")

// ProcessBlock extracts all value transfers, token transfers and call traces
// of the block that involve the registry's treasury addresses or issued
// tokens. The registry is only read, so blocks may be processed in parallel.
// Identical blocks always yield identical results.
func ProcessBlock(block *ethtypes.Block, reg *registry.Registry, logger logrus.FieldLogger) (*types.Transfers, error) {
	if block == nil {
		return nil, ErrNilBlock
	}
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	t1 := time.Now()
	ctx := newBlockContext(block, reg, logger)
	blockMetrics := getMetrics()

	rewards, err := ctx.resolveBlockRewards()
	if err != nil {
		blockMetrics.blocksFailed.Inc()
		return nil, err
	}
	ctx.valueTransfers = append(ctx.valueTransfers, rewards...)

	for _, trace := range block.TransactionTraces {
		rootCall := trace.RootCall()
		if reg.IsTreasury(rootCall.Caller) {
			ctx.valueTransfers = append(ctx.valueTransfers, ctx.resolveGasTransfers(trace, rootCall)...)
		}

		for _, call := range trace.Calls {
			if !isEligibleCall(call) {
				continue
			}

			if transfer := ctx.newValueTransferFromCall(trace, call); transfer != nil {
				ctx.valueTransfers = append(ctx.valueTransfers, transfer)
			}

			ctx.processCallLogs(trace, call)
		}
	}

	callTraces, err := ctx.collectCallTraces(ctx.qualifyingTxHashes())
	if err != nil {
		blockMetrics.blocksFailed.Inc()
		return nil, err
	}

	sort.SliceStable(ctx.tokenTransfers, func(i, j int) bool {
		return ctx.tokenTransfers[i].LogIndex < ctx.tokenTransfers[j].LogIndex
	})
	sort.SliceStable(ctx.issuedTransfers, func(i, j int) bool {
		return ctx.issuedTransfers[i].LogIndex < ctx.issuedTransfers[j].LogIndex
	})
	sort.SliceStable(ctx.valueTransfers, func(i, j int) bool {
		a, b := ctx.valueTransfers[i], ctx.valueTransfers[j]
		if a.TxIndex != b.TxIndex {
			return a.TxIndex < b.TxIndex
		}
		return a.CallIndex < b.CallIndex
	})

	transfers := &types.Transfers{
		BlockNumber:          block.Number,
		BlockTimestamp:       blockTimestamp(block),
		ValueTransfers:       ctx.valueTransfers,
		TokenTransfers:       ctx.tokenTransfers,
		CallTraces:           callTraces,
		IssuedTokenTransfers: ctx.issuedTransfers,
	}

	blockMetrics.observeBlock(transfers, ctx.batchMismatches)
	ctx.logger.Debugf(
		"processed block: %v value transfers, %v token transfers, %v issued token transfers, %v call traces (%v ms)",
		len(transfers.ValueTransfers),
		len(transfers.TokenTransfers),
		len(transfers.IssuedTokenTransfers),
		len(transfers.CallTraces),
		time.Since(t1).Milliseconds(),
	)

	return transfers, nil
}

func blockTimestamp(block *ethtypes.Block) int64 {
	if block.Header == nil || block.Header.Timestamp == nil {
		return 0
	}
	return block.Header.Timestamp.Seconds
}
