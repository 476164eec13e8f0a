package transfers

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/sirupsen/logrus"

	"github.com/ethpandaops/frenscan/ethtypes"
	"github.com/ethpandaops/frenscan/indexer/execution/events"
	"github.com/ethpandaops/frenscan/types"
	"github.com/ethpandaops/frenscan/utils"
)

// tokenMovement is one normalized token movement of a decoded log.
type tokenMovement struct {
	from    common.Address
	to      common.Address
	value   *big.Int
	tokenID string
}

var oneUnit = big.NewInt(1)

// processCallLogs decodes the logs of an eligible call and collects the
// treasury relevant and issued token transfers.
func (ctx *blockContext) processCallLogs(trace *ethtypes.TransactionTrace, call *ethtypes.Call) {
	for _, log := range call.Logs {
		event, kind := events.Decode(log)
		if kind == events.KindNone {
			continue
		}

		movements := ctx.normalizeEvent(trace, log, event)
		if movements == nil {
			continue
		}

		if ctx.isTreasuryEvent(kind, movements) {
			ctx.tokenTransfers = append(ctx.tokenTransfers, newTokenTransfers(trace, call, log, movements)...)
		}
		if ctx.isIssuedTokenEvent(kind, log) {
			ctx.issuedTransfers = append(ctx.issuedTransfers, newTokenTransfers(trace, call, log, movements)...)
		}
	}
}

// normalizeEvent maps a decoded event onto the common movement layout.
// It returns nil for batch events whose id and value lists differ in length.
func (ctx *blockContext) normalizeEvent(trace *ethtypes.TransactionTrace, log *ethtypes.Log, event events.Event) []*tokenMovement {
	switch ev := event.(type) {
	case *events.ERC20Transfer:
		return []*tokenMovement{{from: ev.From, to: ev.To, value: ev.Value}}

	case *events.ERC721Transfer:
		return []*tokenMovement{{from: ev.From, to: ev.To, value: oneUnit, tokenID: ev.TokenId.String()}}

	case *events.ERC1155TransferSingle:
		return []*tokenMovement{{from: ev.From, to: ev.To, value: ev.Value, tokenID: ev.Id.String()}}

	case *events.ERC1155TransferBatch:
		if len(ev.Ids) != len(ev.Values) {
			ctx.batchMismatches++
			ctx.logger.WithFields(logrus.Fields{
				"tx":     trace.Hash.Hex(),
				"log":    log.BlockIndex,
				"ids":    len(ev.Ids),
				"values": len(ev.Values),
			}).Warnf("skipping erc1155 batch transfer with mismatching id / value count")
			return nil
		}

		movements := make([]*tokenMovement, 0, len(ev.Ids))
		for i := range ev.Ids {
			movements = append(movements, &tokenMovement{
				from:    ev.From,
				to:      ev.To,
				value:   ev.Values[i],
				tokenID: ev.Ids[i].String(),
			})
		}
		return movements

	case *events.WETHDeposit:
		return []*tokenMovement{{from: common.Address{}, to: ev.Dst, value: ev.Wad}}

	case *events.WETHWithdrawal:
		return []*tokenMovement{{from: ev.Src, to: common.Address{}, value: ev.Wad}}
	}

	return nil
}

// isTreasuryEvent checks whether a treasury address takes part in the event.
// Transfers to self are ignored, except for wrapping where the counterpart
// is the null address.
func (ctx *blockContext) isTreasuryEvent(kind events.Kind, movements []*tokenMovement) bool {
	if len(movements) == 0 {
		return false
	}
	movement := movements[0]

	switch kind {
	case events.KindWETHDeposit:
		return ctx.registry.IsTreasury(movement.to)
	case events.KindWETHWithdrawal:
		return ctx.registry.IsTreasury(movement.from)
	default:
		if movement.from == movement.to {
			return false
		}
		return ctx.registry.IsTreasury(movement.from) || ctx.registry.IsTreasury(movement.to)
	}
}

// isIssuedTokenEvent checks whether the log was emitted by an issued token.
func (ctx *blockContext) isIssuedTokenEvent(kind events.Kind, log *ethtypes.Log) bool {
	switch kind {
	case events.KindWETHDeposit, events.KindWETHWithdrawal:
		return false
	}
	return ctx.registry.IsIssuedToken(log.Address)
}

func newTokenTransfers(trace *ethtypes.TransactionTrace, call *ethtypes.Call, log *ethtypes.Log, movements []*tokenMovement) []*types.TokenTransfer {
	txHash := utils.HexHash(trace.Hash)
	tokenAddress := utils.HexAddress(log.Address)

	transfers := make([]*types.TokenTransfer, 0, len(movements))
	for _, movement := range movements {
		transfers = append(transfers, &types.TokenTransfer{
			TxHash:       txHash,
			CallIndex:    call.Index,
			LogIndex:     uint64(log.BlockIndex),
			From:         utils.HexAddress(movement.from),
			To:           utils.HexAddress(movement.to),
			Value:        utils.EncodeAmount(movement.value),
			TokenAddress: tokenAddress,
			TokenID:      movement.tokenID,
		})
	}
	return transfers
}
