package transfers

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/sirupsen/logrus"

	"github.com/ethpandaops/frenscan/ethtypes"
	"github.com/ethpandaops/frenscan/registry"
	"github.com/ethpandaops/frenscan/types"
	"github.com/ethpandaops/frenscan/utils"
)

// blockContext holds the state for extracting the transfers of one block.
type blockContext struct {
	block    *ethtypes.Block
	registry *registry.Registry
	logger   logrus.FieldLogger

	valueTransfers  []*types.ValueTransfer
	tokenTransfers  []*types.TokenTransfer
	issuedTransfers []*types.TokenTransfer

	batchMismatches int
}

func newBlockContext(block *ethtypes.Block, reg *registry.Registry, logger logrus.FieldLogger) *blockContext {
	return &blockContext{
		block:           block,
		registry:        reg,
		logger:          logger.WithField("block", block.Number),
		valueTransfers:  make([]*types.ValueTransfer, 0, 16),
		tokenTransfers:  make([]*types.TokenTransfer, 0, 16),
		issuedTransfers: make([]*types.TokenTransfer, 0, 16),
	}
}

// MissingRootCallError is returned when a transaction trace carries no calls.
// The whole block is rejected in that case.
type MissingRootCallError struct {
	BlockNumber uint64
	TxHash      common.Hash
	TxIndex     uint32
}

func (e *MissingRootCallError) Error() string {
	return fmt.Sprintf("block %v: transaction %v (index %v) has no root call", e.BlockNumber, e.TxHash.Hex(), e.TxIndex)
}

// classifyDelta infers the direction of a signed balance delta.
// A positive delta credits the address, anything else debits it.
func classifyDelta(address common.Address, delta *big.Int) (from string, to string, value string) {
	if delta.Sign() > 0 {
		to = utils.HexAddress(address)
	} else {
		from = utils.HexAddress(address)
	}
	return from, to, utils.EncodeAmount(delta)
}
