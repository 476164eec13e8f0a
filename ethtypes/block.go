package ethtypes

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

// Block is one fully traced block as supplied by the host runtime.
type Block struct {
	Hash              common.Hash         `json:"hash"`
	Number            uint64              `json:"number"`
	Header            *BlockHeader        `json:"header,omitempty"`
	BalanceChanges    []*BalanceChange    `json:"balance_changes,omitempty"`
	TransactionTraces []*TransactionTrace `json:"transaction_traces,omitempty"`
}

type BlockHeader struct {
	Number    uint64     `json:"number"`
	Timestamp *Timestamp `json:"timestamp,omitempty"`
}

type Timestamp struct {
	Seconds int64 `json:"seconds"`
	Nanos   int32 `json:"nanos,omitempty"`
}

// BigInt wraps the unsigned big-endian bytes of an on-chain quantity.
// A nil *BigInt means the host did not supply the value.
type BigInt struct {
	Bytes hexutil.Bytes `json:"bytes"`
}

// Int returns the value as a big.Int; absent values are zero.
func (b *BigInt) Int() *big.Int {
	if b == nil {
		return new(big.Int)
	}
	return new(big.Int).SetBytes(b.Bytes)
}

// IsEmpty reports whether no value bytes were supplied.
func (b *BigInt) IsEmpty() bool {
	return b == nil || len(b.Bytes) == 0
}

type BalanceChange struct {
	Address  common.Address `json:"address"`
	OldValue *BigInt        `json:"old_value,omitempty"`
	NewValue *BigInt        `json:"new_value,omitempty"`
	Reason   Reason         `json:"reason"`
	Ordinal  uint64         `json:"ordinal"`
}

// Delta returns new_value - old_value. The result may be negative.
func (b *BalanceChange) Delta() *big.Int {
	return new(big.Int).Sub(b.NewValue.Int(), b.OldValue.Int())
}

type TransactionTrace struct {
	Hash         common.Hash `json:"hash"`
	Index        uint32      `json:"index"`
	BeginOrdinal uint64      `json:"begin_ordinal"`
	EndOrdinal   uint64      `json:"end_ordinal"`
	Calls        []*Call     `json:"calls,omitempty"`
}

// RootCall returns the first call of the trace, or nil when the trace has no calls.
func (t *TransactionTrace) RootCall() *Call {
	if len(t.Calls) == 0 {
		return nil
	}
	return t.Calls[0]
}

type Call struct {
	Index          uint32           `json:"index"`
	ParentIndex    uint32           `json:"parent_index"`
	Depth          uint32           `json:"depth"`
	CallType       CallType         `json:"call_type"`
	Caller         common.Address   `json:"caller"`
	Address        common.Address   `json:"address"`
	Value          *BigInt          `json:"value,omitempty"`
	GasLimit       uint64           `json:"gas_limit"`
	GasConsumed    uint64           `json:"gas_consumed"`
	ReturnData     hexutil.Bytes    `json:"return_data,omitempty"`
	Input          hexutil.Bytes    `json:"input,omitempty"`
	ExecutedCode   bool             `json:"executed_code"`
	Suicide        bool             `json:"suicide"`
	StatusFailed   bool             `json:"status_failed"`
	StatusReverted bool             `json:"status_reverted"`
	FailureReason  string           `json:"failure_reason,omitempty"`
	StateReverted  bool             `json:"state_reverted"`
	Logs           []*Log           `json:"logs,omitempty"`
	BalanceChanges []*BalanceChange `json:"balance_changes,omitempty"`
}

type Log struct {
	Address    common.Address `json:"address"`
	Topics     []common.Hash  `json:"topics,omitempty"`
	Data       hexutil.Bytes  `json:"data,omitempty"`
	Index      uint32         `json:"index"`
	BlockIndex uint32         `json:"block_index"`
	Ordinal    uint64         `json:"ordinal"`
}
