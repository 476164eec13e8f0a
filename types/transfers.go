package types

import "github.com/ethpandaops/frenscan/ethtypes"

// Transfers is everything extracted from a single block.
type Transfers struct {
	BlockNumber          uint64             `json:"block_number"`
	BlockTimestamp       int64              `json:"block_timestamp"`
	ValueTransfers       []*ValueTransfer   `json:"value_transfers"`
	TokenTransfers       []*TokenTransfer   `json:"token_transfers"`
	CallTraces           []*CallTraceRecord `json:"call_traces"`
	IssuedTokenTransfers []*TokenTransfer   `json:"issued_token_transfers"`
}

// ValueTransfer is a native value movement. Block level reward and
// withdrawal records leave From empty.
type ValueTransfer struct {
	Hash      string          `json:"hash"`
	TxIndex   uint32          `json:"tx_index"`
	CallIndex uint32          `json:"call_index"`
	From      string          `json:"from"`
	To        string          `json:"to"`
	Value     string          `json:"value"`
	Input     string          `json:"input"`
	Reason    ethtypes.Reason `json:"reason"`
}

// TokenTransfer is a normalized ERC20 / ERC721 / ERC1155 / WETH movement.
type TokenTransfer struct {
	TxHash       string `json:"tx_hash"`
	CallIndex    uint32 `json:"call_index"`
	LogIndex     uint64 `json:"log_index"`
	From         string `json:"from"`
	To           string `json:"to"`
	Value        string `json:"value"`
	TokenAddress string `json:"token_address"`
	TokenID      string `json:"token_id"`
}

// CallTraceRecord holds the serialized call tree of one transaction.
type CallTraceRecord struct {
	Hash   string `json:"hash"`
	Index  uint32 `json:"index"`
	Traces string `json:"traces"`
}

// CallTrace is one call of a serialized call tree. Field order and names
// define the stored JSON layout.
type CallTrace struct {
	Index          uint32 `json:"index"`
	ParentIndex    uint32 `json:"parent_index"`
	Depth          uint32 `json:"depth"`
	CallType       int32  `json:"call_type"`
	Caller         string `json:"caller"`
	Address        string `json:"address"`
	Value          string `json:"value"`
	GasLimit       uint64 `json:"gas_limit"`
	GasConsumed    uint64 `json:"gas_consumed"`
	ReturnData     string `json:"return_data"`
	Input          string `json:"input"`
	ExecutedCode   bool   `json:"executed_code"`
	Suicide        bool   `json:"suicide"`
	StatusFailed   bool   `json:"status_failed"`
	StatusReverted bool   `json:"status_reverted"`
	FailureReason  string `json:"failure_reason"`
	StateReverted  bool   `json:"state_reverted"`
}
