package ethtypes

import (
	"path/filepath"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testBlockJSON = `{
	"hash": "0x1111111111111111111111111111111111111111111111111111111111111111",
	"number": 17000000,
	"header": {"number": 17000000, "timestamp": {"seconds": 1681338455}},
	"balance_changes": [
		{"address": "0x00000000000000000000000000000000000000aa", "old_value": {"bytes": "0x01"}, "new_value": {"bytes": "0x03"}, "reason": "REWARD_MINE_BLOCK"}
	],
	"transaction_traces": [{
		"hash": "0x2222222222222222222222222222222222222222222222222222222222222222",
		"index": 3,
		"end_ordinal": 99,
		"calls": [{
			"index": 0,
			"call_type": "DELEGATECALL",
			"caller": "0x00000000000000000000000000000000000000aa",
			"address": "0x00000000000000000000000000000000000000bb",
			"value": {"bytes": "0x0de0b6b3a7640000"},
			"balance_changes": [{"address": "0x00000000000000000000000000000000000000aa", "reason": 7, "ordinal": 4}]
		}]
	}]
}`

func TestDecodeBlock(t *testing.T) {
	block, err := DecodeBlock([]byte(testBlockJSON))
	require.NoError(t, err)

	assert.Equal(t, uint64(17000000), block.Number)
	require.NotNil(t, block.Header)
	require.NotNil(t, block.Header.Timestamp)
	assert.Equal(t, int64(1681338455), block.Header.Timestamp.Seconds)

	require.Len(t, block.BalanceChanges, 1)
	change := block.BalanceChanges[0]
	assert.Equal(t, ReasonRewardMineBlock, change.Reason)
	assert.Equal(t, "2", change.Delta().String())

	require.Len(t, block.TransactionTraces, 1)
	trace := block.TransactionTraces[0]
	root := trace.RootCall()
	require.NotNil(t, root)
	assert.Equal(t, CallTypeDelegate, root.CallType)
	assert.Equal(t, common.HexToAddress("0xbb"), root.Address)
	assert.Equal(t, "1000000000000000000", root.Value.Int().String())
	assert.Equal(t, ReasonGasBuy, root.BalanceChanges[0].Reason)
	assert.Equal(t, "0", root.BalanceChanges[0].Delta().String())
}

func TestDecodeBlockRejectsUnknownReason(t *testing.T) {
	_, err := DecodeBlock([]byte(`{"balance_changes": [{"reason": "NOT_A_REASON"}]}`))
	assert.Error(t, err)
}

func TestRootCallEmptyTrace(t *testing.T) {
	trace := &TransactionTrace{}
	assert.Nil(t, trace.RootCall())
}

func TestBigIntAbsent(t *testing.T) {
	var value *BigInt
	assert.True(t, value.IsEmpty())
	assert.Equal(t, int64(0), value.Int().Int64())
	assert.True(t, (&BigInt{}).IsEmpty())
}

func TestReasonString(t *testing.T) {
	assert.Equal(t, "REASON_GAS_REFUND", ReasonGasRefund.String())
	assert.Equal(t, "REASON_99", Reason(99).String())
	assert.False(t, Reason(99).IsKnown())
	assert.True(t, ReasonWithdrawal.IsKnown())
}

func TestBlockFileRoundTrip(t *testing.T) {
	block, err := DecodeBlock([]byte(testBlockJSON))
	require.NoError(t, err)

	for _, name := range []string{"block.json", "block.json.snappy"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), name)
			require.NoError(t, WriteBlockFile(path, block))

			loaded, err := ReadBlockFile(path)
			require.NoError(t, err)
			assert.Equal(t, block, loaded)
		})
	}
}
