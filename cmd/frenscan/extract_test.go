package main

import (
	"bytes"
	"context"
	"encoding/json"
	"math/big"
	"path/filepath"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ethpandaops/frenscan/db"
	"github.com/ethpandaops/frenscan/ethtypes"
	"github.com/ethpandaops/frenscan/registry"
)

var (
	treasury = common.HexToAddress("0xaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa")
	outsider = common.HexToAddress("0x1111111111111111111111111111111111111111")
)

func valueBlock(number uint64, value int64) *ethtypes.Block {
	return &ethtypes.Block{
		Hash:   common.BigToHash(new(big.Int).SetUint64(number)),
		Number: number,
		Header: &ethtypes.BlockHeader{
			Number:    number,
			Timestamp: &ethtypes.Timestamp{Seconds: 1681338455},
		},
		TransactionTraces: []*ethtypes.TransactionTrace{
			{
				Hash:       common.HexToHash("0xee01"),
				EndOrdinal: 100,
				Calls: []*ethtypes.Call{
					{
						CallType: ethtypes.CallTypeCall,
						Caller:   outsider,
						Address:  treasury,
						Value:    &ethtypes.BigInt{Bytes: big.NewInt(value).Bytes()},
					},
				},
			},
		},
	}
}

func TestExtractBlocks(t *testing.T) {
	dir := t.TempDir()
	paths := []string{
		filepath.Join(dir, "block1.json"),
		filepath.Join(dir, "block2.json.snappy"),
		filepath.Join(dir, "block3.json"),
	}
	require.NoError(t, ethtypes.WriteBlockFile(paths[0], valueBlock(100, 1)))
	require.NoError(t, ethtypes.WriteBlockFile(paths[1], valueBlock(101, 2)))
	require.NoError(t, ethtypes.WriteBlockFile(paths[2], valueBlock(102, 3)))

	logger, _ := test.NewNullLogger()
	reg := registry.New([]common.Address{treasury}, nil)

	results, err := extractBlocks(context.Background(), paths, reg, 2, logger)
	require.NoError(t, err)
	require.Len(t, results, 3)

	for idx, result := range results {
		assert.Equal(t, uint64(100+idx), result.BlockNumber)
		require.Len(t, result.ValueTransfers, 1)
		assert.Equal(t, "0"+string(rune('1'+idx)), result.ValueTransfers[0].Value)
		assert.Equal(t, ethtypes.ReasonTransfer, result.ValueTransfers[0].Reason)
		assert.Len(t, result.CallTraces, 1)
	}

	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	for _, result := range results {
		require.NoError(t, encoder.Encode(result))
	}

	changes, blockCount, err := readChangeSet(&buf)
	require.NoError(t, err)
	assert.Equal(t, 3, blockCount)
	require.Len(t, changes.TableChanges, 6)
	assert.Equal(t, db.TableValueTransfers, changes.TableChanges[0].Table)
	assert.Equal(t, db.TableCallTraces, changes.TableChanges[1].Table)
}

func TestExtractBlocksErrors(t *testing.T) {
	dir := t.TempDir()
	logger, _ := test.NewNullLogger()
	reg := registry.New([]common.Address{treasury}, nil)

	_, err := extractBlocks(context.Background(), []string{filepath.Join(dir, "missing.json")}, reg, 1, logger)
	assert.Error(t, err)

	path := filepath.Join(dir, "broken.json")
	block := valueBlock(100, 1)
	block.TransactionTraces[0].Calls = nil
	require.NoError(t, ethtypes.WriteBlockFile(path, block))

	_, err = extractBlocks(context.Background(), []string{path}, reg, 1, logger)
	assert.ErrorContains(t, err, "broken.json")
}

func TestReadChangeSetInvalid(t *testing.T) {
	_, _, err := readChangeSet(bytes.NewBufferString("{\"block_number\": 1}\nnot json\n"))
	assert.ErrorContains(t, err, "extracted block 2")

	changes, blockCount, err := readChangeSet(bytes.NewBufferString(""))
	require.NoError(t, err)
	assert.Equal(t, 0, blockCount)
	assert.Empty(t, changes.TableChanges)
}
