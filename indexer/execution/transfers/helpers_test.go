package transfers

import (
	"math/big"
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"

	"github.com/ethpandaops/frenscan/ethtypes"
	"github.com/ethpandaops/frenscan/indexer/execution/events"
	"github.com/ethpandaops/frenscan/registry"
)

var (
	treasuryA   = common.HexToAddress("0xaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa")
	treasuryB   = common.HexToAddress("0xbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb")
	outsider    = common.HexToAddress("0x1111111111111111111111111111111111111111")
	outsider2   = common.HexToAddress("0x2222222222222222222222222222222222222222")
	tokenAddr   = common.HexToAddress("0x3333333333333333333333333333333333333333")
	issuedAddr  = common.HexToAddress("0x4444444444444444444444444444444444444444")
	wethAddr    = common.HexToAddress("0xc02aaa39b223fe8d0a0e5c4f27ead9083c756cc2")
	blockHash   = common.HexToHash("0xb10cb10cb10cb10cb10cb10cb10cb10cb10cb10cb10cb10cb10cb10cb10cb10c")
	zeroAddress = strings.Repeat("0", 40)
)

func hexOf(address common.Address) string {
	return strings.ToLower(address.Hex()[2:])
}

func txHash(n byte) common.Hash {
	return common.BytesToHash([]byte{0xee, n})
}

func hashHex(hash common.Hash) string {
	return hash.Hex()[2:]
}

func testRegistry() *registry.Registry {
	return registry.New(
		[]common.Address{treasuryA, treasuryB},
		[]registry.IssuedToken{{Address: issuedAddr, Name: "FREN"}},
	)
}

func bigInt(value int64) *ethtypes.BigInt {
	return &ethtypes.BigInt{Bytes: big.NewInt(value).Bytes()}
}

func balanceChange(address common.Address, oldValue, newValue int64, reason ethtypes.Reason, ordinal uint64) *ethtypes.BalanceChange {
	return &ethtypes.BalanceChange{
		Address:  address,
		OldValue: bigInt(oldValue),
		NewValue: bigInt(newValue),
		Reason:   reason,
		Ordinal:  ordinal,
	}
}

func addressTopic(address common.Address) common.Hash {
	return common.BytesToHash(address.Bytes())
}

func erc20Log(emitter, from, to common.Address, value int64, blockIndex uint32) *ethtypes.Log {
	return &ethtypes.Log{
		Address:    emitter,
		Topics:     []common.Hash{events.Topic(events.KindERC20Transfer), addressTopic(from), addressTopic(to)},
		Data:       common.BigToHash(big.NewInt(value)).Bytes(),
		BlockIndex: blockIndex,
	}
}

func erc721Log(emitter, from, to common.Address, tokenID int64, blockIndex uint32) *ethtypes.Log {
	return &ethtypes.Log{
		Address:    emitter,
		Topics:     []common.Hash{events.Topic(events.KindERC721Transfer), addressTopic(from), addressTopic(to), common.BigToHash(big.NewInt(tokenID))},
		BlockIndex: blockIndex,
	}
}

func erc1155SingleLog(emitter, from, to common.Address, id, value int64, blockIndex uint32) *ethtypes.Log {
	data := append(common.BigToHash(big.NewInt(id)).Bytes(), common.BigToHash(big.NewInt(value)).Bytes()...)
	return &ethtypes.Log{
		Address:    emitter,
		Topics:     []common.Hash{events.Topic(events.KindERC1155TransferSingle), addressTopic(outsider), addressTopic(from), addressTopic(to)},
		Data:       data,
		BlockIndex: blockIndex,
	}
}

func erc1155BatchLog(t *testing.T, emitter, from, to common.Address, ids, values []int64, blockIndex uint32) *ethtypes.Log {
	t.Helper()

	uintArray, err := abi.NewType("uint256[]", "", nil)
	require.NoError(t, err)
	arguments := abi.Arguments{{Name: "ids", Type: uintArray}, {Name: "values", Type: uintArray}}

	toBig := func(numbers []int64) []*big.Int {
		res := make([]*big.Int, len(numbers))
		for i, number := range numbers {
			res[i] = big.NewInt(number)
		}
		return res
	}

	data, err := arguments.Pack(toBig(ids), toBig(values))
	require.NoError(t, err)

	return &ethtypes.Log{
		Address:    emitter,
		Topics:     []common.Hash{events.Topic(events.KindERC1155TransferBatch), addressTopic(outsider), addressTopic(from), addressTopic(to)},
		Data:       data,
		BlockIndex: blockIndex,
	}
}

func wethLog(kind events.Kind, account common.Address, wad int64, blockIndex uint32) *ethtypes.Log {
	return &ethtypes.Log{
		Address:    wethAddr,
		Topics:     []common.Hash{events.Topic(kind), addressTopic(account)},
		Data:       common.BigToHash(big.NewInt(wad)).Bytes(),
		BlockIndex: blockIndex,
	}
}

// rootCall creates a plain call frame without value from caller to address.
func rootCall(caller, address common.Address) *ethtypes.Call {
	return &ethtypes.Call{
		Index:    0,
		CallType: ethtypes.CallTypeCall,
		Caller:   caller,
		Address:  address,
		GasLimit: 100000,
	}
}

func transactionTrace(index uint32, calls ...*ethtypes.Call) *ethtypes.TransactionTrace {
	return &ethtypes.TransactionTrace{
		Hash:       txHash(byte(index)),
		Index:      index,
		EndOrdinal: uint64(1000 + index),
		Calls:      calls,
	}
}

func testBlock(traces ...*ethtypes.TransactionTrace) *ethtypes.Block {
	return &ethtypes.Block{
		Hash:   blockHash,
		Number: 17000000,
		Header: &ethtypes.BlockHeader{
			Number:    17000000,
			Timestamp: &ethtypes.Timestamp{Seconds: 1681338455},
		},
		TransactionTraces: traces,
	}
}
