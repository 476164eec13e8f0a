package events

import (
	"log"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"

	"github.com/ethpandaops/frenscan/ethtypes"
)

// Kind identifies which event shape a log matched.
type Kind uint8

const (
	KindNone Kind = iota
	KindERC20Transfer
	KindERC721Transfer
	KindERC1155TransferSingle
	KindERC1155TransferBatch
	KindWETHDeposit
	KindWETHWithdrawal
)

func (k Kind) String() string {
	switch k {
	case KindERC20Transfer:
		return "erc20_transfer"
	case KindERC721Transfer:
		return "erc721_transfer"
	case KindERC1155TransferSingle:
		return "erc1155_transfer_single"
	case KindERC1155TransferBatch:
		return "erc1155_transfer_batch"
	case KindWETHDeposit:
		return "weth_deposit"
	case KindWETHWithdrawal:
		return "weth_withdrawal"
	default:
		return "none"
	}
}

// Event is one of the decoded token event types of this package.
type Event interface {
	Kind() Kind
	isEvent()
}

// Transfer(address indexed from, address indexed to, uint256 value)
type ERC20Transfer struct {
	From  common.Address
	To    common.Address
	Value *big.Int
}

// Transfer(address indexed from, address indexed to, uint256 indexed tokenId)
type ERC721Transfer struct {
	From    common.Address
	To      common.Address
	TokenId *big.Int
}

// TransferSingle(address indexed operator, address indexed from, address indexed to, uint256 id, uint256 value)
type ERC1155TransferSingle struct {
	Operator common.Address
	From     common.Address
	To       common.Address
	Id       *big.Int
	Value    *big.Int
}

// TransferBatch(address indexed operator, address indexed from, address indexed to, uint256[] ids, uint256[] values)
type ERC1155TransferBatch struct {
	Operator common.Address
	From     common.Address
	To       common.Address
	Ids      []*big.Int
	Values   []*big.Int
}

// Deposit(address indexed dst, uint256 wad)
type WETHDeposit struct {
	Dst common.Address
	Wad *big.Int
}

// Withdrawal(address indexed src, uint256 wad)
type WETHWithdrawal struct {
	Src common.Address
	Wad *big.Int
}

func (*ERC20Transfer) Kind() Kind         { return KindERC20Transfer }
func (*ERC721Transfer) Kind() Kind        { return KindERC721Transfer }
func (*ERC1155TransferSingle) Kind() Kind { return KindERC1155TransferSingle }
func (*ERC1155TransferBatch) Kind() Kind  { return KindERC1155TransferBatch }
func (*WETHDeposit) Kind() Kind           { return KindWETHDeposit }
func (*WETHWithdrawal) Kind() Kind        { return KindWETHWithdrawal }

func (*ERC20Transfer) isEvent()         {}
func (*ERC721Transfer) isEvent()        {}
func (*ERC1155TransferSingle) isEvent() {}
func (*ERC1155TransferBatch) isEvent()  {}
func (*WETHDeposit) isEvent()           {}
func (*WETHWithdrawal) isEvent()        {}

// eventShape binds one abi event to its go type and the data layout a
// log must have to be accepted.
type eventShape struct {
	kind     Kind
	contract *abi.ABI
	event    abi.Event
	indexed  abi.Arguments
	dataLen  int  // exact data length for static shapes
	dynamic  bool // dataLen is a lower bound
	newEvent func() Event
}

// shapes in match priority order
var shapes []*eventShape

func init() {
	erc20Abi := mustParseAbi(erc20TransferAbi)
	erc721Abi := mustParseAbi(erc721TransferAbi)
	erc1155Abi := mustParseAbi(erc1155TransferAbi)
	wethContractAbi := mustParseAbi(wethAbi)

	shapes = []*eventShape{
		newEventShape(KindERC20Transfer, erc20Abi, "Transfer", false, func() Event { return &ERC20Transfer{} }),
		newEventShape(KindERC721Transfer, erc721Abi, "Transfer", false, func() Event { return &ERC721Transfer{} }),
		newEventShape(KindERC1155TransferSingle, erc1155Abi, "TransferSingle", false, func() Event { return &ERC1155TransferSingle{} }),
		newEventShape(KindERC1155TransferBatch, erc1155Abi, "TransferBatch", true, func() Event { return &ERC1155TransferBatch{} }),
		newEventShape(KindWETHDeposit, wethContractAbi, "Deposit", false, func() Event { return &WETHDeposit{} }),
		newEventShape(KindWETHWithdrawal, wethContractAbi, "Withdrawal", false, func() Event { return &WETHWithdrawal{} }),
	}
}

func mustParseAbi(abiJson string) *abi.ABI {
	contractAbi, err := abi.JSON(strings.NewReader(abiJson))
	if err != nil {
		log.Fatal(err)
	}
	return &contractAbi
}

func newEventShape(kind Kind, contract *abi.ABI, name string, dynamic bool, newEvent func() Event) *eventShape {
	event := contract.Events[name]

	indexed := abi.Arguments{}
	for _, arg := range event.Inputs {
		if arg.Indexed {
			indexed = append(indexed, arg)
		}
	}

	dataLen := 32 * len(event.Inputs.NonIndexed())
	if dynamic {
		// two offsets plus two length words
		dataLen = 2 * dataLen
	}

	return &eventShape{
		kind:     kind,
		contract: contract,
		event:    event,
		indexed:  indexed,
		dataLen:  dataLen,
		dynamic:  dynamic,
		newEvent: newEvent,
	}
}

// Topic returns the event id (topic0) of the given kind.
func Topic(kind Kind) common.Hash {
	for _, shape := range shapes {
		if shape.kind == kind {
			return shape.event.ID
		}
	}
	return common.Hash{}
}

func (s *eventShape) matches(log *ethtypes.Log) bool {
	if len(log.Topics) != 1+len(s.indexed) || log.Topics[0] != s.event.ID {
		return false
	}
	if s.dynamic {
		return len(log.Data) >= s.dataLen
	}
	return len(log.Data) == s.dataLen
}

func (s *eventShape) unpack(log *ethtypes.Log) (Event, error) {
	event := s.newEvent()
	if len(log.Data) > 0 {
		if err := s.contract.UnpackIntoInterface(event, s.event.Name, log.Data); err != nil {
			return nil, err
		}
	}
	if err := abi.ParseTopics(event, s.indexed, log.Topics[1:]); err != nil {
		return nil, err
	}
	return event, nil
}

// Decode matches the log against the known event shapes in priority order
// (ERC20 transfer, ERC721 transfer, ERC1155 single, ERC1155 batch, WETH
// deposit, WETH withdrawal) and returns the first successful decoding.
// Logs not matching any shape yield (nil, KindNone).
func Decode(log *ethtypes.Log) (Event, Kind) {
	if log == nil {
		return nil, KindNone
	}

	for _, shape := range shapes {
		if !shape.matches(log) {
			continue
		}

		event, err := shape.unpack(log)
		if err != nil {
			continue
		}
		return event, shape.kind
	}

	return nil, KindNone
}
