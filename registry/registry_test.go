package registry

import (
	"errors"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ethpandaops/frenscan/config"
	"github.com/ethpandaops/frenscan/types"
	"github.com/ethpandaops/frenscan/utils"
)

func strPtr(s string) *string {
	return &s
}

func TestFromFrensFile(t *testing.T) {
	frensFile := &types.FrensFile{
		Version: "1",
		TreasuryAccounts: []*types.TreasuryAccount{
			{Name: "multisig", Address: " 0xAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA "},
			{Name: "ops", Address: "bbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb", Network: strPtr("mainnet")},
		},
		TokensIssued: []*types.TokenIssued{
			{Name: "FREN", Address: "0xcccccccccccccccccccccccccccccccccccccccc", InitialBlock: 100},
			{Name: "Badge", Address: "0xDDDDDDDDDDDDDDDDDDDDDDDDDDDDDDDDDDDDDDDD", TokenID: strPtr("7"), Schema: strPtr("ERC1155"), Network: strPtr("sepolia")},
		},
	}

	reg, err := FromFrensFile(frensFile)
	require.NoError(t, err)

	treasuryA := common.HexToAddress("0xaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa")
	treasuryB := common.HexToAddress("0xbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb")
	tokenC := common.HexToAddress("0xcccccccccccccccccccccccccccccccccccccccc")
	tokenD := common.HexToAddress("0xdddddddddddddddddddddddddddddddddddddddd")

	assert.True(t, reg.IsTreasury(treasuryA))
	assert.True(t, reg.IsTreasury(treasuryB))
	assert.True(t, reg.IsTreasury(tokenC), "issued token contracts are watched too")
	assert.False(t, reg.IsTreasury(common.HexToAddress("0x01")))

	assert.Equal(t, []common.Address{treasuryA, treasuryB, tokenC, tokenD}, reg.TreasuryAddresses())

	token, found := reg.IssuedToken(tokenC)
	require.True(t, found)
	assert.Equal(t, DefaultStandard, token.Standard)
	assert.Equal(t, DefaultNetwork, token.Network)
	assert.Nil(t, token.TokenID)
	assert.Equal(t, uint64(100), token.InitialBlock)

	token, found = reg.IssuedToken(tokenD)
	require.True(t, found)
	assert.Equal(t, "erc1155", token.Standard)
	assert.Equal(t, "sepolia", token.Network)
	require.NotNil(t, token.TokenID)
	assert.Equal(t, "7", *token.TokenID)

	assert.False(t, reg.IsIssuedToken(treasuryA))
	assert.Len(t, reg.IssuedTokens(), 2)
}

func TestFromFrensFileInvalidAddress(t *testing.T) {
	frensFile := &types.FrensFile{
		TreasuryAccounts: []*types.TreasuryAccount{
			{Name: "broken", Address: "0x1234"},
		},
	}

	_, err := FromFrensFile(frensFile)
	require.Error(t, err)

	var configErr *ConfigError
	require.True(t, errors.As(err, &configErr))
	assert.Equal(t, "treasury_accounts", configErr.Section)
	assert.Equal(t, "broken", configErr.Name)
	assert.Contains(t, err.Error(), "broken")

	frensFile = &types.FrensFile{
		TokensIssued: []*types.TokenIssued{
			{Name: "nothex", Address: "0xzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzz"},
		},
	}
	_, err = FromFrensFile(frensFile)
	require.True(t, errors.As(err, &configErr))
	assert.Equal(t, "tokens_issued", configErr.Section)
}

func TestIssuedTokenFirstMatchWins(t *testing.T) {
	address := common.HexToAddress("0x1111111111111111111111111111111111111111")
	reg := New(nil, []IssuedToken{
		{Address: address, Name: "first"},
		{Address: address, Name: "second", Standard: "erc721"},
	})

	token, found := reg.IssuedToken(address)
	require.True(t, found)
	assert.Equal(t, "first", token.Name)
	assert.Equal(t, DefaultStandard, token.Standard)
}

func TestRegistryReturnsCopies(t *testing.T) {
	address := common.HexToAddress("0x1111111111111111111111111111111111111111")
	tokenID := "1"
	reg := New([]common.Address{address}, []IssuedToken{{Address: address, TokenID: &tokenID}})

	tokenID = "2"
	tokens := reg.IssuedTokens()
	tokens[0].Name = "changed"
	addresses := reg.TreasuryAddresses()
	addresses[0] = common.Address{}

	token, _ := reg.IssuedToken(address)
	assert.Equal(t, "", token.Name)
	assert.Equal(t, "1", *token.TokenID)
	assert.True(t, reg.IsTreasury(address))
}

func TestNormalizeAddress(t *testing.T) {
	assert.Equal(t, "9d1babe9bf1d94c64e7b42ed58f6d7fd8f0b8df1", NormalizeAddress("0x9D1BAbE9bF1d94C64E7b42ED58f6d7Fd8F0b8dF1"))

	_, err := ParseAddress("0x9D1BAbE9bF1d94C64E7b42ED58f6d7Fd8F0b8dF1")
	assert.NoError(t, err)
	_, err = ParseAddress("")
	assert.Error(t, err)
}

func TestExampleFrensFile(t *testing.T) {
	frensFile, err := utils.ParseFrensFile([]byte(config.ExampleFrensYml))
	require.NoError(t, err)
	assert.Equal(t, "1", frensFile.Version)
	assert.Len(t, frensFile.AllAddresses(), 4)

	reg, err := FromFrensFile(frensFile)
	require.NoError(t, err)
	assert.Len(t, reg.TreasuryAddresses(), 4)
	assert.True(t, reg.IsTreasury(common.HexToAddress("0x4f2083f5fbede34c2714affb3105539775f7fe64")))

	badge, found := reg.IssuedToken(common.HexToAddress("0xba5e05cb26b78eda3a2f8e3b3814726305dcac83"))
	require.True(t, found)
	require.NotNil(t, badge.TokenID)
	assert.Equal(t, "7", *badge.TokenID)
	assert.Equal(t, "erc1155", badge.Standard)
	assert.Equal(t, DefaultNetwork, badge.Network)

	token, found := reg.IssuedToken(common.HexToAddress("0x5Cc5B05a8A13E3fBDB0BB9FcCd98D38e50F90c38"))
	require.True(t, found)
	assert.Nil(t, token.TokenID)
	assert.Equal(t, DefaultStandard, token.Standard)
}
