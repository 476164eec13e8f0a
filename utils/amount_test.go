package utils

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
)

func TestEncodeAmount(t *testing.T) {
	hugeValue, _ := new(big.Int).SetString("123456789abcdef0123456789abcdef0123", 16)

	tests := []struct {
		name     string
		amount   *big.Int
		expected string
	}{
		{name: "nil", amount: nil, expected: "00"},
		{name: "zero", amount: big.NewInt(0), expected: "00"},
		{name: "odd nibble count is padded", amount: big.NewInt(1000), expected: "03e8"},
		{name: "even nibble count", amount: big.NewInt(20), expected: "14"},
		{name: "gas amount", amount: big.NewInt(21000), expected: "5208"},
		{name: "negative renders magnitude", amount: big.NewInt(-500), expected: "01f4"},
		{name: "beyond 64 bit", amount: hugeValue, expected: "0123456789abcdef0123456789abcdef0123"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.expected, EncodeAmount(test.amount))
		})
	}
}

func TestEncodeAmountDoesNotMutate(t *testing.T) {
	amount := big.NewInt(-42)
	EncodeAmount(amount)
	assert.Equal(t, int64(-42), amount.Int64())
}

func TestHexRendering(t *testing.T) {
	address := common.HexToAddress("0x9D1BAbE9bF1d94C64E7b42ED58f6d7Fd8F0b8dF1")
	assert.Equal(t, "9d1babe9bf1d94c64e7b42ed58f6d7fd8f0b8df1", HexAddress(address))
	assert.Equal(t, "0000000000000000000000000000000000000000", HexAddress(common.Address{}))
	assert.Equal(t, "", HexBytes(nil))
	assert.Equal(t, "a9059cbb", HexBytes([]byte{0xa9, 0x05, 0x9c, 0xbb}))
}

func TestNormalizeHex(t *testing.T) {
	assert.Equal(t, "abcdef", NormalizeHex(" 0xABCDEF "))
	assert.Equal(t, "abcdef", NormalizeHex("0XAbCdEf"))
	assert.Equal(t, "abc", NormalizeHex("abc"))
	assert.Equal(t, "", NormalizeHex("0x"))
}
