package utils

import (
	"encoding/hex"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

// EncodeAmount renders the magnitude of amount as even-length lowercase hex
// without prefix. Zero renders as "00".
func EncodeAmount(amount *big.Int) string {
	if amount == nil {
		return "00"
	}
	return PadHex(new(big.Int).Abs(amount).Text(16))
}

// PadHex left-pads a hex string with a single zero nibble if its length is odd.
func PadHex(hexString string) string {
	if len(hexString)%2 == 0 {
		return hexString
	}
	return "0" + hexString
}

// HexBytes renders data as lowercase hex without prefix.
func HexBytes(data []byte) string {
	return hex.EncodeToString(data)
}

// HexAddress renders an address as lowercase hex without prefix.
func HexAddress(address common.Address) string {
	return hex.EncodeToString(address[:])
}

// HexHash renders a hash as lowercase hex without prefix.
func HexHash(hash common.Hash) string {
	return hex.EncodeToString(hash[:])
}

// NormalizeHex trims whitespace, strips a 0x prefix and lowercases.
func NormalizeHex(hexString string) string {
	hexString = strings.TrimSpace(hexString)
	if len(hexString) >= 2 && (hexString[:2] == "0x" || hexString[:2] == "0X") {
		hexString = hexString[2:]
	}
	return strings.ToLower(hexString)
}
