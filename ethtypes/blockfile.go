package ethtypes

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/golang/snappy"
)

// DecodeBlock parses a JSON encoded block.
func DecodeBlock(data []byte) (*Block, error) {
	block := &Block{}
	if err := json.Unmarshal(data, block); err != nil {
		return nil, fmt.Errorf("error decoding block: %w", err)
	}
	return block, nil
}

// ReadBlockFile loads a block from a JSON file. Files ending in ".snappy"
// are snappy block-compressed JSON.
func ReadBlockFile(path string) (*Block, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading block file %v: %w", path, err)
	}

	if strings.HasSuffix(path, ".snappy") {
		data, err = snappy.Decode(nil, data)
		if err != nil {
			return nil, fmt.Errorf("error decompressing block file %v: %w", path, err)
		}
	}

	block, err := DecodeBlock(data)
	if err != nil {
		return nil, fmt.Errorf("block file %v: %w", path, err)
	}
	return block, nil
}

// WriteBlockFile stores a block as JSON, snappy compressed when path ends in ".snappy".
func WriteBlockFile(path string, block *Block) error {
	data, err := json.Marshal(block)
	if err != nil {
		return err
	}
	if strings.HasSuffix(path, ".snappy") {
		data = snappy.Encode(nil, data)
	}
	return os.WriteFile(path, data, 0o644)
}
