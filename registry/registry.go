package registry

import (
	"encoding/hex"
	"fmt"
	"sort"
	"strings"

	"github.com/ethereum/go-ethereum/common"

	"github.com/ethpandaops/frenscan/types"
	"github.com/ethpandaops/frenscan/utils"
)

const (
	DefaultStandard = "erc20"
	DefaultNetwork  = "mainnet"
)

// IssuedToken describes a token contract whose transfers are tracked
// regardless of the counterparties.
type IssuedToken struct {
	Address      common.Address
	TokenID      *string
	Standard     string
	Network      string
	Name         string
	InitialBlock uint64
}

// ConfigError reports an invalid entry of the frens file.
type ConfigError struct {
	Section string
	Name    string
	Address string
	Err     error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid %v entry %q (address %q): %v", e.Section, e.Name, e.Address, e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// Registry holds the watched treasury addresses and the issued token list.
// It is never modified after construction and may be shared between
// goroutines.
type Registry struct {
	treasury map[common.Address]struct{}
	tokens   []IssuedToken
}

// New builds a registry from already parsed addresses. Missing standard and
// network tags fall back to erc20 / mainnet.
func New(treasury []common.Address, tokens []IssuedToken) *Registry {
	reg := &Registry{
		treasury: make(map[common.Address]struct{}, len(treasury)),
		tokens:   make([]IssuedToken, 0, len(tokens)),
	}

	for _, address := range treasury {
		reg.treasury[address] = struct{}{}
	}

	for _, token := range tokens {
		if token.Standard == "" {
			token.Standard = DefaultStandard
		}
		if token.Network == "" {
			token.Network = DefaultNetwork
		}
		if token.TokenID != nil {
			tokenID := *token.TokenID
			token.TokenID = &tokenID
		}
		reg.tokens = append(reg.tokens, token)
	}

	return reg
}

// FromFrensFile builds a registry from the frens file. The watched set
// contains the treasury accounts and the issued token contracts.
func FromFrensFile(frensFile *types.FrensFile) (*Registry, error) {
	if frensFile == nil {
		return New(nil, nil), nil
	}

	treasury := make([]common.Address, 0, len(frensFile.TreasuryAccounts)+len(frensFile.TokensIssued))
	for _, account := range frensFile.TreasuryAccounts {
		address, err := ParseAddress(account.Address)
		if err != nil {
			return nil, &ConfigError{Section: "treasury_accounts", Name: account.Name, Address: account.Address, Err: err}
		}
		treasury = append(treasury, address)
	}

	tokens := make([]IssuedToken, 0, len(frensFile.TokensIssued))
	for _, token := range frensFile.TokensIssued {
		address, err := ParseAddress(token.Address)
		if err != nil {
			return nil, &ConfigError{Section: "tokens_issued", Name: token.Name, Address: token.Address, Err: err}
		}

		issued := IssuedToken{
			Address:      address,
			TokenID:      token.TokenID,
			Name:         token.Name,
			InitialBlock: token.InitialBlock,
		}
		if token.Schema != nil {
			issued.Standard = strings.ToLower(strings.TrimSpace(*token.Schema))
		}
		if token.Network != nil {
			issued.Network = strings.TrimSpace(*token.Network)
		}

		treasury = append(treasury, address)
		tokens = append(tokens, issued)
	}

	return New(treasury, tokens), nil
}

// NormalizeAddress trims whitespace, strips the 0x prefix and lowercases.
func NormalizeAddress(address string) string {
	return utils.NormalizeHex(address)
}

// ParseAddress parses a 20 byte hex address with optional 0x prefix.
func ParseAddress(address string) (common.Address, error) {
	normalized := NormalizeAddress(address)
	if len(normalized) != common.AddressLength*2 {
		return common.Address{}, fmt.Errorf("expected %v hex characters, got %v", common.AddressLength*2, len(normalized))
	}

	raw, err := hex.DecodeString(normalized)
	if err != nil {
		return common.Address{}, fmt.Errorf("invalid hex: %w", err)
	}

	return common.BytesToAddress(raw), nil
}

// IsTreasury reports whether address is watched.
func (r *Registry) IsTreasury(address common.Address) bool {
	_, found := r.treasury[address]
	return found
}

// IssuedToken returns the first issued token entry for the contract address.
func (r *Registry) IssuedToken(address common.Address) (*IssuedToken, bool) {
	for i := range r.tokens {
		if r.tokens[i].Address == address {
			token := r.tokens[i]
			return &token, true
		}
	}
	return nil, false
}

func (r *Registry) IsIssuedToken(address common.Address) bool {
	_, found := r.IssuedToken(address)
	return found
}

// TreasuryAddresses returns the watched addresses in ascending byte order.
func (r *Registry) TreasuryAddresses() []common.Address {
	addresses := make([]common.Address, 0, len(r.treasury))
	for address := range r.treasury {
		addresses = append(addresses, address)
	}
	sort.Slice(addresses, func(i, j int) bool {
		return addresses[i].Cmp(addresses[j]) < 0
	})
	return addresses
}

// IssuedTokens returns a copy of the issued token list in configuration order.
func (r *Registry) IssuedTokens() []IssuedToken {
	tokens := make([]IssuedToken, len(r.tokens))
	copy(tokens, r.tokens)
	return tokens
}
