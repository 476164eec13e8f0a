package types

// FrensFile is the declarative list of watched treasury accounts and issued tokens.
type FrensFile struct {
	Version          string             `yaml:"version"`
	TokensIssued     []*TokenIssued     `yaml:"tokens_issued"`
	TreasuryAccounts []*TreasuryAccount `yaml:"treasury_accounts"`
}

type TokenIssued struct {
	Name         string  `yaml:"name"`
	Address      string  `yaml:"address"`
	TokenID      *string `yaml:"token_id"`
	Network      *string `yaml:"network"` // defaults to mainnet
	Schema       *string `yaml:"schema"`  // defaults to erc20
	InitialBlock uint64  `yaml:"initial_block"`
}

type TreasuryAccount struct {
	Name         string  `yaml:"name"`
	Address      string  `yaml:"address"`
	Network      *string `yaml:"network"` // carried, not interpreted
	InitialBlock uint64  `yaml:"initial_block"`
}

// AllAddresses returns the treasury account addresses followed by the
// issued token addresses, as written in the file.
func (f *FrensFile) AllAddresses() []string {
	addresses := make([]string, 0, len(f.TreasuryAccounts)+len(f.TokensIssued))
	for _, account := range f.TreasuryAccounts {
		addresses = append(addresses, account.Address)
	}
	for _, token := range f.TokensIssued {
		addresses = append(addresses, token.Address)
	}
	return addresses
}
