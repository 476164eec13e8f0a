package db

import (
	"fmt"
	"strings"

	"github.com/ethpandaops/frenscan/registry"
	"github.com/ethpandaops/frenscan/utils"
)

// BuildSettingsSQL renders the seed script for the watched accounts and
// issued token tables. Issued tokens without token id are stored with a NULL id.
func BuildSettingsSQL(reg *registry.Registry, schema string) string {
	var sql strings.Builder
	sql.WriteString("-- @generated\nbegin;\n")

	accounts := reg.TreasuryAddresses()
	if len(accounts) > 0 {
		values := make([]string, 0, len(accounts))
		for _, address := range accounts {
			values = append(values, fmt.Sprintf("(%v)", quoteLiteral(utils.HexAddress(address))))
		}
		fmt.Fprintf(&sql, "insert into %v values\n%v\non conflict do nothing;\n", tableName(schema, TableSettingsAccounts), strings.Join(values, ",\n"))
	}

	tokens := reg.IssuedTokens()
	if len(tokens) > 0 {
		values := make([]string, 0, len(tokens))
		for _, token := range tokens {
			tokenID := "NULL"
			if token.TokenID != nil {
				tokenID = tokenIDLiteral(*token.TokenID)
			}
			values = append(values, fmt.Sprintf("(%v, %v)", quoteLiteral(utils.HexAddress(token.Address)), tokenID))
		}
		fmt.Fprintf(&sql, "insert into %v values\n%v\non conflict do nothing;\n", tableName(schema, TableSettingsTokensIssued), strings.Join(values, ",\n"))
	}

	sql.WriteString("commit;\n")
	return sql.String()
}

// tokenIDLiteral keeps numeric ids unquoted.
func tokenIDLiteral(tokenID string) string {
	tokenID = strings.TrimSpace(tokenID)
	if tokenID == "" {
		return "NULL"
	}
	for _, c := range tokenID {
		if c < '0' || c > '9' {
			return quoteLiteral(tokenID)
		}
	}
	return tokenID
}
