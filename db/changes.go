package db

import (
	"fmt"
	"sort"

	"github.com/mitchellh/mapstructure"

	"github.com/ethpandaops/frenscan/dbtypes"
	"github.com/ethpandaops/frenscan/types"
)

const (
	TableValueTransfers       = "value_transfers"
	TableTokenTransfers       = "token_transfers"
	TableIssuedTokenTransfers = "tokens_issued_transfers"
	TableCallTraces           = "call_traces"
	TableSettingsAccounts     = "accounts"
	TableSettingsTokensIssued = "tokens_issued"
)

type valueTransferRow struct {
	TxIndex     uint32 `mapstructure:"tx_index"`
	FromAddress string `mapstructure:"from_address"`
	ToAddress   string `mapstructure:"to_address"`
	BlockNumber uint64 `mapstructure:"block_number"`
	Value       string `mapstructure:"value"`
	Timestamp   int64  `mapstructure:"timestamp"`
	Reason      int32  `mapstructure:"reason"`
}

type tokenTransferRow struct {
	CallIndex    uint32 `mapstructure:"call_index"`
	FromAddress  string `mapstructure:"from_address"`
	ToAddress    string `mapstructure:"to_address"`
	BlockNumber  uint64 `mapstructure:"block_number"`
	Value        string `mapstructure:"value"`
	TokenAddress string `mapstructure:"token_address"`
	TokenID      string `mapstructure:"token_id"`
	Timestamp    int64  `mapstructure:"timestamp"`
}

type callTraceRow struct {
	Trace string `mapstructure:"trace"`
}

// TransfersToDatabaseChanges appends one create change per extracted record.
// Block level value transfers (withdrawals, fee aggregates) all share the key
// (block hash, 0), so a store keeping the first row per key retains only the
// first of them.
func TransfersToDatabaseChanges(changes *dbtypes.DatabaseChanges, transfers *types.Transfers) error {
	for _, transfer := range transfers.ValueTransfers {
		pk := map[string]string{
			"hash":       transfer.Hash,
			"call_index": fmt.Sprint(transfer.CallIndex),
		}
		row := &valueTransferRow{
			TxIndex:     transfer.TxIndex,
			FromAddress: transfer.From,
			ToAddress:   transfer.To,
			BlockNumber: transfers.BlockNumber,
			Value:       transfer.Value,
			Timestamp:   transfers.BlockTimestamp,
			Reason:      int32(transfer.Reason),
		}
		if err := pushCreate(changes, TableValueTransfers, pk, uint64(transfer.CallIndex), row); err != nil {
			return err
		}
	}

	tokenTables := []struct {
		table     string
		transfers []*types.TokenTransfer
	}{
		{TableTokenTransfers, transfers.TokenTransfers},
		{TableIssuedTokenTransfers, transfers.IssuedTokenTransfers},
	}
	for _, tokenTable := range tokenTables {
		for _, transfer := range tokenTable.transfers {
			pk := map[string]string{
				"tx_hash":   transfer.TxHash,
				"log_index": fmt.Sprint(transfer.LogIndex),
			}
			row := &tokenTransferRow{
				CallIndex:    transfer.CallIndex,
				FromAddress:  transfer.From,
				ToAddress:    transfer.To,
				BlockNumber:  transfers.BlockNumber,
				Value:        transfer.Value,
				TokenAddress: transfer.TokenAddress,
				TokenID:      transfer.TokenID,
				Timestamp:    transfers.BlockTimestamp,
			}
			if err := pushCreate(changes, tokenTable.table, pk, transfer.LogIndex, row); err != nil {
				return err
			}
		}
	}

	for _, callTrace := range transfers.CallTraces {
		pk := map[string]string{
			"tx_hash": callTrace.Hash,
			"index":   fmt.Sprint(callTrace.Index),
		}
		if err := pushCreate(changes, TableCallTraces, pk, uint64(callTrace.Index), &callTraceRow{Trace: callTrace.Traces}); err != nil {
			return err
		}
	}

	return nil
}

// pushCreate flattens row into columns and appends them in sorted column order.
func pushCreate(changes *dbtypes.DatabaseChanges, table string, pk map[string]string, ordinal uint64, row interface{}) error {
	columns := map[string]interface{}{}
	if err := mapstructure.Decode(row, &columns); err != nil {
		return fmt.Errorf("failed flattening %v row: %w", table, err)
	}

	names := make([]string, 0, len(columns))
	for name := range columns {
		names = append(names, name)
	}
	sort.Strings(names)

	change := changes.PushCreate(table, pk, ordinal)
	for _, name := range names {
		change.Change(name, fmt.Sprint(columns[name]))
	}

	return nil
}
