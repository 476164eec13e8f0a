package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/ethpandaops/frenscan/db"
	"github.com/ethpandaops/frenscan/dbtypes"
	"github.com/ethpandaops/frenscan/types"
)

var changesetCmd = &cobra.Command{
	Use:   "changeset [extract output]",
	Short: "Build change sets from extracted transfers",
	Long:  "Turn the json lines written by extract (file or stdin) into a change set, or into INSERT statements with --sql",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runChangeset,
}

func init() {
	rootCmd.AddCommand(changesetCmd)

	changesetCmd.Flags().StringP("output", "o", "", "Output file (default stdout)")
	changesetCmd.Flags().Bool("sql", false, "Write INSERT statements instead of the change set json")
	changesetCmd.Flags().String("engine", "", "Database engine for --sql: pgsql or sqlite (overrides the config)")
	changesetCmd.Flags().String("schema", "", "Database schema for --sql (overrides the config)")
}

func runChangeset(cmd *cobra.Command, args []string) error {
	outputPath, _ := cmd.Flags().GetString("output")
	asSql, _ := cmd.Flags().GetBool("sql")
	engineName, _ := cmd.Flags().GetString("engine")
	schema, _ := cmd.Flags().GetString("schema")

	cfg, logger, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if engineName == "" {
		engineName = cfg.Output.DbEngine
	}
	if schema == "" {
		schema = cfg.Output.DbSchema
	}

	inputPath := ""
	if len(args) > 0 {
		inputPath = args[0]
	}
	input, err := openInput(inputPath)
	if err != nil {
		return fmt.Errorf("error opening input: %v", err)
	}
	defer input.Close()

	changes, blockCount, err := readChangeSet(input)
	if err != nil {
		return err
	}

	output, err := openOutput(outputPath)
	if err != nil {
		return fmt.Errorf("error opening output: %v", err)
	}
	defer output.Close()

	writer := bufio.NewWriter(output)
	if asSql {
		engine, err := dbtypes.ParseDBEngine(engineName)
		if err != nil {
			return err
		}

		statements, err := db.BuildInsertStatements(changes, engine, schema)
		if err != nil {
			return err
		}
		for _, statement := range statements {
			fmt.Fprintln(writer, statement)
		}
	} else {
		encoder := json.NewEncoder(writer)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(changes); err != nil {
			return err
		}
	}
	if err := writer.Flush(); err != nil {
		return err
	}

	logger.Infof("built %v table changes from %v blocks", len(changes.TableChanges), blockCount)
	return nil
}

func readChangeSet(input io.Reader) (*dbtypes.DatabaseChanges, int, error) {
	changes := &dbtypes.DatabaseChanges{
		TableChanges: []*dbtypes.TableChange{},
	}

	decoder := json.NewDecoder(input)
	blockCount := 0
	for {
		transfers := &types.Transfers{}
		err := decoder.Decode(transfers)
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, 0, fmt.Errorf("error decoding extracted block %v: %v", blockCount+1, err)
		}

		if err := db.TransfersToDatabaseChanges(changes, transfers); err != nil {
			return nil, 0, err
		}
		blockCount++
	}

	return changes, blockCount, nil
}
