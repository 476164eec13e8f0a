package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ethpandaops/frenscan/db"
)

var settingsSqlCmd = &cobra.Command{
	Use:   "settings-sql",
	Short: "Generate the settings seed script",
	Long:  "Generate the SQL script that seeds the accounts and tokens_issued tables from the frens file",
	RunE:  runSettingsSql,
}

func init() {
	rootCmd.AddCommand(settingsSqlCmd)

	settingsSqlCmd.Flags().StringP("output", "o", "", "Output file (default stdout)")
	settingsSqlCmd.Flags().String("schema", "", "Database schema (overrides the config)")
}

func runSettingsSql(cmd *cobra.Command, args []string) error {
	outputPath, _ := cmd.Flags().GetString("output")
	schema, _ := cmd.Flags().GetString("schema")

	cfg, logger, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if schema == "" {
		schema = cfg.Output.DbSchema
	}

	reg, err := loadRegistry(cfg)
	if err != nil {
		return err
	}

	output, err := openOutput(outputPath)
	if err != nil {
		return fmt.Errorf("error opening output: %v", err)
	}
	defer output.Close()

	_, err = fmt.Fprint(output, db.BuildSettingsSQL(reg, schema))
	if err != nil {
		return err
	}

	logger.Infof("generated settings for %v accounts and %v issued tokens", len(reg.TreasuryAddresses()), len(reg.IssuedTokens()))
	return nil
}
