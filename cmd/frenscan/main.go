package main

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/ethpandaops/frenscan/registry"
	"github.com/ethpandaops/frenscan/types"
	"github.com/ethpandaops/frenscan/utils"
)

var rootCmd = &cobra.Command{
	Use:   "frenscan",
	Short: "Treasury transfer extractor",
	Long:  "Extracts value transfers, token transfers and call traces of watched treasury accounts and issued tokens from traced blocks, and turns them into change sets for bulk loading",
}

func init() {
	rootCmd.PersistentFlags().StringP("config", "c", "", "Path to the config file")
	rootCmd.PersistentFlags().StringP("frens", "f", "", "Path to the frens file (overrides the config)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Verbose output")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig reads the config given by the persistent flags and sets up the logger.
func loadConfig(cmd *cobra.Command) (*types.Config, *logrus.Logger, error) {
	configPath, _ := cmd.Flags().GetString("config")
	frensPath, _ := cmd.Flags().GetString("frens")
	verbose, _ := cmd.Flags().GetBool("verbose")

	return readConfig(configPath, frensPath, verbose)
}

// readConfig loads the config file, then applies the frens path override
// before the frens file is read.
func readConfig(configPath string, frensPath string, verbose bool) (*types.Config, *logrus.Logger, error) {
	cfg := &types.Config{}
	err := utils.ReadConfig(cfg, configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("error reading config file: %v", err)
	}

	if frensPath != "" {
		cfg.Frens.FilePath = frensPath
	}
	err = utils.LoadFrensFile(cfg)
	if err != nil {
		return nil, nil, err
	}

	logger := utils.InitLogger(cfg)
	if verbose {
		logger.SetLevel(logrus.DebugLevel)
	}

	return cfg, logger, nil
}

// loadRegistry builds the registry from the loaded frens file.
func loadRegistry(cfg *types.Config) (*registry.Registry, error) {
	if cfg.Frens.File == nil {
		return nil, fmt.Errorf("no frens file configured")
	}
	return registry.FromFrensFile(cfg.Frens.File)
}

// openOutput returns the output file, or stdout for an empty path or "-".
func openOutput(path string) (io.WriteCloser, error) {
	if path == "" || path == "-" {
		return nopWriteCloser{os.Stdout}, nil
	}
	return os.Create(path)
}

// openInput returns the input file, or stdin for an empty path or "-".
func openInput(path string) (io.ReadCloser, error) {
	if path == "" || path == "-" {
		return io.NopCloser(os.Stdin), nil
	}
	return os.Open(path)
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error {
	return nil
}
