package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/ethpandaops/frenscan/ethtypes"
	"github.com/ethpandaops/frenscan/indexer/execution/transfers"
	"github.com/ethpandaops/frenscan/metrics"
	"github.com/ethpandaops/frenscan/registry"
	"github.com/ethpandaops/frenscan/types"
	"github.com/ethpandaops/frenscan/utils"
)

var extractCmd = &cobra.Command{
	Use:   "extract [block files...]",
	Short: "Extract transfers from traced blocks",
	Long:  "Extract treasury and issued token transfers from traced block files (json, optionally snappy compressed) and write one result per block as json lines, in input order",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runExtract,
}

func init() {
	rootCmd.AddCommand(extractCmd)

	extractCmd.Flags().StringP("output", "o", "", "Output file (default stdout)")
	extractCmd.Flags().IntP("workers", "j", 0, "Number of concurrent block processors (overrides the config)")
	extractCmd.Flags().String("metrics-file", "", "Write extraction metrics to this file in prometheus text format")
}

func runExtract(cmd *cobra.Command, args []string) error {
	outputPath, _ := cmd.Flags().GetString("output")
	workers, _ := cmd.Flags().GetInt("workers")
	metricsFile, _ := cmd.Flags().GetString("metrics-file")

	cfg, logger, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if workers < 1 {
		workers = cfg.Extraction.Workers
	}
	if metricsFile == "" {
		metricsFile = cfg.Metrics.TextfilePath
	}

	reg, err := loadRegistry(cfg)
	if err != nil {
		return err
	}

	t1 := time.Now()
	results, err := extractBlocks(cmd.Context(), args, reg, workers, logger)
	if err != nil {
		return err
	}

	output, err := openOutput(outputPath)
	if err != nil {
		return fmt.Errorf("error opening output: %v", err)
	}
	defer output.Close()

	writer := bufio.NewWriter(output)
	encoder := json.NewEncoder(writer)
	for _, result := range results {
		if err := encoder.Encode(result); err != nil {
			return fmt.Errorf("error writing block %v: %v", result.BlockNumber, err)
		}
	}
	if err := writer.Flush(); err != nil {
		return err
	}

	logger.Infof("extracted %v blocks with %v workers (%v ms)", len(results), workers, time.Since(t1).Milliseconds())

	if metricsFile != "" {
		if err := metrics.WriteTextfile(metricsFile); err != nil {
			utils.LogError(err, "error writing metrics file", 0)
		}
	}

	return nil
}

// extractBlocks processes the block files with a bounded worker pool and
// returns the results in input order.
func extractBlocks(ctx context.Context, paths []string, reg *registry.Registry, workers int, logger logrus.FieldLogger) ([]*types.Transfers, error) {
	results := make([]*types.Transfers, len(paths))

	if ctx == nil {
		ctx = context.Background()
	}
	group, ctx := errgroup.WithContext(ctx)
	group.SetLimit(workers)

	for idx, path := range paths {
		group.Go(func() (err error) {
			defer utils.HandleSubroutinePanic("extract", &err)

			if ctx.Err() != nil {
				return ctx.Err()
			}

			block, err := ethtypes.ReadBlockFile(path)
			if err != nil {
				return err
			}

			result, err := transfers.ProcessBlock(block, reg, logger.WithField("file", path))
			if err != nil {
				return fmt.Errorf("error processing %v: %w", path, err)
			}

			results[idx] = result
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}
