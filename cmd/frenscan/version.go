package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ethpandaops/frenscan/utils"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "frenscan %v (built %v)\n", utils.GetBuildVersion(), utils.Buildtime)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
