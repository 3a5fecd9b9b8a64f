package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/milk9111/lumaxman/logger"
)

var rootCmd = &cobra.Command{
	Use:   "lumaxman",
	Short: "LuMaxMan maze chase",
	Long:  `LuMaxMan runs the maze chase levels, either in a window or headless.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger.Init()
	},
	SilenceUsage: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(scoresCmd)
}
