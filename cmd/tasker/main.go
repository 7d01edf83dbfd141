package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "tasker",
	Short: "tasker - in-memory task tracker",
	Long: `tasker keeps a list of pending tasks, a history of completed ones and a
queue of urgent tasks for the length of one session. Nothing is saved on exit.`,
	SilenceUsage:      true,
	PersistentPreRunE: loadConfig,
	RunE:              runMenu,
}

var (
	configPath string
)

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config file (default ~/.tasker/config.yaml)")

	// Add subcommands
	rootCmd.AddCommand(tuiCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
