package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command for the calagent application
var rootCmd = &cobra.Command{
	Use:   "calagent",
	Short: "Analyzes your calendar and ranks meetings by priority",
	Long: `calagent is a personal calendar assistant. It computes free/busy time for
a day, finds usable free blocks, flags back-to-back meetings, and ranks
meetings into priority tiers so you know what can be skipped.

It can run as:
  - A standalone CLI tool (default)
  - An MCP (Model Context Protocol) server for AI assistants`,
	SilenceUsage: true,
}

// cfgFile is the explicit config file path, empty for the default search
var cfgFile string

// version will be set by main
var version = "dev"

// SetVersion sets the version for the root command
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}

// Execute is the main entry point for the CLI application
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "calagent version %s\n" .Version}}`)

	// If no subcommand is provided, show today's schedule by default
	if len(os.Args) == 1 {
		os.Args = append(os.Args, "today")
	}

	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Config file (default: $HOME/.calagent.yaml)")

	rootCmd.AddCommand(newTodayCmd())
	rootCmd.AddCommand(newAnalyzeCmd())
	rootCmd.AddCommand(newRankCmd())
	rootCmd.AddCommand(newFocusCmd())
	rootCmd.AddCommand(newCommuteCmd())
	rootCmd.AddCommand(newDeclineCmd())
	rootCmd.AddCommand(newRescheduleCmd())
	rootCmd.AddCommand(newAuthCmd())
	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newVersionCmd())
}
