package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "bfvm",
	Short: "Interactive interpreter for the eight-instruction tape language",
	Long: `bfvm reads one program per line, runs it on a fresh tape and prints
its output. Programs read input from the same terminal.

Lines starting with ':' are REPL commands. Type :help to list them.

Configuration is read from BFVM_* environment variables and from
$HOME/.bfvm.yaml when present.`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig()
		return runRepl(cfg)
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), versionString())
	},
}

func versionString() string {
	return fmt.Sprintf("bfvm %s (commit %s, built %s)", version, commit, date)
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.AddCommand(versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fatal(err)
	}
}
