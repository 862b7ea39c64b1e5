// Package cmd implements the relay CLI.
package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.arcalot.io/log/v2"

	"github.com/relayrun/relay/internal/runner"
)

var rootCmd = &cobra.Command{
	Use:   "relay",
	Short: "relay is a sequential, fail-fast step runner",
	Long:  "relay runs named pipelines: ordered lists of external commands where every step must exit 0 before the next one starts",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("relay: run 'relay --help' to see available commands")
	},
}

func init() {
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Verbose output")
	rootCmd.SilenceUsage = true
	rootCmd.SilenceErrors = true
}

// newLogger builds the diagnostic logger. Operator-facing run output goes
// through the runner's own writer; this logger carries debug detail and
// warnings on stderr-style paths.
func newLogger(cmd *cobra.Command) log.Logger {
	verbose, _ := cmd.Flags().GetBool("verbose")
	level := log.LevelWarning
	if verbose {
		level = log.LevelDebug
	}
	return log.New(log.Config{
		Level:       level,
		Destination: log.DestinationStdout,
	})
}

// Execute executes the root command. When a pipeline step fails, the failing
// step's exit code becomes relay's own exit code, unchanged, so parent
// schedulers see exactly what the step reported.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		var stepErr *runner.StepError
		if errors.As(err, &stepErr) {
			// the runner already printed the error banner
			os.Exit(stepErr.ExitCode)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
