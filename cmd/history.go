package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/relayrun/relay/internal/db"
	"github.com/relayrun/relay/internal/registry"
)

var historyCmd = &cobra.Command{
	Use:   "history [name]",
	Short: "Show recent runs",
	Long:  "Show recent runs (newest first), optionally filtered to one pipeline.",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := ""
		if len(args) == 1 {
			name = args[0]
		}
		limit, _ := cmd.Flags().GetInt("limit")

		dbConn, err := db.InitDB()
		if err != nil {
			return err
		}
		defer func() { _ = dbConn.Close() }()

		r := registry.NewRepository(dbConn)
		runs, err := r.ListRuns(name, limit)
		if err != nil {
			return err
		}
		if len(runs) == 0 {
			fmt.Println("no runs recorded")
			return nil
		}
		for _, run := range runs {
			status := "ok"
			if run.ExitCode != 0 {
				status = fmt.Sprintf("exit %d", run.ExitCode)
				if run.FailedStep.Valid {
					status += fmt.Sprintf(" (%s)", run.FailedStep.String)
				}
			}
			fmt.Printf("%s\t%s\t%s\n", run.StartedAt, run.PipelineName, status)
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().Int("limit", 20, "Maximum number of runs to show")
	rootCmd.AddCommand(historyCmd)
}
