package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/relayrun/relay/internal/db"
	"github.com/relayrun/relay/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved pipelines",
	Long:  "List saved pipelines. Example:\n  relay list",
	RunE: func(_ *cobra.Command, _ []string) error {
		dbConn, err := db.InitDB()
		if err != nil {
			return err
		}
		defer func() { _ = dbConn.Close() }()

		r := registry.NewRepository(dbConn)
		pipelines, err := r.List()
		if err != nil {
			return err
		}
		if len(pipelines) == 0 {
			fmt.Println("no pipelines saved")
			return nil
		}
		for _, p := range pipelines {
			lastRun := "never run"
			if p.LastRun.Valid {
				lastRun = "last run " + p.LastRun.String
			}
			fmt.Printf("- %s (%d step(s), %s)\n", p.Name, len(p.Steps), lastRun)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
}
