package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/relayrun/relay/internal/db"
	"github.com/relayrun/relay/internal/registry"
)

var describeCmd = &cobra.Command{
	Use:   "describe <name>",
	Short: "Show a saved pipeline's steps",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		name := args[0]
		dbConn, err := db.InitDB()
		if err != nil {
			return err
		}
		defer func() { _ = dbConn.Close() }()

		r := registry.NewRepository(dbConn)
		p, err := r.GetByName(name)
		if err != nil {
			return err
		}
		if p == nil {
			return fmt.Errorf("pipeline not found: %s", name)
		}

		fmt.Printf("name: %s\n", p.Name)
		if p.Description.Valid {
			fmt.Printf("description: %s\n", p.Description.String)
		}
		fmt.Printf("pause on error: %v\n", p.PauseOnError)
		if p.LastRun.Valid {
			fmt.Printf("last run: %s\n", p.LastRun.String)
		}
		fmt.Printf("steps (%d):\n", len(p.Steps))
		for _, s := range p.Steps {
			mode := ""
			if s.UseShell {
				mode = " [shell]"
			}
			if s.Workdir.Valid {
				mode += fmt.Sprintf(" [dir: %s]", s.Workdir.String)
			}
			fmt.Printf("  %d. %s: %s%s\n", s.Position, s.Label, s.Command, mode)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(describeCmd)
}
