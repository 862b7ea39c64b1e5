package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/relayrun/relay/internal/db"
	"github.com/relayrun/relay/internal/pipeline"
	"github.com/relayrun/relay/internal/registry"
)

var saveCmd = &cobra.Command{
	Use:   "save <file>",
	Short: "Save the pipelines defined in a YAML file",
	Long:  "Save the pipelines defined in a YAML file into the registry. Re-saving replaces pipelines with the same name.",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		spec, err := pipeline.LoadFile(args[0])
		if err != nil {
			return err
		}

		dbConn, err := db.InitDB()
		if err != nil {
			return err
		}
		defer func() { _ = dbConn.Close() }()

		r := registry.NewRepository(dbConn)
		for _, p := range spec.Pipelines {
			if _, err := r.Save(p); err != nil {
				return fmt.Errorf("save pipeline %q: %w", p.Name, err)
			}
			fmt.Printf("saved %s (%d step(s))\n", p.Name, len(p.Steps))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(saveCmd)
}
