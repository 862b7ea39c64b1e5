package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/relayrun/relay/internal/db"
	"github.com/relayrun/relay/internal/interactive"
	"github.com/relayrun/relay/internal/registry"
)

var deleteCmd = &cobra.Command{
	Use:   "delete <name>",
	Short: "Delete a saved pipeline",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]
		yes, _ := cmd.Flags().GetBool("yes")
		if !yes && !interactive.Confirm(fmt.Sprintf("Delete pipeline '%s'?", name)) {
			fmt.Println("aborted")
			return nil
		}

		dbConn, err := db.InitDB()
		if err != nil {
			return err
		}
		defer func() { _ = dbConn.Close() }()

		r := registry.NewRepository(dbConn)
		if err := r.Delete(name); err != nil {
			return err
		}
		fmt.Printf("deleted %s\n", name)
		return nil
	},
}

func init() {
	deleteCmd.Flags().BoolP("yes", "y", false, "Skip the confirmation prompt")
	rootCmd.AddCommand(deleteCmd)
}
