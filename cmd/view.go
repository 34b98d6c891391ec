package cmd

import (
	"github.com/spf13/cobra"

	"github.com/mouse-blink/sqlcover/internal/domain"
	m "github.com/mouse-blink/sqlcover/internal/model"
)

var viewStoreFlag string

// viewCmd represents the view command.
var viewCmd = newViewCmd()

func newViewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "view",
		Short: "View a previously stored coverage snapshot",
		Long:  "View the coverage summary of a snapshot saved by report --store.",
		Args:  cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			store := cfg.Store
			if cmd.Flags().Changed("store") {
				store = viewStoreFlag
			}

			return workflow.View(domain.ViewArgs{Store: m.Path(store)})
		},
	}
	cmd.Flags().StringVar(&viewStoreFlag, "store", "", "snapshot file written by report --store")

	return cmd
}

func init() {
	rootCmd.AddCommand(viewCmd)
}
