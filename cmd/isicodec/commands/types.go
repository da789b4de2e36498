package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"isiledger/src/infra/codec"
)

func listTypesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list-types",
		Short: "Print the names of all convertible types",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			types := codec.Types()
			out := cmd.OutOrStdout()
			for _, name := range types {
				fmt.Fprintln(out, name)
			}
			fmt.Fprintf(out, "\n%d types are supported\n", len(types))
			return nil
		},
	}
}
