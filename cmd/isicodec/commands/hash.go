package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"isiledger/src/infra/codec"
)

// hashCmd prints the digest the ledger reports for a binary instruction.
// The input is decoded and re-encoded, so the hash is of the canonical form.
func hashCmd() *cobra.Command {
	var flags ioFlags
	cmd := &cobra.Command{
		Use:   "hash",
		Short: "Print the blake2b-256 hash of a binary instruction",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := flags.read(cmd)
			if err != nil {
				return err
			}
			ins, err := codec.DecodeInstruction(in)
			if err != nil {
				return err
			}
			c, err := newCodec()
			if err != nil {
				return err
			}
			sum, err := c.Hash(ins)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), sum)
			return nil
		},
	}
	cmd.Flags().StringVarP(&flags.in, "input", "i", "", "input file (default stdin)")
	return cmd
}
