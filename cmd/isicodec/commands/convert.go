package commands

import (
	"github.com/spf13/cobra"
)

func binaryToJSONCmd() *cobra.Command {
	var (
		typeName string
		flags    ioFlags
	)
	cmd := &cobra.Command{
		Use:   "binary-to-json",
		Short: "Decode a binary value and print it as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newCodec()
			if err != nil {
				return err
			}
			in, err := flags.read(cmd)
			if err != nil {
				return err
			}
			out, err := c.BinaryToJSON(typeName, in)
			if err != nil {
				return err
			}
			return flags.write(cmd, append(out, '\n'))
		},
	}
	cmd.Flags().StringVarP(&typeName, "type", "t", "", "type name, see list-types")
	_ = cmd.MarkFlagRequired("type")
	flags.register(cmd)
	return cmd
}

func jsonToBinaryCmd() *cobra.Command {
	var (
		typeName string
		flags    ioFlags
	)
	cmd := &cobra.Command{
		Use:   "json-to-binary",
		Short: "Encode a JSON value in the binary form",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newCodec()
			if err != nil {
				return err
			}
			in, err := flags.read(cmd)
			if err != nil {
				return err
			}
			out, err := c.JSONToBinary(typeName, in)
			if err != nil {
				return err
			}
			return flags.write(cmd, out)
		},
	}
	cmd.Flags().StringVarP(&typeName, "type", "t", "", "type name, see list-types")
	_ = cmd.MarkFlagRequired("type")
	flags.register(cmd)
	return cmd
}
