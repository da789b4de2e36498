package commands

import (
	"io"
	"os"

	"github.com/spf13/cobra"

	"isiledger/src/infra/codec"
)

// Execute runs the root command against the process arguments.
func Execute() error {
	return NewRoot().Execute()
}

// NewRoot builds the command tree. Input and output follow cmd.InOrStdin
// and cmd.OutOrStdout so tests can swap them.
func NewRoot() *cobra.Command {
	root := &cobra.Command{
		Use:          "isicodec",
		Short:        "Convert ledger values between binary and JSON",
		SilenceUsage: true,
	}

	root.AddCommand(listTypesCmd(), binaryToJSONCmd(), jsonToBinaryCmd(), hashCmd())
	return root
}

// ioFlags are the -i/-o flags shared by the conversion commands.
type ioFlags struct {
	in  string
	out string
}

func (f *ioFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.in, "input", "i", "", "input file (default stdin)")
	cmd.Flags().StringVarP(&f.out, "output", "o", "", "output file (default stdout)")
}

func (f *ioFlags) read(cmd *cobra.Command) ([]byte, error) {
	if f.in == "" {
		return io.ReadAll(cmd.InOrStdin())
	}
	return os.ReadFile(f.in)
}

func (f *ioFlags) write(cmd *cobra.Command, b []byte) error {
	if f.out == "" {
		_, err := cmd.OutOrStdout().Write(b)
		return err
	}
	return os.WriteFile(f.out, b, 0o644)
}

func newCodec() (*codec.Codec, error) {
	return codec.New()
}
