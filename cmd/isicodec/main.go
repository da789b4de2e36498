// Command isicodec converts ledger values between their binary and JSON
// encodings.
package main

import (
	"os"

	"isiledger/cmd/isicodec/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
