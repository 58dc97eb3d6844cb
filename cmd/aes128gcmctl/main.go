// Command aes128gcmctl drives the aes128gcm codec from the command line:
// generate key material, encrypt or decrypt a file, and build or parse
// share links.
package main

import (
	"fmt"
	"os"

	"github.com/nas-ai/aes128gcm/cmd/aes128gcmctl/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(commands.ExitCodeFor(err))
	}
}
