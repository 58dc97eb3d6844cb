package commands

import (
	"encoding/hex"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nas-ai/aes128gcm/internal/aes128gcm"
)

var keygenCmd = &cobra.Command{
	Use:   "keygen",
	Short: "Generate a random input keying material and salt",
	Long: `keygen prints a freshly generated 16-byte input keying material (IKM)
and 16-byte salt, hex-encoded, suitable for encrypt/decrypt/link.

A fresh salt must be generated for every message encrypted under the
same IKM; the IKM itself may be reused across messages as long as a
new salt accompanies each one.`,
	RunE: runKeygen,
}

func runKeygen(cmd *cobra.Command, args []string) error {
	ikm, err := aes128gcm.GenerateIKM()
	if err != nil {
		return fmt.Errorf("keygen: failed to generate ikm: %w", err)
	}
	salt, err := aes128gcm.GenerateSalt()
	if err != nil {
		return fmt.Errorf("keygen: failed to generate salt: %w", err)
	}

	logger.WithFields(map[string]interface{}{
		"command": "keygen",
	}).Info("generated key material")

	fmt.Fprintf(cmd.OutOrStdout(), "ikm=%s\n", hex.EncodeToString(ikm))
	fmt.Fprintf(cmd.OutOrStdout(), "salt=%s\n", hex.EncodeToString(salt))
	return nil
}
