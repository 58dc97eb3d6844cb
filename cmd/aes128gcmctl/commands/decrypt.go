package commands

import (
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nas-ai/aes128gcm/internal/aes128gcm"
)

const (
	exitDecryptionFailed    = 10
	exitUnexpectedEndOfData = 11
	exitTrailingGarbage     = 12
	exitConfiguration       = 13
)

var (
	decryptIKMHex string
	decryptIn     string
	decryptOut    string
)

var decryptCmd = &cobra.Command{
	Use:   "decrypt",
	Short: "Decrypt an aes128gcm ciphertext stream from a file or stdin",
	RunE:  runDecrypt,
}

func init() {
	decryptCmd.Flags().StringVar(&decryptIKMHex, "ikm", "", "hex-encoded 16-byte input keying material (required)")
	decryptCmd.Flags().StringVar(&decryptIn, "in", "", "input file (defaults to stdin)")
	decryptCmd.Flags().StringVar(&decryptOut, "out", "", "output file (defaults to stdout)")
	_ = decryptCmd.MarkFlagRequired("ikm")
}

func runDecrypt(cmd *cobra.Command, args []string) error {
	ikm, err := hex.DecodeString(decryptIKMHex)
	if err != nil {
		return fmt.Errorf("decrypt: --ikm is not valid hex: %w", err)
	}

	in, closeIn, err := openInput(decryptIn)
	if err != nil {
		return err
	}
	defer closeIn()

	out, closeOut, err := openOutput(decryptOut)
	if err != nil {
		return err
	}
	defer closeOut()

	logger.WithFields(map[string]interface{}{
		"command": "decrypt",
		"input":   describePath(decryptIn),
		"output":  describePath(decryptOut),
	}).Info("starting decryption")

	if err := aes128gcm.DecryptReader(ikm, in, out, 64*1024); err != nil {
		logger.WithField("failure_kind", decryptFailureKind(err)).Error("decryption failed")
		return err
	}

	logger.Info("decryption complete")
	return nil
}

// decryptFailureKind maps a codec error to the taxonomy name from the
// error handling design, for structured logging. It never logs the
// underlying plaintext or key material, only the error classification.
func decryptFailureKind(err error) string {
	switch {
	case errors.Is(err, aes128gcm.ErrDecryptionFailed):
		return "DecryptionFailed"
	case errors.Is(err, aes128gcm.ErrUnexpectedEndOfStream):
		return "UnexpectedEndOfStream"
	case errors.Is(err, aes128gcm.ErrTrailingGarbage):
		return "TrailingGarbage"
	case errors.Is(err, aes128gcm.ErrConfiguration),
		errors.Is(err, aes128gcm.ErrHeaderTruncated),
		errors.Is(err, aes128gcm.ErrRecordSizeZero),
		errors.Is(err, aes128gcm.ErrRecordSizeTooSmall):
		return "Configuration"
	default:
		return "Unknown"
	}
}

// ExitCodeFor maps an error returned by the decrypt command to the
// process exit code main() should use. Kept separate from the error
// itself so the command logic stays testable without touching os.Exit.
func ExitCodeFor(err error) int {
	if err == nil {
		return 0
	}
	switch {
	case errors.Is(err, aes128gcm.ErrDecryptionFailed):
		return exitDecryptionFailed
	case errors.Is(err, aes128gcm.ErrUnexpectedEndOfStream):
		return exitUnexpectedEndOfData
	case errors.Is(err, aes128gcm.ErrTrailingGarbage):
		return exitTrailingGarbage
	default:
		return exitConfiguration
	}
}
