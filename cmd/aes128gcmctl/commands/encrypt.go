package commands

import (
	"encoding/hex"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/nas-ai/aes128gcm/internal/aes128gcm"
)

var (
	encryptIKMHex  string
	encryptSaltHex string
	encryptRS      uint32
	encryptIn      string
	encryptOut     string
)

var encryptCmd = &cobra.Command{
	Use:   "encrypt",
	Short: "Encrypt a file or stdin stream to aes128gcm ciphertext",
	RunE:  runEncrypt,
}

func init() {
	encryptCmd.Flags().StringVar(&encryptIKMHex, "ikm", "", "hex-encoded 16-byte input keying material (required)")
	encryptCmd.Flags().StringVar(&encryptSaltHex, "salt", "", "hex-encoded 16-byte salt (required)")
	encryptCmd.Flags().Uint32Var(&encryptRS, "rs", 0, "record size in bytes (defaults to the configured record_size)")
	encryptCmd.Flags().StringVar(&encryptIn, "in", "", "input file (defaults to stdin)")
	encryptCmd.Flags().StringVar(&encryptOut, "out", "", "output file (defaults to stdout)")
	_ = encryptCmd.MarkFlagRequired("ikm")
	_ = encryptCmd.MarkFlagRequired("salt")
}

func runEncrypt(cmd *cobra.Command, args []string) error {
	ikm, err := hex.DecodeString(encryptIKMHex)
	if err != nil {
		return fmt.Errorf("encrypt: --ikm is not valid hex: %w", err)
	}
	salt, err := hex.DecodeString(encryptSaltHex)
	if err != nil {
		return fmt.Errorf("encrypt: --salt is not valid hex: %w", err)
	}

	rs := encryptRS
	if rs == 0 {
		rs = cfg.RecordSize
	}

	in, closeIn, err := openInput(encryptIn)
	if err != nil {
		return err
	}
	defer closeIn()

	out, closeOut, err := openOutput(encryptOut)
	if err != nil {
		return err
	}
	defer closeOut()

	logger.WithFields(map[string]interface{}{
		"command":     "encrypt",
		"record_size": rs,
		"input":       describePath(encryptIn),
		"output":      describePath(encryptOut),
	}).Info("starting encryption")

	if err := aes128gcm.EncryptReader(ikm, salt, rs, in, out, int(rs)); err != nil {
		logger.WithError(err).Error("encryption failed")
		return fmt.Errorf("encrypt: %w", err)
	}

	logger.Info("encryption complete")
	return nil
}

func openInput(path string) (io.Reader, func(), error) {
	if path == "" {
		return os.Stdin, func() {}, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open input file %q: %w", path, err)
	}
	return f, func() { _ = f.Close() }, nil
}

func openOutput(path string) (io.Writer, func(), error) {
	if path == "" {
		return os.Stdout, func() {}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create output file %q: %w", path, err)
	}
	return f, func() { _ = f.Close() }, nil
}

func describePath(path string) string {
	if path == "" {
		return "-"
	}
	return path
}
