// Package commands implements the aes128gcmctl CLI commands.
package commands

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/nas-ai/aes128gcm/internal/applog"
	"github.com/nas-ai/aes128gcm/internal/config"
)

var (
	cfgFile  string
	logLevel string

	cfg    *config.Config
	logger *logrus.Logger
)

var rootCmd = &cobra.Command{
	Use:   "aes128gcmctl",
	Short: "Encrypt, decrypt, and share files with RFC 8188 aes128gcm",
	Long: `aes128gcmctl drives the aes128gcm Encrypted Content-Encoding codec
from the command line: generate key material, encrypt or decrypt a file
stream, and build or parse the zero-knowledge share-link format.

Use "aes128gcmctl [command] --help" for more information about a command.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load(cfgFile)
		if err != nil {
			return err
		}
		if logLevel != "" {
			loaded.LogLevel = logLevel
		}
		cfg = loaded
		logger = applog.New(cfg.LogLevel)
		return nil
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// GetRootCmd returns the root command, for testing.
func GetRootCmd() *cobra.Command {
	return rootCmd
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "path to a YAML config file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "override the configured log level")

	rootCmd.AddCommand(keygenCmd)
	rootCmd.AddCommand(encryptCmd)
	rootCmd.AddCommand(decryptCmd)
	rootCmd.AddCommand(linkCmd)
}
