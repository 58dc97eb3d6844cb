package commands

import (
	"encoding/hex"
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/nas-ai/aes128gcm/internal/sharelink"
)

var linkCmd = &cobra.Command{
	Use:   "link",
	Short: "Build or parse a zero-knowledge share link",
}

var (
	linkBuildFileID   string
	linkBuildKeyHex   string
	linkBuildSaltHex  string
	linkBuildFilename string
	linkBuildOrigin   string
)

var linkBuildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build a share link from key material",
	Long: `build renders a share link carrying the key and salt in the URL
fragment. If --file-id is omitted, a random one is generated, matching
how a real upload would assign an opaque identifier to a new file.`,
	RunE: runLinkBuild,
}

var linkParseCmd = &cobra.Command{
	Use:   "parse <url>",
	Short: "Parse a share link back into its key material",
	Args:  cobra.ExactArgs(1),
	RunE:  runLinkParse,
}

func init() {
	linkBuildCmd.Flags().StringVar(&linkBuildFileID, "file-id", "", "file identifier (random UUID if omitted)")
	linkBuildCmd.Flags().StringVar(&linkBuildKeyHex, "key", "", "hex-encoded 16-byte key (required)")
	linkBuildCmd.Flags().StringVar(&linkBuildSaltHex, "salt", "", "hex-encoded 16-byte salt (required)")
	linkBuildCmd.Flags().StringVar(&linkBuildFilename, "filename", "", "optional filename to embed in the fragment")
	linkBuildCmd.Flags().StringVar(&linkBuildOrigin, "origin", "", "share origin (defaults to the configured share_origin)")
	_ = linkBuildCmd.MarkFlagRequired("key")
	_ = linkBuildCmd.MarkFlagRequired("salt")

	linkCmd.AddCommand(linkBuildCmd)
	linkCmd.AddCommand(linkParseCmd)
}

func runLinkBuild(cmd *cobra.Command, args []string) error {
	key, err := hex.DecodeString(linkBuildKeyHex)
	if err != nil {
		return fmt.Errorf("link build: --key is not valid hex: %w", err)
	}
	salt, err := hex.DecodeString(linkBuildSaltHex)
	if err != nil {
		return fmt.Errorf("link build: --salt is not valid hex: %w", err)
	}

	fileID := linkBuildFileID
	if fileID == "" {
		fileID = uuid.NewString()
	}

	origin := linkBuildOrigin
	if origin == "" {
		origin = cfg.ShareOrigin
	}

	raw, err := sharelink.Build(sharelink.Link{
		Origin:   origin,
		FileID:   fileID,
		Key:      key,
		Salt:     salt,
		Filename: linkBuildFilename,
	})
	if err != nil {
		return fmt.Errorf("link build: %w", err)
	}

	logger.WithField("file_id", fileID).Info("built share link")
	fmt.Fprintln(cmd.OutOrStdout(), raw)
	return nil
}

func runLinkParse(cmd *cobra.Command, args []string) error {
	link, err := sharelink.Parse(args[0])
	if err != nil {
		return fmt.Errorf("link parse: %w", err)
	}

	logger.WithField("file_id", link.FileID).Info("parsed share link")

	fmt.Fprintf(cmd.OutOrStdout(), "origin=%s\n", link.Origin)
	fmt.Fprintf(cmd.OutOrStdout(), "file_id=%s\n", link.FileID)
	fmt.Fprintf(cmd.OutOrStdout(), "key=%s\n", hex.EncodeToString(link.Key))
	fmt.Fprintf(cmd.OutOrStdout(), "salt=%s\n", hex.EncodeToString(link.Salt))
	if link.Filename != "" {
		fmt.Fprintf(cmd.OutOrStdout(), "filename=%s\n", link.Filename)
	}
	return nil
}
