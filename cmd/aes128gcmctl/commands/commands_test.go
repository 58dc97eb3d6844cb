package commands

import (
	"bytes"
	"encoding/hex"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nas-ai/aes128gcm/internal/applog"
	"github.com/nas-ai/aes128gcm/internal/config"
)

// testSetup installs a throwaway config and logger the way
// PersistentPreRunE would, so individual run* functions can be invoked
// directly without going through cobra's flag-parsing and arg dispatch.
func testSetup(t *testing.T) {
	t.Helper()
	cfg = &config.Config{LogLevel: "error", RecordSize: 4096, ShareOrigin: "https://share.example.com"}
	logger = applog.New(cfg.LogLevel)
}

func TestRunKeygenPrintsIKMAndSalt(t *testing.T) {
	testSetup(t)
	cmd := keygenCmd
	var out bytes.Buffer
	cmd.SetOut(&out)

	require.NoError(t, runKeygen(cmd, nil))

	text := out.String()
	assert.Contains(t, text, "ikm=")
	assert.Contains(t, text, "salt=")
}

func TestEncryptDecryptRoundTripViaFiles(t *testing.T) {
	testSetup(t)
	dir := t.TempDir()
	inPath := filepath.Join(dir, "plain.txt")
	ctPath := filepath.Join(dir, "cipher.bin")
	outPath := filepath.Join(dir, "roundtrip.txt")

	plaintext := []byte("the quick brown fox jumps over the lazy dog")
	require.NoError(t, os.WriteFile(inPath, plaintext, 0o600))

	ikm := make([]byte, 16)
	salt := make([]byte, 16)
	for i := range salt {
		salt[i] = byte(i)
	}

	encryptIKMHex = hex.EncodeToString(ikm)
	encryptSaltHex = hex.EncodeToString(salt)
	encryptRS = 64
	encryptIn = inPath
	encryptOut = ctPath
	require.NoError(t, runEncrypt(encryptCmd, nil))

	decryptIKMHex = hex.EncodeToString(ikm)
	decryptIn = ctPath
	decryptOut = outPath
	require.NoError(t, runDecrypt(decryptCmd, nil))

	got, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.Equal(t, plaintext, got)
}

func TestDecryptTamperedCiphertextMapsToDecryptionFailedExitCode(t *testing.T) {
	testSetup(t)
	dir := t.TempDir()
	inPath := filepath.Join(dir, "plain.txt")
	ctPath := filepath.Join(dir, "cipher.bin")
	outPath := filepath.Join(dir, "out.txt")

	require.NoError(t, os.WriteFile(inPath, []byte("hello"), 0o600))

	ikm := make([]byte, 16)
	salt := make([]byte, 16)

	encryptIKMHex = hex.EncodeToString(ikm)
	encryptSaltHex = hex.EncodeToString(salt)
	encryptRS = 64
	encryptIn = inPath
	encryptOut = ctPath
	require.NoError(t, runEncrypt(encryptCmd, nil))

	ciphertext, err := os.ReadFile(ctPath)
	require.NoError(t, err)
	ciphertext[len(ciphertext)-1] ^= 0xff
	require.NoError(t, os.WriteFile(ctPath, ciphertext, 0o600))

	decryptIKMHex = hex.EncodeToString(ikm)
	decryptIn = ctPath
	decryptOut = outPath
	runErr := runDecrypt(decryptCmd, nil)

	require.Error(t, runErr)
	assert.Equal(t, 10, ExitCodeFor(runErr))
}

func TestLinkBuildAndParseRoundTrip(t *testing.T) {
	testSetup(t)

	key := make([]byte, 16)
	salt := make([]byte, 16)
	for i := range salt {
		salt[i] = byte(i + 1)
	}

	linkBuildFileID = "file-42"
	linkBuildKeyHex = hex.EncodeToString(key)
	linkBuildSaltHex = hex.EncodeToString(salt)
	linkBuildFilename = "report.pdf"
	linkBuildOrigin = ""

	var buildOut bytes.Buffer
	linkBuildCmd.SetOut(&buildOut)
	require.NoError(t, runLinkBuild(linkBuildCmd, nil))

	built := buildOut.String()
	assert.Contains(t, built, "share.example.com")
	assert.Contains(t, built, "file-42")

	rawLink := built[:len(built)-1] // strip trailing newline

	var parseOut bytes.Buffer
	linkParseCmd.SetOut(&parseOut)
	require.NoError(t, runLinkParse(linkParseCmd, []string{rawLink}))

	parsed := parseOut.String()
	assert.Contains(t, parsed, "file_id=file-42")
	assert.Contains(t, parsed, "filename=report.pdf")
}

func TestLinkBuildGeneratesFileIDWhenOmitted(t *testing.T) {
	testSetup(t)

	key := make([]byte, 16)
	salt := make([]byte, 16)

	linkBuildFileID = ""
	linkBuildKeyHex = hex.EncodeToString(key)
	linkBuildSaltHex = hex.EncodeToString(salt)
	linkBuildFilename = ""
	linkBuildOrigin = "https://other.example.com"

	var buildOut bytes.Buffer
	linkBuildCmd.SetOut(&buildOut)
	require.NoError(t, runLinkBuild(linkBuildCmd, nil))

	assert.Contains(t, buildOut.String(), "https://other.example.com/download/")
}
