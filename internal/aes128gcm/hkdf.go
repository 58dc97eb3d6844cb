package aes128gcm

import (
	"crypto/sha256"
	"io"

	"golang.org/x/crypto/hkdf"
)

// deriveKeys runs HKDF-SHA-256 (RFC 5869) extract-then-expand twice over
// (salt, ikm) to produce the message-scoped Content Encryption Key and
// nonce seed defined in RFC 8188 section 2.1. Each call gets its own
// hkdf.Reader because a single reader's output stream is positional:
// reusing one across two different info strings would silently derive
// the wrong bytes for the second call.
func deriveKeys(salt, ikm []byte) (cek, nonceSeed []byte, err error) {
	cek = make([]byte, KeySize)
	if err := expand(salt, ikm, cekInfo, cek); err != nil {
		return nil, nil, err
	}

	nonceSeed = make([]byte, NonceSeedSize)
	if err := expand(salt, ikm, nonceInfo, nonceSeed); err != nil {
		return nil, nil, err
	}

	return cek, nonceSeed, nil
}

// expand fills out with HKDF-Expand(HKDF-Extract(salt, ikm), info, len(out)).
func expand(salt, ikm []byte, info string, out []byte) error {
	reader := hkdf.New(sha256.New, ikm, salt, []byte(info))
	_, err := io.ReadFull(reader, out)
	return err
}
