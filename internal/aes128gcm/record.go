package aes128gcm

import (
	"crypto/aes"
	"crypto/cipher"
)

// newAEAD builds the AES-128-GCM cipher used for every record in a
// session. Constructed once per session and reused across records: only
// the nonce changes record to record.
func newAEAD(cek []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(cek)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}

// encryptRecord appends delimiter to plaintext, seals it with the AEAD
// under nonce and empty AAD, and returns ciphertext || tag. The returned
// slice is freshly allocated; plaintext is not mutated.
func encryptRecord(aead cipher.AEAD, nonce, plaintext []byte, delimiter byte) []byte {
	padded := make([]byte, len(plaintext)+DelimiterSize)
	copy(padded, plaintext)
	padded[len(plaintext)] = delimiter

	return aead.Seal(nil, nonce, padded, nil)
}

// decryptRecord opens one ciphertext record (ciphertext || 16-byte tag)
// under nonce and empty AAD, then strips and validates the trailing
// delimiter. It returns the plaintext chunk (without the delimiter) and
// the delimiter byte that was found (delimiterRecord or delimiterLast).
//
// No partial result is ever returned on failure: a failed tag check
// yields (nil, 0, ErrAuthenticationFailed) before any byte of the
// decrypted buffer is inspected, and an invalid delimiter is detected
// before the caller sees the plaintext.
func decryptRecord(aead cipher.AEAD, nonce, record []byte) (plaintext []byte, delimiter byte, err error) {
	if len(record) < TagSize+DelimiterSize {
		return nil, 0, ErrAuthenticationFailed
	}

	opened, err := aead.Open(nil, nonce, record, nil)
	if err != nil {
		return nil, 0, ErrAuthenticationFailed
	}

	// Scan from the end for the first non-zero byte: that is the
	// delimiter. Trailing zero bytes before it are permitted padding
	// (this codec never emits any, but RFC 8188 allows a peer to).
	i := len(opened) - 1
	for i >= 0 && opened[i] == 0 {
		i--
	}
	if i < 0 {
		return nil, 0, ErrPaddingInvalid
	}

	d := opened[i]
	if d != delimiterRecord && d != delimiterLast {
		return nil, 0, ErrPaddingInvalid
	}

	return opened[:i], d, nil
}
