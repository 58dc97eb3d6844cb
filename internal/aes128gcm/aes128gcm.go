package aes128gcm

// Wire-format constants, from RFC 8188 section 2.1.
const (
	// SaltSize is the length in bytes of the per-message salt.
	SaltSize = 16

	// IKMSize is the required length in bytes of the input keying
	// material supplied by the caller.
	IKMSize = 16

	// KeySize is the length in bytes of the derived Content Encryption
	// Key (AES-128, so 16 bytes).
	KeySize = 16

	// NonceSeedSize is the length in bytes of the derived nonce seed.
	NonceSeedSize = 12

	// TagSize is the length in bytes of the AES-GCM authentication tag
	// appended to every record.
	TagSize = 16

	// DelimiterSize is the length in bytes of the plaintext delimiter
	// byte appended before encryption.
	DelimiterSize = 1

	// RecordOverhead is the number of ciphertext bytes a record spends
	// on the delimiter and the tag; every record's plaintext capacity is
	// rs - RecordOverhead.
	RecordOverhead = DelimiterSize + TagSize

	// MinRecordSize is the smallest rs the codec accepts: enough for one
	// plaintext byte, the delimiter, and the tag.
	MinRecordSize = 1 + RecordOverhead // 18

	// headerFixedSize is the length in bytes of salt + rs + idlen, before
	// the variable-length key ID.
	headerFixedSize = SaltSize + 4 + 1

	// MinHeaderSize is the smallest possible header: headerFixedSize with
	// an empty key ID.
	MinHeaderSize = headerFixedSize

	// cekInfo is the literal HKDF info string used to derive the Content
	// Encryption Key.
	cekInfo = "Content-Encoding: aes128gcm\x00"

	// nonceInfo is the literal HKDF info string used to derive the nonce
	// seed.
	nonceInfo = "Content-Encoding: nonce\x00"

	// delimiterRecord marks a non-terminal plaintext record.
	delimiterRecord byte = 0x01

	// delimiterLast marks the terminal plaintext record.
	delimiterLast byte = 0x02
)
