package aes128gcm

import (
	"encoding/binary"
	"fmt"
)

// header is the parsed form of the 21+idlen byte aes128gcm header:
// salt[16] || rs[4 BE] || idlen[1] || keyid[idlen].
type header struct {
	salt  []byte
	rs    uint32
	keyID []byte
}

// encodeHeader serializes salt, rs and keyID into the wire-format header.
// It enforces rs >= MinRecordSize at encode time even though a decoder
// must accept (and reject, separately) any rs a peer might have sent,
// because no record encoded by this package could ever carry plaintext
// with a smaller rs.
func encodeHeader(salt []byte, rs uint32, keyID []byte) ([]byte, error) {
	if len(salt) != SaltSize {
		return nil, fmt.Errorf("%w: salt must be %d bytes, got %d", ErrConfiguration, SaltSize, len(salt))
	}
	if rs < MinRecordSize {
		return nil, fmt.Errorf("%w: record size must be at least %d, got %d", ErrConfiguration, MinRecordSize, rs)
	}
	if len(keyID) > 255 {
		return nil, fmt.Errorf("%w: key id must be at most 255 bytes, got %d", ErrConfiguration, len(keyID))
	}

	buf := make([]byte, headerFixedSize+len(keyID))
	copy(buf, salt)
	binary.BigEndian.PutUint32(buf[SaltSize:SaltSize+4], rs)
	buf[SaltSize+4] = byte(len(keyID))
	copy(buf[headerFixedSize:], keyID)

	return buf, nil
}

// headerLen inspects the first headerFixedSize bytes of buf (if present)
// and reports the total header length (headerFixedSize + idlen). It
// returns ok=false if buf does not yet contain enough bytes to know idlen.
func headerLen(buf []byte) (length int, ok bool) {
	if len(buf) < headerFixedSize {
		return 0, false
	}
	idlen := int(buf[SaltSize+4])
	return headerFixedSize + idlen, true
}

// decodeHeader parses a complete header (exactly headerLen(buf) bytes) out
// of buf. Callers are expected to have used headerLen to confirm buf is
// long enough before calling this.
func decodeHeader(buf []byte) (*header, error) {
	if len(buf) < headerFixedSize {
		return nil, ErrHeaderTruncated
	}

	idlen := int(buf[SaltSize+4])
	total := headerFixedSize + idlen
	if len(buf) < total {
		return nil, ErrHeaderTruncated
	}

	rs := binary.BigEndian.Uint32(buf[SaltSize : SaltSize+4])
	if rs == 0 {
		return nil, ErrRecordSizeZero
	}
	if rs < MinRecordSize {
		return nil, ErrRecordSizeTooSmall
	}

	salt := make([]byte, SaltSize)
	copy(salt, buf[:SaltSize])

	var keyID []byte
	if idlen > 0 {
		keyID = make([]byte, idlen)
		copy(keyID, buf[headerFixedSize:total])
	}

	return &header{salt: salt, rs: rs, keyID: keyID}, nil
}
