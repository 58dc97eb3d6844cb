package aes128gcm

import (
	"crypto/cipher"
	"fmt"
	"math"
)

// decoderState tracks where a Decoder sits in the state machine from
// spec section 4.5: header bytes are buffered until a complete header is
// available, then complete records are decrypted as they become
// available, until the terminal record is seen.
type decoderState int

const (
	awaitingHeader decoderState = iota
	awaitingRecord
	terminated
)

// Encoder is a single-message aes128gcm encryption session. It is not
// safe for concurrent use; create one Encoder per message.
type Encoder struct {
	aead          cipher.AEAD
	cek           []byte
	nonceSeed     []byte
	header        []byte
	headerEmitted bool
	buf           []byte
	chunkSize     int
	seq           uint64
	closed        bool
	err           error
}

// KeyMaterial bundles the three values an Encoder needs to start a
// session: the input keying material, the per-message salt, and the
// record size. It exists so callers build and validate these together
// once, rather than passing three loose parameters around.
type KeyMaterial struct {
	IKM  []byte
	Salt []byte
	RS   uint32
}

// IsValid reports whether km's fields are the lengths and range the
// codec requires. Like sharelink.Link.IsValid, it is a cheap, total
// predicate callers can check before trusting a value.
func (km KeyMaterial) IsValid() bool {
	return len(km.IKM) == IKMSize && len(km.Salt) == SaltSize && km.RS >= MinRecordSize
}

// NewEncoder derives the Content Encryption Key and nonce seed from km
// and prepares a session that will produce records of ciphertext length
// km.RS (except possibly the terminal record).
func NewEncoder(km KeyMaterial) (*Encoder, error) {
	if !km.IsValid() {
		return nil, fmt.Errorf("%w: invalid key material (ikm_len=%d salt_len=%d rs=%d)",
			ErrConfiguration, len(km.IKM), len(km.Salt), km.RS)
	}

	hdr, err := encodeHeader(km.Salt, km.RS, nil)
	if err != nil {
		return nil, err
	}

	cek, nonceSeed, err := deriveKeys(km.Salt, km.IKM)
	if err != nil {
		return nil, err
	}

	aead, err := newAEAD(cek)
	if err != nil {
		return nil, err
	}

	return &Encoder{
		aead:      aead,
		cek:       cek,
		nonceSeed: nonceSeed,
		header:    hdr,
		chunkSize: int(km.RS) - RecordOverhead,
	}, nil
}

// Header returns the 21+idlen byte wire header. Calling it is optional:
// Write and Finish prepend it to their first output automatically if the
// caller never calls Header explicitly.
func (e *Encoder) Header() []byte {
	e.headerEmitted = true
	out := make([]byte, len(e.header))
	copy(out, e.header)
	return out
}

// Write buffers plaintext and returns zero or more complete non-terminal
// ciphertext records. It never blocks on chunk alignment: callers may
// pass arbitrarily small or large slices across multiple calls.
func (e *Encoder) Write(plaintext []byte) ([]byte, error) {
	if e.err != nil {
		return nil, e.err
	}
	if e.closed {
		e.err = ErrWriteAfterClose
		return nil, e.err
	}

	var out []byte
	if !e.headerEmitted {
		out = append(out, e.header...)
		e.headerEmitted = true
	}

	e.buf = append(e.buf, plaintext...)
	for len(e.buf) >= e.chunkSize {
		rec, err := e.seal(e.buf[:e.chunkSize], delimiterRecord)
		if err != nil {
			e.err = err
			return nil, err
		}
		out = append(out, rec...)
		e.buf = e.buf[e.chunkSize:]
	}

	return out, nil
}

// Finish emits the terminal record (delimiter 0x02) containing whatever
// plaintext remains buffered — 0 to chunkSize-1 bytes, since Write flushes
// every full chunk — and closes the
// session. A zero-byte terminal record is valid and required whenever the
// plaintext length is an exact multiple of chunkSize.
func (e *Encoder) Finish() ([]byte, error) {
	if e.err != nil {
		return nil, e.err
	}
	if e.closed {
		e.err = ErrWriteAfterClose
		return nil, e.err
	}

	var out []byte
	if !e.headerEmitted {
		out = append(out, e.header...)
		e.headerEmitted = true
	}

	rec, err := e.seal(e.buf, delimiterLast)
	if err != nil {
		e.err = err
		return nil, err
	}
	out = append(out, rec...)

	e.buf = nil
	e.closed = true
	return out, nil
}

func (e *Encoder) seal(chunk []byte, delimiter byte) ([]byte, error) {
	if e.seq == math.MaxUint64 {
		return nil, ErrSequenceOverflow
	}
	nonce := nonceFor(e.nonceSeed, e.seq)
	e.seq++
	return encryptRecord(e.aead, nonce, chunk, delimiter), nil
}

// Close zeroes the session's key material. Safe to call multiple times
// and safe to call whether or not Finish ran.
func (e *Encoder) Close() {
	wipe(e.cek)
	wipe(e.nonceSeed)
	wipe(e.buf)
	e.closed = true
}

// Decoder is a single-message aes128gcm decryption session. It is not
// safe for concurrent use; create one Decoder per message.
type Decoder struct {
	ikm       []byte
	aead      cipher.AEAD
	nonceSeed []byte
	rs        uint32
	buf       []byte
	seq       uint64
	state     decoderState
	closed    bool
	err       error
}

// NewDecoder prepares a decryption session for messages produced with the
// given 16-byte input keying material. The salt and record size are read
// from the header once enough ciphertext has been pushed.
func NewDecoder(ikm []byte) (*Decoder, error) {
	if len(ikm) != IKMSize {
		return nil, fmt.Errorf("%w: ikm must be %d bytes, got %d", ErrConfiguration, IKMSize, len(ikm))
	}
	k := make([]byte, IKMSize)
	copy(k, ikm)
	return &Decoder{ikm: k}, nil
}

// Push feeds the next chunk of ciphertext (any non-negative length,
// including zero) into the session and returns however much plaintext
// could be produced from it. No partial record is ever decrypted: bytes
// are held until a complete header or a complete record is available.
//
// Once Push or Finish has returned an error, every subsequent call
// returns that same error (or ErrReadAfterClose once the session is
// closed) without touching the buffered ciphertext again.
func (d *Decoder) Push(chunk []byte) ([]byte, error) {
	if d.err != nil {
		return nil, d.err
	}
	if d.closed {
		d.err = ErrReadAfterClose
		return nil, d.err
	}
	if d.state == terminated {
		if len(chunk) > 0 {
			d.err = ErrTrailingGarbage
			return nil, d.err
		}
		return nil, nil
	}

	d.buf = append(d.buf, chunk...)

	if d.state == awaitingHeader {
		length, ok := headerLen(d.buf)
		if !ok || len(d.buf) < length {
			return nil, nil
		}

		h, err := decodeHeader(d.buf[:length])
		if err != nil {
			d.err = err
			return nil, err
		}

		cek, nonceSeed, err := deriveKeys(h.salt, d.ikm)
		wipe(d.ikm)
		if err != nil {
			d.err = err
			return nil, err
		}

		aead, err := newAEAD(cek)
		wipe(cek)
		if err != nil {
			d.err = err
			return nil, err
		}

		d.aead = aead
		d.nonceSeed = nonceSeed
		d.rs = h.rs
		d.buf = d.buf[length:]
		d.state = awaitingRecord
	}

	var out []byte
	for uint32(len(d.buf)) >= d.rs {
		record := d.buf[:d.rs]
		plaintext, delimiter, err := d.open(record)
		if err != nil {
			d.err = wrapDecodeErr(err)
			return nil, d.err
		}
		d.buf = d.buf[d.rs:]
		out = append(out, plaintext...)

		if delimiter == delimiterLast {
			d.state = terminated
			if len(d.buf) > 0 {
				d.err = ErrTrailingGarbage
				return nil, d.err
			}
			break
		}
	}

	return out, nil
}

// Finish signals that no more ciphertext will arrive. If the terminal
// record was shorter than rs, it is decrypted and returned here (Push
// only decrypts once a full rs-byte record — or more — is buffered).
// Finish reports ErrUnexpectedEndOfStream if the terminal record was
// never seen.
func (d *Decoder) Finish() ([]byte, error) {
	if d.err != nil {
		return nil, d.err
	}
	if d.closed {
		d.err = ErrReadAfterClose
		return nil, d.err
	}

	switch d.state {
	case awaitingHeader:
		d.err = ErrUnexpectedEndOfStream
		d.closed = true
		return nil, d.err

	case terminated:
		d.closed = true
		return nil, nil

	default: // awaitingRecord
		if len(d.buf) == 0 {
			d.err = ErrUnexpectedEndOfStream
			d.closed = true
			return nil, d.err
		}

		plaintext, delimiter, err := d.open(d.buf)
		d.buf = nil
		if err != nil {
			d.err = wrapDecodeErr(err)
			d.closed = true
			return nil, d.err
		}
		if delimiter != delimiterLast {
			d.err = ErrUnexpectedEndOfStream
			d.closed = true
			return nil, d.err
		}

		d.state = terminated
		d.closed = true
		return plaintext, nil
	}
}

func (d *Decoder) open(record []byte) (plaintext []byte, delimiter byte, err error) {
	if d.seq == math.MaxUint64 {
		return nil, 0, ErrSequenceOverflow
	}
	nonce := nonceFor(d.nonceSeed, d.seq)
	d.seq++
	return decryptRecord(d.aead, nonce, record)
}

// Close zeroes the session's key material. Safe to call multiple times.
func (d *Decoder) Close() {
	wipe(d.ikm)
	wipe(d.nonceSeed)
	wipe(d.buf)
	d.closed = true
}

// wipe overwrites data with zeros in place so key material does not
// linger in memory past the session that owned it.
func wipe(data []byte) {
	for i := range data {
		data[i] = 0
	}
}

// wrapDecodeErr maps the two record-level failure causes to the single
// caller-visible ErrDecryptionFailed, per spec section 7, while leaving
// session-level errors like ErrSequenceOverflow unwrapped.
func wrapDecodeErr(err error) error {
	switch err {
	case ErrAuthenticationFailed, ErrPaddingInvalid:
		return decryptionFailed(err)
	default:
		return err
	}
}
