package aes128gcm

import (
	"crypto/rand"
	"io"
)

// GenerateIKM returns 16 bytes of cryptographically random input keying
// material, suitable for a fresh aes128gcm message key.
func GenerateIKM() ([]byte, error) {
	return randomBytes(IKMSize)
}

// GenerateSalt returns 16 bytes of cryptographically random salt. A fresh
// salt must be generated for every message encrypted under the same IKM.
func GenerateSalt() ([]byte, error) {
	return randomBytes(SaltSize)
}

func randomBytes(n int) ([]byte, error) {
	b := make([]byte, n)
	if _, err := io.ReadFull(rand.Reader, b); err != nil {
		return nil, err
	}
	return b, nil
}

// EncryptAll encrypts plaintext in one call, returning the complete
// aes128gcm ciphertext (header plus every record). It is a thin wrapper
// over Encoder for callers that already hold the whole plaintext in
// memory; streaming callers should drive Encoder directly.
func EncryptAll(ikm, salt []byte, rs uint32, plaintext []byte) ([]byte, error) {
	enc, err := NewEncoder(KeyMaterial{IKM: ikm, Salt: salt, RS: rs})
	if err != nil {
		return nil, err
	}
	defer enc.Close()

	out, err := enc.Write(plaintext)
	if err != nil {
		return nil, err
	}
	rec, err := enc.Finish()
	if err != nil {
		return nil, err
	}
	return append(out, rec...), nil
}

// DecryptAll decrypts a complete aes128gcm message in one call. It
// returns ErrTrailingGarbage or ErrUnexpectedEndOfStream for malformed
// input the same way the streaming Decoder would.
func DecryptAll(ikm, ciphertext []byte) ([]byte, error) {
	dec, err := NewDecoder(ikm)
	if err != nil {
		return nil, err
	}
	defer dec.Close()

	out, err := dec.Push(ciphertext)
	if err != nil {
		return nil, err
	}
	rest, err := dec.Finish()
	if err != nil {
		return nil, err
	}
	return append(out, rest...), nil
}

// EncryptReader streams plaintext from r through a fresh Encoder and
// writes the resulting ciphertext to w, using bufSize-sized reads (bufSize
// must be positive; callers typically pass the record's chunk capacity or
// a multiple of it to keep Write calls aligned to record boundaries, but
// any positive size works).
func EncryptReader(ikm, salt []byte, rs uint32, r io.Reader, w io.Writer, bufSize int) error {
	enc, err := NewEncoder(KeyMaterial{IKM: ikm, Salt: salt, RS: rs})
	if err != nil {
		return err
	}
	defer enc.Close()

	buf := make([]byte, bufSize)
	for {
		n, rerr := r.Read(buf)
		if n > 0 {
			out, err := enc.Write(buf[:n])
			if err != nil {
				return err
			}
			if _, err := w.Write(out); err != nil {
				return err
			}
		}
		if rerr == io.EOF {
			break
		}
		if rerr != nil {
			return rerr
		}
	}

	out, err := enc.Finish()
	if err != nil {
		return err
	}
	_, err = w.Write(out)
	return err
}

// DecryptReader streams ciphertext from r through a fresh Decoder and
// writes the resulting plaintext to w.
func DecryptReader(ikm []byte, r io.Reader, w io.Writer, bufSize int) error {
	dec, err := NewDecoder(ikm)
	if err != nil {
		return err
	}
	defer dec.Close()

	buf := make([]byte, bufSize)
	for {
		n, rerr := r.Read(buf)
		if n > 0 {
			out, err := dec.Push(buf[:n])
			if err != nil {
				return err
			}
			if _, err := w.Write(out); err != nil {
				return err
			}
		}
		if rerr == io.EOF {
			break
		}
		if rerr != nil {
			return rerr
		}
	}

	out, err := dec.Finish()
	if err != nil {
		return err
	}
	_, err = w.Write(out)
	return err
}
