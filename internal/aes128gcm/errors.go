package aes128gcm

import "errors"

// Sentinel errors for every failure kind the codec can produce. All of
// them are terminal: once a session returns one, the same error (or
// ErrDecryptionFailed, see Decoder.Push) is returned on every subsequent
// call to that session.
var (
	// ErrConfiguration is returned by NewEncoder when rs, IKM or salt
	// fail the construction-time preconditions.
	ErrConfiguration = errors.New("aes128gcm: invalid configuration")

	// ErrHeaderTruncated is returned when fewer than 21+idlen bytes of
	// header are available before the input ends.
	ErrHeaderTruncated = errors.New("aes128gcm: header truncated")

	// ErrRecordSizeZero is returned when the parsed rs field is 0.
	ErrRecordSizeZero = errors.New("aes128gcm: record size is zero")

	// ErrRecordSizeTooSmall is returned when the parsed rs field is
	// smaller than the 18-byte floor required to carry one plaintext
	// byte plus delimiter plus tag.
	ErrRecordSizeTooSmall = errors.New("aes128gcm: record size smaller than minimum of 18")

	// ErrAuthenticationFailed is returned when a record's GCM tag fails
	// to verify. Internal only: callers observe ErrDecryptionFailed.
	ErrAuthenticationFailed = errors.New("aes128gcm: authentication failed")

	// ErrPaddingInvalid is returned when a successfully-decrypted record
	// has no valid 0x01/0x02 delimiter. Internal only: callers observe
	// ErrDecryptionFailed.
	ErrPaddingInvalid = errors.New("aes128gcm: padding invalid")

	// ErrDecryptionFailed is the single error kind exposed to callers in
	// place of ErrAuthenticationFailed and ErrPaddingInvalid, so that a
	// tampered tag and a tampered plaintext delimiter are indistinguishable
	// at the API boundary. Use errors.Is against the specific causes below
	// (via errors.Unwrap) in tests that need to assert the precise cause.
	ErrDecryptionFailed = errors.New("aes128gcm: decryption failed")

	// ErrUnexpectedEndOfStream is returned when input ends without ever
	// producing a terminal (0x02) record.
	ErrUnexpectedEndOfStream = errors.New("aes128gcm: unexpected end of stream")

	// ErrTrailingGarbage is returned when bytes remain in the input after
	// the terminal record has been consumed.
	ErrTrailingGarbage = errors.New("aes128gcm: trailing garbage after terminal record")

	// ErrWriteAfterClose is returned by Encoder.Write/Finish once the
	// encoder has emitted its terminal record or hit an error.
	ErrWriteAfterClose = errors.New("aes128gcm: write after close")

	// ErrReadAfterClose is returned by Decoder.Push/Finish once the
	// decoder has seen the terminal record, a decode error, or
	// Finish/Close has already run.
	ErrReadAfterClose = errors.New("aes128gcm: read after close")

	// ErrSequenceOverflow is returned if the record sequence counter
	// would exceed 2^64-1.
	ErrSequenceOverflow = errors.New("aes128gcm: record sequence counter overflow")
)

// causeError wraps an internal-only error kind with the single
// caller-visible ErrDecryptionFailed, while keeping the specific cause
// reachable via errors.Unwrap/errors.Is for tests.
type causeError struct {
	cause error
}

func (e *causeError) Error() string { return ErrDecryptionFailed.Error() }

func (e *causeError) Is(target error) bool { return target == ErrDecryptionFailed }

func (e *causeError) Unwrap() error { return e.cause }

func decryptionFailed(cause error) error {
	return &causeError{cause: cause}
}
