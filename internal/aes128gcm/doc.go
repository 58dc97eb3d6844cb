// Package aes128gcm implements the RFC 8188 "aes128gcm" Encrypted
// Content-Encoding scheme: a streaming, record-oriented AEAD construction
// built from HKDF-SHA-256 key derivation, a per-record nonce schedule, a
// fixed-shape header, and AES-128-GCM record encryption.
//
// The package is a byte-in/byte-out transformer. It opens no files or
// connections (EncryptReader and DecryptReader only read and write the
// streams the caller passes in), starts no goroutines, never logs, and
// never returns the derived CEK or nonce seed; GenerateIKM and
// GenerateSalt are the only functions that return key material. Callers
// that need those things (file handling, structured logging, CLI
// plumbing) live in sibling packages.
package aes128gcm
