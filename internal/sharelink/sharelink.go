// Package sharelink builds and parses the key-sharing link format from
// the aes128gcm codec's external interface: a download URL whose
// fragment carries the symmetric key material that never reaches the
// origin server.
package sharelink

import (
	"encoding/hex"
	"errors"
	"fmt"
	"net/url"
	"strings"
)

const (
	keyHexLen  = 32 // hex encoding of a 16-byte key
	saltHexLen = 32 // hex encoding of a 16-byte salt
)

// Errors returned by Parse. All are terminal: a malformed link never
// yields a partially-populated Link.
var (
	ErrMissingFileID  = errors.New("sharelink: missing file id in path")
	ErrMissingKey     = errors.New("sharelink: missing key parameter")
	ErrMissingSalt    = errors.New("sharelink: missing salt parameter")
	ErrInvalidKeyHex  = errors.New("sharelink: key is not valid 32-character hex")
	ErrInvalidSaltHex = errors.New("sharelink: salt is not valid 32-character hex")
	ErrNotFragment    = errors.New("sharelink: key material must be carried in the URL fragment, not the query string")
)

// Link is the parsed form of a key-sharing URL:
//
//	<origin>/download/<file-id>#key=<hex-32>&salt=<hex-32>[&filename=<url-encoded>]
//
// Key and Salt are the raw 16 bytes decoded from their hex encoding.
// Neither is ever placed anywhere but the fragment: IsValid does not
// check this (it cannot, once the bytes are in memory) but Build always
// emits them after the '#', never as query parameters.
type Link struct {
	Origin   string
	FileID   string
	Key      []byte
	Salt     []byte
	Filename string // optional
}

// IsValid reports whether l's key and salt are the lengths the codec
// requires and its identifying fields are non-empty. It mirrors the
// IsValid methods on the codec's enum-like domain types: a cheap,
// total predicate callers can check before trusting a value.
func (l Link) IsValid() bool {
	return l.Origin != "" && l.FileID != "" && len(l.Key) == 16 && len(l.Salt) == 16
}

// Build renders l as the canonical share link string. It returns an
// error if l is not IsValid.
func Build(l Link) (string, error) {
	if !l.IsValid() {
		return "", fmt.Errorf("sharelink: cannot build from invalid link (origin=%q file_id=%q key_len=%d salt_len=%d)",
			l.Origin, l.FileID, len(l.Key), len(l.Salt))
	}

	frag := url.Values{}
	frag.Set("key", hex.EncodeToString(l.Key))
	frag.Set("salt", hex.EncodeToString(l.Salt))
	if l.Filename != "" {
		frag.Set("filename", l.Filename)
	}

	origin := strings.TrimRight(l.Origin, "/")
	return fmt.Sprintf("%s/download/%s#%s", origin, l.FileID, frag.Encode()), nil
}

// Parse recovers a Link from a share link string. It rejects links that
// carry key or salt in the query string rather than the fragment, since
// a query string is sent to the origin server and a fragment is not.
func Parse(raw string) (Link, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return Link{}, fmt.Errorf("sharelink: %w", err)
	}

	if u.RawQuery != "" {
		q := u.Query()
		if q.Get("key") != "" || q.Get("salt") != "" {
			return Link{}, ErrNotFragment
		}
	}

	fileID := strings.TrimPrefix(u.Path, "/download/")
	if fileID == "" || fileID == u.Path {
		return Link{}, ErrMissingFileID
	}

	frag, err := url.ParseQuery(u.EscapedFragment())
	if err != nil {
		return Link{}, fmt.Errorf("sharelink: invalid fragment: %w", err)
	}

	keyHex := frag.Get("key")
	if keyHex == "" {
		return Link{}, ErrMissingKey
	}
	if len(keyHex) != keyHexLen {
		return Link{}, ErrInvalidKeyHex
	}
	key, err := hex.DecodeString(keyHex)
	if err != nil {
		return Link{}, fmt.Errorf("%w: %v", ErrInvalidKeyHex, err)
	}

	saltHex := frag.Get("salt")
	if saltHex == "" {
		return Link{}, ErrMissingSalt
	}
	if len(saltHex) != saltHexLen {
		return Link{}, ErrInvalidSaltHex
	}
	salt, err := hex.DecodeString(saltHex)
	if err != nil {
		return Link{}, fmt.Errorf("%w: %v", ErrInvalidSaltHex, err)
	}

	u.Fragment = ""
	u.RawFragment = ""
	origin := u.Scheme + "://" + u.Host

	return Link{
		Origin:   origin,
		FileID:   fileID,
		Key:      key,
		Salt:     salt,
		Filename: frag.Get("filename"),
	}, nil
}
