package sharelink

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// validHex32 is a syntactically valid 32-character hex string, used in
// parse tests that aren't exercising the key/salt value itself.
func validHex32() string { return strings.Repeat("1a", 16) }

func testKey() []byte {
	k := make([]byte, 16)
	for i := range k {
		k[i] = byte(i)
	}
	return k
}

func testSalt() []byte {
	s := make([]byte, 16)
	for i := range s {
		s[i] = byte(i + 0x10)
	}
	return s
}

func TestBuildParseRoundTrip(t *testing.T) {
	link := Link{
		Origin: "https://share.example.com",
		FileID: "f-1234",
		Key:    testKey(),
		Salt:   testSalt(),
	}

	raw, err := Build(link)
	require.NoError(t, err)

	got, err := Parse(raw)
	require.NoError(t, err)

	assert.Equal(t, link.Origin, got.Origin)
	assert.Equal(t, link.FileID, got.FileID)
	assert.Equal(t, link.Key, got.Key)
	assert.Equal(t, link.Salt, got.Salt)
	assert.Empty(t, got.Filename)
}

func TestBuildParseRoundTripWithFilename(t *testing.T) {
	link := Link{
		Origin:   "https://share.example.com",
		FileID:   "f-1234",
		Key:      testKey(),
		Salt:     testSalt(),
		Filename: "vacation photo.jpg",
	}

	raw, err := Build(link)
	require.NoError(t, err)

	got, err := Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, "vacation photo.jpg", got.Filename)
}

func TestBuildTrimsTrailingSlashFromOrigin(t *testing.T) {
	link := Link{
		Origin: "https://share.example.com/",
		FileID: "f-1",
		Key:    testKey(),
		Salt:   testSalt(),
	}
	raw, err := Build(link)
	require.NoError(t, err)
	assert.Contains(t, raw, "https://share.example.com/download/f-1#")
}

func TestBuildRejectsInvalidLink(t *testing.T) {
	_, err := Build(Link{Origin: "https://x.com", FileID: "f", Key: []byte{1, 2, 3}})
	assert.Error(t, err)
}

func TestKeyAndSaltNeverAppearInQueryString(t *testing.T) {
	link := Link{Origin: "https://x.com", FileID: "f", Key: testKey(), Salt: testSalt()}
	raw, err := Build(link)
	require.NoError(t, err)

	before, after, found := cutFragment(raw)
	require.True(t, found, "built link must contain a fragment")
	assert.NotContains(t, before, "key=")
	assert.NotContains(t, before, "salt=")
	assert.Contains(t, after, "key=")
	assert.Contains(t, after, "salt=")
}

func cutFragment(s string) (before, after string, found bool) {
	for i := 0; i < len(s); i++ {
		if s[i] == '#' {
			return s[:i], s[i+1:], true
		}
	}
	return s, "", false
}

func TestParseRejectsMissingFileID(t *testing.T) {
	_, err := Parse("https://x.com/download/#key=" + validHex32() + "&salt=" + validHex32())
	assert.ErrorIs(t, err, ErrMissingFileID)
}

func TestParseRejectsMissingKey(t *testing.T) {
	_, err := Parse("https://x.com/download/f1#salt=" + validHex32())
	assert.ErrorIs(t, err, ErrMissingKey)
}

func TestParseRejectsMissingSalt(t *testing.T) {
	_, err := Parse("https://x.com/download/f1#key=" + validHex32())
	assert.ErrorIs(t, err, ErrMissingSalt)
}

func TestParseRejectsShortKey(t *testing.T) {
	_, err := Parse("https://x.com/download/f1#key=abcd&salt=" + validHex32())
	assert.ErrorIs(t, err, ErrInvalidKeyHex)
}

func TestParseRejectsNonHexKey(t *testing.T) {
	badHex := strings.Repeat("z", 32) // 32 chars, not hex
	_, err := Parse("https://x.com/download/f1#key=" + badHex + "&salt=" + validHex32())
	assert.ErrorIs(t, err, ErrInvalidKeyHex)
}

func TestParseRejectsKeyInQueryString(t *testing.T) {
	raw := "https://x.com/download/f1?key=" + validHex32() + "&salt=" + validHex32()
	_, err := Parse(raw)
	assert.ErrorIs(t, err, ErrNotFragment)
}

func TestLinkIsValid(t *testing.T) {
	valid := Link{Origin: "https://x.com", FileID: "f1", Key: testKey(), Salt: testSalt()}
	assert.True(t, valid.IsValid())

	assert.False(t, Link{}.IsValid())
	assert.False(t, Link{Origin: "https://x.com", FileID: "f1", Key: testKey()}.IsValid())
}
