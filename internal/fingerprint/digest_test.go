package fingerprint

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashZeroTemplate(t *testing.T) {
	// SHA-256 of 512 zero bytes.
	want := "076a27c79e5ace2a3d47f9dd2e83e4ff6ea8872b3c2218f66c92b89b55f36560"
	assert.Equal(t, want, Hash(Template{}).String())
}

func TestHashIsDeterministic(t *testing.T) {
	tpl := patternTemplate()
	assert.True(t, Hash(tpl).Equal(Hash(tpl)))
}

func TestHashDetectsSingleBitDifference(t *testing.T) {
	a := patternTemplate()
	b := a
	b[TemplateSize-1] ^= 0x01

	assert.False(t, Hash(a).Equal(Hash(b)))
}

func TestHashCoversZeroFill(t *testing.T) {
	// Two truncated transfers that differ only in the zero-filled region
	// must not collide: the digest always covers all TemplateSize bytes.
	var a, b Template
	copy(a[:], []byte{0x01, 0x02, 0x03})
	copy(b[:], []byte{0x01, 0x02, 0x03})
	b[500] = 0xFF

	assert.False(t, Hash(a).Equal(Hash(b)))
}

func TestParseDigestRoundTrip(t *testing.T) {
	d := Hash(patternTemplate())
	parsed, err := ParseDigest(d.String())
	require.NoError(t, err)
	assert.True(t, d.Equal(parsed))
}

func TestParseDigestRejectsBadInput(t *testing.T) {
	_, err := ParseDigest("abcd")
	assert.Error(t, err, "short input")

	_, err = ParseDigest("zz")
	assert.Error(t, err, "non-hex input")
}
