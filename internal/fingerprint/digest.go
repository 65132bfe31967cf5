package fingerprint

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
)

// Digest is a SHA-256 digest of a template. Digests identify templates in
// external storage; two captures of the same finger produce different
// templates and therefore different digests, so digest equality means the
// same transfer, not the same finger.
type Digest [DigestSize]byte

// Hash computes the digest of a template over all TemplateSize bytes,
// zero-fill included.
func Hash(tpl Template) Digest {
	return sha256.Sum256(tpl[:])
}

// Equal reports whether two digests are byte-for-byte identical. The
// comparison runs in constant time.
func (d Digest) Equal(other Digest) bool {
	return subtle.ConstantTimeCompare(d[:], other[:]) == 1
}

// String renders the digest as lowercase hex.
func (d Digest) String() string {
	return hex.EncodeToString(d[:])
}

// ParseDigest decodes a lowercase or uppercase hex digest string.
func ParseDigest(s string) (Digest, error) {
	var d Digest
	b, err := hex.DecodeString(s)
	if err != nil {
		return Digest{}, err
	}
	if len(b) != DigestSize {
		return Digest{}, fmt.Errorf("digest must be %d bytes, got %d", DigestSize, len(b))
	}
	copy(d[:], b)
	return d, nil
}
