package object

import (
	"crypto/sha1"
	"encoding/hex"
	"fmt"
)

// RawHashLen is the length of a raw (binary) digest in bytes. Tree
// entries embed hashes in this form; everywhere else they travel as
// 40-character hex strings.
const RawHashLen = sha1.Size

// HexHashLen is the length of a hex-encoded digest.
const HexHashLen = 2 * RawHashLen

// HashObject computes the SHA-1 of the envelope "type len\0content".
// Two objects with identical type and content always hash identically;
// this digest is the object's sole identity.
func HashObject(objType ObjectType, data []byte) Hash {
	h := sha1.New()
	fmt.Fprintf(h, "%s %d\x00", objType, len(data))
	h.Write(data)
	return Hash(hex.EncodeToString(h.Sum(nil)))
}

// ValidHash reports whether s is a well-formed object hash: exactly 40
// lower-case hex digits.
func ValidHash(s string) bool {
	if len(s) != HexHashLen {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			return false
		}
	}
	return true
}

// Raw decodes the hash into its 20 raw bytes. It fails on anything that
// is not a well-formed hex digest.
func (h Hash) Raw() ([]byte, error) {
	if !ValidHash(string(h)) {
		return nil, fmt.Errorf("invalid object hash %q", string(h))
	}
	return hex.DecodeString(string(h))
}
