package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// Fingerprint is the SHA-256 digest of raw document bytes, encoded as
// 64 lowercase hex characters. Identical byte sequences always produce
// identical fingerprints; any byte difference produces a different one.
//
// A fingerprint is recomputed from the submitted bytes on every request
// and has no independent lifecycle.
type Fingerprint string

// FingerprintSize is the length of a hex-encoded fingerprint.
const FingerprintSize = sha256.Size * 2

// FingerprintBytes computes the fingerprint of raw document bytes.
// It is deterministic and pure; empty input is hashed like any other
// byte sequence.
func FingerprintBytes(b []byte) Fingerprint {
	sum := sha256.Sum256(b)
	return Fingerprint(hex.EncodeToString(sum[:]))
}

// IsValid reports whether f looks like a hex-encoded SHA-256 digest.
func (f Fingerprint) IsValid() bool {
	if len(f) != FingerprintSize {
		return false
	}
	_, err := hex.DecodeString(string(f))
	return err == nil
}

// Short returns a truncated prefix for log output.
func (f Fingerprint) Short() string {
	if len(f) < 16 {
		return string(f)
	}
	return string(f[:16])
}

// String returns the hex representation.
func (f Fingerprint) String() string {
	return string(f)
}

// ScoringKey addresses one (document, job title, job description)
// evaluation in the scoring namespace. Like Fingerprint it is a
// hex-encoded SHA-256 digest, safe to use as a store key.
type ScoringKey string

// Short returns a truncated prefix for log output.
func (k ScoringKey) Short() string {
	if len(k) < 16 {
		return string(k)
	}
	return string(k[:16])
}

// String returns the hex representation.
func (k ScoringKey) String() string {
	return string(k)
}

// DeriveScoringKey builds the scoring cache key from a content
// fingerprint and the job fields. The same triple always yields the
// same key; changing any one field (after normalisation) changes it.
//
// Job fields are normalised before hashing with NormaliseJobField:
// surrounding whitespace is trimmed, the text is lower-cased, and
// internal whitespace runs collapse to a single space. Punctuation is
// preserved, so callers that consider "Sr. Engineer" and "Sr Engineer"
// different jobs get different keys.
func DeriveScoringKey(fp Fingerprint, jobTitle, jobDescription string) ScoringKey {
	composite := string(fp) + ":" + NormaliseJobField(jobTitle) + ":" + NormaliseJobField(jobDescription)
	sum := sha256.Sum256([]byte(composite))
	return ScoringKey(hex.EncodeToString(sum[:]))
}

// NormaliseJobField applies the fixed normalisation used for scoring
// key derivation: trim, lower-case, collapse whitespace runs.
func NormaliseJobField(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}
