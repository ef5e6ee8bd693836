// Package hkdf exposes HKDF (RFC 5869) through the narrow extract/expand
// interface used by the OpenPGP key derivations.
package hkdf

import (
	"crypto"
	"crypto/sha256"
	"crypto/sha512"
	"hash"
	"io"

	"github.com/openpgp-pqc/go-crypto/openpgp/errors"
	"golang.org/x/crypto/hkdf"
	"golang.org/x/crypto/sha3"
)

var hashes = map[crypto.Hash]func() hash.Hash{
	crypto.SHA256:   sha256.New,
	crypto.SHA384:   sha512.New384,
	crypto.SHA512:   sha512.New,
	crypto.SHA3_256: sha3.New256,
	crypto.SHA3_512: sha3.New512,
}

// HKDF derives keys with a fixed hash function.
type HKDF struct {
	hash crypto.Hash
	new  func() hash.Hash
}

// New returns an HKDF instance for hash. Hashes outside SHA-2 256/384/512
// and SHA3-256/512 are rejected with an InvalidParameterError.
func New(hash crypto.Hash) (*HKDF, error) {
	h, ok := hashes[hash]
	if !ok {
		return nil, errors.InvalidParameterError("hkdf: unsupported hash " + hash.String())
	}
	return &HKDF{hash: hash, new: h}, nil
}

func (h *HKDF) Hash() crypto.Hash {
	return h.hash
}

// Size returns the length of a pseudorandom key produced by Extract.
func (h *HKDF) Size() int {
	return h.hash.Size()
}

// Extract computes PRK = HMAC-Hash(salt, ikm). An empty salt is replaced by
// a string of zeros as in RFC 5869.
func (h *HKDF) Extract(salt, ikm []byte) []byte {
	return hkdf.Extract(h.new, ikm, salt)
}

// Expand derives length bytes of output keying material from prk.
func (h *HKDF) Expand(prk, info []byte, length int) ([]byte, error) {
	if length <= 0 || length > 255*h.Size() {
		return nil, errors.InvalidArgumentError("hkdf: invalid output length")
	}
	if len(prk) < h.Size() {
		return nil, errors.InvalidArgumentError("hkdf: pseudorandom key too short")
	}
	okm := make([]byte, length)
	if _, err := io.ReadFull(hkdf.Expand(h.new, prk, info), okm); err != nil {
		return nil, errors.NewProviderError("hkdf: expand", err)
	}
	return okm, nil
}

// ExtractExpand runs Extract followed by Expand.
func (h *HKDF) ExtractExpand(salt, ikm, info []byte, length int) ([]byte, error) {
	prk := h.Extract(salt, ikm)
	defer clear(prk)
	return h.Expand(prk, info, length)
}
