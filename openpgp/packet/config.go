package packet

import (
	"crypto"
	"crypto/rand"
	"io"
)

// Config collects a number of parameters along with sensible defaults.
// A nil *Config is valid and results in all default values.
type Config struct {
	// Rand provides the source of entropy.
	// If nil, the crypto/rand Reader is used.
	Rand io.Reader
	// Algorithm is the composite signature scheme used for new signing keys.
	// If zero, Dilithium3+Ed25519 is used.
	Algorithm PublicKeyAlgorithm
	// EncryptionAlgorithm is the composite KEM used for new encryption keys.
	// If zero, Kyber768+X25519 is used.
	EncryptionAlgorithm PublicKeyAlgorithm
	// DefaultHash is the digest applied to messages before composite
	// signing. If zero, SHA-256 is used.
	DefaultHash crypto.Hash
}

func (c *Config) Random() io.Reader {
	if c == nil || c.Rand == nil {
		return rand.Reader
	}
	return c.Rand
}

func (c *Config) PublicKeyAlgorithm() PublicKeyAlgorithm {
	if c == nil || c.Algorithm == 0 {
		return PubKeyAlgoDilithium3Ed25519
	}
	return c.Algorithm
}

func (c *Config) EncryptionKeyAlgorithm() PublicKeyAlgorithm {
	if c == nil || c.EncryptionAlgorithm == 0 {
		return PubKeyAlgoKyber768X25519
	}
	return c.EncryptionAlgorithm
}

func (c *Config) Hash() crypto.Hash {
	if c == nil || uint(c.DefaultHash) == 0 {
		return crypto.SHA256
	}
	return c.DefaultHash
}
