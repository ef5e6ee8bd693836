// Package openpgp dispatches across the composite post-quantum key families
// and the native Curve25519 and Curve448 keys.
package openpgp

import (
	"crypto"
	"crypto/sha256"
	"crypto/sha512"
	"hash"
	"io"

	"github.com/openpgp-pqc/go-crypto/openpgp/dilithium_exdsa"
	"github.com/openpgp-pqc/go-crypto/openpgp/ed25519"
	"github.com/openpgp-pqc/go-crypto/openpgp/ed448"
	"github.com/openpgp-pqc/go-crypto/openpgp/errors"
	"github.com/openpgp-pqc/go-crypto/openpgp/kyber_ecdh"
	"github.com/openpgp-pqc/go-crypto/openpgp/packet"
	"github.com/openpgp-pqc/go-crypto/openpgp/x25519"
	"github.com/openpgp-pqc/go-crypto/openpgp/x448"
	"golang.org/x/crypto/sha3"
)

// signatureHashes are the digests accepted for composite signatures; all
// produce at least 256 bits.
var signatureHashes = map[crypto.Hash]func() hash.Hash{
	crypto.SHA256:   sha256.New,
	crypto.SHA384:   sha512.New384,
	crypto.SHA512:   sha512.New,
	crypto.SHA3_256: sha3.New256,
	crypto.SHA3_512: sha3.New512,
}

// GenerateSigningKey generates a Dilithium + ECC key pair using the
// algorithm and randomness source of config.
func GenerateSigningKey(config *packet.Config) (*dilithium_exdsa.PrivateKey, *dilithium_exdsa.PublicKey, error) {
	alg := config.PublicKeyAlgorithm()
	if !alg.IsDilithium() {
		return nil, nil, errors.InvalidAlgorithmError("not a composite signature algorithm: " + alg.String())
	}
	return dilithium_exdsa.GenerateKey(config.Random(), alg)
}

// GenerateEncryptionKey generates a Kyber + ECDH key pair using the
// encryption algorithm and randomness source of config.
func GenerateEncryptionKey(config *packet.Config) (*kyber_ecdh.PrivateKey, error) {
	alg := config.EncryptionKeyAlgorithm()
	if !alg.IsKyber() {
		return nil, errors.InvalidAlgorithmError("not a composite encryption algorithm: " + alg.String())
	}
	return kyber_ecdh.GenerateKey(config.Random(), alg)
}

// EncodedSize returns the length of an encoded public or, if secret is set,
// private key of alg.
func EncodedSize(alg packet.PublicKeyAlgorithm, secret bool) (int, error) {
	switch {
	case alg.IsDilithium() && secret:
		return dilithium_exdsa.PrivateKeySize(alg)
	case alg.IsDilithium():
		return dilithium_exdsa.PublicKeySize(alg)
	case alg.IsKyber() && secret:
		return kyber_ecdh.PrivateKeySize(alg)
	case alg.IsKyber():
		return kyber_ecdh.PublicKeySize(alg)
	case alg == packet.PubKeyAlgoX25519:
		return x25519.KeySize, nil
	case alg == packet.PubKeyAlgoX448:
		return x448.KeySize, nil
	case alg == packet.PubKeyAlgoEd25519 && secret:
		return ed25519.SeedSize, nil
	case alg == packet.PubKeyAlgoEd25519:
		return ed25519.PointSize, nil
	case alg == packet.PubKeyAlgoEd448 && secret:
		return ed448.SeedSize, nil
	case alg == packet.PubKeyAlgoEd448:
		return ed448.PointSize, nil
	default:
		return 0, errors.UnknownAlgorithmError("openpgp", uint8(alg))
	}
}

// SignatureSize returns the length of an encoded signature of alg.
func SignatureSize(alg packet.PublicKeyAlgorithm) (int, error) {
	switch {
	case alg.IsDilithium():
		return dilithium_exdsa.SignatureSize(alg)
	case alg == packet.PubKeyAlgoEd25519:
		return ed25519.SignatureSize, nil
	case alg == packet.PubKeyAlgoEd448:
		return ed448.SignatureSize, nil
	default:
		return 0, errors.UnknownAlgorithmError("openpgp", uint8(alg))
	}
}

// digest hashes message, canonicalizing line endings first in text mode.
func digest(message io.Reader, textMode bool, h crypto.Hash) ([]byte, error) {
	newHash, ok := signatureHashes[h]
	if !ok {
		return nil, errors.InvalidArgumentError("unsupported signature hash " + h.String())
	}
	w := newHash()
	if textMode {
		w = NewCanonicalTextHash(w)
	}
	if _, err := io.Copy(w, message); err != nil {
		return nil, err
	}
	return w.Sum(nil), nil
}

// Sign hashes message with the hash of config and signs the digest with
// both components of priv.
func Sign(priv *dilithium_exdsa.PrivateKey, message io.Reader, textMode bool, config *packet.Config) (*dilithium_exdsa.Signature, error) {
	if !priv.IsInitialized() {
		return nil, errors.ErrKeyNotInitialized
	}
	d, err := digest(message, textMode, config.Hash())
	if err != nil {
		return nil, err
	}
	return priv.Sign(config.Random(), d)
}

// Verify hashes message with h and checks sig against the digest.
func Verify(pub *dilithium_exdsa.PublicKey, message io.Reader, textMode bool, h crypto.Hash, sig *dilithium_exdsa.Signature) error {
	if !pub.IsInitialized() {
		return errors.ErrKeyNotInitialized
	}
	d, err := digest(message, textMode, h)
	if err != nil {
		return err
	}
	return pub.Verify(d, sig)
}

// EncryptSessionKey wraps sessionKey for a Kyber + ECDH public key.
func EncryptSessionKey(pub *kyber_ecdh.PublicKey, sessionKey []byte, config *packet.Config) ([]byte, error) {
	ct, err := kyber_ecdh.Encrypt(config.Random(), pub, sessionKey)
	if err != nil {
		return nil, err
	}
	return ct.Encode()
}

// DecryptSessionKey recovers a session key wrapped by EncryptSessionKey.
func DecryptSessionKey(priv *kyber_ecdh.PrivateKey, encrypted []byte) ([]byte, error) {
	if !priv.IsInitialized() {
		return nil, errors.ErrKeyNotInitialized
	}
	ct, err := kyber_ecdh.ParseCiphertext(encrypted, priv.AlgId)
	if err != nil {
		return nil, err
	}
	return kyber_ecdh.Decrypt(priv, ct)
}
