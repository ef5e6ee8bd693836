// Package ed448 implements the ed448 signature algorithm for OpenPGP
// as defined in the Open PGP crypto refresh.
package ed448

import (
	"crypto/subtle"
	"io"

	ed448lib "github.com/cloudflare/circl/sign/ed448"
	"github.com/openpgp-pqc/go-crypto/openpgp/errors"
	"github.com/openpgp-pqc/go-crypto/openpgp/internal/ecc"
)

const PointSize = ed448lib.PublicKeySize
const SeedSize = ed448lib.SeedSize
const PrivateKeySize = ed448lib.PrivateKeySize
const SignatureSize = ed448lib.SignatureSize

type PublicKey struct {
	Point []byte
}

type PrivateKey struct {
	PublicKey
	Key []byte // encoded as seed | pub key point
}

// NewPublicKey checks that point is a canonical curve point and copies it.
func NewPublicKey(point []byte) (*PublicKey, error) {
	if err := ecc.NewEd448().ValidatePoint(point); err != nil {
		return nil, err
	}
	return &PublicKey{Point: append([]byte(nil), point...)}, nil
}

func NewPrivateKey(key PublicKey) *PrivateKey {
	return &PrivateKey{
		PublicKey: key,
	}
}

func (pk *PrivateKey) Seed() []byte {
	return pk.Key[:SeedSize]
}

// MarshalByteSecret returns the underlying 57 byte seed of the private key
func (pk *PrivateKey) MarshalByteSecret() []byte {
	return pk.Seed()
}

// UnmarshalByteSecret computes the private key from the secret seed
// and stores it in the private key object.
func (sk *PrivateKey) UnmarshalByteSecret(seed []byte) error {
	if len(seed) != SeedSize {
		return errors.StructuralError("ed448: wrong seed length")
	}
	sk.Key = ed448lib.NewKeyFromSeed(seed)
	return nil
}

func (pk *PrivateKey) IsInitialized() bool {
	return pk != nil && len(pk.Key) == PrivateKeySize && len(pk.Point) == PointSize
}

// SecureClear zeroes the secret key material.
func (pk *PrivateKey) SecureClear() {
	if pk == nil {
		return
	}
	clear(pk.Key)
	pk.Key = nil
}

func GenerateKey(rand io.Reader) (*PrivateKey, error) {
	publicKey, privateKey, err := ed448lib.GenerateKey(rand)
	if err != nil {
		return nil, errors.NewProviderError("ed448: key generation", err)
	}
	privateKeyOut := new(PrivateKey)
	privateKeyOut.PublicKey.Point = publicKey[:]
	privateKeyOut.Key = privateKey[:]
	return privateKeyOut, nil
}

// Sign signs a message with the ed448 algorithm.
func Sign(priv *PrivateKey, message []byte) ([]byte, error) {
	if !priv.IsInitialized() {
		return nil, errors.ErrKeyNotInitialized
	}
	// Ed448 is used with the empty string as a context string.
	// See https://datatracker.ietf.org/doc/html/draft-ietf-openpgp-crypto-refresh-08#section-13.7
	return ed448lib.Sign(priv.Key, message, ""), nil
}

// Verify verifies a ed448 signature
func Verify(pub *PublicKey, message []byte, signature []byte) bool {
	if pub == nil || len(pub.Point) != PointSize || len(signature) != SignatureSize {
		return false
	}
	return ed448lib.Verify(pub.Point, message, signature, "")
}

// Validate checks if the ed448 private key is valid
func Validate(priv *PrivateKey) error {
	if !priv.IsInitialized() {
		return errors.ErrKeyNotInitialized
	}
	expectedPrivateKey := ed448lib.NewKeyFromSeed(priv.Seed())
	if subtle.ConstantTimeCompare(priv.Key, expectedPrivateKey) == 0 {
		return errors.KeyInvalidError("ed448: invalid ed448 secret")
	}
	if subtle.ConstantTimeCompare(priv.PublicKey.Point, expectedPrivateKey[SeedSize:]) == 0 {
		return errors.KeyInvalidError("ed448: invalid ed448 public key")
	}
	return nil
}

// ENCODING/DECODING signature:

func WriteSignature(writer io.Writer, signature []byte) error {
	_, err := writer.Write(signature)
	return err
}

func ReadSignature(reader io.Reader) ([]byte, error) {
	signature := make([]byte, SignatureSize)
	if _, err := io.ReadFull(reader, signature); err != nil {
		return nil, errors.StructuralError("ed448: short signature")
	}
	return signature, nil
}
