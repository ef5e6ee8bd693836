// Package ecc implements a generic interface for ECDH, ECDSA, and EdDSA.
package ecc

import (
	"crypto/subtle"
	goerrors "errors"
	"io"

	"filippo.io/edwards25519"
	"github.com/openpgp-pqc/go-crypto/openpgp/errors"
	ed25519lib "golang.org/x/crypto/ed25519"
)

const ed25519Size = 32

type ed25519 struct{}

func NewEd25519() *ed25519 {
	return &ed25519{}
}

func (c *ed25519) GetCurveName() string {
	return "ed25519"
}

func (c *ed25519) GenerateEdDSA(rand io.Reader) (pub, priv []byte, err error) {
	pk, sk, err := ed25519lib.GenerateKey(rand)

	if err != nil {
		return nil, nil, err
	}

	return pk, sk[:ed25519Size], nil
}

func (c *ed25519) PublicFromSecret(priv []byte) ([]byte, error) {
	if len(priv) != ed25519lib.SeedSize {
		return nil, goerrors.New("ecc: invalid ed25519 secret length")
	}
	sk := ed25519lib.NewKeyFromSeed(priv)
	return append([]byte(nil), sk[ed25519lib.SeedSize:]...), nil
}

func (c *ed25519) Sign(privateKey, message []byte) (sig []byte, err error) {
	if len(privateKey) != ed25519lib.SeedSize {
		return nil, goerrors.New("ecc: invalid ed25519 secret length")
	}
	return ed25519lib.Sign(ed25519lib.NewKeyFromSeed(privateKey), message), nil
}

func (c *ed25519) Verify(publicKey, message, sig []byte) bool {
	if len(publicKey) != ed25519lib.PublicKeySize || len(sig) != ed25519lib.SignatureSize {
		return false
	}
	return ed25519lib.Verify(publicKey, message, sig)
}

// ed25519P is 2^255 - 19 in little-endian order.
var ed25519P = [ed25519Size]byte{
	0xed, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff,
	0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0x7f,
}

func (c *ed25519) ValidatePoint(publicKey []byte) error {
	if len(publicKey) != ed25519Size {
		return errors.StructuralError("ecc: invalid ed25519 public key length")
	}
	// SetBytes reduces y modulo p, so non-canonical encodings are rejected here.
	for i := ed25519Size - 1; i >= 0; i-- {
		b := publicKey[i]
		if i == ed25519Size-1 {
			b &= 0x7f
		}
		if b < ed25519P[i] {
			break
		}
		if b > ed25519P[i] || i == 0 {
			return errors.StructuralError("ecc: non-canonical ed25519 point")
		}
	}
	if _, err := new(edwards25519.Point).SetBytes(publicKey); err != nil {
		return errors.StructuralError("ecc: invalid ed25519 point")
	}
	return nil
}

func (c *ed25519) ValidateEdDSA(publicKey, privateKey []byte) (err error) {
	expected, err := c.PublicFromSecret(privateKey)
	if err != nil {
		return errors.KeyInvalidError("ecc: invalid ed25519 secret")
	}
	if subtle.ConstantTimeCompare(publicKey, expected) == 0 {
		return errors.KeyInvalidError("ecc: invalid ed25519 public key")
	}
	return nil
}
