// Package ecc implements a generic interface for ECDH, ECDSA, and EdDSA.
package ecc

import (
	"crypto/subtle"
	goerrors "errors"
	"io"

	"github.com/cloudflare/circl/ecc/goldilocks"
	ed448lib "github.com/cloudflare/circl/sign/ed448"
	"github.com/openpgp-pqc/go-crypto/openpgp/errors"
)

type ed448 struct{}

func NewEd448() *ed448 {
	return &ed448{}
}

func (c *ed448) GetCurveName() string {
	return "ed448"
}

func (c *ed448) GenerateEdDSA(rand io.Reader) (pub, priv []byte, err error) {
	pk, sk, err := ed448lib.GenerateKey(rand)

	if err != nil {
		return nil, nil, err
	}

	return pk, sk[:ed448lib.SeedSize], nil
}

func (c *ed448) PublicFromSecret(priv []byte) ([]byte, error) {
	if len(priv) != ed448lib.SeedSize {
		return nil, goerrors.New("ecc: invalid ed448 secret length")
	}
	sk := ed448lib.NewKeyFromSeed(priv)
	return append([]byte(nil), sk[ed448lib.SeedSize:]...), nil
}

func (c *ed448) Sign(privateKey, message []byte) (sig []byte, err error) {
	if len(privateKey) != ed448lib.SeedSize {
		return nil, goerrors.New("ecc: invalid ed448 secret length")
	}
	// Ed448 is used with the empty string as a context string.
	// See https://datatracker.ietf.org/doc/html/draft-ietf-openpgp-crypto-refresh-06#section-13.7
	return ed448lib.Sign(ed448lib.NewKeyFromSeed(privateKey), message, ""), nil
}

func (c *ed448) Verify(publicKey, message, sig []byte) bool {
	if len(publicKey) != ed448lib.PublicKeySize || len(sig) != ed448lib.SignatureSize {
		return false
	}
	return ed448lib.Verify(publicKey, message, sig, "")
}

func (c *ed448) ValidatePoint(publicKey []byte) error {
	if len(publicKey) != ed448lib.PublicKeySize {
		return errors.StructuralError("ecc: invalid ed448 public key length")
	}
	// Only the sign bit of the last byte may be set.
	if publicKey[ed448lib.PublicKeySize-1]&0x7f != 0 {
		return errors.StructuralError("ecc: invalid ed448 point")
	}
	if _, err := goldilocks.FromBytes(publicKey); err != nil {
		return errors.StructuralError("ecc: invalid ed448 point")
	}
	return nil
}

func (c *ed448) ValidateEdDSA(publicKey, privateKey []byte) (err error) {
	expected, err := c.PublicFromSecret(privateKey)
	if err != nil {
		return errors.KeyInvalidError("ecc: invalid ed448 secret")
	}
	if subtle.ConstantTimeCompare(publicKey, expected) == 0 {
		return errors.KeyInvalidError("ecc: invalid ed448 public key")
	}
	return nil
}
