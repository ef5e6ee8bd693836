// Package ecc implements a generic interface for ECDH, ECDSA, and EdDSA.
package ecc

import (
	"crypto/subtle"
	goerrors "errors"
	"io"

	x25519lib "github.com/cloudflare/circl/dh/x25519"
	"github.com/openpgp-pqc/go-crypto/openpgp/errors"
)

// curve25519 implements X25519 on native little-endian encodings, as used by
// the composite KEMs.
type curve25519 struct{}

func NewCurve25519() *curve25519 {
	return &curve25519{}
}

func (c *curve25519) GetCurveName() string {
	return "curve25519"
}

// generateKeyPairBytes Generates a private-public key-pair.
// 'priv' is a private key; a little-endian scalar belonging to the set
// 2^{254} + 8 * [0, 2^{251}), in order to avoid the small subgroup of the
// curve. 'pub' is simply 'priv' * G where G is the base point.
// See https://cr.yp.to/ecdh.html and RFC7748, sec 5.
func (c *curve25519) generateKeyPairBytes(rand io.Reader) (priv, pub x25519lib.Key, err error) {
	_, err = io.ReadFull(rand, priv[:])
	if err != nil {
		return
	}

	// This masking is done internally to KeyGen and so is unnecessary
	// for security, but OpenPGP implementations require that private keys be
	// pre-masked.
	priv[0] &= 248
	priv[31] &= 127
	priv[31] |= 64

	x25519lib.KeyGen(&pub, &priv)
	return
}

func (c *curve25519) GenerateECDH(rand io.Reader) (point []byte, secret []byte, err error) {
	priv, pub, err := c.generateKeyPairBytes(rand)
	if err != nil {
		return nil, nil, err
	}

	return pub[:], priv[:], nil
}

func (c *curve25519) Encaps(rand io.Reader, point []byte) (ephemeral, sharedSecret []byte, err error) {
	if len(point) != x25519lib.Size {
		return nil, nil, goerrors.New("ecc: invalid curve25519 public point")
	}

	ephemeralPrivate, ephemeralPublic, err := c.generateKeyPairBytes(rand)
	if err != nil {
		return nil, nil, err
	}

	var pubKey, sharedPoint x25519lib.Key
	copy(pubKey[:], point)
	if !x25519lib.Shared(&sharedPoint, &ephemeralPrivate, &pubKey) {
		return nil, nil, goerrors.New("ecc: invalid curve25519 public point")
	}

	return ephemeralPublic[:], sharedPoint[:], nil
}

func (c *curve25519) Decaps(ephemeral, secret []byte) (sharedSecret []byte, err error) {
	if len(ephemeral) != x25519lib.Size || len(secret) != x25519lib.Size {
		return nil, goerrors.New("ecc: invalid curve25519 key")
	}

	var ephemeralPublic, decodedPrivate, sharedPoint x25519lib.Key
	copy(ephemeralPublic[:], ephemeral)
	copy(decodedPrivate[:], secret)

	if !x25519lib.Shared(&sharedPoint, &decodedPrivate, &ephemeralPublic) {
		return nil, goerrors.New("ecc: invalid curve25519 ephemeral point")
	}

	return sharedPoint[:], nil
}

func (c *curve25519) ValidateECDH(point []byte, secret []byte) (err error) {
	if len(secret) != x25519lib.Size {
		return errors.KeyInvalidError("ecc: invalid curve25519 secret")
	}

	var pk, sk x25519lib.Key
	copy(sk[:], secret)
	x25519lib.KeyGen(&pk, &sk)

	if subtle.ConstantTimeCompare(point, pk[:]) == 0 {
		return errors.KeyInvalidError("ecc: invalid curve25519 public point")
	}

	return nil
}
