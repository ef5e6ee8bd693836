// Package ecc implements a generic interface for ECDH, ECDSA, and EdDSA.
package ecc

import (
	"crypto/subtle"
	goerrors "errors"
	"io"

	x448lib "github.com/cloudflare/circl/dh/x448"
	"github.com/openpgp-pqc/go-crypto/openpgp/errors"
)

type x448 struct{}

func NewX448() *x448 {
	return &x448{}
}

func (c *x448) GetCurveName() string {
	return "x448"
}

func (c *x448) generateKeyPairBytes(rand io.Reader) (sk, pk x448lib.Key, err error) {
	if _, err = io.ReadFull(rand, sk[:]); err != nil {
		return
	}

	x448lib.KeyGen(&pk, &sk)
	return
}

func (c *x448) GenerateECDH(rand io.Reader) (point []byte, secret []byte, err error) {
	priv, pub, err := c.generateKeyPairBytes(rand)
	if err != nil {
		return nil, nil, err
	}

	return pub[:], priv[:], nil
}

func (c *x448) Encaps(rand io.Reader, point []byte) (ephemeral, sharedSecret []byte, err error) {
	if len(point) != x448lib.Size {
		return nil, nil, goerrors.New("ecc: invalid x448 public point")
	}

	ephemeralPrivate, ephemeralPublic, err := c.generateKeyPairBytes(rand)
	if err != nil {
		return nil, nil, err
	}

	var pk, ss x448lib.Key
	copy(pk[:], point)
	if !x448lib.Shared(&ss, &ephemeralPrivate, &pk) {
		return nil, nil, goerrors.New("ecc: invalid x448 public point")
	}

	return ephemeralPublic[:], ss[:], nil
}

func (c *x448) Decaps(ephemeral, secret []byte) (sharedSecret []byte, err error) {
	if len(ephemeral) != x448lib.Size || len(secret) != x448lib.Size {
		return nil, goerrors.New("ecc: invalid x448 key")
	}

	var ecPk, ecSk, ss x448lib.Key
	copy(ecPk[:], ephemeral)
	copy(ecSk[:], secret)

	if !x448lib.Shared(&ss, &ecSk, &ecPk) {
		return nil, goerrors.New("ecc: invalid x448 ephemeral point")
	}

	return ss[:], nil
}

func (c *x448) ValidateECDH(point []byte, secret []byte) error {
	if len(secret) != x448lib.Size {
		return errors.KeyInvalidError("ecc: invalid x448 secret")
	}

	var sk, pk, expectedPk x448lib.Key
	copy(pk[:], point)
	copy(sk[:], secret)
	x448lib.KeyGen(&expectedPk, &sk)

	if subtle.ConstantTimeCompare(expectedPk[:], pk[:]) == 0 || len(point) != x448lib.Size {
		return errors.KeyInvalidError("ecc: invalid x448 public point")
	}

	return nil
}
