// Package ecc implements a generic interface for ECDH, ECDSA, and EdDSA.
package ecc

import (
	"io"
	"math/big"
)

type Curve interface {
	GetCurveName() string
}

// ECDSACurve signs with fixed-width integer encodings: points are SEC1
// uncompressed, scalars are left-padded to the field size.
type ECDSACurve interface {
	Curve
	FieldByteLength() int
	MarshalIntegerPoint(x, y *big.Int) []byte
	UnmarshalIntegerPoint([]byte) (x, y *big.Int)
	MarshalFieldInteger(d *big.Int) []byte
	UnmarshalFieldInteger([]byte) *big.Int
	PublicFromSecret(d *big.Int) (x, y *big.Int)
	GenerateECDSA(rand io.Reader) (x, y, secret *big.Int, err error)
	Sign(rand io.Reader, x, y, d *big.Int, hash []byte) (r, s *big.Int, err error)
	Verify(x, y *big.Int, hash []byte, r, s *big.Int) bool
	ValidateECDSA(x, y *big.Int, secret []byte) error
}

// EdDSACurve works on native encodings: the private key is the seed.
type EdDSACurve interface {
	Curve
	GenerateEdDSA(rand io.Reader) (pub, priv []byte, err error)
	PublicFromSecret(priv []byte) ([]byte, error)
	Sign(privateKey, message []byte) (sig []byte, err error)
	Verify(publicKey, message, sig []byte) bool
	// ValidatePoint fails unless publicKey is a canonical point encoding.
	ValidatePoint(publicKey []byte) error
	ValidateEdDSA(publicKey, privateKey []byte) error
}

type ECDHCurve interface {
	Curve
	GenerateECDH(rand io.Reader) (point []byte, secret []byte, err error)
	Encaps(rand io.Reader, point []byte) (ephemeral, sharedSecret []byte, err error)
	Decaps(ephemeral, secret []byte) (sharedSecret []byte, err error)
	ValidateECDH(point []byte, secret []byte) error
}
