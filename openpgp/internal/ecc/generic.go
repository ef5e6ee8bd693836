// Package ecc implements a generic interface for ECDH, ECDSA, and EdDSA.
package ecc

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/subtle"
	goerrors "errors"
	"fmt"
	"io"
	"math/big"

	"github.com/openpgp-pqc/go-crypto/openpgp/errors"
)

type genericCurve struct {
	Curve elliptic.Curve
}

func NewGenericCurve(c elliptic.Curve) *genericCurve {
	return &genericCurve{
		Curve: c,
	}
}

func (c *genericCurve) GetCurveName() string {
	return c.Curve.Params().Name
}

func (c *genericCurve) FieldByteLength() int {
	return (c.Curve.Params().BitSize + 7) >> 3
}

func (c *genericCurve) MarshalIntegerPoint(x, y *big.Int) []byte {
	return elliptic.Marshal(c.Curve, x, y)
}

// UnmarshalIntegerPoint returns nil if the point is not on the curve.
func (c *genericCurve) UnmarshalIntegerPoint(point []byte) (x, y *big.Int) {
	return elliptic.Unmarshal(c.Curve, point)
}

func (c *genericCurve) MarshalFieldInteger(d *big.Int) []byte {
	return d.FillBytes(make([]byte, c.FieldByteLength()))
}

// UnmarshalFieldInteger returns nil unless d has exactly the field length
// and encodes a scalar in [1, N-1].
func (c *genericCurve) UnmarshalFieldInteger(d []byte) *big.Int {
	if len(d) != c.FieldByteLength() {
		return nil
	}
	k := new(big.Int).SetBytes(d)
	if k.Sign() == 0 || k.Cmp(c.Curve.Params().N) >= 0 {
		return nil
	}
	return k
}

func (c *genericCurve) PublicFromSecret(d *big.Int) (x, y *big.Int) {
	return c.Curve.ScalarBaseMult(c.MarshalFieldInteger(d))
}

func (c *genericCurve) GenerateECDH(rand io.Reader) (point []byte, secret []byte, err error) {
	d, x, y, err := elliptic.GenerateKey(c.Curve, rand)
	if err != nil {
		return nil, nil, err
	}
	secret = make([]byte, c.FieldByteLength())
	copy(secret[len(secret)-len(d):], d)
	return elliptic.Marshal(c.Curve, x, y), secret, nil
}

func (c *genericCurve) GenerateECDSA(rand io.Reader) (x, y, secret *big.Int, err error) {
	priv, err := ecdsa.GenerateKey(c.Curve, rand)
	if err != nil {
		return
	}

	return priv.X, priv.Y, priv.D, nil
}

func (c *genericCurve) Encaps(rand io.Reader, point []byte) (ephemeral, sharedSecret []byte, err error) {
	xP, yP := elliptic.Unmarshal(c.Curve, point)
	if xP == nil {
		return nil, nil, goerrors.New("ecc: invalid public point")
	}

	d, x, y, err := elliptic.GenerateKey(c.Curve, rand)
	if err != nil {
		return nil, nil, err
	}

	vsG := elliptic.Marshal(c.Curve, x, y)
	zbBig, _ := c.Curve.ScalarMult(xP, yP, d)

	return vsG, zbBig.FillBytes(make([]byte, c.FieldByteLength())), nil
}

func (c *genericCurve) Decaps(ephemeral, secret []byte) (sharedSecret []byte, err error) {
	x, y := elliptic.Unmarshal(c.Curve, ephemeral)
	if x == nil {
		return nil, goerrors.New("ecc: invalid ephemeral point")
	}
	zbBig, _ := c.Curve.ScalarMult(x, y, secret)

	return zbBig.FillBytes(make([]byte, c.FieldByteLength())), nil
}

func (c *genericCurve) Sign(rand io.Reader, x, y, d *big.Int, hash []byte) (r, s *big.Int, err error) {
	if x == nil || y == nil {
		x, y = c.PublicFromSecret(d)
	}
	priv := &ecdsa.PrivateKey{D: d, PublicKey: ecdsa.PublicKey{X: x, Y: y, Curve: c.Curve}}
	return ecdsa.Sign(rand, priv, hash)
}

func (c *genericCurve) Verify(x, y *big.Int, hash []byte, r, s *big.Int) bool {
	if x == nil || y == nil || r == nil || s == nil {
		return false
	}
	pub := &ecdsa.PublicKey{X: x, Y: y, Curve: c.Curve}
	return ecdsa.Verify(pub, hash, r, s)
}

func (c *genericCurve) ValidateECDSA(xP, yP *big.Int, secret []byte) error {
	return c.validate(xP, yP, secret)
}

func (c *genericCurve) ValidateECDH(point []byte, secret []byte) error {
	xP, yP := elliptic.Unmarshal(c.Curve, point)
	if xP == nil {
		return errors.KeyInvalidError(fmt.Sprintf("ecc (%s): invalid point", c.Curve.Params().Name))
	}

	return c.validate(xP, yP, secret)
}

func (c *genericCurve) validate(xP, yP *big.Int, secret []byte) error {
	// the public point should not be at infinity (0,0)
	zero := new(big.Int)
	if xP.Cmp(zero) == 0 && yP.Cmp(zero) == 0 {
		return errors.KeyInvalidError(fmt.Sprintf("ecc (%s): infinity point", c.Curve.Params().Name))
	}

	// re-derive the public point Q' = (X,Y) = dG
	// to compare to declared Q in public key
	expectedX, expectedY := c.Curve.ScalarBaseMult(secret)
	expected := elliptic.Marshal(c.Curve, expectedX, expectedY)
	declared := elliptic.Marshal(c.Curve, xP, yP)
	if subtle.ConstantTimeCompare(expected, declared) == 0 {
		return errors.KeyInvalidError(fmt.Sprintf("ecc (%s): invalid point", c.Curve.Params().Name))
	}

	return nil
}
