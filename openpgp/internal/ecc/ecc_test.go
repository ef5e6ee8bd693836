// Package ecc implements a generic interface for ECDH, ECDSA, and EdDSA.
package ecc

import (
	"bytes"
	"crypto/rand"
	"io"
	"testing"
)

var ecdsaCurves = []string{"P256", "P384", "P521", "BrainpoolP256", "BrainpoolP384", "BrainpoolP512"}

var ecdhCurves = []string{"Curve25519", "Curve448", "P256", "P384", "BrainpoolP256", "BrainpoolP384"}

func TestECDSASignVerify(t *testing.T) {
	digest := make([]byte, 32)
	if _, err := io.ReadFull(rand.Reader, digest); err != nil {
		t.Fatal(err)
	}

	for _, name := range ecdsaCurves {
		t.Run(name, func(t *testing.T) {
			c := FindECDSAByGenName(name)
			if c == nil {
				t.Fatalf("curve %s not found", name)
			}

			x, y, d, err := c.GenerateECDSA(rand.Reader)
			if err != nil {
				t.Fatal(err)
			}

			// signing without the public point derives it
			r, s, err := c.Sign(rand.Reader, nil, nil, d, digest)
			if err != nil {
				t.Fatalf("error signing: %s", err)
			}
			if !c.Verify(x, y, digest, r, s) {
				t.Error("unable to verify message")
			}

			digest[0] ^= 1
			if c.Verify(x, y, digest, r, s) {
				t.Error("signature should be invalid")
			}
			digest[0] ^= 1

			if err := c.ValidateECDSA(x, y, c.MarshalFieldInteger(d)); err != nil {
				t.Fatalf("valid key marked as invalid: %s", err)
			}
			x2, y2, _, err := c.GenerateECDSA(rand.Reader)
			if err != nil {
				t.Fatal(err)
			}
			if err := c.ValidateECDSA(x2, y2, c.MarshalFieldInteger(d)); err == nil {
				t.Fatal("failed to detect invalid key")
			}
		})
	}
}

func TestECDSAFixedWidthEncoding(t *testing.T) {
	for _, name := range ecdsaCurves {
		t.Run(name, func(t *testing.T) {
			c := FindECDSAByGenName(name)
			x, y, d, err := c.GenerateECDSA(rand.Reader)
			if err != nil {
				t.Fatal(err)
			}

			point := c.MarshalIntegerPoint(x, y)
			if len(point) != 2*c.FieldByteLength()+1 || point[0] != 0x04 {
				t.Fatalf("unexpected point encoding of length %d", len(point))
			}
			px, py := c.UnmarshalIntegerPoint(point)
			if px == nil || px.Cmp(x) != 0 || py.Cmp(y) != 0 {
				t.Fatal("failed to marshal/unmarshal point correctly")
			}

			secret := c.MarshalFieldInteger(d)
			if len(secret) != c.FieldByteLength() {
				t.Fatalf("unexpected secret length %d", len(secret))
			}
			if parsed := c.UnmarshalFieldInteger(secret); parsed == nil || parsed.Cmp(d) != 0 {
				t.Fatal("failed to marshal/unmarshal secret correctly")
			}
			if c.UnmarshalFieldInteger(secret[1:]) != nil {
				t.Fatal("short scalar accepted")
			}
			if c.UnmarshalFieldInteger(make([]byte, c.FieldByteLength())) != nil {
				t.Fatal("zero scalar accepted")
			}

			point[len(point)-1] ^= 1
			if px, _ := c.UnmarshalIntegerPoint(point); px != nil {
				t.Fatal("point off the curve accepted")
			}
		})
	}
}

func TestEdDSASignVerify(t *testing.T) {
	message := []byte("composite message")
	for _, name := range []string{"Ed25519", "Ed448"} {
		t.Run(name, func(t *testing.T) {
			c := FindEdDSAByGenName(name)
			if c == nil {
				t.Fatalf("curve %s not found", name)
			}
			pub, priv, err := c.GenerateEdDSA(rand.Reader)
			if err != nil {
				t.Fatal(err)
			}

			derived, err := c.PublicFromSecret(priv)
			if err != nil {
				t.Fatal(err)
			}
			if !bytes.Equal(derived, pub) {
				t.Fatal("derived public key differs")
			}

			sig, err := c.Sign(priv, message)
			if err != nil {
				t.Fatalf("error signing: %s", err)
			}
			if !c.Verify(pub, message, sig) {
				t.Error("unable to verify message")
			}
			sig[0] ^= 1
			if c.Verify(pub, message, sig) {
				t.Error("signature should be invalid")
			}
			if c.Verify(pub, message, sig[1:]) {
				t.Error("short signature should be invalid")
			}

			if err := c.ValidateEdDSA(pub, priv); err != nil {
				t.Fatalf("valid key marked as invalid: %s", err)
			}
			pub[0] ^= 1
			if err := c.ValidateEdDSA(pub, priv); err == nil {
				t.Fatal("failed to detect invalid key")
			}
		})
	}
}

func TestEdDSAValidatePoint(t *testing.T) {
	for _, name := range []string{"Ed25519", "Ed448"} {
		t.Run(name, func(t *testing.T) {
			c := FindEdDSAByGenName(name)
			pub, _, err := c.GenerateEdDSA(rand.Reader)
			if err != nil {
				t.Fatal(err)
			}
			if err := c.ValidatePoint(pub); err != nil {
				t.Fatalf("generated point rejected: %s", err)
			}
			if err := c.ValidatePoint(pub[1:]); err == nil {
				t.Error("short point accepted")
			}
			if err := c.ValidatePoint(bytes.Repeat([]byte{0xff}, len(pub))); err == nil {
				t.Error("all-ones point accepted")
			}
		})
	}

	// y = p is the non-canonical encoding of y = 0.
	if err := NewEd25519().ValidatePoint(ed25519P[:]); err == nil {
		t.Error("non-canonical ed25519 point accepted")
	}
	padded := make([]byte, 57)
	padded[0] = 1
	padded[56] = 0x01
	if err := NewEd448().ValidatePoint(padded); err == nil {
		t.Error("ed448 point with padding bits set accepted")
	}
}

func TestECDHEncapsDecaps(t *testing.T) {
	for _, name := range ecdhCurves {
		t.Run(name, func(t *testing.T) {
			c := FindECDHByGenName(name)
			if c == nil {
				t.Fatalf("curve %s not found", name)
			}
			point, secret, err := c.GenerateECDH(rand.Reader)
			if err != nil {
				t.Fatal(err)
			}

			ephemeral, shared, err := c.Encaps(rand.Reader, point)
			if err != nil {
				t.Fatal(err)
			}
			decapsulated, err := c.Decaps(ephemeral, secret)
			if err != nil {
				t.Fatal(err)
			}
			if !bytes.Equal(shared, decapsulated) {
				t.Errorf("shared secret mismatch: %x vs %x", shared, decapsulated)
			}

			if err := c.ValidateECDH(point, secret); err != nil {
				t.Fatalf("valid key marked as invalid: %s", err)
			}
			otherPoint, _, err := c.GenerateECDH(rand.Reader)
			if err != nil {
				t.Fatal(err)
			}
			if err := c.ValidateECDH(otherPoint, secret); err == nil {
				t.Fatal("failed to detect invalid key")
			}
		})
	}
}

// Some OpenPGP implementations, such as gpg 2.2.12, do not accept ECDH private
// keys if they're not masked. This test checks if the keys that this library
// stores or outputs are properly masked.
func TestGenerateMaskedPrivateKeyX25519(t *testing.T) {
	c := NewCurve25519()
	_, secret, err := c.GenerateECDH(rand.Reader)
	if err != nil {
		t.Fatal(err)
	}

	// 3 lsb are 0
	if secret[0]<<5 != 0 {
		t.Fatalf("Priv. key is not masked (3 lsb should be unset): %X", secret)
	}
	// MSB is 0
	if secret[31]>>7 != 0 {
		t.Fatalf("Priv. key is not masked (MSB should be unset): %X", secret)
	}
	// Second-MSB is 1
	if secret[31]>>6 != 1 {
		t.Fatalf("Priv. key is not masked (second MSB should be set): %X", secret)
	}
}

func TestUnknownCurve(t *testing.T) {
	if FindByName("secp256k1") != nil {
		t.Error("unexpected curve")
	}
	if FindECDSAByGenName("Ed25519") != nil {
		t.Error("Ed25519 is not an ECDSA curve")
	}
	if FindEdDSAByGenName("P256") != nil {
		t.Error("P256 is not an EdDSA curve")
	}
	if FindECDHByGenName("Ed448") != nil {
		t.Error("Ed448 is not an ECDH curve")
	}
}
