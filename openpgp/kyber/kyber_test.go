package kyber_test

import (
	"bytes"
	"crypto/rand"
	goerrors "errors"
	"testing"

	"github.com/openpgp-pqc/go-crypto/openpgp/errors"
	"github.com/openpgp-pqc/go-crypto/openpgp/kyber"
)

var parameterSets = map[string]kyber.ParameterSet{
	"Kyber768":  kyber.Kyber768,
	"Kyber1024": kyber.Kyber1024,
}

func TestEncapsulateDecapsulate(t *testing.T) {
	for name, set := range parameterSets {
		t.Run(name, func(t *testing.T) {
			priv, pub, err := kyber.GenerateKey(rand.Reader, set)
			if err != nil {
				t.Fatal(err)
			}
			shareSize, _ := set.SharedSecretSize()
			ctSize, _ := set.CiphertextSize()

			result, err := pub.Encapsulate(rand.Reader)
			if err != nil {
				t.Fatal(err)
			}
			if len(result.SharedSecret) != shareSize {
				t.Fatalf("shared secret length %d, want %d", len(result.SharedSecret), shareSize)
			}
			if len(result.Ciphertext) != ctSize {
				t.Fatalf("ciphertext length %d, want %d", len(result.Ciphertext), ctSize)
			}

			decapsulated, err := priv.Decapsulate(result.Ciphertext)
			if err != nil {
				t.Fatal(err)
			}
			if !bytes.Equal(decapsulated, result.SharedSecret) {
				t.Fatal("decapsulated secret differs")
			}

			// Implicit rejection: a modified ciphertext gives a different secret.
			tampered := append([]byte(nil), result.Ciphertext...)
			tampered[3] ^= 0x40
			forged, err := priv.Decapsulate(tampered)
			if err != nil {
				t.Fatal(err)
			}
			if bytes.Equal(forged, result.SharedSecret) {
				t.Fatal("tampered ciphertext produced the same secret")
			}

			var decapErr errors.DecapsulationError
			if _, err := priv.Decapsulate(result.Ciphertext[1:]); !goerrors.As(err, &decapErr) {
				t.Fatalf("expected DecapsulationError, got %v", err)
			}
			if _, err := priv.Decapsulate(append(result.Ciphertext, 0)); !goerrors.As(err, &decapErr) {
				t.Fatalf("expected DecapsulationError, got %v", err)
			}
		})
	}
}

func TestEncodeDecode(t *testing.T) {
	for name, set := range parameterSets {
		t.Run(name, func(t *testing.T) {
			priv, pub, err := kyber.GenerateKey(rand.Reader, set)
			if err != nil {
				t.Fatal(err)
			}
			privBytes, err := priv.Encode()
			if err != nil {
				t.Fatal(err)
			}
			pubBytes, err := pub.Encode()
			if err != nil {
				t.Fatal(err)
			}
			pkSize, _ := set.PublicKeySize()
			skSize, _ := set.PrivateKeySize()
			if len(pubBytes) != pkSize || len(privBytes) != skSize {
				t.Fatal("encoded key has wrong size")
			}

			parsedPriv, err := kyber.NewPrivateKey(privBytes, set)
			if err != nil {
				t.Fatal(err)
			}
			parsedPub, err := kyber.NewPublicKey(pubBytes, set)
			if err != nil {
				t.Fatal(err)
			}
			if err := kyber.Validate(parsedPriv, parsedPub); err != nil {
				t.Fatalf("valid key marked as invalid: %s", err)
			}

			result, err := parsedPub.Encapsulate(rand.Reader)
			if err != nil {
				t.Fatal(err)
			}
			ss, err := priv.Decapsulate(result.Ciphertext)
			if err != nil {
				t.Fatal(err)
			}
			if !bytes.Equal(ss, result.SharedSecret) {
				t.Fatal("parsed public key does not match private key")
			}

			var structErr errors.StructuralError
			if _, err := kyber.NewPublicKey(pubBytes[1:], set); !goerrors.As(err, &structErr) {
				t.Fatalf("expected StructuralError, got %v", err)
			}
			if _, err := kyber.NewPrivateKey(append(privBytes, 0), set); !goerrors.As(err, &structErr) {
				t.Fatalf("expected StructuralError, got %v", err)
			}

			_, otherPub, err := kyber.GenerateKey(rand.Reader, set)
			if err != nil {
				t.Fatal(err)
			}
			if err := kyber.Validate(priv, otherPub); err == nil {
				t.Fatal("failed to detect invalid key")
			}
		})
	}
}

func TestNotInitialized(t *testing.T) {
	var priv kyber.PrivateKey
	var pub kyber.PublicKey

	if _, err := pub.Encapsulate(rand.Reader); err != errors.ErrKeyNotInitialized {
		t.Errorf("Encapsulate on empty key: %v", err)
	}
	if _, err := priv.Decapsulate(make([]byte, 1088)); err != errors.ErrKeyNotInitialized {
		t.Errorf("Decapsulate on empty key: %v", err)
	}
	if _, err := pub.Encode(); err != errors.ErrKeyNotInitialized {
		t.Errorf("Encode on empty key: %v", err)
	}

	key, _, err := kyber.GenerateKey(rand.Reader, kyber.Kyber768)
	if err != nil {
		t.Fatal(err)
	}
	clone := key.Clone()
	key.SecureClear()
	if _, err := key.Decapsulate(make([]byte, 1088)); err != errors.ErrKeyNotInitialized {
		t.Errorf("Decapsulate after clear: %v", err)
	}
	if _, err := key.Encode(); err != errors.ErrKeyNotInitialized {
		t.Errorf("Encode after clear: %v", err)
	}
	if !clone.IsInitialized() {
		t.Error("clone was cleared with the original")
	}
}

func TestUnsupportedParameterSet(t *testing.T) {
	var paramErr errors.InvalidParameterError
	if _, _, err := kyber.GenerateKey(rand.Reader, kyber.ParameterSet(7)); !goerrors.As(err, &paramErr) {
		t.Errorf("expected InvalidParameterError, got %v", err)
	}
}
