package openpgp

import (
	"bytes"
	"crypto"
	"crypto/rand"
	"crypto/sha256"
	goerrors "errors"
	"strings"
	"testing"

	"github.com/openpgp-pqc/go-crypto/openpgp/dilithium_exdsa"
	"github.com/openpgp-pqc/go-crypto/openpgp/errors"
	"github.com/openpgp-pqc/go-crypto/openpgp/packet"
)

func TestSignVerifyMessage(t *testing.T) {
	config := &packet.Config{Algorithm: packet.PubKeyAlgoDilithium3Ed25519, DefaultHash: crypto.SHA3_256}
	priv, pub, err := GenerateSigningKey(config)
	if err != nil {
		t.Fatal(err)
	}

	sig, err := Sign(priv, strings.NewReader("hello\nworld\n"), true, config)
	if err != nil {
		t.Fatal(err)
	}
	// Text mode signatures ignore the line ending convention.
	if err := Verify(pub, strings.NewReader("hello\r\nworld\r\n"), true, crypto.SHA3_256, sig); err != nil {
		t.Fatalf("canonical text did not verify: %s", err)
	}
	var sigErr errors.SignatureError
	if err := Verify(pub, strings.NewReader("hello\r\nworld\r\n"), false, crypto.SHA3_256, sig); !goerrors.As(err, &sigErr) {
		t.Fatalf("binary mode verified a text signature: %v", err)
	}
	if err := Verify(pub, strings.NewReader("hello\nworld\n"), true, crypto.SHA256, sig); !goerrors.As(err, &sigErr) {
		t.Fatalf("wrong hash verified: %v", err)
	}

	var argErr errors.InvalidArgumentError
	if err := Verify(pub, strings.NewReader(""), false, crypto.SHA1, sig); !goerrors.As(err, &argErr) {
		t.Fatalf("expected InvalidArgumentError for SHA-1, got %v", err)
	}

	size, err := SignatureSize(priv.AlgId)
	if err != nil {
		t.Fatal(err)
	}
	if len(sig.Encode()) != size {
		t.Fatalf("signature size %d, want %d", len(sig.Encode()), size)
	}
}

func TestGenerateRejectsWrongFamily(t *testing.T) {
	var algErr errors.InvalidAlgorithmError
	config := &packet.Config{Algorithm: packet.PubKeyAlgoKyber768X25519, EncryptionAlgorithm: packet.PubKeyAlgoDilithium3P256}
	if _, _, err := GenerateSigningKey(config); !goerrors.As(err, &algErr) {
		t.Errorf("expected InvalidAlgorithmError, got %v", err)
	}
	if _, err := GenerateEncryptionKey(config); !goerrors.As(err, &algErr) {
		t.Errorf("expected InvalidAlgorithmError, got %v", err)
	}
}

func TestSessionKeyRoundTrip(t *testing.T) {
	priv, err := GenerateEncryptionKey(nil)
	if err != nil {
		t.Fatal(err)
	}
	if priv.AlgId != packet.PubKeyAlgoKyber768X25519 {
		t.Fatalf("default encryption algorithm %s", priv.AlgId)
	}
	sessionKey := make([]byte, 32)
	if _, err := rand.Read(sessionKey); err != nil {
		t.Fatal(err)
	}
	encrypted, err := EncryptSessionKey(&priv.PublicKey, sessionKey, nil)
	if err != nil {
		t.Fatal(err)
	}
	decrypted, err := DecryptSessionKey(priv, encrypted)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(decrypted, sessionKey) {
		t.Fatalf("got %x, want %x", decrypted, sessionKey)
	}
}

func TestEncodedSize(t *testing.T) {
	for _, alg := range append(append([]packet.PublicKeyAlgorithm{}, packet.DilithiumAlgorithms...), packet.KyberAlgorithms...) {
		for _, secret := range []bool{false, true} {
			if size, err := EncodedSize(alg, secret); err != nil || size <= 0 {
				t.Errorf("%s (secret %v): size %d, error %v", alg, secret, size, err)
			}
		}
	}
	if size, _ := EncodedSize(packet.PubKeyAlgoX25519, true); size != 32 {
		t.Errorf("X25519 size %d", size)
	}
	if size, _ := EncodedSize(packet.PubKeyAlgoX448, false); size != 56 {
		t.Errorf("X448 size %d", size)
	}

	if size, _ := EncodedSize(packet.PubKeyAlgoEd448, true); size != 57 {
		t.Errorf("Ed448 secret size %d", size)
	}
	for alg, want := range map[packet.PublicKeyAlgorithm]int{packet.PubKeyAlgoEd25519: 64, packet.PubKeyAlgoEd448: 114} {
		if !alg.CanSign() {
			t.Errorf("%s cannot sign", alg)
		}
		if got, err := SignatureSize(alg); err != nil || got != want {
			t.Errorf("%s signature size %d, error %v", alg, got, err)
		}
	}

	want, _ := dilithium_exdsa.PublicKeySize(packet.PubKeyAlgoDilithium5P384)
	if got, _ := EncodedSize(packet.PubKeyAlgoDilithium5P384, false); got != want {
		t.Errorf("EncodedSize %d, want %d", got, want)
	}

	var algErr errors.InvalidAlgorithmError
	if _, err := EncodedSize(99, false); !goerrors.As(err, &algErr) {
		t.Errorf("expected InvalidAlgorithmError, got %v", err)
	}
	if _, err := SignatureSize(packet.PubKeyAlgoKyber768P256); !goerrors.As(err, &algErr) {
		t.Errorf("expected InvalidAlgorithmError, got %v", err)
	}
}

func TestNotInitializedFacade(t *testing.T) {
	if _, err := Sign(&dilithium_exdsa.PrivateKey{}, strings.NewReader("x"), false, nil); err != errors.ErrKeyNotInitialized {
		t.Errorf("Sign: %v", err)
	}
	if err := Verify(&dilithium_exdsa.PublicKey{}, strings.NewReader("x"), false, crypto.SHA256, nil); err != errors.ErrKeyNotInitialized {
		t.Errorf("Verify: %v", err)
	}
}

func TestCanonicalTextHash(t *testing.T) {
	inputs := map[string]string{
		"lf":       "a\nb\n",
		"crlf":     "a\r\nb\r\n",
		"trailing": "a\r\nb\n",
	}
	want := sha256.Sum256([]byte("a\r\nb\r\n"))
	for name, input := range inputs {
		t.Run(name, func(t *testing.T) {
			h := NewCanonicalTextHash(sha256.New())
			// Split writes so that a CR LF pair can straddle two calls.
			for i := 0; i < len(input); i++ {
				if _, err := h.Write([]byte{input[i]}); err != nil {
					t.Fatal(err)
				}
			}
			if got := h.Sum(nil); !bytes.Equal(got, want[:]) {
				t.Errorf("got %x, want %x", got, want)
			}
		})
	}
}
