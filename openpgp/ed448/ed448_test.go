package ed448

import (
	"bytes"
	"crypto/rand"
	goerrors "errors"
	"io"
	"testing"

	"github.com/openpgp-pqc/go-crypto/openpgp/errors"
)

const messageDigestSize = 32

func TestGenerate(t *testing.T) {
	priv, err := GenerateKey(rand.Reader)
	if err != nil {
		t.Fatal(err)
	}
	if len(priv.Key) != PrivateKeySize || len(priv.Point) != PointSize {
		t.Error("generated wrong key sizes")
	}
}

func TestSignVerify(t *testing.T) {
	digest := make([]byte, messageDigestSize)
	_, err := io.ReadFull(rand.Reader, digest[:])
	if err != nil {
		t.Fatal(err)
	}

	priv, err := GenerateKey(rand.Reader)
	if err != nil {
		t.Fatal(err)
	}

	signature, err := Sign(priv, digest)
	if err != nil {
		t.Errorf("error signing: %s", err)
	}

	var buf bytes.Buffer
	if err := WriteSignature(&buf, signature); err != nil {
		t.Fatal(err)
	}
	read, err := ReadSignature(&buf)
	if err != nil {
		t.Fatal(err)
	}

	if !Verify(&priv.PublicKey, digest, read) {
		t.Error("unable to verify message")
	}

	digest[0] += 1
	if Verify(&priv.PublicKey, digest, read) {
		t.Error("signature should be invalid")
	}
	if Verify(&priv.PublicKey, digest, read[1:]) {
		t.Error("short signature should be invalid")
	}
}

func TestValidation(t *testing.T) {
	priv, err := GenerateKey(rand.Reader)
	if err != nil {
		t.Fatal(err)
	}
	if err := Validate(priv); err != nil {
		t.Fatalf("valid key marked as invalid: %s", err)
	}

	priv.Key[0] += 1
	if err := Validate(priv); err == nil {
		t.Fatal("failed to detect invalid key")
	}
}

func TestSeedRoundTrip(t *testing.T) {
	priv, err := GenerateKey(rand.Reader)
	if err != nil {
		t.Fatal(err)
	}
	pub, err := NewPublicKey(priv.Point)
	if err != nil {
		t.Fatal(err)
	}
	parsed := NewPrivateKey(*pub)
	if err := parsed.UnmarshalByteSecret(priv.MarshalByteSecret()); err != nil {
		t.Fatal(err)
	}
	if err := Validate(parsed); err != nil {
		t.Fatalf("parsed key marked as invalid: %s", err)
	}

	var structErr errors.StructuralError
	if _, err := NewPublicKey(bytes.Repeat([]byte{0xff}, PointSize)); !goerrors.As(err, &structErr) {
		t.Errorf("expected StructuralError for bad point, got %v", err)
	}
	if err := parsed.UnmarshalByteSecret(priv.Seed()[1:]); !goerrors.As(err, &structErr) {
		t.Errorf("expected StructuralError for short seed, got %v", err)
	}

	parsed.SecureClear()
	if _, err := Sign(parsed, []byte("message")); err != errors.ErrKeyNotInitialized {
		t.Errorf("Sign after clear: %v", err)
	}
}
