package hkdf

import (
	"bytes"
	"crypto"
	"encoding/hex"
	goerrors "errors"
	"os"
	"testing"

	"github.com/openpgp-pqc/go-crypto/openpgp/errors"
	"gopkg.in/yaml.v3"
)

type testVector struct {
	Name   string `yaml:"name"`
	Hash   string `yaml:"hash"`
	IKM    string `yaml:"ikm"`
	Salt   string `yaml:"salt"`
	Info   string `yaml:"info"`
	Length int    `yaml:"length"`
	PRK    string `yaml:"prk"`
	OKM    string `yaml:"okm"`
}

var hashNames = map[string]crypto.Hash{
	"SHA256": crypto.SHA256,
	"SHA384": crypto.SHA384,
	"SHA512": crypto.SHA512,
}

func loadVectors(t *testing.T) []testVector {
	data, err := os.ReadFile("testdata/rfc5869.yaml")
	if err != nil {
		t.Fatal(err)
	}
	var vectors []testVector
	if err := yaml.Unmarshal(data, &vectors); err != nil {
		t.Fatal(err)
	}
	if len(vectors) == 0 {
		t.Fatal("no test vectors")
	}
	return vectors
}

func mustHex(t *testing.T, s string) []byte {
	b, err := hex.DecodeString(s)
	if err != nil {
		t.Fatal(err)
	}
	return b
}

func TestRFC5869(t *testing.T) {
	for _, v := range loadVectors(t) {
		t.Run(v.Name, func(t *testing.T) {
			h, err := New(hashNames[v.Hash])
			if err != nil {
				t.Fatal(err)
			}
			ikm, salt, info := mustHex(t, v.IKM), mustHex(t, v.Salt), mustHex(t, v.Info)

			prk := h.Extract(salt, ikm)
			if want := mustHex(t, v.PRK); !bytes.Equal(prk, want) {
				t.Fatalf("PRK %x, want %x", prk, want)
			}

			want := mustHex(t, v.OKM)
			okm, err := h.Expand(prk, info, v.Length)
			if err != nil {
				t.Fatal(err)
			}
			if !bytes.Equal(okm, want) {
				t.Fatalf("OKM %x, want %x", okm, want)
			}

			okm, err = h.ExtractExpand(salt, ikm, info, v.Length)
			if err != nil {
				t.Fatal(err)
			}
			if !bytes.Equal(okm, want) {
				t.Fatalf("ExtractExpand %x, want %x", okm, want)
			}
		})
	}
}

func TestInvalidUse(t *testing.T) {
	var paramErr errors.InvalidParameterError
	if _, err := New(crypto.MD5); !goerrors.As(err, &paramErr) {
		t.Errorf("expected InvalidParameterError, got %v", err)
	}

	h, err := New(crypto.SHA256)
	if err != nil {
		t.Fatal(err)
	}
	prk := h.Extract(nil, []byte("input keying material"))

	var argErr errors.InvalidArgumentError
	for _, length := range []int{0, -1, 255*32 + 1} {
		if _, err := h.Expand(prk, nil, length); !goerrors.As(err, &argErr) {
			t.Errorf("length %d: expected InvalidArgumentError, got %v", length, err)
		}
	}
	if _, err := h.Expand(prk[:16], nil, 32); !goerrors.As(err, &argErr) {
		t.Errorf("expected InvalidArgumentError for short PRK, got %v", err)
	}
	if out, err := h.Expand(prk, nil, 255*32); err != nil || len(out) != 255*32 {
		t.Errorf("maximum output length rejected: %v", err)
	}
}
