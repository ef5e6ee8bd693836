// Package dilithium maps the Dilithium security levels used by OpenPGP
// composite keys onto the circl implementation, working on raw encodings.
package dilithium

import (
	"crypto/subtle"
	goerrors "errors"
	"io"
	"strconv"

	"github.com/cloudflare/circl/sign/dilithium/mode3"
	"github.com/cloudflare/circl/sign/dilithium/mode5"
	"github.com/openpgp-pqc/go-crypto/openpgp/errors"
)

type ParameterSet uint8

const (
	Level3 ParameterSet = 3
	Level5 ParameterSet = 5
)

func (set ParameterSet) String() string {
	switch set {
	case Level3:
		return "Dilithium3"
	case Level5:
		return "Dilithium5"
	default:
		return "Dilithium(" + strconv.Itoa(int(set)) + ")"
	}
}

func (set ParameterSet) unsupported() error {
	return errors.InvalidParameterError("dilithium: unsupported parameter set " + set.String())
}

func (set ParameterSet) PublicKeySize() (int, error) {
	switch set {
	case Level3:
		return mode3.PublicKeySize, nil
	case Level5:
		return mode5.PublicKeySize, nil
	default:
		return 0, set.unsupported()
	}
}

func (set ParameterSet) PrivateKeySize() (int, error) {
	switch set {
	case Level3:
		return mode3.PrivateKeySize, nil
	case Level5:
		return mode5.PrivateKeySize, nil
	default:
		return 0, set.unsupported()
	}
}

func (set ParameterSet) SignatureSize() (int, error) {
	switch set {
	case Level3:
		return mode3.SignatureSize, nil
	case Level5:
		return mode5.SignatureSize, nil
	default:
		return 0, set.unsupported()
	}
}

// GenerateKey returns freshly generated public and private key encodings.
func (set ParameterSet) GenerateKey(rand io.Reader) (pub, priv []byte, err error) {
	switch set {
	case Level3:
		pk, sk, err := mode3.GenerateKey(rand)
		if err != nil {
			return nil, nil, err
		}
		return pk.Bytes(), sk.Bytes(), nil
	case Level5:
		pk, sk, err := mode5.GenerateKey(rand)
		if err != nil {
			return nil, nil, err
		}
		return pk.Bytes(), sk.Bytes(), nil
	default:
		return nil, nil, set.unsupported()
	}
}

// ValidatePublicKey checks that pub is a well-formed public key encoding.
func (set ParameterSet) ValidatePublicKey(pub []byte) error {
	switch set {
	case Level3:
		return new(mode3.PublicKey).UnmarshalBinary(pub)
	case Level5:
		return new(mode5.PublicKey).UnmarshalBinary(pub)
	default:
		return set.unsupported()
	}
}

// ValidatePrivateKey checks that priv is a well-formed private key encoding.
func (set ParameterSet) ValidatePrivateKey(priv []byte) error {
	switch set {
	case Level3:
		return new(mode3.PrivateKey).UnmarshalBinary(priv)
	case Level5:
		return new(mode5.PrivateKey).UnmarshalBinary(priv)
	default:
		return set.unsupported()
	}
}

// PublicFromPrivate recomputes the public key encoding from priv.
func (set ParameterSet) PublicFromPrivate(priv []byte) ([]byte, error) {
	switch set {
	case Level3:
		var sk mode3.PrivateKey
		if err := sk.UnmarshalBinary(priv); err != nil {
			return nil, err
		}
		pk, ok := sk.Public().(*mode3.PublicKey)
		if !ok {
			return nil, goerrors.New("dilithium: unexpected public key type")
		}
		return pk.Bytes(), nil
	case Level5:
		var sk mode5.PrivateKey
		if err := sk.UnmarshalBinary(priv); err != nil {
			return nil, err
		}
		pk, ok := sk.Public().(*mode5.PublicKey)
		if !ok {
			return nil, goerrors.New("dilithium: unexpected public key type")
		}
		return pk.Bytes(), nil
	default:
		return nil, set.unsupported()
	}
}

// Sign signs message with the private key encoding priv.
func (set ParameterSet) Sign(priv, message []byte) ([]byte, error) {
	switch set {
	case Level3:
		var sk mode3.PrivateKey
		if err := sk.UnmarshalBinary(priv); err != nil {
			return nil, err
		}
		sig := make([]byte, mode3.SignatureSize)
		mode3.SignTo(&sk, message, sig)
		return sig, nil
	case Level5:
		var sk mode5.PrivateKey
		if err := sk.UnmarshalBinary(priv); err != nil {
			return nil, err
		}
		sig := make([]byte, mode5.SignatureSize)
		mode5.SignTo(&sk, message, sig)
		return sig, nil
	default:
		return nil, set.unsupported()
	}
}

// Verify reports whether sig is a valid signature of message under pub.
// Malformed keys or signatures verify as false.
func (set ParameterSet) Verify(pub, message, sig []byte) bool {
	switch set {
	case Level3:
		var pk mode3.PublicKey
		if pk.UnmarshalBinary(pub) != nil || len(sig) != mode3.SignatureSize {
			return false
		}
		return mode3.Verify(&pk, message, sig)
	case Level5:
		var pk mode5.PublicKey
		if pk.UnmarshalBinary(pub) != nil || len(sig) != mode5.SignatureSize {
			return false
		}
		return mode5.Verify(&pk, message, sig)
	default:
		return false
	}
}

// Validate checks that pub is the public key belonging to priv.
func (set ParameterSet) Validate(pub, priv []byte) error {
	expected, err := set.PublicFromPrivate(priv)
	if err != nil {
		return errors.KeyInvalidError("dilithium: invalid private key")
	}
	if subtle.ConstantTimeCompare(pub, expected) == 0 {
		return errors.KeyInvalidError("dilithium: invalid public key")
	}
	return nil
}
