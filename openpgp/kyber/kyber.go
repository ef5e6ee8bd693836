// Package kyber wraps raw Kyber key encodings for use in OpenPGP composite
// KEMs, experimental.
//
// Keys own their encodings and decode them on every operation. Shared
// secrets are truncated to the key share length OpenPGP assigns to each
// parameter set.
package kyber

import (
	"crypto/subtle"
	"io"

	"github.com/cloudflare/circl/kem"
	"github.com/openpgp-pqc/go-crypto/openpgp/errors"
	kyberparam "github.com/openpgp-pqc/go-crypto/openpgp/internal/kyber"
)

type ParameterSet = kyberparam.ParameterSet

const (
	Kyber768  = kyberparam.Kyber768
	Kyber1024 = kyberparam.Kyber1024
)

type PublicKey struct {
	Set     ParameterSet
	encoded []byte
}

type PrivateKey struct {
	Set     ParameterSet
	encoded []byte
}

// EncapsulationResult is the output of a single encapsulation: the ciphertext
// that goes over the wire and the key share it protects.
type EncapsulationResult struct {
	Ciphertext   []byte
	SharedSecret []byte
}

// GenerateKey derives a key pair for set from a seed read from rand.
func GenerateKey(rand io.Reader, set ParameterSet) (*PrivateKey, *PublicKey, error) {
	scheme, err := set.Scheme()
	if err != nil {
		return nil, nil, err
	}

	seed := make([]byte, scheme.SeedSize())
	defer clear(seed)
	if _, err = io.ReadFull(rand, seed); err != nil {
		return nil, nil, errors.NewProviderError("kyber: reading key seed", err)
	}

	pk, sk := scheme.DeriveKeyPair(seed)
	pub, err := pk.MarshalBinary()
	if err != nil {
		return nil, nil, errors.NewProviderError("kyber: encoding public key", err)
	}
	priv, err := sk.MarshalBinary()
	if err != nil {
		return nil, nil, errors.NewProviderError("kyber: encoding private key", err)
	}
	return &PrivateKey{Set: set, encoded: priv}, &PublicKey{Set: set, encoded: pub}, nil
}

// NewPublicKey copies encoded after checking that it is a public key for set.
func NewPublicKey(encoded []byte, set ParameterSet) (*PublicKey, error) {
	scheme, err := set.Scheme()
	if err != nil {
		return nil, err
	}
	if len(encoded) != scheme.PublicKeySize() {
		return nil, errors.StructuralError("kyber: wrong public key length")
	}
	if _, err := scheme.UnmarshalBinaryPublicKey(encoded); err != nil {
		return nil, errors.StructuralError("kyber: invalid public key: " + err.Error())
	}
	return &PublicKey{Set: set, encoded: append([]byte(nil), encoded...)}, nil
}

// NewPrivateKey copies encoded after checking that it is a private key for set.
func NewPrivateKey(encoded []byte, set ParameterSet) (*PrivateKey, error) {
	scheme, err := set.Scheme()
	if err != nil {
		return nil, err
	}
	if len(encoded) != scheme.PrivateKeySize() {
		return nil, errors.StructuralError("kyber: wrong private key length")
	}
	if _, err := scheme.UnmarshalBinaryPrivateKey(encoded); err != nil {
		return nil, errors.StructuralError("kyber: invalid private key: " + err.Error())
	}
	return &PrivateKey{Set: set, encoded: append([]byte(nil), encoded...)}, nil
}

func (pk *PublicKey) IsInitialized() bool {
	return pk != nil && len(pk.encoded) > 0
}

func (pk *PublicKey) Encode() ([]byte, error) {
	if !pk.IsInitialized() {
		return nil, errors.ErrKeyNotInitialized
	}
	return append([]byte(nil), pk.encoded...), nil
}

func (pk *PublicKey) Clone() *PublicKey {
	if pk == nil {
		return nil
	}
	return &PublicKey{Set: pk.Set, encoded: append([]byte(nil), pk.encoded...)}
}

// Encapsulate generates a fresh key share and its ciphertext for pk.
func (pk *PublicKey) Encapsulate(rand io.Reader) (*EncapsulationResult, error) {
	if !pk.IsInitialized() {
		return nil, errors.ErrKeyNotInitialized
	}
	scheme, err := pk.Set.Scheme()
	if err != nil {
		return nil, err
	}
	shareSize, _ := pk.Set.SharedSecretSize()

	decoded, err := scheme.UnmarshalBinaryPublicKey(pk.encoded)
	if err != nil {
		return nil, errors.NewProviderError("kyber: decoding public key", err)
	}

	seed := make([]byte, scheme.EncapsulationSeedSize())
	defer clear(seed)
	if _, err = io.ReadFull(rand, seed); err != nil {
		return nil, errors.NewProviderError("kyber: reading encapsulation seed", err)
	}

	ct, ss, err := scheme.EncapsulateDeterministically(decoded, seed)
	if err != nil {
		return nil, errors.NewProviderError("kyber: encapsulation", err)
	}
	defer clear(ss)

	return &EncapsulationResult{
		Ciphertext:   ct,
		SharedSecret: append([]byte(nil), ss[:shareSize]...),
	}, nil
}

func (sk *PrivateKey) IsInitialized() bool {
	return sk != nil && len(sk.encoded) > 0
}

func (sk *PrivateKey) Encode() ([]byte, error) {
	if !sk.IsInitialized() {
		return nil, errors.ErrKeyNotInitialized
	}
	return append([]byte(nil), sk.encoded...), nil
}

// Clone returns a deep copy of sk.
func (sk *PrivateKey) Clone() *PrivateKey {
	if sk == nil {
		return nil
	}
	return &PrivateKey{Set: sk.Set, encoded: append([]byte(nil), sk.encoded...)}
}

// SecureClear zeroes the private key encoding and leaves sk uninitialized.
func (sk *PrivateKey) SecureClear() {
	if sk == nil {
		return
	}
	clear(sk.encoded)
	sk.encoded = nil
}

func (sk *PrivateKey) decode() (kem.Scheme, kem.PrivateKey, error) {
	scheme, err := sk.Set.Scheme()
	if err != nil {
		return nil, nil, err
	}
	decoded, err := scheme.UnmarshalBinaryPrivateKey(sk.encoded)
	if err != nil {
		return nil, nil, errors.NewProviderError("kyber: decoding private key", err)
	}
	return scheme, decoded, nil
}

// Decapsulate recovers the key share protected by ciphertext. A ciphertext of
// the wrong length is a DecapsulationError; a well-formed but forged one
// yields an unrelated key share, as Kyber rejects implicitly.
func (sk *PrivateKey) Decapsulate(ciphertext []byte) ([]byte, error) {
	if !sk.IsInitialized() {
		return nil, errors.ErrKeyNotInitialized
	}
	scheme, decoded, err := sk.decode()
	if err != nil {
		return nil, err
	}
	if len(ciphertext) != scheme.CiphertextSize() {
		return nil, errors.DecapsulationError("kyber: wrong ciphertext length")
	}
	shareSize, _ := sk.Set.SharedSecretSize()

	ss, err := scheme.Decapsulate(decoded, ciphertext)
	if err != nil {
		return nil, errors.DecapsulationError("kyber: ciphertext rejected")
	}
	defer clear(ss)
	return append([]byte(nil), ss[:shareSize]...), nil
}

// Public returns the public key embedded in sk.
func (sk *PrivateKey) Public() (*PublicKey, error) {
	if !sk.IsInitialized() {
		return nil, errors.ErrKeyNotInitialized
	}
	_, decoded, err := sk.decode()
	if err != nil {
		return nil, err
	}
	pub, err := decoded.Public().MarshalBinary()
	if err != nil {
		return nil, errors.NewProviderError("kyber: encoding public key", err)
	}
	return &PublicKey{Set: sk.Set, encoded: pub}, nil
}

// Validate checks that pub is the public key belonging to priv.
func Validate(priv *PrivateKey, pub *PublicKey) error {
	if !priv.IsInitialized() || !pub.IsInitialized() {
		return errors.ErrKeyNotInitialized
	}
	if priv.Set != pub.Set {
		return errors.KeyInvalidError("kyber: parameter set mismatch")
	}
	expected, err := priv.Public()
	if err != nil {
		return err
	}
	if subtle.ConstantTimeCompare(expected.encoded, pub.encoded) == 0 {
		return errors.KeyInvalidError("kyber: invalid public key")
	}
	return nil
}
