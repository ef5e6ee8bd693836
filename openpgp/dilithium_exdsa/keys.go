// Package dilithium_exdsa implements composite Dilithium + EdDSA/ECDSA keys
// and signatures for OpenPGP, experimental.
// It follows the specs https://www.ietf.org/archive/id/draft-wussler-openpgp-pqc-00.html#name-composite-signature-schemes
//
// Every encoding is the classical component followed by the Dilithium
// component, with no length prefixes: the split offset is a pure function of
// the algorithm identifier.
package dilithium_exdsa

import (
	"io"
	"math/big"

	"github.com/openpgp-pqc/go-crypto/openpgp/errors"
	"github.com/openpgp-pqc/go-crypto/openpgp/internal/dilithium"
	"github.com/openpgp-pqc/go-crypto/openpgp/internal/ecc"
	"github.com/openpgp-pqc/go-crypto/openpgp/packet"
)

// PublicKey is a composite public key. The zero value is not initialized.
type PublicKey struct {
	AlgId     packet.PublicKeyAlgorithm
	ecPublic  []byte
	dilithium []byte
}

// PrivateKey is a composite private key. The zero value is not initialized.
type PrivateKey struct {
	AlgId     packet.PublicKeyAlgorithm
	ecSecret  []byte
	dilithium []byte
}

// scheme bundles the providers resolved for one algorithm identifier.
// Exactly one of ecdsa and eddsa is set.
type scheme struct {
	curve     packet.Curve
	ecdsa     ecc.ECDSACurve
	eddsa     ecc.EdDSACurve
	dilithium dilithium.ParameterSet

	ecPrivateSize, ecPublicSize, ecSignatureSize int
}

func schemeFor(alg packet.PublicKeyAlgorithm) (*scheme, error) {
	curve, err := CurveFor(alg)
	if err != nil {
		return nil, err
	}
	level, err := DilithiumLevelFor(alg)
	if err != nil {
		return nil, err
	}
	s := &scheme{curve: curve, dilithium: level}
	if s.ecPrivateSize, err = ClassicalPrivateKeySize(curve); err != nil {
		return nil, err
	}
	if s.ecPublicSize, err = ClassicalPublicKeySize(curve); err != nil {
		return nil, err
	}
	if s.ecSignatureSize, err = ClassicalSignatureSize(curve); err != nil {
		return nil, err
	}

	switch curve {
	case packet.CurveEd25519, packet.CurveEd448:
		s.eddsa = ecc.FindEdDSAByGenName(string(curve))
	default:
		s.ecdsa = ecc.FindECDSAByGenName(string(curve))
	}
	if s.eddsa == nil && s.ecdsa == nil {
		return nil, invalidCurve(curve)
	}
	return s, nil
}

func (s *scheme) generateClassical(rand io.Reader) (pub, priv []byte, err error) {
	if s.eddsa != nil {
		return s.eddsa.GenerateEdDSA(rand)
	}
	x, y, d, err := s.ecdsa.GenerateECDSA(rand)
	if err != nil {
		return nil, nil, err
	}
	return s.ecdsa.MarshalIntegerPoint(x, y), s.ecdsa.MarshalFieldInteger(d), nil
}

func (s *scheme) checkClassicalPublic(pub []byte) error {
	if len(pub) != s.ecPublicSize {
		return errors.StructuralError("dilithium_exdsa: wrong EC public key length")
	}
	if s.eddsa != nil {
		if err := s.eddsa.ValidatePoint(pub); err != nil {
			return errors.StructuralError("dilithium_exdsa: failed to parse EdDSA point")
		}
		return nil
	}
	if x, _ := s.ecdsa.UnmarshalIntegerPoint(pub); x == nil {
		return errors.StructuralError("dilithium_exdsa: failed to parse EC point")
	}
	return nil
}

func (s *scheme) checkClassicalSecret(priv []byte) error {
	if len(priv) != s.ecPrivateSize {
		return errors.StructuralError("dilithium_exdsa: wrong EC secret key length")
	}
	if s.ecdsa != nil && s.ecdsa.UnmarshalFieldInteger(priv) == nil {
		return errors.StructuralError("dilithium_exdsa: failed to parse scalar")
	}
	return nil
}

func (s *scheme) classicalPublicFromSecret(priv []byte) ([]byte, error) {
	if s.eddsa != nil {
		return s.eddsa.PublicFromSecret(priv)
	}
	d := s.ecdsa.UnmarshalFieldInteger(priv)
	if d == nil {
		return nil, errors.StructuralError("dilithium_exdsa: failed to parse scalar")
	}
	x, y := s.ecdsa.PublicFromSecret(d)
	return s.ecdsa.MarshalIntegerPoint(x, y), nil
}

func (s *scheme) signClassical(rand io.Reader, priv, message []byte) ([]byte, error) {
	if s.eddsa != nil {
		return s.eddsa.Sign(priv, message)
	}
	d := s.ecdsa.UnmarshalFieldInteger(priv)
	if d == nil {
		return nil, errors.StructuralError("dilithium_exdsa: failed to parse scalar")
	}
	r, sv, err := s.ecdsa.Sign(rand, nil, nil, d, message)
	if err != nil {
		return nil, err
	}
	sig := make([]byte, 0, s.ecSignatureSize)
	sig = append(sig, s.ecdsa.MarshalFieldInteger(r)...)
	return append(sig, s.ecdsa.MarshalFieldInteger(sv)...), nil
}

func (s *scheme) verifyClassical(pub, message, sig []byte) bool {
	if len(sig) != s.ecSignatureSize {
		return false
	}
	if s.eddsa != nil {
		return s.eddsa.Verify(pub, message, sig)
	}
	x, y := s.ecdsa.UnmarshalIntegerPoint(pub)
	half := len(sig) / 2
	r := new(big.Int).SetBytes(sig[:half])
	sv := new(big.Int).SetBytes(sig[half:])
	return s.ecdsa.Verify(x, y, message, r, sv)
}

func (s *scheme) validateClassical(pub, priv []byte) error {
	if s.eddsa != nil {
		return s.eddsa.ValidateEdDSA(pub, priv)
	}
	x, y := s.ecdsa.UnmarshalIntegerPoint(pub)
	if x == nil {
		return errors.KeyInvalidError("dilithium_exdsa: invalid EC point")
	}
	return s.ecdsa.ValidateECDSA(x, y, priv)
}

// GenerateKey generates a composite key pair for alg. Either both keys are
// returned fully initialized or an error is returned.
func GenerateKey(rand io.Reader, alg packet.PublicKeyAlgorithm) (*PrivateKey, *PublicKey, error) {
	s, err := schemeFor(alg)
	if err != nil {
		return nil, nil, err
	}

	ecPub, ecPriv, err := s.generateClassical(rand)
	if err != nil {
		return nil, nil, errors.NewProviderError("dilithium_exdsa: EC key generation", err)
	}
	dPub, dPriv, err := s.dilithium.GenerateKey(rand)
	if err != nil {
		clear(ecPriv)
		return nil, nil, errors.NewProviderError("dilithium_exdsa: dilithium key generation", err)
	}

	priv := &PrivateKey{AlgId: alg, ecSecret: ecPriv, dilithium: dPriv}
	pub := &PublicKey{AlgId: alg, ecPublic: ecPub, dilithium: dPub}
	return priv, pub, nil
}

// NewPublicKey builds a public key from its two component encodings. The
// inputs are copied.
func NewPublicKey(ecKey, dilithiumKey []byte, alg packet.PublicKeyAlgorithm) (*PublicKey, error) {
	s, err := schemeFor(alg)
	if err != nil {
		return nil, err
	}
	if err := s.checkClassicalPublic(ecKey); err != nil {
		return nil, err
	}
	if err := checkDilithium(dilithiumKey, s.dilithium.PublicKeySize, s.dilithium.ValidatePublicKey); err != nil {
		return nil, err
	}
	return &PublicKey{
		AlgId:     alg,
		ecPublic:  append([]byte(nil), ecKey...),
		dilithium: append([]byte(nil), dilithiumKey...),
	}, nil
}

// NewPrivateKey builds a private key from its two component encodings. The
// inputs are copied.
func NewPrivateKey(ecKey, dilithiumKey []byte, alg packet.PublicKeyAlgorithm) (*PrivateKey, error) {
	s, err := schemeFor(alg)
	if err != nil {
		return nil, err
	}
	if err := s.checkClassicalSecret(ecKey); err != nil {
		return nil, err
	}
	if err := checkDilithium(dilithiumKey, s.dilithium.PrivateKeySize, s.dilithium.ValidatePrivateKey); err != nil {
		return nil, err
	}
	return &PrivateKey{
		AlgId:     alg,
		ecSecret:  append([]byte(nil), ecKey...),
		dilithium: append([]byte(nil), dilithiumKey...),
	}, nil
}

func checkDilithium(key []byte, size func() (int, error), validate func([]byte) error) error {
	want, err := size()
	if err != nil {
		return err
	}
	if len(key) != want {
		return errors.StructuralError("dilithium_exdsa: wrong dilithium key length")
	}
	if err := validate(key); err != nil {
		return errors.StructuralError("dilithium_exdsa: invalid dilithium key: " + err.Error())
	}
	return nil
}

// ParsePublicKey decodes the concatenated encoding produced by
// (*PublicKey).Encode.
func ParsePublicKey(data []byte, alg packet.PublicKeyAlgorithm) (*PublicKey, error) {
	size, err := PublicKeySize(alg)
	if err != nil {
		return nil, err
	}
	if len(data) != size {
		return nil, errors.StructuralError("dilithium_exdsa: wrong public key length")
	}
	offset, _ := ClassicalPublicKeySize(mustCurve(alg))
	return NewPublicKey(data[:offset], data[offset:], alg)
}

// ParsePrivateKey decodes the concatenated encoding produced by
// (*PrivateKey).Encode.
func ParsePrivateKey(data []byte, alg packet.PublicKeyAlgorithm) (*PrivateKey, error) {
	size, err := PrivateKeySize(alg)
	if err != nil {
		return nil, err
	}
	if len(data) != size {
		return nil, errors.StructuralError("dilithium_exdsa: wrong private key length")
	}
	offset, _ := ClassicalPrivateKeySize(mustCurve(alg))
	return NewPrivateKey(data[:offset], data[offset:], alg)
}

// mustCurve is only called once the size lookup for alg has succeeded.
func mustCurve(alg packet.PublicKeyAlgorithm) packet.Curve {
	curve, _ := CurveFor(alg)
	return curve
}

func (pk *PublicKey) IsInitialized() bool {
	return pk != nil && len(pk.ecPublic) > 0 && len(pk.dilithium) > 0
}

func (pk *PublicKey) Algorithm() packet.PublicKeyAlgorithm {
	return pk.AlgId
}

// Encode returns the classical public key followed by the Dilithium one.
func (pk *PublicKey) Encode() ([]byte, error) {
	if !pk.IsInitialized() {
		return nil, errors.ErrKeyNotInitialized
	}
	out := make([]byte, 0, len(pk.ecPublic)+len(pk.dilithium))
	out = append(out, pk.ecPublic...)
	return append(out, pk.dilithium...), nil
}

// ClassicalKey returns a copy of the classical public key encoding.
func (pk *PublicKey) ClassicalKey() []byte {
	return append([]byte(nil), pk.ecPublic...)
}

// DilithiumKey returns a copy of the Dilithium public key encoding.
func (pk *PublicKey) DilithiumKey() []byte {
	return append([]byte(nil), pk.dilithium...)
}

func (pk *PublicKey) Clone() *PublicKey {
	if pk == nil {
		return nil
	}
	return &PublicKey{
		AlgId:     pk.AlgId,
		ecPublic:  append([]byte(nil), pk.ecPublic...),
		dilithium: append([]byte(nil), pk.dilithium...),
	}
}

// Verify checks a composite signature over message. It returns nil only if
// both component signatures verify; a rejected signature yields a
// SignatureError.
func (pk *PublicKey) Verify(message []byte, sig *Signature) error {
	if !pk.IsInitialized() {
		return errors.ErrKeyNotInitialized
	}
	s, err := schemeFor(pk.AlgId)
	if err != nil {
		return err
	}
	if sig == nil {
		return errors.SignatureError("dilithium_exdsa: missing signature")
	}

	// Both halves are always checked so that timing does not reveal which one failed.
	ecValid := s.verifyClassical(pk.ecPublic, message, sig.Classical)
	pqValid := s.dilithium.Verify(pk.dilithium, message, sig.Dilithium)
	if !ecValid || !pqValid {
		return errors.SignatureError("dilithium_exdsa: composite signature verification failed")
	}
	return nil
}

func (sk *PrivateKey) IsInitialized() bool {
	return sk != nil && len(sk.ecSecret) > 0 && len(sk.dilithium) > 0
}

func (sk *PrivateKey) Algorithm() packet.PublicKeyAlgorithm {
	return sk.AlgId
}

// Encode returns the classical secret followed by the Dilithium one.
func (sk *PrivateKey) Encode() ([]byte, error) {
	if !sk.IsInitialized() {
		return nil, errors.ErrKeyNotInitialized
	}
	out := make([]byte, 0, len(sk.ecSecret)+len(sk.dilithium))
	out = append(out, sk.ecSecret...)
	return append(out, sk.dilithium...), nil
}

// Clone returns a deep copy of sk. Clearing either copy leaves the other intact.
func (sk *PrivateKey) Clone() *PrivateKey {
	if sk == nil {
		return nil
	}
	return &PrivateKey{
		AlgId:     sk.AlgId,
		ecSecret:  append([]byte(nil), sk.ecSecret...),
		dilithium: append([]byte(nil), sk.dilithium...),
	}
}

// SecureClear zeroes the secret material and leaves sk uninitialized.
func (sk *PrivateKey) SecureClear() {
	if sk == nil {
		return
	}
	clear(sk.ecSecret)
	clear(sk.dilithium)
	sk.ecSecret = nil
	sk.dilithium = nil
}

// Public derives the public key from the secret components.
func (sk *PrivateKey) Public() (*PublicKey, error) {
	if !sk.IsInitialized() {
		return nil, errors.ErrKeyNotInitialized
	}
	s, err := schemeFor(sk.AlgId)
	if err != nil {
		return nil, err
	}
	ecPub, err := s.classicalPublicFromSecret(sk.ecSecret)
	if err != nil {
		return nil, errors.NewProviderError("dilithium_exdsa: EC public key derivation", err)
	}
	dPub, err := s.dilithium.PublicFromPrivate(sk.dilithium)
	if err != nil {
		return nil, errors.NewProviderError("dilithium_exdsa: dilithium public key derivation", err)
	}
	return &PublicKey{AlgId: sk.AlgId, ecPublic: ecPub, dilithium: dPub}, nil
}

// Sign generates a composite signature as specified in
// https://www.ietf.org/archive/id/draft-wussler-openpgp-pqc-00.html#section-5.2.2
// Both components sign the same message.
func (sk *PrivateKey) Sign(rand io.Reader, message []byte) (*Signature, error) {
	if !sk.IsInitialized() {
		return nil, errors.ErrKeyNotInitialized
	}
	s, err := schemeFor(sk.AlgId)
	if err != nil {
		return nil, err
	}
	ecSig, err := s.signClassical(rand, sk.ecSecret, message)
	if err != nil {
		return nil, errors.NewProviderError("dilithium_exdsa: unable to sign with EC key", err)
	}
	dSig, err := s.dilithium.Sign(sk.dilithium, message)
	if err != nil {
		return nil, errors.NewProviderError("dilithium_exdsa: unable to sign with dilithium", err)
	}
	return NewSignature(ecSig, dSig), nil
}

// Validate checks that pub is the public key belonging to priv.
func Validate(priv *PrivateKey, pub *PublicKey) error {
	if !priv.IsInitialized() || !pub.IsInitialized() {
		return errors.ErrKeyNotInitialized
	}
	if priv.AlgId != pub.AlgId {
		return errors.KeyInvalidError("dilithium_exdsa: algorithm mismatch")
	}
	s, err := schemeFor(priv.AlgId)
	if err != nil {
		return err
	}
	if err := s.validateClassical(pub.ecPublic, priv.ecSecret); err != nil {
		return err
	}
	return s.dilithium.Validate(pub.dilithium, priv.dilithium)
}
