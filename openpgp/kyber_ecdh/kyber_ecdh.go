// Package kyber_ecdh implements hybrid Kyber + ECDH encryption, suitable for OpenPGP, experimental.
// It follows the IETF draft https://www.ietf.org/archive/id/draft-wussler-openpgp-pqc-02.html#name-composite-kem-schemes
package kyber_ecdh

import (
	"io"

	"github.com/ProtonMail/go-crypto/openpgp/aes/keywrap"
	"github.com/openpgp-pqc/go-crypto/openpgp/errors"
	"github.com/openpgp-pqc/go-crypto/openpgp/internal/ecc"
	"github.com/openpgp-pqc/go-crypto/openpgp/kyber"
	"github.com/openpgp-pqc/go-crypto/openpgp/packet"
	"golang.org/x/crypto/sha3"
)

const kdfDomain = "OpenPGPCompositeKDFv1"

type PublicKey struct {
	AlgId       packet.PublicKeyAlgorithm
	Curve       ecc.ECDHCurve
	PublicPoint []byte
	PublicKyber *kyber.PublicKey
}

type PrivateKey struct {
	PublicKey
	SecretEC    []byte
	SecretKyber *kyber.PrivateKey
}

func curveFor(alg packet.PublicKeyAlgorithm) (ecc.ECDHCurve, *sizes, error) {
	s, err := sizesFor(alg)
	if err != nil {
		return nil, nil, err
	}
	c := ecc.FindECDHByGenName(string(s.curve))
	if c == nil {
		return nil, nil, errors.InvalidParameterError("kyber_ecdh: unsupported curve " + string(s.curve))
	}
	return c, s, nil
}

// GenerateKey implements Kyber + ECC key generation as specified in
// https://www.ietf.org/archive/id/draft-wussler-openpgp-pqc-02.html#name-key-generation-procedure
func GenerateKey(rand io.Reader, alg packet.PublicKeyAlgorithm) (*PrivateKey, error) {
	c, s, err := curveFor(alg)
	if err != nil {
		return nil, err
	}

	point, secret, err := c.GenerateECDH(rand)
	if err != nil {
		return nil, errors.NewProviderError("kyber_ecdh: EC key generation", err)
	}
	kyberPriv, kyberPub, err := kyber.GenerateKey(rand, s.set)
	if err != nil {
		clear(secret)
		return nil, err
	}

	return &PrivateKey{
		PublicKey: PublicKey{
			AlgId:       alg,
			Curve:       c,
			PublicPoint: point,
			PublicKyber: kyberPub,
		},
		SecretEC:    secret,
		SecretKyber: kyberPriv,
	}, nil
}

// ParsePublicKey decodes an encoded EC point followed by a Kyber public key.
func ParsePublicKey(data []byte, alg packet.PublicKeyAlgorithm) (*PublicKey, error) {
	c, s, err := curveFor(alg)
	if err != nil {
		return nil, err
	}
	if len(data) != s.ecPublic+s.kyberPublic {
		return nil, errors.StructuralError("kyber_ecdh: wrong public key length")
	}
	// Weierstrass points must lie on the curve; Montgomery u-coordinates are
	// checked for low order during encapsulation.
	if weierstrass := ecc.FindECDSAByGenName(string(s.curve)); weierstrass != nil {
		if x, _ := weierstrass.UnmarshalIntegerPoint(data[:s.ecPublic]); x == nil {
			return nil, errors.StructuralError("kyber_ecdh: failed to parse EC point")
		}
	}
	kyberPub, err := kyber.NewPublicKey(data[s.ecPublic:], s.set)
	if err != nil {
		return nil, err
	}
	return &PublicKey{
		AlgId:       alg,
		Curve:       c,
		PublicPoint: append([]byte(nil), data[:s.ecPublic]...),
		PublicKyber: kyberPub,
	}, nil
}

// ParsePrivateKey decodes an encoded EC secret followed by a Kyber private
// key, belonging to pub.
func ParsePrivateKey(pub *PublicKey, data []byte) (*PrivateKey, error) {
	if !pub.IsInitialized() {
		return nil, errors.ErrKeyNotInitialized
	}
	_, s, err := curveFor(pub.AlgId)
	if err != nil {
		return nil, err
	}
	if len(data) != s.ecPrivate+s.kyberPriv {
		return nil, errors.StructuralError("kyber_ecdh: wrong private key length")
	}
	if weierstrass := ecc.FindECDSAByGenName(string(s.curve)); weierstrass != nil {
		if weierstrass.UnmarshalFieldInteger(data[:s.ecPrivate]) == nil {
			return nil, errors.StructuralError("kyber_ecdh: EC scalar out of range")
		}
	}
	kyberPriv, err := kyber.NewPrivateKey(data[s.ecPrivate:], s.set)
	if err != nil {
		return nil, err
	}
	return &PrivateKey{
		PublicKey:   *pub.Clone(),
		SecretEC:    append([]byte(nil), data[:s.ecPrivate]...),
		SecretKyber: kyberPriv,
	}, nil
}

func (pub *PublicKey) IsInitialized() bool {
	return pub != nil && pub.Curve != nil && len(pub.PublicPoint) > 0 && pub.PublicKyber.IsInitialized()
}

// Encode returns the EC point followed by the Kyber public key.
func (pub *PublicKey) Encode() ([]byte, error) {
	if !pub.IsInitialized() {
		return nil, errors.ErrKeyNotInitialized
	}
	kyberPub, err := pub.PublicKyber.Encode()
	if err != nil {
		return nil, err
	}
	return append(append([]byte(nil), pub.PublicPoint...), kyberPub...), nil
}

func (pub *PublicKey) Clone() *PublicKey {
	if pub == nil {
		return nil
	}
	return &PublicKey{
		AlgId:       pub.AlgId,
		Curve:       pub.Curve,
		PublicPoint: append([]byte(nil), pub.PublicPoint...),
		PublicKyber: pub.PublicKyber.Clone(),
	}
}

func (priv *PrivateKey) IsInitialized() bool {
	return priv != nil && priv.PublicKey.IsInitialized() && len(priv.SecretEC) > 0 && priv.SecretKyber.IsInitialized()
}

// Encode returns the EC secret followed by the Kyber private key.
func (priv *PrivateKey) Encode() ([]byte, error) {
	if !priv.IsInitialized() {
		return nil, errors.ErrKeyNotInitialized
	}
	kyberPriv, err := priv.SecretKyber.Encode()
	if err != nil {
		return nil, err
	}
	defer clear(kyberPriv)
	return append(append([]byte(nil), priv.SecretEC...), kyberPriv...), nil
}

// SecureClear zeroes both secret components.
func (priv *PrivateKey) SecureClear() {
	if priv == nil {
		return
	}
	clear(priv.SecretEC)
	priv.SecretEC = nil
	priv.SecretKyber.SecureClear()
}

// Encrypt implements Kyber + ECC encryption as specified in
// https://www.ietf.org/archive/id/draft-wussler-openpgp-pqc-02.html#name-encryption-procedure
func Encrypt(rand io.Reader, pub *PublicKey, sessionKey []byte) (*Ciphertext, error) {
	if !pub.IsInitialized() {
		return nil, errors.ErrKeyNotInitialized
	}
	if len(sessionKey) > 64 || len(sessionKey) < 16 || len(sessionKey)%8 != 0 {
		return nil, errors.InvalidArgumentError("kyber_ecdh: session key must be 16 to 64 bytes in steps of 8")
	}

	// EC shared secret derivation
	ecEphemeral, ecSS, err := pub.Curve.Encaps(rand, pub.PublicPoint)
	if err != nil {
		return nil, errors.NewProviderError("kyber_ecdh: EC encapsulation", err)
	}
	defer clear(ecSS)

	// Kyber shared secret derivation
	encapsulated, err := pub.PublicKyber.Encapsulate(rand)
	if err != nil {
		return nil, err
	}
	defer clear(encapsulated.SharedSecret)

	kek, err := buildKey(pub, ecSS, ecEphemeral, encapsulated.SharedSecret, encapsulated.Ciphertext)
	if err != nil {
		return nil, err
	}
	defer clear(kek)

	wrapped, err := keywrap.Wrap(kek, sessionKey)
	if err != nil {
		return nil, errors.NewProviderError("kyber_ecdh: key wrap", err)
	}

	return &Ciphertext{
		ECEphemeral:     ecEphemeral,
		KyberCiphertext: encapsulated.Ciphertext,
		WrappedKey:      wrapped,
	}, nil
}

// Decrypt implements Kyber + ECC decryption as specified in
// https://www.ietf.org/archive/id/draft-wussler-openpgp-pqc-02.html#name-decryption-procedure
func Decrypt(priv *PrivateKey, ct *Ciphertext) ([]byte, error) {
	if !priv.IsInitialized() {
		return nil, errors.ErrKeyNotInitialized
	}
	if ct == nil {
		return nil, errors.InvalidArgumentError("kyber_ecdh: missing ciphertext")
	}

	// EC shared secret derivation
	ecSS, err := priv.Curve.Decaps(ct.ECEphemeral, priv.SecretEC)
	if err != nil {
		return nil, errors.DecapsulationError("kyber_ecdh: EC decapsulation failed")
	}
	defer clear(ecSS)

	// Kyber shared secret derivation
	kyberSS, err := priv.SecretKyber.Decapsulate(ct.KyberCiphertext)
	if err != nil {
		return nil, err
	}
	defer clear(kyberSS)

	kek, err := buildKey(&priv.PublicKey, ecSS, ct.ECEphemeral, kyberSS, ct.KyberCiphertext)
	if err != nil {
		return nil, err
	}
	defer clear(kek)

	sessionKey, err := keywrap.Unwrap(kek, ct.WrappedKey)
	if err != nil {
		return nil, errors.DecapsulationError("kyber_ecdh: session key unwrap failed")
	}
	return sessionKey, nil
}

// buildKey implements the composite KDF as specified in
// https://www.ietf.org/archive/id/draft-wussler-openpgp-pqc-02.html#name-key-combiner
func buildKey(pub *PublicKey, eccSecretPoint, eccEphemeral, kyberKeyShare, kyberEphemeral []byte) ([]byte, error) {
	h := sha3.New256()

	// SHA3 never returns error
	_, _ = h.Write(eccSecretPoint)
	_, _ = h.Write(eccEphemeral)
	_, _ = h.Write(pub.PublicPoint)
	eccKeyShare := h.Sum(nil)
	defer clear(eccKeyShare)

	serializedKyberKey, err := pub.PublicKyber.Encode()
	if err != nil {
		return nil, err
	}

	// eccData = eccKeyShare || eccCipherText
	// kyberData = kyberKeyShare || kyberCipherText
	// encData = counter || eccData || kyberData || fixedInfo
	k := sha3.New256()

	_, _ = k.Write([]byte{0x00, 0x00, 0x00, 0x01})
	_, _ = k.Write(eccKeyShare)
	_, _ = k.Write(eccEphemeral)
	_, _ = k.Write(pub.PublicPoint)
	_, _ = k.Write(kyberKeyShare)
	_, _ = k.Write(kyberEphemeral)
	_, _ = k.Write(serializedKyberKey)
	_, _ = k.Write([]byte{byte(pub.AlgId)})
	_, _ = k.Write([]byte(kdfDomain))

	return k.Sum(nil), nil
}

// Validate checks that the public key corresponds to the private key
func Validate(priv *PrivateKey) (err error) {
	if !priv.IsInitialized() {
		return errors.ErrKeyNotInitialized
	}
	if err = priv.Curve.ValidateECDH(priv.PublicPoint, priv.SecretEC); err != nil {
		return err
	}
	return kyber.Validate(priv.SecretKyber, priv.PublicKyber)
}
