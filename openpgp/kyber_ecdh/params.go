package kyber_ecdh

import (
	"github.com/openpgp-pqc/go-crypto/openpgp/errors"
	"github.com/openpgp-pqc/go-crypto/openpgp/kyber"
	"github.com/openpgp-pqc/go-crypto/openpgp/packet"
)

// CurveFor returns the ECDH curve of the classical half of alg.
func CurveFor(alg packet.PublicKeyAlgorithm) (packet.Curve, error) {
	switch alg {
	case packet.PubKeyAlgoKyber768X25519:
		return packet.Curve25519, nil
	case packet.PubKeyAlgoKyber1024X448:
		return packet.Curve448, nil
	case packet.PubKeyAlgoKyber768P256:
		return packet.CurveNistP256, nil
	case packet.PubKeyAlgoKyber1024P384:
		return packet.CurveNistP384, nil
	case packet.PubKeyAlgoKyber768Brainpool256:
		return packet.CurveBrainpoolP256, nil
	case packet.PubKeyAlgoKyber1024Brainpool384:
		return packet.CurveBrainpoolP384, nil
	default:
		return "", errors.UnknownAlgorithmError("kyber_ecdh", uint8(alg))
	}
}

// KyberParameterFor returns the Kyber parameter set of alg.
func KyberParameterFor(alg packet.PublicKeyAlgorithm) (kyber.ParameterSet, error) {
	switch alg {
	case packet.PubKeyAlgoKyber768X25519, packet.PubKeyAlgoKyber768P256, packet.PubKeyAlgoKyber768Brainpool256:
		return kyber.Kyber768, nil
	case packet.PubKeyAlgoKyber1024X448, packet.PubKeyAlgoKyber1024P384, packet.PubKeyAlgoKyber1024Brainpool384:
		return kyber.Kyber1024, nil
	default:
		return 0, errors.UnknownAlgorithmError("kyber_ecdh", uint8(alg))
	}
}

// ClassicalPublicKeySize is also the size of the ephemeral point in a
// ciphertext.
func ClassicalPublicKeySize(curve packet.Curve) (int, error) {
	switch curve {
	case packet.Curve25519:
		return 32, nil
	case packet.Curve448:
		return 56, nil
	case packet.CurveNistP256, packet.CurveBrainpoolP256:
		return 65, nil
	case packet.CurveNistP384, packet.CurveBrainpoolP384:
		return 97, nil
	default:
		return 0, errors.InvalidParameterError("kyber_ecdh: invalid curve given: " + string(curve))
	}
}

func ClassicalPrivateKeySize(curve packet.Curve) (int, error) {
	switch curve {
	case packet.Curve25519:
		return 32, nil
	case packet.Curve448:
		return 56, nil
	case packet.CurveNistP256, packet.CurveBrainpoolP256:
		return 32, nil
	case packet.CurveNistP384, packet.CurveBrainpoolP384:
		return 48, nil
	default:
		return 0, errors.InvalidParameterError("kyber_ecdh: invalid curve given: " + string(curve))
	}
}

type sizes struct {
	curve                  packet.Curve
	set                    kyber.ParameterSet
	ecPublic, ecPrivate    int
	kyberPublic, kyberPriv int
	kyberCiphertext        int
}

func sizesFor(alg packet.PublicKeyAlgorithm) (*sizes, error) {
	curve, err := CurveFor(alg)
	if err != nil {
		return nil, err
	}
	set, err := KyberParameterFor(alg)
	if err != nil {
		return nil, err
	}
	s := &sizes{curve: curve, set: set}
	if s.ecPublic, err = ClassicalPublicKeySize(curve); err != nil {
		return nil, err
	}
	if s.ecPrivate, err = ClassicalPrivateKeySize(curve); err != nil {
		return nil, err
	}
	if s.kyberPublic, err = set.PublicKeySize(); err != nil {
		return nil, err
	}
	if s.kyberPriv, err = set.PrivateKeySize(); err != nil {
		return nil, err
	}
	if s.kyberCiphertext, err = set.CiphertextSize(); err != nil {
		return nil, err
	}
	return s, nil
}

// PublicKeySize returns the length of an encoded composite public key.
func PublicKeySize(alg packet.PublicKeyAlgorithm) (int, error) {
	s, err := sizesFor(alg)
	if err != nil {
		return 0, err
	}
	return s.ecPublic + s.kyberPublic, nil
}

// PrivateKeySize returns the length of an encoded composite private key.
func PrivateKeySize(alg packet.PublicKeyAlgorithm) (int, error) {
	s, err := sizesFor(alg)
	if err != nil {
		return 0, err
	}
	return s.ecPrivate + s.kyberPriv, nil
}
