package dilithium_exdsa

import (
	"github.com/openpgp-pqc/go-crypto/openpgp/errors"
	"github.com/openpgp-pqc/go-crypto/openpgp/internal/dilithium"
	"github.com/openpgp-pqc/go-crypto/openpgp/packet"
)

// CurveFor returns the curve of the classical half of alg.
func CurveFor(alg packet.PublicKeyAlgorithm) (packet.Curve, error) {
	switch alg {
	case packet.PubKeyAlgoDilithium3Ed25519:
		return packet.CurveEd25519, nil
	case packet.PubKeyAlgoDilithium5Ed448:
		return packet.CurveEd448, nil
	case packet.PubKeyAlgoDilithium3P256:
		return packet.CurveNistP256, nil
	case packet.PubKeyAlgoDilithium5P384:
		return packet.CurveNistP384, nil
	case packet.PubKeyAlgoDilithium3Brainpool256:
		return packet.CurveBrainpoolP256, nil
	case packet.PubKeyAlgoDilithium5Brainpool384:
		return packet.CurveBrainpoolP384, nil
	default:
		return "", errors.UnknownAlgorithmError("dilithium_exdsa", uint8(alg))
	}
}

// DilithiumLevelFor returns the Dilithium parameter set of alg. The 256-bit
// classical curves pair with level 3, the larger ones with level 5.
func DilithiumLevelFor(alg packet.PublicKeyAlgorithm) (dilithium.ParameterSet, error) {
	switch alg {
	case packet.PubKeyAlgoDilithium3Ed25519, packet.PubKeyAlgoDilithium3P256, packet.PubKeyAlgoDilithium3Brainpool256:
		return dilithium.Level3, nil
	case packet.PubKeyAlgoDilithium5Ed448, packet.PubKeyAlgoDilithium5P384, packet.PubKeyAlgoDilithium5Brainpool384:
		return dilithium.Level5, nil
	default:
		return 0, errors.UnknownAlgorithmError("dilithium_exdsa", uint8(alg))
	}
}

func invalidCurve(curve packet.Curve) error {
	return errors.InvalidParameterError("dilithium_exdsa: invalid curve given: " + string(curve))
}

// ClassicalPrivateKeySize returns the encoded private key size for curve.
func ClassicalPrivateKeySize(curve packet.Curve) (int, error) {
	switch curve {
	case packet.CurveEd25519:
		return 32, nil
	case packet.CurveEd448:
		return 57, nil
	case packet.CurveNistP256, packet.CurveBrainpoolP256:
		return 32, nil
	case packet.CurveNistP384, packet.CurveBrainpoolP384:
		return 48, nil
	default:
		return 0, invalidCurve(curve)
	}
}

// ClassicalPublicKeySize returns the encoded public key size for curve.
// Weierstrass points are SEC1 uncompressed.
func ClassicalPublicKeySize(curve packet.Curve) (int, error) {
	switch curve {
	case packet.CurveEd25519:
		return 32, nil
	case packet.CurveEd448:
		return 57, nil
	case packet.CurveNistP256, packet.CurveBrainpoolP256:
		return 65, nil
	case packet.CurveNistP384, packet.CurveBrainpoolP384:
		return 97, nil
	default:
		return 0, invalidCurve(curve)
	}
}

// ClassicalSignatureSize returns the encoded signature size for curve.
// ECDSA signatures are r || s.
func ClassicalSignatureSize(curve packet.Curve) (int, error) {
	switch curve {
	case packet.CurveEd25519:
		return 64, nil
	case packet.CurveEd448:
		return 114, nil
	case packet.CurveNistP256, packet.CurveBrainpoolP256:
		return 64, nil
	case packet.CurveNistP384, packet.CurveBrainpoolP384:
		return 96, nil
	default:
		return 0, invalidCurve(curve)
	}
}

// compositeSize adds the classical size of alg's curve to the Dilithium
// size of alg's level. Sizes are never stored, so the two tables cannot drift.
func compositeSize(
	alg packet.PublicKeyAlgorithm,
	classical func(packet.Curve) (int, error),
	pq func(dilithium.ParameterSet) (int, error),
) (int, error) {
	curve, err := CurveFor(alg)
	if err != nil {
		return 0, err
	}
	level, err := DilithiumLevelFor(alg)
	if err != nil {
		return 0, err
	}
	ecSize, err := classical(curve)
	if err != nil {
		return 0, err
	}
	pqSize, err := pq(level)
	if err != nil {
		return 0, err
	}
	return ecSize + pqSize, nil
}

// PrivateKeySize returns the length of an encoded composite private key.
func PrivateKeySize(alg packet.PublicKeyAlgorithm) (int, error) {
	return compositeSize(alg, ClassicalPrivateKeySize, dilithium.ParameterSet.PrivateKeySize)
}

// PublicKeySize returns the length of an encoded composite public key.
func PublicKeySize(alg packet.PublicKeyAlgorithm) (int, error) {
	return compositeSize(alg, ClassicalPublicKeySize, dilithium.ParameterSet.PublicKeySize)
}

// SignatureSize returns the length of an encoded composite signature.
func SignatureSize(alg packet.PublicKeyAlgorithm) (int, error) {
	return compositeSize(alg, ClassicalSignatureSize, dilithium.ParameterSet.SignatureSize)
}
