// Package packet holds the OpenPGP identifiers and configuration shared by
// the composite key packages.
package packet

import "strconv"

// PublicKeyAlgorithm represents the different public key system specified for
// OpenPGP. See
// https://www.ietf.org/archive/id/draft-wussler-openpgp-pqc-02.html#name-iana-considerations
type PublicKeyAlgorithm uint8

const (
	PubKeyAlgoX25519  PublicKeyAlgorithm = 25
	PubKeyAlgoX448    PublicKeyAlgorithm = 26
	PubKeyAlgoEd25519 PublicKeyAlgorithm = 27
	PubKeyAlgoEd448   PublicKeyAlgorithm = 28

	// Experimental PQC KEM algorithms
	PubKeyAlgoKyber768X25519        PublicKeyAlgorithm = 29
	PubKeyAlgoKyber1024X448         PublicKeyAlgorithm = 30
	PubKeyAlgoKyber768P256          PublicKeyAlgorithm = 31
	PubKeyAlgoKyber1024P384         PublicKeyAlgorithm = 32
	PubKeyAlgoKyber768Brainpool256  PublicKeyAlgorithm = 33
	PubKeyAlgoKyber1024Brainpool384 PublicKeyAlgorithm = 34

	// Experimental PQC DSA algorithms
	PubKeyAlgoDilithium3Ed25519      PublicKeyAlgorithm = 35
	PubKeyAlgoDilithium5Ed448        PublicKeyAlgorithm = 36
	PubKeyAlgoDilithium3P256         PublicKeyAlgorithm = 37
	PubKeyAlgoDilithium5P384         PublicKeyAlgorithm = 38
	PubKeyAlgoDilithium3Brainpool256 PublicKeyAlgorithm = 39
	PubKeyAlgoDilithium5Brainpool384 PublicKeyAlgorithm = 40
)

// DilithiumAlgorithms lists every Dilithium + ECC composite signature scheme.
var DilithiumAlgorithms = []PublicKeyAlgorithm{
	PubKeyAlgoDilithium3Ed25519,
	PubKeyAlgoDilithium5Ed448,
	PubKeyAlgoDilithium3P256,
	PubKeyAlgoDilithium5P384,
	PubKeyAlgoDilithium3Brainpool256,
	PubKeyAlgoDilithium5Brainpool384,
}

// KyberAlgorithms lists every Kyber + ECC composite KEM scheme.
var KyberAlgorithms = []PublicKeyAlgorithm{
	PubKeyAlgoKyber768X25519,
	PubKeyAlgoKyber1024X448,
	PubKeyAlgoKyber768P256,
	PubKeyAlgoKyber1024P384,
	PubKeyAlgoKyber768Brainpool256,
	PubKeyAlgoKyber1024Brainpool384,
}

// CanEncrypt returns true if it's possible to encrypt a message to a public
// key of the given type.
func (pka PublicKeyAlgorithm) CanEncrypt() bool {
	switch pka {
	case PubKeyAlgoX25519, PubKeyAlgoX448:
		return true
	}
	return pka.IsKyber()
}

// CanSign returns true if it's possible for a public key of the given type to
// sign a message.
func (pka PublicKeyAlgorithm) CanSign() bool {
	switch pka {
	case PubKeyAlgoEd25519, PubKeyAlgoEd448:
		return true
	}
	return pka.IsDilithium()
}

// IsDilithium reports whether pka is a Dilithium + ECC composite scheme.
func (pka PublicKeyAlgorithm) IsDilithium() bool {
	return pka >= PubKeyAlgoDilithium3Ed25519 && pka <= PubKeyAlgoDilithium5Brainpool384
}

// IsKyber reports whether pka is a Kyber + ECC composite scheme.
func (pka PublicKeyAlgorithm) IsKyber() bool {
	return pka >= PubKeyAlgoKyber768X25519 && pka <= PubKeyAlgoKyber1024Brainpool384
}

// IsComposite reports whether pka combines a classical and a post-quantum algorithm.
func (pka PublicKeyAlgorithm) IsComposite() bool {
	return pka.IsDilithium() || pka.IsKyber()
}

func (pka PublicKeyAlgorithm) String() string {
	switch pka {
	case PubKeyAlgoX25519:
		return "X25519"
	case PubKeyAlgoX448:
		return "X448"
	case PubKeyAlgoEd25519:
		return "Ed25519"
	case PubKeyAlgoEd448:
		return "Ed448"
	case PubKeyAlgoKyber768X25519:
		return "Kyber768+X25519"
	case PubKeyAlgoKyber1024X448:
		return "Kyber1024+X448"
	case PubKeyAlgoKyber768P256:
		return "Kyber768+P256"
	case PubKeyAlgoKyber1024P384:
		return "Kyber1024+P384"
	case PubKeyAlgoKyber768Brainpool256:
		return "Kyber768+BrainpoolP256"
	case PubKeyAlgoKyber1024Brainpool384:
		return "Kyber1024+BrainpoolP384"
	case PubKeyAlgoDilithium3Ed25519:
		return "Dilithium3+Ed25519"
	case PubKeyAlgoDilithium5Ed448:
		return "Dilithium5+Ed448"
	case PubKeyAlgoDilithium3P256:
		return "Dilithium3+P256"
	case PubKeyAlgoDilithium5P384:
		return "Dilithium5+P384"
	case PubKeyAlgoDilithium3Brainpool256:
		return "Dilithium3+BrainpoolP256"
	case PubKeyAlgoDilithium5Brainpool384:
		return "Dilithium5+BrainpoolP384"
	}
	return "unknown(" + strconv.Itoa(int(pka)) + ")"
}

// Curve names an elliptic curve used by the classical half of a composite
// key. The values match the generic names of the ecc curve registry.
type Curve string

const (
	Curve25519         Curve = "Curve25519"
	Curve448           Curve = "Curve448"
	CurveEd25519       Curve = "Ed25519"
	CurveEd448         Curve = "Ed448"
	CurveNistP256      Curve = "P256"
	CurveNistP384      Curve = "P384"
	CurveNistP521      Curve = "P521"
	CurveBrainpoolP256 Curve = "BrainpoolP256"
	CurveBrainpoolP384 Curve = "BrainpoolP384"
	CurveBrainpoolP512 Curve = "BrainpoolP512"
)
