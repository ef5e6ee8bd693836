// Package kyber maps the Kyber parameter sets used by OpenPGP onto the circl
// KEM schemes.
package kyber

import (
	"strconv"

	"github.com/cloudflare/circl/kem"
	"github.com/cloudflare/circl/kem/kyber/kyber1024"
	"github.com/cloudflare/circl/kem/kyber/kyber768"
	"github.com/openpgp-pqc/go-crypto/openpgp/errors"
)

type ParameterSet uint8

const (
	Kyber768  ParameterSet = 2
	Kyber1024 ParameterSet = 3
)

func (set ParameterSet) String() string {
	switch set {
	case Kyber768:
		return "Kyber768"
	case Kyber1024:
		return "Kyber1024"
	default:
		return "Kyber(" + strconv.Itoa(int(set)) + ")"
	}
}

// Scheme returns the circl KEM implementing set.
func (set ParameterSet) Scheme() (kem.Scheme, error) {
	switch set {
	case Kyber768:
		return kyber768.Scheme(), nil
	case Kyber1024:
		return kyber1024.Scheme(), nil
	default:
		return nil, errors.InvalidParameterError("kyber: unsupported parameter set " + set.String())
	}
}

// SharedSecretSize is the key share length mandated for OpenPGP, which
// differs from the scheme's own shared key size for Kyber768.
func (set ParameterSet) SharedSecretSize() (int, error) {
	switch set {
	case Kyber768:
		return 24, nil
	case Kyber1024:
		return 32, nil
	default:
		return 0, errors.InvalidParameterError("kyber: unsupported parameter set " + set.String())
	}
}

func (set ParameterSet) PublicKeySize() (int, error) {
	scheme, err := set.Scheme()
	if err != nil {
		return 0, err
	}
	return scheme.PublicKeySize(), nil
}

func (set ParameterSet) PrivateKeySize() (int, error) {
	scheme, err := set.Scheme()
	if err != nil {
		return 0, err
	}
	return scheme.PrivateKeySize(), nil
}

func (set ParameterSet) CiphertextSize() (int, error) {
	scheme, err := set.Scheme()
	if err != nil {
		return 0, err
	}
	return scheme.CiphertextSize(), nil
}
