// Package errors contains common error types for the composite OpenPGP key layer.
package errors

import (
	goerrors "errors"
	"strconv"
)

// A StructuralError is returned when encoded key material, signatures or
// ciphertexts do not have the length or layout required by their algorithm.
type StructuralError string

func (s StructuralError) Error() string {
	return "openpgp: invalid data: " + string(s)
}

// InvalidAlgorithmError is returned when a public key algorithm identifier
// is not one of the schemes a function handles.
type InvalidAlgorithmError string

func (i InvalidAlgorithmError) Error() string {
	return "openpgp: invalid algorithm: " + string(i)
}

// UnknownAlgorithmError builds an InvalidAlgorithmError for a raw algorithm id.
func UnknownAlgorithmError(prefix string, id uint8) error {
	return InvalidAlgorithmError(prefix + ": unknown public key algorithm " + strconv.Itoa(int(id)))
}

// InvalidParameterError is returned when a curve or parameter set is not
// supported by this build.
type InvalidParameterError string

func (i InvalidParameterError) Error() string {
	return "openpgp: invalid parameter: " + string(i)
}

// InvalidArgumentError is returned when the caller passes an argument that
// cannot be used, e.g. a session key with a bad length.
type InvalidArgumentError string

func (i InvalidArgumentError) Error() string {
	return "openpgp: invalid argument: " + string(i)
}

// NotInitializedError is returned when a key is used before both of its
// components were installed, or after it was cleared.
type NotInitializedError string

func (n NotInitializedError) Error() string {
	return "openpgp: key not initialized: " + string(n)
}

// ErrKeyNotInitialized is the generic NotInitializedError.
var ErrKeyNotInitialized error = NotInitializedError("key material is missing or was cleared")

// KeyInvalidError indicates that the public key parameters do not match the
// private key.
type KeyInvalidError string

func (e KeyInvalidError) Error() string {
	return "openpgp: invalid key: " + string(e)
}

// SignatureError indicates that a syntactically valid signature failed to
// validate.
type SignatureError string

func (b SignatureError) Error() string {
	return "openpgp: invalid signature: " + string(b)
}

// DecapsulationError is returned when a KEM ciphertext is rejected. It never
// reveals which check failed.
type DecapsulationError string

func (d DecapsulationError) Error() string {
	return "openpgp: decapsulation failed: " + string(d)
}

// ProviderError wraps a failure reported by an underlying primitive
// (random source, curve, lattice or key wrap implementation).
type ProviderError struct {
	Op  string
	Err error
}

func (p *ProviderError) Error() string {
	return "openpgp: " + p.Op + ": " + p.Err.Error()
}

func (p *ProviderError) Unwrap() error {
	return p.Err
}

// NewProviderError wraps err, returning nil if err is nil. Errors that
// already carry a Category are returned unchanged.
func NewProviderError(op string, err error) error {
	if err == nil || Classify(err) != CategoryUnknown {
		return err
	}
	return &ProviderError{Op: op, Err: err}
}

// Category tells a caller what kind of decision an error supports.
type Category int

const (
	CategoryUnknown Category = iota
	// CategoryMalformedInput covers caller bugs and attacker supplied data.
	CategoryMalformedInput
	// CategoryProvider covers build, configuration and primitive failures.
	CategoryProvider
	// CategoryRejected covers genuine cryptographic rejections.
	CategoryRejected
)

func (c Category) String() string {
	switch c {
	case CategoryMalformedInput:
		return "malformed input"
	case CategoryProvider:
		return "provider failure"
	case CategoryRejected:
		return "cryptographic rejection"
	default:
		return "unknown"
	}
}

// Classify maps err onto a Category.
func Classify(err error) Category {
	var (
		structural  StructuralError
		algorithm   InvalidAlgorithmError
		argument    InvalidArgumentError
		notInit     NotInitializedError
		parameter   InvalidParameterError
		provider    *ProviderError
		keyInvalid  KeyInvalidError
		signature   SignatureError
		decapsulate DecapsulationError
	)
	switch {
	case err == nil:
		return CategoryUnknown
	case goerrors.As(err, &provider), goerrors.As(err, &parameter):
		return CategoryProvider
	case goerrors.As(err, &structural), goerrors.As(err, &algorithm),
		goerrors.As(err, &argument), goerrors.As(err, &notInit):
		return CategoryMalformedInput
	case goerrors.As(err, &keyInvalid), goerrors.As(err, &signature), goerrors.As(err, &decapsulate):
		return CategoryRejected
	default:
		return CategoryUnknown
	}
}
