package dilithium_exdsa

import (
	"github.com/openpgp-pqc/go-crypto/openpgp/errors"
	"github.com/openpgp-pqc/go-crypto/openpgp/packet"
)

// Signature holds the two component signatures of a composite signature.
// It performs no validation of its own; Verify does.
type Signature struct {
	Classical []byte
	Dilithium []byte
}

func NewSignature(classical, dilithium []byte) *Signature {
	return &Signature{Classical: classical, Dilithium: dilithium}
}

// Encode returns the classical signature followed by the Dilithium one.
func (sig *Signature) Encode() []byte {
	out := make([]byte, 0, len(sig.Classical)+len(sig.Dilithium))
	out = append(out, sig.Classical...)
	return append(out, sig.Dilithium...)
}

// ParseSignature splits an encoded composite signature for alg.
func ParseSignature(data []byte, alg packet.PublicKeyAlgorithm) (*Signature, error) {
	size, err := SignatureSize(alg)
	if err != nil {
		return nil, err
	}
	if len(data) != size {
		return nil, errors.StructuralError("dilithium_exdsa: wrong signature length")
	}
	offset, _ := ClassicalSignatureSize(mustCurve(alg))
	return NewSignature(
		append([]byte(nil), data[:offset]...),
		append([]byte(nil), data[offset:]...),
	), nil
}
