package kyber_ecdh

import (
	"github.com/openpgp-pqc/go-crypto/openpgp/errors"
	"github.com/openpgp-pqc/go-crypto/openpgp/packet"
)

// Ciphertext carries a composite KEM encapsulation and the session key
// wrapped under the combined key.
type Ciphertext struct {
	ECEphemeral     []byte
	KyberCiphertext []byte
	WrappedKey      []byte
}

// Encode encodes the ciphertext as
// ephemeral EC public key | Kyber ciphertext | follow byte length | wrapped session key.
func (ct *Ciphertext) Encode() ([]byte, error) {
	if len(ct.WrappedKey) > 255 {
		return nil, errors.InvalidArgumentError("kyber_ecdh: wrapped session key too long")
	}
	out := make([]byte, 0, len(ct.ECEphemeral)+len(ct.KyberCiphertext)+1+len(ct.WrappedKey))
	out = append(out, ct.ECEphemeral...)
	out = append(out, ct.KyberCiphertext...)
	out = append(out, byte(len(ct.WrappedKey)))
	return append(out, ct.WrappedKey...), nil
}

// ParseCiphertext decodes the encoding produced by Encode for alg.
func ParseCiphertext(data []byte, alg packet.PublicKeyAlgorithm) (*Ciphertext, error) {
	s, err := sizesFor(alg)
	if err != nil {
		return nil, err
	}
	fixed := s.ecPublic + s.kyberCiphertext
	if len(data) < fixed+1 {
		return nil, errors.StructuralError("kyber_ecdh: ciphertext too short")
	}
	followingLen := int(data[fixed])
	if len(data) != fixed+1+followingLen {
		return nil, errors.StructuralError("kyber_ecdh: wrong ciphertext length")
	}
	return &Ciphertext{
		ECEphemeral:     append([]byte(nil), data[:s.ecPublic]...),
		KyberCiphertext: append([]byte(nil), data[s.ecPublic:fixed]...),
		WrappedKey:      append([]byte(nil), data[fixed+1:]...),
	}, nil
}
