// Package x448 implements native X448 session key encryption for OpenPGP:
// ECDH on Curve448, HKDF-SHA512 and AES-256 key wrap.
package x448

import (
	"crypto"
	"crypto/subtle"
	"io"

	"github.com/ProtonMail/go-crypto/openpgp/aes/keywrap"
	x448lib "github.com/cloudflare/circl/dh/x448"
	"github.com/openpgp-pqc/go-crypto/openpgp/errors"
	"github.com/openpgp-pqc/go-crypto/openpgp/hkdf"
)

const (
	hkdfInfo   = "OpenPGP X448"
	aesKeySize = 32
	// KeySize is the size of both public and private X448 keys.
	KeySize = x448lib.Size
)

type PublicKey struct {
	Point []byte
}

type PrivateKey struct {
	PublicKey
	Secret []byte
}

func NewPrivateKey(key PublicKey) *PrivateKey {
	return &PrivateKey{
		PublicKey: key,
	}
}

// SecureClear zeroes the secret scalar.
func (pk *PrivateKey) SecureClear() {
	clear(pk.Secret)
	pk.Secret = nil
}

// Validate validates that the provided public key matches
// the private key.
func Validate(pk *PrivateKey) (err error) {
	if len(pk.Secret) != KeySize {
		return errors.KeyInvalidError("x448: invalid secret size")
	}
	var expectedPublicKey, privateKey x448lib.Key
	subtle.ConstantTimeCopy(1, privateKey[:], pk.Secret)
	x448lib.KeyGen(&expectedPublicKey, &privateKey)
	clear(privateKey[:])
	if subtle.ConstantTimeCompare(expectedPublicKey[:], pk.PublicKey.Point) == 0 {
		return errors.KeyInvalidError("x448: invalid key")
	}
	return nil
}

// GenerateKey generates a new x448 key pair
func GenerateKey(rand io.Reader) (*PrivateKey, error) {
	var privateKey, publicKey x448lib.Key
	if err := generateKey(rand, &privateKey, &publicKey); err != nil {
		return nil, err
	}
	return &PrivateKey{
		PublicKey: PublicKey{Point: publicKey[:]},
		Secret:    privateKey[:],
	}, nil
}

func generateKey(rand io.Reader, privateKey *x448lib.Key, publicKey *x448lib.Key) error {
	maxRounds := 10
	isZero := true
	for round := 0; isZero; round++ {
		if round == maxRounds {
			return errors.InvalidArgumentError("x448: zero keys only, randomness source might be corrupt")
		}
		if _, err := io.ReadFull(rand, privateKey[:]); err != nil {
			return errors.NewProviderError("x448: reading key", err)
		}
		isZero = constantTimeIsZero(privateKey[:])
	}
	x448lib.KeyGen(publicKey, privateKey)
	return nil
}

// Encrypt encrypts a sessionKey with x448 according to
// the OpenPGP crypto refresh specification section 5.1.7. The sessionKey
// must be a multiple of 8 bytes and at least 16 bytes long.
func Encrypt(rand io.Reader, publicKey *PublicKey, sessionKey []byte) (ephemeralPublicKey *PublicKey, encryptedSessionKey []byte, err error) {
	var ephemeralPrivate, ephemeralPublic, staticPublic, shared x448lib.Key
	if len(publicKey.Point) != KeySize {
		return nil, nil, errors.KeyInvalidError("x448: the public key has the wrong size")
	}
	if len(sessionKey) < 16 || len(sessionKey)%8 != 0 {
		return nil, nil, errors.InvalidArgumentError("x448: session key must be a multiple of 8 bytes, at least 16")
	}
	copy(staticPublic[:], publicKey.Point)
	defer clear(ephemeralPrivate[:])
	defer clear(shared[:])

	if err = generateKey(rand, &ephemeralPrivate, &ephemeralPublic); err != nil {
		return nil, nil, err
	}
	if !x448lib.Shared(&shared, &ephemeralPrivate, &staticPublic) {
		return nil, nil, errors.KeyInvalidError("x448: the public key is a low order point")
	}

	encryptionKey, err := applyHKDF(ephemeralPublic[:], publicKey.Point, shared[:])
	if err != nil {
		return nil, nil, err
	}
	defer clear(encryptionKey)

	encryptedSessionKey, err = keywrap.Wrap(encryptionKey, sessionKey)
	if err != nil {
		return nil, nil, errors.NewProviderError("x448: key wrap", err)
	}
	return &PublicKey{Point: ephemeralPublic[:]}, encryptedSessionKey, nil
}

// Decrypt decrypts a session key stored in ciphertext with the provided x448
// private key and ephemeral public key
func Decrypt(privateKey *PrivateKey, ephemeralPublicKey *PublicKey, ciphertext []byte) (encodedSessionKey []byte, err error) {
	var ephemeralPublic, staticPrivate, shared x448lib.Key
	if ephemeralPublicKey == nil || len(ephemeralPublicKey.Point) != KeySize {
		return nil, errors.StructuralError("x448: the ephemeral public key has the wrong size")
	}
	if privateKey == nil || len(privateKey.Secret) != KeySize {
		return nil, errors.ErrKeyNotInitialized
	}
	if len(privateKey.PublicKey.Point) != KeySize {
		return nil, errors.KeyInvalidError("x448: the public key has the wrong size")
	}
	copy(ephemeralPublic[:], ephemeralPublicKey.Point)
	subtle.ConstantTimeCopy(1, staticPrivate[:], privateKey.Secret)
	defer clear(staticPrivate[:])
	defer clear(shared[:])

	if !x448lib.Shared(&shared, &staticPrivate, &ephemeralPublic) {
		return nil, errors.DecapsulationError("x448: the ephemeral public key is a low order point")
	}

	encryptionKey, err := applyHKDF(ephemeralPublicKey.Point, privateKey.PublicKey.Point, shared[:])
	if err != nil {
		return nil, err
	}
	defer clear(encryptionKey)

	encodedSessionKey, err = keywrap.Unwrap(encryptionKey, ciphertext)
	if err != nil {
		return nil, errors.DecapsulationError("x448: session key unwrap failed")
	}
	return encodedSessionKey, nil
}

func applyHKDF(ephemeralPublicKey []byte, publicKey []byte, sharedSecret []byte) ([]byte, error) {
	inputKey := make([]byte, 3*KeySize)
	defer clear(inputKey)
	// ephemeral public key | recipient public key | shared secret
	subtle.ConstantTimeCopy(1, inputKey[:KeySize], ephemeralPublicKey)
	subtle.ConstantTimeCopy(1, inputKey[KeySize:2*KeySize], publicKey)
	subtle.ConstantTimeCopy(1, inputKey[2*KeySize:], sharedSecret)

	kdf, err := hkdf.New(crypto.SHA512)
	if err != nil {
		return nil, err
	}
	return kdf.ExtractExpand(nil, inputKey, []byte(hkdfInfo), aesKeySize)
}

func constantTimeIsZero(bytes []byte) bool {
	isZero := byte(0)
	for _, b := range bytes {
		isZero |= b
	}
	return isZero == 0
}

// ENCODING/DECODING ciphertexts:

// EncodedFieldsLength returns the length of the ciphertext encoding
// given the encrypted session key.
func EncodedFieldsLength(encryptedSessionKey []byte, v6 bool) int {
	lenCipherFunction := 0
	if !v6 {
		lenCipherFunction = 1
	}
	return KeySize + 1 + len(encryptedSessionKey) + lenCipherFunction
}

// EncodeFields encodes x448 session key encryption as
// ephemeral x448 public key | follow byte length | cipherFunction (v3 only) | encryptedSessionKey
// and writes it to writer.
func EncodeFields(writer io.Writer, ephemeralPublicKey *PublicKey, encryptedSessionKey []byte, cipherFunction byte, v6 bool) (err error) {
	lenAlgorithm := 0
	if !v6 {
		lenAlgorithm = 1
	}
	if len(encryptedSessionKey)+lenAlgorithm > 255 {
		return errors.InvalidArgumentError("x448: encrypted session key too long")
	}
	if _, err = writer.Write(ephemeralPublicKey.Point); err != nil {
		return
	}
	if _, err = writer.Write([]byte{byte(len(encryptedSessionKey) + lenAlgorithm)}); err != nil {
		return
	}
	if !v6 {
		if _, err = writer.Write([]byte{cipherFunction}); err != nil {
			return
		}
	}
	_, err = writer.Write(encryptedSessionKey)
	return
}

// DecodeFields decodes a x448 session key encryption as
// ephemeral x448 public key | follow byte length | cipherFunction (v3 only) | encryptedSessionKey.
func DecodeFields(reader io.Reader, v6 bool) (ephemeralPublicKey *PublicKey, encryptedSessionKey []byte, cipherFunction byte, err error) {
	var buf [1]byte
	ephemeralPublicKey = &PublicKey{
		Point: make([]byte, KeySize),
	}
	// 56 octets representing an ephemeral x448 public key.
	if _, err = io.ReadFull(reader, ephemeralPublicKey.Point); err != nil {
		return
	}
	// A one-octet size of the following fields.
	if _, err = io.ReadFull(reader, buf[:]); err != nil {
		return
	}
	followingLen := buf[0]
	// The one-octet algorithm identifier, if it was passed (in the case of a v3 PKESK packet).
	if !v6 {
		if followingLen == 0 {
			err = errors.StructuralError("x448: missing cipher function")
			return
		}
		if _, err = io.ReadFull(reader, buf[:]); err != nil {
			return
		}
		cipherFunction = buf[0]
		followingLen -= 1
	}
	// The encrypted session key.
	encryptedSessionKey = make([]byte, followingLen)
	_, err = io.ReadFull(reader, encryptedSessionKey)
	return
}
