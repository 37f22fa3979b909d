// Package encoding seals clone context snapshots so they can travel inside
// rendered markup and be trusted when they come back.
package encoding

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"github.com/vmihailenco/msgpack/v5"
)

// Errors returned by Decode.
var (
	ErrInvalidFormat    = errors.New("encoding: invalid snapshot format")
	ErrSignatureInvalid = errors.New("encoding: snapshot signature invalid")
	ErrDecryptFailed    = errors.New("encoding: snapshot decryption failed")
)

// sigSize is the truncated HMAC length (128 bits).
const sigSize = 16

// Encodable is implemented by values that can flatten themselves into a
// snapshot. Context states implement it.
type Encodable interface {
	Snapshot() map[string]any
}

// Encoder seals and opens context snapshots. Two modes are supported:
//   - Signed: msgpack + base64, followed by a truncated HMAC-SHA256. Visible
//     to clients but tamper-proof.
//   - Sensitive: AES-256-GCM. Opaque to clients.
type Encoder struct {
	key []byte
	gcm cipher.AEAD
}

// NewEncoder creates an encoder. Keys shorter than 32 bytes are stretched
// with SHA-256.
func NewEncoder(key []byte) (*Encoder, error) {
	if len(key) < 32 {
		sum := sha256.Sum256(key)
		key = sum[:]
	}

	block, err := aes.NewCipher(key[:32])
	if err != nil {
		return nil, fmt.Errorf("encoding: cipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("encoding: gcm: %w", err)
	}

	return &Encoder{key: key, gcm: gcm}, nil
}

// Encode packs the snapshot of v. A nil snapshot is packed as an empty map.
func (e *Encoder) Encode(v Encodable, sensitive bool) (string, error) {
	if v == nil {
		return "", errors.New("encoding: nil snapshot source")
	}
	return e.EncodeMap(v.Snapshot(), sensitive)
}

// EncodeMap packs a plain value map.
func (e *Encoder) EncodeMap(values map[string]any, sensitive bool) (string, error) {
	if values == nil {
		values = map[string]any{}
	}
	packed, err := msgpack.Marshal(values)
	if err != nil {
		return "", fmt.Errorf("encoding: pack snapshot: %w", err)
	}
	if sensitive {
		return e.seal(packed)
	}
	return e.sign(packed), nil
}

// Decode opens an encoded snapshot. sensitive must match the mode used by
// Encode.
func (e *Encoder) Decode(encoded string, sensitive bool) (map[string]any, error) {
	var (
		packed []byte
		err    error
	)
	if sensitive {
		packed, err = e.open(encoded)
	} else {
		packed, err = e.verify(encoded)
	}
	if err != nil {
		return nil, err
	}

	var values map[string]any
	if err := msgpack.Unmarshal(packed, &values); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}
	if values == nil {
		values = map[string]any{}
	}
	return values, nil
}

func (e *Encoder) mac(data []byte) []byte {
	h := hmac.New(sha256.New, e.key)
	h.Write(data)
	return h.Sum(nil)[:sigSize]
}

// sign produces "payload.signature".
func (e *Encoder) sign(data []byte) string {
	return base64.RawURLEncoding.EncodeToString(data) + "." +
		base64.RawURLEncoding.EncodeToString(e.mac(data))
}

func (e *Encoder) verify(encoded string) ([]byte, error) {
	payload, sig, ok := strings.Cut(encoded, ".")
	if !ok {
		return nil, ErrInvalidFormat
	}
	data, err := base64.RawURLEncoding.DecodeString(payload)
	if err != nil {
		return nil, ErrInvalidFormat
	}
	got, err := base64.RawURLEncoding.DecodeString(sig)
	if err != nil {
		return nil, ErrSignatureInvalid
	}
	if !hmac.Equal(got, e.mac(data)) {
		return nil, ErrSignatureInvalid
	}
	return data, nil
}

// seal produces base64(nonce || ciphertext).
func (e *Encoder) seal(data []byte) (string, error) {
	nonce := make([]byte, e.gcm.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return "", fmt.Errorf("encoding: nonce: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(e.gcm.Seal(nonce, nonce, data, nil)), nil
}

func (e *Encoder) open(encoded string) ([]byte, error) {
	raw, err := base64.RawURLEncoding.DecodeString(encoded)
	if err != nil {
		return nil, ErrInvalidFormat
	}
	n := e.gcm.NonceSize()
	if len(raw) < n {
		return nil, ErrInvalidFormat
	}
	data, err := e.gcm.Open(nil, raw[:n], raw[n:], nil)
	if err != nil {
		return nil, ErrDecryptFailed
	}
	return data, nil
}
