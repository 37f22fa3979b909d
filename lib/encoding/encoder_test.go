package encoding

import (
	"errors"
	"strings"
	"testing"
)

// testSnapshot implements Encodable for testing.
type testSnapshot map[string]any

func (s testSnapshot) Snapshot() map[string]any { return s }

func asInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case int8:
		return int64(n), true
	case int16:
		return int64(n), true
	case int32:
		return int64(n), true
	case int64:
		return n, true
	case uint8:
		return int64(n), true
	case uint16:
		return int64(n), true
	case uint32:
		return int64(n), true
	case uint64:
		return int64(n), true
	case int:
		return int64(n), true
	}
	return 0, false
}

// flip replaces the character at i with a different base64url character.
func flip(s string, i int) string {
	c := byte('A')
	if s[i] == 'A' {
		c = 'B'
	}
	return s[:i] + string(c) + s[i+1:]
}

func TestNewEncoder(t *testing.T) {
	// Any key length works; short keys are stretched.
	if _, err := NewEncoder([]byte("short")); err != nil {
		t.Fatalf("NewEncoder with short key failed: %v", err)
	}
	if _, err := NewEncoder([]byte("this-is-a-32-byte-key-for-aes!!!")); err != nil {
		t.Fatalf("NewEncoder with 32-byte key failed: %v", err)
	}
	if _, err := NewEncoder(nil); err != nil {
		t.Fatalf("NewEncoder with nil key failed: %v", err)
	}
}

func TestRoundTrip(t *testing.T) {
	enc, err := NewEncoder([]byte("test-key"))
	if err != nil {
		t.Fatalf("NewEncoder failed: %v", err)
	}

	for _, sensitive := range []bool{false, true} {
		name := "signed"
		if sensitive {
			name = "sensitive"
		}
		t.Run(name, func(t *testing.T) {
			original := testSnapshot{"index": 12345, "name": "row.txt", "open": true}

			encoded, err := enc.Encode(original, sensitive)
			if err != nil {
				t.Fatalf("Encode failed: %v", err)
			}
			if encoded == "" {
				t.Fatal("encoded snapshot is empty")
			}

			decoded, err := enc.Decode(encoded, sensitive)
			if err != nil {
				t.Fatalf("Decode failed: %v", err)
			}
			if n, ok := asInt64(decoded["index"]); !ok || n != 12345 {
				t.Errorf("index = %v (%T), want 12345", decoded["index"], decoded["index"])
			}
			if decoded["name"] != "row.txt" {
				t.Errorf("name = %v, want row.txt", decoded["name"])
			}
			if decoded["open"] != true {
				t.Errorf("open = %v, want true", decoded["open"])
			}
		})
	}
}

func TestSignedTampered(t *testing.T) {
	enc, _ := NewEncoder([]byte("test-key"))

	encoded, err := enc.Encode(testSnapshot{"id": 1}, false)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	tampered := flip(encoded, strings.IndexByte(encoded, '.')+1)
	if _, err := enc.Decode(tampered, false); !errors.Is(err, ErrSignatureInvalid) {
		t.Errorf("Decode(tampered) error = %v, want ErrSignatureInvalid", err)
	}
}

func TestSensitiveTampered(t *testing.T) {
	enc, _ := NewEncoder([]byte("test-key"))

	encoded, err := enc.Encode(testSnapshot{"id": 1}, true)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	tampered := flip(encoded, len(encoded)/2)
	if _, err := enc.Decode(tampered, true); err == nil {
		t.Error("expected error for tampered ciphertext, got nil")
	}
}

func TestInvalidFormat(t *testing.T) {
	enc, _ := NewEncoder([]byte("test-key"))

	if _, err := enc.Decode("nosignatureseparator", false); !errors.Is(err, ErrInvalidFormat) {
		t.Errorf("Decode() error = %v, want ErrInvalidFormat", err)
	}
	if _, err := enc.Decode("!!", true); !errors.Is(err, ErrInvalidFormat) {
		t.Errorf("Decode(sensitive) error = %v, want ErrInvalidFormat", err)
	}
}

func TestDifferentKeysCannotDecode(t *testing.T) {
	enc1, _ := NewEncoder([]byte("key-one"))
	enc2, _ := NewEncoder([]byte("key-two"))

	encoded, err := enc1.Encode(testSnapshot{"id": 1}, false)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	if _, err := enc2.Decode(encoded, false); err == nil {
		t.Error("expected error when decoding with a different key")
	}
}

func TestEmptySnapshot(t *testing.T) {
	enc, _ := NewEncoder([]byte("test-key"))

	encoded, err := enc.EncodeMap(nil, false)
	if err != nil {
		t.Fatalf("EncodeMap failed: %v", err)
	}
	decoded, err := enc.Decode(encoded, false)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if decoded == nil || len(decoded) != 0 {
		t.Errorf("decoded = %v, want empty map", decoded)
	}
}

func TestEncodeNil(t *testing.T) {
	enc, _ := NewEncoder([]byte("test-key"))
	if _, err := enc.Encode(nil, false); err == nil {
		t.Error("expected error encoding nil source")
	}
}
