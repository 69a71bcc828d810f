package idgen

import (
	"crypto/rand"
	"encoding/binary"
	"encoding/hex"
	"fmt"
)

const (
	// UIDMin is the lowest participant uid the generator can return.
	UIDMin = 100000000
	// UIDMax is the highest participant uid the generator can return.
	UIDMax = 999999999
)

// GenerateUID returns a random 9-digit participant uid in [UIDMin, UIDMax].
// The uid doubles as the numeric RTC participant id, which is why it is
// constrained to a fixed decimal width rather than being an opaque string.
// Collisions are probabilistic and not retried.
func GenerateUID() (int64, error) {
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return 0, fmt.Errorf("read random bytes: %w", err)
	}
	span := int64(UIDMax - UIDMin + 1)
	n := int64(binary.BigEndian.Uint64(buf[:]) % uint64(span))
	return UIDMin + n, nil
}

// GenerateSessionID returns a 32-character lowercase hex session id.
func GenerateSessionID() (string, error) {
	var buf [16]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return "", fmt.Errorf("read random bytes: %w", err)
	}
	return hex.EncodeToString(buf[:]), nil
}

// GenerateNonce returns a random alphanumeric nonce of the given length.
func GenerateNonce(length int) (string, error) {
	bytes := make([]byte, length)
	if _, err := rand.Read(bytes); err != nil {
		return "", fmt.Errorf("read random bytes: %w", err)
	}

	const charset = "0123456789abcdefghijklmnopqrstuvwxyz"
	encoded := make([]byte, length)
	for i := 0; i < length; i++ {
		encoded[i] = charset[bytes[i]%36] // 36 = len(charset)
	}
	return string(encoded), nil
}
