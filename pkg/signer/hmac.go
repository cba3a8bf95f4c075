package signer

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/binary"
	"errors"
	"hash"
)

// Codec signs and verifies opaque pagination cursors so clients cannot
// forge ranking positions. Implementations must be safe for concurrent
// use.
type Codec interface {
	EncodeLeaderboardCursor(hintsUsed int64, submittedAtMicro int64, id int64) string
	DecodeLeaderboardCursor(token string) (hintsUsed int64, submittedAtMicro int64, id int64, err error)
}

// HMAC implements Codec using HMAC-SHA256 for integrity, encoding
// tokens as unpadded base64url.
type HMAC struct {
	key []byte
	h   func() hash.Hash
}

func NewHMAC(key []byte) *HMAC {
	return &HMAC{key: append([]byte(nil), key...), h: sha256.New}
}

// seal signs the payload and returns a base64url token payload||sig.
func (c *HMAC) seal(payload []byte) string {
	mac := hmac.New(c.h, c.key)
	mac.Write(payload)
	sig := mac.Sum(nil)
	return base64.RawURLEncoding.EncodeToString(append(payload, sig...))
}

// open verifies the token and returns the payload bytes.
func (c *HMAC) open(token string, payloadLen int) ([]byte, error) {
	raw, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return nil, err
	}
	if len(raw) != payloadLen+sha256.Size {
		return nil, errors.New("invalid_cursor_length")
	}
	payload := raw[:payloadLen]
	sig := raw[payloadLen:]
	mac := hmac.New(c.h, c.key)
	mac.Write(payload)
	if !hmac.Equal(sig, mac.Sum(nil)) {
		return nil, errors.New("invalid_cursor_signature")
	}
	return payload, nil
}

// Leaderboard cursor: hints_used(int64) + submitted_at micros(int64) + id(int64)
func (c *HMAC) EncodeLeaderboardCursor(hintsUsed int64, submittedAtMicro int64, id int64) string {
	payload := make([]byte, 24)
	binary.BigEndian.PutUint64(payload[0:8], uint64(hintsUsed))
	binary.BigEndian.PutUint64(payload[8:16], uint64(submittedAtMicro))
	binary.BigEndian.PutUint64(payload[16:24], uint64(id))
	return c.seal(payload)
}

func (c *HMAC) DecodeLeaderboardCursor(token string) (int64, int64, int64, error) {
	payload, err := c.open(token, 24)
	if err != nil {
		return 0, 0, 0, err
	}
	hintsUsed := int64(binary.BigEndian.Uint64(payload[0:8]))
	submittedAtMicro := int64(binary.BigEndian.Uint64(payload[8:16]))
	id := int64(binary.BigEndian.Uint64(payload[16:24]))
	return hintsUsed, submittedAtMicro, id, nil
}
