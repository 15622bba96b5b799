package digest

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// Domain prefixes for content-addressed identity.
const (
	DomainState = "crease/state/v1"
	DomainBall  = "crease/ball/v1"
)

// HashWithDomain computes SHA256(domain + 0x00 + data) as lowercase hex.
func HashWithDomain(domain string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// Hash canonicalizes v and hashes it under domain.
func Hash(domain string, v any) (string, error) {
	canonical, err := MarshalCanonical(v)
	if err != nil {
		return "", fmt.Errorf("hash %s: %w", domain, err)
	}
	return HashWithDomain(domain, canonical), nil
}

// BallID computes the content-addressed ID of a journaled ball.
// The same innings, seq and event text always produce the same ID.
func BallID(inningsID string, seq int64, event string) string {
	// All fields are strings and ints, so marshaling cannot fail.
	id, err := Hash(DomainBall, map[string]any{
		"innings_id": inningsID,
		"seq":        seq,
		"event":      event,
	})
	if err != nil {
		panic(err)
	}
	return id
}
