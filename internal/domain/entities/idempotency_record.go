package entities

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/google/uuid"
)

// IdempotencyRecord remembers the response produced for a client-supplied
// Idempotency-Key so a retried request replays it instead of running twice.
// RequestHash is a keyed fingerprint; request bodies may carry passwords.
type IdempotencyRecord struct {
	Id          uuid.UUID
	Key         string
	RequestHash string
	Response    string
	StatusCode  int
	CreatedAt   time.Time
}

func NewIdempotencyRecord(key, requestHash string) *IdempotencyRecord {
	return &IdempotencyRecord{
		Id:          uuid.New(),
		Key:         key,
		RequestHash: requestHash,
		CreatedAt:   time.Now().UTC(),
	}
}

func (r *IdempotencyRecord) SetResponse(response string, statusCode int) {
	r.Response = response
	r.StatusCode = statusCode
}

// Matches reports whether requestHash fingerprints the same payload the
// record was made for.
func (r *IdempotencyRecord) Matches(requestHash string) bool {
	return hmac.Equal([]byte(r.RequestHash), []byte(requestHash))
}

// HashRequest is HMAC-SHA256 of request under secret, hex encoded.
func HashRequest(secret []byte, request string) string {
	mac := hmac.New(sha256.New, secret)
	mac.Write([]byte(request))
	return hex.EncodeToString(mac.Sum(nil))
}
