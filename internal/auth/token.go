package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"strings"
	"time"
)

// DefaultSessionTTL is how long an issued session token stays valid.
const DefaultSessionTTL = 7 * 24 * time.Hour

// SessionClaims is the data carried inside a signed session token.
type SessionClaims struct {
	Subject   string `json:"sub"`
	IssuedAt  int64  `json:"iat"`
	ExpiresAt int64  `json:"exp"`
}

// TokenCodec issues and verifies compact session tokens of the form
// base64url(payload json) "." base64url(hmac-sha256 signature). Verification
// fails closed: any malformed, forged, or expired token yields nil claims.
type TokenCodec struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenCodec builds a codec around the process-wide signing secret. An
// empty secret is a configuration error and is rejected here so the caller
// can refuse to start.
func NewTokenCodec(secret string, ttl time.Duration) (*TokenCodec, error) {
	if strings.TrimSpace(secret) == "" {
		return nil, errors.New("signing secret is required")
	}
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &TokenCodec{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}, nil
}

// Issue signs a fresh token for the subject with iat = now and
// exp = now + ttl.
func (c *TokenCodec) Issue(subjectID string) (string, error) {
	if subjectID == "" {
		return "", errors.New("subject id is required")
	}
	now := c.now().UTC()
	claims := SessionClaims{
		Subject:   subjectID,
		IssuedAt:  now.Unix(),
		ExpiresAt: now.Add(c.ttl).Unix(),
	}
	payload, err := json.Marshal(claims)
	if err != nil {
		return "", err
	}
	segment := base64.RawURLEncoding.EncodeToString(payload)
	sig := c.sign(segment)
	return segment + "." + base64.RawURLEncoding.EncodeToString(sig), nil
}

// Verify checks the token and returns its claims, or nil when the token is
// malformed, carries a bad signature, or has expired. The signature is
// checked before any payload field is trusted, so a forged expiry cannot
// extend a session. The comparison happens in the encoded domain: decoding
// the presented signature first would let base64 trailing-bit variants of
// the final character alias to the same bytes and still verify.
func (c *TokenCodec) Verify(token string) *SessionClaims {
	segment, sigSegment, ok := strings.Cut(token, ".")
	if !ok || segment == "" || sigSegment == "" {
		return nil
	}
	expected := base64.RawURLEncoding.EncodeToString(c.sign(segment))
	if !hmac.Equal([]byte(sigSegment), []byte(expected)) {
		return nil
	}

	payload, err := base64.RawURLEncoding.DecodeString(segment)
	if err != nil {
		return nil
	}
	var claims SessionClaims
	if err := json.Unmarshal(payload, &claims); err != nil {
		return nil
	}
	if claims.Subject == "" {
		return nil
	}
	if c.now().UTC().Unix() > claims.ExpiresAt {
		return nil
	}
	return &claims
}

func (c *TokenCodec) sign(payloadSegment string) []byte {
	mac := hmac.New(sha256.New, c.secret)
	mac.Write([]byte(payloadSegment))
	return mac.Sum(nil)
}
