package auth

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTokenCodec(t *testing.T) {
	t.Run("rejects empty secret", func(t *testing.T) {
		_, err := NewTokenCodec("", time.Hour)
		assert.Error(t, err)
		_, err = NewTokenCodec("   ", time.Hour)
		assert.Error(t, err)
	})

	t.Run("defaults ttl when unset", func(t *testing.T) {
		codec, err := NewTokenCodec("secret-a", 0)
		require.NoError(t, err)
		assert.Equal(t, DefaultSessionTTL, codec.ttl)
	})
}

func TestTokenRoundTrip(t *testing.T) {
	codec, err := NewTokenCodec("secret-a", time.Hour)
	require.NoError(t, err)

	token, err := codec.Issue("user-42")
	require.NoError(t, err)
	assert.Len(t, strings.Split(token, "."), 2, "token has exactly two segments")

	claims := codec.Verify(token)
	require.NotNil(t, claims)
	assert.Equal(t, "user-42", claims.Subject)
	assert.Greater(t, claims.ExpiresAt, claims.IssuedAt)
}

func TestTokenExpiry(t *testing.T) {
	codec, err := NewTokenCodec("secret-a", time.Hour)
	require.NoError(t, err)

	issued := time.Now().UTC()
	codec.now = func() time.Time { return issued }
	token, err := codec.Issue("user-42")
	require.NoError(t, err)

	t.Run("valid before expiry", func(t *testing.T) {
		codec.now = func() time.Time { return issued.Add(59 * time.Minute) }
		assert.NotNil(t, codec.Verify(token))
	})

	t.Run("nil after expiry", func(t *testing.T) {
		codec.now = func() time.Time { return issued.Add(time.Hour + time.Second) }
		assert.Nil(t, codec.Verify(token))
	})
}

func TestTokenTampering(t *testing.T) {
	codec, err := NewTokenCodec("secret-a", time.Hour)
	require.NoError(t, err)

	token, err := codec.Issue("user-42")
	require.NoError(t, err)

	t.Run("any flipped signature character fails", func(t *testing.T) {
		dot := strings.Index(token, ".")
		require.Greater(t, dot, 0)
		for i := dot + 1; i < len(token); i++ {
			flipped := []byte(token)
			if flipped[i] == 'A' {
				flipped[i] = 'B'
			} else {
				flipped[i] = 'A'
			}
			assert.Nil(t, codec.Verify(string(flipped)), "position %d", i)
		}
	})

	t.Run("trailing-bit variant of final signature char fails", func(t *testing.T) {
		// A 32-byte signature encodes to 43 base64url characters, so the
		// final character carries 2 unused bits. A lenient decoder maps
		// characters differing only in those bits to the same bytes; such a
		// variant token must still be rejected.
		const alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789-_"
		for i := 0; i < 50; i++ {
			token, err := codec.Issue(fmt.Sprintf("user-%d", i))
			require.NoError(t, err)

			idx := strings.IndexByte(alphabet, token[len(token)-1])
			require.GreaterOrEqual(t, idx, 0)
			variant := token[:len(token)-1] + string(alphabet[idx^1])
			require.NotEqual(t, token, variant)

			assert.Nil(t, codec.Verify(variant))
			assert.NotNil(t, codec.Verify(token))
		}
	})

	t.Run("forged payload fails before expiry is trusted", func(t *testing.T) {
		other, err := NewTokenCodec("secret-b", time.Hour)
		require.NoError(t, err)
		forged, err := other.Issue("user-42")
		require.NoError(t, err)
		assert.Nil(t, codec.Verify(forged))
	})

	t.Run("cross secret verification fails", func(t *testing.T) {
		other, err := NewTokenCodec("secret-b", time.Hour)
		require.NoError(t, err)
		assert.Nil(t, other.Verify(token))
	})
}

func TestTokenMalformedInput(t *testing.T) {
	codec, err := NewTokenCodec("secret-a", time.Hour)
	require.NoError(t, err)

	for _, token := range []string{
		"",
		"no-separator",
		".",
		"onlypayload.",
		".onlysignature",
		"not!base64url.c2ln",
		"c2ln.not!base64url",
		"a.b.c",
	} {
		assert.Nil(t, codec.Verify(token), "token %q", token)
	}
}
