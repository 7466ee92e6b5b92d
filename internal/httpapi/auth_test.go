package httpapi

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRateLimiterAllowsUpToBurstThenLimits(t *testing.T) {
	reg := newRateLimiterRegistry(10, 0)
	allowedCount := 0
	for i := 0; i < 11; i++ {
		allowed, _ := reg.allow("key-1")
		if allowed {
			allowedCount++
		}
	}
	assert.Equal(t, 10, allowedCount)
}

func TestRateLimiterResetsAfterWindow(t *testing.T) {
	reg := newRateLimiterRegistry(10, 0)
	for i := 0; i < 10; i++ {
		reg.allow("key-2")
	}
	allowed, _ := reg.allow("key-2")
	assert.False(t, allowed)

	time.Sleep(150 * time.Millisecond)
	allowed, _ = reg.allow("key-2")
	assert.True(t, allowed)
}

func TestGenerateAPIKeyHashMatchesDerivedHash(t *testing.T) {
	plaintext, prefix, hash, err := generateAPIKey()
	assert.NoError(t, err)
	assert.Equal(t, plaintext[:12], prefix)
	assert.Equal(t, hashAPIKey(plaintext), hash)
}

func TestHashAndCheckPasswordRoundTrip(t *testing.T) {
	hash, err := hashPassword("correct horse battery staple")
	assert.NoError(t, err)
	assert.True(t, checkPassword(hash, "correct horse battery staple"))
	assert.False(t, checkPassword(hash, "wrong password"))
}
