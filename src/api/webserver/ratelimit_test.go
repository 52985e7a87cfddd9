package webserver

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRateLimiterAllowsWithinRate(t *testing.T) {
	rl := NewRateLimiter(3, time.Minute)
	for i := 0; i < 3; i++ {
		assert.True(t, rl.allow("talent:1"), "request %d", i)
	}
	assert.False(t, rl.allow("talent:1"))
}

func TestRateLimiterKeysAreIndependent(t *testing.T) {
	rl := NewRateLimiter(1, time.Minute)
	assert.True(t, rl.allow("talent:1"))
	assert.False(t, rl.allow("talent:1"))
	assert.True(t, rl.allow("company:2"))
}

func TestRateLimiterWindowExpiry(t *testing.T) {
	rl := NewRateLimiter(1, 20*time.Millisecond)
	assert.True(t, rl.allow("k"))
	assert.False(t, rl.allow("k"))
	time.Sleep(30 * time.Millisecond)
	assert.True(t, rl.allow("k"))
}
