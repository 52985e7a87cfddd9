package proposal

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidMessageBody(t *testing.T) {
	assert.False(t, validMessageBody(""))
	assert.True(t, validMessageBody("hi"))
	assert.True(t, validMessageBody(strings.Repeat("a", 2000)))
	assert.False(t, validMessageBody(strings.Repeat("a", 2001)))

	// Multibyte text is bounded by character count, not byte count: 1500
	// two-byte runes are 3000 bytes but well under the limit.
	assert.True(t, validMessageBody(strings.Repeat("é", 1500)))
	assert.True(t, validMessageBody(strings.Repeat("é", 2000)))
	assert.False(t, validMessageBody(strings.Repeat("é", 2001)))
}
