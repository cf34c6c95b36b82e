package utils

import (
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateOrderID(t *testing.T) {
	id, err := GenerateOrderID(42)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(id, "SUN6BKS-42-"), id)
	assert.Regexp(t, regexp.MustCompile(`^SUN6BKS-42-\d+-[0-9A-F]{6}$`), id)

	other, err := GenerateOrderID(42)
	require.NoError(t, err)
	assert.NotEqual(t, id, other)
}

func TestGenerateTicketCode(t *testing.T) {
	code, err := GenerateTicketCode()
	require.NoError(t, err)
	assert.Regexp(t, regexp.MustCompile(`^SUN6-[0-9A-F]{4}-[0-9A-F]{4}-[0-9A-F]{4}$`), code)

	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		c, err := GenerateTicketCode()
		require.NoError(t, err)
		assert.False(t, seen[c], "duplicate ticket code %s", c)
		seen[c] = true
	}
}
