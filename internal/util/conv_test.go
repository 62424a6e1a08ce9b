package util

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseUint(t *testing.T) {
	id, err := ParseUint("42")
	require.NoError(t, err)
	assert.Equal(t, uint(42), id)
}

func TestParseUintRejectsBadInput(t *testing.T) {
	for _, input := range []string{"abc", "", "-1", "4.2", "42abc"} {
		_, err := ParseUint(input)
		assert.Error(t, err, "input %q", input)
	}
}

func TestTruncateText(t *testing.T) {
	assert.Equal(t, "short", TruncateText("short", 100))
	assert.Equal(t, strings.Repeat("x", 10)+"...", TruncateText(strings.Repeat("x", 25), 10))
	// Rune boundaries, not bytes.
	assert.Equal(t, "数学题...", TruncateText("数学题目文本", 3))
}
