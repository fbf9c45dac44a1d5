package cli

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTaskID(t *testing.T) {
	id, err := parseTaskID("#42")
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)

	id, err = parseTaskID("1717000000000")
	require.NoError(t, err)
	assert.Equal(t, int64(1717000000000), id)

	_, err = parseTaskID("abc")
	assert.Error(t, err)
}

func TestConfirm(t *testing.T) {
	assert.True(t, confirm(strings.NewReader("y\n"), "Delete?"))
	assert.True(t, confirm(strings.NewReader(" YES \n"), "Delete?"))
	assert.False(t, confirm(strings.NewReader("\n"), "Delete?"))
	assert.False(t, confirm(strings.NewReader(""), "Delete?"))
}

func TestJoinArgs(t *testing.T) {
	assert.Equal(t, "Read chapter 3", joinArgs([]string{"Read", "chapter", "3 "}))
	assert.Empty(t, joinArgs(nil))
}
