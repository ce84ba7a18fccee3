package output

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testUser struct {
	Login    string `json:"login"`
	Sessions int    `json:"sessions"`
}

func TestPrintJSON(t *testing.T) {
	data := testUser{Login: "alice", Sessions: 2}

	var buf bytes.Buffer
	err := PrintJSON(&buf, data)
	require.NoError(t, err)

	output := buf.String()
	assert.Contains(t, output, `"login": "alice"`)
	assert.Contains(t, output, `"sessions": 2`)
}

func TestPrintJSONCompact(t *testing.T) {
	data := testUser{Login: "alice", Sessions: 2}

	var buf bytes.Buffer
	err := PrintJSONCompact(&buf, data)
	require.NoError(t, err)

	output := buf.String()
	// Compact JSON should not have extra indentation
	assert.Contains(t, output, `"login":"alice"`)
	assert.Contains(t, output, `"sessions":2`)
}

func TestPrintJSONArray(t *testing.T) {
	data := []testUser{
		{Login: "alice", Sessions: 1},
		{Login: "bob", Sessions: 0},
	}

	var buf bytes.Buffer
	err := PrintJSON(&buf, data)
	require.NoError(t, err)

	output := buf.String()
	assert.Contains(t, output, `"login": "alice"`)
	assert.Contains(t, output, `"login": "bob"`)
}
