package output

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTableData(t *testing.T) {
	table := NewTableData("Login", "Groups", "Status")

	assert.Equal(t, []string{"Login", "Groups", "Status"}, table.Headers())
	assert.Empty(t, table.Rows())

	table.AddRow("alice", "root", "Active")
	table.AddRow("bob", "staff", "OnHold")

	rows := table.Rows()
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"alice", "root", "Active"}, rows[0])
	assert.Equal(t, []string{"bob", "staff", "OnHold"}, rows[1])
}

func TestPrintTable(t *testing.T) {
	table := NewTableData("Name", "Description")
	table.AddRow("users:get", "List and retrieve users")
	table.AddRow("events:commit", "Approve staged changes")

	var buf bytes.Buffer
	err := PrintTable(&buf, table)
	require.NoError(t, err)

	output := buf.String()
	assert.Contains(t, output, "NAME")
	assert.Contains(t, output, "DESCRIPTION")
	assert.Contains(t, output, "users:get")
	assert.Contains(t, output, "List and retrieve users")
	assert.Contains(t, output, "events:commit")
	assert.Contains(t, output, "Approve staged changes")
}

func TestSimpleTable(t *testing.T) {
	pairs := [][2]string{
		{"Login", "alice"},
		{"Status", "Active"},
	}

	var buf bytes.Buffer
	err := SimpleTable(&buf, pairs)
	require.NoError(t, err)

	output := buf.String()
	assert.Contains(t, output, "Login")
	assert.Contains(t, output, "alice")
	assert.Contains(t, output, "Status")
	assert.Contains(t, output, "Active")
}
