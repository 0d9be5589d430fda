package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommands(t *testing.T) {
	root := newRootCmd()

	var names []string
	for _, c := range root.Commands() {
		names = append(names, c.Name())
	}
	assert.ElementsMatch(t, []string{"serve", "migrate", "rescore", "create-admin"}, names)
}

func TestRescoreRequiresTest(t *testing.T) {
	root := newRootCmd()
	root.SetOut(&bytes.Buffer{})
	root.SetArgs([]string{"rescore"})

	err := root.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--test is required")
}

func TestCreateAdminRequiresCredentials(t *testing.T) {
	t.Setenv("ADMIN_PASSWORD", "")
	root := newRootCmd()
	root.SetArgs([]string{"create-admin", "--email", "root@example.com"})

	err := root.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "password are required")
}
