// Package main provides tests for the querykit CLI.
package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/leapstack-labs/querykit/internal/cli"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	t.Chdir(t.TempDir())

	cmd := cli.NewRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)

	err := cmd.Execute()
	return buf.String(), err
}

func TestVersionCommand(t *testing.T) {
	out, err := run(t, "", "version")
	require.NoError(t, err)
	assert.Contains(t, out, "querykit v")
}

func TestHelpCommand(t *testing.T) {
	out, err := run(t, "", "--help")
	require.NoError(t, err)

	for _, expected := range []string{"build", "batch", "format", "analyze", "repl", "serve", "dialects", "suggestions", "init"} {
		assert.Contains(t, out, expected)
	}
}

func TestBuildFromStdin(t *testing.T) {
	out, err := run(t, "table: users\nwhere: id = 1\n", "build", "--output", "text", "--query-only")
	require.NoError(t, err)
	assert.Equal(t, "SELECT *\nFROM users\nWHERE id = 1\n", out)
}

func TestBuildFailureExitsWithError(t *testing.T) {
	_, err := run(t, "", "build", "--output", "text")
	require.Error(t, err)
}
