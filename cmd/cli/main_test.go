package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRun_Generated(t *testing.T) {
	t.Parallel()

	out := &bytes.Buffer{}
	err := run(out, []string{"--areas", "2", "--bins", "2"})

	require.NoError(t, err)
	require.Contains(t, out.String(), "Deployment accepted.")
}

func TestRun_InvalidTopologyFile(t *testing.T) {
	t.Parallel()

	// Unbalanced braces.
	filePath := filepath.Join(t.TempDir(), "main.hcl")
	require.NoError(t, os.WriteFile(filePath, []byte(`node "cloud" {`), 0600))

	out := &bytes.Buffer{}
	err := run(out, []string{filePath})

	require.Error(t, err)
	require.Contains(t, err.Error(), "config error")
	require.NotContains(t, out.String(), "Deployment accepted.")
}

func TestRun_ShouldExit(t *testing.T) {
	t.Parallel()

	out := &bytes.Buffer{}
	err := run(out, []string{"-h"})

	require.NoError(t, err)
	require.Contains(t, out.String(), "Usage:")
}

func TestRun_ParseError(t *testing.T) {
	t.Parallel()

	out := &bytes.Buffer{}
	err := run(out, []string{"--this-is-not-a-valid-flag"})

	require.Error(t, err)
	require.Contains(t, err.Error(), "flag provided but not defined: -this-is-not-a-valid-flag")
}
