package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/specialistvlad/sysmlgo/internal/cli"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun_Help(t *testing.T) {
	out := &bytes.Buffer{}
	err := run(context.Background(), out, &bytes.Buffer{}, []string{"-h"})

	require.NoError(t, err)
	assert.Contains(t, out.String(), "Usage:")
}

func TestRun_Tree(t *testing.T) {
	path := filepath.Join(t.TempDir(), "main.hcl")
	src := `
model "Lander" {
  block "Leg" {
    multiplicity = 4
  }
}
`
	require.NoError(t, os.WriteFile(path, []byte(src), 0o600))

	out := &bytes.Buffer{}
	err := run(context.Background(), out, &bytes.Buffer{}, []string{"tree", path})

	require.NoError(t, err)
	assert.Equal(t, "«model» Lander\n  «block» Leg [4]\n", out.String())
}

func TestRun_SyntaxError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "main.hcl")
	require.NoError(t, os.WriteFile(path, []byte(`model "Broken" {`), 0o600))

	err := run(context.Background(), &bytes.Buffer{}, &bytes.Buffer{}, []string{"validate", path})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load model")
}

func TestExitCode(t *testing.T) {
	testCases := []struct {
		name     string
		err      error
		wantCode int
		wantMsg  string
	}{
		{"success", nil, 0, ""},
		{"usage", &cli.ExitError{Code: 2, Message: "bad flag"}, 2, "bad flag\n"},
		{"plain", errors.New("boom"), 1, "boom\n"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var errW bytes.Buffer
			assert.Equal(t, tc.wantCode, exitCode(tc.err, &errW))
			assert.Equal(t, tc.wantMsg, errW.String())
		})
	}
}
