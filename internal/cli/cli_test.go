package cli

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validHCL = `
model "Probe" {
  block "Antenna" {}
  block "RangeTest" {}

  requirement "Gain" {
    text = "The antenna shall provide 30 dB of gain."
  }

  relationship "satisfy" {
    client   = "antenna"
    supplier = "gain"
  }

  relationship "verify" {
    client   = "rangeTest"
    supplier = "gain"
  }
}
`

const unmetHCL = `
model "Probe" {
  requirement "Gain" {
    text = "The antenna shall provide 30 dB of gain."
  }
}
`

func writeModel(t *testing.T, src string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "probe.hcl")
	require.NoError(t, os.WriteFile(path, []byte(src), 0o644))
	return path
}

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	err := Execute(context.Background(), args, &out, &errOut)
	return out.String(), errOut.String(), err
}

func exitCode(t *testing.T, err error) int {
	t.Helper()
	var exitErr *ExitError
	require.True(t, errors.As(err, &exitErr), "expected *ExitError, got %T: %v", err, err)
	return exitErr.Code
}

func TestExecute_Validate(t *testing.T) {
	out, _, err := execute(t, "validate", writeModel(t, validHCL))
	require.NoError(t, err)
	assert.Equal(t, "Model \"Probe\" is valid.\n", out)
}

func TestExecute_ValidateUnmet(t *testing.T) {
	out, _, err := execute(t, "validate", writeModel(t, unmetHCL))
	require.Error(t, err)
	assert.Equal(t, 1, exitCode(t, err))
	assert.Contains(t, out, "gain (ID001): missing satisfy, verify")
}

func TestExecute_UsageErrors(t *testing.T) {
	model := writeModel(t, validHCL)

	testCases := []struct {
		name string
		args []string
	}{
		{"missing path", []string{"validate"}},
		{"too many paths", []string{"tree", model, model}},
		{"unknown flag", []string{"validate", "--bogus", model}},
		{"bad log level", []string{"--log-level", "loud", "validate", model}},
		{"bad log format", []string{"--log-format", "xml", "trace", model}},
		{"missing config", []string{"--config", filepath.Join(t.TempDir(), "none.yaml"), "validate", model}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := execute(t, tc.args...)
			require.Error(t, err)
			assert.Equal(t, 2, exitCode(t, err))
		})
	}
}

func TestExecute_LoadFailure(t *testing.T) {
	_, _, err := execute(t, "tree", filepath.Join(t.TempDir(), "absent.hcl"))
	require.ErrorContains(t, err, "failed to load model")

	var exitErr *ExitError
	assert.False(t, errors.As(err, &exitErr))
}

func TestExecute_ExportToFile(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "probe.yaml")
	out, _, err := execute(t, "export", "-o", dest, writeModel(t, validHCL))
	require.NoError(t, err)
	assert.Empty(t, out)

	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Contains(t, string(data), "name: Probe")

	// The exported document loads back through the same command tree.
	tree, _, err := execute(t, "tree", dest)
	require.NoError(t, err)
	assert.Contains(t, tree, "«satisfy» satisfy1 (Antenna -> Gain)")
}

func TestExecute_Help(t *testing.T) {
	out, _, err := execute(t, "--help")
	require.NoError(t, err)
	assert.Contains(t, out, "Usage:")
	for _, sub := range []string{"validate", "export", "trace", "tree"} {
		assert.Contains(t, out, sub)
	}
}

func TestExecute_EnvOverridesLogLevel(t *testing.T) {
	model := writeModel(t, validHCL)

	_, logs, err := execute(t, "validate", model)
	require.NoError(t, err)
	assert.NotContains(t, logs, "Logger configured successfully.")

	t.Setenv("SYSML_LOG_LEVEL", "debug")
	_, logs, err = execute(t, "validate", model)
	require.NoError(t, err)
	assert.Contains(t, logs, "Logger configured successfully.")

	// An explicit flag still wins over the environment.
	_, logs, err = execute(t, "--log-level", "error", "validate", model)
	require.NoError(t, err)
	assert.NotContains(t, logs, "Model loaded.")
}

func TestExecute_ConfigFile(t *testing.T) {
	cfg := filepath.Join(t.TempDir(), "sysml.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte("log_format: json\n"), 0o644))

	_, logs, err := execute(t, "--config", cfg, "validate", writeModel(t, validHCL))
	require.NoError(t, err)
	assert.Contains(t, logs, `"msg":"Model loaded."`)
}
