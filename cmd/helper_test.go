package cmd

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
)

// setup points the app to a fresh holdings file, captures stdout, and feeds
// input to stdin. It returns the holdings file path and the captured output.
func setup(t *testing.T, input string) (string, *bytes.Buffer) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "stock_data.json")
	t.Setenv(EnvHoldingsFile, "")
	t.Setenv(EnvCurrency, "")

	oldFile, oldStdin, oldStdout := *holdingsFile, stdin, stdout
	var out bytes.Buffer
	*holdingsFile = path
	stdin = strings.NewReader(input)
	stdout = &out
	t.Cleanup(func() {
		*holdingsFile, stdin, stdout = oldFile, oldStdin, oldStdout
	})
	return path, &out
}
