package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/hazyhaar/touchstone-ocr/pkg/ocr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func render(t *testing.T, accounts ...string) string {
	t.Helper()
	var b strings.Builder
	for _, s := range accounts {
		a, err := ocr.ParseAccountNumber(s)
		require.NoError(t, err)
		b.WriteString(ocr.Render(a))
	}
	return b.String()
}

func writeScan(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scan.txt")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// run executes the CLI with a config path that does not exist.
func run(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	root := newRootCmd()
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(append([]string{"--config", filepath.Join(t.TempDir(), "none.yaml")}, args...))
	err := root.Execute()
	return out.String(), errOut.String(), err
}

func TestScanCmd(t *testing.T) {
	path := writeScan(t, render(t, "123456789", "111111111", "888888888", "86110??36"))

	out, _, err := run(t, "", "scan", path)
	require.NoError(t, err)
	assert.Equal(t, "123456789\n"+
		"111111111 ERR\t711111111\n"+
		"888888888 ERR\tambiguous\n"+
		"86110??36 ILL\n", out)
}

func TestScanCmd_NoCorrect(t *testing.T) {
	path := writeScan(t, render(t, "111111111", "664371495"))

	out, _, err := run(t, "", "scan", "--no-correct", path)
	require.NoError(t, err)
	assert.Equal(t, "111111111 ERR\n664371495 ERR\n", out)
}

func TestScanCmd_Stdin(t *testing.T) {
	out, _, err := run(t, render(t, "457508000"), "scan", "-")
	require.NoError(t, err)
	assert.Equal(t, "457508000\n", out)
}

func TestScanCmd_Table(t *testing.T) {
	path := writeScan(t, render(t, "111111111", "555555555"))

	out, _, err := run(t, "", "scan", "--table", path)
	require.NoError(t, err)
	assert.Contains(t, out, "711111111")
	assert.Contains(t, out, "ambiguous")
	assert.Contains(t, out, "555655555 559555555")
	assert.Contains(t, out, "checksum_error")
}

func TestScanCmd_MalformedEntry(t *testing.T) {
	content := "abc\ndef\nghi\n\n" + render(t, "123456789")
	path := writeScan(t, content)

	out, errOut, err := run(t, "", "scan", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 malformed entries")
	assert.Contains(t, errOut, path+":1: malformed scan")
	assert.Equal(t, "123456789\n", out, "the well-formed entry is still reported")
}

func TestScanCmd_MissingFile(t *testing.T) {
	_, _, err := run(t, "", "scan", filepath.Join(t.TempDir(), "nope.txt"))
	assert.Error(t, err)
}

func TestDigitsCmd(t *testing.T) {
	out, _, err := run(t, "", "digits", "123456789")
	require.NoError(t, err)
	assert.Equal(t, render(t, "123456789"), out)

	_, _, err = run(t, "", "digits", "12345")
	assert.Error(t, err)
}

func TestScanCmd_TrailingBlankLines(t *testing.T) {
	path := writeScan(t, render(t, "457508000")+"\n\n\n\n\n")

	out, errOut, err := run(t, "", "scan", path)
	require.NoError(t, err)
	assert.Equal(t, "457508000\n", out)
	assert.NotContains(t, errOut, "malformed")
}
