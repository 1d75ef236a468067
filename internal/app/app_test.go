package app

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flavono123/fzgrep/internal/cli"
	"github.com/flavono123/fzgrep/internal/config"
)

func run(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	req, err := cli.Parse(args, config.Config{})
	require.NoError(t, err)

	var stdout, stderr bytes.Buffer
	err = New(req).WithStreams(strings.NewReader(stdin), &stdout, &stderr).Run()
	return stdout.String(), stderr.String(), err
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestRunStdin(t *testing.T) {
	stdout, stderr, err := run(t, "fzgrep.rs\nfrozen.rs\nzap.rs\n", "fzg")

	require.NoError(t, err)
	assert.Equal(t, "fzgrep.rs\n", stdout)
	assert.Empty(t, stderr)
}

func TestRunNoMatchesIsNotAnError(t *testing.T) {
	stdout, _, err := run(t, "nothing here\n", "xyzzy")

	require.NoError(t, err)
	assert.Empty(t, stdout)
}

func TestRunFiles(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.txt", "the needle\nhay\n")
	b := writeFile(t, dir, "b.txt", "more hay\nanother needle\n")

	stdout, _, err := run(t, "", "-n", "needle", a, b)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(stdout, "\n"), "\n")
	require.Len(t, lines, 2)
	// both matches carry the file:line prefix (two targets imply -f)
	for _, line := range lines {
		assert.Contains(t, line, ".txt:")
	}
}

func TestRunDeterministicOutput(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.txt", "needle one\nneedle two\n")
	writeFile(t, dir, "b.txt", "needle three\n")

	first, _, err := run(t, "", "-rn", "needle", dir)
	require.NoError(t, err)
	second, _, err := run(t, "", "-rn", "needle", dir)
	require.NoError(t, err)

	assert.NotEmpty(t, first)
	assert.Equal(t, first, second)
}

func TestRunEmptyQueryFallsThroughToTieBreak(t *testing.T) {
	stdout, _, err := run(t, "b\na\nc\n", "-n", "")

	require.NoError(t, err)
	// equal scores: ordering is purely by line number
	assert.Equal(t, "1:b\n2:a\n3:c\n", stdout)
}

func TestRunInvert(t *testing.T) {
	stdout, _, err := run(t, "one\ntwo\nthree\n", "--invert-match", "xyz")

	require.NoError(t, err)
	assert.Equal(t, "one\ntwo\nthree\n", stdout)
}

func TestRunTopIsPrefixOfFullRanking(t *testing.T) {
	stdin := "needle a\nneedle b\nneedle c\nneedle d\n"

	full, _, err := run(t, stdin, "needle")
	require.NoError(t, err)
	limited, _, err := run(t, stdin, "--top", "2", "needle")
	require.NoError(t, err)

	fullLines := strings.SplitAfter(full, "\n")
	assert.Equal(t, strings.Join(fullLines[:2], ""), limited)
}

func TestRunQuiet(t *testing.T) {
	stdout, _, err := run(t, "needle\n", "-q", "needle")

	require.NoError(t, err)
	assert.Empty(t, stdout)
}

func TestRunMissingTargetIsFatal(t *testing.T) {
	_, _, err := run(t, "", "query", "/no/such/file")
	assert.Error(t, err)
}

func TestRunBadOverridesAreFatalBeforeOutput(t *testing.T) {
	stdout, _, err := run(t, "needle\n", "--color-overrides", "zz=1", "needle")

	assert.Error(t, err)
	assert.Empty(t, stdout)
}

func TestRunDiagnosticsGoToStderrOnly(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "data.bin", "bin\x00ary\n")
	writeFile(t, dir, "ok.txt", "needle\n")

	stdout, stderr, err := run(t, "", "-r", "-F", "needle", dir)
	require.NoError(t, err)

	assert.Equal(t, "needle\n", stdout)
	assert.Contains(t, stderr, "data.bin")
}

func TestRunContext(t *testing.T) {
	stdout, _, err := run(t, "above\nneedle\nbelow\n", "-C", "1", "-n", "needle")

	require.NoError(t, err)
	assert.Equal(t, "1:above\n2:needle\n3:below\n", stdout)
}

func TestRunNamesMode(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "fzgrep.rs", "irrelevant\n")
	writeFile(t, dir, "frozen.rs", "irrelevant\n")

	stdout, _, err := run(t, "", "-r", "--names", "fzg", dir)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(stdout, "\n"), "\n")
	require.Len(t, lines, 1)
	assert.True(t, strings.HasSuffix(lines[0], "fzgrep.rs"))
}
