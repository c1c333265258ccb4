package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jorge-barreto/headerx/internal/extract"
	"github.com/jorge-barreto/headerx/internal/ux"
)

const mixSource = "//HEADERX(out.h,OUT_H)\nint x;\n//ENDX\n"

// inTempDir runs the rest of the test from a fresh directory holding files.
func inTempDir(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, body := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0644))
	}
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(old) })
	return dir
}

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	p := &ux.Printer{Out: &out, Err: &errOut}
	err := newApp(p).Run(context.Background(), append([]string{"headerx"}, args...))
	return out.String(), errOut.String(), err
}

func TestRun_ExtractsHeader(t *testing.T) {
	inTempDir(t, map[string]string{"mix.c": mixSource})

	stdout, _, err := run(t, "mix.c")
	require.NoError(t, err)
	assert.Empty(t, stdout)

	got, err := os.ReadFile("out.h")
	require.NoError(t, err)
	assert.Equal(t, "#ifndef OUT_H\n#define OUT_H\n#line 1 \"mix.c\"\nint x;\n#endif\n", string(got))
}

func TestRun_NoFiles(t *testing.T) {
	inTempDir(t, nil)
	_, _, err := run(t)
	assert.ErrorIs(t, err, extract.ErrNoFiles)
}

func TestRun_HelpIgnoresFiles(t *testing.T) {
	inTempDir(t, map[string]string{"mix.c": mixSource})

	stdout, _, err := run(t, "-h", "mix.c")
	require.NoError(t, err)
	assert.Contains(t, stdout, "headerx")

	_, err = os.Stat("out.h")
	assert.True(t, os.IsNotExist(err), "help must not process files")
}

func TestRun_HelpAfterSourceFile(t *testing.T) {
	inTempDir(t, map[string]string{"mix.c": mixSource})

	stdout, _, err := run(t, "mix.c", "-h")
	require.NoError(t, err)
	assert.Contains(t, stdout, "headerx")
	assert.Contains(t, stdout, "--verbose")

	_, err = os.Stat("out.h")
	assert.True(t, os.IsNotExist(err), "help must not process files")
}

func TestRun_HelpOnSubcommand(t *testing.T) {
	stdout, _, err := run(t, "docs", "-h")
	require.NoError(t, err)
	assert.Contains(t, stdout, "docs")
}

func TestRun_FlagsAfterSourceFile(t *testing.T) {
	inTempDir(t, map[string]string{"mix.c": mixSource})

	stdout, _, err := run(t, "mix.c", "-v")
	require.NoError(t, err)
	assert.Contains(t, stdout, "File mix.c, line 1: Found //HEADERX")
}

func TestRun_VerboseTrace(t *testing.T) {
	inTempDir(t, map[string]string{"mix.c": mixSource})

	stdout, _, err := run(t, "-v", "--no-color", "mix.c")
	require.NoError(t, err)
	assert.Contains(t, stdout, "File mix.c, line 1: Found //HEADERX")
	assert.Contains(t, stdout, "File mix.c, line 3: Found //ENDX")
	assert.Contains(t, stdout, "1 file(s) scanned, extracted 1 header(s)")
}

func TestRun_StopsAtFirstFailure(t *testing.T) {
	inTempDir(t, map[string]string{
		"bad.c":  "//HEADERX(name)\n",
		"good.c": mixSource,
	})

	_, _, err := run(t, "bad.c", "good.c")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad.c:1:")

	_, err = os.Stat("out.h")
	assert.True(t, os.IsNotExist(err), "files after a failure must not be processed")
}

func TestRun_ConfigFileAndOverrides(t *testing.T) {
	dir := inTempDir(t, map[string]string{
		"mix.c":         mixSource,
		".headerx.yaml": "output-dir: include\nline-directives: false\n",
	})
	require.NoError(t, os.Mkdir(filepath.Join(dir, "include"), 0755))

	_, _, err := run(t, "mix.c")
	require.NoError(t, err)
	got, err := os.ReadFile(filepath.Join("include", "out.h"))
	require.NoError(t, err)
	assert.Equal(t, "#ifndef OUT_H\n#define OUT_H\nint x;\n#endif\n", string(got))

	_, _, err = run(t, "-o", ".", "mix.c")
	require.NoError(t, err)
	_, err = os.Stat("out.h")
	assert.NoError(t, err)
}

func TestRun_BadOutputDir(t *testing.T) {
	inTempDir(t, map[string]string{"mix.c": mixSource})
	_, _, err := run(t, "-o", "missing", "mix.c")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--output-dir")
}

func TestRun_StrictFlag(t *testing.T) {
	inTempDir(t, map[string]string{"open.c": "//HEADERX(open.h,OPEN_H)\nint x;\n"})

	_, stderr, err := run(t, "open.c")
	require.NoError(t, err)
	assert.Contains(t, stderr, "warning:")

	_, _, err = run(t, "--strict", "open.c")
	assert.ErrorIs(t, err, extract.ErrUnterminated)
}

func TestRun_DryRun(t *testing.T) {
	inTempDir(t, map[string]string{"mix.c": mixSource})

	stdout, _, err := run(t, "-n", "--no-color", "mix.c")
	require.NoError(t, err)
	assert.Contains(t, stdout, "out.h [OUT_H]")
	assert.Contains(t, stdout, "would extract 1 header(s)")

	_, err = os.Stat("out.h")
	assert.True(t, os.IsNotExist(err))
}

func TestDocs_Topic(t *testing.T) {
	stdout, _, err := run(t, "docs", "markers")
	require.NoError(t, err)
	assert.Contains(t, stdout, "//HEADERX WS ( WS <file name>")

	_, _, err = run(t, "docs", "nope")
	assert.Error(t, err)
}

func TestInit_Command(t *testing.T) {
	inTempDir(t, nil)
	_, _, err := run(t, "init")
	require.NoError(t, err)

	_, _, err = run(t, "example.c")
	require.NoError(t, err)
	_, err = os.Stat("example.h")
	assert.NoError(t, err)
}
