package fwgen

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEscapePath(t *testing.T) {
	for _, test := range []struct {
		in, want string
	}{
		{"$builddir/a.o", "$builddir/a.o"},
		{"my file.c", "my$ file.c"},
		{"c:/src/a.c", "c$:/src/a.c"},
		{"$ x", "$$$ x"},
	} {
		assert.Equal(t, test.want, escapePath(test.in), test.in)
	}
}

func lineOf(width int, text string, indent int) string {
	buf := new(bytes.Buffer)
	w := &ninjaWriter{w: buf, width: width}
	w.line(text, indent)
	return buf.String()
}

func TestNinjaLine(t *testing.T) {
	assert.Equal(t, "short\n", lineOf(20, "short", 0))
	assert.Equal(t, "  a = b\n", lineOf(20, "a = b", 1))

	assert.Equal(t,
		"aaaa bbbb cccc $\n    dddd eeee ffff\n",
		lineOf(20, "aaaa bbbb cccc dddd eeee ffff", 0),
	)

	// Escaped spaces are never broken.
	assert.Equal(t,
		"aaaa$ bbbb $\n    cccc\n",
		lineOf(10, "aaaa$ bbbb cccc", 0),
	)

	// No space to break at.
	assert.Equal(t, "aaaaaaaaaaaa\n", lineOf(5, "aaaaaaaaaaaa", 0))
}

func TestWrapWords(t *testing.T) {
	assert.Equal(t,
		[]string{"aaa bbb", "ccc"},
		wrapWords("aaa bbb ccc", 7),
	)
	assert.Equal(t,
		[]string{"aaaaaaaaaa", "b"},
		wrapWords("aaaaaaaaaa b", 5),
	)
	assert.Empty(t, wrapWords("  ", 10))
}

func TestNinjaRule(t *testing.T) {
	buf := new(bytes.Buffer)
	w := newNinjaWriter(buf)
	w.rule(&Rule{Name: "bin", Command: "$objcopy -O binary $in $out"})
	require.NoError(t, w.err)
	assert.Equal(t,
		"rule bin\n  command = $objcopy -O binary $in $out\n",
		buf.String(),
	)
}

func TestWriteFile(t *testing.T) {
	dir := t.TempDir()
	f := filepath.Join(dir, "build.ninja")
	require.NoError(t, os.WriteFile(f, []byte("old"), 0644))

	g := Emit(nativeInput(&Target{
		Name:    "linux-uhid",
		Sources: []string{"main.c"},
	}))
	require.NoError(t, WriteFile(f, g))

	bs, err := os.ReadFile(f)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(
		string(bs), "# build file automatically generated by fwgen",
	))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp file left behind")
}

func TestWriteFileRejectsBadGraph(t *testing.T) {
	dir := t.TempDir()
	f := filepath.Join(dir, "build.ninja")

	// The linked binary and the raw image have the same path.
	g := Emit(nativeInput(&Target{
		Name:         "t",
		Sources:      []string{"main.c"},
		BinExtension: "bin",
		GenerateBin:  true,
	}))
	err := WriteFile(f, g)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "redeclared")

	_, err = os.Stat(f)
	assert.True(t, os.IsNotExist(err))
}

func TestWriteFileBadDir(t *testing.T) {
	f := filepath.Join(t.TempDir(), "missing", "build.ninja")
	g := Emit(nativeInput(&Target{Name: "t", Sources: []string{"a.c"}}))
	require.Error(t, WriteFile(f, g))
}
