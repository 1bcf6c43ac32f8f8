package fwgen

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"shanhu.io/text/lexing"
)

func TestLoadCatalogMissingFile(t *testing.T) {
	r := NewRegistry()
	f := filepath.Join(t.TempDir(), CatalogFile)
	assert.Nil(t, LoadCatalog(r, f))
	assert.Equal(t, 0, r.Len())
}

func TestCatalogTarget(t *testing.T) {
	c := &CatalogTarget{
		Name:           "custom-board",
		OS:             "linux",
		Sources:        []string{"main.c"},
		CFlags:         []string{"-O2"},
		CrossToolchain: "arm-none-eabi",
		BinExtension:   "elf",
		GenerateHex:    true,
	}
	typ := c.targetType()
	assert.Equal(t, "custom-board", typ.Name)
	assert.Equal(t, "linux", typ.OS)

	target, err := typ.Bind(nil)()
	require.NoError(t, err)
	assert.Equal(t, &Target{
		Name:           "custom-board",
		Sources:        []string{"main.c"},
		CFlags:         []string{"-O2"},
		CrossToolchain: "arm-none-eabi",
		BinExtension:   "elf",
		GenerateHex:    true,
	}, target)

	r := NewRegistry()
	require.NoError(t, r.register(typ, nil))
	require.Error(t, r.register(c.targetType(), nil))
	assert.Nil(t, makeCatalogEntry("fileset"))
	assert.IsType(t, new(CatalogTarget), makeCatalogEntry(catalogTarget))
}

func writeCatalog(t *testing.T, text string) string {
	t.Helper()
	f := filepath.Join(t.TempDir(), CatalogFile)
	require.NoError(t, os.WriteFile(f, []byte(text), 0644))
	return f
}

func errStrings(errs []*lexing.Error) []string {
	var ret []string
	for _, err := range errs {
		ret = append(ret, err.Err.Error())
	}
	return ret
}

func TestLoadCatalog(t *testing.T) {
	f := writeCatalog(t, `target {
	"Name": "custom-board",
	"Desc": "a board of my own",
	"Sources": ["main.c", "usb.c"],
	"CFlags": ["-O2"],
	"CrossToolchain": "arm-none-eabi",
	"BinExtension": "elf",
	"GenerateHex": true,
}

target {
	"Name": "custom-host",
	"OS": "linux",
	"Sources": ["host.c"],
}
`)
	r := NewRegistry()
	require.Nil(t, LoadCatalog(r, f))
	assert.Equal(t, []string{"custom-board", "custom-host"}, r.Names())

	typ, err := r.Lookup("custom-board")
	require.NoError(t, err)
	assert.Equal(t, "a board of my own", typ.Desc)
	target, err := typ.Bind(nil)()
	require.NoError(t, err)
	assert.Equal(t, []string{"main.c", "usb.c"}, target.Sources)
	assert.Equal(t, "arm-none-eabi", target.CrossToolchain)
	assert.True(t, target.GenerateHex)
	assert.False(t, target.GenerateBin)

	typ, err = r.Lookup("custom-host")
	require.NoError(t, err)
	assert.Equal(t, "linux", typ.OS)
}

func TestLoadCatalogRedeclared(t *testing.T) {
	f := writeCatalog(t, `target {
	"Name": "board",
	"Sources": ["main.c"],
}

target {
	"Name": "board",
	"Sources": ["other.c"],
}

target {
	"Name": "builtin",
	"Sources": ["main.c"],
}

target {
	"Sources": ["main.c"],
}
`)
	r := NewRegistry()
	require.NoError(t, r.Register(staticType("builtin")))

	errs := LoadCatalog(r, f)
	msgs := errStrings(errs)
	require.Len(t, msgs, 5)
	assert.Contains(t, msgs[0], `"board" redeclared`)
	assert.Contains(t, msgs[1], "previously defined here")
	assert.Contains(t, msgs[2], `"builtin" redeclared`)
	assert.Contains(t, msgs[3], "built-in target")
	assert.Contains(t, msgs[4], "target has no name")

	target, err := r.Targets()["board"].Bind(nil)()
	require.NoError(t, err)
	assert.Equal(t, []string{"main.c"}, target.Sources)
}

func TestLoadCatalogSyntaxError(t *testing.T) {
	f := writeCatalog(t, `target {
	"Name": "board",
	"Sources": ["main.c"]
}
`)
	r := NewRegistry()
	assert.NotEmpty(t, LoadCatalog(r, f))
	assert.Equal(t, 0, r.Len())
}
