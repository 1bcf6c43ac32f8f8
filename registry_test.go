package fwgen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"shanhu.io/misc/errcode"
)

func staticType(name string) *TargetType {
	return &TargetType{
		Name:   name,
		Static: &Target{Name: name, Sources: []string{"main.c"}},
	}
}

func TestRegistry(t *testing.T) {
	r := NewRegistry()
	assert.Equal(t, 0, r.Len())
	assert.Empty(t, r.Names())

	for _, name := range []string{"stm32f1-generic", "linux-uhid", "sams70-generic"} {
		require.NoError(t, r.Register(staticType(name)))
	}
	assert.Equal(t, 3, r.Len())
	assert.Equal(t,
		[]string{"linux-uhid", "sams70-generic", "stm32f1-generic"},
		r.Names(),
	)

	typ, err := r.Lookup("linux-uhid")
	require.NoError(t, err)
	assert.Equal(t, "linux-uhid", typ.Name)

	targets := r.Targets()
	assert.Len(t, targets, 3)
	delete(targets, "linux-uhid")
	assert.Equal(t, 3, r.Len(), "Targets must return a copy")
}

func TestRegistryNotFound(t *testing.T) {
	r := NewRegistry()
	_, err := r.Lookup("nope")
	require.Error(t, err)
	assert.True(t, errcode.IsNotFound(err))
	assert.Contains(t, err.Error(), "target not found: nope")
}

func TestRegistryRejects(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(staticType("a")))

	err := r.Register(staticType("a"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"a" redeclared`)

	require.NoError(t, r.Register(staticType("")))
	assert.Equal(t, 1, r.Len())
	assert.Equal(t, []string{"a"}, r.Names())
}

func TestTargetTypeBind(t *testing.T) {
	typ := staticType("a")
	target, err := typ.Bind(nil)()
	require.NoError(t, err)
	assert.Same(t, typ.Static, target)

	_, err = (&TargetType{Name: "empty"}).Bind(nil)()
	require.Error(t, err)
}
