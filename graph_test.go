package fwgen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func simpleGraph() *Graph {
	return Emit(nativeInput(&Target{
		Name:        "t",
		Sources:     []string{"a.c", "b.c"},
		GenerateBin: true,
	}))
}

func TestGraphCheck(t *testing.T) {
	require.NoError(t, simpleGraph().check())

	g := simpleGraph()
	g.Edges[0].Rule = "nope"
	assert.Error(t, g.check(), "undeclared rule")

	g = simpleGraph()
	g.Rules = append(g.Rules, &Rule{Name: ruleCC, Command: "true"})
	assert.Error(t, g.check(), "redeclared rule")

	// Link before compile.
	g = simpleGraph()
	g.Edges[0], g.Edges[2] = g.Edges[2], g.Edges[0]
	assert.Error(t, g.check(), "link before compile")

	g = simpleGraph()
	g.Edges[1].Outs = g.Edges[0].Outs
	assert.Error(t, g.check(), "duplicated output")

	g = simpleGraph()
	g.Objects = append(g.Objects, "$builddir/c.o")
	assert.Error(t, g.check(), "object not compiled")

	g = simpleGraph()
	g.Binary = "$builddir/out/other"
	assert.Error(t, g.check(), "binary not linked")
}
