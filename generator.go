// Copyright (C) 2022  Shanhu Tech Inc.
//
// This program is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the
// Free Software Foundation, either version 3 of the License, or (at your
// option) any later version.
//
// This program is distributed in the hope that it will be useful, but WITHOUT
// ANY WARRANTY; without even the implied warranty of MERCHANTABILITY or
// FITNESS FOR A PARTICULAR PURPOSE.  See the GNU Affero General Public License
// for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package fwgen

import (
	"log"

	"shanhu.io/misc/errcode"
	"shanhu.io/misc/jsonutil"
)

// Generator generates build files for a project.
type Generator struct {
	config  *Config
	workDir string

	// LookPath finds the toolchain executables. exec.LookPath when nil.
	LookPath LookPathFunc

	// Warn reports warnings. log.Print when nil.
	Warn func(msg string)
}

// NewGenerator creates a generator that runs in workDir.
func NewGenerator(workDir string, config *Config) *Generator {
	c := *config
	c.fill()
	return &Generator{
		config:  &c,
		workDir: workDir,
	}
}

// Config returns the effective configuration.
func (g *Generator) Config() *Config { return g.config }

func (g *Generator) warn(msg string) {
	if g.Warn == nil {
		log.Print(msg)
		return
	}
	g.Warn(msg)
}

// Setup is a target with its validated toolchain.
type Setup struct {
	Target    *Target
	Toolchain *Toolchain
}

// Configure makes the target and validates its toolchain.
func (g *Generator) Configure(typ *TargetType, makeTarget MakeTargetFunc) (
	*Setup, error,
) {
	if typ.OS != "" && typ.OS != g.config.HostOS {
		return nil, errcode.InvalidArgf(
			"%s target is only available on %s", typ.Name, typ.OS,
		)
	}

	t, err := makeTarget()
	if err != nil {
		return nil, errcode.Annotatef(err, "make target %q", typ.Name)
	}
	if err := t.check(typ.Name); err != nil {
		return nil, err
	}

	prefix := ResolvePrefix(g.config.CrossToolchain, t.CrossToolchain)
	tc, warnings, err := ValidateToolchain(prefix, RequiredTools, g.LookPath)
	for _, w := range warnings {
		g.warn(w)
	}
	if err != nil {
		return nil, err
	}
	return &Setup{Target: t, Toolchain: tc}, nil
}

// Graph makes the build graph of a configured target.
func (g *Generator) Graph(s *Setup, v *Version, tree TreeState) *Graph {
	return Emit(&EmitInput{
		Target:    s.Target,
		Toolchain: s.Toolchain,
		Version:   v.Value,
		Tree:      tree,
		Root:      g.config.rootIn(g.workDir),
		BuildDir:  g.config.BuildDir,
		Generator: "fwgen",
	})
}

// Generate makes the build graph and writes it into the output file.
func (g *Generator) Generate(s *Setup, v *Version, tree TreeState) error {
	graph := g.Graph(s, v, tree)
	if err := WriteFile(g.config.Output, graph); err != nil {
		return err
	}
	log.Printf("%s: %d objects", g.config.Output, len(graph.Objects))

	if f := g.config.SumFile; f != "" {
		sum := newBuildSum(s, v, tree, graph)
		if err := jsonutil.WriteFile(f, sum); err != nil {
			return errcode.Annotate(err, "write build sum")
		}
	}
	return nil
}
