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
	"path"
	"strings"

	"shanhu.io/misc/strutil"
)

// Product is the name that prefixes every firmware output.
const Product = "openinput"

const ninjaRequiredVersion = "1.3"

// Rule names.
const (
	ruleCC   = "cc"
	ruleAr   = "ar"
	ruleLink = "link"
	ruleBin  = "bin"
	ruleHex  = "hex"
)

// EmitInput is everything the build graph is made from.
type EmitInput struct {
	Target    *Target
	Toolchain *Toolchain
	Version   string
	Tree      TreeState

	Root      string // Project root, as written into the graph.
	BuildDir  string
	Generator string // Name of the generating program, for the header.
}

func srcPath(f string) string { return "$root/src/" + f }

func builtPath(f string) string { return "$builddir/" + f }

func objectPath(src string) string {
	return builtPath(strings.TrimSuffix(src, path.Ext(src)) + ".o")
}

func outPath(name, ext string) string {
	if ext != "" {
		name += "." + ext
	}
	return builtPath("out/" + name)
}

// OutputName returns the base name of the firmware output, made of the
// product, the target name, the version with dots replaced by hyphens, and
// "dirty" for a dirty tree. Empty parts are skipped.
func OutputName(target, version string, tree TreeState) string {
	parts := []string{
		Product,
		target,
		strings.ReplaceAll(version, ".", "-"),
	}
	if tree.IsDirty() {
		parts = append(parts, "dirty")
	}

	var nonEmpty []string
	for _, p := range parts {
		if p != "" {
			nonEmpty = append(nonEmpty, p)
		}
	}
	return strings.Join(nonEmpty, "-")
}

// JoinFlags joins flags with spaces. Flags are written as they are.
func JoinFlags(flags []string) string {
	return strings.Join(flags, " ")
}

// Emit makes the build graph of a target. It does not fail; the graph is
// checked when it is written.
func Emit(in *EmitInput) *Graph {
	t := in.Target
	tc := in.Toolchain

	g := &Graph{
		Comment: "build file automatically generated by " + in.Generator +
			", do not edit manually!",
		RequiredVersion: ninjaRequiredVersion,
		Vars: []*Var{
			{Name: "root", Value: in.Root},
			{Name: "builddir", Value: in.BuildDir},
			{Name: "cc", Value: tc.Tool(ToolCC)},
			{Name: "ar", Value: tc.Tool(ToolAr)},
			{Name: "objcopy", Value: tc.Tool(ToolObjcopy)},
			{Name: "size", Value: tc.Tool(ToolSize)},
			{Name: "c_flags", Value: JoinFlags(t.CFlags)},
			{Name: "ld_flags", Value: JoinFlags(t.LDFlags)},
		},
		Rules: []*Rule{{
			Name:        ruleCC,
			Command:     "$cc -MMD -MT $out -MF $out.d $c_flags -c $in -o $out",
			Description: "CC $out",
			Depfile:     "$out.d",
			Deps:        "gcc",
		}, {
			Name:        ruleAr,
			Command:     "rm -f $out && $ar crs $out $in",
			Description: "AR $out",
		}, {
			Name:        ruleLink,
			Command:     "$cc $ld_flags -o $out $in $libs",
			Description: "LINK $out",
		}},
	}

	if t.GenerateBin {
		g.Rules = append(g.Rules, &Rule{
			Name:        ruleBin,
			Command:     "$objcopy -O binary $in $out",
			Description: "BIN $out",
			Compact:     true,
		})
	}
	if t.GenerateHex {
		g.Rules = append(g.Rules, &Rule{
			Name:        ruleHex,
			Command:     "$objcopy -O ihex $in $out",
			Description: "HEX $out",
			Compact:     true,
		})
	}

	for _, src := range strutil.SortedList(strutil.MakeSet(t.Sources)) {
		obj := objectPath(src)
		g.Edges = append(g.Edges, &Edge{
			Outs: []string{obj},
			Rule: ruleCC,
			Ins:  []string{srcPath(src)},
		})
		g.Objects = append(g.Objects, obj)
	}

	name := OutputName(t.Name, in.Version, in.Tree)
	g.Binary = outPath(name, t.BinExtension)
	g.Edges = append(g.Edges, &Edge{
		Outs: []string{g.Binary},
		Rule: ruleLink,
		Ins:  g.Objects,
	})

	if t.GenerateBin {
		g.Edges = append(g.Edges, &Edge{
			Outs: []string{outPath(name, "bin")},
			Rule: ruleBin,
			Ins:  []string{g.Binary},
		})
	}
	if t.GenerateHex {
		g.Edges = append(g.Edges, &Edge{
			Outs: []string{outPath(name, "hex")},
			Rule: ruleHex,
			Ins:  []string{g.Binary},
		})
	}
	return g
}
