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
	"shanhu.io/misc/errcode"
)

// Var is a ninja variable binding.
type Var struct {
	Name  string
	Value string
}

// Rule is a ninja rule.
type Rule struct {
	Name        string
	Command     string
	Description string
	Depfile     string
	Deps        string

	Compact bool // no blank line after the rule
}

// Edge is a ninja build statement.
type Edge struct {
	Outs []string
	Rule string
	Ins  []string
	Vars []*Var
}

// Graph is a complete build graph document. Rules come before all edges,
// and edges are in dependency order.
type Graph struct {
	Comment         string
	RequiredVersion string

	Vars  []*Var
	Rules []*Rule
	Edges []*Edge

	// Objects are the compile outputs that are linked.
	Objects []string

	// Binary is the linked output.
	Binary string
}

func (g *Graph) rule(name string) *Rule {
	for _, r := range g.Rules {
		if r.Name == name {
			return r
		}
	}
	return nil
}

// check checks that the graph is internally consistent: every edge uses a
// declared rule, no output is built twice, and everything that is not a
// source is built by an earlier edge.
func (g *Graph) check() error {
	rules := make(map[string]bool)
	for _, r := range g.Rules {
		if rules[r.Name] {
			return errcode.Internalf("rule %q redeclared", r.Name)
		}
		rules[r.Name] = true
	}

	outs := make(map[string]*Edge)
	for _, e := range g.Edges {
		if !rules[e.Rule] {
			return errcode.Internalf("rule %q not declared", e.Rule)
		}
		if e.Rule != ruleCC {
			for _, in := range e.Ins {
				if _, ok := outs[in]; !ok {
					return errcode.Internalf(
						"input %q of %q is not built before", in, e.Rule,
					)
				}
			}
		}
		for _, out := range e.Outs {
			if _, ok := outs[out]; ok {
				return errcode.Internalf("output %q redeclared", out)
			}
			outs[out] = e
		}
	}

	for _, obj := range g.Objects {
		if e, ok := outs[obj]; !ok || e.Rule != ruleCC {
			return errcode.Internalf("object %q is not compiled", obj)
		}
	}
	if g.Binary != "" {
		e, ok := outs[g.Binary]
		if !ok || e.Rule != ruleLink {
			return errcode.Internalf("binary %q is not linked", g.Binary)
		}
		for _, in := range e.Ins {
			if outs[in].Rule != ruleCC {
				return errcode.Internalf("link input %q is not an object", in)
			}
		}
	}
	return nil
}
