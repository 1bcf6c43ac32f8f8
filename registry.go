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
	"sort"

	"shanhu.io/misc/errcode"
	"shanhu.io/text/lexing"
)

// Registry maps target names to target types. It is populated once at
// start up and only read after that.
type Registry struct {
	types map[string]*TargetType
	pos   map[string]*lexing.Pos
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		types: make(map[string]*TargetType),
		pos:   make(map[string]*lexing.Pos),
	}
}

// Register adds a target type. Types without a name are not targets and
// are skipped. Registering an already registered name is an error.
func (r *Registry) Register(t *TargetType) error {
	return r.register(t, nil)
}

func (r *Registry) register(t *TargetType, pos *lexing.Pos) error {
	if t.Name == "" {
		return nil
	}
	if _, ok := r.types[t.Name]; ok {
		return errcode.InvalidArgf("target %q redeclared", t.Name)
	}
	r.types[t.Name] = t
	r.pos[t.Name] = pos
	return nil
}

// Lookup returns the target type of the given name.
func (r *Registry) Lookup(name string) (*TargetType, error) {
	t, ok := r.types[name]
	if !ok {
		return nil, errcode.NotFoundf("target not found: %s", name)
	}
	return t, nil
}

// Names returns the sorted list of registered target names.
func (r *Registry) Names() []string {
	var names []string
	for name := range r.types {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Targets returns a copy of the name to target type mapping.
func (r *Registry) Targets() map[string]*TargetType {
	m := make(map[string]*TargetType)
	for name, t := range r.types {
		m[name] = t
	}
	return m
}

// Len returns the number of registered targets.
func (r *Registry) Len() int { return len(r.types) }
