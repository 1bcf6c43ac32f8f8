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

	"shanhu.io/misc/errcode"
	"shanhu.io/misc/flagutil"
)

// Target describes one buildable firmware configuration. It is made once
// per invocation and not changed after.
type Target struct {
	Name string

	// Source files, relative to the src directory. Might contain
	// duplicates.
	Sources []string

	CFlags  []string
	LDFlags []string

	// Default toolchain prefix. Empty means native tools.
	CrossToolchain string

	// Extension of the linked binary, without the dot. Might be empty.
	BinExtension string

	GenerateBin bool // Produce a raw binary image.
	GenerateHex bool // Produce an Intel hex image.
}

// MakeTargetFunc makes the target after the command line flags are parsed.
type MakeTargetFunc func() (*Target, error)

// TargetType declares a target that can be configured.
type TargetType struct {
	Name string
	Desc string

	// OS is the only host operating system that the target can be
	// configured on. Empty means any.
	OS string

	// Declare declares the target specific flags, and returns the function
	// that makes the target once the flags are parsed. When nil, the target
	// has no flags and Static must be set.
	Declare func(flags *flagutil.FlagSet) MakeTargetFunc

	// Static is the target for types that have no flags.
	Static *Target
}

// Bind declares the flags of the target type into flags.
func (t *TargetType) Bind(flags *flagutil.FlagSet) MakeTargetFunc {
	if t.Declare != nil {
		return t.Declare(flags)
	}
	return func() (*Target, error) {
		if t.Static == nil {
			return nil, errcode.Internalf("target %q has no definition", t.Name)
		}
		return t.Static, nil
	}
}

func (t *Target) check(typeName string) error {
	if t.Name != typeName {
		return errcode.Internalf(
			"target type %q made target %q", typeName, t.Name,
		)
	}
	if len(t.Sources) == 0 {
		return errcode.InvalidArgf("target %q has no sources", t.Name)
	}
	for _, src := range t.Sources {
		if !validSource(src) {
			return errcode.InvalidArgf(
				"target %q has bad source path %q", t.Name, src,
			)
		}
	}
	return nil
}

// validSource checks that src is a clean relative path inside the source
// directory, so that its object file stays inside the build directory.
func validSource(src string) bool {
	if src == "" || path.IsAbs(src) || path.Clean(src) != src {
		return false
	}
	return src != ".." && !strings.HasPrefix(src, "../")
}
