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

// Package targets is the catalog of the built-in firmware targets.
package targets

import (
	"shanhu.io/fwgen"
	"shanhu.io/misc/errcode"
)

// Types returns all built-in target types.
func Types() []*fwgen.TargetType {
	return []*fwgen.TargetType{
		linuxUHID(),
		samx7x("sams70-generic", "__SAMS70Q21B__", "sams70q21b"),
		samx7x("samv71-generic", "__SAMV71Q21B__", "samv71q21b"),
		stm32f1Generic(),
	}
}

// Register registers all built-in target types into r.
func Register(r *fwgen.Registry) error {
	for _, t := range Types() {
		if err := r.Register(t); err != nil {
			return errcode.Annotatef(err, "register %q", t.Name)
		}
	}
	return nil
}

var protocolSources = []string{
	"protocol/protocol.c",
	"protocol/reports.c",
	"util/hid_descriptors.c",
}

var commonCFlags = []string{
	"-std=gnu11",
	"-Wall",
	"-Wextra",
	"-Wimplicit-fallthrough",
	"-Wno-unused-parameter",
	"-I$root/src",
}

func optimize(debug bool) []string {
	if debug {
		return []string{"-Og", "-g3"}
	}
	return []string{"-O2"}
}

func concat(lists ...[]string) []string {
	var ret []string
	for _, l := range lists {
		ret = append(ret, l...)
	}
	return ret
}
