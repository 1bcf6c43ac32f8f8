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

package fwgenbin

import (
	"fmt"
	"io"
	"strings"

	"github.com/gookit/color"
	"shanhu.io/fwgen"
)

// console prints the messages for users.
type console struct {
	w io.Writer
}

func newConsole(w io.Writer) *console { return &console{w: w} }

func (c *console) warn(msg string) {
	fmt.Fprintln(c.w, color.LightYellow.Sprint("WARNING"), msg)
}

func (c *console) fail(err error) {
	detail := fmt.Sprintf("%+v", err)
	if p, ok := err.(*panicError); ok {
		detail = strings.TrimSpace(string(p.stack))
	}
	fmt.Fprintln(c.w)
	fmt.Fprintln(c.w, color.OpFuzzy.Sprint(detail))
	fmt.Fprintln(c.w, color.LightRed.Sprint("ERROR"), err)
}

func flagsOrEmpty(flags []string) string {
	if len(flags) == 0 {
		return "(empty)"
	}
	return fwgen.JoinFlags(flags)
}

func (c *console) summary(
	s *fwgen.Setup, v *fwgen.Version, tree fwgen.TreeState,
) {
	head := fwgen.Product + " " + color.LightCyan.Sprint(v.Value)
	if tree.IsDirty() {
		head += " " + color.LightRed.Sprint("(dirty)")
	}
	fmt.Fprintln(c.w, head)
	fmt.Fprintln(c.w)

	toolchain := s.Toolchain.Prefix
	if s.Toolchain.Native() {
		toolchain = "native"
	}
	for _, entry := range []struct {
		name, value string
	}{
		{"target", s.Target.Name},
		{"cross-toolchain", toolchain},
		{"c_flags", flagsOrEmpty(s.Target.CFlags)},
		{"ld_flags", flagsOrEmpty(s.Target.LDFlags)},
	} {
		fmt.Fprintf(c.w, "%24s: %s\n", entry.name, entry.value)
	}
}

func (c *console) written(output string) {
	fmt.Fprintf(c.w, "\n%s written! Call 'ninja' to compile...\n", output)
}
