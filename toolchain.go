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
	"fmt"
	"os/exec"
	"strings"

	"shanhu.io/misc/errcode"
)

// Tool names of the toolchain, without prefix.
const (
	ToolCC      = "gcc"
	ToolObjcopy = "objcopy"
	ToolSize    = "size"
	ToolAr      = "ar"
)

// RequiredTools are the tools that must exist under the toolchain prefix.
var RequiredTools = []string{ToolCC, ToolObjcopy, ToolSize, ToolAr}

// ToolName joins the prefix and the tool with a hyphen. An empty prefix
// gives the bare tool name.
func ToolName(prefix, tool string) string {
	if prefix == "" {
		return tool
	}
	return prefix + "-" + tool
}

// ResolvePrefix returns the toolchain prefix to use. An explicitly
// requested prefix always wins over the target default.
func ResolvePrefix(requested, targetDefault string) string {
	if requested != "" {
		return requested
	}
	return targetDefault
}

// LookPathFunc finds an executable in the search path.
type LookPathFunc func(file string) (string, error)

// Toolchain is a validated toolchain prefix.
type Toolchain struct {
	Prefix string
}

// Tool returns the effective name of tool.
func (tc *Toolchain) Tool(tool string) string {
	return ToolName(tc.Prefix, tool)
}

// Native tells if the toolchain uses the host tools with no prefix.
func (tc *Toolchain) Native() bool { return tc.Prefix == "" }

// ValidateToolchain checks that every tool exists under the prefix. It
// returns warnings on a prefix that looks wrong but is still usable. The
// first missing tool fails the validation.
func ValidateToolchain(prefix string, tools []string, lookPath LookPathFunc) (
	*Toolchain, []string, error,
) {
	if lookPath == nil {
		lookPath = exec.LookPath
	}

	var warnings []string
	if prefix != "" && strings.HasSuffix(prefix, "-") {
		warnings = append(warnings, fmt.Sprintf(
			"specified %q as the cross toolchain prefix, did you mean %q?",
			prefix, strings.TrimSuffix(prefix, "-"),
		))
	}

	for _, tool := range tools {
		name := ToolName(prefix, tool)
		if _, err := lookPath(name); err != nil {
			return nil, warnings, errcode.InvalidArgf(
				"invalid toolchain: %s not found", name,
			)
		}
	}
	return &Toolchain{Prefix: prefix}, warnings, nil
}
