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
	"path/filepath"
	"runtime"
)

// Config provides the configuration of a generator.
type Config struct {
	Root           string // Project root; sources are in its src directory.
	BuildDir       string // Build output directory.
	CrossToolchain string // Toolchain prefix that overrides the target's.
	Output         string // Ninja file to write.
	HostOS         string // Operating system of the host.

	SumFile string // Optional JSON summary of the outputs.
}

// Default values of the config.
const (
	DefaultBuildDir = "build"
	DefaultOutput   = "build.ninja"
)

// NewConfig returns a config with the default values.
func NewConfig() *Config {
	c := new(Config)
	c.fill()
	return c
}

func (c *Config) fill() {
	if c.Root == "" {
		c.Root = "."
	}
	if c.BuildDir == "" {
		c.BuildDir = DefaultBuildDir
	}
	if c.Output == "" {
		c.Output = DefaultOutput
	}
	if c.HostOS == "" {
		c.HostOS = runtime.GOOS
	}
}

// rootIn returns the root to write in the graph. The root is relative
// when it is the working directory wd.
func (c *Config) rootIn(wd string) string {
	if !filepath.IsAbs(c.Root) {
		return filepath.ToSlash(filepath.Clean(c.Root))
	}
	if wd != "" && filepath.Clean(c.Root) == filepath.Clean(wd) {
		return "."
	}
	return filepath.ToSlash(c.Root)
}
