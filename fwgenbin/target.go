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
	"os"
	"runtime/debug"

	"shanhu.io/fwgen"
	"shanhu.io/misc/errcode"
)

// runEnv is the environment that a target command runs in.
type runEnv struct {
	workDir  string
	lookPath fwgen.LookPathFunc // exec.LookPath when nil
	git      fwgen.GitFunc      // git in workDir when nil

	// Flags given before the target name; defaults when nil.
	global *fwgen.Config
}

// config returns a new config that starts from the global flags.
func (e *runEnv) config() *fwgen.Config {
	if e.global == nil {
		return fwgen.NewConfig()
	}
	c := *e.global
	return &c
}

func (e *runEnv) versionProbe() *fwgen.VersionProbe {
	if e.git != nil {
		return fwgen.NewVersionProbeWith(e.git)
	}
	return fwgen.NewVersionProbe(e.workDir)
}

// panicError is an unexpected failure, with the stack where it happened.
type panicError struct {
	v     interface{}
	stack []byte
}

func (e *panicError) Error() string { return fmt.Sprint(e.v) }

func cmdTarget(typ *fwgen.TargetType, env *runEnv) func([]string) error {
	return func(args []string) error {
		con := newConsole(os.Stdout)
		if err := runTarget(con, typ, args, env); err != nil {
			con.fail(err)
			os.Exit(1)
		}
		return nil
	}
}

func runTarget(
	con *console, typ *fwgen.TargetType, args []string, env *runEnv,
) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &panicError{v: r, stack: debug.Stack()}
		}
	}()

	flags := cmdFlags.New()
	config := env.config()
	extra := new(extraFlags)
	declareBuildFlags(flags, config, extra)
	makeTarget := withExtraFlags(typ.Bind(flags), extra)
	if rest := flags.ParseArgs(args); len(rest) > 0 {
		return errcode.InvalidArgf("unexpected arguments: %q", rest)
	}

	gen := fwgen.NewGenerator(env.workDir, config)
	gen.LookPath = env.lookPath
	gen.Warn = con.warn

	setup, err := gen.Configure(typ, makeTarget)
	if err != nil {
		return err
	}

	probe := env.versionProbe()
	v, err := probe.Version()
	if err != nil {
		return errcode.Annotate(err, "get version")
	}
	tree, err := probe.TreeState()
	if err != nil {
		return errcode.Annotate(err, "check working tree")
	}

	con.summary(setup, v, tree)
	output := gen.Config().Output
	if err := gen.Generate(setup, v, tree); err != nil {
		return err
	}
	con.written(output)
	return nil
}
