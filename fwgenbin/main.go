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
	"os"
	"path/filepath"

	"github.com/gookit/color"
	"github.com/mattn/go-isatty"
	"shanhu.io/fwgen"
	"shanhu.io/fwgen/targets"
	"shanhu.io/misc/errcode"
	"shanhu.io/misc/subcmd"
	"shanhu.io/text/lexing"
)

func cmd(reg *fwgen.Registry, env *runEnv) *subcmd.List {
	c := subcmd.New()
	for _, name := range reg.Names() {
		typ, err := reg.Lookup(name)
		if err != nil {
			panic(err)
		}
		c.Add(name, typ.Desc, cmdTarget(typ, env))
	}
	return c
}

func loadRegistry(workDir string) (*fwgen.Registry, []*lexing.Error) {
	reg := fwgen.NewRegistry()
	if err := targets.Register(reg); err != nil {
		return nil, lexing.SingleErr(err)
	}
	if errs := fwgen.LoadCatalog(
		reg, filepath.Join(workDir, fwgen.CatalogFile),
	); errs != nil {
		return nil, errs
	}
	if reg.Len() == 0 {
		return nil, lexing.SingleErr(errcode.NotFoundf("no targets available"))
	}
	return reg, nil
}

// Main is the entrance for the fwgen binary.
func Main() {
	color.Enable = isatty.IsTerminal(os.Stdout.Fd())
	con := newConsole(os.Stdout)

	wd, err := os.Getwd()
	if err != nil {
		con.fail(errcode.Annotate(err, "get work dir"))
		os.Exit(1)
	}

	reg, errs := loadRegistry(wd)
	if errs != nil {
		lexing.FprintErrs(os.Stdout, errs, wd)
		con.fail(errcode.InvalidArgf("load targets got %d errors", len(errs)))
		os.Exit(1)
	}

	os.Exit(run(reg, &runEnv{workDir: wd}, os.Args))
}

// run parses the flags given before the target name, and then runs the
// target sub-command with the rest of args. args[0] is the program name.
func run(reg *fwgen.Registry, env *runEnv, args []string) int {
	global := fwgen.NewConfig()
	flags := cmdFlags.New()
	declareToolchainFlags(flags, global)
	rest := flags.ParseArgs(args[1:])

	env.global = global
	return cmd(reg, env).Run(append([]string{args[0]}, rest...))
}
