package fwgenbin

import (
	"github.com/kballard/go-shellquote"
	"shanhu.io/fwgen"
	"shanhu.io/misc/errcode"
	"shanhu.io/misc/flagutil"
)

var cmdFlags = flagutil.NewFactory("fwgen")

// extraFlags are flags appended to the ones of the target, written as
// shell words.
type extraFlags struct {
	cflags  string
	ldflags string
}

// declareToolchainFlags declares the flags that can also be given before
// the target name.
func declareToolchainFlags(flags *flagutil.FlagSet, c *fwgen.Config) {
	flags.StringVar(&c.BuildDir, "builddir", c.BuildDir, "build directory")
	flags.StringVar(&c.BuildDir, "b", c.BuildDir, "shorthand of -builddir")
	flags.StringVar(
		&c.CrossToolchain, "cross-toolchain", c.CrossToolchain,
		"override cross toolchain prefix (eg. arm-none-eabi)",
	)
	flags.StringVar(
		&c.CrossToolchain, "c", c.CrossToolchain,
		"shorthand of -cross-toolchain",
	)
}

func declareBuildFlags(
	flags *flagutil.FlagSet, c *fwgen.Config, extra *extraFlags,
) {
	declareToolchainFlags(flags, c)
	flags.StringVar(&c.Root, "root", c.Root, "project root directory")
	flags.StringVar(&c.Output, "o", c.Output, "ninja file to write")
	flags.StringVar(
		&c.SumFile, "sum", "", "also write a json summary of the outputs",
	)
	flags.StringVar(&extra.cflags, "cflags", "", "extra compiler flags")
	flags.StringVar(&extra.ldflags, "ldflags", "", "extra linker flags")
}

func splitFlags(s string) ([]string, error) {
	if s == "" {
		return nil, nil
	}
	return shellquote.Split(s)
}

// withExtraFlags returns a function that makes a copy of the target with
// the extra flags appended.
func withExtraFlags(
	f fwgen.MakeTargetFunc, extra *extraFlags,
) fwgen.MakeTargetFunc {
	return func() (*fwgen.Target, error) {
		t, err := f()
		if err != nil {
			return nil, err
		}
		cflags, err := splitFlags(extra.cflags)
		if err != nil {
			return nil, errcode.InvalidArgf("bad -cflags: %s", err)
		}
		ldflags, err := splitFlags(extra.ldflags)
		if err != nil {
			return nil, errcode.InvalidArgf("bad -ldflags: %s", err)
		}
		if cflags == nil && ldflags == nil {
			return t, nil
		}

		cp := *t
		cp.CFlags = append(append([]string(nil), t.CFlags...), cflags...)
		cp.LDFlags = append(append([]string(nil), t.LDFlags...), ldflags...)
		return &cp, nil
	}
}
