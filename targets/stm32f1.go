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

package targets

import (
	"shanhu.io/fwgen"
	"shanhu.io/misc/flagutil"
)

var stm32f1Sources = []string{
	"platform/stm32f1/gpio.c",
	"platform/stm32f1/rcc.c",
	"platform/stm32f1/startup.c",
	"platform/stm32f1/usb.c",
	"platform/stm32f1/hal/hid.c",
	"platform/stm32f1/hal/ticks.c",
	"util/hid_descriptors.c",
}

func stm32f1Generic() *fwgen.TargetType {
	const name = "stm32f1-generic"
	return &fwgen.TargetType{
		Name: name,
		Desc: "generic stm32f103 board",
		Declare: func(flags *flagutil.FlagSet) fwgen.MakeTargetFunc {
			debug := flags.Bool("debug", false, "build with debug symbols")
			bootloader := flags.Bool(
				"bootloader", false,
				"link after the 8k dfu bootloader instead of at flash start",
			)
			return func() (*fwgen.Target, error) {
				ld := "stm32f103x8.ld"
				cflags := concat(commonCFlags, optimize(*debug), []string{
					"-mcpu=cortex-m3",
					"-mthumb",
					"-ffunction-sections",
					"-fdata-sections",
					"-DSTM32F1",
				})
				if *bootloader {
					ld = "stm32f103x8-dfu.ld"
					cflags = append(cflags, "-DBOOTLOADER")
				}
				ldflags := concat(armLDFlags, []string{
					"-mcpu=cortex-m3",
					"-mthumb",
					"-T$root/src/platform/stm32f1/linker/" + ld,
				})
				return &fwgen.Target{
					Name: name,
					Sources: concat(protocolSources, stm32f1Sources, []string{
						"targets/" + name + "/main.c",
					}),
					CFlags:         cflags,
					LDFlags:        ldflags,
					CrossToolchain: armToolchain,
					BinExtension:   "elf",
					GenerateBin:    true,
					GenerateHex:    true,
				}, nil
			}
		},
	}
}
