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
	"fmt"

	"shanhu.io/fwgen"
	"shanhu.io/misc/errcode"
	"shanhu.io/misc/flagutil"
)

const armToolchain = "arm-none-eabi"

var armLDFlags = []string{
	"-nostartfiles",
	"-specs=nano.specs",
	"-Wl,--gc-sections",
}

var samx7xSources = []string{
	"platform/samx7x/eefc.c",
	"platform/samx7x/pio.c",
	"platform/samx7x/pmc.c",
	"platform/samx7x/qspi.c",
	"platform/samx7x/spi.c",
	"platform/samx7x/startup.c",
	"platform/samx7x/systick.c",
	"platform/samx7x/usb.c",
	"platform/samx7x/wdt.c",
	"platform/samx7x/hal/hid.c",
	"platform/samx7x/hal/spi.c",
	"platform/samx7x/hal/ticks.c",
	"driver/pixart/pixart_pmw.c",
	"util/hid_descriptors.c",
}

const defaultExternalClock = 12000000

func samx7x(name, mcu, ld string) *fwgen.TargetType {
	return &fwgen.TargetType{
		Name: name,
		Desc: "generic " + ld + " board",
		Declare: func(flags *flagutil.FlagSet) fwgen.MakeTargetFunc {
			debug := flags.Bool("debug", false, "build with debug symbols")
			clock := flags.Uint(
				"external-clock", defaultExternalClock,
				"external oscillator frequency in Hz",
			)
			return func() (*fwgen.Target, error) {
				if *clock == 0 {
					return nil, errcode.InvalidArgf("external clock is zero")
				}
				cflags := concat(commonCFlags, optimize(*debug), []string{
					"-mcpu=cortex-m7",
					"-mthumb",
					"-mfloat-abi=hard",
					"-mfpu=fpv5-d16",
					"-ffunction-sections",
					"-fdata-sections",
					"-D" + mcu,
					fmt.Sprintf("-DEXTERNAL_CLOCK_VALUE=%dUL", *clock),
				})
				ldflags := concat(armLDFlags, []string{
					"-mcpu=cortex-m7",
					"-mthumb",
					"-mfloat-abi=hard",
					"-mfpu=fpv5-d16",
					"-T$root/src/platform/samx7x/linker/" + ld + ".ld",
				})
				return &fwgen.Target{
					Name: name,
					Sources: concat(protocolSources, samx7xSources, []string{
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
