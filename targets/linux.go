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

func linuxUHID() *fwgen.TargetType {
	const name = "linux-uhid"
	return &fwgen.TargetType{
		Name: name,
		Desc: "emulated device through the linux uhid interface",
		OS:   "linux",
		Declare: func(flags *flagutil.FlagSet) fwgen.MakeTargetFunc {
			debug := flags.Bool("debug", false, "build with debug symbols")
			return func() (*fwgen.Target, error) {
				return &fwgen.Target{
					Name: name,
					Sources: concat(protocolSources, []string{
						"platform/linux/hal/hid.c",
						"platform/linux/hal/ticks.c",
						"targets/linux-uhid/main.c",
					}),
					CFlags: concat(commonCFlags, optimize(*debug)),
				}, nil
			}
		},
	}
}
