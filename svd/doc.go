// This file is part of efr32sim.
//
// efr32sim is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// efr32sim is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with efr32sim.  If not, see <https://www.gnu.org/licenses/>.

// Package svd decodes CMSIS-SVD device descriptions.
//
// The SVD format is the vendor supplied register database for ARM
// microcontrollers. Only the parts of the format that describe the register
// map are decoded: peripherals, clusters, registers, fields and enumerated
// values, along with the register property groups that supply default sizes,
// access and reset values.
//
// Numbers in SVD files may be decimal, hexadecimal (0x prefix) or binary (0b
// or # prefix). Binary numbers may contain x digits meaning "do not care".
// These are decoded as zero.
package svd
