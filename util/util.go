/*
 * Copyright (C) 2019 ING BANK N.V.
 *
 * This program is free software: you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as published by
 * the Free Software Foundation, either version 3 of the License, or
 * (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU Lesser General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General Public License
 * along with this program.  If not, see <https://www.gnu.org/licenses/>.
 */

package util

import (
	"math/big"
)

/*
Decompose receives as input a bigint x and outputs an array of integers such that
x = sum(xi.u^i), i.e. it returns the decomposition of x into base u.
*/
func Decompose(x *big.Int, u int64, l int64) []int64 {
	result := make([]int64, l)
	base := new(big.Int).SetInt64(u)

	for i := int64(0); i < l; i++ {
		result[i] = new(big.Int).Mod(x, base).Int64()
		x = new(big.Int).Div(x, base)
	}

	return result
}

/*
Compose is the inverse of Decompose: it returns sum(digits[i].u^i).
*/
func Compose(digits []int64, u int64) *big.Int {
	result := new(big.Int)
	base := new(big.Int).SetInt64(u)

	for i := len(digits) - 1; i >= 0; i-- {
		result.Mul(result, base)
		result.Add(result, big.NewInt(digits[i]))
	}

	return result
}
