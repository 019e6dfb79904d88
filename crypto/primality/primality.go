// Copyright © 2024 rsatoy contributors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//   http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package primality implements the probabilistic oracle primegen and
// rsakey build on: a small trial-division sieve followed by
// Miller-Rabin witnessing. It never panics or returns an error; the
// worst it reports is "probably not prime" when it cannot tell.
package primality

import (
	"crypto/rand"
	"math/big"

	"github.com/cryptolab/rsatoy/crypto/bigintops"
	"github.com/cryptolab/rsatoy/crypto/randutil"
)

// DefaultRounds is the number of Miller-Rabin rounds primegen uses,
// bounding the false-positive probability at 4^-20.
const DefaultRounds = 20

// sieve is the fixed set of small odd primes trial division rejects
// composites against before paying for modular exponentiation.
var sieve = []int64{3, 5, 7, 11, 13, 17, 19, 23, 29, 31, 37, 41, 43, 47, 53}

var (
	big1 = big.NewInt(1)
	big2 = big.NewInt(2)
)

// IsProbablePrime reports whether n is probably prime, with a false
// positive probability bounded by 4^-rounds under uniform witnesses.
func IsProbablePrime(n *big.Int, rounds int) bool {
	if n.Cmp(big1) <= 0 {
		return false
	}
	if n.Cmp(big2) == 0 || n.Cmp(big.NewInt(3)) == 0 {
		return true
	}
	if n.Bit(0) == 0 {
		return false
	}

	for _, p := range sieve {
		bp := big.NewInt(p)
		if n.Cmp(bp) == 0 {
			return true
		}
		if new(big.Int).Mod(n, bp).Sign() == 0 {
			return false
		}
	}

	return millerRabin(n, rounds)
}

// millerRabin runs `rounds` Miller-Rabin iterations against n, which
// must already be known odd and greater than the sieve's primes.
func millerRabin(n *big.Int, rounds int) bool {
	nMinus1 := new(big.Int).Sub(n, big1)

	// n - 1 = 2^s * d, d odd.
	d := new(big.Int).Set(nMinus1)
	s := 0
	for d.Bit(0) == 0 {
		d.Rsh(d, 1)
		s++
	}

	upper := new(big.Int).Sub(n, big.NewInt(3))
	for i := 0; i < rounds; i++ {
		a, err := randutil.RandomInt(rand.Reader, upper)
		if err != nil {
			// The random source is exhausted; treat as a failed round
			// rather than panicking from a primality test.
			return false
		}
		a.Add(a, big2) // a in [2, n-2]

		if !witnessPasses(a, d, n, nMinus1, s) {
			return false
		}
	}
	return true
}

func witnessPasses(a, d, n, nMinus1 *big.Int, s int) bool {
	x, err := bigintops.ModPow(a, d, n)
	if err != nil {
		return false
	}
	if x.Cmp(big1) == 0 || x.Cmp(nMinus1) == 0 {
		return true
	}
	for j := 1; j < s; j++ {
		x, err = bigintops.ModPow(x, big2, n)
		if err != nil {
			return false
		}
		if x.Cmp(nMinus1) == 0 {
			return true
		}
	}
	return false
}
