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

// Package factorization is rsatoy's adversarial counterpart to
// rsakey: Pollard's rho against an undersized modulus, to make the
// point that bit length is the only thing standing between a modulus
// and a laptop-speed factorization.
package factorization

import (
	"errors"
	"math/big"

	"github.com/cryptolab/rsatoy/crypto/bigintops"
)

// ErrFactorizationFailure is returned when the tortoise-and-hare cycle
// collapses without producing a non-trivial split. It is a normal
// outcome, not a bug: the caller is expected to retry with a different
// seed or polynomial constant.
var ErrFactorizationFailure = errors.New("factorization: pollard's rho cycle collapsed without a split")

var (
	big1 = big.NewInt(1)
	big2 = big.NewInt(2)
)

// PollardRho attempts to find a non-trivial factor of n using the
// tortoise-and-hare walk over f(v) = v^2 + c mod n, starting from
// x = y = seed. c defaults to 1 and seed to 2 when PollardRho is called
// directly; AttemptRho varies both across retries.
func PollardRho(n *big.Int) (*big.Int, error) {
	return pollardRho(n, big1, big2)
}

func pollardRho(n, c, seed *big.Int) (*big.Int, error) {
	if n.Bit(0) == 0 {
		return big.NewInt(2), nil
	}

	f := func(v *big.Int) (*big.Int, error) {
		return polyStep(v, c, n)
	}

	x := new(big.Int).Set(seed)
	y := new(big.Int).Set(seed)

	for {
		var err error
		x, err = f(x)
		if err != nil {
			return nil, err
		}
		y, err = f(y)
		if err != nil {
			return nil, err
		}
		y, err = f(y)
		if err != nil {
			return nil, err
		}

		diff := new(big.Int).Sub(x, y)
		diff.Abs(diff)
		d := bigintops.Gcd(diff, n)

		if d.Cmp(big1) == 0 {
			continue
		}
		if d.Cmp(n) == 0 {
			return nil, ErrFactorizationFailure
		}
		return d, nil
	}
}

// polyStep computes f(v) = (v^2 + c) mod n.
func polyStep(v, c, n *big.Int) (*big.Int, error) {
	sq, err := bigintops.ModPow(v, big2, n)
	if err != nil {
		return nil, err
	}
	sq.Add(sq, c)
	sq.Mod(sq, n)
	return sq, nil
}
