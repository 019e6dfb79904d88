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

// Package bigintops is the arithmetic floor everything else in rsatoy
// stands on: modular exponentiation, gcd, extended gcd, modular inverse
// and two-modulus CRT recombination. All values are arbitrary-precision
// via math/big; the algorithms themselves are hand-rolled rather than
// delegated to big.Int's own Exp/GCD/ModInverse so the module stays
// true to "from-scratch" instead of being a thin wrapper.
package bigintops

import (
	"errors"
	"math/big"
)

var (
	// ErrZeroModulus is returned when ModPow is asked to reduce by zero.
	ErrZeroModulus = errors.New("bigintops: modulus is zero")
	// ErrNoInverse is returned when a modular inverse is requested for
	// a value not coprime with the modulus.
	ErrNoInverse = errors.New("bigintops: no modular inverse exists")
	// ErrNotCoprime is returned when CRT2's moduli share a factor.
	ErrNotCoprime = errors.New("bigintops: CRT moduli are not coprime")

	big1 = big.NewInt(1)
)

// ModPow computes base^exp mod m using square-and-multiply over
// non-negative residues. The result is always in [0, m).
func ModPow(base, exp, mod *big.Int) (*big.Int, error) {
	if mod.Sign() == 0 {
		return nil, ErrZeroModulus
	}
	result := new(big.Int).Mod(big1, mod)
	b := new(big.Int).Mod(base, mod)
	e := new(big.Int).Set(exp)

	for e.Sign() > 0 {
		if e.Bit(0) == 1 {
			result.Mul(result, b)
			result.Mod(result, mod)
		}
		b.Mul(b, b)
		b.Mod(b, mod)
		e.Rsh(e, 1)
	}
	return result, nil
}

// Gcd returns the non-negative greatest common divisor of a and b via
// the iterative Euclidean algorithm. Gcd(a, 0) = |a|, Gcd(0, 0) = 0.
func Gcd(a, b *big.Int) *big.Int {
	x := new(big.Int).Abs(a)
	y := new(big.Int).Abs(b)
	for y.Sign() != 0 {
		x, y = y, new(big.Int).Mod(x, y)
	}
	return x
}

// ExtGcd returns (g, x, y) such that a*x + b*y = g, with g non-negative.
// Intermediate coefficients may go negative; only the final g is
// normalized.
func ExtGcd(a, b *big.Int) (g, x, y *big.Int) {
	oldR, r := new(big.Int).Set(a), new(big.Int).Set(b)
	oldS, s := big.NewInt(1), big.NewInt(0)
	oldT, t := big.NewInt(0), big.NewInt(1)

	for r.Sign() != 0 {
		q := new(big.Int).Div(oldR, r)

		oldR, r = r, new(big.Int).Sub(oldR, new(big.Int).Mul(q, r))
		oldS, s = s, new(big.Int).Sub(oldS, new(big.Int).Mul(q, s))
		oldT, t = t, new(big.Int).Sub(oldT, new(big.Int).Mul(q, t))
	}

	if oldR.Sign() < 0 {
		oldR.Neg(oldR)
		oldS.Neg(oldS)
		oldT.Neg(oldT)
	}
	return oldR, oldS, oldT
}

// ModInverse returns the inverse of a modulo m, in [0, m). ErrNoInverse
// is returned when gcd(a, m) != 1.
func ModInverse(a, m *big.Int) (*big.Int, error) {
	g, x, _ := ExtGcd(a, m)
	if g.Cmp(big1) != 0 {
		return nil, ErrNoInverse
	}
	inv := new(big.Int).Mod(x, m)
	if inv.Sign() < 0 {
		inv.Add(inv, m)
	}
	return inv, nil
}

// CRT2 solves x = ra (mod ma), x = rb (mod mb) and returns the unique
// solution in [0, ma*mb). ma and mb must be coprime.
func CRT2(ra, rb, ma, mb *big.Int) (*big.Int, error) {
	if Gcd(ma, mb).Cmp(big1) != 0 {
		return nil, ErrNotCoprime
	}

	modulus := new(big.Int).Mul(ma, mb)

	mbInvModMa, err := ModInverse(mb, ma)
	if err != nil {
		return nil, err
	}
	maInvModMb, err := ModInverse(ma, mb)
	if err != nil {
		return nil, err
	}

	// x = ra*mb*(mb^-1 mod ma) + rb*ma*(ma^-1 mod mb), reduced mod ma*mb.
	term1 := new(big.Int).Mul(ra, mb)
	term1.Mul(term1, mbInvModMa)

	term2 := new(big.Int).Mul(rb, ma)
	term2.Mul(term2, maInvModMb)

	x := new(big.Int).Add(term1, term2)
	x.Mod(x, modulus)
	if x.Sign() < 0 {
		x.Add(x, modulus)
	}
	return x, nil
}
