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

// Package rsakey composes primegen twice into a full RSA keypair,
// validating the invariants (distinct primes, e coprime with phi(n))
// the rest of the module assumes hold.
package rsakey

import (
	"errors"
	"io"
	"math/big"

	"github.com/cryptolab/rsatoy/crypto/bigintops"
	"github.com/cryptolab/rsatoy/crypto/primegen"
	"github.com/cryptolab/rsatoy/crypto/randutil"
)

// maxPrimeRetries bounds the retry budget for colliding/weak primes
// before GenerateKeypair gives up and reports ErrPrimeDistinctness.
const maxPrimeRetries = 64

// DefaultExponent is the fixed public exponent spec.md's KeyPipeline
// uses: 65537 (2^16 + 1), small enough for fast encryption, large
// enough to avoid the classic small-e broadcast attacks.
var DefaultExponent = big.NewInt(65537)

var (
	// ErrPrimeDistinctness is returned when p and q keep colliding, or
	// repeatedly land on a weak exponent relationship, past the retry
	// budget.
	ErrPrimeDistinctness = errors.New("rsakey: could not find distinct, exponent-compatible primes")

	big1 = big.NewInt(1)
)

// PublicKey is (e, n).
type PublicKey struct {
	E *big.Int
	N *big.Int
}

// PrivateKey is (d, n, p, q). P and Q are nil for a standard (non-CRT)
// key, matching how Go's own crypto/rsa.PrivateKey makes CRT
// precomputation optional rather than modeling two separate key types.
type PrivateKey struct {
	D *big.Int
	N *big.Int
	P *big.Int
	Q *big.Int
}

// HasCRT reports whether priv carries the factors needed for CRT
// decryption.
func (priv *PrivateKey) HasCRT() bool {
	return priv.P != nil && priv.Q != nil
}

// GenerateKeypair runs the KeyPipeline with the fixed public exponent
// 65537, per spec.md §4.4.
func GenerateKeypair(random io.Reader, primeBits int) (*PublicKey, *PrivateKey, error) {
	return GenerateKeypairWithExponent(random, primeBits, DefaultExponent)
}

// GenerateKeypairWithExponent is the §4.4 "legacy keyfile" variant: the
// caller supplies e. e is validated for coprimality with phi(n) the
// same way the fixed-exponent path is; BlockCipherCore treats e as
// opaque beyond "message < n" regardless of which constructor produced
// it.
func GenerateKeypairWithExponent(random io.Reader, primeBits int, e *big.Int) (*PublicKey, *PrivateKey, error) {
	p, err := generateCompatiblePrime(random, primeBits, e, nil)
	if err != nil {
		return nil, nil, err
	}

	q, err := generateCompatiblePrime(random, primeBits, e, p)
	if err != nil {
		return nil, nil, err
	}

	return assemble(e, p, q)
}

// generateCompatiblePrime draws primes until it finds one whose
// (prime-1) is coprime with e and, when avoid is non-nil, that differs
// from avoid.
func generateCompatiblePrime(random io.Reader, bits int, e, avoid *big.Int) (*big.Int, error) {
	for i := 0; i < maxPrimeRetries; i++ {
		candidate, err := primegen.GeneratePrime(random, bits)
		if err != nil {
			return nil, err
		}
		if avoid != nil && candidate.Cmp(avoid) == 0 {
			continue
		}
		pMinus1 := new(big.Int).Sub(candidate, big1)
		if bigintops.Gcd(pMinus1, e).Cmp(big1) != 0 {
			continue
		}
		return candidate, nil
	}
	return nil, ErrPrimeDistinctness
}

// GenerateKeypairRandomExponent supplements the distilled spec with the
// original implementation's actual behavior (original_source/rsa_core.py
// generate_keypair always samples e at random rather than fixing
// 65537): it draws p and q first, then samples e uniformly from
// [2, phi(n)) until one coprime with phi(n) turns up. This is the
// "random e" legacy mode spec.md §4.4 alludes to but does not fully
// specify; §9's design notes leave BlockCipherCore's treatment of e as
// opaque beyond "message < n", so both constructors interoperate.
func GenerateKeypairRandomExponent(random io.Reader, primeBits int) (*PublicKey, *PrivateKey, error) {
	p, err := primegen.GeneratePrime(random, primeBits)
	if err != nil {
		return nil, nil, err
	}

	var q *big.Int
	for i := 0; i < maxPrimeRetries; i++ {
		candidate, err := primegen.GeneratePrime(random, primeBits)
		if err != nil {
			return nil, nil, err
		}
		if candidate.Cmp(p) != 0 {
			q = candidate
			break
		}
	}
	if q == nil {
		return nil, nil, ErrPrimeDistinctness
	}

	phi := new(big.Int).Mul(
		new(big.Int).Sub(p, big1),
		new(big.Int).Sub(q, big1),
	)

	e, err := randomCoprimeExponent(random, phi)
	if err != nil {
		return nil, nil, err
	}

	return assemble(e, p, q)
}

func randomCoprimeExponent(random io.Reader, phi *big.Int) (*big.Int, error) {
	upperBound := new(big.Int).Sub(phi, big.NewInt(2)) // offset in [0, phi-2) -> e in [2, phi)
	for i := 0; i < maxPrimeRetries; i++ {
		offset, err := randutil.RandomInt(random, upperBound)
		if err != nil {
			return nil, err
		}
		e := new(big.Int).Add(offset, big.NewInt(2))
		if bigintops.Gcd(e, phi).Cmp(big1) == 0 {
			return e, nil
		}
	}
	return nil, ErrPrimeDistinctness
}

func assemble(e, p, q *big.Int) (*PublicKey, *PrivateKey, error) {
	if p.Cmp(q) == 0 {
		return nil, nil, ErrPrimeDistinctness
	}

	n := new(big.Int).Mul(p, q)
	phi := new(big.Int).Mul(
		new(big.Int).Sub(p, big1),
		new(big.Int).Sub(q, big1),
	)

	d, err := bigintops.ModInverse(e, phi)
	if err != nil {
		return nil, nil, err
	}

	pub := &PublicKey{E: new(big.Int).Set(e), N: n}
	priv := &PrivateKey{D: d, N: new(big.Int).Set(n), P: p, Q: q}
	return pub, priv, nil
}
