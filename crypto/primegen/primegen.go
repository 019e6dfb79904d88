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

// Package primegen samples random odd integers of an exact bit length
// and hands the first one that survives primality.IsProbablePrime back
// to the caller. It never gives up: key generation's expected runtime
// is proportional to the density of primes at the requested size.
package primegen

import (
	"errors"
	"io"
	"math/big"

	"github.com/cryptolab/rsatoy/crypto/primality"
)

// ErrInvalidBits is returned when bits is too small to hold the
// top-bit/bottom-bit shaping this generator relies on.
var ErrInvalidBits = errors.New("primegen: bits must be at least 2")

// GeneratePrime returns a prime with exactly `bits` bits, read from
// random. The top bit is always set (so the value has exactly the
// requested bit length) and the bottom bit is always set (so it is
// odd).
func GeneratePrime(random io.Reader, bits int) (*big.Int, error) {
	if bits < 2 {
		return nil, ErrInvalidBits
	}

	byteLen := (bits + 7) / 8
	topBitIndex := uint((bits - 1) % 8)
	buf := make([]byte, byteLen)

	for {
		if _, err := io.ReadFull(random, buf); err != nil {
			return nil, err
		}

		// Clear any bits above the requested width, then force the
		// exact top bit and the bottom bit.
		buf[0] &= byte(1<<(topBitIndex+1)) - 1
		buf[0] |= 1 << topBitIndex
		buf[byteLen-1] |= 1

		candidate := new(big.Int).SetBytes(buf)
		if candidate.BitLen() != bits {
			continue
		}
		if !primality.IsProbablePrime(candidate, primality.DefaultRounds) {
			continue
		}
		return candidate, nil
	}
}
