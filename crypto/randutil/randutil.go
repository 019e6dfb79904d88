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

// Package randutil holds the small randomness helpers shared by key
// generation and padding. None of them keep a package-level source:
// every call takes the reader explicitly so callers can inject a
// deterministic source in tests.
package randutil

import (
	cryptorand "crypto/rand"
	"errors"
	"io"
	"math/big"
)

var (
	// ErrEmptyLength is returned when Bytes is asked for fewer than one
	// byte, or NonZeroBytes for a negative count (zero is allowed there).
	ErrEmptyLength = errors.New("randutil: length must be positive")

	big1 = big.NewInt(1)
)

// RandomInt returns a uniform value in [0, n).
func RandomInt(random io.Reader, n *big.Int) (*big.Int, error) {
	return cryptorand.Int(random, n)
}

// RandomPositiveInt returns a uniform value in [1, n).
func RandomPositiveInt(random io.Reader, n *big.Int) (*big.Int, error) {
	x, err := RandomInt(random, new(big.Int).Sub(n, big1))
	if err != nil {
		return nil, err
	}
	return x.Add(x, big1), nil
}

// Bytes fills a size-byte slice from random.
func Bytes(random io.Reader, size int) ([]byte, error) {
	if size < 1 {
		return nil, ErrEmptyLength
	}
	buf := make([]byte, size)
	if _, err := io.ReadFull(random, buf); err != nil {
		return nil, err
	}
	return buf, nil
}

// NonZeroBytes fills a size-byte slice with bytes uniformly drawn from
// {0x01, ..., 0xFF}, rejecting and redrawing any 0x00 byte. This is the
// PKCS#1 v1.5 padding-string alphabet: padding bytes must never be zero
// so the first zero encountered during parsing is unambiguously the
// separator.
func NonZeroBytes(random io.Reader, size int) ([]byte, error) {
	if size < 0 {
		return nil, ErrEmptyLength
	}
	out := make([]byte, size)
	filled := 0
	chunk := make([]byte, size)
	for filled < size {
		need := size - filled
		if _, err := io.ReadFull(random, chunk[:need]); err != nil {
			return nil, err
		}
		for i := 0; i < need; i++ {
			if chunk[i] != 0x00 {
				out[filled] = chunk[i]
				filled++
			}
		}
	}
	return out, nil
}

