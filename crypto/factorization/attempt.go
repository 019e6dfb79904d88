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

package factorization

import (
	"io"
	"math/big"

	"gonum.org/v1/gonum/stat"

	"github.com/cryptolab/rsatoy/crypto/bigintops"
	"github.com/cryptolab/rsatoy/crypto/randutil"
)

// RhoStats reports how AttemptRho's repeated trials behaved: how many
// of the requested trials it took to find a factor, and the iteration
// count distribution across all trials it ran (successful and not).
// This is diagnostic tooling around the FactorizationAttack core, not
// part of its contract — spec.md §1 excludes speed-timing demos from
// the core proper.
type RhoStats struct {
	Factor           *big.Int
	TrialsUsed       int
	IterationCounts  []float64
	MeanIterations   float64
	StdDevIterations float64
}

// AttemptRho runs Pollard's rho up to `trials` times, drawing a fresh
// polynomial constant c and starting seed from random between
// attempts, per spec.md §4.6's remark that retrying "with a different
// polynomial or seed" is a legitimate (if unmandated) strategy on
// ErrFactorizationFailure. It returns ErrFactorizationFailure only if
// every trial collapses.
func AttemptRho(random io.Reader, n *big.Int, trials int) (*RhoStats, error) {
	stats := &RhoStats{IterationCounts: make([]float64, 0, trials)}

	nMinus2 := new(big.Int).Sub(n, big2)

	for i := 0; i < trials; i++ {
		c, err := randutil.RandomPositiveInt(random, nMinus2)
		if err != nil {
			return nil, err
		}
		seed, err := randutil.RandomPositiveInt(random, nMinus2)
		if err != nil {
			return nil, err
		}

		factor, iterations, err := pollardRhoCounted(n, c, seed)
		stats.IterationCounts = append(stats.IterationCounts, float64(iterations))
		stats.TrialsUsed = i + 1

		if err == nil {
			stats.Factor = factor
			break
		}
	}

	if len(stats.IterationCounts) > 0 {
		stats.MeanIterations, stats.StdDevIterations = stat.MeanStdDev(stats.IterationCounts, nil)
	}

	if stats.Factor == nil {
		return stats, ErrFactorizationFailure
	}
	return stats, nil
}

// pollardRhoCounted is pollardRho instrumented with an iteration
// counter, kept separate from the core PollardRho/pollardRho path so
// the spec-mandated algorithm stays exactly as simple as spec.md §4.6
// describes it.
func pollardRhoCounted(n, c, seed *big.Int) (*big.Int, int, error) {
	if n.Bit(0) == 0 {
		return big.NewInt(2), 0, nil
	}

	x := new(big.Int).Set(seed)
	y := new(big.Int).Set(seed)
	iterations := 0

	for {
		iterations++
		var err error
		x, err = polyStep(x, c, n)
		if err != nil {
			return nil, iterations, err
		}
		y, err = polyStep(y, c, n)
		if err != nil {
			return nil, iterations, err
		}
		y, err = polyStep(y, c, n)
		if err != nil {
			return nil, iterations, err
		}

		diff := new(big.Int).Sub(x, y)
		diff.Abs(diff)
		d := bigintops.Gcd(diff, n)

		if d.Cmp(big1) == 0 {
			continue
		}
		if d.Cmp(n) == 0 {
			return nil, iterations, ErrFactorizationFailure
		}
		return d, iterations, nil
	}
}
