// Copyright © 2024 rsatoy contributors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package factorization

import (
	"crypto/rand"
	"math/big"
	"testing"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

var _ = Describe("PollardRho", func() {
	It("factors 8051 into 83 or 97", func() {
		factor, err := PollardRho(big.NewInt(8051))
		Expect(err).Should(BeNil())
		Expect(factor.Int64() == 83 || factor.Int64() == 97).Should(BeTrue())
	})

	It("returns the even factor directly for an even modulus", func() {
		factor, err := PollardRho(big.NewInt(8052))
		Expect(err).Should(BeNil())
		Expect(factor.Int64()).Should(Equal(int64(2)))
	})
})

var _ = Describe("AttemptRho", func() {
	It("eventually factors a small RSA-style modulus and reports statistics", func() {
		n := big.NewInt(8051) // 83 * 97
		stats, err := AttemptRho(rand.Reader, n, 25)
		Expect(err).Should(BeNil())
		Expect(stats.Factor).ShouldNot(BeNil())
		Expect(stats.TrialsUsed).Should(BeNumerically(">=", 1))
		Expect(len(stats.IterationCounts)).Should(Equal(stats.TrialsUsed))
		Expect(stats.MeanIterations).Should(BeNumerically(">=", 0))
	})

	It("reports failure when trials are exhausted without success", func() {
		// A prime modulus never splits; Pollard's rho always collapses.
		n := big.NewInt(97)
		_, err := AttemptRho(rand.Reader, n, 3)
		Expect(err).Should(Equal(ErrFactorizationFailure))
	})
})

func TestFactorization(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Factorization Suite")
}
