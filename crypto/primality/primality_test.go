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

package primality

import (
	"math/big"
	"testing"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/ginkgo/extensions/table"
	. "github.com/onsi/gomega"
)

var _ = Describe("IsProbablePrime", func() {
	DescribeTable("known primes and composites", func(n int64, rounds int, want bool) {
		Expect(IsProbablePrime(big.NewInt(n), rounds)).Should(Equal(want))
	},
		Entry("561 is a Carmichael number, not prime", int64(561), DefaultRounds, false),
		Entry("65537 is prime", int64(65537), DefaultRounds, true),
		Entry("15 is composite", int64(15), DefaultRounds, false),
		Entry("2 is prime", int64(2), DefaultRounds, true),
		Entry("3 is prime", int64(3), DefaultRounds, true),
		Entry("1 is not prime", int64(1), DefaultRounds, false),
		Entry("0 is not prime", int64(0), DefaultRounds, false),
		Entry("9 is composite", int64(9), DefaultRounds, false),
		Entry("97 is prime", int64(97), DefaultRounds, true),
		Entry("even numbers above 2 are composite", int64(100), DefaultRounds, false),
	)

	It("rejects negative numbers", func() {
		Expect(IsProbablePrime(big.NewInt(-7), DefaultRounds)).Should(BeFalse())
	})

	// spec.md §8: defense-in-depth — a candidate the oracle accepts at
	// DefaultRounds must still be accepted when re-checked at a higher
	// round count, and a composite must still be rejected.
	DescribeTable("agrees with itself at rounds = 40", func(n int64, want bool) {
		Expect(IsProbablePrime(big.NewInt(n), 40)).Should(Equal(want))
	},
		Entry("65537 is prime", int64(65537), true),
		Entry("97 is prime", int64(97), true),
		Entry("561 is a Carmichael number, not prime", int64(561), false),
		Entry("15 is composite", int64(15), false),
	)
})

func TestPrimality(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Primality Suite")
}
