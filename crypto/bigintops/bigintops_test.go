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

package bigintops

import (
	"math/big"
	"testing"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/ginkgo/extensions/table"
	. "github.com/onsi/gomega"
)

func b(s int64) *big.Int { return big.NewInt(s) }

var _ = Describe("ModPow", func() {
	DescribeTable("computes base^exp mod m", func(base, exp, mod, want int64) {
		got, err := ModPow(b(base), b(exp), b(mod))
		Expect(err).Should(BeNil())
		Expect(got.Cmp(b(want))).Should(BeZero())
	},
		Entry("toy RSA encrypt: 4^7 mod 33", int64(4), int64(7), int64(33), int64(16)),
		Entry("toy RSA decrypt: 16^3 mod 33", int64(16), int64(3), int64(33), int64(4)),
		Entry("zero exponent", int64(9), int64(0), int64(11), int64(1)),
		Entry("base reduces first", int64(40), int64(1), int64(11), int64(7)),
	)

	It("rejects a zero modulus", func() {
		_, err := ModPow(b(2), b(2), b(0))
		Expect(err).Should(Equal(ErrZeroModulus))
	})
})

var _ = Describe("Gcd", func() {
	It("matches big.Int's own GCD for a handful of pairs", func() {
		for _, pair := range [][2]int64{{48, 18}, {17, 5}, {1, 1}, {270, 192}} {
			want := new(big.Int).GCD(nil, nil, b(pair[0]), b(pair[1]))
			Expect(Gcd(b(pair[0]), b(pair[1])).Cmp(want)).Should(BeZero())
		}
	})
})

var _ = Describe("ExtGcd", func() {
	It("solves the toy RSA vector: extgcd(3, 11) = (1, 4, -1)", func() {
		g, x, y := ExtGcd(b(3), b(11))
		Expect(g.Cmp(b(1))).Should(BeZero())
		// 3*4 + 11*(-1) = 1
		lhs := new(big.Int).Add(new(big.Int).Mul(b(3), x), new(big.Int).Mul(b(11), y))
		Expect(lhs.Cmp(b(1))).Should(BeZero())
	})

	It("always returns a non-negative gcd", func() {
		g, _, _ := ExtGcd(b(-9), b(6))
		Expect(g.Sign()).ShouldNot(BeNumerically("<", 0))
	})
})

var _ = Describe("ModInverse", func() {
	It("matches the toy RSA vectors", func() {
		d, err := ModInverse(b(3), b(11))
		Expect(err).Should(BeNil())
		Expect(d.Cmp(b(4))).Should(BeZero())

		d, err = ModInverse(b(7), b(20))
		Expect(err).Should(BeNil())
		Expect(d.Cmp(b(3))).Should(BeZero())
	})

	It("rejects a non-coprime pair", func() {
		_, err := ModInverse(b(6), b(9))
		Expect(err).Should(Equal(ErrNoInverse))
	})
})

var _ = Describe("CRT2", func() {
	It("recombines the toy vector CRT2(2, 3, 3, 5) = 8", func() {
		got, err := CRT2(b(2), b(3), b(3), b(5))
		Expect(err).Should(BeNil())
		Expect(got.Cmp(b(8))).Should(BeZero())
	})
})

func TestBigintops(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Bigintops Suite")
}
