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

package rsakey

import (
	"crypto/rand"
	"math/big"
	"testing"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"

	"github.com/cryptolab/rsatoy/crypto/bigintops"
)

var _ = Describe("GenerateKeypair", func() {
	It("produces a keypair satisfying the RSA invariants", func() {
		pub, priv, err := GenerateKeypair(rand.Reader, 128)
		Expect(err).Should(BeNil())

		Expect(pub.N.Cmp(priv.N)).Should(BeZero())
		Expect(pub.E.Cmp(DefaultExponent)).Should(BeZero())
		Expect(priv.HasCRT()).Should(BeTrue())
		Expect(priv.P.Cmp(priv.Q)).ShouldNot(BeZero())

		n := new(big.Int).Mul(priv.P, priv.Q)
		Expect(n.Cmp(pub.N)).Should(BeZero())

		phi := new(big.Int).Mul(
			new(big.Int).Sub(priv.P, big.NewInt(1)),
			new(big.Int).Sub(priv.Q, big.NewInt(1)),
		)
		ed := new(big.Int).Mul(pub.E, priv.D)
		ed.Mod(ed, phi)
		Expect(ed.Cmp(big.NewInt(1))).Should(BeZero())
	})

	It("round-trips a message through the generated key", func() {
		pub, priv, err := GenerateKeypair(rand.Reader, 128)
		Expect(err).Should(BeNil())

		m := big.NewInt(42)
		c, err := bigintops.ModPow(m, pub.E, pub.N)
		Expect(err).Should(BeNil())
		got, err := bigintops.ModPow(c, priv.D, priv.N)
		Expect(err).Should(BeNil())
		Expect(got.Cmp(m)).Should(BeZero())
	})
})

var _ = Describe("GenerateKeypairRandomExponent", func() {
	It("produces a keypair whose exponent is coprime with phi(n)", func() {
		pub, priv, err := GenerateKeypairRandomExponent(rand.Reader, 128)
		Expect(err).Should(BeNil())
		Expect(priv.HasCRT()).Should(BeTrue())

		phi := new(big.Int).Mul(
			new(big.Int).Sub(priv.P, big.NewInt(1)),
			new(big.Int).Sub(priv.Q, big.NewInt(1)),
		)
		Expect(bigintops.Gcd(pub.E, phi).Cmp(big.NewInt(1))).Should(BeZero())
	})
})

var _ = Describe("PrivateKey.HasCRT", func() {
	It("is false when P and Q are not set", func() {
		priv := &PrivateKey{D: big.NewInt(3), N: big.NewInt(33)}
		Expect(priv.HasCRT()).Should(BeFalse())
	})
})

func TestRsakey(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Rsakey Suite")
}
