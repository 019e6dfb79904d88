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

package keyfile

import (
	"bytes"
	"math/big"
	"strings"
	"testing"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"

	"github.com/cryptolab/rsatoy/crypto/rsakey"
)

var _ = Describe("Public key round trip", func() {
	It("writes and reads back e and n", func() {
		pub := &rsakey.PublicKey{E: big.NewInt(7), N: big.NewInt(33)}
		var buf bytes.Buffer
		Expect(WritePublicKey(&buf, pub)).Should(Succeed())

		got, err := ReadPublicKey(&buf)
		Expect(err).Should(BeNil())
		Expect(got.E.Cmp(pub.E)).Should(BeZero())
		Expect(got.N.Cmp(pub.N)).Should(BeZero())
	})
})

var _ = Describe("Private key round trip", func() {
	It("round-trips the two-line standard form", func() {
		priv := &rsakey.PrivateKey{D: big.NewInt(3), N: big.NewInt(33)}
		var buf bytes.Buffer
		Expect(WritePrivateKey(&buf, priv)).Should(Succeed())
		Expect(strings.Count(buf.String(), "\n")).Should(Equal(2))

		got, err := ReadPrivateKey(&buf)
		Expect(err).Should(BeNil())
		Expect(got.HasCRT()).Should(BeFalse())
		Expect(got.D.Cmp(priv.D)).Should(BeZero())
		Expect(got.N.Cmp(priv.N)).Should(BeZero())
	})

	It("round-trips the four-line CRT form", func() {
		priv := &rsakey.PrivateKey{D: big.NewInt(3), N: big.NewInt(33), P: big.NewInt(3), Q: big.NewInt(11)}
		var buf bytes.Buffer
		Expect(WritePrivateKey(&buf, priv)).Should(Succeed())

		got, err := ReadPrivateKey(&buf)
		Expect(err).Should(BeNil())
		Expect(got.HasCRT()).Should(BeTrue())
		Expect(got.P.Cmp(priv.P)).Should(BeZero())
		Expect(got.Q.Cmp(priv.Q)).Should(BeZero())
	})

	It("rejects malformed input", func() {
		_, err := ReadPrivateKey(strings.NewReader("not-a-number\n7\n"))
		Expect(err).Should(Equal(ErrInvalidKey))

		_, err = ReadPrivateKey(strings.NewReader("3\n33\n5\n"))
		Expect(err).Should(Equal(ErrInvalidKey))

		_, err = ReadPrivateKey(strings.NewReader("3\n"))
		Expect(err).Should(Equal(ErrInvalidKey))
	})
})

var _ = Describe("KeySource", func() {
	It("resolves an inline key without touching the filesystem", func() {
		priv := &rsakey.PrivateKey{D: big.NewInt(3), N: big.NewInt(33)}
		src := KeySource{Inline: priv}

		got, err := src.Resolve()
		Expect(err).Should(BeNil())
		Expect(got).Should(BeIdenticalTo(priv))
	})
})

func TestKeyfile(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Keyfile Suite")
}
