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

package blockcipher

import (
	"math/big"

	"github.com/cryptolab/rsatoy/crypto/bigintops"
	"github.com/cryptolab/rsatoy/crypto/rsakey"
)

var big1CRT = big.NewInt(1)

// crtDecrypt implements spec.md §4.5.1: d mod (p-1) and d mod (q-1)
// give two small exponentiations instead of one full-width one, and
// CRT2 recombines them. Grounded on monnand-rsa/utils.go's decrypt(),
// which branches on priv.Precomputed.Dp == nil the same way
// blockcipher.decryptBlock branches on priv.HasCRT() — the same
// optional-precomputation idea, rewritten against this module's own
// PrivateKey and bigintops instead of crypto/rsa's.
func crtDecrypt(cInt *big.Int, priv *rsakey.PrivateKey) (*big.Int, error) {
	pMinus1 := new(big.Int).Sub(priv.P, big1CRT)
	qMinus1 := new(big.Int).Sub(priv.Q, big1CRT)

	dp := new(big.Int).Mod(priv.D, pMinus1)
	dq := new(big.Int).Mod(priv.D, qMinus1)

	m1, err := bigintops.ModPow(cInt, dp, priv.P)
	if err != nil {
		return nil, err
	}
	m2, err := bigintops.ModPow(cInt, dq, priv.Q)
	if err != nil {
		return nil, err
	}

	return bigintops.CRT2(m1, m2, priv.P, priv.Q)
}
