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

// Package factor implements `rsatoy factor`: run Pollard's rho against
// a public key's modulus, retrying with fresh random seeds up to
// --trials times, and report the iteration-count statistics alongside
// the factor when one is found. This is the demonstration that an
// undersized modulus is not a secret.
package factor

import (
	"crypto/rand"
	"fmt"
	"math/big"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/cryptolab/rsatoy/crypto/factorization"
	"github.com/cryptolab/rsatoy/keyfile"
	"github.com/cryptolab/rsatoy/logger"
)

var log = logger.Named("factor")

var Cmd = &cobra.Command{
	Use:   "factor",
	Short: "Attempt to factor a public key's modulus with Pollard's rho",
	RunE: func(cmd *cobra.Command, args []string) error {
		pubPath := viper.GetString("pub-in")
		trials := viper.GetInt("trials")

		pub, err := keyfile.ReadPublicKeyFile(pubPath)
		if err != nil {
			return err
		}

		stats, err := factorization.AttemptRho(rand.Reader, pub.N, trials)
		if err != nil {
			log.Warn("no factor found", "trials", trials, "err", err)
			return err
		}

		other := new(big.Int).Div(pub.N, stats.Factor)
		fmt.Printf("n = %s * %s\n", stats.Factor.String(), other.String())
		log.Info("modulus factored",
			"trialsUsed", stats.TrialsUsed,
			"meanIterations", stats.MeanIterations,
			"stdDevIterations", stats.StdDevIterations,
		)
		return nil
	},
}

func init() {
	Cmd.Flags().String("pub-in", "rsatoy.pub", "public key input path")
	Cmd.Flags().Int("trials", 10, "number of randomized retries before giving up")
}
