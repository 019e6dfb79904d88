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

// Package keygen implements `rsatoy keygen`: generate a fresh keypair
// and write the public and private halves to two separate files.
package keygen

import (
	"crypto/rand"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/cryptolab/rsatoy/crypto/rsakey"
	"github.com/cryptolab/rsatoy/keyfile"
	"github.com/cryptolab/rsatoy/logger"
)

var log = logger.Named("keygen")

var Cmd = &cobra.Command{
	Use:   "keygen",
	Short: "Generate an RSA keypair and write it to a public/private file pair",
	RunE: func(cmd *cobra.Command, args []string) error {
		bits := viper.GetInt("prime-bits")
		pubPath := viper.GetString("pub-out")
		privPath := viper.GetString("priv-out")
		randomExponent := viper.GetBool("random-exponent")

		var pub *rsakey.PublicKey
		var priv *rsakey.PrivateKey
		var err error
		if randomExponent {
			pub, priv, err = rsakey.GenerateKeypairRandomExponent(rand.Reader, bits)
		} else {
			pub, priv, err = rsakey.GenerateKeypair(rand.Reader, bits)
		}
		if err != nil {
			log.Error("keypair generation failed", "err", err)
			return err
		}

		if err := keyfile.WritePublicKeyFile(pubPath, pub); err != nil {
			return err
		}
		if err := keyfile.WritePrivateKeyFile(privPath, priv); err != nil {
			return err
		}

		log.Info("keypair written", "bits", bits, "pub", pubPath, "priv", privPath)
		return nil
	},
}

func init() {
	Cmd.Flags().Int("prime-bits", 512, "bit length of each of the two primes")
	Cmd.Flags().String("pub-out", "rsatoy.pub", "public key output path")
	Cmd.Flags().String("priv-out", "rsatoy.key", "private key output path")
	Cmd.Flags().Bool("random-exponent", false, "draw a random coprime exponent instead of 65537")
}
