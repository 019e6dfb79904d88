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

// Package encrypt implements `rsatoy encrypt`: read a plaintext file,
// pad and encrypt it block by block under a public key, and write the
// ciphertext out. It also logs a short blake2b fingerprint of the
// public key so two parties can confirm out-of-band that they are
// using the same key without comparing the full modulus.
package encrypt

import (
	"crypto/rand"
	"encoding/hex"
	"math/big"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/crypto/blake2b"

	"github.com/cryptolab/rsatoy/crypto/blockcipher"
	"github.com/cryptolab/rsatoy/keyfile"
	"github.com/cryptolab/rsatoy/logger"
)

var log = logger.Named("encrypt")

var Cmd = &cobra.Command{
	Use:   "encrypt",
	Short: "Encrypt a file under a public key",
	RunE: func(cmd *cobra.Command, args []string) error {
		pubPath := viper.GetString("pub-in")
		inPath := viper.GetString("in")
		outPath := viper.GetString("out")

		pub, err := keyfile.ReadPublicKeyFile(pubPath)
		if err != nil {
			return err
		}

		payload, err := os.ReadFile(inPath)
		if err != nil {
			return err
		}

		ciphertext, err := blockcipher.EncryptPayload(rand.Reader, payload, pub)
		if err != nil {
			log.Error("encryption failed", "err", err)
			return err
		}

		if err := os.WriteFile(outPath, ciphertext, 0o644); err != nil {
			return err
		}

		log.Info("payload encrypted",
			"pubkeyFingerprint", fingerprint(pub.E, pub.N),
			"plaintextBytes", len(payload),
			"ciphertextBytes", len(ciphertext),
		)
		return nil
	},
}

// fingerprint returns a short hex blake2b-256 digest of a public key's
// (e, n) pair, for eyeballing "is this the key I think it is" without
// comparing the full decimal modulus.
func fingerprint(e, n *big.Int) string {
	sum := blake2b.Sum256([]byte(e.String() + ":" + n.String()))
	return hex.EncodeToString(sum[:8])
}

func init() {
	Cmd.Flags().String("pub-in", "rsatoy.pub", "public key input path")
	Cmd.Flags().String("in", "", "plaintext input path")
	Cmd.Flags().String("out", "", "ciphertext output path")
}
