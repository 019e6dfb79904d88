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

// Package decrypt implements `rsatoy decrypt`: read a ciphertext file
// and a private key, recover the plaintext block by block, and write
// it out. --strict turns the first malformed block into a fatal error
// instead of a logged warning.
package decrypt

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/cryptolab/rsatoy/crypto/blockcipher"
	"github.com/cryptolab/rsatoy/keyfile"
	"github.com/cryptolab/rsatoy/logger"
)

var log = logger.Named("decrypt")

var Cmd = &cobra.Command{
	Use:   "decrypt",
	Short: "Decrypt a file under a private key",
	RunE: func(cmd *cobra.Command, args []string) error {
		privPath := viper.GetString("priv-in")
		inPath := viper.GetString("in")
		outPath := viper.GetString("out")
		strict := viper.GetBool("strict")

		priv, err := keyfile.KeySource{Path: privPath}.Resolve()
		if err != nil {
			return err
		}

		ciphertext, err := os.ReadFile(inPath)
		if err != nil {
			return err
		}

		plaintext, warnings, err := blockcipher.DecryptPayload(ciphertext, priv, blockcipher.DecryptOptions{Strict: strict})
		if err != nil {
			log.Error("decryption failed", "err", err)
			return err
		}
		for _, w := range warnings {
			log.Warn("block skipped", "index", w.Index, "err", w.Err)
		}

		if err := os.WriteFile(outPath, plaintext, 0o644); err != nil {
			return err
		}

		log.Info("payload decrypted",
			"crt", priv.HasCRT(),
			"ciphertextBytes", len(ciphertext),
			"plaintextBytes", len(plaintext),
			"blocksSkipped", len(warnings),
		)
		return nil
	},
}

func init() {
	Cmd.Flags().String("priv-in", "rsatoy.key", "private key input path")
	Cmd.Flags().String("in", "", "ciphertext input path")
	Cmd.Flags().String("out", "", "plaintext output path")
	Cmd.Flags().Bool("strict", false, "fail on the first malformed block instead of skipping it")
}
