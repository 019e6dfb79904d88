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

package main

import (
	"fmt"
	"os"

	"github.com/getamis/sirius/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/cryptolab/rsatoy/cmd/rsatoy/decrypt"
	"github.com/cryptolab/rsatoy/cmd/rsatoy/encrypt"
	"github.com/cryptolab/rsatoy/cmd/rsatoy/factor"
	"github.com/cryptolab/rsatoy/cmd/rsatoy/keygen"
	ourlog "github.com/cryptolab/rsatoy/logger"
)

var cmd = &cobra.Command{
	Use:   "rsatoy",
	Short: `rsatoy builds and breaks a toy RSA cryptosystem, block by block.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := viper.BindPFlags(cmd.Flags()); err != nil {
			return err
		}
		if viper.GetBool("verbose") {
			ourlog.SetLogger(log.New("app", "rsatoy"))
		}
		return nil
	},
}

func init() {
	cmd.PersistentFlags().Bool("verbose", false, "enable structured logging to stderr")

	cmd.AddCommand(keygen.Cmd)
	cmd.AddCommand(encrypt.Cmd)
	cmd.AddCommand(decrypt.Cmd)
	cmd.AddCommand(factor.Cmd)
}

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(-1)
	}
}
