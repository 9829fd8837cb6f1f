/*
Copyright © 2025 booktran contributors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var version = "0.1.0"

var rootCmd = &cobra.Command{
	Use:   "booktran",
	Short: "Format-preserving book translator",
	Long: `Translate a whole book (.docx) into another language while preserving
per-paragraph formatting.

Providers:
  - openai   generative; produces a literal and a poetic rendering
  - google   Google Cloud Translation (direct)
  - deepl    DeepL (direct)

Use "booktran translate --help" for translation options, or
"booktran serve" for the interactive upload form.`,
	Version: version,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
}

// initConfig wires the environment into viper. Flags always win; these are
// the fallbacks the resolver consults when a flag is left empty.
func initConfig() {
	viper.SetEnvPrefix("booktran")
	viper.AutomaticEnv()

	// Conventional provider variables are accepted alongside BOOKTRAN_*.
	viper.BindEnv("openai_key", "BOOKTRAN_OPENAI_KEY", "OPENAI_API_KEY")
	viper.BindEnv("deepl_key", "BOOKTRAN_DEEPL_KEY", "DEEPL_API_KEY")
	viper.BindEnv("google_credentials", "BOOKTRAN_GOOGLE_CREDENTIALS", "GOOGLE_APPLICATION_CREDENTIALS")

	if home, err := os.UserHomeDir(); err == nil {
		viper.SetConfigName(".booktran")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(home)
		// The config file is optional.
		_ = viper.ReadInConfig()
	}
}
