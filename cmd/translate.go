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
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"

	"github.com/jenjoyx99/booktran/internal/backend"
	"github.com/jenjoyx99/booktran/internal/pipeline"
)

var (
	providerFlag string
	modeFlag     string

	openaiKeyFlag   string
	openaiModelFlag string
	deeplKeyFlag    string
	credentialsFlag string

	translateGlossaryDB string
)

var translateCmd = &cobra.Command{
	Use:   "translate INPUT OUTPUT LANGUAGE",
	Short: "Translate a .docx book with formatting preserved",
	Long: `Translate INPUT (a .docx file) into the target LANGUAGE and write the
result to OUTPUT, keeping paragraph count and formatting identical.

With --provider openai the output is written as OUTPUT_literal.docx and/or
OUTPUT_poetic.docx depending on --mode. Direct providers (google, deepl)
write OUTPUT as given and ignore --mode.`,
	Args: cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		inputFile, outputFile, targetLang := args[0], args[1], args[2]

		if inputFile == outputFile {
			return fmt.Errorf("input file and output file cannot be the same")
		}
		if _, err := language.Parse(targetLang); err != nil {
			return fmt.Errorf("invalid target language %q: %w", targetLang, err)
		}
		mode, err := backend.ParseMode(modeFlag)
		if err != nil {
			return err
		}

		ctx := context.Background()

		glossary, err := loadGlossary(ctx, translateGlossaryDB, targetLang)
		if err != nil {
			return fmt.Errorf("failed to load glossary: %w", err)
		}

		cfg := resolveConfig(openaiKeyFlag, openaiModelFlag, deeplKeyFlag, credentialsFlag)
		b, err := backend.New(ctx, providerFlag, cfg, glossary)
		if err != nil {
			return err
		}
		if c, ok := b.(io.Closer); ok {
			defer c.Close()
		}

		saved, err := pipeline.New(b).Run(ctx, pipeline.Job{
			InputPath:  inputFile,
			OutputPath: outputFile,
			TargetLang: targetLang,
			Mode:       mode,
		})
		if err != nil {
			return err
		}

		fmt.Println("Translation complete. Formatting preserved.")
		for _, path := range saved {
			fmt.Printf("  %s\n", path)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(translateCmd)

	translateCmd.Flags().StringVar(&providerFlag, "provider", "openai", "Translation provider (openai, google, deepl)")
	translateCmd.Flags().StringVar(&modeFlag, "mode", "both", "Output style for openai (literal, poetic, both)")

	translateCmd.Flags().StringVar(&openaiKeyFlag, "openai-key", "", "OpenAI API key (default $OPENAI_API_KEY)")
	translateCmd.Flags().StringVar(&openaiModelFlag, "openai-model", "", "OpenAI model (default gpt-4o-mini)")
	translateCmd.Flags().StringVar(&deeplKeyFlag, "deepl-key", "", "DeepL API key (default $DEEPL_API_KEY)")
	translateCmd.Flags().StringVarP(&credentialsFlag, "credentials", "c", "", "Path to Google Cloud credentials (default $GOOGLE_APPLICATION_CREDENTIALS)")

	translateCmd.Flags().StringVar(&translateGlossaryDB, "glossary-db", "", "Glossary database path (see \"booktran glossary\")")
}
