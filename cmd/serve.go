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
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/spf13/cobra"

	"github.com/jenjoyx99/booktran/internal/store"
	"github.com/jenjoyx99/booktran/internal/web"
)

var (
	serveAddr       string
	serveGlossaryDB string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the interactive upload form",
	Long: `Start an HTTP server with a .docx upload form. Uploaded documents are
translated with the selected provider and offered back as a download
(one file for direct providers, a zip of both styles for openai --mode both).

Provider credentials are taken from the environment or ~/.booktran.yaml.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

		var glossary *store.Store
		if serveGlossaryDB != "" {
			db, err := store.New(serveGlossaryDB)
			if err != nil {
				return fmt.Errorf("failed to open glossary database: %w", err)
			}
			defer db.Close()
			glossary = db
		}

		cfg := resolveConfig("", "", "", "")
		server := web.NewServer(cfg, glossary, logger)

		logger.Info("listening", "addr", serveAddr)
		return http.ListenAndServe(serveAddr, server)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serveAddr, "addr", ":8080", "Listen address")
	serveCmd.Flags().StringVar(&serveGlossaryDB, "glossary-db", "", "Glossary database path")
}
