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
	"os"

	"github.com/spf13/viper"

	"github.com/jenjoyx99/booktran/internal/backend"
	"github.com/jenjoyx99/booktran/internal/store"
)

// resolveConfig assembles the explicit backend configuration: flag values
// first, then environment/config-file values via viper. No package in the
// backend chain reads the environment itself.
func resolveConfig(openaiKey, openaiModel, deeplKey, googleCredentials string) backend.Config {
	cfg := backend.Config{
		OpenAIKey:         openaiKey,
		OpenAIModel:       openaiModel,
		DeepLKey:          deeplKey,
		GoogleCredentials: googleCredentials,
	}
	if cfg.OpenAIKey == "" {
		cfg.OpenAIKey = viper.GetString("openai_key")
	}
	if cfg.DeepLKey == "" {
		cfg.DeepLKey = viper.GetString("deepl_key")
	}
	if cfg.GoogleCredentials == "" {
		cfg.GoogleCredentials = viper.GetString("google_credentials")
	}
	return cfg
}

// loadGlossary reads the terminology map for a target language, or returns
// nil when no glossary database is configured.
func loadGlossary(ctx context.Context, dbPath, targetLang string) (map[string]string, error) {
	if dbPath == "" {
		return nil, nil
	}
	if _, err := os.Stat(dbPath); err != nil {
		// No database yet means no pinned terms; not an error.
		return nil, nil
	}
	db, err := store.New(dbPath)
	if err != nil {
		return nil, err
	}
	defer db.Close()
	return db.TermMap(ctx, "en", targetLang)
}
