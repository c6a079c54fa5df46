package main

import (
	"encoding/json"
	"os"

	"github.com/reviewdb/lr/internal/citation"
	"github.com/reviewdb/lr/internal/config"
	"github.com/reviewdb/lr/internal/crossref"
	"github.com/reviewdb/lr/internal/paper"
	"github.com/reviewdb/lr/internal/store"
)

// openDB opens the review database from the global config.
// Exits the process on configuration or open errors.
func openDB() *store.DB {
	cfg, err := config.Load()
	if err != nil {
		exitWithError(ExitConfigError, "loading config: %s", err)
	}

	db, err := store.Open(cfg.DBPath)
	if err != nil {
		exitWithError(ExitConfigError, "opening database %s: %s", cfg.DBPath, err)
	}
	return db
}

// newValidator builds a CitationValidator backed by the live CrossRef API,
// configured from the global config.
func newValidator() *citation.Validator {
	cfg, err := config.Load()
	if err != nil {
		exitWithError(ExitConfigError, "loading config: %s", err)
	}

	var clientOpts []crossref.ClientOption
	if cfg.CrossRefMailto != "" {
		clientOpts = append(clientOpts, crossref.WithMailto(cfg.CrossRefMailto))
	}

	return citation.NewValidator(
		crossref.NewClient(clientOpts...),
		citation.WithDuplicateThreshold(cfg.DuplicateThreshold),
	)
}

// readReferences loads a JSON array of references from a file.
func readReferences(path string) ([]paper.Reference, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var refs []paper.Reference
	if err := json.Unmarshal(data, &refs); err != nil {
		return nil, err
	}
	return refs, nil
}
