package main

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/reviewdb/lr/internal/config"
	"github.com/reviewdb/lr/internal/synthesis"
)

var themesField string

var themesCmd = &cobra.Command{
	Use:   "themes <review-id>",
	Short: "Suggest themes from extracted data",
	Long: `Group papers into candidate themes by an extracted field.

Uses embedding-based clustering when an Ollama endpoint is reachable,
otherwise falls back to keyword grouping.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.Load()
		if err != nil {
			exitWithError(ExitConfigError, "loading config: %s", err)
		}

		db := openDB()
		defer db.Close()

		var embedderOpts []synthesis.OllamaOption
		if cfg.OllamaURL != "" {
			embedderOpts = append(embedderOpts, synthesis.WithBaseURL(cfg.OllamaURL))
		}
		if cfg.EmbeddingModel != "" {
			embedderOpts = append(embedderOpts, synthesis.WithModel(cfg.EmbeddingModel))
		}

		synth := synthesis.NewSynthesizer(db, synthesis.NewOllamaEmbedder(embedderOpts...))
		result, err := synth.SuggestThemes(cmd.Context(), args[0], themesField)
		if err != nil {
			exitWithError(ExitError, "suggesting themes: %s", err)
		}

		if humanOutput {
			outputHuman("mode: %s\n", result.Mode)
			for _, t := range result.Themes {
				outputHuman("- %s (%d papers)\n", t.Label, len(t.PaperIDs))
			}
			return
		}
		outputJSON(result)
	},
}

func init() {
	// Load .env if present (for OLLAMA_URL)
	_ = godotenv.Load()

	themesCmd.Flags().StringVar(&themesField, "field", "main_results", "Extracted field to group by")
	rootCmd.AddCommand(themesCmd)
}
