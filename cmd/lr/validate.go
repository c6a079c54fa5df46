package main

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/reviewdb/lr/internal/citation"
)

var validateCmd = &cobra.Command{
	Use:   "validate <refs.json>",
	Short: "Validate citations against CrossRef",
	Long: `Validate a JSON array of references against the CrossRef registry.

Each reference may carry title, authors, year, and doi. The output holds
one result per input reference, in order, with a confidence tier
(HIGH/MEDIUM/LOW) and the validation method used. Failures never abort
the batch; they degrade the individual result to LOW confidence.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		refs, err := readReferences(args[0])
		if err != nil {
			exitWithError(ExitDataError, "reading references: %s", err)
		}

		validator := newValidator()
		results := validator.Validate(cmd.Context(), refs)

		if humanOutput {
			for i, r := range results {
				title := r.Validated.Title
				if title == "" {
					title = "(no title)"
				}
				outputHuman("%3d. [%s/%s] %s\n", i+1, r.Confidence, r.Method, title)
			}
			s := summarize(results)
			outputHuman("\n%d references: %d high, %d medium, %d low (%d errored)\n",
				s.Total, s.High, s.Medium, s.Low, s.Errored)
			return
		}
		outputJSON(results)
	},
}

// validationSummary aggregates a validation run for reporting.
type validationSummary struct {
	Total   int `json:"total"`
	High    int `json:"high"`
	Medium  int `json:"medium"`
	Low     int `json:"low"`
	Errored int `json:"errored"`
}

func summarize(results []citation.ValidatedCitation) validationSummary {
	s := validationSummary{Total: len(results)}
	for _, r := range results {
		switch r.Confidence {
		case citation.ConfidenceHigh:
			s.High++
		case citation.ConfidenceMedium:
			s.Medium++
		default:
			s.Low++
		}
		if r.ValidationError != "" {
			s.Errored++
		}
	}
	return s
}

func init() {
	// Load .env if present (for CROSSREF_MAILTO)
	_ = godotenv.Load()

	rootCmd.AddCommand(validateCmd)
}
