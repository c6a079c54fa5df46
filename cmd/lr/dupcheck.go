package main

import (
	"github.com/spf13/cobra"

	"github.com/reviewdb/lr/internal/citation"
	"github.com/reviewdb/lr/internal/paper"
)

// dupcheckResult pairs a candidate with its match, if any.
type dupcheckResult struct {
	Candidate paper.Reference          `json:"candidate"`
	Match     *citation.DuplicateMatch `json:"match,omitempty"`
}

var dupcheckCmd = &cobra.Command{
	Use:   "dupcheck <refs.json>",
	Short: "Check candidate references against the library for duplicates",
	Long: `Compare each reference in a JSON array against the paper library.

An exact normalized-DOI match reports similarity 1.0. Otherwise the first
library paper whose title similarity crosses the configured threshold is
reported.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		refs, err := readReferences(args[0])
		if err != nil {
			exitWithError(ExitDataError, "reading references: %s", err)
		}

		db := openDB()
		defer db.Close()

		existing, err := db.ListPapers()
		if err != nil {
			exitWithError(ExitError, "listing papers: %s", err)
		}

		validator := newValidator()

		results := make([]dupcheckResult, len(refs))
		for i, ref := range refs {
			candidate := paper.Metadata{Title: ref.Title, DOI: ref.DOI}
			results[i] = dupcheckResult{
				Candidate: ref,
				Match:     validator.CheckDuplicate(candidate, existing),
			}
		}

		if humanOutput {
			for _, r := range results {
				if r.Match != nil {
					outputHuman("DUP  %.2f  %s -> %s\n", r.Match.Similarity, r.Candidate.Title, r.Match.PaperID)
				} else {
					outputHuman("new        %s\n", r.Candidate.Title)
				}
			}
			return
		}
		outputJSON(results)
	},
}

func init() {
	rootCmd.AddCommand(dupcheckCmd)
}
