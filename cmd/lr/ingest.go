package main

import (
	"errors"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/reviewdb/lr/internal/citation"
	"github.com/reviewdb/lr/internal/metadata"
	"github.com/reviewdb/lr/internal/paper"
	"github.com/reviewdb/lr/internal/pdf"
	"github.com/reviewdb/lr/internal/store"
)

var (
	ingestReviewID string
	ingestSkipDup  bool
)

// ingestResponse is the JSON result of an ingest run.
type ingestResponse struct {
	PaperID   string                      `json:"paper_id"`
	Metadata  paper.Metadata              `json:"metadata"`
	Validated *citation.ValidatedCitation `json:"validated,omitempty"`
	Duplicate *citation.DuplicateMatch    `json:"duplicate,omitempty"`
}

var ingestCmd = &cobra.Command{
	Use:   "ingest <paper.pdf>",
	Short: "Ingest a PDF into the paper library",
	Long: `Parse a PDF, extract metadata from its filename and text, validate
it against CrossRef, check the library for duplicates, and store it.

Duplicate candidates abort the ingest unless --allow-duplicate is given.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		path := args[0]

		document, err := pdf.Parse(path, 5)
		if err != nil {
			exitWithError(ExitDataError, "parsing PDF: %s", err)
		}

		// Filename heuristics first, text heuristics fill the gaps.
		meta := metadata.Merge(metadata.FromText(document.Text), metadata.FromFilename(path))
		if meta.Title == "" {
			if title, err := pdf.ExtractTitle(path); err == nil {
				meta.Title = title
			}
		}
		meta.PDFPath = path

		db := openDB()
		defer db.Close()

		validator := newValidator()

		resp := ingestResponse{}

		// Confirm (and enrich) against the registry when we have anything
		// to look up. A registry failure only lowers confidence.
		if meta.DOI != "" || meta.Title != "" {
			results := validator.Validate(cmd.Context(), []paper.Reference{{
				Title:   meta.Title,
				Authors: meta.Authors,
				Year:    meta.Year,
				DOI:     meta.DOI,
			}})
			v := results[0]
			resp.Validated = &v
			if v.Confidence == citation.ConfidenceHigh || v.Confidence == citation.ConfidenceMedium {
				meta = mergeCanonical(meta, v.Validated)
			}
		}

		existing, err := db.ListPapers()
		if err != nil {
			exitWithError(ExitError, "listing papers: %s", err)
		}
		if match := validator.CheckDuplicate(meta, existing); match != nil {
			resp.Duplicate = match
			if !ingestSkipDup {
				if humanOutput {
					exitWithError(ExitDuplicate, "duplicate of paper %s (similarity %.2f)", match.PaperID, match.Similarity)
				}
				outputJSON(resp)
				os.Exit(ExitDuplicate)
			}
		}

		paperID, err := db.AddPaper(meta)
		if err != nil {
			exitWithError(ExitError, "storing paper: %s", err)
		}
		resp.PaperID = paperID
		meta.PaperID = paperID
		resp.Metadata = meta

		if ingestReviewID != "" {
			if _, err := db.GetReview(ingestReviewID); err != nil {
				if errors.Is(err, store.ErrNotFound) {
					exitWithError(ExitNotFound, "review %s not found", ingestReviewID)
				}
				exitWithError(ExitError, "loading review: %s", err)
			}
			if err := db.LinkPaper(ingestReviewID, paperID); err != nil {
				exitWithError(ExitError, "linking paper: %s", err)
			}
		}

		if humanOutput {
			outputHuman("added %s: %s\n", paperID, meta.Title)
			return
		}
		outputJSON(resp)
	},
}

// mergeCanonical overlays registry-confirmed fields onto extracted metadata.
func mergeCanonical(meta paper.Metadata, rec paper.CanonicalRecord) paper.Metadata {
	if rec.Title != "" {
		meta.Title = rec.Title
	}
	if len(rec.Authors) > 0 {
		meta.Authors = rec.Authors
	}
	if rec.Year != 0 {
		meta.Year = rec.Year
	}
	if rec.Journal != "" {
		meta.Journal = rec.Journal
	}
	if rec.Volume != "" {
		meta.Volume = rec.Volume
	}
	if rec.Issue != "" {
		meta.Issue = rec.Issue
	}
	if rec.Pages != "" {
		meta.Pages = rec.Pages
	}
	if rec.DOI != "" {
		meta.DOI = rec.DOI
	}
	meta.ExtractionSource = "crossref"
	return meta
}

func init() {
	// Load .env if present (for CROSSREF_MAILTO)
	_ = godotenv.Load()

	ingestCmd.Flags().StringVar(&ingestReviewID, "review", "", "Link the paper to this review")
	ingestCmd.Flags().BoolVar(&ingestSkipDup, "allow-duplicate", false, "Store the paper even if a duplicate is found")
	rootCmd.AddCommand(ingestCmd)
}
