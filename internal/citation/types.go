// Package citation validates references against the CrossRef registry and
// detects duplicate papers by DOI and fuzzy title similarity.
package citation

import "github.com/reviewdb/lr/internal/paper"

// Confidence is the trust tier attached to a validation outcome.
type Confidence string

const (
	// ConfidenceHigh means the DOI was confirmed by the registry.
	ConfidenceHigh Confidence = "HIGH"
	// ConfidenceMedium means a title search hit with similarity >= 0.8.
	ConfidenceMedium Confidence = "MEDIUM"
	// ConfidenceLow covers every other outcome.
	ConfidenceLow Confidence = "LOW"
)

// Validation method tags. Machine-readable reason for the outcome.
const (
	MethodDOI          = "doi"
	MethodDOINotFound  = "doi_not_found"
	MethodDOIAPIError  = "doi_api_error"
	MethodTitleFuzzy   = "title_fuzzy"
	MethodTitleNoMatch = "title_no_match"
	MethodTitleAPIErr  = "title_api_error"
	MethodNone         = "none"
)

// ValidatedCitation is the per-reference validation result.
type ValidatedCitation struct {
	Original  paper.Reference       `json:"original"`
	Validated paper.CanonicalRecord `json:"validated"`

	Confidence Confidence `json:"confidence"`
	Method     string     `json:"validation_method"`

	// TitleSimilarity is set when the title-search path ran and produced
	// candidates to score.
	TitleSimilarity *float64 `json:"title_similarity,omitempty"`

	// ValidationError carries the underlying failure text for the
	// *_api_error methods.
	ValidationError string `json:"validation_error,omitempty"`
}

// DuplicateMatch identifies an existing paper the candidate duplicates.
type DuplicateMatch struct {
	PaperID    string  `json:"paper_id"`
	Similarity float64 `json:"similarity"`
}
