package citation

import (
	"context"

	"github.com/reviewdb/lr/internal/crossref"
	"github.com/reviewdb/lr/internal/doi"
	"github.com/reviewdb/lr/internal/paper"
	"github.com/reviewdb/lr/internal/similarity"
)

const (
	// FuzzyMatchThreshold is the title similarity above which a search hit
	// counts as a MEDIUM-confidence match.
	FuzzyMatchThreshold = 0.8

	// DefaultDuplicateThreshold is the title similarity above which two
	// papers are treated as duplicates.
	DefaultDuplicateThreshold = 0.85

	// searchRows is the number of candidates requested per title search.
	searchRows = 5
)

// Registry is the bibliographic lookup capability the validator consumes.
// *crossref.Client satisfies it; tests substitute fakes.
type Registry interface {
	WorkByDOI(ctx context.Context, normalizedDOI string) (*crossref.Work, error)
	SearchTitle(ctx context.Context, title string, rows int) ([]crossref.Work, error)
}

// Validator validates citations and detects duplicate papers.
type Validator struct {
	registry  Registry
	threshold float64
}

// Option configures a Validator.
type Option func(*Validator)

// WithDuplicateThreshold overrides the duplicate title similarity threshold.
func WithDuplicateThreshold(t float64) Option {
	return func(v *Validator) {
		v.threshold = t
	}
}

// NewValidator creates a Validator backed by the given registry.
func NewValidator(registry Registry, opts ...Option) *Validator {
	v := &Validator{
		registry:  registry,
		threshold: DefaultDuplicateThreshold,
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Validate validates references in order, one result per input. A failure
// on one reference degrades that result to LOW confidence and processing
// continues; Validate itself never fails.
func (v *Validator) Validate(ctx context.Context, refs []paper.Reference) []ValidatedCitation {
	results := make([]ValidatedCitation, len(refs))
	for i, ref := range refs {
		results[i] = v.validateOne(ctx, ref)
	}
	return results
}

// validateOne applies the strategy ladder: DOI lookup, then fuzzy title
// search, then give up at LOW confidence.
func (v *Validator) validateOne(ctx context.Context, ref paper.Reference) ValidatedCitation {
	if ref.DOI != "" {
		if d := doi.Normalize(ref.DOI); doi.Valid(d) {
			return v.validateByDOI(ctx, ref, d)
		}
	}

	if ref.Title != "" {
		return v.validateByTitle(ctx, ref)
	}

	return ValidatedCitation{
		Original:   ref,
		Validated:  paper.FromReference(ref),
		Confidence: ConfidenceLow,
		Method:     MethodNone,
	}
}

// validateByDOI looks the DOI up in the registry. A confirmed DOI is the
// only path to HIGH confidence.
func (v *Validator) validateByDOI(ctx context.Context, ref paper.Reference, normalized string) ValidatedCitation {
	work, err := v.registry.WorkByDOI(ctx, normalized)
	if err != nil {
		if crossref.IsNotFound(err) {
			return ValidatedCitation{
				Original:   ref,
				Validated:  paper.FromReference(ref),
				Confidence: ConfidenceLow,
				Method:     MethodDOINotFound,
			}
		}
		return ValidatedCitation{
			Original:        ref,
			Validated:       paper.FromReference(ref),
			Confidence:      ConfidenceLow,
			Method:          MethodDOIAPIError,
			ValidationError: err.Error(),
		}
	}

	rec := crossref.ToCanonical(work)
	if rec.DOI == "" {
		rec.DOI = normalized
	}

	return ValidatedCitation{
		Original:   ref,
		Validated:  rec,
		Confidence: ConfidenceHigh,
		Method:     MethodDOI,
	}
}

// validateByTitle searches the registry by title and scores candidates with
// normalized fuzzy similarity. The best candidate is reported even below
// the MEDIUM threshold so callers can see how close it came.
func (v *Validator) validateByTitle(ctx context.Context, ref paper.Reference) ValidatedCitation {
	works, err := v.registry.SearchTitle(ctx, ref.Title, searchRows)
	if err != nil {
		return ValidatedCitation{
			Original:        ref,
			Validated:       paper.FromReference(ref),
			Confidence:      ConfidenceLow,
			Method:          MethodTitleAPIErr,
			ValidationError: err.Error(),
		}
	}

	if len(works) == 0 {
		return ValidatedCitation{
			Original:   ref,
			Validated:  paper.FromReference(ref),
			Confidence: ConfidenceLow,
			Method:     MethodTitleNoMatch,
		}
	}

	var best *crossref.Work
	bestSim := 0.0
	for i := range works {
		if len(works[i].Title) == 0 {
			continue
		}
		sim := similarity.TitleRatio(ref.Title, works[i].Title[0])
		if sim > bestSim || best == nil {
			bestSim = sim
			best = &works[i]
		}
	}

	validated := paper.FromReference(ref)
	if best != nil {
		validated = crossref.ToCanonical(best)
	}

	confidence := ConfidenceLow
	if bestSim >= FuzzyMatchThreshold {
		confidence = ConfidenceMedium
	}

	return ValidatedCitation{
		Original:        ref,
		Validated:       validated,
		Confidence:      confidence,
		Method:          MethodTitleFuzzy,
		TitleSimilarity: &bestSim,
	}
}

// CheckDuplicate compares a candidate against existing papers, in order.
// An exact normalized-DOI match short-circuits with similarity 1.0.
// Otherwise the first existing title to meet the threshold wins, not the
// best overall, so scan order matters.
func (v *Validator) CheckDuplicate(candidate paper.Metadata, existing []paper.Metadata) *DuplicateMatch {
	if candidate.DOI != "" {
		d := doi.Normalize(candidate.DOI)
		for _, ex := range existing {
			if ex.DOI != "" && doi.Normalize(ex.DOI) == d {
				return &DuplicateMatch{PaperID: ex.PaperID, Similarity: 1.0}
			}
		}
	}

	if candidate.Title != "" {
		for _, ex := range existing {
			if ex.Title == "" {
				continue
			}
			sim := similarity.TitleRatio(candidate.Title, ex.Title)
			if sim >= v.threshold {
				return &DuplicateMatch{PaperID: ex.PaperID, Similarity: sim}
			}
		}
	}

	return nil
}
