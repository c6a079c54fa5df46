package reliability

import (
	"errors"
	"fmt"
)

// ErrNoPairedPapers is returned when no paper at the requested stage has
// been screened by exactly two reviewers. Distinct from a zero-agreement
// report.
var ErrNoPairedPapers = errors.New("no dual-screened papers found")

// Decision is one reviewer's screening decision for a paper at a stage.
type Decision struct {
	ReviewerID string `json:"reviewer_id"`
	Decision   string `json:"decision"` // include, exclude, maybe
	Rationale  string `json:"rationale,omitempty"`
}

// DecisionSource supplies screening decisions, insertion-ordered by time
// recorded. The store implements it.
type DecisionSource interface {
	ReviewPapers(reviewID string) ([]string, error)
	Decisions(reviewID, paperID, stage string) ([]Decision, error)
}

// ScreeningPair holds the two decisions recorded for one dual-screened paper.
type ScreeningPair struct {
	PaperID   string `json:"paper_id"`
	Reviewer1 string `json:"reviewer1"`
	Reviewer2 string `json:"reviewer2"`
	Decision1 string `json:"decision1"`
	Decision2 string `json:"decision2"`
}

// Agree reports whether the two decisions match.
func (p ScreeningPair) Agree() bool {
	return p.Decision1 == p.Decision2
}

// Report summarizes inter-rater reliability over the paired set.
type Report struct {
	Kappa             float64         `json:"kappa"`
	Interpretation    string          `json:"interpretation"`
	TotalPairedPapers int             `json:"total_paired_papers"`
	AgreementCount    int             `json:"agreement_count"`
	PercentAgreement  float64         `json:"percent_agreement"`
	Disagreements     []ScreeningPair `json:"disagreements"`
}

// Calculator computes screening reliability from a decision source.
type Calculator struct {
	source DecisionSource
}

// NewCalculator creates a Calculator over the given decision source.
func NewCalculator(source DecisionSource) *Calculator {
	return &Calculator{source: source}
}

// ScreeningKappa computes Cohen's kappa over all papers in the review that
// were screened by exactly two reviewers at the given stage. Papers with
// any other decision count are out of scope, not errors. Returns
// ErrNoPairedPapers when the paired set is empty.
func (c *Calculator) ScreeningKappa(reviewID, stage string) (*Report, error) {
	paperIDs, err := c.source.ReviewPapers(reviewID)
	if err != nil {
		return nil, fmt.Errorf("listing review papers: %w", err)
	}

	var pairs []ScreeningPair
	for _, paperID := range paperIDs {
		decisions, err := c.source.Decisions(reviewID, paperID, stage)
		if err != nil {
			return nil, fmt.Errorf("fetching decisions for %s: %w", paperID, err)
		}
		if len(decisions) != 2 {
			continue
		}
		pairs = append(pairs, ScreeningPair{
			PaperID:   paperID,
			Reviewer1: decisions[0].ReviewerID,
			Reviewer2: decisions[1].ReviewerID,
			Decision1: decisions[0].Decision,
			Decision2: decisions[1].Decision,
		})
	}

	if len(pairs) == 0 {
		return nil, ErrNoPairedPapers
	}

	labels1 := make([]string, len(pairs))
	labels2 := make([]string, len(pairs))
	agree := 0
	var disagreements []ScreeningPair
	for i, p := range pairs {
		labels1[i] = p.Decision1
		labels2[i] = p.Decision2
		if p.Agree() {
			agree++
		} else {
			disagreements = append(disagreements, p)
		}
	}

	kappa := CohenKappa(labels1, labels2)

	return &Report{
		Kappa:             kappa,
		Interpretation:    Interpret(kappa),
		TotalPairedPapers: len(pairs),
		AgreementCount:    agree,
		PercentAgreement:  float64(agree) / float64(len(pairs)) * 100,
		Disagreements:     disagreements,
	}, nil
}
