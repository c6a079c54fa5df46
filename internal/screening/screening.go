// Package screening implements the paper screening workflow.
package screening

import (
	"errors"
	"fmt"

	"github.com/reviewdb/lr/internal/reliability"
)

// Screening stages.
const (
	StageTitleAbstract = "title_abstract"
	StageFullText      = "full_text"
	StageQuality       = "quality"
)

// Decisions.
const (
	DecisionInclude = "include"
	DecisionExclude = "exclude"
	DecisionMaybe   = "maybe"
)

// ErrRationaleRequired is returned for exclude decisions without rationale.
var ErrRationaleRequired = errors.New("exclude decisions require rationale referencing inclusion criteria")

// ValidStage reports whether stage names a known screening stage.
func ValidStage(stage string) bool {
	return stage == StageTitleAbstract || stage == StageFullText || stage == StageQuality
}

// ValidDecision reports whether decision is a known screening decision.
func ValidDecision(decision string) bool {
	return decision == DecisionInclude || decision == DecisionExclude || decision == DecisionMaybe
}

// Store is the persistence the screening workflow needs.
type Store interface {
	ReviewPapers(reviewID string) ([]string, error)
	Decisions(reviewID, paperID, stage string) ([]reliability.Decision, error)
	InsertScreening(reviewID, paperID, reviewerID, stage, decision, rationale string) (string, error)
}

// Workflow records and queries screening decisions.
type Workflow struct {
	store Store
}

// NewWorkflow creates a Workflow over the given store.
func NewWorkflow(store Store) *Workflow {
	return &Workflow{store: store}
}

// RecordDecision validates and records a screening decision, returning the
// screening ID. Exclude decisions must carry a rationale.
func (w *Workflow) RecordDecision(reviewID, paperID, reviewerID, stage, decision, rationale string) (string, error) {
	if !ValidStage(stage) {
		return "", fmt.Errorf("invalid stage %q", stage)
	}
	if !ValidDecision(decision) {
		return "", fmt.Errorf("invalid decision %q", decision)
	}
	if decision == DecisionExclude && rationale == "" {
		return "", ErrRationaleRequired
	}

	return w.store.InsertScreening(reviewID, paperID, reviewerID, stage, decision, rationale)
}

// Pending returns the papers in the review that this reviewer has not yet
// screened at the given stage, in review order.
func (w *Workflow) Pending(reviewID, reviewerID, stage string) ([]string, error) {
	if !ValidStage(stage) {
		return nil, fmt.Errorf("invalid stage %q", stage)
	}

	paperIDs, err := w.store.ReviewPapers(reviewID)
	if err != nil {
		return nil, fmt.Errorf("listing review papers: %w", err)
	}

	var pending []string
	for _, paperID := range paperIDs {
		decisions, err := w.store.Decisions(reviewID, paperID, stage)
		if err != nil {
			return nil, fmt.Errorf("fetching decisions for %s: %w", paperID, err)
		}
		screened := false
		for _, d := range decisions {
			if d.ReviewerID == reviewerID {
				screened = true
				break
			}
		}
		if !screened {
			pending = append(pending, paperID)
		}
	}
	return pending, nil
}
