package crossref

import (
	"strings"

	"github.com/reviewdb/lr/internal/doi"
	"github.com/reviewdb/lr/internal/paper"
)

// ToCanonical maps a CrossRef work to a CanonicalRecord. Only fields present
// in the response are populated.
func ToCanonical(w *Work) paper.CanonicalRecord {
	rec := paper.CanonicalRecord{
		Volume: w.Volume,
		Issue:  w.Issue,
		Pages:  w.Page,
	}

	if len(w.Title) > 0 {
		rec.Title = w.Title[0]
	}

	for _, a := range w.Author {
		if a.Family == "" {
			continue
		}
		name := a.Family
		if a.Given != "" {
			name = a.Family + ", " + a.Given
		}
		rec.Authors = append(rec.Authors, strings.TrimSpace(name))
	}

	rec.Year = w.Published.Year()

	if len(w.ContainerTitle) > 0 {
		rec.Journal = w.ContainerTitle[0]
	}

	if w.DOI != "" {
		rec.DOI = doi.Normalize(w.DOI)
	}

	return rec
}
