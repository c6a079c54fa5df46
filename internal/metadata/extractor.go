// Package metadata extracts bibliographic metadata from filenames and
// raw PDF text using layered heuristics.
package metadata

import (
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/reviewdb/lr/internal/doi"
	"github.com/reviewdb/lr/internal/paper"
)

var (
	yearPattern = regexp.MustCompile(`\b(19|20)\d{2}\b`)
	// Repeat counts above 1000 are rejected by regexp.
	abstractPattern = regexp.MustCompile(`(?is)abstract[:.\s]+(.{50,1000}?)(?:\n\s*\n|introduction|keywords)`)
)

// FromFilename extracts metadata from a filename following the common
// Author_Year_Title convention. Confidence reflects how many of the three
// fields were recovered.
func FromFilename(filename string) paper.Metadata {
	meta := paper.Metadata{ExtractionSource: "filename"}

	name := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	name = strings.ReplaceAll(name, "_", " ")

	loc := yearPattern.FindStringIndex(name)
	if loc != nil {
		year, _ := strconv.Atoi(name[loc[0]:loc[1]])
		meta.Year = year

		if before := strings.TrimSpace(name[:loc[0]]); before != "" {
			// First word before the year is usually the lead author surname.
			meta.Authors = []string{strings.Fields(before)[0]}
		}
		if after := strings.TrimSpace(name[loc[1]:]); after != "" {
			meta.Title = after
		}
	}

	meta.ExtractionConfidence = fieldConfidence(meta)
	return meta
}

// FromText extracts metadata from the text of a paper's first pages:
// DOI, year, and abstract when recognizable.
func FromText(text string) paper.Metadata {
	meta := paper.Metadata{ExtractionSource: "pdf_text"}

	if d := doi.Find(text); d != "" {
		meta.DOI = doi.Normalize(d)
	}

	if m := yearPattern.FindString(text); m != "" {
		meta.Year, _ = strconv.Atoi(m)
	}

	if m := abstractPattern.FindStringSubmatch(text); len(m) > 1 {
		meta.Abstract = strings.TrimSpace(strings.Join(strings.Fields(m[1]), " "))
	}

	meta.ExtractionConfidence = fieldConfidence(meta)
	return meta
}

// Merge overlays primary onto fallback: primary fields win where present.
// The result keeps the provenance of whichever source supplied the title.
func Merge(primary, fallback paper.Metadata) paper.Metadata {
	merged := fallback
	if primary.Title != "" {
		merged.Title = primary.Title
		merged.ExtractionSource = primary.ExtractionSource
	}
	if len(primary.Authors) > 0 {
		merged.Authors = primary.Authors
	}
	if primary.Year != 0 {
		merged.Year = primary.Year
	}
	if primary.DOI != "" {
		merged.DOI = primary.DOI
	}
	if primary.Abstract != "" {
		merged.Abstract = primary.Abstract
	}
	merged.ExtractionConfidence = fieldConfidence(merged)
	return merged
}

// fieldConfidence scores extraction quality as the fraction of the three
// key fields (title, authors, year) that were recovered.
func fieldConfidence(meta paper.Metadata) float64 {
	got := 0
	if meta.Title != "" {
		got++
	}
	if len(meta.Authors) > 0 {
		got++
	}
	if meta.Year != 0 {
		got++
	}
	return float64(got) / 3.0
}
