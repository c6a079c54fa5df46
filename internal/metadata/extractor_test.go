package metadata

import (
	"math"
	"strings"
	"testing"

	"github.com/reviewdb/lr/internal/paper"
)

func TestFromFilename(t *testing.T) {
	tests := []struct {
		name        string
		filename    string
		wantTitle   string
		wantAuthors []string
		wantYear    int
	}{
		{
			name:        "author year title",
			filename:    "Smith_2019_Food_deserts_and_health.pdf",
			wantTitle:   "Food deserts and health",
			wantAuthors: []string{"Smith"},
			wantYear:    2019,
		},
		{
			name:      "leading year no author",
			filename:  "2020_untitled.pdf",
			wantTitle: "untitled",
			wantYear:  2020,
		},
		{
			name:     "no year",
			filename: "some_random_scan.pdf",
		},
		{
			name:        "nested path",
			filename:    "/papers/inbox/Jones_2021_Obesity_trends.pdf",
			wantTitle:   "Obesity trends",
			wantAuthors: []string{"Jones"},
			wantYear:    2021,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			meta := FromFilename(tt.filename)
			if meta.Title != tt.wantTitle {
				t.Errorf("title = %q, want %q", meta.Title, tt.wantTitle)
			}
			if meta.Year != tt.wantYear {
				t.Errorf("year = %d, want %d", meta.Year, tt.wantYear)
			}
			if len(tt.wantAuthors) == 0 && len(meta.Authors) != 0 {
				t.Errorf("authors = %v, want none", meta.Authors)
			}
			if len(tt.wantAuthors) > 0 && (len(meta.Authors) == 0 || meta.Authors[0] != tt.wantAuthors[0]) {
				t.Errorf("authors = %v, want %v", meta.Authors, tt.wantAuthors)
			}
			if meta.ExtractionSource != "filename" {
				t.Errorf("source = %q", meta.ExtractionSource)
			}
		})
	}
}

func TestFromText(t *testing.T) {
	text := `Food Deserts and Health Outcomes

Published 2019. DOI: 10.1234/jnut.2019.042

Abstract: ` + strings.Repeat("Access to fresh food shapes diet quality. ", 4) + `

Introduction
The rest of the paper follows.`

	meta := FromText(text)

	if meta.DOI != "10.1234/jnut.2019.042" {
		t.Errorf("doi = %q", meta.DOI)
	}
	if meta.Year != 2019 {
		t.Errorf("year = %d, want 2019", meta.Year)
	}
	if meta.Abstract == "" || !strings.Contains(meta.Abstract, "fresh food") {
		t.Errorf("abstract = %q", meta.Abstract)
	}
	if meta.ExtractionSource != "pdf_text" {
		t.Errorf("source = %q", meta.ExtractionSource)
	}
}

func TestFromTextLongAbstract(t *testing.T) {
	// A long abstract is still recognized up to the pattern's cap.
	body := strings.Repeat("Food access shapes diet quality in cities. ", 20)
	meta := FromText("Abstract: " + body + "\n\nIntroduction follows.")
	if meta.Abstract == "" || !strings.Contains(meta.Abstract, "Food access") {
		t.Errorf("abstract = %q", meta.Abstract)
	}
}

func TestFromTextEmpty(t *testing.T) {
	meta := FromText("")
	if meta.DOI != "" || meta.Year != 0 || meta.Abstract != "" {
		t.Errorf("empty text produced fields: %+v", meta)
	}
	if meta.ExtractionConfidence != 0 {
		t.Errorf("confidence = %v, want 0", meta.ExtractionConfidence)
	}
}

func TestMerge(t *testing.T) {
	primary := paper.Metadata{
		DOI:              "10.1234/abc",
		Year:             2019,
		Abstract:         "From the text.",
		ExtractionSource: "pdf_text",
	}
	fallback := paper.Metadata{
		Title:            "Food deserts and health",
		Authors:          []string{"Smith"},
		Year:             2018,
		ExtractionSource: "filename",
	}

	merged := Merge(primary, fallback)

	if merged.Title != "Food deserts and health" {
		t.Errorf("title = %q, fallback title should survive", merged.Title)
	}
	if merged.Year != 2019 {
		t.Errorf("year = %d, primary should win", merged.Year)
	}
	if merged.DOI != "10.1234/abc" || merged.Abstract != "From the text." {
		t.Errorf("primary fields lost: %+v", merged)
	}
	// Title came from the fallback, so its provenance holds.
	if merged.ExtractionSource != "filename" {
		t.Errorf("source = %q, want filename", merged.ExtractionSource)
	}
	if math.Abs(merged.ExtractionConfidence-1.0) > 1e-9 {
		t.Errorf("confidence = %v, want 1.0 (all three fields present)", merged.ExtractionConfidence)
	}
}

func TestMergePrimaryTitleWins(t *testing.T) {
	primary := paper.Metadata{Title: "Extracted Title", ExtractionSource: "pdf_text"}
	fallback := paper.Metadata{Title: "Filename Title", ExtractionSource: "filename"}

	merged := Merge(primary, fallback)
	if merged.Title != "Extracted Title" {
		t.Errorf("title = %q", merged.Title)
	}
	if merged.ExtractionSource != "pdf_text" {
		t.Errorf("source = %q, want pdf_text", merged.ExtractionSource)
	}
}
