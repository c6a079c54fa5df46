package crossref

import (
	"reflect"
	"testing"
)

func TestToCanonical(t *testing.T) {
	w := &Work{
		Title: []string{"Food Deserts and Health", "Alternate Title"},
		Author: []WorkAuthor{
			{Given: "Ada", Family: "Lovelace"},
			{Family: "Hopper"},
			{Given: "Orphan"}, // no family name, dropped
		},
		Published:      WorkDate{DateParts: [][]int{{2019, 3, 14}}},
		ContainerTitle: []string{"Journal of Nutrition"},
		Volume:         "12",
		Issue:          "3",
		Page:           "100-115",
		DOI:            "https://doi.org/10.1234/ABC",
	}

	rec := ToCanonical(w)

	if rec.Title != "Food Deserts and Health" {
		t.Errorf("title = %q", rec.Title)
	}
	wantAuthors := []string{"Lovelace, Ada", "Hopper"}
	if !reflect.DeepEqual(rec.Authors, wantAuthors) {
		t.Errorf("authors = %v, want %v", rec.Authors, wantAuthors)
	}
	if rec.Year != 2019 {
		t.Errorf("year = %d, want 2019", rec.Year)
	}
	if rec.Journal != "Journal of Nutrition" {
		t.Errorf("journal = %q", rec.Journal)
	}
	if rec.Volume != "12" || rec.Issue != "3" || rec.Pages != "100-115" {
		t.Errorf("volume/issue/pages = %q/%q/%q", rec.Volume, rec.Issue, rec.Pages)
	}
	if rec.DOI != "10.1234/abc" {
		t.Errorf("doi = %q, want normalized", rec.DOI)
	}
}

func TestToCanonicalSparseWork(t *testing.T) {
	rec := ToCanonical(&Work{})

	if rec.Title != "" || rec.Journal != "" || rec.DOI != "" {
		t.Errorf("sparse work produced non-empty fields: %+v", rec)
	}
	if rec.Year != 0 {
		t.Errorf("year = %d, want 0", rec.Year)
	}
	if len(rec.Authors) != 0 {
		t.Errorf("authors = %v, want none", rec.Authors)
	}
}
