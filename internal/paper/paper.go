// Package paper defines the core domain types for academic papers and citations.
package paper

// Reference is an unvalidated citation as parsed from a reference list or
// supplied by an importer. All fields are optional; validation strategies
// fall through based on what is present.
type Reference struct {
	Title   string   `json:"title,omitempty"`
	Authors []string `json:"authors,omitempty"`
	Year    int      `json:"year,omitempty"` // 0 if unknown
	DOI     string   `json:"doi,omitempty"`
}

// CanonicalRecord is registry-confirmed bibliographic metadata. Only fields
// present in the registry response are populated.
type CanonicalRecord struct {
	Title   string   `json:"title,omitempty"`
	Authors []string `json:"authors,omitempty"` // surname-first, e.g. "Turner, Rebecca"
	Year    int      `json:"year,omitempty"`
	Journal string   `json:"journal,omitempty"`
	Volume  string   `json:"volume,omitempty"`
	Issue   string   `json:"issue,omitempty"`
	Pages   string   `json:"pages,omitempty"`
	DOI     string   `json:"doi,omitempty"` // normalized
}

// FromReference builds a CanonicalRecord carrying the reference's own fields.
// Used as the fallback "validated" record when the registry cannot confirm.
func FromReference(ref Reference) CanonicalRecord {
	return CanonicalRecord{
		Title:   ref.Title,
		Authors: ref.Authors,
		Year:    ref.Year,
		DOI:     ref.DOI,
	}
}

// Metadata describes a paper held in (or destined for) the local library.
type Metadata struct {
	PaperID  string   `json:"paper_id,omitempty"`
	Title    string   `json:"title,omitempty"`
	Authors  []string `json:"authors,omitempty"`
	Year     int      `json:"year,omitempty"`
	Journal  string   `json:"journal,omitempty"`
	Volume   string   `json:"volume,omitempty"`
	Issue    string   `json:"issue,omitempty"`
	Pages    string   `json:"pages,omitempty"`
	DOI      string   `json:"doi,omitempty"`
	Abstract string   `json:"abstract,omitempty"`
	PDFPath  string   `json:"pdf_path,omitempty"`

	// Extraction provenance (filename, pdf_text, crossref, manual).
	ExtractionSource     string  `json:"extraction_source,omitempty"`
	ExtractionConfidence float64 `json:"extraction_confidence,omitempty"`
}
