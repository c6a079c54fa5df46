// Package pdf extracts text and bibliographic hints from PDF files.
package pdf

import (
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/reviewdb/lr/internal/doi"
)

// Document is the parsed content of a PDF.
type Document struct {
	PageCount int    `json:"page_count"`
	Pages     []Page `json:"pages"`
	Text      string `json:"text"`
}

// Page is the text of a single page.
type Page struct {
	Num  int    `json:"page_num"` // 1-based
	Text string `json:"text"`
}

// Parse extracts text from up to maxPages pages (all pages if maxPages <= 0).
// Pages whose text cannot be decoded are skipped rather than failing the
// whole document.
func Parse(path string, maxPages int) (*Document, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	total := r.NumPage()
	if maxPages <= 0 || maxPages > total {
		maxPages = total
	}

	docText := strings.Builder{}
	document := &Document{PageCount: total}

	for i := 1; i <= maxPages; i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		document.Pages = append(document.Pages, Page{Num: i, Text: text})
		docText.WriteString(text)
		docText.WriteString("\n")
	}

	document.Text = docText.String()
	return document, nil
}

// ExtractDOI scans the first few pages for a DOI. The DOI is usually on the
// first page; returns "" (not an error) when none is found.
func ExtractDOI(path string) (string, error) {
	document, err := Parse(path, 3)
	if err != nil {
		return "", err
	}
	for _, page := range document.Pages {
		if d := doi.Find(page.Text); d != "" {
			return d, nil
		}
	}
	return "", nil
}

// ExtractTitle returns a best-effort title: the first substantial line of
// the first page that doesn't look like a running header.
func ExtractTitle(path string) (string, error) {
	document, err := Parse(path, 1)
	if err != nil {
		return "", err
	}
	if len(document.Pages) == 0 {
		return "", nil
	}

	for _, line := range strings.Split(document.Pages[0].Text, "\n") {
		line = strings.TrimSpace(line)
		if len(line) > 20 && !isHeaderLine(line) {
			return line, nil
		}
	}
	return "", nil
}

// isHeaderLine checks if a line is likely a journal header or footer.
func isHeaderLine(line string) bool {
	lower := strings.ToLower(line)
	if strings.Contains(lower, "journal") {
		return true
	}
	if strings.Contains(lower, "volume") && strings.Contains(lower, "issue") {
		return true
	}
	if strings.Contains(lower, "copyright") {
		return true
	}
	if strings.Contains(lower, "article") && strings.Contains(lower, "published") {
		return true
	}
	return false
}
