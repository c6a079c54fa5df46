// Package crossref provides a rate-limited client for the CrossRef REST API.
package crossref

// Work represents a work record from the CrossRef API.
type Work struct {
	Title          []string     `json:"title,omitempty"`
	Author         []WorkAuthor `json:"author,omitempty"`
	Published      WorkDate     `json:"published,omitempty"`
	ContainerTitle []string     `json:"container-title,omitempty"`
	Volume         string       `json:"volume,omitempty"`
	Issue          string       `json:"issue,omitempty"`
	Page           string       `json:"page,omitempty"`
	DOI            string       `json:"DOI,omitempty"`
	Score          float64      `json:"score,omitempty"`
}

// WorkAuthor represents an author entry in a CrossRef work.
type WorkAuthor struct {
	Given  string `json:"given,omitempty"`
	Family string `json:"family,omitempty"`
}

// WorkDate represents a CrossRef date as nested date-parts.
type WorkDate struct {
	DateParts [][]int `json:"date-parts,omitempty"`
}

// Year returns the year component, or 0 if absent.
func (d WorkDate) Year() int {
	if len(d.DateParts) == 0 || len(d.DateParts[0]) == 0 {
		return 0
	}
	return d.DateParts[0][0]
}

// workResponse is the envelope for a single-work lookup.
type workResponse struct {
	Status  string `json:"status"`
	Message *Work  `json:"message"`
}

// searchResponse is the envelope for a works search.
type searchResponse struct {
	Status  string `json:"status"`
	Message *struct {
		Items []Work `json:"items"`
	} `json:"message"`
}
