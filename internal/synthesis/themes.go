package synthesis

import (
	"context"
	"fmt"
	"sort"
	"strings"
)

// ClusterThreshold is the cosine similarity at which two findings are
// grouped into the same theme.
const ClusterThreshold = 0.6

// maxKeywords caps the keywords reported per theme.
const maxKeywords = 5

// ExtractionSource supplies extracted field data per paper.
type ExtractionSource interface {
	Extractions(reviewID string) (map[string]map[string]any, error)
}

// Theme is a suggested grouping of papers with shared content.
type Theme struct {
	Label    string   `json:"label"`
	PaperIDs []string `json:"paper_ids"`
	Keywords []string `json:"keywords,omitempty"`
}

// Result is the outcome of theme suggestion.
type Result struct {
	Mode   string  `json:"mode"` // "embedding" or "manual"
	Field  string  `json:"field"`
	Themes []Theme `json:"themes"`
}

// Synthesizer suggests themes from extracted data. The embedder is
// optional; without one (or when it is unreachable) suggestion runs in
// manual keyword mode.
type Synthesizer struct {
	source   ExtractionSource
	embedder Embedder
}

// NewSynthesizer creates a Synthesizer. embedder may be nil for manual mode.
func NewSynthesizer(source ExtractionSource, embedder Embedder) *Synthesizer {
	return &Synthesizer{source: source, embedder: embedder}
}

// SuggestThemes groups papers by the named extracted field. Papers without
// text for the field are skipped.
func (s *Synthesizer) SuggestThemes(ctx context.Context, reviewID, field string) (*Result, error) {
	extractions, err := s.source.Extractions(reviewID)
	if err != nil {
		return nil, fmt.Errorf("loading extractions: %w", err)
	}

	var paperIDs []string
	var texts []string
	for paperID, data := range extractions {
		text, ok := data[field].(string)
		if !ok || strings.TrimSpace(text) == "" {
			continue
		}
		paperIDs = append(paperIDs, paperID)
		texts = append(texts, text)
	}
	// Map iteration order is random; keep output deterministic.
	sort.Sort(&pairSorter{ids: paperIDs, texts: texts})

	if len(texts) == 0 {
		return &Result{Mode: "manual", Field: field}, nil
	}

	if s.embedder != nil {
		if err := s.embedder.Available(ctx); err == nil {
			themes, err := s.embeddingThemes(ctx, paperIDs, texts)
			if err == nil {
				return &Result{Mode: "embedding", Field: field, Themes: themes}, nil
			}
			// Embedding failures degrade to manual mode rather than
			// failing the suggestion.
		}
	}

	return &Result{Mode: "manual", Field: field, Themes: keywordThemes(paperIDs, texts)}, nil
}

// embeddingThemes clusters findings by embedding similarity.
func (s *Synthesizer) embeddingThemes(ctx context.Context, paperIDs, texts []string) ([]Theme, error) {
	vectors := make([][]float32, len(texts))
	for i, text := range texts {
		v, err := s.embedder.Embed(ctx, text)
		if err != nil {
			return nil, fmt.Errorf("embedding finding %d: %w", i, err)
		}
		vectors[i] = v
	}

	labels := Cluster(vectors, ClusterThreshold)

	byLabel := make(map[int][]int)
	order := []int{}
	for i, label := range labels {
		if _, seen := byLabel[label]; !seen {
			order = append(order, label)
		}
		byLabel[label] = append(byLabel[label], i)
	}

	var themes []Theme
	for _, label := range order {
		members := byLabel[label]
		var ids []string
		var memberTexts []string
		for _, i := range members {
			ids = append(ids, paperIDs[i])
			memberTexts = append(memberTexts, texts[i])
		}
		kws := topKeywords(memberTexts, maxKeywords)
		themes = append(themes, Theme{
			Label:    themeLabel(label, kws),
			PaperIDs: ids,
			Keywords: kws,
		})
	}
	return themes, nil
}

// keywordThemes groups papers by their single most frequent keyword.
func keywordThemes(paperIDs, texts []string) []Theme {
	byKeyword := make(map[string][]string)
	order := []string{}
	for i, text := range texts {
		kws := topKeywords([]string{text}, 1)
		key := "unclassified"
		if len(kws) > 0 {
			key = kws[0]
		}
		if _, seen := byKeyword[key]; !seen {
			order = append(order, key)
		}
		byKeyword[key] = append(byKeyword[key], paperIDs[i])
	}

	var themes []Theme
	for _, key := range order {
		themes = append(themes, Theme{
			Label:    key,
			PaperIDs: byKeyword[key],
			Keywords: []string{key},
		})
	}
	return themes
}

// stopwords are excluded from keyword counting.
var stopwords = map[string]bool{
	"the": true, "and": true, "for": true, "with": true, "that": true,
	"this": true, "from": true, "were": true, "was": true, "are": true,
	"has": true, "have": true, "had": true, "not": true, "but": true,
	"between": true, "their": true, "which": true, "these": true,
	"study": true, "results": true, "found": true, "showed": true,
}

// topKeywords returns the n most frequent non-stopword terms (length > 3)
// across the texts, most frequent first.
func topKeywords(texts []string, n int) []string {
	counts := make(map[string]int)
	for _, text := range texts {
		for _, word := range strings.Fields(strings.ToLower(text)) {
			word = strings.Trim(word, ".,;:()[]\"'")
			if len(word) <= 3 || stopwords[word] {
				continue
			}
			counts[word]++
		}
	}

	words := make([]string, 0, len(counts))
	for w := range counts {
		words = append(words, w)
	}
	sort.Slice(words, func(i, j int) bool {
		if counts[words[i]] != counts[words[j]] {
			return counts[words[i]] > counts[words[j]]
		}
		return words[i] < words[j]
	})

	if len(words) > n {
		words = words[:n]
	}
	return words
}

// themeLabel builds a readable label for a cluster.
func themeLabel(n int, keywords []string) string {
	if len(keywords) > 0 {
		return strings.Join(keywords, ", ")
	}
	return fmt.Sprintf("theme %d", n+1)
}

// pairSorter sorts parallel id/text slices by id.
type pairSorter struct {
	ids   []string
	texts []string
}

func (p *pairSorter) Len() int           { return len(p.ids) }
func (p *pairSorter) Less(i, j int) bool { return p.ids[i] < p.ids[j] }
func (p *pairSorter) Swap(i, j int) {
	p.ids[i], p.ids[j] = p.ids[j], p.ids[i]
	p.texts[i], p.texts[j] = p.texts[j], p.texts[i]
}
