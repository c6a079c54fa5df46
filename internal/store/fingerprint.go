package store

import (
	"encoding/hex"

	"golang.org/x/crypto/blake2b"

	"github.com/reviewdb/lr/internal/doi"
	"github.com/reviewdb/lr/internal/paper"
	"github.com/reviewdb/lr/internal/similarity"
)

// Fingerprint derives a stable paper ID from its strongest identifier:
// the normalized DOI when present, otherwise the normalized title. The
// same paper imported twice gets the same ID.
func Fingerprint(meta paper.Metadata) string {
	var key string
	switch {
	case meta.DOI != "":
		key = "doi:" + doi.Normalize(meta.DOI)
	case meta.Title != "":
		key = "title:" + similarity.NormalizeTitle(meta.Title)
	default:
		key = "pdf:" + meta.PDFPath
	}

	sum := blake2b.Sum256([]byte(key))
	return hex.EncodeToString(sum[:8])
}
