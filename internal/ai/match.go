package ai

import (
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/kent242/moneychat/internal/domain"
)

// maxCategoryDistance is how far a model-returned category name may
// drift from a taxonomy name and still be accepted.
const maxCategoryDistance = 2

// ResolveCategory maps a model-returned category name onto the known
// taxonomy. Exact matches win (case-insensitive); otherwise the closest
// name within a small edit distance is taken, so "Food & Dinning" still
// lands on "Food & Dining". Anything further off resolves to "Other".
func ResolveCategory(name string, known []string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return domain.CategoryOther
	}

	for _, k := range known {
		if strings.EqualFold(name, k) {
			return k
		}
	}

	best := ""
	bestDist := maxCategoryDistance + 1
	lower := strings.ToLower(name)
	for _, k := range known {
		d := levenshtein.ComputeDistance(lower, strings.ToLower(k))
		if d < bestDist {
			best, bestDist = k, d
		}
	}
	if best != "" {
		return best
	}
	return domain.CategoryOther
}
