// Package search filters channels by fuzzy name matching.
package search

import (
	"strings"

	fuzzy "github.com/paul-mannino/go-fuzzywuzzy"

	"github.com/mvens/tvlens/internal/models"
)

// Threshold is the minimum partial-ratio score (exclusive) for a channel
// to count as a match, on the 0-100 scale.
const Threshold = 80

// Filter returns the channels whose name scores above Threshold against
// query using partial-ratio matching (best alignment of the shorter string
// within the longer one). The query is trimmed and lowercased; an empty
// query yields no results. Result order follows the input order.
func Filter(query string, channels []models.Channel) []models.Channel {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return nil
	}

	var results []models.Channel
	for _, ch := range channels {
		if Score(query, ch.Name) > Threshold {
			results = append(results, ch)
		}
	}
	return results
}

// Score computes the partial-ratio similarity between query and name.
// The name is lowercased; the query is assumed to be lowercased already.
func Score(query, name string) int {
	name = strings.ToLower(name)
	if name == "" {
		return 0
	}
	return fuzzy.PartialRatio(query, name)
}
