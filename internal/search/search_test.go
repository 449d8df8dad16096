package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mvens/tvlens/internal/models"
)

func named(names ...string) []models.Channel {
	channels := make([]models.Channel, len(names))
	for i, n := range names {
		channels[i] = models.Channel{Name: n, Group: models.Ungrouped, URL: "http://x/" + n}
	}
	return channels
}

func TestFilterEmptyQuery(t *testing.T) {
	channels := named("News1", "Sports HD")
	assert.Empty(t, Filter("", channels))
	assert.Empty(t, Filter("   ", channels))
	assert.Empty(t, Filter("\t\n", channels))
}

func TestFilterExactNameAlwaysMatches(t *testing.T) {
	channels := named("News1", "Game")
	results := Filter("news1", channels)
	require.Len(t, results, 1)
	assert.Equal(t, "News1", results[0].Name)
}

func TestFilterQueryIsTrimmedAndLowercased(t *testing.T) {
	channels := named("News1")
	results := Filter("  NEWS1  ", channels)
	require.Len(t, results, 1)
}

func TestFilterPartialMatch(t *testing.T) {
	// A query contained verbatim in a longer name scores a full
	// partial-ratio match.
	channels := named("24/7 News Channel HD", "Classic Movies")
	results := Filter("news", channels)
	require.Len(t, results, 1)
	assert.Equal(t, "24/7 News Channel HD", results[0].Name)
}

func TestFilterExcludesUnrelated(t *testing.T) {
	channels := named("News1", "Game")
	assert.Empty(t, Filter("zzzqqqxxx", channels))
}

func TestFilterPreservesSourceOrder(t *testing.T) {
	channels := named("News One", "Sports", "News Two", "News Three")
	results := Filter("news", channels)
	require.Len(t, results, 3)
	assert.Equal(t, "News One", results[0].Name)
	assert.Equal(t, "News Two", results[1].Name)
	assert.Equal(t, "News Three", results[2].Name)
}

func TestScoreEmptyName(t *testing.T) {
	assert.Equal(t, 0, Score("news", ""))
}
