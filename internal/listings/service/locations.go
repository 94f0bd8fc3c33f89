package service

import (
	"sort"
	"strings"

	"pgstay/pkg/sanitizer"

	"github.com/schollz/closestmatch"
	"github.com/texttheater/golang-levenshtein/levenshtein"
)

const (
	minSimilarity   = 0.5
	prefixScore     = 1.0
	substringScore  = 0.9
	DefaultSuggests = 5
)

type scoredLocation struct {
	name  string
	score float64
}

// similarity is 1 minus the edit distance scaled by the longer string.
func similarity(a, b string) float64 {
	distance := levenshtein.DistanceForStrings([]rune(a), []rune(b), levenshtein.DefaultOptions)
	maxLen := len([]rune(a))
	if l := len([]rune(b)); l > maxLen {
		maxLen = l
	}
	if maxLen == 0 {
		return 1.0
	}
	return 1.0 - float64(distance)/float64(maxLen)
}

// localities splits addresses like "HSR Layout, Bangalore" into their parts,
// keyed by normalized form.
func localities(addresses []string) (keys []string, display map[string]string) {
	display = make(map[string]string)
	for _, addr := range addresses {
		for _, part := range strings.Split(addr, ",") {
			name := sanitizer.TrimAndNormalize(part)
			key := sanitizer.NormalizeSearch(name)
			if key == "" {
				continue
			}
			if _, ok := display[key]; ok {
				continue
			}
			display[key] = name
			keys = append(keys, key)
		}
	}
	return keys, display
}

// suggestLocations ranks catalog localities against a free-text query.
// Substring hits rank first, then fuzzy matches above minSimilarity.
func suggestLocations(addresses []string, query string, limit int) []string {
	q := sanitizer.NormalizeSearch(query)
	if q == "" || limit <= 0 {
		return []string{}
	}

	keys, display := localities(addresses)
	if len(keys) == 0 {
		return []string{}
	}

	seen := make(map[string]bool, len(keys))
	var ranked []scoredLocation
	consider := func(key string, score float64) {
		if key == "" || seen[key] || score < minSimilarity {
			return
		}
		seen[key] = true
		ranked = append(ranked, scoredLocation{name: display[key], score: score})
	}

	for _, key := range keys {
		switch {
		case strings.HasPrefix(key, q):
			consider(key, prefixScore)
		case strings.Contains(key, q):
			consider(key, substringScore)
		}
	}

	matcher := closestmatch.New(keys, []int{2, 3})
	for _, key := range matcher.ClosestN(q, limit) {
		consider(key, similarity(q, key))
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].score != ranked[j].score {
			return ranked[i].score > ranked[j].score
		}
		return ranked[i].name < ranked[j].name
	})

	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	result := make([]string, 0, len(ranked))
	for _, r := range ranked {
		result = append(result, r.name)
	}
	return result
}
