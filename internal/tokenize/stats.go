package tokenize

import "sort"

// TopTermCount is the number of most frequent terms reported in Stats.
const TopTermCount = 20

// Stats summarizes the tokenization work done by a Tokenizer so far.
type Stats struct {
	TotalRawTokens     int // token occurrences before normalization
	TotalTermTokens    int // term occurrences after normalization
	DistinctRawTokens  int // distinct tokens before normalization
	DistinctTerms      int // distinct terms after normalization
	TopRawTokens       []string
	TopNormalizedTerms []string
}

// Stats returns corpus frequency statistics accumulated across all
// documents processed by this Tokenizer. Top-term lists hold at most
// TopTermCount entries, most frequent first.
func (t *Tokenizer) Stats() Stats {
	return Stats{
		TotalRawTokens:     t.totalRawTokens,
		TotalTermTokens:    t.totalTermTokens,
		DistinctRawTokens:  len(t.unnormalized),
		DistinctTerms:      len(t.normalized),
		TopRawTokens:       topTerms(t.unnormalized, TopTermCount),
		TopNormalizedTerms: topTerms(t.normalized, TopTermCount),
	}
}

// topTerms returns up to n keys of freqs ordered by descending frequency,
// with ties broken lexicographically for determinism.
func topTerms(freqs map[string]int, n int) []string {
	terms := make([]string, 0, len(freqs))
	for term := range freqs {
		terms = append(terms, term)
	}
	sort.Slice(terms, func(i, j int) bool {
		if freqs[terms[i]] != freqs[terms[j]] {
			return freqs[terms[i]] > freqs[terms[j]]
		}
		return terms[i] < terms[j]
	})

	if len(terms) > n {
		terms = terms[:n]
	}
	return terms
}
