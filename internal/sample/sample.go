// Package sample defines the document representation used throughout topical.
//
// A document is reduced to a bag of normalized terms: an unordered mapping
// from each term to the number of times it occurs. The package also defines
// the closed set of Reuters topic labels that documents are classified into.
package sample

// Sample is the bag-of-terms representation of one document. Keys are
// normalized terms and values are positive occurrence counts; a term that
// is absent has an implicit count of zero.
type Sample map[string]int

// New builds a Sample by counting occurrences of each term in the given
// slice. Empty terms are skipped; term order is irrelevant.
func New(terms []string) Sample {
	s := make(Sample, len(terms))
	for _, term := range terms {
		if term == "" {
			continue
		}
		s[term]++
	}
	return s
}

// Add increments the count of the given term by n.
func (s Sample) Add(term string, n int) {
	if term == "" || n <= 0 {
		return
	}
	s[term] += n
}

// Count returns the number of times term occurs in the document,
// or 0 if the term is absent.
func (s Sample) Count(term string) int {
	return s[term]
}

// Total returns the total number of term occurrences in the document.
func (s Sample) Total() int {
	total := 0
	for _, count := range s {
		total += count
	}
	return total
}

// Clone returns an independent copy of the sample.
func (s Sample) Clone() Sample {
	dup := make(Sample, len(s))
	for term, count := range s {
		dup[term] = count
	}
	return dup
}
