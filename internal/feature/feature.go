// Package feature implements Mutual-Information feature selection for the
// Naive Bayes classifier.
//
// For each vocabulary term and a target class, mutual information measures
// how much knowing that the term occurs in a document tells us about the
// document belonging to the class. Terms with the highest MI are the most
// discriminating features; training samples can be pruned down to each
// class's top-K terms before fitting.
package feature

import (
	"container/heap"
	"fmt"
	"log/slog"
	"math"
	"sort"

	"github.com/chriscorrea/topical/internal/sample"
)

// MutualInfo computes, for every term in the vocabulary of x, the mutual
// information between the binary events "term occurs in a document" and
// "document belongs to target".
//
// The computation builds a 2x2 contingency table per term from term-to-
// document postings; the "absent" cells are derived by subtracting the
// "present" cells from the class totals, so the samples are scanned once.
// Cells with zero count contribute zero (the 0*log0 = 0 convention).
func MutualInfo(x []sample.Sample, y []sample.Label, target sample.Label) (map[string]float64, error) {
	if len(x) != len(y) {
		return nil, fmt.Errorf("sample/label length mismatch: %d != %d", len(x), len(y))
	}
	n := len(x)

	// term -> indices of documents the term occurs in
	postings := make(map[string][]int)
	for i, smp := range x {
		for term := range smp {
			postings[term] = append(postings[term], i)
		}
	}

	nTarget := 0
	for _, label := range y {
		if label == target {
			nTarget++
		}
	}

	scores := make(map[string]float64, len(postings))
	for term, docs := range postings {
		// count[ew][ec]: ew = term present, ec = document in target class
		var count [2][2]int
		for _, id := range docs {
			if y[id] == target {
				count[1][1]++
			} else {
				count[1][0]++
			}
		}
		count[0][1] = nTarget - count[1][1]
		count[0][0] = (n - nTarget) - count[1][0]

		total := float64(count[0][0] + count[0][1] + count[1][0] + count[1][1])
		mi := 0.0
		for i := 0; i < 2; i++ {
			for j := 0; j < 2; j++ {
				if count[i][j] == 0 {
					continue
				}
				rowSum := float64(count[i][0] + count[i][1])
				colSum := float64(count[0][j] + count[1][j])
				cell := float64(count[i][j])

				mi += (cell / total) * math.Log2((total*cell)/(rowSum*colSum))
			}
		}

		scores[term] = mi
	}

	return scores, nil
}

// termScore pairs a term with its mutual information score.
type termScore struct {
	term  string
	score float64
}

// scoreHeap is a max-heap of termScores, with lexicographic tie-breaking
// so that selection order is deterministic.
type scoreHeap []termScore

func (h scoreHeap) Len() int { return len(h) }
func (h scoreHeap) Less(i, j int) bool {
	if h[i].score != h[j].score {
		return h[i].score > h[j].score
	}
	return h[i].term < h[j].term
}
func (h scoreHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }
func (h *scoreHeap) Push(x any)   { *h = append(*h, x.(termScore)) }
func (h *scoreHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// TopTermsPerClass selects, for every class in classes, the k terms with the
// largest mutual information against that class. Selection uses a heap so
// only the top k elements are extracted rather than sorting the whole
// vocabulary. If k is at least the vocabulary size, all terms are returned.
// The returned term slices are sorted lexicographically.
func TopTermsPerClass(x []sample.Sample, y []sample.Label, classes []sample.Label, k int) (map[sample.Label][]string, error) {
	top := make(map[sample.Label][]string, len(classes))
	for _, class := range classes {
		scores, err := MutualInfo(x, y, class)
		if err != nil {
			return nil, err
		}

		h := make(scoreHeap, 0, len(scores))
		for term, score := range scores {
			h = append(h, termScore{term: term, score: score})
		}
		heap.Init(&h)

		take := k
		if take > h.Len() {
			take = h.Len()
		}
		selected := make([]string, 0, take)
		for i := 0; i < take; i++ {
			selected = append(selected, heap.Pop(&h).(termScore).term)
		}

		sort.Strings(selected)
		top[class] = selected

		slog.Debug("Selected top terms", "class", class.String(), "requested", k, "selected", len(selected))
	}

	return top, nil
}

// Prune returns a new slice of samples in which every document keeps only
// the terms selected for its gold class. The input samples are not
// modified. Pruning must be applied to training data before fitting, never
// to test data or to a fitted model.
func Prune(x []sample.Sample, y []sample.Label, top map[sample.Label][]string) ([]sample.Sample, error) {
	if len(x) != len(y) {
		return nil, fmt.Errorf("sample/label length mismatch: %d != %d", len(x), len(y))
	}

	// build one membership set per class
	keep := make(map[sample.Label]map[string]struct{}, len(top))
	for class, terms := range top {
		set := make(map[string]struct{}, len(terms))
		for _, term := range terms {
			set[term] = struct{}{}
		}
		keep[class] = set
	}

	pruned := make([]sample.Sample, len(x))
	for i, smp := range x {
		set, ok := keep[y[i]]
		if !ok {
			// no selection for this class, keep the document as-is
			pruned[i] = smp.Clone()
			continue
		}

		dst := make(sample.Sample)
		for term, count := range smp {
			if _, selected := set[term]; selected {
				dst[term] = count
			}
		}
		pruned[i] = dst
	}

	return pruned, nil
}
