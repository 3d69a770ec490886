// Package bayes implements a Multinomial Naive Bayes classifier over
// bag-of-terms document samples.
//
// Fitting estimates class priors as label relative frequencies and term
// likelihoods p(term|class) with add-one (Laplace) smoothing over the full
// training vocabulary. Prediction scores each class in log space to avoid
// floating-point underflow and returns the maximum a posteriori class.
package bayes

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/chriscorrea/topical/internal/sample"
)

// Classifier is a Multinomial Naive Bayes classifier. The zero value is
// untrained; it becomes usable after Fit or after loading a persisted
// model with ReadModel.
type Classifier struct {
	// prior[class] = p(class), relative label frequency in training data
	prior map[sample.Label]float64
	// likelihood[term][class] = smoothed p(term|class); entries exist only
	// for (term, class) pairs observed during training
	likelihood map[string]map[sample.Label]float64
	// vocabSize is the number of distinct training terms, the denominator
	// base for smoothing and the fallback probability for unseen pairs
	vocabSize int
}

// New returns an untrained classifier.
func New() *Classifier {
	return &Classifier{
		prior:      make(map[sample.Label]float64),
		likelihood: make(map[string]map[sample.Label]float64),
	}
}

// Fit estimates priors and likelihoods from labeled training samples,
// fully replacing any previously fitted state. x and y must be parallel
// slices; a length mismatch or an empty training set is caller misuse.
func (c *Classifier) Fit(x []sample.Sample, y []sample.Label) error {
	if len(x) != len(y) {
		return fmt.Errorf("sample/label length mismatch: %d != %d", len(x), len(y))
	}
	if len(x) == 0 {
		return fmt.Errorf("empty training set")
	}
	n := float64(len(y))

	c.prior = make(map[sample.Label]float64)
	c.likelihood = make(map[string]map[sample.Label]float64)

	// class priors as relative label frequencies
	for _, label := range y {
		c.prior[label]++
	}
	for label := range c.prior {
		c.prior[label] /= n
	}

	// aggregate one mega-document per class and collect the vocabulary
	megadocs := make(map[sample.Label]sample.Sample)
	vocab := make(map[string]struct{})
	for i, smp := range x {
		label := y[i]
		mega, ok := megadocs[label]
		if !ok {
			mega = make(sample.Sample)
			megadocs[label] = mega
		}
		for term, count := range smp {
			mega[term] += count
			vocab[term] = struct{}{}
		}
	}
	c.vocabSize = len(vocab)

	// Laplace-smoothed likelihoods; smoothing is over the full training
	// vocabulary, not just the per-class vocabulary
	for label, mega := range megadocs {
		denom := float64(mega.Total() + c.vocabSize)
		for term, count := range mega {
			classProbs, ok := c.likelihood[term]
			if !ok {
				classProbs = make(map[sample.Label]float64)
				c.likelihood[term] = classProbs
			}
			classProbs[label] = (float64(count) + 1) / denom
		}
	}

	slog.Debug("Fitted classifier", "documents", len(x), "classes", len(c.prior), "vocabulary", c.vocabSize)
	return nil
}

// Predict returns the maximum a posteriori class for a single sample.
// Each class score starts at log(prior) and accumulates count*log(p(term|class))
// per term; a (term, class) pair never observed during training contributes
// log(1/|vocabulary|) so that a zero probability can never occur. Ties are
// broken toward the lowest label ordinal: classes are scanned in ordinal
// order and a later class replaces the leader only on a strictly greater
// score. An empty sample therefore yields the highest-prior class, lowest
// ordinal first on equal priors.
func (c *Classifier) Predict(x sample.Sample) (sample.Label, error) {
	if len(c.prior) == 0 {
		return sample.Other, fmt.Errorf("classifier is not fitted")
	}

	best := sample.Other
	bestScore := math.Inf(-1)
	unseen := math.Log(1 / float64(c.vocabSize))

	for _, label := range sample.Labels() {
		prior, ok := c.prior[label]
		if !ok {
			// class not present in training data
			continue
		}

		score := math.Log(prior)
		for term, count := range x {
			logProb := unseen
			if classProbs, ok := c.likelihood[term]; ok {
				if p, ok := classProbs[label]; ok {
					logProb = math.Log(p)
				}
			}
			score += float64(count) * logProb
		}

		if score > bestScore {
			best = label
			bestScore = score
		}
	}

	return best, nil
}

// PredictAll predicts every sample independently, preserving order.
func (c *Classifier) PredictAll(x []sample.Sample) ([]sample.Label, error) {
	y := make([]sample.Label, len(x))
	for i, smp := range x {
		label, err := c.Predict(smp)
		if err != nil {
			return nil, err
		}
		y[i] = label
	}
	return y, nil
}

// Prior returns the prior probability of the given class, or 0 if the
// class was not seen during training.
func (c *Classifier) Prior(label sample.Label) float64 {
	return c.prior[label]
}

// Likelihood returns the stored smoothed probability p(term|class) and
// whether the (term, class) pair was observed during training.
func (c *Classifier) Likelihood(term string, label sample.Label) (float64, bool) {
	classProbs, ok := c.likelihood[term]
	if !ok {
		return 0, false
	}
	p, ok := classProbs[label]
	return p, ok
}

// VocabSize returns the number of distinct terms seen during training.
func (c *Classifier) VocabSize() int {
	return c.vocabSize
}
