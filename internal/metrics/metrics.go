// Package metrics computes precision, recall, and F-score over parallel
// true/predicted label sequences.
//
// Per-class metrics are returned as maps keyed by label. Precision has an
// entry only for classes that actually appear among the predictions and
// recall only for classes that appear among the true labels; a missing
// entry marks the metric as undefined for that class rather than reporting
// a silent zero. Micro averaging pools all predictions, which for
// single-label multi-class classification makes micro precision, recall,
// and F1 all equal to overall accuracy. Macro averaging takes the
// unweighted mean of the defined per-class values.
package metrics

import (
	"fmt"

	"github.com/chriscorrea/topical/internal/sample"
)

// Average selects how per-class metrics are aggregated.
type Average int

const (
	// Micro pools all predictions into one global count.
	Micro Average = iota
	// Macro averages per-class values without weighting.
	Macro
)

// String returns the string representation of the averaging mode.
func (a Average) String() string {
	switch a {
	case Micro:
		return "micro"
	case Macro:
		return "macro"
	default:
		return "unknown"
	}
}

func checkLengths(yTrue, yPred []sample.Label) error {
	if len(yTrue) != len(yPred) {
		return fmt.Errorf("label length mismatch: %d != %d", len(yTrue), len(yPred))
	}
	if len(yTrue) == 0 {
		return fmt.Errorf("empty label sequences")
	}
	return nil
}

// PrecisionPerClass returns TP_c / (predicted as c) for every class c that
// occurs in yPred. Classes never predicted have no entry.
func PrecisionPerClass(yTrue, yPred []sample.Label) (map[sample.Label]float64, error) {
	if err := checkLengths(yTrue, yPred); err != nil {
		return nil, err
	}

	truePositives := make(map[sample.Label]float64)
	predicted := make(map[sample.Label]float64)
	for i := range yTrue {
		predicted[yPred[i]]++
		if yTrue[i] == yPred[i] {
			truePositives[yPred[i]]++
		}
	}

	precision := make(map[sample.Label]float64, len(predicted))
	for label, count := range predicted {
		precision[label] = truePositives[label] / count
	}
	return precision, nil
}

// RecallPerClass returns TP_c / (true count of c) for every class c that
// occurs in yTrue.
func RecallPerClass(yTrue, yPred []sample.Label) (map[sample.Label]float64, error) {
	if err := checkLengths(yTrue, yPred); err != nil {
		return nil, err
	}

	truePositives := make(map[sample.Label]float64)
	actual := make(map[sample.Label]float64)
	for i := range yTrue {
		actual[yTrue[i]]++
		if yTrue[i] == yPred[i] {
			truePositives[yTrue[i]]++
		}
	}

	recall := make(map[sample.Label]float64, len(actual))
	for label, count := range actual {
		recall[label] = truePositives[label] / count
	}
	return recall, nil
}

// accuracy is the pooled fraction of correct predictions. For single-label
// multi-class classification this equals micro precision, micro recall,
// and micro F1.
func accuracy(yTrue, yPred []sample.Label) float64 {
	correct := 0.0
	for i := range yTrue {
		if yTrue[i] == yPred[i] {
			correct++
		}
	}
	return correct / float64(len(yTrue))
}

func mean(values map[sample.Label]float64) float64 {
	total := 0.0
	for _, v := range values {
		total += v
	}
	return total / float64(len(values))
}

// Precision computes precision aggregated with the given averaging mode.
func Precision(yTrue, yPred []sample.Label, avg Average) (float64, error) {
	if err := checkLengths(yTrue, yPred); err != nil {
		return 0, err
	}

	switch avg {
	case Micro:
		return accuracy(yTrue, yPred), nil
	case Macro:
		perClass, err := PrecisionPerClass(yTrue, yPred)
		if err != nil {
			return 0, err
		}
		return mean(perClass), nil
	default:
		return 0, fmt.Errorf("unknown averaging mode %d", avg)
	}
}

// Recall computes recall aggregated with the given averaging mode.
func Recall(yTrue, yPred []sample.Label, avg Average) (float64, error) {
	if err := checkLengths(yTrue, yPred); err != nil {
		return 0, err
	}

	switch avg {
	case Micro:
		return accuracy(yTrue, yPred), nil
	case Macro:
		perClass, err := RecallPerClass(yTrue, yPred)
		if err != nil {
			return 0, err
		}
		return mean(perClass), nil
	default:
		return 0, fmt.Errorf("unknown averaging mode %d", avg)
	}
}

// FBeta combines a precision and recall value into an F-score with the
// given beta. Beta > 1 weighs recall more heavily, beta < 1 precision.
// If both precision and recall are zero the score is zero.
func FBeta(precision, recall, beta float64) float64 {
	betaSq := beta * beta
	denom := betaSq*precision + recall
	if denom == 0 {
		return 0
	}
	return (1 + betaSq) * precision * recall / denom
}

// FScorePerClass returns the per-class F-beta score for every class that
// has both a defined precision and a defined recall.
func FScorePerClass(yTrue, yPred []sample.Label, beta float64) (map[sample.Label]float64, error) {
	precision, err := PrecisionPerClass(yTrue, yPred)
	if err != nil {
		return nil, err
	}
	recall, err := RecallPerClass(yTrue, yPred)
	if err != nil {
		return nil, err
	}

	fscores := make(map[sample.Label]float64)
	for label, p := range precision {
		r, ok := recall[label]
		if !ok {
			continue
		}
		fscores[label] = FBeta(p, r, beta)
	}
	return fscores, nil
}

// FScore computes the F-beta score aggregated with the given averaging mode.
func FScore(yTrue, yPred []sample.Label, beta float64, avg Average) (float64, error) {
	if err := checkLengths(yTrue, yPred); err != nil {
		return 0, err
	}

	switch avg {
	case Micro:
		acc := accuracy(yTrue, yPred)
		return FBeta(acc, acc, beta), nil
	case Macro:
		perClass, err := FScorePerClass(yTrue, yPred, beta)
		if err != nil {
			return 0, err
		}
		return mean(perClass), nil
	default:
		return 0, fmt.Errorf("unknown averaging mode %d", avg)
	}
}
