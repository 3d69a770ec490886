package app

import (
	"fmt"
	"strings"

	"github.com/chriscorrea/topical/internal/metrics"
	"github.com/chriscorrea/topical/internal/sample"
	"github.com/chriscorrea/topical/internal/tokenize"
)

// writeMetricsReport renders micro-averaged, macro-averaged, and per-class
// precision/recall/F1 tables for a prediction run.
func writeMetricsReport(w *strings.Builder, yTrue, yPred []sample.Label) error {
	type averaged struct {
		title string
		avg   metrics.Average
	}

	for _, section := range []averaged{
		{"Micro Averaged Stats", metrics.Micro},
		{"Macro Averaged Stats", metrics.Macro},
	} {
		precision, err := metrics.Precision(yTrue, yPred, section.avg)
		if err != nil {
			return err
		}
		recall, err := metrics.Recall(yTrue, yPred, section.avg)
		if err != nil {
			return err
		}
		fscore, err := metrics.FScore(yTrue, yPred, 1, section.avg)
		if err != nil {
			return err
		}

		fmt.Fprintf(w, "%s\n%s\n", section.title, strings.Repeat("-", len(section.title)))
		fmt.Fprintf(w, "%-12s%10.4f\n", "Precision:", precision)
		fmt.Fprintf(w, "%-12s%10.4f\n", "Recall:", recall)
		fmt.Fprintf(w, "%-12s%10.4f\n\n", "F1 score:", fscore)
	}

	perPrecision, err := metrics.PrecisionPerClass(yTrue, yPred)
	if err != nil {
		return err
	}
	perRecall, err := metrics.RecallPerClass(yTrue, yPred)
	if err != nil {
		return err
	}
	perFScore, err := metrics.FScorePerClass(yTrue, yPred, 1)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "Per-Class Stats\n---------------\n")
	writePerClassTable(w, "Precision:", perPrecision)
	writePerClassTable(w, "Recall:", perRecall)
	writePerClassTable(w, "F1-score:", perFScore)

	return nil
}

// writePerClassTable prints one metric per class in ordinal order. Classes
// with no defined value (never predicted, or never in the gold labels) are
// reported as undefined rather than zero.
func writePerClassTable(w *strings.Builder, title string, values map[sample.Label]float64) {
	fmt.Fprintln(w, title)
	for _, label := range sample.Labels() {
		value, ok := values[label]
		if !ok {
			if label == sample.Other {
				continue
			}
			fmt.Fprintf(w, "    %-12s%10s\n", label.String()+":", "undefined")
			continue
		}
		fmt.Fprintf(w, "    %-12s%10.4f\n", label.String()+":", value)
	}
	fmt.Fprintln(w)
}

// writeStatsReport renders tokenizer corpus statistics gathered during
// dataset construction.
func writeStatsReport(w *strings.Builder, stats tokenize.Stats) {
	fmt.Fprintf(w, "Corpus Statistics\n-----------------\n")
	fmt.Fprintf(w, "%-28s%12d\n", "Tokens before normalization:", stats.TotalRawTokens)
	fmt.Fprintf(w, "%-28s%12d\n", "Tokens after normalization:", stats.TotalTermTokens)
	fmt.Fprintf(w, "%-28s%12d\n", "Distinct raw tokens:", stats.DistinctRawTokens)
	fmt.Fprintf(w, "%-28s%12d\n\n", "Distinct terms:", stats.DistinctTerms)

	fmt.Fprintf(w, "Top raw tokens:   %s\n", strings.Join(stats.TopRawTokens, " "))
	fmt.Fprintf(w, "Top terms:        %s\n", strings.Join(stats.TopNormalizedTerms, " "))
}
