// Package app contains the core application logic for the topical CLI tool.
// It wires the corpus reader, normalizer, feature selector, classifier, and
// evaluation report together, separated from CLI concerns.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"sort"
	"strings"

	"github.com/chriscorrea/topical/internal/bayes"
	"github.com/chriscorrea/topical/internal/dataset"
	"github.com/chriscorrea/topical/internal/extract"
	"github.com/chriscorrea/topical/internal/feature"
	"github.com/chriscorrea/topical/internal/fetch"
	"github.com/chriscorrea/topical/internal/reuters"
	"github.com/chriscorrea/topical/internal/sample"
	"github.com/chriscorrea/topical/internal/spinner"
	"github.com/chriscorrea/topical/internal/tokenize"
)

// BuildConfig holds the options for dataset construction.
type BuildConfig struct {
	DataDir      string // directory containing Reuters .sgm files
	StopwordPath string // path to the stopword list
	TrainPath    string // output path for the training set
	TestPath     string // output path for the test set
	ShowStats    bool   // print tokenizer corpus statistics
	Quiet        bool   // suppress progress output
}

// FitConfig holds the options for training.
type FitConfig struct {
	TrainPath   string // path to the training set
	ModelPath   string // output path for the fitted model
	NumFeatures int    // top-K MI terms per class; 0 keeps all terms
	Quiet       bool
}

// PredictConfig holds the options for evaluation.
type PredictConfig struct {
	TestPath  string // path to the test set
	ModelPath string // path to an already fitted model
	Quiet     bool
}

// ClassifyConfig holds the options for ad-hoc classification.
type ClassifyConfig struct {
	Sources      []string // URLs, file paths, or "-" for stdin
	ModelPath    string
	StopwordPath string
	Quiet        bool
}

// BuildDataset parses every .sgm file under cfg.DataDir, keeps single-topic
// documents of the five target classes, normalizes them, and writes the
// train and test dataset files. It returns a short summary for the user.
//
// ctx allows for cancellation of the parsing loop.
func BuildDataset(ctx context.Context, cfg BuildConfig) (string, error) {
	stopwords, err := tokenize.LoadStopwords(cfg.StopwordPath)
	if err != nil {
		return "", err
	}
	tokenizer := tokenize.NewTokenizer(stopwords)

	files, err := reuters.ListDataFiles(cfg.DataDir)
	if err != nil {
		return "", err
	}

	var sp *spinner.Spinner
	if !cfg.Quiet {
		sp = spinner.New(ctx, os.Stderr, "Parsing corpus...")
		sp.Start()
		defer sp.Stop()
	}

	var train, test []dataset.Record
	for _, path := range files {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		if sp != nil {
			sp.UpdateMessage(fmt.Sprintf("Parsing %s...", path))
		}

		f, err := os.Open(path)
		if err != nil {
			return "", fmt.Errorf("failed to open data file: %w", err)
		}
		docs, err := reuters.ParseFile(f)
		f.Close()
		if err != nil {
			return "", fmt.Errorf("failed to parse %q: %w", path, err)
		}

		for _, doc := range docs {
			topic, ok := doc.TargetTopic()
			if !ok {
				continue
			}

			rec := dataset.Record{
				ID:    doc.ID,
				Class: topic,
				Terms: tokenizer.DocTerms(doc.Text),
			}
			switch doc.Split {
			case reuters.Train:
				train = append(train, rec)
			case reuters.Test:
				test = append(test, rec)
			}
		}

		slog.Debug("Parsed data file", "path", path, "documents", len(docs))
	}

	if err := writeRecords(cfg.TrainPath, train); err != nil {
		return "", err
	}
	if err := writeRecords(cfg.TestPath, test); err != nil {
		return "", err
	}

	var report strings.Builder
	fmt.Fprintf(&report, "%d documents indexed into the train dataset at %s\n", len(train), cfg.TrainPath)
	fmt.Fprintf(&report, "%d documents indexed into the test dataset at %s\n", len(test), cfg.TestPath)
	if cfg.ShowStats {
		report.WriteString("\n")
		writeStatsReport(&report, tokenizer.Stats())
	}

	return report.String(), nil
}

// Fit trains a Naive Bayes classifier from a dataset file and saves the
// model. When cfg.NumFeatures is positive, training samples are first
// pruned to the top-K mutual-information terms of their gold class.
func Fit(ctx context.Context, cfg FitConfig) (string, error) {
	records, err := readRecords(cfg.TrainPath)
	if err != nil {
		return "", err
	}

	x := make([]sample.Sample, len(records))
	y := make([]sample.Label, len(records))
	classSet := make(map[sample.Label]struct{})
	for i, rec := range records {
		x[i] = rec.Terms
		y[i] = rec.Class
		classSet[rec.Class] = struct{}{}
	}

	var sp *spinner.Spinner
	if !cfg.Quiet {
		sp = spinner.New(ctx, os.Stderr, "Training classifier...")
		sp.Start()
		defer sp.Stop()
	}

	var report strings.Builder
	if cfg.NumFeatures > 0 {
		// classes in ordinal order for a deterministic report
		var classes []sample.Label
		for _, label := range sample.Labels() {
			if _, ok := classSet[label]; ok {
				classes = append(classes, label)
			}
		}

		top, err := feature.TopTermsPerClass(x, y, classes, cfg.NumFeatures)
		if err != nil {
			return "", err
		}
		writeTopTermsReport(&report, classes, top)

		x, err = feature.Prune(x, y, top)
		if err != nil {
			return "", err
		}
	}

	clf := bayes.New()
	if err := clf.Fit(x, y); err != nil {
		return "", err
	}

	f, err := os.Create(cfg.ModelPath)
	if err != nil {
		return "", fmt.Errorf("failed to create model file: %w", err)
	}
	defer f.Close()
	if err := clf.WriteModel(f); err != nil {
		return "", err
	}

	fmt.Fprintf(&report, "Fitted %d documents (vocabulary %d); model saved to %s\n",
		len(records), clf.VocabSize(), cfg.ModelPath)
	return report.String(), nil
}

// Predict loads a fitted model, classifies every document in the test set,
// and returns the per-document predictions followed by the evaluation
// report.
func Predict(ctx context.Context, cfg PredictConfig) (string, error) {
	mf, err := os.Open(cfg.ModelPath)
	if err != nil {
		return "", fmt.Errorf("failed to open model file: %w", err)
	}
	clf, err := bayes.ReadModel(mf)
	mf.Close()
	if err != nil {
		return "", err
	}

	records, err := readRecords(cfg.TestPath)
	if err != nil {
		return "", err
	}

	var sp *spinner.Spinner
	if !cfg.Quiet {
		sp = spinner.New(ctx, os.Stderr, "Classifying test set...")
		sp.Start()
		defer sp.Stop()
	}

	x := make([]sample.Sample, len(records))
	yTrue := make([]sample.Label, len(records))
	for i, rec := range records {
		x[i] = rec.Terms
		yTrue[i] = rec.Class
	}

	yPred, err := clf.PredictAll(x)
	if err != nil {
		return "", err
	}

	var report strings.Builder
	for i, rec := range records {
		fmt.Fprintf(&report, "ID: %5d | Test: %10s | Pred: %10s\n", rec.ID, yTrue[i], yPred[i])
	}
	report.WriteString("\n")
	if err := writeMetricsReport(&report, yTrue, yPred); err != nil {
		return "", err
	}

	return report.String(), nil
}

// Classify fetches each source, extracts its readable article text, and
// predicts its topic with a saved model. Sources that fail are reported as
// warnings and skipped so one bad URL does not sink a batch.
func Classify(ctx context.Context, cfg ClassifyConfig) (string, error) {
	if len(cfg.Sources) == 0 {
		return "", fmt.Errorf("no sources provided")
	}

	stopwords, err := tokenize.LoadStopwords(cfg.StopwordPath)
	if err != nil {
		return "", err
	}
	tokenizer := tokenize.NewTokenizer(stopwords)

	mf, err := os.Open(cfg.ModelPath)
	if err != nil {
		return "", fmt.Errorf("failed to open model file: %w", err)
	}
	clf, err := bayes.ReadModel(mf)
	mf.Close()
	if err != nil {
		return "", err
	}

	var report strings.Builder
	classified := 0
	for _, source := range cfg.Sources {
		label, err := classifySource(ctx, source, tokenizer, clf)
		if err != nil {
			if !cfg.Quiet {
				fmt.Fprintf(os.Stderr, "Warning: failed to classify source %q: %v\n", source, err)
			}
			continue
		}
		fmt.Fprintf(&report, "%s: %s\n", source, label)
		classified++
	}

	if classified == 0 {
		return "", fmt.Errorf("no sources classified")
	}
	return report.String(), nil
}

// classifySource runs the fetch -> extract -> normalize -> predict pipeline
// for a single source.
func classifySource(ctx context.Context, source string, tokenizer *tokenize.Tokenizer, clf *bayes.Classifier) (sample.Label, error) {
	reader, err := fetch.GetContent(ctx, source)
	if err != nil {
		return sample.Other, fmt.Errorf("failed to fetch content: %w", err)
	}
	defer reader.Close()

	var baseURL *url.URL
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		baseURL, _ = url.Parse(source) // ignore parse errors, will use nil
	}

	text, err := extract.Text(reader, baseURL)
	if err != nil {
		return sample.Other, err
	}

	smp := tokenizer.DocTerms(text)
	return clf.Predict(smp)
}

// writeRecords writes a dataset file, creating or truncating it.
func writeRecords(path string, records []dataset.Record) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create dataset file: %w", err)
	}
	defer f.Close()
	return dataset.Write(f, records)
}

// readRecords reads a dataset file and checks it is non-empty.
func readRecords(path string) ([]dataset.Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset file: %w", err)
	}
	defer f.Close()

	records, err := dataset.Read(f)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("dataset %q contains no documents", path)
	}
	return records, nil
}

// writeTopTermsReport lists the selected terms per class, mirroring the
// order used during selection.
func writeTopTermsReport(w *strings.Builder, classes []sample.Label, top map[sample.Label][]string) {
	for _, class := range classes {
		terms := top[class]
		name := class.String()
		fmt.Fprintf(w, "%s\n%s\n", name, strings.Repeat("-", len(name)))

		sorted := make([]string, len(terms))
		copy(sorted, terms)
		sort.Strings(sorted)
		for _, term := range sorted {
			fmt.Fprintln(w, term)
		}
		fmt.Fprintln(w)
	}
}
