package app_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/chriscorrea/topical/internal/app"
	"github.com/chriscorrea/topical/internal/dataset"
	"github.com/chriscorrea/topical/internal/sample"
)

// writeStopwords writes a minimal stopword list and returns its path.
func writeStopwords(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "stopwords.txt")
	if err := os.WriteFile(path, []byte("a an and of the to said\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

// writeDataset serializes records to a file in dir and returns its path.
func writeDataset(t *testing.T, dir, name string, records []dataset.Record) string {
	t.Helper()
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := dataset.Write(f, records); err != nil {
		t.Fatal(err)
	}
	return path
}

const buildSGM = `<!DOCTYPE lewis SYSTEM "lewis.dtd">
<REUTERS TOPICS="YES" LEWISSPLIT="TRAIN" NEWID="1">
<TOPICS><D>earn</D></TOPICS>
<TEXT>
<TITLE>COMPANY REPORTS HIGHER PROFIT</TITLE>
<BODY>Quarterly net profit rose to 4,500,000 dlrs, the company said.
 Reuter
</BODY></TEXT>
</REUTERS>
<REUTERS TOPICS="YES" LEWISSPLIT="TEST" NEWID="2">
<TOPICS><D>crude</D></TOPICS>
<TEXT>
<TITLE>OIL PRICES RISE</TITLE>
<BODY>Crude oil prices rose two dlrs a barrel on supply fears.
 Reuter
</BODY></TEXT>
</REUTERS>
<REUTERS TOPICS="YES" LEWISSPLIT="TRAIN" NEWID="3">
<TOPICS><D>earn</D><D>acq</D></TOPICS>
<TEXT>
<TITLE>MULTI TOPIC DOCUMENT</TITLE>
<BODY>Skipped because it carries two target topics.
 Reuter
</BODY></TEXT>
</REUTERS>
`

func TestBuildDataset(t *testing.T) {
	dir := t.TempDir()
	dataDir := filepath.Join(dir, "data")
	if err := os.Mkdir(dataDir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dataDir, "reut2-000.sgm"), []byte(buildSGM), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := app.BuildConfig{
		DataDir:      dataDir,
		StopwordPath: writeStopwords(t, dir),
		TrainPath:    filepath.Join(dir, "train.txt"),
		TestPath:     filepath.Join(dir, "test.txt"),
		ShowStats:    true,
		Quiet:        true,
	}

	summary, err := app.BuildDataset(context.Background(), cfg)
	if err != nil {
		t.Fatalf("BuildDataset() failed: %v", err)
	}

	t.Run("summary counts single-topic documents", func(t *testing.T) {
		if !strings.Contains(summary, "1 documents indexed into the train dataset") {
			t.Errorf("summary = %q, expected one train document", summary)
		}
		if !strings.Contains(summary, "1 documents indexed into the test dataset") {
			t.Errorf("summary = %q, expected one test document", summary)
		}
	})

	t.Run("stats section included", func(t *testing.T) {
		if !strings.Contains(summary, "Corpus Statistics") {
			t.Errorf("summary = %q, expected corpus statistics section", summary)
		}
	})

	t.Run("datasets parse back", func(t *testing.T) {
		f, err := os.Open(cfg.TrainPath)
		if err != nil {
			t.Fatal(err)
		}
		defer f.Close()
		records, err := dataset.Read(f)
		if err != nil {
			t.Fatalf("Read() failed: %v", err)
		}
		if len(records) != 1 || records[0].ID != 1 || records[0].Class != sample.Earn {
			t.Errorf("train records = %+v, expected document 1 labeled earn", records)
		}
		if records[0].Terms.Count("profit") == 0 {
			t.Errorf("train record terms = %v, expected stemmed body terms", records[0].Terms)
		}
	})

	t.Run("missing stopword file is an error", func(t *testing.T) {
		bad := cfg
		bad.StopwordPath = filepath.Join(dir, "nope.txt")
		if _, err := app.BuildDataset(context.Background(), bad); err == nil {
			t.Error("BuildDataset() with missing stopword file should return an error")
		}
	})
}

// trainingRecords is a tiny two-class corpus whose test documents are
// unambiguous for a fitted model.
func trainingRecords() []dataset.Record {
	return []dataset.Record{
		{ID: 1, Class: sample.Earn, Terms: sample.Sample{"profit": 2, "net": 1}},
		{ID: 2, Class: sample.Earn, Terms: sample.Sample{"profit": 1, "dividend": 1}},
		{ID: 3, Class: sample.Crude, Terms: sample.Sample{"barrel": 3, "opec": 1}},
		{ID: 4, Class: sample.Crude, Terms: sample.Sample{"barrel": 1, "crude": 2}},
	}
}

func TestFitAndPredict(t *testing.T) {
	dir := t.TempDir()
	trainPath := writeDataset(t, dir, "train.txt", trainingRecords())
	testPath := writeDataset(t, dir, "test.txt", []dataset.Record{
		{ID: 10, Class: sample.Earn, Terms: sample.Sample{"profit": 1, "dividend": 1}},
		{ID: 11, Class: sample.Crude, Terms: sample.Sample{"barrel": 2}},
	})
	modelPath := filepath.Join(dir, "model.txt")

	fitReport, err := app.Fit(context.Background(), app.FitConfig{
		TrainPath: trainPath,
		ModelPath: modelPath,
		Quiet:     true,
	})
	if err != nil {
		t.Fatalf("Fit() failed: %v", err)
	}
	if !strings.Contains(fitReport, "Fitted 4 documents") {
		t.Errorf("fit report = %q, expected fitted document count", fitReport)
	}
	if _, err := os.Stat(modelPath); err != nil {
		t.Fatalf("model file not written: %v", err)
	}

	predictReport, err := app.Predict(context.Background(), app.PredictConfig{
		TestPath:  testPath,
		ModelPath: modelPath,
		Quiet:     true,
	})
	if err != nil {
		t.Fatalf("Predict() failed: %v", err)
	}

	t.Run("per-document predictions", func(t *testing.T) {
		if !strings.Contains(predictReport, "ID:    10 | Test:       earn | Pred:       earn") {
			t.Errorf("predict report missing correct earn prediction:\n%s", predictReport)
		}
		if !strings.Contains(predictReport, "ID:    11 | Test:      crude | Pred:      crude") {
			t.Errorf("predict report missing correct crude prediction:\n%s", predictReport)
		}
	})

	t.Run("metric sections", func(t *testing.T) {
		for _, section := range []string{"Micro Averaged Stats", "Macro Averaged Stats", "Per-Class Stats"} {
			if !strings.Contains(predictReport, section) {
				t.Errorf("predict report missing %q section", section)
			}
		}
		// both test documents classified correctly
		if !strings.Contains(predictReport, "Precision:      1.0000") {
			t.Errorf("predict report should show perfect micro precision:\n%s", predictReport)
		}
	})
}

func TestFitWithFeatureSelection(t *testing.T) {
	dir := t.TempDir()
	trainPath := writeDataset(t, dir, "train.txt", trainingRecords())
	modelPath := filepath.Join(dir, "model.txt")

	report, err := app.Fit(context.Background(), app.FitConfig{
		TrainPath:   trainPath,
		ModelPath:   modelPath,
		NumFeatures: 2,
		Quiet:       true,
	})
	if err != nil {
		t.Fatalf("Fit() failed: %v", err)
	}

	// the selected-terms report lists each class present in training
	if !strings.Contains(report, "earn\n----\n") {
		t.Errorf("fit report missing earn term section:\n%s", report)
	}
	if !strings.Contains(report, "crude\n-----\n") {
		t.Errorf("fit report missing crude term section:\n%s", report)
	}
}

func TestFitErrors(t *testing.T) {
	dir := t.TempDir()

	t.Run("missing dataset", func(t *testing.T) {
		_, err := app.Fit(context.Background(), app.FitConfig{
			TrainPath: filepath.Join(dir, "nope.txt"),
			ModelPath: filepath.Join(dir, "model.txt"),
			Quiet:     true,
		})
		if err == nil {
			t.Error("Fit() with missing dataset should return an error")
		}
	})

	t.Run("empty dataset", func(t *testing.T) {
		path := filepath.Join(dir, "empty.txt")
		if err := os.WriteFile(path, nil, 0o644); err != nil {
			t.Fatal(err)
		}
		_, err := app.Fit(context.Background(), app.FitConfig{
			TrainPath: path,
			ModelPath: filepath.Join(dir, "model.txt"),
			Quiet:     true,
		})
		if err == nil {
			t.Error("Fit() with empty dataset should return an error")
		}
	})
}

func TestClassify(t *testing.T) {
	dir := t.TempDir()
	stopwordPath := writeStopwords(t, dir)
	trainPath := writeDataset(t, dir, "train.txt", trainingRecords())
	modelPath := filepath.Join(dir, "model.txt")

	if _, err := app.Fit(context.Background(), app.FitConfig{
		TrainPath: trainPath,
		ModelPath: modelPath,
		Quiet:     true,
	}); err != nil {
		t.Fatalf("Fit() failed: %v", err)
	}

	articlePath := filepath.Join(dir, "article.txt")
	article := "OPEC output cuts pushed the price per barrel higher today.\n"
	if err := os.WriteFile(articlePath, []byte(article), 0o644); err != nil {
		t.Fatal(err)
	}

	t.Run("local file source", func(t *testing.T) {
		report, err := app.Classify(context.Background(), app.ClassifyConfig{
			Sources:      []string{articlePath},
			ModelPath:    modelPath,
			StopwordPath: stopwordPath,
			Quiet:        true,
		})
		if err != nil {
			t.Fatalf("Classify() failed: %v", err)
		}
		if !strings.Contains(report, "crude") {
			t.Errorf("Classify() report = %q, expected crude prediction", report)
		}
	})

	t.Run("no sources", func(t *testing.T) {
		_, err := app.Classify(context.Background(), app.ClassifyConfig{
			ModelPath:    modelPath,
			StopwordPath: stopwordPath,
			Quiet:        true,
		})
		if err == nil {
			t.Error("Classify() with no sources should return an error")
		}
	})

	t.Run("all sources failing", func(t *testing.T) {
		_, err := app.Classify(context.Background(), app.ClassifyConfig{
			Sources:      []string{filepath.Join(dir, "missing.txt")},
			ModelPath:    modelPath,
			StopwordPath: stopwordPath,
			Quiet:        true,
		})
		if err == nil {
			t.Error("Classify() with only failing sources should return an error")
		}
	})
}
