package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/chriscorrea/topical/internal/app"

	"github.com/spf13/cobra"
)

// setupLogger configures the default slog logger based on debug mode
func setupLogger(debug bool) {
	var level slog.Level
	if debug {
		level = slog.LevelDebug
	} else {
		level = slog.LevelError
	}

	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	slog.SetDefault(slog.New(handler))
}

// runContext prepares logging and a signal-aware context for a subcommand.
func runContext(cmd *cobra.Command) (context.Context, context.CancelFunc, bool) {
	quiet, _ := cmd.Flags().GetBool("quiet")
	debug, _ := cmd.Flags().GetBool("debug")
	setupLogger(debug)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	return ctx, stop, quiet
}

var rootCmd = &cobra.Command{
	Use:   "topical",
	Short: "A news topic classifier for the Reuters-21578 corpus",
	Long: `Topical builds term datasets from the Reuters-21578 corpus, trains a
Multinomial Naive Bayes topic classifier, and evaluates or applies it.

Examples:
  topical build --data-dir Dataset
  topical fit --num-features 50
  topical predict
  topical classify --model model.txt https://example.com/article`,
}

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Construct train/test datasets from Reuters .sgm files",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop, quiet := runContext(cmd)
		defer stop()

		dataDir, _ := cmd.Flags().GetString("data-dir")
		stopwords, _ := cmd.Flags().GetString("stopwords")
		trainPath, _ := cmd.Flags().GetString("train")
		testPath, _ := cmd.Flags().GetString("test")
		stats, _ := cmd.Flags().GetBool("stats")

		result, err := app.BuildDataset(ctx, app.BuildConfig{
			DataDir:      dataDir,
			StopwordPath: stopwords,
			TrainPath:    trainPath,
			TestPath:     testPath,
			ShowStats:    stats,
			Quiet:        quiet,
		})
		if err != nil {
			return fmt.Errorf("build failed: %w", err)
		}

		fmt.Print(result)
		return nil
	},
}

var fitCmd = &cobra.Command{
	Use:   "fit",
	Short: "Fit a Naive Bayes classifier from a training set",
	Long: `Fit a Naive Bayes classifier from a training set and save the model.

With --num-features N, the best N terms per class are chosen using
Mutual Information and all other terms are discarded before training.
If not given, all terms are used as features.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop, quiet := runContext(cmd)
		defer stop()

		trainPath, _ := cmd.Flags().GetString("train")
		modelPath, _ := cmd.Flags().GetString("model")
		numFeatures, _ := cmd.Flags().GetInt("num-features")

		result, err := app.Fit(ctx, app.FitConfig{
			TrainPath:   trainPath,
			ModelPath:   modelPath,
			NumFeatures: numFeatures,
			Quiet:       quiet,
		})
		if err != nil {
			return fmt.Errorf("fit failed: %w", err)
		}

		fmt.Print(result)
		return nil
	},
}

var predictCmd = &cobra.Command{
	Use:   "predict",
	Short: "Predict the classes of a test set using a fitted model",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop, quiet := runContext(cmd)
		defer stop()

		testPath, _ := cmd.Flags().GetString("test")
		modelPath, _ := cmd.Flags().GetString("model")

		result, err := app.Predict(ctx, app.PredictConfig{
			TestPath:  testPath,
			ModelPath: modelPath,
			Quiet:     quiet,
		})
		if err != nil {
			return fmt.Errorf("predict failed: %w", err)
		}

		fmt.Print(result)
		return nil
	},
}

var classifyCmd = &cobra.Command{
	Use:   "classify [sources...]",
	Short: "Classify ad-hoc news articles with a fitted model",
	Long: `Classify ad-hoc news articles with a fitted model. Sources may be
URLs, local files, or "-" for standard input; HTML pages are reduced to
their readable article text before classification.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop, quiet := runContext(cmd)
		defer stop()

		modelPath, _ := cmd.Flags().GetString("model")
		stopwords, _ := cmd.Flags().GetString("stopwords")

		sources := args
		if len(sources) == 0 {
			sources = []string{"-"}
		}

		result, err := app.Classify(ctx, app.ClassifyConfig{
			Sources:      sources,
			ModelPath:    modelPath,
			StopwordPath: stopwords,
			Quiet:        quiet,
		})
		if err != nil {
			return fmt.Errorf("classify failed: %w", err)
		}

		fmt.Print(result)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "Suppress progress and warning messages")
	rootCmd.PersistentFlags().BoolP("debug", "D", false, "Enable debug logging")
	_ = rootCmd.PersistentFlags().MarkHidden("debug")

	buildCmd.Flags().String("data-dir", "Dataset", "Directory containing Reuters .sgm files")
	buildCmd.Flags().String("stopwords", "stopwords.txt", "Path to the stopword list")
	buildCmd.Flags().String("train", "train.txt", "Output path for the training set")
	buildCmd.Flags().String("test", "test.txt", "Output path for the test set")
	buildCmd.Flags().Bool("stats", false, "Print corpus statistics after construction")

	fitCmd.Flags().String("train", "train.txt", "Path to the training set")
	fitCmd.Flags().String("model", "model.txt", "Output path for the fitted model")
	fitCmd.Flags().IntP("num-features", "n", 0, "Number of features per class chosen by Mutual Information (0 = all)")

	predictCmd.Flags().String("test", "test.txt", "Path to the test set")
	predictCmd.Flags().String("model", "model.txt", "Path to an already fitted model")

	classifyCmd.Flags().String("model", "model.txt", "Path to an already fitted model")
	classifyCmd.Flags().String("stopwords", "stopwords.txt", "Path to the stopword list")

	rootCmd.AddCommand(buildCmd, fitCmd, predictCmd, classifyCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
