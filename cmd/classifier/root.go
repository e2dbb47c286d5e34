package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/trinamix-ai/documantra-saas/internal/bootstrap"
	"github.com/trinamix-ai/documantra-saas/internal/config"
	"github.com/trinamix-ai/documantra-saas/internal/core/domain"
	"github.com/trinamix-ai/documantra-saas/internal/core/ports"
	"github.com/trinamix-ai/documantra-saas/internal/observability/logging"
)

// newClassifier is swapped in tests to avoid real OCI clients.
var newClassifier = func(cfg config.Config, cls config.Classifier, out io.Writer) (ports.DocumentClassifier, error) {
	return bootstrap.NewClassifier(cfg, cls, logging.New(out, "classifier", cfg.LogLevel))
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "classifier",
		Short: "Classify the configured target document",
		Long: `Reads the classifier properties file, runs TARGET_FILE through
extraction and AI classification, and prints the final category.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			err := runClassify(cmd.Context(), configPath, cmd.OutOrStdout(), cmd.ErrOrStderr())
			if err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "error: %v\n", err)
			}
			return err
		},
	}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	defaultPath := os.Getenv("CLASSIFIER_CONFIG_PATH")
	if defaultPath == "" {
		defaultPath = config.DefaultClassifierConfigPath
	}
	cmd.Flags().StringVarP(&configPath, "config", "c", defaultPath, "path to the classifier properties file")
	return cmd
}

func runClassify(ctx context.Context, configPath string, stdout, stderr io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := config.Load()
	cls, err := config.LoadClassifier(configPath)
	if err != nil {
		return err
	}

	classifier, err := newClassifier(cfg, cls, stderr)
	if err != nil {
		return err
	}

	result, err := classifier.ClassifyFile(ctx, cls.TargetFile)
	if err != nil {
		return err
	}
	return printResult(stdout, result)
}

func printResult(w io.Writer, result domain.ClassificationResult) error {
	_, err := fmt.Fprintf(w, "Processing: %s\n\nFINAL CLASSIFICATION: %s\n", result.File, result.Label)
	return err
}
