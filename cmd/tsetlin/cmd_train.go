package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"github.com/katalvlaran/tsetlin/clause"
	"github.com/katalvlaran/tsetlin/learner"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// trainFlags are the flags of "tsetlin train".
type trainFlags struct {
	config      string
	data        string
	test        string
	shape       []int
	epochs      int
	trace       bool
	metricsFile string
	logLevel    string
}

func newTrainCmd() *cobra.Command {
	var f trainFlags
	cmd := &cobra.Command{
		Use:   "train",
		Short: "Fit a machine on a bit file and report accuracy",
		Long: `Fits a single-output Tsetlin Machine on --data and prints the training
accuracy, the test accuracy when --test is given, and the literal frequency
over all clauses.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()
			return runTrain(ctx, cmd.OutOrStdout(), f)
		},
	}

	fl := cmd.Flags()
	fl.StringVar(&f.config, "config", "", "machine YAML config (defaults when empty)")
	fl.StringVar(&f.data, "data", "", "training bit file")
	fl.StringVar(&f.test, "test", "", "optional test bit file")
	fl.IntSliceVar(&f.shape, "shape", nil, "per-example shape, e.g. 28,28 (flat when empty)")
	fl.IntVar(&f.epochs, "epochs", 10, "training epochs")
	fl.BoolVar(&f.trace, "trace", false, "print spans to stderr")
	fl.StringVar(&f.metricsFile, "metrics-file", "", "write Prometheus text metrics here after training")
	fl.StringVar(&f.logLevel, "log-level", "info", "debug, info, warn or error")
	_ = cmd.MarkFlagRequired("data")

	return cmd
}

func runTrain(ctx context.Context, out io.Writer, f trainFlags) error {
	if f.epochs < 0 {
		return fmt.Errorf("epochs must be >= 0, got %d", f.epochs)
	}
	logger, err := newLogger(f.logLevel)
	if err != nil {
		return err
	}

	cfg, err := loadConfig(f.config)
	if err != nil {
		return err
	}
	train, err := loadBits(f.data, f.shape)
	if err != nil {
		return err
	}

	reg := prometheus.NewRegistry()
	opts := []learner.Option{
		learner.WithLogger(logger),
		learner.WithBankOptions(clause.WithMetrics(clause.NewMetrics(reg))),
	}
	if f.trace {
		exp, err := stdouttrace.New(stdouttrace.WithWriter(os.Stderr), stdouttrace.WithPrettyPrint())
		if err != nil {
			return fmt.Errorf("create exporter: %w", err)
		}
		tp := sdktrace.NewTracerProvider(sdktrace.WithBatcher(exp))
		defer func() { _ = tp.Shutdown(context.Background()) }()
		opts = append(opts, learner.WithTracerProvider(tp))
	}

	m, err := learner.New(cfg, train.Tensor.Shape, opts...)
	if err != nil {
		return err
	}
	if err := m.Fit(ctx, train.Tensor, train.Labels, f.epochs); err != nil {
		return err
	}

	acc, err := accuracy(m, train)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "train accuracy: %.4f\n", acc)

	if f.test != "" {
		test, err := loadBits(f.test, f.shape)
		if err != nil {
			return err
		}
		acc, err := accuracy(m, test)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "test accuracy: %.4f\n", acc)
	}

	freq, err := m.Bank().LiteralClauseFrequency(nil)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "literal frequency: %v\n", freq)

	if f.metricsFile != "" {
		if err := prometheus.WriteToTextfile(f.metricsFile, reg); err != nil {
			return fmt.Errorf("write metrics: %w", err)
		}
	}

	return nil
}

func accuracy(m *learner.Machine, d dataset) (float64, error) {
	pred, err := m.Predict(d.Tensor)
	if err != nil {
		return 0, err
	}
	hits := 0
	for i, p := range pred {
		if p == d.Labels[i] {
			hits++
		}
	}
	return float64(hits) / float64(len(pred)), nil
}

func loadConfig(path string) (learner.Config, error) {
	if path == "" {
		return learner.DefaultConfig(), nil
	}
	fh, err := os.Open(path)
	if err != nil {
		return learner.Config{}, err
	}
	defer fh.Close()
	return learner.LoadConfig(fh)
}

func loadBits(path string, shape []int) (dataset, error) {
	fh, err := os.Open(path)
	if err != nil {
		return dataset{}, err
	}
	defer fh.Close()

	d, err := readBits(fh, shape)
	if err != nil {
		return dataset{}, fmt.Errorf("%s: %w", path, err)
	}
	return d, nil
}

func newLogger(level string) (*slog.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.ToUpper(level))); err != nil {
		return nil, fmt.Errorf("log level %q: %w", level, err)
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})), nil
}
