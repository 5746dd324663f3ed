// ssebench benchmarks searchable symmetric encryption schemes over a
// document collection and writes performance and leakage reports.
//
// Typical usage:
//
//	ssebench --dataset dataset.json --schemes Linear,IEX-2Lev --iterations 10
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/klauspost/compress/zstd"
	"github.com/spf13/pflag"

	ssebench "github.com/giorgiosiniscalchi/clusion-sse-benchmark"
	"github.com/giorgiosiniscalchi/clusion-sse-benchmark/benchmark"
	"github.com/giorgiosiniscalchi/clusion-sse-benchmark/dataset"
	"github.com/giorgiosiniscalchi/clusion-sse-benchmark/export"
	"github.com/giorgiosiniscalchi/clusion-sse-benchmark/scheme"
)

const version = "1.0.0"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	flagSet := pflag.NewFlagSet("ssebench", pflag.ContinueOnError)

	configPath := flagSet.String("config", "", "YAML configuration file")
	datasetPath := flagSet.String("dataset", "", "JSON dataset file (documents with id and keywords)")
	indexPath := flagSet.String("index", "", "pre-built keyword index JSON file")
	textDir := flagSet.String("text-dir", "", "directory of .txt documents to index")
	queriesPath := flagSet.String("queries", "", "JSON query workload file (default: generated)")
	output := flagSet.String("output", "", "output directory for result artifacts")
	schemes := flagSet.StringSlice("schemes", nil, "scheme variants to benchmark (default: all)")
	warmup := flagSet.Int("warmup", -1, "warmup iterations per scheme")
	iterations := flagSet.Int("iterations", -1, "measurement iterations per scheme")
	seed := flagSet.Int64("seed", -1, "query generation seed")
	security := flagSet.Bool("security", true, "run leakage analysis")
	compress := flagSet.Bool("compress", false, "zstd-compress JSON artifacts")
	verbose := flagSet.BoolP("verbose", "v", false, "debug logging")
	quiet := flagSet.BoolP("quiet", "q", false, "errors only")
	showVersion := flagSet.Bool("version", false, "print version and exit")

	if err := flagSet.Parse(os.Args[1:]); err != nil {
		if err == pflag.ErrHelp {
			return nil
		}
		return err
	}

	if *showVersion {
		fmt.Printf("ssebench %s\n", version)
		return nil
	}

	cfg := defaultConfig()
	if *configPath != "" {
		var err error
		if cfg, err = loadConfig(*configPath); err != nil {
			return err
		}
	}

	// Flags the user actually set override the config file.
	applyFlag := map[string]func(){
		"dataset":    func() { cfg.Dataset = *datasetPath },
		"index":      func() { cfg.KeywordIndex = *indexPath },
		"text-dir":   func() { cfg.TextDir = *textDir },
		"queries":    func() { cfg.Queries = *queriesPath },
		"output":     func() { cfg.Output = *output },
		"schemes":    func() { cfg.Schemes = *schemes },
		"warmup":     func() { cfg.Warmup = *warmup },
		"iterations": func() { cfg.Iterations = *iterations },
		"seed":       func() { cfg.Seed = *seed },
		"security":   func() { cfg.Security = *security },
		"compress":   func() { cfg.Compress = *compress },
	}
	flagSet.Visit(func(f *pflag.Flag) {
		if apply, ok := applyFlag[f.Name]; ok {
			apply()
		}
	})

	if err := cfg.validate(); err != nil {
		return err
	}

	level := slog.LevelInfo
	switch {
	case *verbose:
		level = slog.LevelDebug
	case *quiet:
		level = slog.LevelError
	}
	logger := ssebench.NewTextLogger(level)

	ki, err := loadIndex(cfg)
	if err != nil {
		return err
	}

	stats := dataset.Stats(ki)
	logger.Info("dataset loaded",
		"documents", stats.DocumentCount,
		"keywords", stats.KeywordCount,
		"avgDocsPerKeyword", fmt.Sprintf("%.1f", stats.AvgDocsPerKeyword),
	)

	runID := uuid.NewString()

	suiteOpts := []ssebench.Option{
		ssebench.WithLogger(logger),
		ssebench.WithRunID(runID),
		ssebench.WithWarmupIterations(cfg.Warmup),
		ssebench.WithMeasurementIterations(cfg.Iterations),
		ssebench.WithSeed(cfg.Seed),
		ssebench.WithQueryMix(cfg.QueryMix.Single, cfg.QueryMix.And, cfg.QueryMix.Or),
		ssebench.WithSecurityAnalysis(cfg.Security),
	}
	if len(cfg.Schemes) > 0 {
		suiteOpts = append(suiteOpts, ssebench.WithSchemes(cfg.Schemes...))
	}
	if cfg.Queries != "" {
		queries, err := benchmark.LoadQueries(cfg.Queries)
		if err != nil {
			return err
		}
		suiteOpts = append(suiteOpts, ssebench.WithQueries(queries))
	}

	suite, err := ssebench.New(ki, suiteOpts...)
	if err != nil {
		return err
	}
	if skipped := suite.Skipped(); len(skipped) > 0 {
		logger.Warn("skipped unknown schemes",
			"skipped", strings.Join(skipped, ","),
			"known", strings.Join(scheme.VariantNames(), ","),
		)
	}

	results, err := suite.Run()
	if err != nil {
		return err
	}

	console := export.NewConsole(os.Stdout)
	if err := console.PrintSummary(results); err != nil {
		return err
	}
	if cfg.Security {
		if err := console.PrintSecurity(results.Security); err != nil {
			return err
		}
	}

	var exportOpts []export.ExporterOption
	if cfg.Compress {
		exportOpts = append(exportOpts, export.WithCompression(zstd.SpeedDefault))
	}
	exporter, err := export.NewExporter(cfg.Output, exportOpts...)
	if err != nil {
		return err
	}
	paths, err := exporter.WriteAll(results)
	if err != nil {
		return err
	}
	for _, p := range paths {
		logger.Info("wrote artifact", "path", p)
	}

	if cfg.Upload != nil {
		uploader, err := export.NewUploader(export.UploadConfig{
			Endpoint:  cfg.Upload.Endpoint,
			AccessKey: cfg.Upload.AccessKey,
			SecretKey: cfg.Upload.SecretKey,
			Bucket:    cfg.Upload.Bucket,
			Prefix:    cfg.Upload.Prefix,
			UseSSL:    cfg.Upload.UseSSL,
		})
		if err != nil {
			return err
		}
		if err := uploader.UploadDir(context.Background(), exporter.Dir()); err != nil {
			return err
		}
		logger.Info("uploaded results", "bucket", cfg.Upload.Bucket)
	}

	return nil
}

func loadIndex(cfg config) (scheme.KeywordIndex, error) {
	switch {
	case cfg.Dataset != "":
		return dataset.Load(cfg.Dataset)
	case cfg.KeywordIndex != "":
		return dataset.LoadKeywordIndex(cfg.KeywordIndex)
	default:
		return dataset.LoadTextDirectory(cfg.TextDir, nil)
	}
}
