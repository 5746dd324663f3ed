// Package export writes benchmark results to disk in machine-readable
// (JSON, CSV) and human-readable (Markdown, console) forms, with
// optional zstd compression of JSON artifacts and optional upload of
// the results directory to S3-compatible object storage.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/klauspost/compress/zstd"

	"github.com/giorgiosiniscalchi/clusion-sse-benchmark/benchmark"
	"github.com/giorgiosiniscalchi/clusion-sse-benchmark/leakage"
)

// Results bundles everything a benchmark run produces.
type Results struct {
	RunID      string                `json:"runId"`
	Timestamp  time.Time             `json:"timestamp"`
	Benchmarks []benchmark.Aggregate `json:"benchmarks"`
	Security   []*leakage.Report     `json:"security,omitempty"`
}

// Exporter writes result artifacts into a target directory.
type Exporter struct {
	dir      string
	compress bool
	level    zstd.EncoderLevel
}

// ExporterOption configures an Exporter.
type ExporterOption func(*Exporter)

// WithCompression enables zstd compression of JSON artifacts. The
// written files carry a .zst suffix.
func WithCompression(level zstd.EncoderLevel) ExporterOption {
	return func(e *Exporter) {
		e.compress = true
		e.level = level
	}
}

// NewExporter creates an Exporter rooted at dir, creating the
// directory if needed.
func NewExporter(dir string, optFns ...ExporterOption) (*Exporter, error) {
	e := &Exporter{dir: dir, level: zstd.SpeedDefault}
	for _, fn := range optFns {
		fn(e)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("export: create dir %s: %w", dir, err)
	}
	return e, nil
}

// Dir returns the directory artifacts are written into.
func (e *Exporter) Dir() string { return e.dir }

// WriteAll writes every artifact format and returns the paths written.
func (e *Exporter) WriteAll(results *Results) ([]string, error) {
	var paths []string
	for _, write := range []func(*Results) (string, error){
		e.WriteJSON,
		e.WriteCSV,
		e.WriteMarkdown,
	} {
		path, err := write(results)
		if err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// WriteJSON writes the full results, including per-query records, as
// indented JSON. With compression enabled the payload is zstd-framed.
func (e *Exporter) WriteJSON(results *Results) (string, error) {
	data, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return "", fmt.Errorf("export: marshal results: %w", err)
	}

	name := "results.json"
	if e.compress {
		name += ".zst"
		enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(e.level))
		if err != nil {
			return "", fmt.Errorf("export: create compressor: %w", err)
		}
		data = enc.EncodeAll(data, nil)
		_ = enc.Close()
	}

	path := filepath.Join(e.dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("export: write %s: %w", path, err)
	}
	return path, nil
}

// csvHeader is the column order of the per-scheme summary CSV.
var csvHeader = []string{
	"scheme", "setup_ms", "build_ms", "index_bytes", "memory_bytes",
	"keywords", "documents", "queries", "failed",
	"mean_ms", "p50_ms", "p95_ms", "p99_ms", "qps",
}

// WriteCSV writes one summary row per scheme.
func (e *Exporter) WriteCSV(results *Results) (string, error) {
	path := filepath.Join(e.dir, "summary.csv")
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("export: create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(csvHeader); err != nil {
		return "", fmt.Errorf("export: write csv header: %w", err)
	}

	for _, agg := range results.Benchmarks {
		row := []string{
			agg.SchemeName,
			formatMs(agg.SetupTime),
			formatMs(agg.BuildTime),
			strconv.FormatUint(agg.IndexSizeBytes, 10),
			strconv.FormatUint(agg.MemoryUsedBytes(), 10),
			strconv.Itoa(agg.KeywordCount),
			strconv.Itoa(agg.DocumentCount),
			strconv.Itoa(agg.TotalQueries),
			strconv.Itoa(agg.FailedQueries),
			formatFloat(agg.Latency.MeanMs),
			formatFloat(agg.Latency.P50Ms),
			formatFloat(agg.Latency.P95Ms),
			formatFloat(agg.Latency.P99Ms),
			formatFloat(agg.Latency.QueriesPerSecond),
		}
		if err := w.Write(row); err != nil {
			return "", fmt.Errorf("export: write csv row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("export: flush csv: %w", err)
	}
	return path, nil
}

// WriteMarkdown writes a comparison report with a performance table
// and, when security analysis ran, a leakage table.
func (e *Exporter) WriteMarkdown(results *Results) (string, error) {
	var b strings.Builder

	fmt.Fprintf(&b, "# SSE Benchmark Report\n\n")
	fmt.Fprintf(&b, "Run `%s` at %s.\n\n", results.RunID, results.Timestamp.Format(time.RFC3339))

	b.WriteString("## Performance\n\n")
	b.WriteString("| Scheme | Build | Index Size | Mean | P95 | P99 | QPS | Failed |\n")
	b.WriteString("|---|---|---|---|---|---|---|---|\n")
	for _, agg := range results.Benchmarks {
		fmt.Fprintf(&b, "| %s | %s ms | %d B | %s ms | %s ms | %s ms | %s | %d/%d |\n",
			agg.SchemeName,
			formatMs(agg.BuildTime),
			agg.IndexSizeBytes,
			formatFloat(agg.Latency.MeanMs),
			formatFloat(agg.Latency.P95Ms),
			formatFloat(agg.Latency.P99Ms),
			formatFloat(agg.Latency.QueriesPerSecond),
			agg.FailedQueries,
			agg.TotalQueries,
		)
	}

	if len(results.Security) > 0 {
		b.WriteString("\n## Security\n\n")
		b.WriteString("| Scheme | Score | Rating | Leaked | Protected |\n")
		b.WriteString("|---|---|---|---|---|\n")
		for _, rep := range results.Security {
			fmt.Fprintf(&b, "| %s | %d | %s | %d | %d |\n",
				rep.SchemeName, rep.Score, rep.Rating,
				rep.LeakedCount(), rep.ProtectedCount())
		}
	}

	path := filepath.Join(e.dir, "report.md")
	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return "", fmt.Errorf("export: write %s: %w", path, err)
	}
	return path, nil
}

func formatMs(d time.Duration) string {
	return formatFloat(float64(d) / float64(time.Millisecond))
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', 3, 64)
}
