package export

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/dustin/go-humanize"

	"github.com/giorgiosiniscalchi/clusion-sse-benchmark/leakage"
)

// Console renders run summaries as aligned terminal tables.
type Console struct {
	w io.Writer
}

// NewConsole creates a Console writing to w.
func NewConsole(w io.Writer) *Console {
	return &Console{w: w}
}

// PrintSummary writes the per-scheme performance table.
func (c *Console) PrintSummary(results *Results) error {
	tw := tabwriter.NewWriter(c.w, 0, 4, 2, ' ', 0)

	fmt.Fprintf(c.w, "Run %s — %d scheme(s)\n\n", results.RunID, len(results.Benchmarks))
	fmt.Fprintln(tw, "SCHEME\tBUILD\tINDEX\tMEMORY\tMEAN\tP95\tP99\tQPS\tOK")

	for _, agg := range results.Benchmarks {
		fmt.Fprintf(tw, "%s\t%s ms\t%s\t%s\t%s ms\t%s ms\t%s ms\t%.1f\t%d/%d\n",
			agg.SchemeName,
			formatMs(agg.BuildTime),
			humanize.IBytes(agg.IndexSizeBytes),
			humanize.IBytes(agg.MemoryUsedBytes()),
			formatFloat(agg.Latency.MeanMs),
			formatFloat(agg.Latency.P95Ms),
			formatFloat(agg.Latency.P99Ms),
			agg.Latency.QueriesPerSecond,
			agg.SuccessfulQueries,
			agg.TotalQueries,
		)
	}

	return tw.Flush()
}

// PrintSecurity writes the leakage-analysis table.
func (c *Console) PrintSecurity(reports []*leakage.Report) error {
	if len(reports) == 0 {
		return nil
	}

	tw := tabwriter.NewWriter(c.w, 0, 4, 2, ' ', 0)

	fmt.Fprintf(c.w, "\nSecurity analysis\n\n")
	fmt.Fprintln(tw, "SCHEME\tSCORE\tRATING\tLEAKED\tPROTECTED")

	for _, rep := range reports {
		fmt.Fprintf(tw, "%s\t%d\t%s\t%d\t%d\n",
			rep.SchemeName, rep.Score, rep.Rating,
			rep.LeakedCount(), rep.ProtectedCount())
	}

	if err := tw.Flush(); err != nil {
		return err
	}

	for _, rep := range reports {
		vectors := rep.AttackVectors()
		if len(vectors) == 0 {
			continue
		}
		fmt.Fprintf(c.w, "\n%s:\n", rep.SchemeName)
		for _, v := range vectors {
			fmt.Fprintf(c.w, "  - %s\n", v)
		}
	}

	return nil
}
