package bench

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"
)

func WriteTable(w io.Writer, results []Result) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	header := []string{"Case", "Backend", "Min", "p50", "p90", "p95", "p99", "Max", "Mean", "Items", "Errors"}
	fmt.Fprintln(tw, strings.Join(header, "\t"))

	sep := make([]string, len(header))
	for i := range sep {
		sep[i] = "---"
	}
	fmt.Fprintln(tw, strings.Join(sep, "\t"))

	for _, r := range results {
		s := r.Latency
		row := []string{
			r.Case,
			r.Backend,
			fmtDuration(s.Min),
			fmtDuration(s.P50),
			fmtDuration(s.P90),
			fmtDuration(s.P95),
			fmtDuration(s.P99),
			fmtDuration(s.Max),
			fmtDuration(s.Mean),
			fmt.Sprintf("%d", r.Items),
			fmt.Sprintf("%d/%d", r.Errors, r.Errors+s.Samples),
		}
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}

	return tw.Flush()
}

func fmtDuration(d time.Duration) string {
	if d == 0 {
		return "-"
	}
	if d < time.Millisecond {
		return fmt.Sprintf("%.1fµs", float64(d.Nanoseconds())/1000)
	}
	if d < time.Second {
		return fmt.Sprintf("%.2fms", float64(d.Microseconds())/1000)
	}
	return fmt.Sprintf("%.2fs", d.Seconds())
}
