package viz

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/san-kum/dynbench/internal/bench"
	"github.com/san-kum/dynbench/internal/storage"
)

func BenchmarkTable(out io.Writer, descs []bench.Descriptor) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tDIM\tLOWER\tUPPER\tKIND")
	for _, d := range descs {
		fmt.Fprintf(w, "%s\t%d\t%g\t%g\t%s\n", d.Name, d.Dim, d.Lower[0], d.Upper[0], d.Kind)
	}
	return w.Flush()
}

func RecordTable(out io.Writer, records []storage.Record) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tBENCHMARK\tSOURCE\tROWS\tBEST\tELAPSED\tTIME")
	for _, r := range records {
		best := "-"
		if idx, v := r.Best(); idx >= 0 {
			best = fmt.Sprintf("%.4f", v)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\t%v\t%s\n",
			shortID(r.ID), r.Benchmark, r.Source, r.Rows, best,
			r.Elapsed.Round(time.Millisecond), r.Timestamp.Local().Format("2006-01-02 15:04:05"))
	}
	return w.Flush()
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
