// Package benchstats summarises per-operation timings collected by
// cmd/gridbench.
package benchstats

import (
	"fmt"
	"io"
	"sort"
	"text/tabwriter"
	"time"

	"gonum.org/v1/gonum/stat"
)

// Summary describes one workload run at one grid size.
type Summary struct {
	Group  string
	Size   int
	N      int
	Mean   time.Duration
	StdDev time.Duration
	P50    time.Duration
	P95    time.Duration
	Min    time.Duration
	Max    time.Duration
}

// Summarize computes a Summary from raw samples. It returns a zero-N summary
// when samples is empty.
func Summarize(group string, size int, samples []time.Duration) Summary {
	s := Summary{Group: group, Size: size, N: len(samples)}
	if len(samples) == 0 {
		return s
	}
	xs := make([]float64, len(samples))
	for i, d := range samples {
		xs[i] = float64(d)
	}
	sort.Float64s(xs)

	mean, std := stat.MeanStdDev(xs, nil)
	if len(xs) < 2 {
		std = 0
	}
	s.Mean = time.Duration(mean)
	s.StdDev = time.Duration(std)
	s.P50 = time.Duration(stat.Quantile(0.5, stat.Empirical, xs, nil))
	s.P95 = time.Duration(stat.Quantile(0.95, stat.Empirical, xs, nil))
	s.Min = time.Duration(xs[0])
	s.Max = time.Duration(xs[len(xs)-1])
	return s
}

// WriteTable renders summaries as an aligned text table.
func WriteTable(w io.Writer, rows []Summary) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "group\tsize\tn\tmean\tstddev\tp50\tp95\tmin\tmax")
	for _, r := range rows {
		fmt.Fprintf(tw, "%s\t%d\t%d\t%v\t%v\t%v\t%v\t%v\t%v\n",
			r.Group, r.Size, r.N, r.Mean, r.StdDev, r.P50, r.P95, r.Min, r.Max)
	}
	return tw.Flush()
}
