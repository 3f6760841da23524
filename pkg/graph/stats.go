package graph

import (
	"slices"

	"gonum.org/v1/gonum/stat"
)

// DegreeStats summarises one degree distribution.
type DegreeStats struct {
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"std_dev"`
	Median float64 `json:"median"`
	P99    float64 `json:"p99"`
	Max    int     `json:"max"`
}

// DegreeSummary holds the out- and in-degree distributions of a Graph.
type DegreeSummary struct {
	Out DegreeStats `json:"out"`
	In  DegreeStats `json:"in"`
}

// DegreeSummary computes distribution statistics over every node.
// It allocates two float64 buffers of NumNodes entries, so callers on very
// large graphs should not invoke it per request.
func (g *Graph) DegreeSummary() DegreeSummary {
	if g.numNodes == 0 {
		return DegreeSummary{}
	}

	buf := make([]float64, g.numNodes)
	for i := 0; i < g.numNodes; i++ {
		buf[i] = float64(g.offsets[i+1] - g.offsets[i])
	}
	out := summarize(buf)

	for i, d := range g.inDegree {
		buf[i] = float64(d)
	}
	in := summarize(buf)

	return DegreeSummary{Out: out, In: in}
}

// summarize sorts x in place.
func summarize(x []float64) DegreeStats {
	slices.Sort(x)

	var s DegreeStats
	if len(x) > 1 {
		s.Mean, s.StdDev = stat.MeanStdDev(x, nil)
	} else {
		s.Mean = x[0]
	}
	s.Median = stat.Quantile(0.5, stat.Empirical, x, nil)
	s.P99 = stat.Quantile(0.99, stat.Empirical, x, nil)
	s.Max = int(x[len(x)-1])
	return s
}
