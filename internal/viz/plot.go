package viz

import (
	"fmt"

	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/dynbench/internal/optim"
	"github.com/san-kum/dynbench/internal/storage"
)

// ProfilePlot draws the rewards of a sweep from t = -1 to t = 1.
func ProfilePlot(name string, p *optim.Profile) string {
	if p == nil || len(p.Rewards) == 0 {
		return ""
	}
	best, reward := p.Best, p.Rewards[p.Best]
	caption := fmt.Sprintf("%s reward along sweep (best t=%.2f, reward=%.3f)", name, p.T[best], reward)
	return asciigraph.Plot(p.Rewards,
		asciigraph.Height(12),
		asciigraph.Width(80),
		asciigraph.Caption(caption),
	)
}

// HistoryPlot draws the best reward of each record, oldest first. Records
// are expected newest first, as storage.Store.List returns them.
func HistoryPlot(name string, records []storage.Record) string {
	series := make([]float64, 0, len(records))
	for i := len(records) - 1; i >= 0; i-- {
		if records[i].Benchmark != name {
			continue
		}
		if idx, v := records[i].Best(); idx >= 0 {
			series = append(series, v)
		}
	}
	if len(series) < 2 {
		return ""
	}
	return asciigraph.Plot(series,
		asciigraph.Height(8),
		asciigraph.Width(60),
		asciigraph.Caption(name+" best reward per evaluation"),
	)
}
