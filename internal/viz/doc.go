// Package viz renders benchmark output for the terminal.
//
// Styles come from lipgloss; reward profiles and history are plotted with
// asciigraph:
//
//   - [ProfilePlot]: rewards along a sweep line
//   - [HistoryPlot]: best reward of each stored evaluation over time
//   - [Sparkline]: a one-line reward summary
//   - [BenchmarkTable] and [RecordTable]: aligned listings
package viz
