package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const (
	cyan   = lipgloss.Color("#00ffff")
	blue   = lipgloss.Color("#00ccff")
	grey   = lipgloss.Color("#888899")
	dim    = lipgloss.Color("#666688")
	green  = lipgloss.Color("#00ff88")
	yellow = lipgloss.Color("#ffcc00")
	red    = lipgloss.Color("#ff4444")
)

var (
	Title  = lipgloss.NewStyle().Bold(true).Foreground(cyan)
	Subtle = lipgloss.NewStyle().Foreground(dim)
	Value  = lipgloss.NewStyle().Bold(true).Foreground(blue)
	Label  = lipgloss.NewStyle().Foreground(grey)
	Bad    = lipgloss.NewStyle().Bold(true).Foreground(red)
)

var (
	blocks = []rune("▁▂▃▄▅▆▇█")
	// low to high thirds of the normalised range
	sparkTiers = [3]lipgloss.Style{
		lipgloss.NewStyle().Foreground(red),
		lipgloss.NewStyle().Foreground(yellow),
		lipgloss.NewStyle().Foreground(green),
	}
)

// KV renders "label: value" with the label muted.
func KV(label, value string) string {
	return Label.Render(label+":") + " " + Value.Render(value)
}

// Sparkline renders values as block characters, sampled down to width.
func Sparkline(values []float64, width int) string {
	if len(values) == 0 || width <= 0 {
		return strings.Repeat("─", max(width, 0))
	}

	lo, hi := values[0], values[0]
	for _, v := range values[1:] {
		lo, hi = min(lo, v), max(hi, v)
	}
	span := hi - lo
	if span == 0 {
		span = 1
	}
	stride := max(len(values)/width, 1)

	var b strings.Builder
	for i := 0; i < width && i*stride < len(values); i++ {
		norm := (values[i*stride] - lo) / span
		idx := max(0, min(int(norm*float64(len(blocks)-1)), len(blocks)-1))
		tier := 0
		if norm > 0.7 {
			tier = 2
		} else if norm > 0.3 {
			tier = 1
		}
		b.WriteString(sparkTiers[tier].Render(string(blocks[idx])))
	}
	return b.String()
}
