package viz

import (
	"fmt"
	"html"
	"strings"

	"github.com/san-kum/dynbench/internal/optim"
)

type point struct{ X, Y float64 }

// ProfileSVG draws a sweep profile as an SVG line chart with the best point
// marked.
func ProfileSVG(name string, p *optim.Profile, width, height int) string {
	if p == nil || len(p.Rewards) < 2 {
		return ""
	}
	points := make([]point, len(p.Rewards))
	for i, r := range p.Rewards {
		points[i] = point{X: p.T[i], Y: r}
	}
	return lineSVG(name, points, p.Best, width, height, "#00ff88")
}

func lineSVG(title string, points []point, mark, width, height int, stroke string) string {
	minX, maxX := points[0].X, points[0].X
	minY, maxY := points[0].Y, points[0].Y
	for _, p := range points {
		minX, maxX = min(minX, p.X), max(maxX, p.X)
		minY, maxY = min(minY, p.Y), max(maxY, p.Y)
	}

	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minX -= rangeX * 0.1
	minY -= rangeY * 0.1
	rangeX *= 1.2
	rangeY *= 1.2

	project := func(p point) (float64, float64) {
		x := (p.X - minX) / rangeX * float64(width)
		y := float64(height) - (p.Y-minY)/rangeY*float64(height)
		return x, y
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<text x="8" y="18" fill="#888899" font-family="monospace" font-size="12">%s</text>
<path fill="none" stroke="%s" stroke-width="1.5" d="M`,
		width, height, width, height, html.EscapeString(title), stroke)

	for i, p := range points {
		x, y := project(p)
		if i == 0 {
			fmt.Fprintf(&sb, "%.1f,%.1f", x, y)
		} else {
			fmt.Fprintf(&sb, " L%.1f,%.1f", x, y)
		}
	}
	sb.WriteString("\"/>\n")

	if mark >= 0 && mark < len(points) {
		x, y := project(points[mark])
		fmt.Fprintf(&sb, "<circle cx=\"%.1f\" cy=\"%.1f\" r=\"4\" fill=\"#ffcc00\"/>\n", x, y)
	}
	sb.WriteString("</svg>")
	return sb.String()
}
