package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
)

func newMeter() progress.Model {
	return progress.New(
		progress.WithScaledGradient("#3A7BD5", "#F5F7FA"),
		progress.WithoutPercentage(),
	)
}

// renderMeters draws one energy bar per line, labelled by line number.
func renderMeters(meters []progress.Model, energies []float64, width int) string {
	barWidth := width - 14
	if barWidth < 10 {
		barWidth = 10
	}
	var b strings.Builder
	for i, e := range energies {
		if i >= len(meters) {
			break
		}
		meters[i].Width = barWidth
		b.WriteString("  ")
		b.WriteString(meterLabelStyle.Render(fmt.Sprintf("line %d ", i+1)))
		b.WriteString(meters[i].ViewAs(e))
		b.WriteString("\n")
	}
	return b.String()
}

func renderCoupling(c float64) string {
	return fmt.Sprintf("coupling %.2f", c)
}

func spaces(n int) string {
	if n < 0 {
		n = 0
	}
	return strings.Repeat(" ", n)
}

func indentBlock(s, prefix string) string {
	lines := strings.Split(s, "\n")
	for i := range lines {
		lines[i] = prefix + lines[i]
	}
	return strings.Join(lines, "\n")
}
