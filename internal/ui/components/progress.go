package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/nsuberi/proto-portal-showcase-hub-sub001/internal/ui/theme"
)

// ProgressBar renders done/total as a horizontal bar.
type ProgressBar struct {
	Label string
	Done  int
	Total int
	Width int
}

// NewProgressBar creates a progress bar of the given total width.
func NewProgressBar(label string, done, total, width int) ProgressBar {
	return ProgressBar{Label: label, Done: done, Total: total, Width: width}
}

// Percent returns the filled fraction in [0, 1].
func (p ProgressBar) Percent() float64 {
	if p.Total <= 0 {
		return 0
	}
	return min(max(float64(p.Done)/float64(p.Total), 0), 1)
}

// View renders the bar followed by a done/total counter.
func (p ProgressBar) View() string {
	var b strings.Builder

	if p.Label != "" {
		b.WriteString(theme.Label.Render(p.Label))
	}

	counter := fmt.Sprintf("  %d/%d", p.Done, p.Total)
	barWidth := max(p.Width-lipgloss.Width(b.String())-len(counter), 4)

	filled := int(float64(barWidth) * p.Percent())
	b.WriteString(theme.MeterFilled.Render(strings.Repeat(" ", filled)))
	b.WriteString(theme.MeterEmpty.Render(strings.Repeat(" ", barWidth-filled)))
	b.WriteString(theme.Subtitle.Render(counter))

	return b.String()
}
