package components

import (
	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"

	"github.com/nsuberi/proto-portal-showcase-hub-sub001/internal/ui/theme"
)

// Table renders rows under a bold header with a rounded border.
func Table(headers []string, rows [][]string) string {
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(theme.Border)).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return theme.HeaderCell
			}
			return theme.Cell
		})
	return t.String()
}

// KeyValues renders aligned label/value lines inside a card.
func KeyValues(title string, pairs [][2]string) string {
	out := theme.Title.Render(title)
	for _, kv := range pairs {
		out += "\n" + theme.Label.Render(kv[0]) + theme.Body.Render(kv[1])
	}
	return theme.Card.Render(out)
}
