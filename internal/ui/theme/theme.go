package theme

import (
	"charm.land/lipgloss/v2"

	"github.com/nsuberi/proto-portal-showcase-hub-sub001/internal/skillgraph"
)

// Color palette, loosely after the Sphere Grid.
var (
	Primary   = lipgloss.Color("#7C3AED") // Violet
	Secondary = lipgloss.Color("#0EA5E9") // Sky
	Accent    = lipgloss.Color("#F59E0B") // Amber
	Success   = lipgloss.Color("#22C55E") // Green
	Error     = lipgloss.Color("#F43F5E") // Rose
	Text      = lipgloss.Color("#F8FAFC") // White
	TextDim   = lipgloss.Color("#94A3B8") // Slate
	Border    = lipgloss.Color("#334155") // Slate
)

// Typography
var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary)

	Subtitle = lipgloss.NewStyle().
			Foreground(TextDim)

	Body = lipgloss.NewStyle().
		Foreground(Text)

	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)

	Label = lipgloss.NewStyle().
		Foreground(TextDim).
		Width(12)
)

// Layout
var (
	Card = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(0, 1)

	Cell = lipgloss.NewStyle().
		Padding(0, 1)

	HeaderCell = Cell.
			Bold(true).
			Foreground(Primary)
)

// States
var (
	Mastered = lipgloss.NewStyle().
			Foreground(Success).
			Bold(true)

	Locked = lipgloss.NewStyle().
		Foreground(TextDim)

	Failure = lipgloss.NewStyle().
		Foreground(Error).
		Bold(true)

	GoalMarker = lipgloss.NewStyle().
			Foreground(Accent).
			Bold(true)
)

// Components
var (
	MeterFilled = lipgloss.NewStyle().
			Background(Secondary)

	MeterEmpty = lipgloss.NewStyle().
			Background(Border)
)

var priorityColors = map[string]lipgloss.Style{
	"high":   lipgloss.NewStyle().Foreground(Success).Bold(true),
	"medium": lipgloss.NewStyle().Foreground(Accent),
	"low":    lipgloss.NewStyle().Foreground(TextDim),
}

// Priority styles a recommendation priority label.
func Priority(p string) string {
	if s, ok := priorityColors[p]; ok {
		return s.Render(p)
	}
	return p
}

var categoryColors = map[skillgraph.Category]string{
	skillgraph.CategoryCombat:   "#EF4444",
	skillgraph.CategoryMagic:    "#8B5CF6",
	skillgraph.CategorySupport:  "#14B8A6",
	skillgraph.CategorySpecial:  "#F97316",
	skillgraph.CategoryAdvanced: "#EAB308",
}

// Category styles a category's display name in its own color.
func Category(c skillgraph.Category) string {
	name := skillgraph.CategoryDisplayName(c)
	hex, ok := categoryColors[c]
	if !ok {
		return name
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(hex)).Render(name)
}
