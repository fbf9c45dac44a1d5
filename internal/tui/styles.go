package tui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/existflow/examprep/internal/model"
)

// Palette is the color set of one theme
type Palette struct {
	Primary   lipgloss.Color
	Text      lipgloss.Color
	TextMuted lipgloss.Color
	Border    lipgloss.Color
	Surface   lipgloss.Color
	Completed lipgloss.Color
	Overdue   lipgloss.Color
	Timer     lipgloss.Color
	Break     lipgloss.Color
}

var palettes = map[model.Theme]Palette{
	model.ThemeLight: {
		Primary:   lipgloss.Color("#2563EB"),
		Text:      lipgloss.Color("#111827"),
		TextMuted: lipgloss.Color("#6B7280"),
		Border:    lipgloss.Color("#D1D5DB"),
		Surface:   lipgloss.Color("#E5E7EB"),
		Completed: lipgloss.Color("#16A34A"),
		Overdue:   lipgloss.Color("#DC2626"),
		Timer:     lipgloss.Color("#2563EB"),
		Break:     lipgloss.Color("#16A34A"),
	},
	model.ThemeDark: {
		Primary:   lipgloss.Color("#4ECDC4"),
		Text:      lipgloss.Color("#FFFFFF"),
		TextMuted: lipgloss.Color("#888888"),
		Border:    lipgloss.Color("#333333"),
		Surface:   lipgloss.Color("#16213e"),
		Completed: lipgloss.Color("#95E1A3"),
		Overdue:   lipgloss.Color("#FF6B6B"),
		Timer:     lipgloss.Color("#FFB347"),
		Break:     lipgloss.Color("#95E1A3"),
	},
	model.ThemeCream: {
		Primary:   lipgloss.Color("#B45309"),
		Text:      lipgloss.Color("#44403C"),
		TextMuted: lipgloss.Color("#A8A29E"),
		Border:    lipgloss.Color("#E7E5E4"),
		Surface:   lipgloss.Color("#FEF3C7"),
		Completed: lipgloss.Color("#65A30D"),
		Overdue:   lipgloss.Color("#B91C1C"),
		Timer:     lipgloss.Color("#C2410C"),
		Break:     lipgloss.Color("#65A30D"),
	},
	model.ThemeMidnight: {
		Primary:   lipgloss.Color("#A78BFA"),
		Text:      lipgloss.Color("#E0E7FF"),
		TextMuted: lipgloss.Color("#6366F1"),
		Border:    lipgloss.Color("#312E81"),
		Surface:   lipgloss.Color("#1E1B4B"),
		Completed: lipgloss.Color("#34D399"),
		Overdue:   lipgloss.Color("#F472B6"),
		Timer:     lipgloss.Color("#A78BFA"),
		Break:     lipgloss.Color("#34D399"),
	},
}

// Subject badge colors
var subjectColors = map[string]lipgloss.Color{
	model.SubjectMath:        lipgloss.Color("#FF6B6B"),
	model.SubjectPhysics:     lipgloss.Color("#FFB347"),
	model.SubjectRussian:     lipgloss.Color("#FFE66D"),
	model.SubjectInformatics: lipgloss.Color("#4ECDC4"),
	model.SubjectEnglish:     lipgloss.Color("#A78BFA"),
}

// Styles are the rendered styles of one theme
type Styles struct {
	Palette Palette

	Header       lipgloss.Style
	Tab          lipgloss.Style
	TabActive    lipgloss.Style
	Body         lipgloss.Style
	DayHeader    lipgloss.Style
	Item         lipgloss.Style
	ItemSelected lipgloss.Style
	ItemDone     lipgloss.Style
	ItemOverdue  lipgloss.Style
	StatusBar    lipgloss.Style
	Modal        lipgloss.Style
	Help         lipgloss.Style
	Clock        lipgloss.Style
}

// NewStyles builds the styles of a theme, falling back to the default theme
func NewStyles(theme model.Theme) Styles {
	p, ok := palettes[theme]
	if !ok {
		p = palettes[model.DefaultTheme]
	}

	return Styles{
		Palette: p,

		Header: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.Primary).
			Padding(0, 1),

		Tab: lipgloss.NewStyle().
			Foreground(p.TextMuted).
			Padding(0, 2),

		TabActive: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.Primary).
			Background(p.Surface).
			Padding(0, 2),

		Body: lipgloss.NewStyle().
			Padding(1, 2),

		DayHeader: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.Primary),

		Item: lipgloss.NewStyle().
			Foreground(p.Text).
			Padding(0, 1),

		ItemSelected: lipgloss.NewStyle().
			Foreground(p.Text).
			Padding(0, 1).
			Background(p.Surface).
			Bold(true),

		ItemDone: lipgloss.NewStyle().
			Foreground(p.TextMuted).
			Strikethrough(true).
			Padding(0, 1),

		ItemOverdue: lipgloss.NewStyle().
			Foreground(p.Overdue).
			Padding(0, 1),

		StatusBar: lipgloss.NewStyle().
			Foreground(p.TextMuted).
			Padding(0, 1).
			BorderStyle(lipgloss.NormalBorder()).
			BorderTop(true).
			BorderForeground(p.Border),

		Modal: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.Primary).
			Padding(1, 2),

		Help: lipgloss.NewStyle().
			Foreground(p.TextMuted),

		Clock: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.Timer).
			Padding(1, 4).
			Border(lipgloss.DoubleBorder()).
			BorderForeground(p.Timer),
	}
}

// SubjectBadge renders a subject in its color
func SubjectBadge(subject string) string {
	c, ok := subjectColors[subject]
	if !ok {
		c = lipgloss.Color("#888888")
	}
	return lipgloss.NewStyle().Foreground(c).Bold(true).Render(padRight(subject, 5))
}
