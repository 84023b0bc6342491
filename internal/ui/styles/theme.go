package styles

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme represents a color scheme for the application
type Theme struct {
	Name string

	// Base colors
	Background    lipgloss.Color
	Foreground    lipgloss.Color
	ForegroundDim lipgloss.Color

	// Accent colors
	Primary   lipgloss.Color
	Secondary lipgloss.Color
	Accent    lipgloss.Color

	// Semantic colors
	Success lipgloss.Color
	Warning lipgloss.Color
	Error   lipgloss.Color
	Info    lipgloss.Color

	// UI element colors
	Border      lipgloss.Color
	BorderFocus lipgloss.Color
	Selection   lipgloss.Color
	Cursor      lipgloss.Color

	// Timeline shading
	TodayBg   lipgloss.Color
	WeekendBg lipgloss.Color
	GroupBg   lipgloss.Color
}

// TokyoNight is the default color theme
var TokyoNight = Theme{
	Name: "Tokyo Night",

	Background:    lipgloss.Color("#1a1b26"),
	Foreground:    lipgloss.Color("#c0caf5"),
	ForegroundDim: lipgloss.Color("#565f89"),

	Primary:   lipgloss.Color("#7aa2f7"),
	Secondary: lipgloss.Color("#bb9af7"),
	Accent:    lipgloss.Color("#7dcfff"),

	Success: lipgloss.Color("#9ece6a"),
	Warning: lipgloss.Color("#e0af68"),
	Error:   lipgloss.Color("#f7768e"),
	Info:    lipgloss.Color("#7aa2f7"),

	Border:      lipgloss.Color("#3b4261"),
	BorderFocus: lipgloss.Color("#7aa2f7"),
	Selection:   lipgloss.Color("#33467c"),
	Cursor:      lipgloss.Color("#c0caf5"),

	TodayBg:   lipgloss.Color("#2d3f4f"),
	WeekendBg: lipgloss.Color("#222333"),
	GroupBg:   lipgloss.Color("#24283b"),
}

// Current holds the active theme
var Current = TokyoNight

// Styles holds all the pre-computed styles for the UI
type Styles struct {
	// Title bar
	Title      lipgloss.Style
	TitleMuted lipgloss.Style

	// Timeline headers
	MonthHeader  lipgloss.Style
	DateHeader   lipgloss.Style
	DateToday    lipgloss.Style
	DateWeekend  lipgloss.Style
	GroupHeader  lipgloss.Style
	ResourceName lipgloss.Style

	// Grid cells
	Cell        lipgloss.Style
	CellToday   lipgloss.Style
	CellWeekend lipgloss.Style

	// Lists (resource manager)
	ListItem     lipgloss.Style
	ListSelected lipgloss.Style

	// Modal panel
	Panel lipgloss.Style

	// Buttons
	Button        lipgloss.Style
	ButtonFocused lipgloss.Style
	ButtonPrimary lipgloss.Style

	// Input fields
	Input        lipgloss.Style
	InputFocused lipgloss.Style

	// Help text
	Help     lipgloss.Style
	HelpKey  lipgloss.Style
	HelpDesc lipgloss.Style

	// Status bar
	StatusBar lipgloss.Style
	StatusMsg lipgloss.Style
}

// NewStyles creates styles based on the current theme
func NewStyles() *Styles {
	t := Current

	return &Styles{
		Title: lipgloss.NewStyle().
			Foreground(t.Primary).
			Bold(true),

		TitleMuted: lipgloss.NewStyle().
			Foreground(t.ForegroundDim),

		MonthHeader: lipgloss.NewStyle().
			Foreground(t.Secondary).
			Bold(true),

		DateHeader: lipgloss.NewStyle().
			Foreground(t.ForegroundDim),

		DateToday: lipgloss.NewStyle().
			Foreground(t.Primary).
			Background(t.TodayBg).
			Bold(true),

		DateWeekend: lipgloss.NewStyle().
			Foreground(t.ForegroundDim).
			Background(t.WeekendBg),

		GroupHeader: lipgloss.NewStyle().
			Foreground(t.Accent).
			Background(t.GroupBg).
			Bold(true),

		ResourceName: lipgloss.NewStyle().
			Foreground(t.Foreground).
			Bold(true),

		Cell: lipgloss.NewStyle().
			Foreground(t.ForegroundDim),

		CellToday: lipgloss.NewStyle().
			Foreground(t.ForegroundDim).
			Background(t.TodayBg),

		CellWeekend: lipgloss.NewStyle().
			Foreground(t.ForegroundDim).
			Background(t.WeekendBg),

		ListItem: lipgloss.NewStyle().
			Foreground(t.Foreground).
			Padding(0, 2),

		ListSelected: lipgloss.NewStyle().
			Foreground(t.Primary).
			Background(t.Selection).
			Padding(0, 2).
			Bold(true),

		Panel: lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.Border),

		Button: lipgloss.NewStyle().
			Foreground(t.Foreground).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.Border).
			Padding(0, 2),

		ButtonFocused: lipgloss.NewStyle().
			Foreground(t.Primary).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.BorderFocus).
			Padding(0, 2).
			Bold(true),

		// no padding so rendered width equals label width, which the
		// toolbar hit zones rely on
		ButtonPrimary: lipgloss.NewStyle().
			Foreground(t.Background).
			Background(t.Primary).
			Bold(true),

		Input: lipgloss.NewStyle().
			Foreground(t.Foreground).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.Border).
			Padding(0, 1),

		InputFocused: lipgloss.NewStyle().
			Foreground(t.Foreground).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.BorderFocus).
			Padding(0, 1),

		Help: lipgloss.NewStyle().
			Foreground(t.ForegroundDim).
			Padding(0, 1),

		HelpKey: lipgloss.NewStyle().
			Foreground(t.Primary).
			Bold(true),

		HelpDesc: lipgloss.NewStyle().
			Foreground(t.ForegroundDim),

		StatusBar: lipgloss.NewStyle().
			Foreground(t.ForegroundDim).
			Padding(0, 1),

		StatusMsg: lipgloss.NewStyle().
			Foreground(t.Success).
			Padding(0, 1),
	}
}
