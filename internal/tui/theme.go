package tui

import (
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Theme holds the lipgloss styles shared by all screens.
type Theme struct {
	NoColor bool

	Title     lipgloss.Style
	Subtitle  lipgloss.Style
	Muted     lipgloss.Style
	Error     lipgloss.Style
	Success   lipgloss.Style
	Badge     lipgloss.Style
	Selected  lipgloss.Style
	StatusBar lipgloss.Style
}

// NewTheme builds the default theme. With noColor set, every style is a
// plain passthrough.
func NewTheme(noColor bool) Theme {
	if noColor {
		plain := lipgloss.NewStyle()
		return Theme{
			NoColor: true, Title: plain, Subtitle: plain, Muted: plain,
			Error: plain, Success: plain, Badge: plain, Selected: plain, StatusBar: plain,
		}
	}
	return Theme{
		Title:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7C3AED")),
		Subtitle:  lipgloss.NewStyle().Foreground(lipgloss.Color("#9CA3AF")),
		Muted:     lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280")),
		Error:     lipgloss.NewStyle().Foreground(lipgloss.Color("#EF4444")),
		Success:   lipgloss.NewStyle().Foreground(lipgloss.Color("#22C55E")),
		Badge:     lipgloss.NewStyle().Foreground(lipgloss.Color("#F59E0B")),
		Selected:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#F9FAFB")),
		StatusBar: lipgloss.NewStyle().Foreground(lipgloss.Color("#D1D5DB")).Background(lipgloss.Color("#1F2937")),
	}
}

// priceFormatter localizes amounts with a currency symbol.
var priceFormatter = message.NewPrinter(language.English)

// FormatPrice renders an amount in the given ISO 4217 currency, using
// the narrow symbol ("$19.50"). Unknown codes fall back to USD.
func FormatPrice(code string, amount float64) string {
	unit, err := currency.ParseISO(code)
	if err != nil {
		unit = currency.USD
	}
	return priceFormatter.Sprintf("%v", currency.NarrowSymbol(unit.Amount(amount)))
}
