package formatter

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"costbook/internal/domain"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

// Predefined lipgloss styles.
var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// ProjectStatusPill renders a colored status indicator for a project.
func ProjectStatusPill(status domain.ProjectStatus) string {
	switch status {
	case domain.ProjectApproved:
		return StyleGreen.Render("● approved")
	case domain.ProjectDraft:
		return StyleYellow.Render("● draft")
	default:
		return StyleDim.Render("● " + string(status))
	}
}

// OrderStatusPill renders a colored status indicator for a change order.
func OrderStatusPill(status domain.ChangeOrderStatus) string {
	switch status {
	case domain.ChangeOrderApproved:
		return StyleGreen.Render("● approved")
	case domain.ChangeOrderRejected:
		return StyleRed.Render("● rejected")
	case domain.ChangeOrderPending:
		return StyleYellow.Render("● pending")
	default:
		return StyleDim.Render("● " + string(status))
	}
}

// Header renders a section header with the orange header style and an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", len(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

// Dim renders text in the muted/dim color.
func Dim(text string) string {
	return StyleDim.Render(text)
}

// Bold renders text in bold with the foreground color.
func Bold(text string) string {
	return StyleBold.Render(text)
}

// Warn renders an advisory warning line.
func Warn(text string) string {
	return StyleYellow.Render("⚠ " + text)
}
