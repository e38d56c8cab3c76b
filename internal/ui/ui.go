// Package ui holds the lipgloss styles shared by relctl's subcommands,
// grounded on cmd/bd-examples/main.go's pass/warn/fail/muted/accent
// style set.
package ui

import "github.com/charmbracelet/lipgloss"

var (
	PassStyle = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{
		Light: "#86b300",
		Dark:  "#c2d94c",
	})
	WarnStyle = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{
		Light: "#f2ae49",
		Dark:  "#ffb454",
	})
	FailStyle = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{
		Light: "#f07171",
		Dark:  "#f07178",
	})
	MutedStyle = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{
		Light: "#828c99",
		Dark:  "#6c7680",
	})
	AccentStyle = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{
		Light: "#399ee6",
		Dark:  "#59c2ff",
	})
	BoldStyle = lipgloss.NewStyle().Bold(true)
)

// Pass renders s in the success color with a leading check mark.
func Pass(s string) string { return PassStyle.Render("✓ " + s) }

// Warn renders s in the warning color with a leading bang.
func Warn(s string) string { return WarnStyle.Render("! " + s) }

// Fail renders s in the failure color with a leading cross.
func Fail(s string) string { return FailStyle.Render("✗ " + s) }

// Muted renders s de-emphasized, for secondary detail lines.
func Muted(s string) string { return MutedStyle.Render(s) }
