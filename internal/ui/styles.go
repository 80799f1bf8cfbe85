// Package ui renders ghm output: the settings summary, the verbose table and
// per-repository progress lines. Colors adapt to light and dark terminals and
// are dropped entirely when output is not a terminal.
package ui

import (
	"github.com/charmbracelet/lipgloss"
)

// Semantic status colors (adaptive light/dark)
var (
	ColorPass = lipgloss.AdaptiveColor{
		Light: "#86b300",
		Dark:  "#c2d94c",
	}
	ColorWarn = lipgloss.AdaptiveColor{
		Light: "#f2ae49",
		Dark:  "#ffb454",
	}
	ColorFail = lipgloss.AdaptiveColor{
		Light: "#f07171",
		Dark:  "#f07178",
	}
	ColorMuted = lipgloss.AdaptiveColor{
		Light: "#828c99",
		Dark:  "#6c7680",
	}
	ColorAccent = lipgloss.AdaptiveColor{
		Light: "#399ee6",
		Dark:  "#59c2ff",
	}
)

// Status icons
const (
	IconPass = "✓"
	IconWarn = "⚠"
	IconFail = "✗"
	IconSkip = "-"
	IconNone = "—"
)

// Styles holds the lipgloss styles bound to one renderer
type Styles struct {
	Pass   lipgloss.Style
	Warn   lipgloss.Style
	Fail   lipgloss.Style
	Muted  lipgloss.Style
	Accent lipgloss.Style
	Bold   lipgloss.Style
	Header lipgloss.Style
}

// NewStyles builds the style set for r
func NewStyles(r *lipgloss.Renderer) Styles {
	return Styles{
		Pass:   r.NewStyle().Foreground(ColorPass),
		Warn:   r.NewStyle().Foreground(ColorWarn),
		Fail:   r.NewStyle().Foreground(ColorFail),
		Muted:  r.NewStyle().Foreground(ColorMuted),
		Accent: r.NewStyle().Foreground(ColorAccent),
		Bold:   r.NewStyle().Bold(true),
		Header: r.NewStyle().Bold(true).Foreground(ColorAccent),
	}
}
