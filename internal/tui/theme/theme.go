// Package theme centralizes the lipgloss styling for the dashboard so
// every view pulls colors from one palette.
package theme

import "github.com/charmbracelet/lipgloss"

// Design tokens.
var (
	// Accent colors
	Accent     = lipgloss.Color("#7C3AED") // highlight violet
	AccentSoft = lipgloss.Color("#A78BFA")
	AccentAlt  = lipgloss.Color("#10B981")

	// Status colors
	Success = lipgloss.AdaptiveColor{Light: "#15803D", Dark: "#34D399"}
	Warning = lipgloss.AdaptiveColor{Light: "#B45309", Dark: "#FBBF24"}
	Error   = lipgloss.AdaptiveColor{Light: "#B91C1C", Dark: "#F87171"}
	Info    = lipgloss.AdaptiveColor{Light: "#0369A1", Dark: "#7DD3FC"}

	// Text colors
	TextPrimary   = lipgloss.Color("#F1F5F9")
	TextSecondary = lipgloss.Color("#CBD5E1")
	TextMuted     = lipgloss.Color("#94A3B8")
	TextDim       = lipgloss.Color("#64748B")

	// Surface colors
	Surface      = lipgloss.Color("#161616")
	SurfaceAlt   = lipgloss.Color("#202020")
	SurfaceInset = lipgloss.Color("#333333")

	// UI element colors
	Border        = lipgloss.Color("#333333")
	BorderFocused = Accent
	Background    = Surface
	Highlight     = SurfaceAlt

	// Dialog colors
	DialogBorderColor = Accent
	DialogLabelColor  = TextMuted
	DialogValueColor  = TextSecondary
	DialogChoiceColor = AccentSoft

	// Logo color
	Logo = lipgloss.Color("#C4B5FD")
)

// ===== Base Styles =====

// App wraps the entire dashboard view.
var App = lipgloss.NewStyle().Padding(1, 2)

// Title is the main title bar (brand + mode label).
var Title = lipgloss.NewStyle().
	Foreground(TextPrimary).
	Background(Accent).
	Padding(0, 1)

// SectionTitle heads the preview panel.
var SectionTitle = lipgloss.NewStyle().
	Bold(true).
	Foreground(TextPrimary)

// ===== Status Message Styles =====

// StatusMessage for success/info toasts.
var StatusMessage = lipgloss.NewStyle().
	Foreground(Success)

// StatusError for error toasts.
var StatusError = lipgloss.NewStyle().
	Foreground(Error)

// StatusWarning for warning toasts.
var StatusWarning = lipgloss.NewStyle().
	Foreground(Warning)

// ===== Dialog Styles =====

// Dialog is the container for modal dialogs.
var Dialog = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(DialogBorderColor).
	Padding(1, 2)

// DialogTitle for dialog headings.
var DialogTitle = lipgloss.NewStyle().
	Bold(true).
	Foreground(DialogBorderColor)

// DialogLabel for labels in dialogs.
var DialogLabel = lipgloss.NewStyle().
	Foreground(DialogLabelColor)

// DialogValue for values in dialogs.
var DialogValue = lipgloss.NewStyle().
	Foreground(DialogValueColor)

// DialogNote for italic notes.
var DialogNote = lipgloss.NewStyle().
	Foreground(DialogLabelColor).
	Italic(true)

// DialogChoiceKey for highlighted keys (y/n).
var DialogChoiceKey = lipgloss.NewStyle().
	Foreground(DialogChoiceColor)

// DialogChoiceSep for separators between choices.
var DialogChoiceSep = lipgloss.NewStyle().
	Foreground(DialogLabelColor)

// ===== List Styles =====

// ListDimmed for dimmed/background content.
var ListDimmed = lipgloss.NewStyle().
	Foreground(TextDim)

// ===== Filter Bar =====

// FilterPrompt marks the active fuzzy filter input.
var FilterPrompt = lipgloss.NewStyle().
	Foreground(Accent).
	Bold(true)

// ===== Shortcut/Help Styles =====

// ShortcutKey for keyboard shortcut keys.
var ShortcutKey = lipgloss.NewStyle().
	Foreground(AccentSoft).
	Bold(true).
	Width(18)

// ShortcutDesc for shortcut descriptions.
var ShortcutDesc = lipgloss.NewStyle().
	Foreground(TextSecondary)

// ShortcutHint for close/action hints.
var ShortcutHint = lipgloss.NewStyle().
	Foreground(TextDim)

// ===== Status Badges =====

// StatusBadgeRunning for active panes.
var StatusBadgeRunning = lipgloss.NewStyle().
	Bold(true).
	Foreground(TextPrimary).
	Background(Info).
	Padding(0, 1)

// StatusBadgeDone for successful completion.
var StatusBadgeDone = lipgloss.NewStyle().
	Bold(true).
	Foreground(TextPrimary).
	Background(Success).
	Padding(0, 1)

// StatusBadgeError for failures.
var StatusBadgeError = lipgloss.NewStyle().
	Bold(true).
	Foreground(TextPrimary).
	Background(Error).
	Padding(0, 1)

// StatusBadgeIdle for idle/unknown panes.
var StatusBadgeIdle = lipgloss.NewStyle().
	Foreground(TextMuted).
	Background(Highlight).
	Padding(0, 1)

// ===== Preview Panel =====

// PreviewBorder frames the live pane preview.
var PreviewBorder = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(Border).
	Padding(0, 1)

// PreviewBorderFocused frames the preview while it is scrolled back.
var PreviewBorderFocused = PreviewBorder.BorderForeground(BorderFocused)

// ===== Logo Style =====

// LogoStyle for the ASCII banner.
var LogoStyle = lipgloss.NewStyle().
	Foreground(Logo).
	Bold(true)

// ===== Error Display Styles =====

// ErrorBox wraps persistent error messages in a visible container.
var ErrorBox = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(Error).
	Padding(0, 1).
	MarginTop(1)

// ErrorTitle for error headings.
var ErrorTitle = lipgloss.NewStyle().
	Bold(true).
	Foreground(Error)

// ErrorMessage for error body text.
var ErrorMessage = lipgloss.NewStyle().
	Foreground(TextSecondary)

// ===== Helper Functions =====

// FormatSuccess renders a success message with a check mark.
func FormatSuccess(msg string) string {
	return StatusMessage.Render("✓ " + msg)
}

// FormatError renders an error message with a cross mark.
func FormatError(msg string) string {
	return StatusError.Render("✗ " + msg)
}

// FormatWarning renders a warning message.
func FormatWarning(msg string) string {
	return StatusWarning.Render("⚠ " + msg)
}

// FormatInfo renders an informational message.
func FormatInfo(msg string) string {
	return StatusMessage.Render("ℹ " + msg)
}
