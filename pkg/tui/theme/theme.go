package theme

import (
	"image/color"

	"github.com/charmbracelet/lipgloss/v2"
	"github.com/lucasb-eyer/go-colorful"

	"tableflip.dev/marquee/pkg/release"
	"tableflip.dev/marquee/pkg/timeline"
)

// Theme centralizes Lip Gloss styles for the Bubble Tea UI.
type Theme struct {
	Header HeaderTheme
	Footer FooterTheme
	Panel  PanelTheme
	Table  TableTheme
	Modal  ModalTheme
}

// HeaderTheme styles the title row and the list/calendar toggle.
type HeaderTheme struct {
	Title      lipgloss.Style
	Tab        lipgloss.Style
	ActiveTab  lipgloss.Style
	Action     lipgloss.Style
	StatusLine lipgloss.Style
}

// FooterTheme groups styles used by the bottom help bar.
type FooterTheme struct {
	Help  lipgloss.Style
	Error lipgloss.Style
}

// PanelTheme styles framed panels and headings.
type PanelTheme struct {
	Frame    lipgloss.Style
	Title    lipgloss.Style
	Section  lipgloss.Style
	Label    lipgloss.Style
	Muted    lipgloss.Style
	Disabled lipgloss.Style
}

// TableTheme styles the release list.
type TableTheme struct {
	Header   lipgloss.Style
	Row      lipgloss.Style
	Cursor   lipgloss.Style
	Selected lipgloss.Style
}

// ModalTheme styles centered modal overlays (e.g., the create dialog).
type ModalTheme struct {
	Frame        lipgloss.Style
	Title        lipgloss.Style
	Body         lipgloss.Style
	Button       lipgloss.Style
	ActiveButton lipgloss.Style
	Error        lipgloss.Style
}

var (
	blue   = lipgloss.Color("33")
	green  = lipgloss.Color("35")
	purple = lipgloss.Color("135")
	red    = lipgloss.Color("160")
	yellow = lipgloss.Color("178")
	gray   = lipgloss.Color("244")
)

// Default returns the built-in theme used across the UI.
func Default() Theme {
	button := lipgloss.NewStyle().Padding(0, 2).Foreground(lipgloss.Color("252")).Background(lipgloss.Color("238"))
	return Theme{
		Header: HeaderTheme{
			Title:      lipgloss.NewStyle().Bold(true),
			Tab:        lipgloss.NewStyle().Padding(0, 1).Foreground(lipgloss.Color("245")),
			ActiveTab:  lipgloss.NewStyle().Padding(0, 1).Foreground(blue).Bold(true).Underline(true),
			Action:     lipgloss.NewStyle().Padding(0, 1).Foreground(lipgloss.Color("231")).Background(blue),
			StatusLine: lipgloss.NewStyle().Foreground(gray),
		},
		Footer: FooterTheme{
			Help:  lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
			Error: lipgloss.NewStyle().Foreground(red).Bold(true),
		},
		Panel: PanelTheme{
			Frame: lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				Padding(0, 1),
			Title:    lipgloss.NewStyle().Bold(true),
			Section:  lipgloss.NewStyle().Bold(true).Underline(true),
			Label:    lipgloss.NewStyle().Foreground(gray),
			Muted:    lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
			Disabled: lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Strikethrough(true),
		},
		Table: TableTheme{
			Header:   lipgloss.NewStyle().Foreground(gray).Bold(true),
			Row:      lipgloss.NewStyle(),
			Cursor:   lipgloss.NewStyle().Reverse(true),
			Selected: lipgloss.NewStyle().Foreground(blue).Bold(true),
		},
		Modal: ModalTheme{
			Frame: lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				Padding(1, 2),
			Title:        lipgloss.NewStyle().Bold(true),
			Body:         lipgloss.NewStyle(),
			Button:       button,
			ActiveButton: button.Background(blue).Foreground(lipgloss.Color("231")).Bold(true),
			Error:        lipgloss.NewStyle().Foreground(red),
		},
	}
}

// StatusBadge renders a window status as a coloured label.
func StatusBadge(s release.Status) string {
	return lipgloss.NewStyle().Foreground(StatusColor(s)).Render(s.Label())
}

// StatusColor is the badge colour for a window status.
func StatusColor(s release.Status) color.Color {
	switch s {
	case release.StatusScheduled:
		return blue
	case release.StatusActive:
		return green
	case release.StatusCompleted:
		return purple
	case release.StatusCancelled:
		return red
	default:
		return gray
	}
}

// ApprovalBadge renders a deliverable approval status.
func ApprovalBadge(a release.ApprovalStatus) string {
	var c color.Color = gray
	switch a {
	case release.ApprovalApproved:
		c = green
	case release.ApprovalRejected:
		c = red
	case release.ApprovalPending:
		c = yellow
	}
	return lipgloss.NewStyle().Foreground(c).Render(a.Label())
}

// ExclusiveBadge marks exclusive windows.
func ExclusiveBadge() string {
	return lipgloss.NewStyle().Foreground(yellow).Render("Exclusive")
}

// EventStyle colours an event by type.
func EventStyle(t timeline.Type) lipgloss.Style {
	switch t {
	case timeline.TypeRelease:
		return lipgloss.NewStyle().Foreground(blue)
	case timeline.TypeMarketing:
		return lipgloss.NewStyle().Foreground(green)
	case timeline.TypeDeliverable:
		return lipgloss.NewStyle().Foreground(purple)
	default:
		return lipgloss.NewStyle().Foreground(gray)
	}
}

var (
	densityLow, _  = colorful.Hex("#8a8a8a")
	densityHigh, _ = colorful.Hex("#ffaf00")
)

// DensityColor shades a day number by how busy the day is relative to the
// busiest day on screen. Days without events stay unshaded.
func DensityColor(n, busiest int) color.Color {
	if n <= 0 || busiest <= 0 {
		return nil
	}
	t := float64(n) / float64(busiest)
	if t > 1 {
		t = 1
	}
	return lipgloss.Color(densityLow.BlendLuv(densityHigh, t).Clamped().Hex())
}
