package ui

import (
	"os"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// unicodeSupported caches whether the terminal supports Unicode.
var (
	unicodeSupported     bool
	unicodeSupportedOnce sync.Once
)

// SupportsUnicode returns true if the terminal likely supports Unicode characters.
// It checks LANG, LC_ALL, and LC_CTYPE environment variables for UTF-8 indicators.
func SupportsUnicode() bool {
	unicodeSupportedOnce.Do(func() {
		for _, envVar := range []string{"LC_ALL", "LC_CTYPE", "LANG"} {
			val := strings.ToLower(os.Getenv(envVar))
			if strings.Contains(val, "utf-8") || strings.Contains(val, "utf8") {
				unicodeSupported = true
				return
			}
		}
		unicodeSupported = false
	})
	return unicodeSupported
}

// Icon constants - Unicode and ASCII versions
const (
	IconCheckUnicode      = "✓"
	IconCrossUnicode      = "✗"
	IconPointerUnicode    = "▸"
	IconExternalUnicode   = "↗"
	IconSeparatorUnicode  = "─"
	IconBlockUnicode      = "█"
	IconArrowLeftUnicode  = "←"
	IconArrowRightUnicode = "→"
	IconArrowUpUnicode    = "↑"
	IconArrowDownUnicode  = "↓"

	IconCheckASCII      = "x"
	IconCrossASCII      = " "
	IconPointerASCII    = ">"
	IconExternalASCII   = "^"
	IconSeparatorASCII  = "-"
	IconBlockASCII      = "#"
	IconArrowLeftASCII  = "<"
	IconArrowRightASCII = ">"
	IconArrowUpASCII    = "^"
	IconArrowDownASCII  = "v"
)

// Icon returns the appropriate icon based on terminal Unicode support.
func Icon(unicodeIcon, asciiIcon string) string {
	if SupportsUnicode() {
		return unicodeIcon
	}
	return asciiIcon
}

// IconCheck returns the enabled toggle mark.
func IconCheck() string { return Icon(IconCheckUnicode, IconCheckASCII) }

// IconCross returns the disabled toggle mark.
func IconCross() string { return Icon(IconCrossUnicode, IconCrossASCII) }

// IconPointer returns the menu cursor.
func IconPointer() string { return Icon(IconPointerUnicode, IconPointerASCII) }

// IconExternal marks items that leave the program.
func IconExternal() string { return Icon(IconExternalUnicode, IconExternalASCII) }

// IconSeparator returns the menu separator rune.
func IconSeparator() string { return Icon(IconSeparatorUnicode, IconSeparatorASCII) }

// IconBlock returns the fill used by the large digits.
func IconBlock() string { return Icon(IconBlockUnicode, IconBlockASCII) }

// IconArrowLeft returns the left arrow.
func IconArrowLeft() string { return Icon(IconArrowLeftUnicode, IconArrowLeftASCII) }

// IconArrowRight returns the right arrow.
func IconArrowRight() string { return Icon(IconArrowRightUnicode, IconArrowRightASCII) }

// IconArrowUp returns the up arrow.
func IconArrowUp() string { return Icon(IconArrowUpUnicode, IconArrowUpASCII) }

// IconArrowDown returns the down arrow.
func IconArrowDown() string { return Icon(IconArrowDownUnicode, IconArrowDownASCII) }

// Colors - these are updated by refreshStyles() when theme changes
var (
	ColorPrimary   = lipgloss.Color(DefaultTheme.Primary)
	ColorSecondary = lipgloss.Color(DefaultTheme.Secondary)
	ColorSuccess   = lipgloss.Color(DefaultTheme.Success)
	ColorWarning   = lipgloss.Color(DefaultTheme.Warning)
	ColorError     = lipgloss.Color(DefaultTheme.Error)
	ColorMuted     = lipgloss.Color(DefaultTheme.Muted)
)

// Base styles - these are rebuilt by refreshStyles() when theme changes
var (
	Bold     lipgloss.Style
	Dim      lipgloss.Style
	Faint    lipgloss.Style
	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Success  lipgloss.Style
	Warning  lipgloss.Style
	Error    lipgloss.Style

	// Countdown cells
	UnitValue    lipgloss.Style
	UnitLabel    lipgloss.Style
	UnitCell     lipgloss.Style
	GreatestCell lipgloss.Style
	Released     lipgloss.Style

	// Menus
	MenuTab          lipgloss.Style
	MenuTabActive    lipgloss.Style
	ListItem         lipgloss.Style
	SelectedListItem lipgloss.Style

	Box        lipgloss.Style
	FocusedBox lipgloss.Style

	// Help bar
	HelpBar  lipgloss.Style
	HelpKey  lipgloss.Style
	HelpDesc lipgloss.Style

	Header lipgloss.Style
)

func init() {
	buildStyles()
}

func buildStyles() {
	_, cellFg, cellBorder := GetThemeCellColors()

	Bold = lipgloss.NewStyle().Bold(true)
	Dim = lipgloss.NewStyle().Foreground(ColorMuted)
	Faint = lipgloss.NewStyle().Foreground(ColorMuted).Faint(true)
	Title = lipgloss.NewStyle().Bold(true).Foreground(ColorPrimary)
	Subtitle = lipgloss.NewStyle().Foreground(ColorSecondary)
	Success = lipgloss.NewStyle().Foreground(ColorSuccess)
	Warning = lipgloss.NewStyle().Foreground(ColorWarning)
	Error = lipgloss.NewStyle().Foreground(ColorError)

	UnitValue = lipgloss.NewStyle().
		Bold(true).
		Foreground(cellFg)

	UnitLabel = lipgloss.NewStyle().
		Foreground(ColorSecondary)

	UnitCell = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(cellBorder).
		Padding(0, 2).
		Align(lipgloss.Center)

	GreatestCell = lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(ColorPrimary).
		Foreground(ColorPrimary).
		Padding(0, 3).
		Align(lipgloss.Center)

	Released = lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorSuccess).
		Border(lipgloss.DoubleBorder()).
		BorderForeground(ColorSuccess).
		Padding(1, 4)

	MenuTab = lipgloss.NewStyle().
		Foreground(ColorMuted).
		Padding(0, 1)

	MenuTabActive = lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorPrimary).
		Underline(true).
		Padding(0, 1)

	ListItem = lipgloss.NewStyle().
		PaddingLeft(2)

	SelectedListItem = lipgloss.NewStyle().
		Foreground(ColorPrimary).
		Bold(true)

	Box = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorMuted).
		Padding(0, 1)

	FocusedBox = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorPrimary).
		Padding(0, 1)

	HelpBar = lipgloss.NewStyle().
		Foreground(ColorMuted).
		Padding(1, 0)

	HelpKey = lipgloss.NewStyle().
		Foreground(ColorSecondary).
		Bold(true)

	HelpDesc = lipgloss.NewStyle().
		Foreground(ColorMuted)

	Header = lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorPrimary).
		Padding(0, 1)
}

// ButtonStyle returns the style for a platform button in its brand color.
func ButtonStyle(color string) lipgloss.Style {
	s := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#FFFFFF")).
		Padding(0, 2)
	if color != "" {
		s = s.Background(lipgloss.Color(color))
	}
	return s
}
