package ui

import (
	"strings"

	"github.com/bborn/countdown/internal/countdown"
	"github.com/bborn/countdown/internal/presenter"
	"github.com/charmbracelet/lipgloss"
)

// digitFont draws 0-9 on a 3x5 grid; '#' cells are filled.
var digitFont = [10][5]string{
	{"###", "# #", "# #", "# #", "###"},
	{" # ", "## ", " # ", " # ", "###"},
	{"###", "  #", "###", "#  ", "###"},
	{"###", "  #", "###", "  #", "###"},
	{"# #", "# #", "###", "  #", "  #"},
	{"###", "#  ", "###", "  #", "###"},
	{"###", "#  ", "###", "# #", "###"},
	{"###", "  #", "  #", "  #", "  #"},
	{"###", "# #", "###", "# #", "###"},
	{"###", "# #", "###", "  #", "###"},
}

// minusGlyph is drawn for negative values.
var minusGlyph = [5]string{"   ", "   ", "###", "   ", "   "}

// BigNumber renders s (digits and '-') in the 5-line block font.
// Other characters are skipped.
func BigNumber(s string) string {
	block := IconBlock()
	var rows [5]strings.Builder
	first := true
	for _, r := range s {
		var glyph [5]string
		switch {
		case r >= '0' && r <= '9':
			glyph = digitFont[r-'0']
		case r == '-':
			glyph = minusGlyph
		default:
			continue
		}
		for i := range rows {
			if !first {
				rows[i].WriteString(" ")
			}
			rows[i].WriteString(strings.ReplaceAll(glyph[i], "#", block))
		}
		first = false
	}
	lines := make([]string, len(rows))
	for i := range rows {
		lines[i] = rows[i].String()
	}
	return strings.Join(lines, "\n")
}

// renderCountdown draws the greatest unit large and the other visible units
// in a row beneath it. dim renders everything faint for the blurred
// background behind menus and dialogs.
func renderCountdown(snap presenter.Snapshot, width int, dim bool) string {
	if snap.Reached() {
		banner := Released.Render("Released!")
		if dim {
			banner = Faint.Render("Released!")
		}
		return lipgloss.PlaceHorizontal(width, lipgloss.Center, banner)
	}

	var big string
	var cells []string
	for _, slot := range snap.Slots() {
		if slot.Greatest {
			big = renderGreatest(slot, dim)
			continue
		}
		if !slot.Visible {
			continue
		}
		cells = append(cells, renderCell(slot, dim))
	}

	parts := []string{lipgloss.PlaceHorizontal(width, lipgloss.Center, big)}
	if len(cells) > 0 {
		row := lipgloss.JoinHorizontal(lipgloss.Top, cells...)
		parts = append(parts, lipgloss.PlaceHorizontal(width, lipgloss.Center, row))
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func renderGreatest(slot countdown.Slot, dim bool) string {
	value := BigNumber(countdown.FormatValue(slot.Value))
	label := strings.ToUpper(slot.Label)
	if dim {
		return Faint.Render(lipgloss.JoinVertical(lipgloss.Center, value, "", label))
	}
	return GreatestCell.Render(lipgloss.JoinVertical(lipgloss.Center,
		Title.Render(value),
		"",
		UnitLabel.Render(label),
	))
}

func renderCell(slot countdown.Slot, dim bool) string {
	value := countdown.FormatValue(slot.Value)
	if dim {
		return UnitCell.BorderForeground(ColorMuted).Foreground(ColorMuted).Faint(true).
			Render(lipgloss.JoinVertical(lipgloss.Center, value, slot.Label))
	}
	return UnitCell.Render(lipgloss.JoinVertical(lipgloss.Center,
		UnitValue.Render(value),
		UnitLabel.Render(slot.Label),
	))
}

// PlainCountdown renders a snapshot as a single line without styling, for
// the CLI and logs.
func PlainCountdown(snap presenter.Snapshot) string {
	if snap.Reached() {
		return "Released!"
	}
	var parts []string
	for _, slot := range snap.Slots() {
		if !slot.Visible && !slot.Greatest {
			continue
		}
		parts = append(parts, countdown.FormatValue(slot.Value)+" "+slot.Label)
	}
	return strings.Join(parts, "  ")
}
