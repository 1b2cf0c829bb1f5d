package ui

import (
	"strings"
	"time"

	"github.com/bborn/countdown/internal/config"
	"github.com/bborn/countdown/internal/countdown"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
)

// TrailerModel shows one trailer's details.
type TrailerModel struct {
	trailer  config.Trailer
	now      time.Time
	viewport viewport.Model
	width    int
	height   int
	ready    bool
}

// NewTrailerModel creates a trailer detail view. now anchors the elapsed
// time since upload.
func NewTrailerModel(t config.Trailer, now time.Time, width, height int) *TrailerModel {
	m := &TrailerModel{
		trailer: t,
		now:     now,
		width:   width,
		height:  height,
	}
	m.initViewport()
	return m
}

// Trailer returns the trailer being shown.
func (m *TrailerModel) Trailer() config.Trailer {
	return m.trailer
}

func (m *TrailerModel) initViewport() {
	m.viewport = viewport.New(max(m.width-6, 10), max(m.height/3, 3))
	m.viewport.SetContent(m.renderContent())
	m.ready = true
}

// SetSize updates the viewport size.
func (m *TrailerModel) SetSize(width, height int) {
	m.width = width
	m.height = height
	if m.ready {
		m.viewport.Width = max(width-6, 10)
		m.viewport.Height = max(height/3, 3)
		m.viewport.SetContent(m.renderContent())
	}
}

// Update scrolls the description.
func (m *TrailerModel) Update(msg tea.KeyMsg) (*TrailerModel, tea.Cmd) {
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// View renders the trailer panel.
func (m *TrailerModel) View() string {
	if !m.ready {
		return "\n  Loading..."
	}

	box := FocusedBox
	if m.width > 4 {
		box = box.Width(m.width - 4)
	}
	return box.Render(lipgloss.JoinVertical(lipgloss.Left,
		m.renderHeader(),
		m.viewport.View(),
	))
}

func (m *TrailerModel) renderHeader() string {
	t := m.trailer
	title := Title.Render(t.Title)
	url := Dim.Render(t.URL)

	var uploaded string
	if at, err := t.Uploaded(); err == nil && t.UploadDate != "" {
		uploaded = Subtitle.Render("Uploaded "+countdown.RelativeElapsed(at, m.now)) +
			Dim.Render(" ("+countdown.AbsoluteElapsed(at, m.now)+")")
	}

	return lipgloss.JoinVertical(lipgloss.Left, title, url, uploaded, "")
}

func (m *TrailerModel) renderContent() string {
	body := strings.TrimSpace(m.trailer.Description)
	if body == "" {
		return Dim.Render("No description.")
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dark"),
		glamour.WithWordWrap(max(m.width-10, 20)),
	)
	if err != nil {
		return body
	}
	rendered, err := r.Render(body)
	if err != nil {
		return body
	}
	return strings.TrimSpace(rendered)
}
