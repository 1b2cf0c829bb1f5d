package ui

import (
	"strings"

	"github.com/bborn/countdown/internal/links"
	"github.com/charmbracelet/lipgloss"
)

// MenuModel is the link menu bar and the item list of the open menu.
type MenuModel struct {
	menus  []links.Menu
	active int
	cursor int
	open   bool
}

// NewMenuModel creates a menu bar over menus.
func NewMenuModel(menus []links.Menu) *MenuModel {
	return &MenuModel{menus: menus}
}

// SetMenus replaces the menus, keeping the active tab when it still exists.
func (m *MenuModel) SetMenus(menus []links.Menu) {
	name := m.ActiveName()
	m.menus = menus
	m.active = 0
	m.Focus(name)
	m.clampCursor()
}

// ActiveName returns the name of the focused menu.
func (m *MenuModel) ActiveName() string {
	if len(m.menus) == 0 {
		return ""
	}
	return m.menus[m.active].Name
}

// Focus moves the bar to the menu called name.
func (m *MenuModel) Focus(name string) bool {
	for i, menu := range m.menus {
		if menu.Name == name {
			if i != m.active {
				m.active = i
				m.cursor = m.firstSelectable()
			}
			return true
		}
	}
	return false
}

// IsOpen reports whether the item list is showing.
func (m *MenuModel) IsOpen() bool {
	return m.open
}

// Open shows the item list of the focused menu.
func (m *MenuModel) Open() {
	if len(m.menus) == 0 {
		return
	}
	m.open = true
	m.cursor = m.firstSelectable()
}

// Close hides the item list.
func (m *MenuModel) Close() {
	m.open = false
}

// Next focuses the menu to the right, wrapping around.
func (m *MenuModel) Next() {
	if len(m.menus) == 0 {
		return
	}
	m.active = (m.active + 1) % len(m.menus)
	m.cursor = m.firstSelectable()
}

// Prev focuses the menu to the left, wrapping around.
func (m *MenuModel) Prev() {
	if len(m.menus) == 0 {
		return
	}
	m.active = (m.active - 1 + len(m.menus)) % len(m.menus)
	m.cursor = m.firstSelectable()
}

// Up moves the cursor to the previous selectable item.
func (m *MenuModel) Up() {
	items := m.items()
	for i := m.cursor - 1; i >= 0; i-- {
		if items[i].Selectable() {
			m.cursor = i
			return
		}
	}
}

// Down moves the cursor to the next selectable item.
func (m *MenuModel) Down() {
	items := m.items()
	for i := m.cursor + 1; i < len(items); i++ {
		if items[i].Selectable() {
			m.cursor = i
			return
		}
	}
}

// Selected returns the item under the cursor.
func (m *MenuModel) Selected() (links.Item, bool) {
	items := m.items()
	if m.cursor < 0 || m.cursor >= len(items) || !items[m.cursor].Selectable() {
		return links.Item{}, false
	}
	return items[m.cursor], true
}

func (m *MenuModel) items() []links.Item {
	if len(m.menus) == 0 {
		return nil
	}
	return m.menus[m.active].Items
}

func (m *MenuModel) firstSelectable() int {
	for i, item := range m.items() {
		if item.Selectable() {
			return i
		}
	}
	return 0
}

func (m *MenuModel) clampCursor() {
	items := m.items()
	if m.cursor >= len(items) || (m.cursor >= 0 && m.cursor < len(items) && !items[m.cursor].Selectable()) {
		m.cursor = m.firstSelectable()
	}
}

// Bar renders the menu tabs.
func (m *MenuModel) Bar(dim bool) string {
	tabs := make([]string, 0, len(m.menus))
	for i, menu := range m.menus {
		switch {
		case dim:
			tabs = append(tabs, Faint.Render(" "+menu.Name+" "))
		case i == m.active:
			tabs = append(tabs, MenuTabActive.Render(menu.Name))
		default:
			tabs = append(tabs, MenuTab.Render(menu.Name))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

// List renders the open menu's items. toggles holds the current value of
// every toggle item's setting.
func (m *MenuModel) List(width int, toggles map[string]bool) string {
	var b strings.Builder
	for i, item := range m.items() {
		if i > 0 {
			b.WriteString("\n")
		}
		if item.Kind == links.KindSeparator {
			b.WriteString(Dim.Render(strings.Repeat(IconSeparator(), max(width-6, 4))))
			continue
		}

		label := item.Label
		switch item.Kind {
		case links.KindToggle:
			mark := IconCross()
			if toggles[item.Setting] {
				mark = IconCheck()
			}
			label = "[" + mark + "] " + label
		case links.KindLink:
			label += " " + IconExternal()
		}

		if item.Color != "" && i != m.cursor {
			label = lipgloss.NewStyle().Foreground(lipgloss.Color(item.Color)).Render(label)
		}

		if i == m.cursor {
			b.WriteString(SelectedListItem.Render(IconPointer() + " " + label))
		} else {
			b.WriteString(ListItem.Render(label))
		}
	}

	box := FocusedBox
	if width > 4 {
		box = box.Width(width - 4)
	}
	header := Bold.Render(m.ActiveName())
	return box.Render(lipgloss.JoinVertical(lipgloss.Left, header, "", b.String()))
}
