package ui

import (
	"fmt"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"github.com/bborn/countdown/internal/config"
	"github.com/bborn/countdown/internal/countdown"
	"github.com/bborn/countdown/internal/db"
	"github.com/bborn/countdown/internal/links"
	"github.com/bborn/countdown/internal/presenter"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
	"github.com/jonboulle/clockwork"
)

// View represents the current view.
type View int

const (
	ViewCountdown View = iota
	ViewMenu
	ViewTrailer
	ViewLinkConfirm
)

// KeyMap defines key bindings.
type KeyMap struct {
	Left          key.Binding
	Right         key.Binding
	Up            key.Binding
	Down          key.Binding
	Enter         key.Binding
	Back          key.Binding
	Menu          key.Binding
	Trailers      key.Binding
	Links         key.Binding
	Options       key.Binding
	Platforms     key.Binding
	ToggleBlur    key.Binding
	ToggleConfirm key.Binding
	Help          key.Binding
	Quit          key.Binding
}

// ShortHelp returns key bindings to show in the mini help.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Left, k.Right, k.Enter, k.Trailers, k.Links, k.Options, k.Platforms, k.Help, k.Quit}
}

// FullHelp returns keybindings for the expanded help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Left, k.Right, k.Up, k.Down},
		{k.Enter, k.Back, k.Menu},
		{k.Trailers, k.Links, k.Options, k.Platforms},
		{k.ToggleBlur, k.ToggleConfirm, k.Help, k.Quit},
	}
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "prev"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "next"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Enter: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "open"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "close"),
		),
		Menu: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "menu"),
		),
		Trailers: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "trailers"),
		),
		Links: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "external links"),
		),
		Options: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "options"),
		),
		Platforms: key.NewBinding(
			key.WithKeys("w"),
			key.WithHelp("w", "wishlist"),
		),
		ToggleBlur: key.NewBinding(
			key.WithKeys("B"),
			key.WithHelp("B", "blur effect"),
		),
		ToggleConfirm: key.NewBinding(
			key.WithKeys("A"),
			key.WithHelp("A", "link alerts"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ApplyKeybindingsConfig overrides bindings in k with those set in cfg.
// A binding with no keys is left alone; an empty help text keeps the
// default description.
func ApplyKeybindingsConfig(k KeyMap, cfg *config.KeybindingsConfig) KeyMap {
	if cfg == nil {
		return k
	}
	apply := func(b *key.Binding, c *config.KeybindingConfig) {
		if c == nil || len(c.Keys) == 0 {
			return
		}
		desc := c.Help
		if desc == "" {
			desc = b.Help().Desc
		}
		*b = key.NewBinding(
			key.WithKeys(c.Keys...),
			key.WithHelp(c.Keys[0], desc),
		)
	}
	apply(&k.Left, cfg.Left)
	apply(&k.Right, cfg.Right)
	apply(&k.Up, cfg.Up)
	apply(&k.Down, cfg.Down)
	apply(&k.Enter, cfg.Enter)
	apply(&k.Back, cfg.Back)
	apply(&k.Menu, cfg.Menu)
	apply(&k.Trailers, cfg.Trailers)
	apply(&k.Links, cfg.Links)
	apply(&k.Options, cfg.Options)
	apply(&k.Platforms, cfg.Platforms)
	apply(&k.ToggleBlur, cfg.ToggleBlur)
	apply(&k.ToggleConfirm, cfg.ToggleConfirm)
	apply(&k.Help, cfg.Help)
	apply(&k.Quit, cfg.Quit)
	return k
}

// VisitStore records and reads back visits. *db.DB satisfies it.
type VisitStore interface {
	RecordVisit(client string, t time.Time) error
	LastVisit(client string) (time.Time, bool, error)
	CountVisits(client string) (int, error)
}

// Config configures an AppModel.
type Config struct {
	Release *config.Release
	// ReleasePath is watched for edits; empty disables hot reload.
	ReleasePath string
	Prefs       *config.Preferences
	Visits      VisitStore
	// Client names the visitor in the visits table.
	Client      string
	Opener      links.Opener
	Keybindings *config.KeybindingsConfig
	Clock       clockwork.Clock
	Logger      *log.Logger
	// Bell is called once when the countdown reaches the release.
	Bell func()
}

// AppModel is the main application model.
type AppModel struct {
	release     *config.Release
	releasePath string
	catalog     *links.Catalog
	prefs       *config.Preferences
	visits      VisitStore
	client      string
	nav         *links.Navigator
	clock       clockwork.Clock
	logger      *log.Logger

	keys     KeyMap
	help     help.Model
	showHelp bool

	currentView  View
	previousView View

	// Live countdown
	presenter *presenter.Presenter
	handle    *presenter.Handle
	snapCh    <-chan presenter.Snapshot
	snapshot  presenter.Snapshot
	loading   bool
	spinner   spinner.Model

	menu    *MenuModel
	trailer *TrailerModel

	// External link confirmation state
	linkConfirm      *huh.Form
	linkConfirmValue bool

	// File watcher for release config changes
	watcher  *fsnotify.Watcher
	reloadCh chan struct{}
	quit     chan struct{}

	lastVisit    time.Time
	hasLastVisit bool
	visitCount   int

	bell func()

	notification string
	notifyUntil  time.Time

	// mu guards the presenter fields against Cleanup from another goroutine
	mu          sync.Mutex
	closed      bool
	cleanupOnce sync.Once

	width  int
	height int
}

// NewAppModel creates a new application model.
func NewAppModel(cfg Config) *AppModel {
	clock := cfg.Clock
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	logger := cfg.Logger
	if logger == nil {
		logger = GetLogger()
	}
	opener := cfg.Opener
	if opener == nil {
		opener = links.BrowserOpener{}
	}
	client := cfg.Client
	if client == "" {
		client = db.LocalClient
	}

	if cfg.Prefs != nil {
		LoadTheme(cfg.Prefs.Theme())
	}

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(ColorPrimary)

	h := help.New()
	h.ShowAll = false

	catalog := links.NewCatalog(cfg.Release)

	var confirm links.ConfirmSetting
	if cfg.Prefs != nil {
		confirm = cfg.Prefs
	}

	return &AppModel{
		release:     cfg.Release,
		releasePath: cfg.ReleasePath,
		catalog:     catalog,
		prefs:       cfg.Prefs,
		visits:      cfg.Visits,
		client:      client,
		nav:         links.NewNavigator(opener, confirm),
		clock:       clock,
		logger:      logger,
		keys:        ApplyKeybindingsConfig(DefaultKeyMap(), cfg.Keybindings),
		help:        h,
		currentView: ViewCountdown,
		loading:     true,
		spinner:     s,
		menu:        NewMenuModel(catalog.Menus()),
		reloadCh:    make(chan struct{}, 1),
		quit:        make(chan struct{}),
		bell:        cfg.Bell,
	}
}

// Init starts the presenter and the release watcher.
func (m *AppModel) Init() tea.Cmd {
	m.startPresenter(m.release.TargetTime())
	m.startReleaseWatcher()

	return tea.Batch(m.spinner.Tick, m.waitForSnapshot(), m.waitForReload(), m.loadLastVisit())
}

// Cleanup stops the presenter and the watcher. It is safe to call more
// than once and from another goroutine.
func (m *AppModel) Cleanup() {
	m.cleanupOnce.Do(func() {
		m.mu.Lock()
		m.closed = true
		m.stopPresenterLocked()
		m.mu.Unlock()
		m.stopReleaseWatcher()
	})
}

// Snapshot returns the last snapshot the view rendered.
func (m *AppModel) Snapshot() presenter.Snapshot {
	return m.snapshot
}

// CurrentView returns the active view.
func (m *AppModel) CurrentView() View {
	return m.currentView
}

func (m *AppModel) startPresenter(target time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return
	}
	m.stopPresenterLocked()

	p := presenter.New(target,
		presenter.WithClock(m.clock),
		presenter.WithLogger(m.logger.WithPrefix("presenter")),
	)
	m.presenter = p
	m.snapCh = p.Subscribe()
	m.handle = p.Start()
}

func (m *AppModel) stopPresenterLocked() {
	if m.handle != nil {
		m.handle.Stop()
	}
	if m.presenter != nil && m.snapCh != nil {
		m.presenter.Unsubscribe(m.snapCh)
	}
}

// Update handles messages.
func (m *AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	// The open dialog gets keys and its own messages; app messages still
	// reach the main switch so reloads and resizes are not lost.
	if m.currentView == ViewLinkConfirm && m.linkConfirm != nil {
		switch msg.(type) {
		case snapshotMsg, releaseChangedMsg, releaseLoadedMsg, lastVisitMsg,
			linkOpenedMsg, spinner.TickMsg, tea.WindowSizeMsg:
		default:
			return m.updateLinkConfirm(msg)
		}
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		// Global keys
		if key.Matches(msg, m.keys.Quit) {
			m.Cleanup()
			return m, tea.Quit
		}
		if key.Matches(msg, m.keys.Help) {
			m.showHelp = !m.showHelp
			m.help.ShowAll = m.showHelp
			return m, nil
		}

		// Route to current view
		switch m.currentView {
		case ViewCountdown:
			return m.updateCountdown(msg)
		case ViewMenu:
			return m.updateMenu(msg)
		case ViewTrailer:
			return m.updateTrailer(msg)
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		if m.trailer != nil {
			m.trailer.SetSize(msg.Width, msg.Height)
		}

	case spinner.TickMsg:
		if m.loading {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}

	case snapshotMsg:
		// Snapshots from a presenter replaced by a reload are stale
		if msg.ch != m.snapCh {
			return m, nil
		}
		released := !m.loading && !m.snapshot.Reached() && msg.snap.Reached()
		m.loading = false
		m.snapshot = msg.snap
		if released {
			m.notify(m.release.Title + " is out!")
			if m.bell != nil {
				m.bell()
			}
		}
		cmds = append(cmds, m.waitForSnapshot())

	case releaseChangedMsg:
		cmds = append(cmds, m.reloadRelease(), m.waitForReload())

	case releaseLoadedMsg:
		if msg.err != nil {
			m.logger.Error("ignoring invalid release config", "path", m.releasePath, "err", msg.err)
			m.notify("Release config invalid: " + msg.err.Error())
			return m, nil
		}
		cmds = append(cmds, m.applyRelease(msg.release))

	case lastVisitMsg:
		m.lastVisit = msg.at
		m.hasLastVisit = msg.ok
		m.visitCount = msg.count

	case linkOpenedMsg:
		if msg.err != nil {
			m.logger.Error("open link", "url", msg.url, "err", msg.err)
			m.notify("Could not open " + msg.url)
		} else if msg.url != "" {
			m.notify("Opened " + msg.url)
		}
	}

	return m, tea.Batch(cmds...)
}

func (m *AppModel) updateCountdown(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Left):
		m.menu.Prev()
	case key.Matches(msg, m.keys.Right):
		m.menu.Next()
	case key.Matches(msg, m.keys.Enter), key.Matches(msg, m.keys.Down), key.Matches(msg, m.keys.Menu):
		m.openMenu("")
	case key.Matches(msg, m.keys.Trailers):
		m.openMenu(links.MenuTrailers)
	case key.Matches(msg, m.keys.Links):
		m.openMenu(links.MenuExternalLinks)
	case key.Matches(msg, m.keys.Options):
		m.openMenu(links.MenuOptions)
	case key.Matches(msg, m.keys.Platforms):
		return m.requestPlatform(0)
	case key.Matches(msg, m.keys.ToggleBlur):
		m.toggle(config.SettingBlurEnabled)
	case key.Matches(msg, m.keys.ToggleConfirm):
		m.toggle(config.SettingConfirmExternalLinks)
	default:
		// 1-9 pick a platform button
		if n, err := strconv.Atoi(msg.String()); err == nil && n >= 1 && n <= 9 {
			return m.requestPlatform(n - 1)
		}
	}
	return m, nil
}

func (m *AppModel) updateMenu(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		m.menu.Close()
		m.currentView = ViewCountdown
	case key.Matches(msg, m.keys.Up):
		m.menu.Up()
	case key.Matches(msg, m.keys.Down):
		m.menu.Down()
	case key.Matches(msg, m.keys.Left):
		m.menu.Prev()
	case key.Matches(msg, m.keys.Right):
		m.menu.Next()
	case key.Matches(msg, m.keys.Trailers):
		m.menu.Focus(links.MenuTrailers)
	case key.Matches(msg, m.keys.Links):
		m.menu.Focus(links.MenuExternalLinks)
	case key.Matches(msg, m.keys.Options):
		m.menu.Focus(links.MenuOptions)
	case key.Matches(msg, m.keys.ToggleBlur):
		m.toggle(config.SettingBlurEnabled)
	case key.Matches(msg, m.keys.ToggleConfirm):
		m.toggle(config.SettingConfirmExternalLinks)
	case key.Matches(msg, m.keys.Enter):
		item, ok := m.menu.Selected()
		if !ok {
			return m, nil
		}
		return m.selectItem(item)
	}
	return m, nil
}

func (m *AppModel) updateTrailer(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		m.trailer = nil
		m.currentView = ViewMenu
		return m, nil
	case key.Matches(msg, m.keys.Enter):
		return m.requestLink(m.trailer.Trailer().URL)
	}
	var cmd tea.Cmd
	m.trailer, cmd = m.trailer.Update(msg)
	return m, cmd
}

func (m *AppModel) openMenu(name string) {
	if name != "" {
		m.menu.Focus(name)
	}
	m.menu.Open()
	m.currentView = ViewMenu
}

func (m *AppModel) selectItem(item links.Item) (tea.Model, tea.Cmd) {
	switch item.Kind {
	case links.KindTrailer:
		if item.Trailer < 0 || item.Trailer >= len(m.release.Trailers) {
			return m, nil
		}
		m.trailer = NewTrailerModel(m.release.Trailers[item.Trailer], m.clock.Now(), m.width, m.height)
		m.currentView = ViewTrailer
		return m, nil
	case links.KindToggle:
		m.toggle(item.Setting)
		return m, nil
	case links.KindLink:
		return m.requestLink(item.URL)
	}
	return m, nil
}

func (m *AppModel) requestPlatform(i int) (tea.Model, tea.Cmd) {
	buttons := m.catalog.PlatformButtons()
	if i < 0 || i >= len(buttons) {
		return m, nil
	}
	return m.requestLink(buttons[i].URL)
}

// requestLink opens url, going through the confirmation dialog when the
// user asked to be warned about external links.
func (m *AppModel) requestLink(url string) (tea.Model, tea.Cmd) {
	needsConfirm, err := m.nav.Request(url)
	if needsConfirm {
		return m.showLinkConfirm()
	}
	return m, func() tea.Msg {
		if err == nil && (url == "" || url == links.Fallback) {
			return nil
		}
		return linkOpenedMsg{url: url, err: err}
	}
}

func (m *AppModel) toggle(setting string) {
	if m.prefs == nil {
		return
	}
	v, err := m.prefs.Toggle(setting)
	if err != nil {
		m.logger.Error("toggle preference", "key", setting, "err", err)
		m.notify("Could not save preference")
		return
	}
	state := "off"
	if v {
		state = "on"
	}
	m.notify(settingLabel(setting) + " " + state)
}

func settingLabel(setting string) string {
	switch setting {
	case config.SettingBlurEnabled:
		return "Blur effect"
	case config.SettingConfirmExternalLinks:
		return "External link alerts"
	}
	return setting
}

func (m *AppModel) blurEnabled() bool {
	return m.prefs != nil && m.prefs.BlurEnabled()
}

func (m *AppModel) toggleValues() map[string]bool {
	if m.prefs == nil {
		return nil
	}
	return m.prefs.All()
}

func (m *AppModel) notify(text string) {
	m.notification = text
	m.notifyUntil = m.clock.Now().Add(3 * time.Second)
}

func (m *AppModel) showLinkConfirm() (tea.Model, tea.Cmd) {
	m.linkConfirmValue = false
	modalWidth := min(60, max(m.width-8, 30))
	m.linkConfirm = huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Key("open").
				Title("External Link Navigation").
				Description(fmt.Sprintf("You are about to leave for\n%s\n\nContinue?", m.nav.Pending())).
				Affirmative("Open").
				Negative("Cancel").
				Value(&m.linkConfirmValue),
		),
	).WithTheme(huh.ThemeDracula()).
		WithWidth(modalWidth - 6).
		WithShowHelp(true)
	m.previousView = m.currentView
	m.currentView = ViewLinkConfirm
	return m, m.linkConfirm.Init()
}

func (m *AppModel) updateLinkConfirm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			return m.resolveLinkConfirm(false)
		case "ctrl+c":
			m.Cleanup()
			return m, tea.Quit
		}
	}

	form, cmd := m.linkConfirm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.linkConfirm = f
	}

	switch m.linkConfirm.State {
	case huh.StateCompleted:
		return m.resolveLinkConfirm(m.linkConfirmValue)
	case huh.StateAborted:
		return m.resolveLinkConfirm(false)
	}

	return m, cmd
}

func (m *AppModel) resolveLinkConfirm(open bool) (tea.Model, tea.Cmd) {
	m.linkConfirm = nil
	m.currentView = m.previousView
	if !open {
		m.nav.Cancel()
		return m, nil
	}
	url := m.nav.Pending()
	err := m.nav.Confirm()
	return m, func() tea.Msg {
		return linkOpenedMsg{url: url, err: err}
	}
}

// View renders the current view.
func (m *AppModel) View() string {
	// Wait for window size
	if m.width == 0 || m.height == 0 {
		return "Initializing..."
	}

	if m.loading {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			m.spinner.View()+" Loading countdown...")
	}

	// Menus and dialogs push the countdown into the background
	dim := m.currentView != ViewCountdown && m.blurEnabled()

	sections := []string{
		m.renderHeading(dim),
		renderCountdown(m.snapshot, m.width, dim),
		m.renderPlatforms(dim),
		lipgloss.PlaceHorizontal(m.width, lipgloss.Center, m.menu.Bar(dim)),
	}

	switch m.currentView {
	case ViewMenu:
		sections = append(sections, m.menu.List(m.width, m.toggleValues()))
	case ViewTrailer:
		if m.trailer != nil {
			sections = append(sections, m.trailer.View())
		}
	case ViewLinkConfirm:
		sections = append(sections, m.viewLinkConfirm())
	}

	sections = append(sections, m.renderStatus(), m.renderHelp())
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m *AppModel) renderHeading(dim bool) string {
	title := Header.Render(m.release.Title)
	date := Subtitle.Render(m.release.DateLabel)
	if dim {
		title = Faint.Render(m.release.Title)
		date = Faint.Render(m.release.DateLabel)
	}
	return lipgloss.PlaceHorizontal(m.width, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center, "", title, date, ""))
}

func (m *AppModel) renderPlatforms(dim bool) string {
	buttons := m.catalog.PlatformButtons()
	if len(buttons) == 0 {
		return ""
	}
	rendered := make([]string, 0, len(buttons))
	for i, b := range buttons {
		label := fmt.Sprintf("%d %s", i+1, b.Platform)
		if dim {
			rendered = append(rendered, Faint.Render(" "+label+" "))
		} else {
			rendered = append(rendered, ButtonStyle(b.Color).Render(label))
		}
		rendered = append(rendered, " ")
	}
	row := lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
	return lipgloss.PlaceHorizontal(m.width, lipgloss.Center, "\n"+row+"\n")
}

func (m *AppModel) renderStatus() string {
	var parts []string
	if m.hasLastVisit {
		status := "Last visit " + countdown.RelativeElapsed(m.lastVisit, m.clock.Now())
		if m.visitCount > 1 {
			status += fmt.Sprintf(" (visit #%d)", m.visitCount)
		}
		parts = append(parts, Dim.Render(status))
	}
	if m.notification != "" && m.clock.Now().Before(m.notifyUntil) {
		parts = append(parts, Warning.Render(m.notification))
	}
	if len(parts) == 0 {
		return ""
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, joinWith(parts, Dim.Render("  ·  "))...)
}

func joinWith(parts []string, sep string) []string {
	out := make([]string, 0, len(parts)*2)
	for i, p := range parts {
		if i > 0 {
			out = append(out, sep)
		}
		out = append(out, p)
	}
	return out
}

func (m *AppModel) viewLinkConfirm() string {
	if m.linkConfirm == nil {
		return ""
	}

	header := lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorWarning).
		MarginBottom(1).
		Render(IconExternal() + " Leaving the countdown")

	modalWidth := min(60, max(m.width-8, 30))
	modalBox := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorWarning).
		Padding(1, 2).
		Width(modalWidth)

	modalContent := modalBox.Render(lipgloss.JoinVertical(lipgloss.Center, header, m.linkConfirm.View()))
	return lipgloss.PlaceHorizontal(m.width, lipgloss.Center, modalContent)
}

func (m *AppModel) renderHelp() string {
	return HelpBar.Render(m.help.View(m.keys))
}

// Messages
type snapshotMsg struct {
	ch   <-chan presenter.Snapshot
	snap presenter.Snapshot
}

type releaseChangedMsg struct{}

type releaseLoadedMsg struct {
	release *config.Release
	err     error
}

type lastVisitMsg struct {
	at    time.Time
	ok    bool
	count int
}

type linkOpenedMsg struct {
	url string
	err error
}

// waitForSnapshot returns a command that waits for the next snapshot.
func (m *AppModel) waitForSnapshot() tea.Cmd {
	ch := m.snapCh
	return func() tea.Msg {
		if ch == nil {
			return nil
		}
		snap, ok := <-ch
		if !ok {
			return nil
		}
		return snapshotMsg{ch: ch, snap: snap}
	}
}

// loadLastVisit reads the previous visit and records this one.
func (m *AppModel) loadLastVisit() tea.Cmd {
	if m.visits == nil {
		return nil
	}
	now := m.clock.Now()
	return func() tea.Msg {
		last, ok, err := m.visits.LastVisit(m.client)
		if err != nil {
			m.logger.Error("read last visit", "err", err)
		}
		if err := m.visits.RecordVisit(m.client, now); err != nil {
			m.logger.Error("record visit", "err", err)
		}
		count, err := m.visits.CountVisits(m.client)
		if err != nil {
			m.logger.Error("count visits", "err", err)
		}
		return lastVisitMsg{at: last, ok: ok, count: count}
	}
}

func (m *AppModel) reloadRelease() tea.Cmd {
	path := m.releasePath
	return func() tea.Msg {
		r, err := config.LoadRelease(path)
		return releaseLoadedMsg{release: r, err: err}
	}
}

// applyRelease swaps in a new release and restarts the countdown against
// its target. The old presenter is stopped before the new one starts.
func (m *AppModel) applyRelease(r *config.Release) tea.Cmd {
	m.release = r
	m.catalog = links.NewCatalog(r)
	m.menu.SetMenus(m.catalog.Menus())
	if m.trailer != nil {
		m.trailer = nil
		if m.currentView == ViewTrailer {
			m.currentView = ViewMenu
		}
		if m.previousView == ViewTrailer {
			m.previousView = ViewMenu
		}
	}

	m.startPresenter(r.TargetTime())
	m.logger.Info("release config reloaded", "target", r.TargetTime())
	m.notify("Release config reloaded")
	return m.waitForSnapshot()
}

// startReleaseWatcher watches the release config's directory so edits that
// replace the file are seen too.
func (m *AppModel) startReleaseWatcher() {
	if m.releasePath == "" {
		return
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		m.logger.Warn("release watcher unavailable", "err", err)
		return
	}
	if err := watcher.Add(filepath.Dir(m.releasePath)); err != nil {
		m.logger.Debug("not watching release config", "path", m.releasePath, "err", err)
		watcher.Close()
		return
	}
	m.watcher = watcher

	target := filepath.Clean(m.releasePath)
	reloadCh := m.reloadCh
	quit := m.quit

	// Start goroutine to forward fsnotify events to the channel
	go func() {
		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != target {
					continue
				}
				if event.Op&(fsnotify.Write|fsnotify.Create) != 0 {
					// Non-blocking send to debounce rapid changes
					select {
					case reloadCh <- struct{}{}:
					default:
					}
				}
			case _, ok := <-watcher.Errors:
				if !ok {
					return
				}
			case <-quit:
				return
			}
		}
	}()
}

// waitForReload returns a command that waits for release config changes.
func (m *AppModel) waitForReload() tea.Cmd {
	ch, quit := m.reloadCh, m.quit
	return func() tea.Msg {
		select {
		case <-ch:
			return releaseChangedMsg{}
		case <-quit:
			return nil
		}
	}
}

// stopReleaseWatcher stops the file watcher and releases waiting commands.
func (m *AppModel) stopReleaseWatcher() {
	close(m.quit)
	if m.watcher != nil {
		m.watcher.Close()
	}
}
