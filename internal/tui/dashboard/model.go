// Package dashboard is the interactive session board: a bubbletea
// model that polls the multiplexer on a tick, lists sessions with live
// thumbnails, previews the selected session's panes, and drives
// attach/kill/rename/yank actions from configurable key bindings.
package dashboard

import (
	"context"
	"errors"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/AdamGardelov/paneboard/internal/boardconfig"
	"github.com/AdamGardelov/paneboard/internal/layout"
	"github.com/AdamGardelov/paneboard/internal/mux"
	"github.com/AdamGardelov/paneboard/internal/tui/theme"
)

type viewState int

const (
	stateList viewState = iota
	stateConfirmKill
	stateRename
	stateHelp
)

const (
	snapshotTimeout = 5 * time.Second
	actionTimeout   = 3 * time.Second
	toastDuration   = 3 * time.Second
)

// ConfigReloadMsg asks the dashboard to refresh because a watched
// config file changed. The file watcher delivers it via Program.Send.
type ConfigReloadMsg struct {
	Reason string
}

type refreshTickMsg struct{}

type snapshotMsg struct {
	Snapshot *Snapshot
	Err      error
	Seq      uint64
}

type selectionRefreshMsg struct {
	Version uint64
}

type execDoneMsg struct {
	Err error
}

type toastLevel int

const (
	toastInfo toastLevel = iota
	toastSuccess
	toastWarning
	toastError
)

type toastMessage struct {
	Text  string
	Level toastLevel
	Until time.Time
}

// Options configure New.
type Options struct {
	Client  mux.Client
	Layouts *layout.Loader
	Global  *boardconfig.Loader
	Version string
}

// Model is the dashboard bubbletea model.
type Model struct {
	client  mux.Client
	layouts *layout.Loader
	global  *boardconfig.Loader
	version string

	state     viewState
	width     int
	height    int
	insideMux bool

	list    list.Model
	preview viewport.Model

	settings Settings
	keys     *KeyMap
	snapshot *Snapshot
	selected string

	filtering   bool
	filterInput textinput.Model
	filterQuery string

	renameInput  textinput.Model
	renameTarget string

	confirmKill string

	toast toastMessage

	refreshInFlight  int
	refreshSeq       uint64
	lastAppliedSeq   uint64
	refreshQueued    bool
	selectionVersion uint64

	previewFor string
}

// New builds the dashboard model. Config problems surface here so a
// broken keymap fails the command instead of a blank board.
func New(opts Options) (*Model, error) {
	if opts.Client == nil {
		return nil, errors.New("mux client is required")
	}
	if opts.Layouts == nil {
		return nil, errors.New("layout loader is required")
	}
	cfg, err := opts.Layouts.Load()
	if err != nil {
		return nil, err
	}
	globalCfg, _ := opts.Global.Load()
	settings, err := resolveSettings(cfg, globalCfg)
	if err != nil {
		return nil, err
	}
	keys, err := buildKeyMap(cfg.Keymap)
	if err != nil {
		return nil, err
	}

	m := &Model{
		client:    opts.Client,
		layouts:   opts.Layouts,
		global:    opts.Global,
		version:   opts.Version,
		state:     stateList,
		insideMux: opts.Client.IsInside(),
		settings:  settings,
		keys:      keys,
	}
	m.list = newSessionList()
	m.preview = viewport.New(0, 0)
	m.preview.KeyMap = previewKeyMap(keys)
	m.filterInput = newFilterInput()
	m.renameInput = newRenameInput()
	return m, nil
}

func newSessionList() list.Model {
	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.
		Foreground(theme.TextPrimary).
		BorderLeftForeground(theme.Accent)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.
		Foreground(theme.TextSecondary).
		BorderLeftForeground(theme.Accent)

	l := list.New(nil, delegate, 0, 0)
	l.SetShowTitle(false)
	l.SetShowStatusBar(false)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)
	l.DisableQuitKeybindings()
	return l
}

func previewKeyMap(keys *KeyMap) viewport.KeyMap {
	return viewport.KeyMap{
		Up:   keys.PreviewUp,
		Down: keys.PreviewDown,
	}
}

func newFilterInput() textinput.Model {
	ti := textinput.New()
	ti.Prompt = "/"
	ti.PromptStyle = theme.FilterPrompt
	ti.CharLimit = 64
	ti.Width = 30
	return ti
}

func newRenameInput() textinput.Model {
	ti := textinput.New()
	ti.Prompt = ""
	ti.CharLimit = 80
	ti.Width = 40
	return ti
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.startRefreshCmd(), tickCmd(m.settings.Refresh))
}

// ===== Refresh plumbing =====

func tickCmd(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(time.Time) tea.Msg {
		return refreshTickMsg{}
	})
}

func (m *Model) selectionRefreshCmd() tea.Cmd {
	version := m.selectionVersion
	return tea.Tick(200*time.Millisecond, func(time.Time) tea.Msg {
		return selectionRefreshMsg{Version: version}
	})
}

func (m *Model) beginRefresh() uint64 {
	m.refreshInFlight++
	m.refreshSeq++
	return m.refreshSeq
}

func (m *Model) endRefresh() {
	if m.refreshInFlight > 0 {
		m.refreshInFlight--
	}
}

func (m *Model) refreshCmd(seq uint64) tea.Cmd {
	client := m.client
	layouts := m.layouts
	global := m.global
	selected := m.selected
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), snapshotTimeout)
		defer cancel()
		snap, err := buildSnapshot(ctx, client, layouts, global, selected)
		return snapshotMsg{Snapshot: snap, Err: err, Seq: seq}
	}
}

func (m *Model) startRefreshCmd() tea.Cmd {
	seq := m.beginRefresh()
	return m.refreshCmd(seq)
}

// requestRefreshCmd keeps at most one snapshot in flight; extra
// requests collapse into a single queued rerun.
func (m *Model) requestRefreshCmd() tea.Cmd {
	if m.refreshInFlight > 0 {
		m.refreshQueued = true
		return nil
	}
	return m.startRefreshCmd()
}

func (m *Model) handleRefreshTick() tea.Cmd {
	if m.refreshInFlight == 0 {
		return tea.Batch(m.startRefreshCmd(), tickCmd(m.settings.Refresh))
	}
	return tickCmd(m.settings.Refresh)
}

func (m *Model) applySnapshot(msg snapshotMsg) tea.Cmd {
	m.endRefresh()
	// A newer refresh started after this one; its result supersedes.
	if msg.Seq < m.refreshSeq || msg.Seq < m.lastAppliedSeq {
		return m.drainQueuedRefresh(nil)
	}
	if msg.Err != nil {
		m.setToast("Refresh failed: "+msg.Err.Error(), toastError)
		return m.drainQueuedRefresh(nil)
	}
	m.lastAppliedSeq = msg.Seq
	snap := msg.Snapshot
	m.snapshot = snap
	m.settings = snap.Settings
	if snap.Keys != nil {
		m.keys = snap.Keys
		m.preview.KeyMap = previewKeyMap(snap.Keys)
	}
	m.syncListItems()
	m.syncPreview()
	return m.drainQueuedRefresh(m.selectionChanged())
}

func (m *Model) drainQueuedRefresh(cmd tea.Cmd) tea.Cmd {
	if m.refreshQueued {
		m.refreshQueued = false
		return tea.Batch(cmd, m.startRefreshCmd())
	}
	return cmd
}

// ===== Update =====

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.applySize()
		return m, nil

	case refreshTickMsg:
		return m, m.handleRefreshTick()

	case selectionRefreshMsg:
		if msg.Version != m.selectionVersion {
			return m, nil
		}
		return m, m.requestRefreshCmd()

	case ConfigReloadMsg:
		reason := msg.Reason
		if reason == "" {
			reason = "config changed"
		}
		m.setToast("Reloading: "+reason, toastInfo)
		return m, m.requestRefreshCmd()

	case snapshotMsg:
		return m, m.applySnapshot(msg)

	case execDoneMsg:
		if msg.Err != nil {
			m.setToast(msg.Err.Error(), toastError)
		}
		return m, m.requestRefreshCmd()

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	var cmd tea.Cmd
	switch {
	case m.filtering:
		m.filterInput, cmd = m.filterInput.Update(msg)
	case m.state == stateRename:
		m.renameInput, cmd = m.renameInput.Update(msg)
	default:
		m.list, cmd = m.list.Update(msg)
	}
	return m, cmd
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.state {
	case stateConfirmKill:
		return m, m.updateConfirmKill(msg)
	case stateRename:
		return m, m.updateRename(msg)
	case stateHelp:
		return m, m.updateHelp(msg)
	}
	if m.filtering {
		return m, m.updateFilter(msg)
	}
	return m, m.updateList(msg)
}

func (m *Model) updateList(msg tea.KeyMsg) tea.Cmd {
	keys := m.keys
	switch {
	case key.Matches(msg, keys.Quit):
		return tea.Quit
	case key.Matches(msg, keys.Up):
		m.list.CursorUp()
		return m.selectionChanged()
	case key.Matches(msg, keys.Down):
		m.list.CursorDown()
		return m.selectionChanged()
	case key.Matches(msg, keys.PreviewUp), key.Matches(msg, keys.PreviewDown):
		var cmd tea.Cmd
		m.preview, cmd = m.preview.Update(msg)
		return cmd
	case key.Matches(msg, keys.Filter):
		m.filtering = true
		m.filterInput.SetValue(m.filterQuery)
		m.filterInput.CursorEnd()
		return m.filterInput.Focus()
	case key.Matches(msg, keys.Refresh):
		return m.requestRefreshCmd()
	case key.Matches(msg, keys.Attach):
		return m.attachSelected()
	case key.Matches(msg, keys.NewSession):
		return m.newSessionCmd()
	case key.Matches(msg, keys.Kill):
		return m.openConfirmKill()
	case key.Matches(msg, keys.Rename):
		return m.openRename()
	case key.Matches(msg, keys.Yank):
		return m.yankSelected()
	case key.Matches(msg, keys.Help):
		m.state = stateHelp
		return nil
	}
	return m.forwardToList(msg)
}

// forwardToList lets the list handle anything unbound (home, end, page
// jumps) and picks up any cursor move it caused.
func (m *Model) forwardToList(msg tea.Msg) tea.Cmd {
	before := m.selectedName()
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	if m.selectedName() != before {
		return tea.Batch(cmd, m.selectionChanged())
	}
	return cmd
}

func (m *Model) selectionChanged() tea.Cmd {
	name := m.selectedName()
	if name == "" || name == m.selected {
		return nil
	}
	m.selected = name
	m.selectionVersion++
	return m.selectionRefreshCmd()
}

func (m *Model) selectedName() string {
	if row, ok := m.list.SelectedItem().(SessionRow); ok {
		return row.Info.Name
	}
	return ""
}

func (m *Model) updateFilter(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		m.filtering = false
		m.filterQuery = ""
		m.filterInput.SetValue("")
		m.filterInput.Blur()
		m.syncListItems()
		return m.selectionChanged()
	case "enter":
		m.filtering = false
		m.filterInput.Blur()
		return nil
	}
	var cmd tea.Cmd
	m.filterInput, cmd = m.filterInput.Update(msg)
	if query := m.filterInput.Value(); query != m.filterQuery {
		m.filterQuery = query
		m.syncListItems()
		return tea.Batch(cmd, m.selectionChanged())
	}
	return cmd
}

func (m *Model) openConfirmKill() tea.Cmd {
	name := m.selectedName()
	if name == "" {
		return nil
	}
	m.confirmKill = name
	m.state = stateConfirmKill
	return nil
}

func (m *Model) updateConfirmKill(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "y", "Y", "enter":
		session := m.confirmKill
		m.confirmKill = ""
		m.state = stateList
		if session == "" {
			return nil
		}
		ctx, cancel := context.WithTimeout(context.Background(), actionTimeout)
		defer cancel()
		if err := m.client.KillSession(ctx, session); err != nil {
			m.setToast("Kill failed: "+err.Error(), toastError)
			return nil
		}
		m.setToast("Killed session "+session, toastSuccess)
		return m.requestRefreshCmd()
	case "n", "esc":
		m.confirmKill = ""
		m.state = stateList
		return nil
	}
	return nil
}

func (m *Model) openRename() tea.Cmd {
	name := m.selectedName()
	if name == "" {
		return nil
	}
	m.renameTarget = name
	m.renameInput.SetValue(name)
	m.renameInput.CursorEnd()
	m.state = stateRename
	return m.renameInput.Focus()
}

func (m *Model) updateRename(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		m.state = stateList
		m.renameTarget = ""
		m.renameInput.Blur()
		return nil
	case "enter":
		target := m.renameTarget
		newName := layout.SanitizeSessionName(m.renameInput.Value())
		m.state = stateList
		m.renameTarget = ""
		m.renameInput.Blur()
		if target == "" {
			return nil
		}
		if newName == target {
			m.setToast("Session name unchanged", toastInfo)
			return nil
		}
		ctx, cancel := context.WithTimeout(context.Background(), actionTimeout)
		defer cancel()
		if err := m.client.RenameSession(ctx, target, newName); err != nil {
			m.setToast("Rename failed: "+err.Error(), toastError)
			return nil
		}
		if m.selected == target {
			m.selected = newName
		}
		m.setToast("Renamed session to "+newName, toastSuccess)
		return m.requestRefreshCmd()
	}
	var cmd tea.Cmd
	m.renameInput, cmd = m.renameInput.Update(msg)
	return cmd
}

func (m *Model) updateHelp(msg tea.KeyMsg) tea.Cmd {
	if msg.String() == "esc" || key.Matches(msg, m.keys.Help) || key.Matches(msg, m.keys.Quit) {
		m.state = stateList
	}
	return nil
}

// ===== List/preview sync =====

func (m *Model) syncListItems() {
	rows := m.visibleRows()
	items := make([]list.Item, len(rows))
	for i, row := range rows {
		items[i] = row
	}
	m.list.SetItems(items)
	if idx := indexOfRow(rows, m.selected); idx >= 0 {
		m.list.Select(idx)
	} else if len(rows) > 0 {
		m.list.Select(0)
	}
}

func (m *Model) visibleRows() []SessionRow {
	if m.snapshot == nil {
		return nil
	}
	return filterRows(m.snapshot.Sessions, m.filterQuery)
}

func indexOfRow(rows []SessionRow, name string) int {
	if name == "" {
		return -1
	}
	for i, row := range rows {
		if row.Info.Name == name {
			return i
		}
	}
	return -1
}

func (m *Model) syncPreview() {
	if m.snapshot == nil {
		return
	}
	m.preview.SetContent(renderPreview(m.snapshot, m.preview.Width))
	if m.previewFor != m.snapshot.Selected {
		m.previewFor = m.snapshot.Selected
		m.preview.GotoTop()
	}
}

// ===== Toast =====

func (m *Model) setToast(text string, level toastLevel) {
	m.toast = toastMessage{Text: text, Level: level, Until: time.Now().Add(toastDuration)}
}

func (m *Model) toastView() string {
	if m.toast.Text == "" || time.Now().After(m.toast.Until) {
		return ""
	}
	switch m.toast.Level {
	case toastSuccess:
		return theme.FormatSuccess(m.toast.Text)
	case toastWarning:
		return theme.FormatWarning(m.toast.Text)
	case toastError:
		return theme.FormatError(m.toast.Text)
	default:
		return theme.FormatInfo(m.toast.Text)
	}
}
