package ui

import (
	"context"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/johanforsgren/profilexport/internal/domain"
	"github.com/johanforsgren/profilexport/internal/logger"
	"github.com/johanforsgren/profilexport/internal/remote"
	"github.com/johanforsgren/profilexport/internal/selection"
	"github.com/johanforsgren/profilexport/internal/ui/components"
	"github.com/johanforsgren/profilexport/internal/ui/views"
)

type ViewState int

const (
	ViewHome ViewState = iota
	ViewSelection
)

func (s ViewState) String() string {
	switch s {
	case ViewSelection:
		return "Select Profiles"
	default:
		return "Home"
	}
}

type Options struct {
	Endpoint      string
	OutputDir     string
	Authenticated bool
}

type Model struct {
	width           int
	height          int
	inFlight        int
	topBar          *components.TopBarModel
	statusBar       *components.StatusBarModel
	commandBar      *components.CommandBarModel
	homeView        *views.HomeViewModel
	selectionView   *views.SelectionViewModel
	logsView        *views.LogsViewModel
	fetcher         domain.Fetcher
	session         *selection.Session
	selector        *selection.Selector
	exporter        *selection.Exporter
	ctx             context.Context
	commandRegistry *CommandRegistry
}

func NewModel(ctx context.Context, fetcher domain.Fetcher, sink domain.ArtifactSink, opts Options) Model {
	session := selection.NewSession()
	statusBar := components.NewStatusBar()
	selectionView := views.NewSelectionView(session.IsChecked)

	topBar := components.NewTopBar()
	topBar.SetServer(opts.Endpoint, opts.Authenticated)

	m := Model{
		topBar:          topBar,
		statusBar:       statusBar,
		commandBar:      components.NewCommandBar(),
		homeView:        views.NewHomeView(opts.Endpoint, opts.OutputDir),
		selectionView:   selectionView,
		logsView:        views.NewLogsView(),
		fetcher:         fetcher,
		session:         session,
		selector:        selection.NewSelector(session, selectionView, statusBar),
		exporter:        selection.NewExporter(session, sink, selectionView, statusBar),
		ctx:             ctx,
		commandRegistry: NewCommandRegistry(),
	}
	m.syncChrome()
	return m
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) state() ViewState {
	if m.selectionView.IsOpen() {
		return ViewSelection
	}
	return ViewHome
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.update(msg)
	next.syncChrome()
	return next, cmd
}

func (m Model) update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.topBar.SetWidth(msg.Width)
		m.statusBar.SetWidth(msg.Width)
		m.commandBar.SetWidth(msg.Width)
		m.homeView.SetSize(msg.Width, msg.Height)
		m.selectionView.SetSize(msg.Width, msg.Height)
		m.logsView.SetSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		if m.commandBar.IsActive() {
			switch msg.String() {
			case "enter":
				return m.handleCommand()
			case "esc":
				m.commandBar.Deactivate()
				return m, nil
			default:
				return m, m.commandBar.Update(msg)
			}
		}

		if m.logsView.IsActive() {
			switch msg.String() {
			case "esc", "q", "L":
				m.logsView.Deactivate()
				return m, nil
			default:
				return m, m.logsView.Update(msg)
			}
		}

		if next, cmd, handled := m.commandRegistry.HandleKey(m, msg); handled {
			return next, cmd
		}

		if m.state() == ViewSelection {
			return m, m.selectionView.Update(msg)
		}
		return m, nil

	case spinner.TickMsg:
		return m, m.homeView.Update(msg)

	case ProfilesFetchedMsg:
		m = m.fetchDone()
		if err := m.selector.Present(msg.profiles); err != nil {
			logger.LogWarn("Fetched profile list not presented: %v", err)
		}
		return m, nil

	case FetchFailedMsg:
		m = m.fetchDone()
		logger.LogWarn("UI: Fetch failed: %s", remote.ExtractErrorMessage(msg.err))
		m.selector.FetchFailed(msg.err)
		return m, nil
	}

	return m, nil
}

func (m Model) View() string {
	if m.width == 0 {
		return MutedStyle.Render("Loading...")
	}

	var content string
	switch {
	case m.logsView.IsActive():
		content = m.logsView.View()
	case m.state() == ViewSelection:
		content = m.selectionView.View()
	default:
		content = m.homeView.View()
	}

	topBar := m.topBar.View()
	if commandBar := m.commandBar.View(); commandBar != "" {
		return topBar + "\n" + content + "\n" + commandBar
	}

	return topBar + "\n" + content + "\n" + m.statusBar.View()
}

// requestProfiles issues a fetch. Every result is presented in arrival
// order, so the last one to arrive wins.
func (m Model) requestProfiles() (Model, tea.Cmd) {
	m.inFlight++
	logger.Log("UI: Requesting saved profiles (%d in flight)", m.inFlight)

	cmds := []tea.Cmd{m.fetchProfiles()}
	if m.inFlight == 1 {
		cmds = append(cmds, m.homeView.StartLoading())
	}
	return m, tea.Batch(cmds...)
}

func (m Model) fetchDone() Model {
	if m.inFlight > 0 {
		m.inFlight--
	}
	if m.inFlight == 0 {
		m.homeView.StopLoading()
	}
	return m
}

func (m Model) fetchProfiles() tea.Cmd {
	fetcher, ctx := m.fetcher, m.ctx
	return func() tea.Msg {
		profiles, err := fetcher.FetchProfiles(ctx)
		if err != nil {
			return FetchFailedMsg{err: err}
		}
		return ProfilesFetchedMsg{profiles: profiles}
	}
}

func (m Model) exportSelected() (Model, tea.Cmd) {
	if !m.selectionView.IsOpen() {
		logger.LogError("EXPORT", "ui", domain.ErrSurfaceClosed)
		return m, nil
	}

	artifact, err := m.exporter.ExportSelected(m.ctx)
	if err != nil {
		logger.Log("UI: Export not completed: %v", err)
		return m, nil
	}
	logger.Log("UI: Exported %d profile(s) to %s", artifact.Count, artifact.Path)
	return m, nil
}

func (m Model) syncChrome() {
	state := m.state()
	view := state.String()
	if m.logsView.IsActive() {
		view = "Logs"
	}
	m.topBar.SetView(view)
	m.topBar.SetSnapshot(m.session.Generation(), m.session.Len(), len(m.session.Checked()))
	m.topBar.SetShortcuts(m.commandRegistry.GetContextualShortcuts(state))
}

type ProfilesFetchedMsg struct {
	profiles domain.ProfileList
}

type FetchFailedMsg struct {
	err error
}
