// Package tui implements the qaeval terminal interface: a paginated question
// table with inline scoring, category editing, full-text viewing and upload.
package tui

import (
	tea "charm.land/bubbletea/v2"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/colonyops/qaeval/internal/core/config"
	"github.com/colonyops/qaeval/internal/core/notify"
	"github.com/colonyops/qaeval/internal/tui/components"
	tuinotify "github.com/colonyops/qaeval/internal/tui/notify"
	"github.com/colonyops/qaeval/internal/tui/views/questions"
)

// UIState is the root model's modal state. The questions view tracks its
// own picker and viewer modals.
type UIState int

const (
	stateNormal UIState = iota
	stateShowingHelp
	stateShowingNotifications
	stateUploading
	stateShowingUploadReport
)

// Backend is everything the TUI needs from the evaluation service.
type Backend interface {
	questions.Service
	Uploader
}

// Options configures the TUI.
type Options struct {
	Backend Backend
	Store   notify.Store // notification history; nil disables persistence
	Build   BuildInfo
}

// Model is the main Bubble Tea model for the TUI.
type Model struct {
	cfg       *config.Config
	backend   Backend
	build     BuildInfo
	keys      KeyMap
	questions questions.View
	state     UIState
	logger    zerolog.Logger

	notifyBus *tuinotify.Bus
	notifyBuf *NotificationBuffer
	toasts    *ToastController
	toastView *ToastView

	helpDialog *components.HelpDialog
	infoDialog *components.InfoDialog
	upload     *UploadModal

	width    int
	height   int
	quitting bool
}

// New creates the root model.
func New(cfg *config.Config, opts Options) Model {
	bus := tuinotify.NewBus(opts.Store)
	buf := NewNotificationBuffer()
	bus.Subscribe(buf.Push)

	toasts := NewToastController()

	qv := questions.New(opts.Backend, bus)
	qv.SetPreviewWidth(cfg.TUI.PreviewWidth)

	return Model{
		cfg:       cfg,
		backend:   opts.Backend,
		build:     opts.Build,
		keys:      DefaultKeyMap(),
		questions: qv,
		logger:    log.With().Str("component", "tui").Logger(),
		notifyBus: bus,
		notifyBuf: buf,
		toasts:    toasts,
		toastView: NewToastView(toasts),
	}
}

// Init loads the first page and starts listening for notifications.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.questions.Init(),
		m.notifyBuf.WaitForSignal(),
	)
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleWindowSize(msg)
	case drainNotificationsMsg:
		return m.handleDrainNotifications()
	case toastTickMsg:
		return m.handleToastTick()
	case uploadDoneMsg:
		return m.handleUploadDone(msg)
	case tea.KeyPressMsg:
		return m.handleKey(msg)
	}

	if m.state == stateUploading {
		_, cmd := m.upload.Update(msg)
		qcmd := m.forward(msg)
		return m, tea.Batch(cmd, qcmd)
	}

	return m, m.forward(msg)
}

// forward passes msg to the questions view.
func (m *Model) forward(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	m.questions, cmd = m.questions.Update(msg)
	return cmd
}

// ensureToastTick starts the toast timer if toasts are showing and it is
// not already running.
func (m *Model) ensureToastTick() tea.Cmd {
	if !m.toasts.HasToasts() || m.toasts.Ticking() {
		return nil
	}
	m.toasts.SetTicking(true)
	return scheduleToastTick()
}
