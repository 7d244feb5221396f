// Copyright (c) 2025 ArogyaAI Project
// SPDX-License-Identifier: AGPL-3.0-or-later

// model.go - Bubble Tea model for the chat screen.
package chat

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/time/rate"

	"github.com/arogyaai/arogya-tui/internal/config"
	"github.com/arogyaai/arogya-tui/internal/gateway"
	"github.com/arogyaai/arogya-tui/internal/model"
	"github.com/arogyaai/arogya-tui/internal/session"
	"github.com/arogyaai/arogya-tui/internal/ui/components"
	"github.com/arogyaai/arogya-tui/internal/ui/styles"
)

// =============================================================================
// CHAT STATE
// =============================================================================

// State represents the current state of the chat view.
type State int

const (
	StateReady   State = iota // Ready for input
	StateSending              // Query in flight
	StateError                // Showing an error
)

// =============================================================================
// CHAT MODEL
// =============================================================================

// Model is the Bubble Tea model for the chat view.
type Model struct {
	// State
	state State

	// Styling
	theme *styles.Theme

	// Dimensions
	width  int
	height int
	ready  bool

	// Conversation
	ctrl     *session.Controller
	snapshot model.Snapshot
	updates  chan model.Snapshot

	// Backend
	gw        *gateway.Client
	cancelMgr *cancelManager // Pointer to avoid copying mutex during Bubble Tea updates
	appCtx    context.Context

	// Health polling throttle
	healthLimiter *rate.Limiter
	pollInterval  time.Duration

	// UI components
	viewport  viewport.Model
	input     textinput.Model
	spinner   spinner.Model
	statusBar *components.StatusBar
	toasts    *components.ToastManager
	picker    *components.ExamplePicker

	// Rendering
	markdown    bool
	showWelcome bool
	version     string
}

// New creates the chat model wired to a controller and gateway client.
func New(ctrl *session.Controller, gw *gateway.Client, cfg *config.Config, version string) *Model {
	theme := styles.NewThemeWithMode(cfg.UI.Theme)

	input := textinput.New()
	input.Placeholder = "Ask about a disease, symptom, or treatment…"
	input.CharLimit = gateway.MaxQueryLength
	input.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = theme.Spinner

	appCtx, cancel := context.WithCancel(context.Background())
	cancelMgr := newCancelManager()
	cancelMgr.setCancelFunc(cancel)

	pollInterval := time.Duration(cfg.UI.HealthPollSecs) * time.Second
	if pollInterval <= 0 {
		pollInterval = 30 * time.Second
	}

	m := &Model{
		state:         StateReady,
		theme:         theme,
		ctrl:          ctrl,
		snapshot:      ctrl.Snapshot(),
		updates:       make(chan model.Snapshot, 64),
		gw:            gw,
		cancelMgr:     cancelMgr,
		appCtx:        appCtx,
		healthLimiter: rate.NewLimiter(rate.Every(pollInterval), 1),
		pollInterval:  pollInterval,
		input:         input,
		spinner:       sp,
		statusBar:     components.NewStatusBar(),
		toasts:        components.NewToastManager(),
		picker:        components.NewExamplePicker(),
		markdown:      cfg.UI.Markdown,
		showWelcome:   cfg.UI.ShowWelcome,
		version:       version,
	}

	ctrl.SetUpdateCallback(m.pushUpdate)
	return m
}

// pushUpdate hands a snapshot to the Bubble Tea loop. When the channel is
// full the oldest pending snapshot is dropped; only the latest state matters
// for rendering.
func (m *Model) pushUpdate(snap model.Snapshot) {
	for {
		select {
		case m.updates <- snap:
			return
		default:
			select {
			case <-m.updates:
			default:
			}
		}
	}
}

// =============================================================================
// INIT
// =============================================================================

// Init starts input blinking, the spinner, the snapshot pump, and the first
// backend probes.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(
		textinput.Blink,
		m.spinner.Tick,
		m.waitForUpdate(),
		m.probeHealth(),
		m.loadCatalog(),
		m.healthTick(),
	)
}

// waitForUpdate blocks on the snapshot channel.
func (m *Model) waitForUpdate() tea.Cmd {
	return func() tea.Msg {
		return SnapshotMsg{Snapshot: <-m.updates}
	}
}

// probeHealth fetches /health, rate limited so window resizes and manual
// refreshes cannot hammer the backend.
func (m *Model) probeHealth() tea.Cmd {
	if !m.healthLimiter.Allow() {
		return nil
	}
	gw, ctx := m.gw, m.appCtx
	return func() tea.Msg {
		health, err := gw.Health(ctx)
		return HealthResultMsg{Health: health, Err: err}
	}
}

// loadCatalog fetches the disease catalog for the example picker.
func (m *Model) loadCatalog() tea.Cmd {
	gw, ctx := m.gw, m.appCtx
	return func() tea.Msg {
		diseases, err := gw.ListDiseases(ctx)
		return CatalogResultMsg{Diseases: diseases, Err: err}
	}
}

// healthTick schedules the next poll.
func (m *Model) healthTick() tea.Cmd {
	return tea.Tick(m.pollInterval, func(time.Time) tea.Msg {
		return HealthTickMsg{}
	})
}

// =============================================================================
// UPDATE
// =============================================================================

// Update handles incoming messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)

	case SnapshotMsg:
		return m.handleSnapshot(msg)

	case HealthTickMsg:
		return m, tea.Batch(m.probeHealth(), m.healthTick())

	case HealthResultMsg:
		if msg.Err != nil || msg.Health == nil {
			m.statusBar.SetHealth(false, false, 0)
		} else {
			m.statusBar.SetHealth(msg.Health.Status == "healthy", msg.Health.RasaAvailable, msg.Health.DiseasesLoaded)
		}
		return m, nil

	case CatalogResultMsg:
		if msg.Err == nil {
			m.picker.SetCatalog(msg.Diseases)
		}
		return m, nil

	case ExportCompleteMsg:
		if msg.Err != nil {
			m.toasts.Show(components.NewWarningToast("Export failed", msg.Err.Error()))
		} else {
			m.ctrl.AddSystemNotice("Transcript exported to " + msg.Path)
		}
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	var cmds []tea.Cmd
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)
	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

// handleResize lays the view out for a new terminal size.
func (m *Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height

	headerHeight := 3
	footerHeight := 4
	vpHeight := m.height - headerHeight - footerHeight
	if vpHeight < 1 {
		vpHeight = 1
	}

	if !m.ready {
		m.viewport = viewport.New(m.width, vpHeight)
		m.ready = true
	} else {
		m.viewport.Width = m.width
		m.viewport.Height = vpHeight
	}
	m.input.Width = m.width - 8
	m.refreshViewport()
	return m, nil
}

// handleKey routes keyboard input.
func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		m.cancelMgr.cancel()
		return m, tea.Quit

	case "esc":
		if m.picker.Visible() {
			m.picker.Hide()
			return m, nil
		}
		if m.toasts.Visible() || m.state == StateError {
			m.toasts.Dismiss()
			m.ctrl.DismissError()
			return m, nil
		}
		return m, nil

	case "tab":
		m.picker.Toggle()
		return m, nil

	case "up":
		if m.picker.Visible() {
			m.picker.MoveUp()
			return m, nil
		}

	case "down":
		if m.picker.Visible() {
			m.picker.MoveDown()
			return m, nil
		}

	case "enter":
		if m.picker.Visible() {
			question := m.picker.Selected()
			m.picker.Hide()
			m.submit(question)
			return m, nil
		}
		m.submit(m.input.Value())
		return m, nil

	case "ctrl+e":
		return m, m.exportTranscript()
	}

	var cmds []tea.Cmd
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)
	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

// submit forwards text to the controller. While a query is in flight the
// controller rejects the submission and the input is left untouched.
func (m *Model) submit(text string) {
	if strings.TrimSpace(text) == "" {
		return
	}
	if !m.ctrl.SubmitUserMessage(text) {
		return
	}
	m.toasts.Dismiss()
	m.input.Reset()
	m.showWelcome = false
}

// handleSnapshot applies a controller snapshot and re-arms the pump.
func (m *Model) handleSnapshot(msg SnapshotMsg) (tea.Model, tea.Cmd) {
	m.snapshot = msg.Snapshot

	switch m.snapshot.Status.Phase {
	case model.PhaseSending:
		m.state = StateSending
	case model.PhaseError:
		m.state = StateError
		if f := m.ctrl.LastFailure(); f != nil {
			m.toasts.Show(components.NewFailureToast(f.Kind, f.Message))
		} else {
			m.toasts.Show(components.NewFailureToast(gateway.FailureUnknown, m.snapshot.Status.Detail))
		}
	default:
		m.state = StateReady
	}

	m.statusBar.Sending = m.state == StateSending
	m.statusBar.SetLanguage(m.snapshot.LastDetectedLanguage)
	m.refreshViewport()
	return m, m.waitForUpdate()
}
