// Package model provides Bubble Tea models for CLI commands.
package model

import (
	"context"
	"fmt"
	"math"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/bnema/legible/internal/cli/styles"
	"github.com/bnema/legible/internal/domain/entity"
	"github.com/bnema/legible/internal/domain/resolve"
	"github.com/bnema/legible/internal/infrastructure/debounce"
	"github.com/bnema/legible/internal/infrastructure/messaging"
	"github.com/bnema/legible/internal/logging"
)

const (
	popupSubscriber  = "popup"
	popupEventBuffer = 16
	defaultDebounce  = 60 * time.Millisecond
)

// PopupClient is the daemon API the popup drives.
type PopupClient interface {
	GetSettings(ctx context.Context, site string) (entity.SiteView, error)
	UpdateSettings(ctx context.Context, req messaging.UpdateSettingsRequest) error
	SetSiteEnabled(ctx context.Context, site string, enabled bool) error
	SiteAction(ctx context.Context, action, site string) error
	Subscribe(ctx context.Context, client string, fn func(messaging.SettingsUpdated)) error
}

type control int

const (
	controlEnabled control = iota
	controlForce
	controlFontSize
	controlSpacing
	controlLineHeight
	controlExclude
	controlCount
)

type sliderRange struct {
	min, max, step float64
}

var sliderRanges = map[control]sliderRange{
	controlFontSize:   {entity.FontSizeMin, entity.FontSizeMax, 0.1},
	controlSpacing:    {entity.SpacingMin, entity.SpacingMax, 0.5},
	controlLineHeight: {entity.LineHeightMin, entity.LineHeightMax, 0.1},
}

type viewLoadedMsg struct {
	view entity.SiteView
	err  error
}

type settingsUpdatedMsg struct {
	settings *entity.Settings
}

type actionDoneMsg struct {
	action string
	err    error
}

type streamClosedMsg struct {
	err error
}

// popupRuntime is shared by every copy of the model.
type popupRuntime struct {
	ctx    context.Context
	cancel context.CancelFunc
	events chan tea.Msg
	flush  *debounce.Debouncer

	mu      sync.Mutex
	pending messaging.UpdateSettingsRequest
}

func (rt *popupRuntime) send(msg tea.Msg) {
	select {
	case rt.events <- msg:
	case <-rt.ctx.Done():
	}
}

// PopupModelConfig holds configuration for the popup model.
type PopupModelConfig struct {
	Site     string
	Client   PopupClient
	Debounce time.Duration
}

// PopupModel is the Bubble Tea model for the per-site popup.
type PopupModel struct {
	// UI components
	help    help.Model
	keys    styles.PopupKeyMap
	loading styles.LoadingModel

	// State
	site      string
	view      entity.SiteView
	loaded    bool
	loadErr   error
	focus     control
	status    string
	statusErr bool
	live      bool
	width     int

	// Dependencies
	client PopupClient
	rt     *popupRuntime
	theme  *styles.Theme
}

// NewPopupModel creates the popup for one site.
func NewPopupModel(ctx context.Context, theme *styles.Theme, cfg PopupModelConfig) PopupModel {
	delay := cfg.Debounce
	if delay <= 0 {
		delay = defaultDebounce
	}
	ctx, cancel := context.WithCancel(ctx)

	h := help.New()
	h.Styles.ShortKey = theme.HelpKey
	h.Styles.ShortDesc = theme.HelpDesc
	h.Styles.FullKey = theme.HelpKey
	h.Styles.FullDesc = theme.HelpDesc

	return PopupModel{
		help:    h,
		keys:    styles.DefaultPopupKeyMap(),
		loading: styles.NewLoading(theme, "Loading settings..."),
		site:    cfg.Site,
		width:   80,
		client:  cfg.Client,
		theme:   theme,
		rt: &popupRuntime{
			ctx:    ctx,
			cancel: cancel,
			events: make(chan tea.Msg, popupEventBuffer),
			flush:  debounce.New(delay),
		},
	}
}

// Init implements tea.Model.
func (m PopupModel) Init() tea.Cmd {
	return tea.Batch(m.loading.Spinner.Tick, m.load(), m.subscribe(), m.listen())
}

// Update implements tea.Model.
func (m PopupModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case spinner.TickMsg:
		if m.loaded || m.loadErr != nil {
			return m, nil
		}
		var cmd tea.Cmd
		m.loading.Spinner, cmd = m.loading.Spinner.Update(msg)
		return m, cmd

	case viewLoadedMsg:
		if msg.err != nil {
			if !m.loaded {
				m.loadErr = msg.err
			} else {
				m.setStatus(fmt.Sprintf("reload failed: %v", msg.err), true)
			}
			return m, nil
		}
		m.loaded, m.loadErr = true, nil
		m.view = m.withPending(msg.view)
		return m, nil

	case settingsUpdatedMsg:
		m.live = true
		if msg.settings != nil && m.loadErr == nil {
			m.loaded = true
			m.view = m.withPending(resolve.ViewFor(msg.settings, m.site))
		}
		return m, m.listen()

	case actionDoneMsg:
		if msg.err != nil {
			logging.FromContext(m.rt.ctx).Warn().Err(msg.err).Str("action", msg.action).Msg("popup action failed")
			m.setStatus(fmt.Sprintf("%s failed: %v", msg.action, msg.err), true)
		} else {
			m.setStatus("saved", false)
		}
		return m, m.listen()

	case streamClosedMsg:
		m.live = false
		if msg.err != nil && m.rt.ctx.Err() == nil {
			logging.FromContext(m.rt.ctx).Debug().Err(msg.err).Msg("settings stream closed")
		}
		return m, m.listen()
	}

	return m, nil
}

func (m PopupModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, m.quit()
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	case key.Matches(msg, m.keys.Reload):
		return m, m.load()
	}

	if !m.loaded {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Up):
		m.focus = m.nextFocus(-1)
	case key.Matches(msg, m.keys.Down):
		m.focus = m.nextFocus(1)
	case key.Matches(msg, m.keys.Decrease):
		return m.adjust(-1)
	case key.Matches(msg, m.keys.Increase):
		return m.adjust(1)
	case key.Matches(msg, m.keys.Toggle):
		return m.toggle()
	}
	return m, nil
}

// available reports whether c can be used in the current state. An excluded
// site only offers to lift the exclusion; a disabled one hides the style controls.
func (m PopupModel) available(c control) bool {
	switch c {
	case controlExclude:
		return true
	case controlEnabled:
		return !m.view.IsExcluded
	default:
		return !m.view.IsExcluded && m.view.Enabled
	}
}

func (m PopupModel) nextFocus(dir int) control {
	c := m.focus
	for range controlCount {
		c = (c + control(dir) + controlCount) % controlCount
		if m.available(c) {
			return c
		}
	}
	return m.focus
}

func (m PopupModel) toggle() (tea.Model, tea.Cmd) {
	if !m.available(m.focus) {
		return m, nil
	}
	site := m.site
	ctx := m.rt.ctx

	switch m.focus {
	case controlEnabled:
		enabled := !m.view.Enabled
		m.view.Enabled = enabled
		return m, m.action(messaging.ActionSetSiteEnabled, func() error {
			return m.client.SetSiteEnabled(ctx, site, enabled)
		})
	case controlForce:
		force := !m.view.Force
		m.view.Force = force
		return m, m.action(messaging.ActionUpdateSettings, func() error {
			return m.client.UpdateSettings(ctx, messaging.UpdateSettingsRequest{Site: site, Force: &force})
		})
	case controlExclude:
		action := messaging.ActionExcludeSite
		if m.view.IsExcluded {
			action = messaging.ActionRemoveExcludedSite
		}
		m.view.IsExcluded = !m.view.IsExcluded
		if m.view.IsExcluded {
			m.view.Enabled = false
		}
		return m, m.action(action, func() error {
			return m.client.SiteAction(ctx, action, site)
		})
	}
	return m, nil
}

func (m PopupModel) adjust(dir int) (tea.Model, tea.Cmd) {
	r, ok := sliderRanges[m.focus]
	if !ok || !m.available(m.focus) {
		return m, nil
	}

	value := m.sliderValue(m.focus) + float64(dir)*r.step
	value = math.Round(math.Max(r.min, math.Min(r.max, value))*100) / 100

	m.rt.mu.Lock()
	switch m.focus {
	case controlFontSize:
		m.view.FontSize = value
		m.rt.pending.FontSize = &value
	case controlSpacing:
		m.view.Spacing = value
		m.rt.pending.Spacing = &value
	case controlLineHeight:
		m.view.LineHeight = value
		m.rt.pending.LineHeight = &value
	}
	m.rt.mu.Unlock()

	m.rt.flush.Trigger(m.sendPending)
	return m, nil
}

// sendPending runs on the debouncer goroutine and posts every slider edit
// collected since the last send as one UPDATE_SETTINGS.
func (m PopupModel) sendPending() {
	m.rt.mu.Lock()
	req := m.rt.pending
	m.rt.pending = messaging.UpdateSettingsRequest{}
	m.rt.mu.Unlock()

	if req.FontSize == nil && req.Spacing == nil && req.LineHeight == nil {
		return
	}
	req.Site = m.site
	err := m.client.UpdateSettings(m.rt.ctx, req)
	m.rt.send(actionDoneMsg{action: messaging.ActionUpdateSettings, err: err})
}

// withPending keeps unsent slider values over a refreshed view.
func (m PopupModel) withPending(v entity.SiteView) entity.SiteView {
	m.rt.mu.Lock()
	defer m.rt.mu.Unlock()
	if p := m.rt.pending.FontSize; p != nil {
		v.FontSize = *p
	}
	if p := m.rt.pending.Spacing; p != nil {
		v.Spacing = *p
	}
	if p := m.rt.pending.LineHeight; p != nil {
		v.LineHeight = *p
	}
	return v
}

func (m PopupModel) sliderValue(c control) float64 {
	switch c {
	case controlFontSize:
		return m.view.FontSize
	case controlSpacing:
		return m.view.Spacing
	case controlLineHeight:
		return m.view.LineHeight
	}
	return 0
}

func (m *PopupModel) setStatus(msg string, isErr bool) {
	m.status, m.statusErr = msg, isErr
}

func (m PopupModel) load() tea.Cmd {
	ctx, client, site := m.rt.ctx, m.client, m.site
	return func() tea.Msg {
		view, err := client.GetSettings(ctx, site)
		return viewLoadedMsg{view: view, err: err}
	}
}

func (m PopupModel) subscribe() tea.Cmd {
	rt, client := m.rt, m.client
	return func() tea.Msg {
		go func() {
			err := client.Subscribe(rt.ctx, popupSubscriber, func(ev messaging.SettingsUpdated) {
				rt.send(settingsUpdatedMsg{settings: ev.NewSettings})
			})
			rt.send(streamClosedMsg{err: err})
		}()
		return nil
	}
}

func (m PopupModel) listen() tea.Cmd {
	rt := m.rt
	return func() tea.Msg {
		select {
		case msg := <-rt.events:
			return msg
		case <-rt.ctx.Done():
			return nil
		}
	}
}

// action runs fn off the update loop. Its outcome comes back through the
// event channel like every other asynchronous result.
func (m PopupModel) action(name string, fn func() error) tea.Cmd {
	rt := m.rt
	return func() tea.Msg {
		rt.send(actionDoneMsg{action: name, err: fn()})
		return nil
	}
}

// quit sends any pending slider edit before leaving.
func (m PopupModel) quit() tea.Cmd {
	m.rt.flush.Flush()
	m.rt.cancel()
	return tea.Quit
}

// View implements tea.Model.
func (m PopupModel) View() string {
	t := m.theme
	var sb strings.Builder

	sb.WriteString(t.BoxHeader.Render(m.renderHeader()))
	sb.WriteString("\n")

	switch {
	case m.loadErr != nil:
		sb.WriteString(t.ErrorStyle.Render(fmt.Sprintf("%s Could not load settings for %s", styles.IconWarning, m.site)))
		sb.WriteString("\n")
		sb.WriteString(t.Subtle.Render(m.loadErr.Error()))
		sb.WriteString("\n\n")
		sb.WriteString(t.Subtle.Render("Is 'legible serve' running? Press r to retry."))
	case !m.loaded:
		sb.WriteString(m.loading.View())
	default:
		sb.WriteString(m.renderControls())
	}

	sb.WriteString("\n\n")
	if m.status != "" {
		if m.statusErr {
			sb.WriteString(t.ErrorStyle.Render(m.status))
		} else {
			sb.WriteString(t.SuccessStyle.Render(m.status))
		}
		sb.WriteString("\n")
	}
	sb.WriteString(m.help.View(m.keys))

	return t.Box.Render(sb.String())
}

func (m PopupModel) renderHeader() string {
	t := m.theme
	state := t.BadgeMuted.Render("off")
	switch {
	case m.view.IsExcluded:
		state = t.BadgeError.Render("excluded")
	case m.view.Enabled:
		state = t.Badge.Render("on")
	}

	live := ""
	if m.live {
		live = t.Subtle.Render(" " + styles.IconPlug)
	}

	return lipgloss.JoinHorizontal(lipgloss.Center,
		lipgloss.NewStyle().Foreground(t.Accent).Render(styles.IconFont+" "),
		t.Title.Render(m.site),
		" ",
		state,
		live,
	)
}

func (m PopupModel) renderControls() string {
	t := m.theme
	rows := make([]string, 0, controlCount)

	for c := range controlCount {
		if !m.available(c) {
			rows = append(rows, t.Subtle.Render("  "+m.label(c)))
			continue
		}
		focused := c == m.focus
		var row string
		switch c {
		case controlEnabled:
			row = t.Checkbox("Enable for this site", m.view.Enabled, focused)
		case controlForce:
			row = t.Checkbox("Force style on all elements", m.view.Force, focused)
		case controlFontSize:
			row = t.Slider("Font size", m.view.FontSize, entity.FontSizeMin, entity.FontSizeMax, "x", focused)
		case controlSpacing:
			row = t.Slider("Spacing", m.view.Spacing, entity.SpacingMin, entity.SpacingMax, "px", focused)
		case controlLineHeight:
			row = t.Slider("Line height", m.view.LineHeight, entity.LineHeightMin, entity.LineHeightMax, "", focused)
		case controlExclude:
			row = t.Checkbox("Exclude this site", m.view.IsExcluded, focused)
		}
		rows = append(rows, row)
	}
	return strings.Join(rows, "\n")
}

// label is the plain text of a control shown while it is unavailable.
func (m PopupModel) label(c control) string {
	switch c {
	case controlEnabled:
		return "Enable for this site"
	case controlForce:
		return "Force style on all elements"
	case controlFontSize:
		return "Font size   " + styles.FormatFloat(m.view.FontSize) + "x"
	case controlSpacing:
		return "Spacing     " + styles.FormatFloat(m.view.Spacing) + "px"
	case controlLineHeight:
		return "Line height " + styles.FormatFloat(m.view.LineHeight)
	}
	return ""
}
