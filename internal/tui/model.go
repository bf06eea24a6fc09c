// Package tui is the interactive terminal front end. It renders controller
// state and turns key presses into controller intents.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/dtnitsch/sumz/internal/common"
	"github.com/dtnitsch/sumz/internal/controller"
	"github.com/dtnitsch/sumz/models"
)

const errorHeading = "Well, that wasn't supposed to happen..."

type focus int

const (
	focusInput focus = iota
	focusList
)

type stateChangedMsg struct{}

type submitDoneMsg struct {
	err error
}

type copyDoneMsg struct {
	err error
}

// ChangeNotifier returns a controller OnChange callback and the channel it
// signals. Signals are coalesced; the model re-reads the snapshot on each one.
func ChangeNotifier() (func(controller.State), <-chan struct{}) {
	ch := make(chan struct{}, 1)
	return func(controller.State) {
		select {
		case ch <- struct{}{}:
		default:
		}
	}, ch
}

func waitForChange(ch <-chan struct{}) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		if _, ok := <-ch; !ok {
			return nil
		}
		return stateChangedMsg{}
	}
}

type Model struct {
	ctrl    *controller.Controller
	changes <-chan struct{}
	ctx     context.Context

	state   controller.State
	input   textinput.Model
	spinner spinner.Model
	focus   focus
	cursor  int
	status  string
	width   int
}

// New builds the model. changes may be nil when the caller does not wire
// controller notifications.
func New(ctx context.Context, ctrl *controller.Controller, changes <-chan struct{}) Model {
	input := textinput.New()
	input.Placeholder = "https://example.com/article"
	input.Prompt = "URL › "
	input.CharLimit = 2048
	input.Width = 60
	input.Focus()

	spin := spinner.New()
	spin.Spinner = spinner.Dot

	return Model{
		ctrl:    ctrl,
		changes: changes,
		ctx:     ctx,
		state:   ctrl.Snapshot(),
		input:   input,
		spinner: spin,
		focus:   focusInput,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spinner.Tick, waitForChange(m.changes))
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		if msg.Width > 20 {
			m.input.Width = msg.Width - 12
		}
		return m, nil
	case stateChangedMsg:
		m.refresh()
		return m, waitForChange(m.changes)
	case submitDoneMsg:
		m.refresh()
		var fe *models.FetchError
		switch {
		case msg.err == nil:
			m.status = ""
		case errors.As(msg.err, &fe):
			// rendered from LastError
		default:
			m.status = msg.err.Error()
		}
		return m, nil
	case copyDoneMsg:
		m.refresh()
		if msg.err != nil {
			m.status = msg.err.Error()
		}
		return m, nil
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "esc":
		return m, tea.Quit
	case "tab":
		m.toggleFocus()
		return m, nil
	}

	if m.focus == focusList {
		return m.handleListKey(msg)
	}

	if msg.Type == tea.KeyEnter {
		return m.submit()
	}

	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if after := m.input.Value(); after != before {
		m.ctrl.EditDraft(after)
		m.refresh()
	}
	return m, cmd
}

func (m Model) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	history := m.state.History
	switch msg.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(history)-1 {
			m.cursor++
		}
	case "enter":
		if len(history) == 0 {
			return m, nil
		}
		a := history[m.cursor]
		m.ctrl.SelectHistoryItem(a)
		m.input.SetValue(a.URL)
		m.status = ""
		m.refresh()
	case "c":
		if len(history) == 0 {
			return m, nil
		}
		return m, copyCmd(m.ctrl, history[m.cursor].URL)
	}
	return m, nil
}

func (m Model) submit() (tea.Model, tea.Cmd) {
	if m.state.IsFetching() {
		return m, nil
	}
	url, err := common.ValidateURL(m.input.Value())
	if err != nil {
		m.status = err.Error()
		return m, nil
	}
	m.input.SetValue(url)
	m.status = ""
	return m, tea.Batch(submitCmd(m.ctx, m.ctrl, url), m.spinner.Tick)
}

func submitCmd(ctx context.Context, ctrl *controller.Controller, url string) tea.Cmd {
	return func() tea.Msg {
		return submitDoneMsg{err: ctrl.Submit(ctx, url)}
	}
}

func copyCmd(ctrl *controller.Controller, url string) tea.Cmd {
	return func() tea.Msg {
		return copyDoneMsg{err: ctrl.Copy(url)}
	}
}

func (m *Model) toggleFocus() {
	if m.focus == focusInput {
		m.focus = focusList
		m.input.Blur()
		return
	}
	m.focus = focusInput
	m.input.Focus()
}

// refresh re-reads the controller state. Submissions prepend to the history,
// so a focused cursor moves down with them to stay on the same article.
func (m *Model) refresh() {
	prev := len(m.state.History)
	m.state = m.ctrl.Snapshot()
	if grown := len(m.state.History) - prev; grown > 0 && prev > 0 && m.focus == focusList {
		m.cursor += grown
	}
	if m.cursor >= len(m.state.History) {
		m.cursor = max(len(m.state.History)-1, 0)
	}
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("sumz"))
	b.WriteString(" ")
	b.WriteString(subtitleStyle.Render("summarize articles with one click"))
	b.WriteString("\n\n")

	b.WriteString(m.input.View())
	b.WriteString("\n")
	if m.state.IsFetching() {
		b.WriteString(m.spinner.View())
		b.WriteString(" Summarizing...\n")
	}
	if m.status != "" {
		b.WriteString(statusStyle.Render(m.status))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if panel := m.resultPanel(); panel != "" {
		b.WriteString(panel)
		b.WriteString("\n\n")
	}

	b.WriteString(m.historyView())
	b.WriteString("\n")
	b.WriteString(helpStyle.Render(m.helpLine()))
	b.WriteString("\n")
	return b.String()
}

func (m Model) panelWidth() int {
	if m.width > 8 {
		return m.width - 4
	}
	return 76
}

func (m Model) resultPanel() string {
	if fe := m.state.LastError; fe != nil {
		return errorStyle.Width(m.panelWidth()).Render(errorHeading + "\n" + fe.Message())
	}
	if m.state.Draft.Summary != "" {
		return summaryStyle.Width(m.panelWidth()).Render(m.state.Draft.Summary)
	}
	return ""
}

func (m Model) historyView() string {
	var b strings.Builder
	b.WriteString(headerStyle.Render(fmt.Sprintf("History (%d)", len(m.state.History))))
	b.WriteString("\n")
	if len(m.state.History) == 0 {
		b.WriteString(subtitleStyle.Render("No articles yet."))
		b.WriteString("\n")
		return b.String()
	}
	for i, a := range m.state.History {
		marker := "  "
		style := rowStyle
		if m.focus == focusList && i == m.cursor {
			marker = "> "
			style = cursorStyle
		}
		line := style.Render(marker + a.URL)
		if m.state.Copy.IsFlagged() && m.state.Copy.URL == a.URL {
			line = lipgloss.JoinHorizontal(lipgloss.Top, line, " ", copiedStyle.Render("✓ copied"))
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) helpLine() string {
	if m.focus == focusList {
		return "j/k/arrows: move | enter: show | c: copy URL | tab: edit URL | esc: quit"
	}
	return "enter: summarize | tab: history | esc: quit"
}
