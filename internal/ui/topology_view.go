package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-runewidth"

	"github.com/vietdv277/skymap/pkg/types"
)

// PollResultMsg delivers a published topology to the view
type PollResultMsg struct {
	Result types.PollResult
}

// PollErrorMsg signals a failed cycle; the last topology stays on screen
type PollErrorMsg struct {
	Context string
	Err     error
}

// Refresher requests an immediate poll cycle
type Refresher interface {
	Refresh() error
}

type viewKeyMap struct {
	Quit    key.Binding
	Refresh key.Binding
}

var viewKeys = viewKeyMap{
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c", "esc"),
		key.WithHelp("q", "quit"),
	),
	Refresh: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "refresh now"),
	),
}

// TopologyModel is the live topology view. It never polls by itself: the
// scheduler pushes results through a ProgramPublisher.
type TopologyModel struct {
	vpcID     string
	refresher Refresher
	spinner   spinner.Model

	result     *types.PollResult
	refreshing bool
	lastErr    error
	lastErrAt  time.Time

	width    int
	quitting bool
}

// NewTopologyModel creates a view for vpcID. refresher may be nil.
func NewTopologyModel(vpcID string, refresher Refresher) *TopologyModel {
	return &TopologyModel{
		vpcID:     vpcID,
		refresher: refresher,
		spinner:   spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(PendingStyle)),
		width:     80,
	}
}

func (m *TopologyModel) loading() bool {
	return m.result == nil || m.refreshing
}

// Init implements tea.Model
func (m *TopologyModel) Init() tea.Cmd {
	return m.spinner.Tick
}

// Update implements tea.Model
func (m *TopologyModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width

	case spinner.TickMsg:
		if !m.loading() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case PollResultMsg:
		result := msg.Result
		m.result = &result
		m.refreshing = false
		m.lastErr = nil

	case PollErrorMsg:
		m.refreshing = false
		m.lastErr = msg.Err
		m.lastErrAt = time.Now()

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, viewKeys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, viewKeys.Refresh):
			if m.refresher == nil || m.refreshing {
				return m, nil
			}
			if err := m.refresher.Refresh(); err != nil {
				m.lastErr = err
				m.lastErrAt = time.Now()
				return m, nil
			}
			wasLoading := m.loading()
			m.refreshing = true
			if wasLoading {
				return m, nil
			}
			return m, m.spinner.Tick
		}
	}

	return m, nil
}

// View implements tea.Model
func (m *TopologyModel) View() string {
	if m.quitting {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(m.renderHeader())
	sb.WriteString("\n\n")

	if m.lastErr != nil {
		sb.WriteString(ErrorStyle.Render("✗ " + m.lastErr.Error()))
		sb.WriteString(MutedStyle.Render("  at " + m.lastErrAt.Format(time.TimeOnly)))
		sb.WriteString("\n")
		if m.result != nil {
			sb.WriteString(MutedStyle.Render("  showing last successful topology"))
			sb.WriteString("\n")
		}
		sb.WriteString("\n")
	}

	if m.result == nil {
		sb.WriteString(m.spinner.View())
		sb.WriteString(" Loading topology...\n")
	} else {
		sb.WriteString(RenderTopology(m.result.Graph))
		sb.WriteString("\n")
		sb.WriteString(MutedStyle.Render("  " + summary(m.result.Graph)))
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	sb.WriteString(m.renderStatusBar())
	return sb.String()
}

func (m *TopologyModel) renderHeader() string {
	line := HeaderStyle.Render("skymap") + "  " + IDStyle.Render(m.vpcID)
	if m.result != nil {
		line += "  " + MutedStyle.Render("updated "+m.result.FetchedAt.Local().Format(time.TimeOnly))
	}
	if m.result != nil && m.refreshing {
		line += "  " + m.spinner.View()
	}
	return line
}

func (m *TopologyModel) renderStatusBar() string {
	hints := fmt.Sprintf("[%s:%s] [%s:%s]",
		viewKeys.Refresh.Help().Key, viewKeys.Refresh.Help().Desc,
		viewKeys.Quit.Help().Key, viewKeys.Quit.Help().Desc,
	)
	pad := m.width - runewidth.StringWidth(hints)
	if pad < 0 {
		pad = 0
	}
	return strings.Repeat(" ", pad) + HintStyle.Render(hints) + "\n"
}

// ProgramPublisher forwards scheduler output into a running tea.Program
type ProgramPublisher struct {
	Program *tea.Program
}

// Publish implements poller.Publisher
func (p *ProgramPublisher) Publish(result types.PollResult) {
	if p.Program != nil {
		p.Program.Send(PollResultMsg{Result: result})
	}
}

// ReportError implements poller.ErrorReporter. It does not wait for the
// program to receive the error.
func (p *ProgramPublisher) ReportError(context string, err error) {
	if p.Program != nil {
		go p.Program.Send(PollErrorMsg{Context: context, Err: err})
	}
}
