package ui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-runewidth"

	"github.com/vietdv277/skymap/pkg/types"
)

const (
	vpcListHeight = 8
	minWidth      = 60
	maxWidth      = 120
)

// ErrSelectionCancelled is returned when the user leaves a picker without choosing
var ErrSelectionCancelled = errors.New("selection cancelled")

type selectorKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Select key.Binding
	Cancel key.Binding
}

var selectorKeys = selectorKeyMap{
	Up:     key.NewBinding(key.WithKeys("up", "ctrl+p")),
	Down:   key.NewBinding(key.WithKeys("down", "ctrl+n")),
	Select: key.NewBinding(key.WithKeys("enter")),
	Cancel: key.NewBinding(key.WithKeys("esc", "ctrl+c")),
}

// VPCModel is the bubbletea model for picking the VPC to watch
type VPCModel struct {
	vpcs         []types.VPC
	filtered     []types.VPC
	cursor       int
	offset       int
	search       string
	selected     *types.VPC
	quitting     bool
	cancelled    bool
	contentWidth int
}

// NewVPCModel creates a new VPC selector model
func NewVPCModel(vpcs []types.VPC) VPCModel {
	m := VPCModel{vpcs: vpcs, filtered: vpcs}
	m.resize(80)
	return m
}

func (m *VPCModel) resize(termWidth int) {
	m.contentWidth = min(max(termWidth-2, minWidth), maxWidth)
}

// Init implements tea.Model
func (m VPCModel) Init() tea.Cmd {
	return tea.WindowSize()
}

// Update implements tea.Model
func (m VPCModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width)

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, selectorKeys.Cancel):
			m.quitting = true
			m.cancelled = true
			return m, tea.Quit

		case key.Matches(msg, selectorKeys.Select):
			if len(m.filtered) > 0 {
				m.selected = &m.filtered[m.cursor]
				m.quitting = true
				return m, tea.Quit
			}

		case key.Matches(msg, selectorKeys.Up):
			if m.cursor > 0 {
				m.cursor--
				m.offset = min(m.offset, m.cursor)
			}

		case key.Matches(msg, selectorKeys.Down):
			if m.cursor < len(m.filtered)-1 {
				m.cursor++
				if m.cursor >= m.offset+vpcListHeight {
					m.offset = m.cursor - vpcListHeight + 1
				}
			}

		case msg.Type == tea.KeyBackspace:
			if len(m.search) > 0 {
				r := []rune(m.search)
				m.search = string(r[:len(r)-1])
				m.filter()
			}

		case msg.Type == tea.KeyRunes:
			m.search += string(msg.Runes)
			m.filter()
		}
	}

	return m, nil
}

func (m *VPCModel) filter() {
	m.filtered = m.vpcs
	if m.search != "" {
		query := strings.ToLower(m.search)
		m.filtered = nil
		for _, vpc := range m.vpcs {
			if strings.Contains(strings.ToLower(vpc.Name), query) ||
				strings.Contains(strings.ToLower(vpc.ID), query) ||
				strings.Contains(vpc.CIDR, query) {
				m.filtered = append(m.filtered, vpc)
			}
		}
	}
	m.cursor = max(min(m.cursor, len(m.filtered)-1), 0)
	m.offset = 0
}

// line wraps styled content of plain width used in the box borders
func (m VPCModel) line(content string, used int) string {
	pad := ""
	if used < m.contentWidth {
		pad = strings.Repeat(" ", m.contentWidth-used)
	}
	return BorderStyle.Render(Vertical) + content + pad + BorderStyle.Render(Vertical) + "\n"
}

// View implements tea.Model
func (m VPCModel) View() string {
	if m.quitting {
		return ""
	}

	var sb strings.Builder
	w := m.contentWidth
	rule := func(left, right string) {
		sb.WriteString(BorderStyle.Render(left + strings.Repeat(Horizontal, w) + right))
		sb.WriteString("\n")
	}

	rule(TopLeft, TopRight)

	search := padRight(" VPC > "+m.search, w)
	sb.WriteString(m.line(NameStyle.Render(search), w))
	sb.WriteString(m.line("", 0))

	end := min(m.offset+vpcListHeight, len(m.filtered))
	for i := m.offset; i < end; i++ {
		sb.WriteString(m.renderRow(i))
	}
	for i := end - m.offset; i < vpcListHeight; i++ {
		sb.WriteString(m.line("", 0))
	}

	rule(LeftT, RightT)

	if len(m.filtered) == 0 {
		sb.WriteString(m.line(MutedStyle.Render(padRight(" No VPCs match", w)), w))
	} else {
		vpc := m.filtered[m.cursor]
		detail := fmt.Sprintf(" %s  state=%s  default=%s  owner=%s",
			vpc.DisplayName(), vpc.State, formatBool(vpc.IsDefault), vpc.OwnerID)
		sb.WriteString(m.line(MutedStyle.Render(padRight(detail, w)), w))
	}

	rule(BottomLeft, BottomRight)

	count := fmt.Sprintf("  %d/%d VPCs", len(m.filtered), len(m.vpcs))
	hints := "[Enter:watch] [Esc:cancel]"
	gap := w + 2 - runewidth.StringWidth(count) - runewidth.StringWidth(hints)
	sb.WriteString(count)
	if gap > 0 {
		sb.WriteString(strings.Repeat(" ", gap))
	}
	sb.WriteString(HintStyle.Render(hints))
	sb.WriteString("\n")

	return sb.String()
}

func (m VPCModel) renderRow(idx int) string {
	vpc := m.filtered[idx]

	cursor := "   "
	if idx == m.cursor {
		cursor = " > "
	}

	nameWidth := max(m.contentWidth-3-24-2-18-2, 10)
	content := cursor +
		IDStyle.Render(padRight(vpc.ID, 24)) + "  " +
		IPStyle.Render(padRight(vpc.CIDR, 18)) + "  " +
		NameStyle.Render(padRight(vpc.Name, nameWidth))

	return m.line(content, 3+24+2+18+2+nameWidth)
}

// Selected returns the chosen VPC, or nil
func (m VPCModel) Selected() *types.VPC {
	return m.selected
}

// SelectVPC displays an interactive selector for VPCs
func SelectVPC(vpcs []types.VPC) (*types.VPC, error) {
	if len(vpcs) == 0 {
		return nil, fmt.Errorf("no VPCs available")
	}

	p := tea.NewProgram(NewVPCModel(vpcs))

	finalModel, err := p.Run()
	if err != nil {
		return nil, fmt.Errorf("error running selector: %w", err)
	}

	result := finalModel.(VPCModel)
	if result.cancelled {
		return nil, ErrSelectionCancelled
	}

	return result.selected, nil
}
