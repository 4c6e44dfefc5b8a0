package ui

import (
	"bytes"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vietdv277/skymap/pkg/types"
)

func testVPCs() []types.VPC {
	return []types.VPC{
		{ID: "vpc-default", CIDR: "172.31.0.0/16", State: "available", IsDefault: true},
		{ID: "vpc-prod", Name: "prod", CIDR: "10.0.0.0/16", State: "available"},
		{ID: "vpc-stage", Name: "staging", CIDR: "10.1.0.0/16", State: "pending"},
	}
}

func update(m VPCModel, msgs ...tea.Msg) (VPCModel, tea.Cmd) {
	var cmd tea.Cmd
	for _, msg := range msgs {
		var next tea.Model
		next, cmd = m.Update(msg)
		m = next.(VPCModel)
	}
	return m, cmd
}

func TestVPCModel_Navigation(t *testing.T) {
	m := NewVPCModel(testVPCs())

	m, _ = update(m, tea.KeyMsg{Type: tea.KeyDown}, tea.KeyMsg{Type: tea.KeyDown}, tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 2, m.cursor)

	m, _ = update(m, tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, 1, m.cursor)

	m, cmd := update(m, tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, m.Selected())
	assert.Equal(t, "vpc-prod", m.Selected().ID)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestVPCModel_Search(t *testing.T) {
	m := NewVPCModel(testVPCs())

	m, _ = update(m, runeKey('s'), runeKey('t'))
	require.Len(t, m.filtered, 1)
	assert.Equal(t, "vpc-stage", m.filtered[0].ID)

	m, _ = update(m, tea.KeyMsg{Type: tea.KeyBackspace}, tea.KeyMsg{Type: tea.KeyBackspace})
	assert.Len(t, m.filtered, 3)

	m, _ = update(m, runeKey('1'), runeKey('0'), runeKey('.'), runeKey('1'))
	require.Len(t, m.filtered, 1)
	assert.Equal(t, "vpc-stage", m.filtered[0].ID)
}

func TestVPCModel_NoMatch(t *testing.T) {
	m := NewVPCModel(testVPCs())
	m, _ = update(m, runeKey('z'), runeKey('z'))

	assert.Empty(t, m.filtered)
	assert.Contains(t, m.View(), "No VPCs match")

	m, cmd := update(m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd)
	assert.Nil(t, m.Selected())
}

func TestVPCModel_Cancel(t *testing.T) {
	m := NewVPCModel(testVPCs())
	m, cmd := update(m, tea.KeyMsg{Type: tea.KeyEsc})

	assert.True(t, m.cancelled)
	assert.Nil(t, m.Selected())
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.Empty(t, m.View())
}

func TestVPCModel_View(t *testing.T) {
	m := NewVPCModel(testVPCs())
	view := m.View()

	assert.Contains(t, view, "vpc-default")
	assert.Contains(t, view, "staging")
	assert.Contains(t, view, "default=Yes")
	assert.Contains(t, view, "3/3 VPCs")
}

func TestVPCModel_ResizeIsClamped(t *testing.T) {
	m := NewVPCModel(testVPCs())

	m, _ = update(m, tea.WindowSizeMsg{Width: 20})
	assert.Equal(t, minWidth, m.contentWidth)

	m, _ = update(m, tea.WindowSizeMsg{Width: 500})
	assert.Equal(t, maxWidth, m.contentWidth)
}

func TestSelectVPC_Empty(t *testing.T) {
	_, err := SelectVPC(nil)
	assert.Error(t, err)
}

func TestPrintVPCTable(t *testing.T) {
	var buf bytes.Buffer
	PrintVPCTable(&buf, testVPCs(), "vpc-prod")

	out := buf.String()
	assert.Contains(t, out, "* vpc-prod")
	assert.NotContains(t, out, "* vpc-stage")
	assert.Contains(t, out, "3 VPCs")
}

func TestRenderTable_ShortRows(t *testing.T) {
	out := RenderTable([]Column{{"A", 3}, {"B", 3}}, [][]Cell{{{Text: "x"}}})
	assert.Contains(t, out, " x   ")
	assert.Contains(t, out, "A")
	assert.Contains(t, out, "B")
}

func TestPrintLoadBalancerTable(t *testing.T) {
	var buf bytes.Buffer
	PrintLoadBalancerTable(&buf, []LoadBalancerRow{
		{
			ClassifiedLoadBalancer: types.ClassifiedLoadBalancer{
				RawLoadBalancer: types.RawLoadBalancer{ARN: "arn:web", State: "active", DNSName: "web.elb"},
				Role:            types.RoleWebFront,
				Name:            "DRS-WEB-ALB",
			},
			InTopology: true,
		},
		{
			ClassifiedLoadBalancer: types.ClassifiedLoadBalancer{
				RawLoadBalancer: types.RawLoadBalancer{ARN: "arn:x", State: "failed"},
				Role:            types.RoleExcluded,
			},
		},
	})

	out := buf.String()
	assert.Contains(t, out, "DRS-WEB-ALB")
	assert.Contains(t, out, "WEB")
	assert.Contains(t, out, "(unnamed)")
	assert.Contains(t, out, "web.elb")
	assert.Contains(t, out, "2 load balancers")
}
