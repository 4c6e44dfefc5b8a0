package ui

import (
	"context"
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vietdv277/skymap/pkg/types"
)

type stubRefresher struct {
	calls int
	err   error
}

func (s *stubRefresher) Refresh() error {
	s.calls++
	return s.err
}

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func scenarioResult() types.PollResult {
	return types.PollResult{
		VPCID:     "vpc-1",
		Graph:     scenarioGraph(),
		FetchedAt: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	}
}

func TestTopologyModel_LoadingUntilFirstResult(t *testing.T) {
	m := NewTopologyModel("vpc-1", nil)
	require.NotNil(t, m.Init())

	view := m.View()
	assert.Contains(t, view, "vpc-1")
	assert.Contains(t, view, "Loading topology")
	assert.True(t, m.loading())
}

func TestTopologyModel_ShowsPublishedResult(t *testing.T) {
	m := NewTopologyModel("vpc-1", nil)

	_, cmd := m.Update(PollResultMsg{Result: scenarioResult()})
	assert.Nil(t, cmd)
	assert.False(t, m.loading())

	view := m.View()
	assert.NotContains(t, view, "Loading topology")
	assert.Contains(t, view, "WEB TIER")
	assert.Contains(t, view, "WAS-Instance-1")
	assert.Contains(t, view, "2 zone groups")
}

func TestTopologyModel_ErrorKeepsLastResult(t *testing.T) {
	m := NewTopologyModel("vpc-1", nil)
	m.Update(PollResultMsg{Result: scenarioResult()})

	m.Update(PollErrorMsg{Context: "poll vpc-1", Err: errors.New("throttled")})

	view := m.View()
	assert.Contains(t, view, "throttled")
	assert.Contains(t, view, "showing last successful topology")
	assert.Contains(t, view, "WEB TIER")

	m.Update(PollResultMsg{Result: scenarioResult()})
	assert.NotContains(t, m.View(), "throttled")
}

func TestTopologyModel_ErrorBeforeFirstResult(t *testing.T) {
	m := NewTopologyModel("vpc-1", nil)
	m.Update(PollErrorMsg{Context: "poll vpc-1", Err: errors.New("denied")})

	view := m.View()
	assert.Contains(t, view, "denied")
	assert.NotContains(t, view, "showing last successful topology")
	assert.Contains(t, view, "Loading topology")
}

func TestTopologyModel_RefreshKey(t *testing.T) {
	r := &stubRefresher{}
	m := NewTopologyModel("vpc-1", r)
	m.Update(PollResultMsg{Result: scenarioResult()})

	_, cmd := m.Update(runeKey('r'))
	assert.Equal(t, 1, r.calls)
	assert.True(t, m.refreshing)
	assert.NotNil(t, cmd)

	// a second press while refreshing is ignored
	m.Update(runeKey('r'))
	assert.Equal(t, 1, r.calls)

	m.Update(PollResultMsg{Result: scenarioResult()})
	assert.False(t, m.refreshing)
}

func TestTopologyModel_RefreshFailure(t *testing.T) {
	r := &stubRefresher{err: errors.New("VPC ID is required")}
	m := NewTopologyModel("vpc-1", r)

	m.Update(runeKey('r'))
	assert.False(t, m.refreshing)
	assert.Contains(t, m.View(), "VPC ID is required")
}

func TestTopologyModel_RefreshWithoutRefresher(t *testing.T) {
	m := NewTopologyModel("vpc-1", nil)
	_, cmd := m.Update(runeKey('r'))
	assert.Nil(t, cmd)
	assert.False(t, m.refreshing)
}

func TestTopologyModel_Quit(t *testing.T) {
	for _, msg := range []tea.KeyMsg{runeKey('q'), {Type: tea.KeyCtrlC}, {Type: tea.KeyEsc}} {
		m := NewTopologyModel("vpc-1", nil)
		_, cmd := m.Update(msg)
		require.NotNil(t, cmd)
		assert.IsType(t, tea.QuitMsg{}, cmd())
		assert.Empty(t, m.View())
	}
}

func TestTopologyModel_SpinnerStopsWhenLoaded(t *testing.T) {
	m := NewTopologyModel("vpc-1", nil)
	m.Update(PollResultMsg{Result: scenarioResult()})

	_, cmd := m.Update(m.spinner.Tick())
	assert.Nil(t, cmd)
}

func TestTopologyModel_WindowSize(t *testing.T) {
	m := NewTopologyModel("vpc-1", nil)
	m.Update(tea.WindowSizeMsg{Width: 132, Height: 40})
	assert.Equal(t, 132, m.width)
}

func TestProgramPublisher_NilProgram(t *testing.T) {
	p := &ProgramPublisher{}
	assert.NotPanics(t, func() {
		p.Publish(scenarioResult())
		p.ReportError("poll vpc-1", errors.New("boom"))
	})
}

func TestProgramPublisher_ReportErrorDoesNotBlock(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// never run, so nothing receives from the program
	p := &ProgramPublisher{Program: tea.NewProgram(NewTopologyModel("vpc-1", nil), tea.WithContext(ctx))}

	returned := make(chan struct{})
	go func() {
		p.ReportError("poll vpc-1", errors.New("boom"))
		close(returned)
	}()

	select {
	case <-returned:
	case <-time.After(time.Second):
		t.Fatal("ReportError blocked on an idle program")
	}
}
