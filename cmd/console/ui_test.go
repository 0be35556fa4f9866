package main

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/milk9111/roadtrip/config"
	"github.com/milk9111/roadtrip/logging"
	"github.com/milk9111/roadtrip/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUI(t *testing.T, start string) ConsoleUI {
	t.Helper()
	cfg := config.Default()
	cfg.StartLocation = start
	cfg.Save.Backend = "memory"
	cfg.Seed = 3

	ring := logging.NewRing(50)
	sess, err := session.Open(context.Background(), cfg, session.Headless, logging.SetupTo(cfg, ring))
	require.NoError(t, err)
	t.Cleanup(func() { _ = sess.Close(context.Background()) })
	return NewConsoleUI(sess, ring)
}

func send(m ConsoleUI, msg tea.Msg) ConsoleUI {
	next, _ := m.Update(msg)
	return next.(ConsoleUI)
}

func TestArrowHoldsThrottle(t *testing.T) {
	m := newUI(t, "mapA")
	start := m.sess.Car.Position()

	m = send(m, tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, 3.0, m.throttle)

	for range holdFrames/framesPerTick + 1 {
		m = send(m, tickMsg{})
	}
	assert.NotEqual(t, start, m.sess.Car.Position())
	assert.Zero(t, m.throttle, "released after the hold")
	assert.Zero(t, m.hold)
}

func TestMailboxKey(t *testing.T) {
	m := newUI(t, "map03")
	m = send(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("m")})
	assert.Equal(t, "no mail", m.notice)

	m = newUI(t, "yard")
	m = send(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("m")})
	assert.Contains(t, m.notice, "mission 2")
}

func TestViewShowsLocationAndLog(t *testing.T) {
	m := newUI(t, "map27")
	m = send(m, tea.WindowSizeMsg{Width: 120, Height: 40})

	view := m.View()
	assert.Contains(t, view, "map27")
	assert.Contains(t, view, "drawbridge")
	assert.Contains(t, view, "session: started")
}
