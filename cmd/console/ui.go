package main

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/milk9111/roadtrip/logging"
	"github.com/milk9111/roadtrip/obj"
	"github.com/milk9111/roadtrip/session"
)

const (
	tickEvery     = 50 * time.Millisecond
	frame         = time.Second / 60
	framesPerTick = 3
	holdFrames    = 12
	logLines      = 12
)

type tickMsg struct{}

var (
	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(0, 1)

	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")). // pink
			Bold(true)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("86")) // green

	activeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")) // yellow

	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")) // dark grey
)

// ConsoleUI drives a session from the terminal. A terminal sends no key
// releases, so each arrow press holds its input for a few frames.
type ConsoleUI struct {
	sess   *session.Session
	ring   *logging.Ring
	width  int
	height int

	throttle float64
	turn     int
	hold     int
	notice   string
}

func NewConsoleUI(sess *session.Session, ring *logging.Ring) ConsoleUI {
	return ConsoleUI{sess: sess, ring: ring}
}

func tick() tea.Cmd {
	return tea.Tick(tickEvery, func(time.Time) tea.Msg {
		return tickMsg{}
	})
}

func (m ConsoleUI) Init() tea.Cmd {
	return tick()
}

func (m ConsoleUI) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tickMsg:
		for range framesPerTick {
			turn := 0
			if m.hold > 0 {
				turn = m.turn
				m.turn = 0
				m.hold--
				if m.hold == 0 {
					m.throttle = 0
				}
			}
			m.sess.Drive(m.throttle, turn)
			m.sess.Update(frame)
		}
		return m, tick()

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc", "q":
			return m, tea.Quit
		case "up":
			m.throttle, m.hold = 3, holdFrames
		case "down":
			m.throttle, m.hold = -1.5, holdFrames
		case "left":
			m.turn, m.hold = -1, max(m.hold, 1)
		case "right":
			m.turn, m.hold = 1, max(m.hold, 1)
		case " ":
			m.throttle, m.hold = 0, 0
		case "m":
			if mission, gifts, ok := m.sess.OpenMailbox(); ok {
				m.notice = fmt.Sprintf("letter for mission %d, %d parts in the yard", mission.ID, len(gifts))
			} else {
				m.notice = "no mail"
			}
		case "enter":
			if !m.sess.Leave() {
				m.notice = "only the yard has a gate"
			}
		}
	}
	return m, nil
}

func (m ConsoleUI) View() string {
	left := panelStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render("roadtrip: "+m.sess.Director.Current()),
		"",
		m.carView(),
		"",
		m.objectsView(),
	))
	right := panelStyle.Render(m.ledgerView())

	logs := strings.Join(m.ring.Tail(logLines), "\n")
	if m.width > 4 {
		logs = lipgloss.NewStyle().MaxWidth(m.width - 4).Render(logs)
	}

	help := promptStyle.Render("arrows drive  space brake  m mailbox  enter leave yard  q quit")
	if m.notice != "" {
		help = activeStyle.Render(m.notice) + "\n" + help
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.JoinHorizontal(lipgloss.Top, left, right),
		panelStyle.Render(logs),
		help,
	)
}

func (m ConsoleUI) carView() string {
	car := m.sess.Car
	state := "driving"
	if !car.Enabled() {
		state = "held"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%s %6.1f,%6.1f  dir %2d  speed %4.1f  %s\n",
		labelStyle.Render("car"), car.Position().X, car.Position().Y, car.Direction(), car.Speed(), state)
	fmt.Fprintf(&b, "%s %.2f", labelStyle.Render("fade"), m.sess.Fader.Alpha())
	return b.String()
}

func (m ConsoleUI) objectsView() string {
	mp, ok := m.sess.Map()
	if !ok {
		stage := m.sess.Director.Stage()
		if stage == nil {
			return ""
		}
		var lines []string
		for _, a := range stage.Actors() {
			line := a.Name()
			if a.Talking() {
				line = activeStyle.Render(line + " (talking)")
			}
			lines = append(lines, line)
		}
		return strings.Join(lines, "\n")
	}

	var lines []string
	for _, o := range mp.Objects() {
		line := fmt.Sprintf("%-12s %-9s %6.0f,%6.0f", o.ID(), o.Type(), o.Position().X, o.Position().Y)
		switch v := o.(type) {
		case *obj.Bridge:
			line += "  " + v.State().String()
		case *obj.Teleport:
			if v.Busy() {
				line += "  busy"
			}
		}
		if !o.Active() {
			line = promptStyle.Render(line)
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

func (m ConsoleUI) ledgerView() string {
	l := m.sess.Ledger
	snap := l.Snapshot("")
	var b strings.Builder
	b.WriteString(titleStyle.Render("ledger") + "\n")
	fmt.Fprintf(&b, "%s %v\n", labelStyle.Render("yard"), l.YardParts())
	fmt.Fprintf(&b, "%s %v\n", labelStyle.Render("installed"), l.InstalledParts())
	fmt.Fprintf(&b, "%s %v\n", labelStyle.Render("medals"), l.Medals())
	fmt.Fprintf(&b, "%s %v\n", labelStyle.Render("missions"), l.CompletedMissions())
	fmt.Fprintf(&b, "%s %v\n", labelStyle.Render("flags"), snap.Flags)
	fmt.Fprintf(&b, "%s %v", labelStyle.Render("permanent"), snap.PermanentFlags)
	return b.String()
}
