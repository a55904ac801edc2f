// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2025 Kaz Walker, Thermoquad

package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/Thermoquad/hopper/pkg/adapter"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

//////////////////////////////////////////////////////////////
// Types
//////////////////////////////////////////////////////////////

// entryKind selects how an event log line is rendered
type entryKind int

const (
	entryInfo entryKind = iota
	entrySent
	entryReply
	entryError
)

// logEntry is one line of the event log
type logEntry struct {
	timestamp time.Time
	message   string
	kind      entryKind
}

// sender is the part of adapter.Session the TUI needs
type sender interface {
	Send(cmd adapter.Command) error
	CheckConnection() (adapter.ProbeResult, []byte, error)
	Stats() adapter.Statistics
}

// controlModel is the Bubble Tea model for the control TUI
type controlModel struct {
	session  sender
	connInfo string

	input         textinput.Model
	eventLog      []logEntry
	maxLogEntries int
	busy          bool

	width    int
	height   int
	quitting bool
}

// commandResultMsg reports the outcome of one command sent from the TUI
type commandResultMsg struct {
	command adapter.Command
	probe   adapter.ProbeResult
	reply   []byte
	err     error
}

//////////////////////////////////////////////////////////////
// Model Initialization
//////////////////////////////////////////////////////////////

func initialControlModel(session sender, connInfo string) controlModel {
	ti := textinput.New()
	ti.Placeholder = "move 10 -20 30"
	ti.Prompt = "> "
	ti.CharLimit = 64
	ti.Width = 40
	ti.Focus()

	return controlModel{
		session:       session,
		connInfo:      connInfo,
		input:         ti,
		eventLog:      make([]logEntry, 0),
		maxLogEntries: 200,
		width:         80,
		height:        24,
	}
}

//////////////////////////////////////////////////////////////
// Bubble Tea Interface
//////////////////////////////////////////////////////////////

func (m controlModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m controlModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.quitting = true
			return m, tea.Quit
		case tea.KeyEnter:
			return m.handleEnter()
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.input.Width = msg.Width - 8
		return m, nil

	case commandResultMsg:
		m.busy = false
		m.handleResult(msg)
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m controlModel) handleEnter() (tea.Model, tea.Cmd) {
	line := strings.TrimSpace(m.input.Value())
	m.input.SetValue("")
	if line == "" {
		return m, nil
	}

	words := strings.Fields(line)
	switch strings.ToLower(words[0]) {
	case "quit", "exit", "q":
		m.quitting = true
		return m, tea.Quit
	case "help", "?":
		for _, l := range strings.Split(grammarHelp(), "\n") {
			m.addLogEntry(strings.TrimSpace(l), entryInfo)
		}
		return m, nil
	case "stats":
		for _, l := range strings.Split(strings.TrimRight(m.session.Stats().String(), "\n"), "\n") {
			m.addLogEntry(l, entryInfo)
		}
		return m, nil
	}

	if m.busy {
		m.addLogEntry("Busy: previous command still in flight", entryError)
		return m, nil
	}

	command, err := parseCommandLine(words)
	if err != nil {
		m.addLogEntry(err.Error(), entryError)
		return m, nil
	}

	// Reject out-of-range values here so nothing reaches the session
	if _, err := adapter.Encode(command); err != nil {
		m.addLogEntry(err.Error(), entryError)
		return m, nil
	}

	m.busy = true
	return m, sendCommand(m.session, command)
}

// sendCommand runs one command on a Bubble Tea goroutine
func sendCommand(session sender, command adapter.Command) tea.Cmd {
	return func() tea.Msg {
		if _, ok := command.(adapter.SayHelloWorld); ok {
			result, reply, err := session.CheckConnection()
			return commandResultMsg{command: command, probe: result, reply: reply, err: err}
		}
		return commandResultMsg{command: command, err: session.Send(command)}
	}
}

func (m *controlModel) handleResult(msg commandResultMsg) {
	if msg.err != nil {
		m.addLogEntry(fmt.Sprintf("%s: %v", adapter.FormatOpcode(msg.command.Opcode()), msg.err), entryError)
		return
	}

	frame := adapter.MustEncode(msg.command)
	m.addLogEntry(fmt.Sprintf("%s  %s", adapter.FormatCommand(msg.command), adapter.Printable(frame.Bytes())), entrySent)

	if _, ok := msg.command.(adapter.SayHelloWorld); ok {
		if msg.probe == adapter.Connected {
			m.addLogEntry("Reply: "+adapter.Printable(msg.reply), entryReply)
		} else {
			m.addLogEntry("Timeout: no reply to hello world", entryError)
		}
	}
}

func (m controlModel) View() string {
	if m.quitting {
		return "Shutting down...\n"
	}

	var s strings.Builder

	// Styles
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("12")).
		Background(lipgloss.Color("235")).
		Padding(0, 1)

	headerStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))

	statsLabelStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("12")).
		Bold(true)

	statsValueStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("10"))

	warningStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("11"))

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	// Header
	s.WriteString(titleStyle.Render("HOPPER CONTROL"))
	s.WriteString(" ")
	s.WriteString(headerStyle.Render(fmt.Sprintf("| %s | Esc=quit help=commands", m.connInfo)))
	s.WriteString("\n\n")

	// Statistics bar
	stats := m.session.Stats()
	s.WriteString(fmt.Sprintf(" %s %s  %s %s  %s %s  %s %s\n\n",
		statsLabelStyle.Render("Frames:"), statsValueStyle.Render(fmt.Sprintf("%d", stats.FramesSent)),
		statsLabelStyle.Render("Probes:"), statsValueStyle.Render(fmt.Sprintf("%d/%d", stats.ProbeReplies, stats.Probes)),
		statsLabelStyle.Render("Rejected:"), warningStyle.Render(fmt.Sprintf("%d", stats.Rejected)),
		statsLabelStyle.Render("I/O errors:"), warningStyle.Render(fmt.Sprintf("%d", stats.WriteErrors+stats.ReadErrors))))

	s.WriteString(m.renderEventLog(statsLabelStyle, warningStyle, boxStyle))
	s.WriteString("\n")

	inputLine := m.input.View()
	if m.busy {
		inputLine += " " + warningStyle.Render("(sending...)")
	}
	s.WriteString(boxStyle.Width(m.width - 4).Render(inputLine))
	s.WriteString("\n")

	return s.String()
}

//////////////////////////////////////////////////////////////
// View Helpers
//////////////////////////////////////////////////////////////

func (m controlModel) renderEventLog(statsLabelStyle, warningStyle, boxStyle lipgloss.Style) string {
	var s strings.Builder
	s.WriteString(statsLabelStyle.Render("EVENTS"))
	s.WriteString("\n")

	headerStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	errorStyleLocal := lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	replyStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("10"))

	// Header, stats bar, box borders and input take about 12 lines
	logHeight := m.height - 12
	if logHeight < 3 {
		logHeight = 3
	}
	if len(m.eventLog) < logHeight {
		logHeight = len(m.eventLog)
	}

	startIdx := len(m.eventLog) - logHeight

	if len(m.eventLog) == 0 {
		s.WriteString(headerStyle.Render("  (no events yet, type help)"))
	} else {
		for i := startIdx; i < len(m.eventLog); i++ {
			entry := m.eventLog[i]
			timestamp := entry.timestamp.Format("15:04:05.000")
			icon := "i"
			style := headerStyle
			switch entry.kind {
			case entrySent:
				icon = ">"
				style = warningStyle
			case entryReply:
				icon = "<"
				style = replyStyle
			case entryError:
				icon = "x"
				style = errorStyleLocal
			}
			s.WriteString(fmt.Sprintf("%s %s %s\n",
				headerStyle.Render(timestamp),
				style.Render(icon),
				entry.message))
		}
	}

	return boxStyle.Width(m.width - 4).Render(s.String())
}

//////////////////////////////////////////////////////////////
// Helpers
//////////////////////////////////////////////////////////////

func (m *controlModel) addLogEntry(message string, kind entryKind) {
	entry := logEntry{
		timestamp: time.Now(),
		message:   message,
		kind:      kind,
	}
	m.eventLog = append(m.eventLog, entry)

	if len(m.eventLog) > m.maxLogEntries {
		m.eventLog = m.eventLog[len(m.eventLog)-m.maxLogEntries:]
	}
}
