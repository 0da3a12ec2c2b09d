// Copyright (c) 2026 ToeiRei
// Cliffcrown - a greetd greeter
// This source code is licensed under the MIT license found in the LICENSE file.

// This file contains the top-level model for the greeter: a state machine
// that walks the user through the greetd authentication conversation and
// asks greetd to start the configured session on success.
package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/toeirei/cliffcrown/internal/config"
	"github.com/toeirei/cliffcrown/internal/greetd"
	"github.com/toeirei/cliffcrown/internal/i18n"
	"github.com/toeirei/cliffcrown/internal/logging"
	"github.com/toeirei/cliffcrown/internal/users"
)

// conversation is the slice of greetd.Conversation the TUI needs. Tests
// substitute a scripted fake.
type conversation interface {
	Start(username string) (greetd.Event, error)
	Answer(answer *string) (greetd.Event, error)
	Cancel() error
	Launch(cmd, env []string) error
}

// greeterState represents which screen is currently active.
type greeterState int

const (
	// stateIdle shows the "press Enter to begin" screen.
	stateIdle greeterState = iota
	// stateUsername asks who wants to log in.
	stateUsername
	// stateBusy waits on a greetd round trip.
	stateBusy
	// statePrompt collects the answer to an auth message.
	statePrompt
	// stateNote displays an info or error note from the auth stack.
	stateNote
	// stateFatal is reached when the conversation cannot continue.
	stateFatal
)

// Messages produced by the commands below.
type (
	convEventMsg struct {
		ev  greetd.Event
		err error
	}
	cancelledMsg   struct{ err error }
	launchedMsg    struct{ err error }
	usersLoadedMsg struct{ names []string }
	bgLoadedMsg    struct {
		bg  *background
		err error
	}
	bgChangedMsg struct{}
)

// greeterModel is the top-level bubbletea model.
type greeterModel struct {
	cfg  config.Config
	conv conversation

	state greeterState
	input textinput.Model
	spin  spinner.Model

	prompt      greetd.AuthPrompt
	note        string
	noteConfirm bool
	busyHint    string
	flash       string // last auth failure, shown until the next attempt

	username    string
	candidates  []string
	suggestions []string

	width  int
	height int

	bg      *background
	watcher *backgroundWatcher

	fatal error
}

func newGreeterModel(cfg config.Config, conv conversation) greeterModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = spinnerStyle

	return greeterModel{
		cfg:      cfg,
		conv:     conv,
		state:    stateIdle,
		spin:     s,
		busyHint: i18n.T("greeter.waiting"),
	}
}

func (m greeterModel) Init() tea.Cmd {
	cmds := []tea.Cmd{m.spin.Tick, loadUsersCmd()}
	if m.cfg.Background != "" {
		cmds = append(cmds, loadBackgroundCmd(m.cfg.Background))
	}
	return tea.Batch(cmds...)
}

// newPromptInput builds the text input for a greetd prompt. Secret prompts
// never echo.
func newPromptInput(secret bool) textinput.Model {
	t := textinput.New()
	t.Cursor.Style = focusedStyle
	t.CharLimit = 128
	t.Width = 40
	if secret {
		t.EchoMode = textinput.EchoPassword
		t.EchoCharacter = '•'
	}
	t.Focus()
	return t
}

// startCmd begins an authentication attempt.
func startCmd(conv conversation, username string) tea.Cmd {
	return func() tea.Msg {
		ev, err := conv.Start(username)
		return convEventMsg{ev: ev, err: err}
	}
}

// answerCmd replies to the pending auth message.
func answerCmd(conv conversation, answer *string) tea.Cmd {
	return func() tea.Msg {
		ev, err := conv.Answer(answer)
		return convEventMsg{ev: ev, err: err}
	}
}

// cancelCmd aborts the current attempt so the user can retry.
func cancelCmd(conv conversation) tea.Cmd {
	return func() tea.Msg {
		return cancelledMsg{err: conv.Cancel()}
	}
}

// launchCmd asks greetd to start the session.
func launchCmd(conv conversation, argv []string) tea.Cmd {
	return func() tea.Msg {
		return launchedMsg{err: conv.Launch(argv, nil)}
	}
}

// loadUsersCmd reads completion candidates from the user database.
func loadUsersCmd() tea.Cmd {
	return func() tea.Msg {
		names, err := users.LoginNames(users.PasswdPath)
		if err != nil {
			logging.Debugf("no username completion: %v", err)
			return usersLoadedMsg{}
		}
		return usersLoadedMsg{names: names}
	}
}

func (m greeterModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case usersLoadedMsg:
		m.candidates = msg.names
		return m, nil

	case convEventMsg:
		return m.handleConvEvent(msg)

	case cancelledMsg:
		if msg.err != nil {
			return m.fail(msg.err)
		}
		// Back to the start of the flow for another attempt.
		if m.cfg.RestrictedUser != "" {
			m.state = stateIdle
			return m, nil
		}
		m.state = stateUsername
		m.input = newPromptInput(false)
		m.suggestions = nil
		return m, textinput.Blink

	case launchedMsg:
		if msg.err != nil {
			return m.fail(msg.err)
		}
		logging.Infof("session handed off to greetd for %s", m.username)
		return m, tea.Quit

	case bgLoadedMsg:
		if msg.err != nil {
			logging.Warnf("background unavailable: %v", msg.err)
			return m, nil
		}
		m.bg = msg.bg
		if m.watcher == nil {
			w, err := watchBackground(m.cfg.Background)
			if err != nil {
				logging.Debugf("background watch disabled: %v", err)
				return m, nil
			}
			m.watcher = w
			return m, m.watcher.wait()
		}
		return m, nil

	case bgChangedMsg:
		logging.Debugf("background file changed, reloading")
		return m, tea.Batch(loadBackgroundCmd(m.cfg.Background), m.watcher.wait())
	}

	return m, nil
}

// handleKey routes key presses by screen.
func (m greeterModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	switch m.state {
	case stateIdle:
		if msg.Type == tea.KeyEnter {
			return m.begin()
		}

	case stateUsername:
		switch msg.String() {
		case "enter":
			name := strings.TrimSpace(m.input.Value())
			if name == "" {
				return m, nil
			}
			m.username = name
			m.flash = ""
			m.state = stateBusy
			return m, startCmd(m.conv, name)
		case "tab":
			if len(m.suggestions) > 0 {
				m.input.SetValue(m.suggestions[0])
				m.input.CursorEnd()
				m.updateSuggestions()
			}
			return m, nil
		case "esc":
			return m, tea.Quit
		default:
			var cmd tea.Cmd
			m.input, cmd = m.input.Update(msg)
			m.updateSuggestions()
			return m, cmd
		}

	case statePrompt:
		switch msg.String() {
		case "enter":
			answer := m.input.Value()
			m.input.Reset()
			m.state = stateBusy
			return m, answerCmd(m.conv, &answer)
		case "esc":
			m.state = stateBusy
			return m, cancelCmd(m.conv)
		default:
			var cmd tea.Cmd
			m.input, cmd = m.input.Update(msg)
			return m, cmd
		}

	case stateNote:
		if m.noteConfirm && msg.Type == tea.KeyEnter {
			m.state = stateBusy
			return m, answerCmd(m.conv, nil)
		}

	case stateFatal:
		if msg.Type == tea.KeyEnter || msg.String() == "q" || msg.String() == "esc" {
			return m, tea.Quit
		}
	}

	return m, nil
}

// begin leaves the idle screen: straight into authentication when a
// restricted user is configured, otherwise via the username prompt.
func (m greeterModel) begin() (tea.Model, tea.Cmd) {
	if m.cfg.RestrictedUser != "" {
		m.username = m.cfg.RestrictedUser
		m.flash = ""
		m.state = stateBusy
		return m, startCmd(m.conv, m.username)
	}
	m.state = stateUsername
	m.input = newPromptInput(false)
	m.suggestions = nil
	return m, textinput.Blink
}

// handleConvEvent advances the screen from a greetd response.
func (m greeterModel) handleConvEvent(msg convEventMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		return m.fail(msg.err)
	}

	switch msg.ev.Kind {
	case greetd.EventPrompt:
		p := msg.ev.Prompt
		switch p.Kind {
		case greetd.PromptVisible, greetd.PromptSecret:
			m.prompt = p
			m.input = newPromptInput(p.Secret())
			m.state = statePrompt
			return m, textinput.Blink
		case greetd.PromptInfo:
			// Info notes are acknowledged right away; the note stays on
			// screen until the next event replaces it.
			m.note = p.Message
			m.noteConfirm = false
			m.state = stateNote
			return m, answerCmd(m.conv, nil)
		case greetd.PromptError:
			m.note = p.Message
			m.noteConfirm = true
			m.state = stateNote
			return m, nil
		}

	case greetd.EventFailure:
		if msg.ev.Failure.Auth {
			logging.Infof("authentication failed for %s: %s", m.username, msg.ev.Failure.Description)
		} else {
			logging.Errorf("greetd rejected the attempt for %s: %s", m.username, msg.ev.Failure.Description)
		}
		m.flash = msg.ev.Failure.Description
		m.state = stateBusy
		return m, cancelCmd(m.conv)

	case greetd.EventSuccess:
		m.busyHint = i18n.T("greeter.starting_session")
		m.state = stateBusy
		return m, launchCmd(m.conv, m.cfg.Command)
	}

	return m, nil
}

// fail parks the model on the fatal screen. The error is reported by Run
// once the program exits.
func (m greeterModel) fail(err error) (tea.Model, tea.Cmd) {
	logging.Errorf("conversation failed: %v", err)
	m.fatal = err
	m.state = stateFatal
	return m, nil
}

// updateSuggestions recomputes completion candidates for the typed prefix.
func (m *greeterModel) updateSuggestions() {
	prefix := m.input.Value()
	m.suggestions = nil
	if prefix == "" {
		return
	}
	for _, name := range m.candidates {
		if strings.HasPrefix(name, prefix) && name != prefix {
			m.suggestions = append(m.suggestions, name)
		}
	}
}

func (m greeterModel) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	dialog := dialogBoxStyle.Render(m.dialogView())
	if m.bg != nil {
		return overlay(m.bg.render(m.width, m.height), dialog, m.width, m.height)
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, dialog)
}

// dialogView renders the inside of the login dialog for the active screen.
func (m greeterModel) dialogView() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("CliffCrown"))
	b.WriteString("\n\n")

	switch m.state {
	case stateIdle:
		if m.flash != "" {
			b.WriteString(errorStyle.Render(i18n.T("greeter.auth_failed", m.flash)))
			b.WriteString("\n\n")
		}
		b.WriteString(i18n.T("greeter.press_enter"))

	case stateUsername:
		if m.flash != "" {
			b.WriteString(errorStyle.Render(i18n.T("greeter.auth_failed", m.flash)))
			b.WriteString("\n\n")
		}
		b.WriteString(promptStyle.Render(i18n.T("greeter.username")))
		b.WriteString(" ")
		b.WriteString(m.input.View())
		if len(m.suggestions) > 0 {
			b.WriteString("\n")
			shown := m.suggestions
			if len(shown) > 4 {
				shown = shown[:4]
			}
			for i, s := range shown {
				style := suggestionStyle
				if i == 0 {
					style = selectedSuggestionStyle
				}
				b.WriteString("\n  ")
				b.WriteString(style.Render(s))
			}
		}
		b.WriteString("\n\n")
		b.WriteString(helpStyle.Render(i18n.T("greeter.help.complete") + " · " + i18n.T("greeter.help.submit") + " · " + i18n.T("greeter.help.quit")))

	case stateBusy:
		b.WriteString(m.spin.View())
		b.WriteString(" ")
		b.WriteString(m.busyHint)

	case statePrompt:
		b.WriteString(promptStyle.Render(m.prompt.Message))
		b.WriteString(" ")
		b.WriteString(m.input.View())

	case stateNote:
		b.WriteString(m.note)
		if m.noteConfirm {
			b.WriteString("\n\n")
			b.WriteString(helpStyle.Render(i18n.T("greeter.press_enter_continue")))
		}

	case stateFatal:
		b.WriteString(errorStyle.Render(i18n.T("greeter.fatal", m.fatal)))
		b.WriteString("\n\n")
		b.WriteString(helpStyle.Render(i18n.T("greeter.press_enter_continue")))
	}

	return b.String()
}

// overlay centers the dialog on top of the rendered background. Dialog rows
// replace background rows wholesale, which keeps the compositing free of
// mid-line ANSI splicing.
func overlay(bg, dialog string, width, height int) string {
	bgLines := strings.Split(bg, "\n")
	for len(bgLines) < height {
		bgLines = append(bgLines, "")
	}
	dialogLines := strings.Split(dialog, "\n")

	top := (height - len(dialogLines)) / 2
	if top < 0 {
		top = 0
	}
	for i, line := range dialogLines {
		row := top + i
		if row >= len(bgLines) {
			break
		}
		bgLines[row] = lipgloss.PlaceHorizontal(width, lipgloss.Center, line)
	}
	return strings.Join(bgLines[:height], "\n")
}

// Run connects to greetd and drives the greeter until a session starts or
// the user gives up. It returns nil when exiting was intentional.
func Run(cfg config.Config) error {
	client, err := greetd.Dial()
	if err != nil {
		return err
	}
	defer client.Close()

	m := newGreeterModel(cfg, greetd.NewConversation(client))
	p := tea.NewProgram(m, tea.WithAltScreen())
	out, err := p.Run()
	if err != nil {
		return err
	}
	if final, ok := out.(greeterModel); ok {
		if final.watcher != nil {
			final.watcher.close()
		}
		return final.fatal
	}
	return nil
}
