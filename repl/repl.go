// Package repl SPDX-License-Identifier: Apache-2.0
package repl

import (
	stderrors "errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"livingroom/grammar"
	"livingroom/internal/parser"
	"livingroom/internal/wire"
	"livingroom/token"
)

const PROMPT = ">> "

var (
	accentColor    = lipgloss.Color("#3B82F6")
	successColor   = lipgloss.Color("#10B981")
	errorColor     = lipgloss.Color("#EF4444")
	mutedColor     = lipgloss.Color("#6B7280")
	highlightColor = lipgloss.Color("#F59E0B")

	promptStyle   = lipgloss.NewStyle().Foreground(accentColor).Bold(true)
	resultStyle   = lipgloss.NewStyle().Foreground(successColor)
	errorStyle    = lipgloss.NewStyle().Foreground(errorColor)
	mutedStyle    = lipgloss.NewStyle().Foreground(mutedColor)
	headerStyle   = lipgloss.NewStyle().Foreground(accentColor).Bold(true).Padding(0, 1)
	helpKeyStyle  = lipgloss.NewStyle().Foreground(highlightColor)
	helpDescStyle = lipgloss.NewStyle().Foreground(mutedColor)
	borderStyle   = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accentColor).
			Padding(0, 1)
)

// kindStyles colours the live token preview.
var kindStyles = map[token.Kind]lipgloss.Style{
	token.WORD:       lipgloss.NewStyle(),
	token.WHITESPACE: mutedStyle,
	token.ID:         lipgloss.NewStyle().Foreground(lipgloss.Color("#A855F7")),
	token.VARIABLE:   lipgloss.NewStyle().Foreground(highlightColor),
	token.WILDCARD:   lipgloss.NewStyle().Foreground(highlightColor).Bold(true),
	token.HOLE:       lipgloss.NewStyle().Foreground(highlightColor).Bold(true),
	token.BOOL:       lipgloss.NewStyle().Foreground(accentColor),
	token.NULL:       lipgloss.NewStyle().Foreground(accentColor),
	token.INT:        lipgloss.NewStyle().Foreground(successColor),
	token.FLOAT:      lipgloss.NewStyle().Foreground(successColor),
	token.STRING:     lipgloss.NewStyle().Foreground(lipgloss.Color("#14B8A6")),
}

type historyEntry struct {
	input  string
	output string
	isErr  bool
}

type model struct {
	textInput  textinput.Model
	history    []historyEntry
	cmdHistory []string
	historyIdx int
	width      int
	height     int
	pretty     bool
	showHelp   bool
	quitting   bool
}

type keyMap struct {
	Up    key.Binding
	Down  key.Binding
	Enter key.Binding
	Quit  key.Binding
	Clear key.Binding
	Help  key.Binding
}

var keys = keyMap{
	Up:    key.NewBinding(key.WithKeys("up"), key.WithHelp("↑", "previous line")),
	Down:  key.NewBinding(key.WithKeys("down"), key.WithHelp("↓", "next line")),
	Enter: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "tokenize")),
	Quit:  key.NewBinding(key.WithKeys("ctrl+c", "ctrl+d"), key.WithHelp("ctrl+c", "quit")),
	Clear: key.NewBinding(key.WithKeys("ctrl+l"), key.WithHelp("ctrl+l", "clear")),
	Help:  key.NewBinding(key.WithKeys("ctrl+k"), key.WithHelp("ctrl+k", "toggle help")),
}

func newModel() model {
	ti := textinput.New()
	ti.Placeholder = "gorog is at $x $y"
	ti.Focus()
	ti.CharLimit = 1000
	ti.Width = 60
	ti.PromptStyle = promptStyle
	ti.Prompt = PROMPT

	return model{
		textInput:  ti,
		historyIdx: -1,
	}
}

// Start runs the interactive session until the user quits.
func Start() error {
	p := tea.NewProgram(newModel(), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func (m model) Init() tea.Cmd {
	return textinput.Blink
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.textInput.Width = max(10, msg.Width-10)
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, keys.Clear):
			m.history = nil
			return m, nil

		case key.Matches(msg, keys.Help):
			m.showHelp = !m.showHelp
			return m, nil

		case key.Matches(msg, keys.Up):
			if len(m.cmdHistory) > 0 {
				if m.historyIdx == -1 {
					m.historyIdx = len(m.cmdHistory) - 1
				} else if m.historyIdx > 0 {
					m.historyIdx--
				}
				m.textInput.SetValue(m.cmdHistory[m.historyIdx])
				m.textInput.CursorEnd()
			}
			return m, nil

		case key.Matches(msg, keys.Down):
			if m.historyIdx != -1 {
				if m.historyIdx < len(m.cmdHistory)-1 {
					m.historyIdx++
					m.textInput.SetValue(m.cmdHistory[m.historyIdx])
				} else {
					m.historyIdx = -1
					m.textInput.SetValue("")
				}
				m.textInput.CursorEnd()
			}
			return m, nil

		case key.Matches(msg, keys.Enter):
			// leading and trailing whitespace is significant to the lexer
			input := m.textInput.Value()
			if input == "" {
				return m, nil
			}

			// ':' is an ordinary word character, so only known commands are
			// taken out of the lexer's hands
			if next, cmd, ok := m.handleCommand(strings.TrimSpace(input)); ok {
				next.textInput.SetValue("")
				next.historyIdx = -1
				return next, cmd
			}

			output, isErr := m.evaluate(input)
			m.history = append(m.history, historyEntry{input: input, output: output, isErr: isErr})
			m.cmdHistory = append(m.cmdHistory, input)
			m.textInput.SetValue("")
			m.historyIdx = -1
			return m, nil
		}
	}

	m.textInput, cmd = m.textInput.Update(msg)
	return m, cmd
}

// handleCommand runs a REPL command and reports whether input was one.
func (m model) handleCommand(input string) (model, tea.Cmd, bool) {
	switch input {
	case ":help", ":h":
		m.showHelp = !m.showHelp
	case ":clear", ":c":
		m.history = nil
	case ":pretty", ":p":
		m.pretty = !m.pretty
		state := "off"
		if m.pretty {
			state = "on"
		}
		m.history = append(m.history, historyEntry{input: input, output: "pretty output " + state})
	case ":quit", ":q":
		m.quitting = true
		return m, tea.Quit, true
	default:
		return m, nil, false
	}
	return m, nil, true
}

// evaluate tokenizes one line and describes the result.
func (m model) evaluate(input string) (string, bool) {
	stmt, err := grammar.ParseStatement(input)
	if err != nil {
		var pe *parser.ParseError
		if stderrors.As(err, &pe) {
			return fmt.Sprintf("%s [%s]", pe.Error(), pe.Code), true
		}
		return err.Error(), true
	}

	tokens := stmt.Tokens()
	var data []byte
	if m.pretty {
		data, err = wire.EncodeIndent(tokens, "    ", "  ")
	} else {
		data, err = wire.Encode(tokens)
	}
	if err != nil {
		return err.Error(), true
	}

	kind := "fact"
	if stmt.IsPattern() {
		kind = "pattern"
		if vars := stmt.Variables(); len(vars) > 0 {
			kind += " over $" + strings.Join(vars, ", $")
		}
	}
	return kind + "\n    " + string(data), false
}

// preview renders the tokens of the current input, or the lexical error.
func preview(input string) string {
	if input == "" {
		return ""
	}
	tokens, err := parser.Parse(input)
	if err != nil {
		return errorStyle.Render("✗ " + err.Error())
	}
	parts := make([]string, len(tokens))
	for i, tok := range tokens {
		parts[i] = kindStyles[tok.Kind].Render(tok.String())
	}
	return strings.Join(parts, mutedStyle.Render(" · "))
}

func (m model) View() string {
	if m.quitting {
		return mutedStyle.Render("Goodbye!\n")
	}

	var b strings.Builder

	b.WriteString(headerStyle.Render("livingroom") + " " + mutedStyle.Render("fact/pattern lexer") + "\n")
	b.WriteString(mutedStyle.Render(strings.Repeat("─", max(0, min(m.width-2, 60)))) + "\n\n")

	reservedLines := 9
	if m.showHelp {
		reservedLines += 9
	}
	historyStart := 0
	if available := m.height - reservedLines; available > 0 && len(m.history) > available {
		historyStart = len(m.history) - available
	}

	for _, entry := range m.history[historyStart:] {
		b.WriteString(mutedStyle.Render("  › ") + entry.input + "\n")
		if entry.isErr {
			b.WriteString("  " + errorStyle.Render("✗ "+entry.output) + "\n")
		} else {
			b.WriteString("  " + resultStyle.Render("→ "+entry.output) + "\n")
		}
		b.WriteString("\n")
	}

	if m.showHelp {
		b.WriteString(renderHelpPanel())
		b.WriteString("\n")
	}

	b.WriteString(m.textInput.View() + "\n")
	b.WriteString("   " + preview(m.textInput.Value()) + "\n\n")

	footer := helpKeyStyle.Render("ctrl+k") + helpDescStyle.Render(" help  ") +
		helpKeyStyle.Render("ctrl+l") + helpDescStyle.Render(" clear  ") +
		helpKeyStyle.Render("ctrl+c") + helpDescStyle.Render(" quit")
	b.WriteString(footer)

	return b.String()
}

func renderHelpPanel() string {
	help := []struct {
		key  string
		desc string
	}{
		{"↑/↓", "Navigate line history"},
		{"Enter", "Tokenize and encode the line"},
		{":pretty", "Toggle indented JSON"},
		{":help", "Toggle this help"},
		{":clear", "Clear history"},
		{":quit", "Exit"},
	}

	var lines []string
	lines = append(lines, lipgloss.NewStyle().Bold(true).Foreground(accentColor).Render("Help"))
	for _, h := range help {
		lines = append(lines, fmt.Sprintf("  %s  %s",
			helpKeyStyle.Render(fmt.Sprintf("%-8s", h.key)),
			helpDescStyle.Render(h.desc)))
	}
	return borderStyle.Render(strings.Join(lines, "\n"))
}
