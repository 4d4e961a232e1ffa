package cmd

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	"github.com/ardnew/sweep/tmpl"
)

// Repl starts an interactive prompt for evaluating snippet expressions
// against the built-in environment, for developing templates. Assignments
// of the form "name = expression" bind into the session namespace exactly
// as they would during expansion.
type Repl struct {
	Set  []string `help:"Seed namespace binding, evaluated before the session" short:"s" placeholder:"name=value"`
	Seed int64    `help:"Seed for random-sampling builtins (0 selects time)"`
}

// Run executes the repl command.
func (r *Repl) Run(ctx context.Context) error {
	ev := tmpl.NewEvaluator(r.Seed)

	ns, err := tmpl.ParseBindings(ev, r.Set)
	if err != nil {
		return err
	}

	if ns == nil {
		ns = tmpl.Namespace{}
	}

	ns[tmpl.IndexKey] = 0

	model := replModel{
		input: newReplInput(),
		ev:    ev,
		ns:    ns,
	}

	program := tea.NewProgram(model, tea.WithContext(ctx))

	_, err = program.Run()

	return err
}

// Transcript styles.
//
//nolint:gochecknoglobals
var (
	styleResult = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	styleFault  = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	styleHint   = lipgloss.NewStyle().Faint(true)
)

// transcriptLines bounds how much history the view renders.
const transcriptLines = 20

func newReplInput() textinput.Model {
	input := textinput.New()
	input.Prompt = "[[ "
	input.Placeholder = "expression"
	input.Focus()

	return input
}

type replModel struct {
	input   textinput.Model
	ev      *tmpl.Evaluator
	ns      tmpl.Namespace
	lines   []string
	history []string
	cursor  int // history position, len(history) means live input
}

func (m replModel) Init() tea.Cmd { return textinput.Blink }

func (m replModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.Type {
		case tea.KeyCtrlC, tea.KeyCtrlD, tea.KeyEsc:
			return m, tea.Quit

		case tea.KeyEnter:
			return m.submit()

		case tea.KeyTab:
			m.complete()

			return m, nil

		case tea.KeyUp:
			m.recall(-1)

			return m, nil

		case tea.KeyDown:
			m.recall(+1)

			return m, nil
		}
	}

	var cmd tea.Cmd

	m.input, cmd = m.input.Update(msg)

	return m, cmd
}

func (m replModel) View() string {
	lines := m.lines
	if len(lines) > transcriptLines {
		lines = lines[len(lines)-transcriptLines:]
	}

	var buf strings.Builder

	for _, line := range lines {
		buf.WriteString(line)
		buf.WriteByte('\n')
	}

	buf.WriteString(m.input.View())
	buf.WriteByte('\n')
	buf.WriteString(styleHint.Render("tab: complete  up/down: history  esc: quit"))
	buf.WriteByte('\n')

	return buf.String()
}

// submit evaluates the current input line and appends the result (or the
// failure) to the transcript.
func (m replModel) submit() (tea.Model, tea.Cmd) {
	text := strings.TrimSpace(m.input.Value())
	if text == "" {
		return m, nil
	}

	if text == "exit" || text == "quit" {
		return m, tea.Quit
	}

	m.history = append(m.history, text)
	m.cursor = len(m.history)
	m.lines = append(m.lines, m.input.Prompt+text+" ]]")

	snip := tmpl.ParseSnippet(text)

	value, err := m.ev.Eval(snip.Expr, m.ns)

	switch {
	case err != nil:
		m.lines = append(m.lines, styleFault.Render(err.Error()))

	case snip.Name != "":
		m.ns[snip.Name] = value
		m.lines = append(m.lines,
			styleResult.Render(snip.Name+" = "+tmpl.FormatValue(value)))

	default:
		m.lines = append(m.lines, styleResult.Render(tmpl.FormatValue(value)))
	}

	m.input.SetValue("")

	return m, nil
}

// complete replaces the trailing word with its best fuzzy match among the
// built-in and namespace names.
func (m *replModel) complete() {
	text := m.input.Value()

	start := strings.LastIndexFunc(text, func(r rune) bool {
		return !isNameRune(r)
	}) + 1

	word := text[start:]
	if word == "" {
		return
	}

	candidates := append(m.ev.Builtins(), m.ns.SortedKeys()...)

	matches := fuzzy.Find(word, candidates)
	if len(matches) == 0 {
		return
	}

	m.input.SetValue(text[:start] + matches[0].Str)
	m.input.CursorEnd()
}

// recall moves through input history; direction is -1 for older and +1 for
// newer entries.
func (m *replModel) recall(direction int) {
	if len(m.history) == 0 {
		return
	}

	m.cursor += direction

	if m.cursor < 0 {
		m.cursor = 0
	}

	if m.cursor >= len(m.history) {
		m.cursor = len(m.history)
		m.input.SetValue("")

		return
	}

	m.input.SetValue(m.history[m.cursor])
	m.input.CursorEnd()
}

func isNameRune(r rune) bool {
	return r == '_' || r == '.' ||
		(r >= 'a' && r <= 'z') ||
		(r >= 'A' && r <= 'Z') ||
		(r >= '0' && r <= '9')
}
