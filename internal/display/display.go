// Package display provides the terminal UI using Bubble Tea.
//
// The [UI] type manages a persistent status bar and an input prompt at
// the bottom of the terminal. All application output is printed above
// the rendered area via Program.Println, so concurrent writes (such as
// image completions) never garble the display.
package display

import (
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/hammamikhairi/recipebox/internal/domain"
)

// ── Palette (warm stone) ─────────────────────────────────────────

var (
	stone      = lipgloss.Color("#a8a29e")
	faintStone = lipgloss.Color("#57534e")
	paleStone  = lipgloss.Color("#d6d3d1")
	apricot    = lipgloss.Color("#fed7aa")

	statusStyle = lipgloss.NewStyle().Background(lipgloss.Color("#292524")).Foreground(stone)

	modeBrowseStyle = lipgloss.NewStyle().Foreground(stone)
	modeDraftStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#fcd34d")).Bold(true)
	queryStyle      = lipgloss.NewStyle().Foreground(apricot)
	labelStyle      = lipgloss.NewStyle().Foreground(stone)
	sepStyle        = lipgloss.NewStyle().Foreground(faintStone)
	promptStyle     = lipgloss.NewStyle().Foreground(paleStone)

	// BannerStyle colours the startup banner.
	BannerStyle = lipgloss.NewStyle().Foreground(paleStone)

	noticeStyle  = lipgloss.NewStyle().Foreground(apricot)
	sectionStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#d9f99d"))
	bodyStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#e7e5e4"))
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#78716c"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#fda4af"))
	echoStyle    = lipgloss.NewStyle().Foreground(stone)
)

// Prompt is shown in front of the input line.
const Prompt = "recipes> "

// ── UI ───────────────────────────────────────────────────────────

// UI owns the terminal while the catalog is open.
//
// Call [NewUI] then [UI.Run] (blocking). Other goroutines may safely
// call [UI.Println] and read from [UI.InputChan] at any time after
// [UI.Ready] is closed.
type UI struct {
	program *tea.Program
	inputCh chan string
	readyCh chan struct{}
	source  domain.ViewStateSource
	done    atomic.Bool
}

// NewUI creates the display over a view-state source.
func NewUI(source domain.ViewStateSource) *UI {
	return &UI{
		source:  source,
		inputCh: make(chan string, 16),
		readyCh: make(chan struct{}),
	}
}

// Println writes above the status bar and prompt. Any goroutine may
// call it; outside the program's lifetime it writes to stdout.
func (u *UI) Println(a ...interface{}) {
	if u.program != nil && !u.done.Load() {
		u.program.Println(a...)
	} else {
		fmt.Println(a...)
	}
}

// InputChan delivers each submitted prompt line.
func (u *UI) InputChan() <-chan string { return u.inputCh }

// ── Styled print helpers ─────────────────────────────────────────

// PrintChat prints a reply to the user.
func (u *UI) PrintChat(text string) {
	u.Println(noticeStyle.Render("  " + text))
}

// PrintHeader prints a section header.
func (u *UI) PrintHeader(text string) {
	u.Println(sectionStyle.Render("  " + text))
}

// PrintHint prints a dimmed line.
func (u *UI) PrintHint(text string) {
	u.Println(dimStyle.Render("  " + text))
}

// PrintUrgent prints an urgent/error line.
func (u *UI) PrintUrgent(text string) {
	u.Println(errorStyle.Render("  " + text))
}

// PrintBlock prints pre-rendered multi-line output as-is.
func (u *UI) PrintBlock(text string) {
	u.Println(strings.TrimRight(text, "\n"))
}

// PrintUserInput copies a submitted command into the scrollback.
func (u *UI) PrintUserInput(text string) {
	u.Println(promptStyle.Render(strings.TrimSpace(Prompt)) + " " + echoStyle.Render(text))
}

// Ready is closed once the Bubble Tea event loop is running.
func (u *UI) Ready() <-chan struct{} { return u.readyCh }

// Quit stops the program. Safe to call more than once.
func (u *UI) Quit() {
	if u.program != nil {
		u.program.Quit()
	}
}

// Run starts the Bubble Tea event loop. Blocks until quit.
func (u *UI) Run() error {
	ti := textinput.New()
	ti.Prompt = Prompt
	ti.PromptStyle = promptStyle
	ti.TextStyle = echoStyle
	ti.Cursor.Style = lipgloss.NewStyle().Foreground(paleStone)
	ti.Focus()
	ti.CharLimit = 2000
	ti.Width = 60

	m := model{
		source:  u.source,
		input:   ti,
		inputCh: u.inputCh,
		readyCh: u.readyCh,
		echoFn:  u.PrintUserInput,
	}
	m.refresh()

	u.program = tea.NewProgram(m)
	_, err := u.program.Run()
	u.done.Store(true)
	return err
}

// ── Model ────────────────────────────────────────────────────────

type model struct {
	source  domain.ViewStateSource
	input   textinput.Model
	inputCh chan<- string
	readyCh chan struct{}
	echoFn  func(string)
	state   domain.ViewState
	width   int
}

// Messages.
type tickMsg time.Time

func (m model) Init() tea.Cmd {
	return tea.Batch(
		textinput.Blink,
		tickCmd(),
		signalReady(m.readyCh),
	)
}

func signalReady(ch chan struct{}) tea.Cmd {
	return func() tea.Msg {
		close(ch)
		return nil
	}
}

// The status bar polls the controller; 200ms keeps it in step with
// commands without a push channel.
func tickCmd() tea.Cmd {
	return tea.Tick(200*time.Millisecond, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC:
			return m, tea.Quit
		case tea.KeyEnter:
			cmd := m.submit()
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.input.Width = max(msg.Width-len(Prompt), 1)
		return m, nil

	case tickMsg:
		m.refresh()
		return m, tea.Batch(tickCmd(), tea.SetWindowTitle(TitleFor(m.state)))
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// submit hands the typed line to the app and echoes it. The echo runs
// as a Cmd because Println must not be called from Update.
func (m *model) submit() tea.Cmd {
	line := m.input.Value()
	m.input.Reset()
	if strings.TrimSpace(line) == "" {
		return nil
	}
	m.inputCh <- line
	echo := m.echoFn
	return func() tea.Msg {
		echo(line)
		return nil
	}
}

func (m *model) refresh() {
	if m.source != nil {
		m.state = m.source.ViewState()
	}
}

func (m model) View() string {
	var b strings.Builder
	b.WriteString(StatusBar(m.state, m.width))
	b.WriteString("\n\n")
	b.WriteString(m.input.View())
	return b.String()
}

// ── Status bar ───────────────────────────────────────────────────

// modeLabel describes what the user is doing.
func modeLabel(vs domain.ViewState) string {
	name := vs.DraftName
	if name == "" {
		name = "untitled"
	}
	switch vs.Mode {
	case domain.ModeCreating:
		return fmt.Sprintf("adding %q", name)
	case domain.ModeEditing:
		return fmt.Sprintf("editing %q", name)
	default:
		return "browsing"
	}
}

// StatusBar renders the full-width bar: mode, search, and counts.
func StatusBar(vs domain.ViewState, width int) string {
	var parts []string
	if vs.Mode == domain.ModeClosed {
		parts = append(parts, modeBrowseStyle.Render(modeLabel(vs)))
	} else {
		parts = append(parts, modeDraftStyle.Render(modeLabel(vs)))
	}
	if vs.Query != "" {
		parts = append(parts, labelStyle.Render("search: ")+queryStyle.Render(vs.Query))
	}
	parts = append(parts, labelStyle.Render(fmt.Sprintf("%d/%d recipes", vs.Visible, vs.Total)))

	content := " " + strings.Join(parts, sepStyle.Render("  │  ")) + " "

	if width <= 0 {
		width = 80
	}
	return statusStyle.Width(width).Render(content)
}

// TitleFor returns the terminal window title for a view state.
func TitleFor(vs domain.ViewState) string {
	if vs.Mode == domain.ModeClosed && vs.Query == "" {
		return "RecipeBox"
	}
	title := "RecipeBox · " + modeLabel(vs)
	if vs.Query != "" {
		title += " | search: " + vs.Query
	}
	return title
}
