package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alecthomas/kingpin"
	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/Lakshanj98/Fasta-Analyzer/internal/cleanse"
	"github.com/Lakshanj98/Fasta-Analyzer/internal/composition"
	"github.com/Lakshanj98/Fasta-Analyzer/internal/config"
	"github.com/Lakshanj98/Fasta-Analyzer/internal/logging"
	"github.com/Lakshanj98/Fasta-Analyzer/internal/molecule"
	"github.com/Lakshanj98/Fasta-Analyzer/internal/ops"
)

// Colors for modern design
var (
	primaryColor   = lipgloss.Color("#7C3AED") // Purple
	secondaryColor = lipgloss.Color("#10B981") // Green
	accentColor    = lipgloss.Color("#F59E0B") // Amber
	errorColor     = lipgloss.Color("#EF4444") // Red
	surfaceColor   = lipgloss.Color("#1F2937") // Dark gray
	textColor      = lipgloss.Color("#F3F4F6") // Light gray
	mutedColor     = lipgloss.Color("#9CA3AF") // Muted gray
	borderColor    = lipgloss.Color("#374151") // Border gray
)

// Styles
var (
	containerStyle = lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(borderColor)

	titleStyle = lipgloss.NewStyle().
			Foreground(primaryColor).
			Bold(true)

	statusBarStyle = lipgloss.NewStyle().
			Foreground(textColor).
			Background(surfaceColor).
			Padding(0, 1)

	labelStyle = lipgloss.NewStyle().
			Foreground(secondaryColor).
			Bold(true)

	paramStyle = lipgloss.NewStyle().Foreground(accentColor).Bold(true)
	mutedStyle = lipgloss.NewStyle().Foreground(mutedColor)
)

var opTitles = map[ops.Operation]string{
	ops.Split:        "Split multi-FASTA file",
	ops.Count:        "Count sequences",
	ops.Merge:        "Combine FASTA files",
	ops.Cleanse:      "Remove unwanted characters",
	ops.Length:       "Add sequence length",
	ops.LengthBatch:  "Add sequence lengths (one file)",
	ops.Content:      "Add AT/GC content",
	ops.ContentBatch: "Add AT/GC contents (one file)",
	ops.ATContent:    "Get AT content",
	ops.GCContent:    "Get GC content",
}

type listItem struct {
	op ops.Operation
}

func (i listItem) FilterValue() string { return opTitles[i.op] }

func (i listItem) Title() string { return opTitles[i.op] }

func (i listItem) Description() string { return i.op.Description() }

type state int

const (
	stateMenu state = iota
	statePicking
	stateRunning
	stateModal
)

// opDoneMsg carries the outcome of an operation run in the background.
type opDoneMsg struct {
	req   ops.Request
	res   ops.Result
	err   error
	notes []ops.Notification
}

type model struct {
	list     list.Model
	picker   filepicker.Model
	state    state
	req      ops.Request
	selected []string
	// label mirrors the output label of the classic window: counts and
	// single-sequence content values land here.
	label    string
	modal    ops.Notification
	showHelp bool
	width    int
	height   int
	cfg      *config.Config
	logger   *log.Logger
}

func initialModel(cfg *config.Config, logger *log.Logger) model {
	items := make([]list.Item, len(ops.Operations))
	for i, op := range ops.Operations {
		items[i] = listItem{op: op}
	}

	l := list.New(items, list.NewDefaultDelegate(), 0, 0)
	l.Title = "FASTA Processor"
	l.SetShowStatusBar(false)
	l.SetShowPagination(true)
	l.SetFilteringEnabled(true)
	l.DisableQuitKeybindings()

	fp := filepicker.New()
	fp.AllowedTypes = []string{ops.InputExt}
	fp.CurrentDirectory = cfg.StartDir

	return model{
		list:   l,
		picker: fp,
		state:  stateMenu,
		req:    ops.Request{Op: ops.Split, Kind: composition.AT, Molecule: molecule.DNA, Hint: cleanse.Nucleotide},
		cfg:    cfg,
		logger: logger,
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) cycleKind() model {
	if m.req.Kind == composition.AT {
		m.req.Kind = composition.GC
	} else {
		m.req.Kind = composition.AT
	}
	return m
}

func (m model) cycleMolecule() model {
	if m.req.Molecule == molecule.DNA {
		m.req.Molecule = molecule.RNA
	} else {
		m.req.Molecule = molecule.DNA
	}
	return m
}

func (m model) cycleHint() model {
	if m.req.Hint == cleanse.Nucleotide {
		m.req.Hint = cleanse.Protein
	} else {
		m.req.Hint = cleanse.Nucleotide
	}
	return m
}

// addSelected records a picked file for a multi-file operation, once.
func (m model) addSelected(path string) model {
	for _, p := range m.selected {
		if p == path {
			return m
		}
	}
	m.selected = append(m.selected, path)
	return m
}

// runCmd runs the current request against paths off the UI loop.
func (m model) runCmd(paths []string) tea.Cmd {
	req := m.req
	outDir := m.cfg.OutputDir
	logger := m.logger
	sel := ops.StaticSelector(append([]string(nil), paths...))
	return func() tea.Msg {
		notes := &ops.RecordingNotifier{}
		o := &ops.Orchestrator{Selector: sel, Notifier: notes, OutputDir: outDir, Logger: logger}
		res, err := o.Run(req)
		return opDoneMsg{req: req, res: res, err: err, notes: notes.Notifications()}
	}
}

func (m model) start(paths []string) (model, tea.Cmd) {
	m.state = stateRunning
	m.selected = nil
	return m, m.runCmd(paths)
}

func (m model) finish(msg opDoneMsg) model {
	m.state = stateMenu
	if msg.err == nil && msg.res.Label != "" {
		m.label = msg.res.Label
	}
	if len(msg.notes) > 0 {
		m.modal = msg.notes[len(msg.notes)-1]
		m.state = stateModal
	}
	return m
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		// Calculate list dimensions (left panel takes 1/3 of width)
		listWidth := msg.Width / 3
		listHeight := msg.Height - 4 // Account for borders and status

		m.list.SetWidth(listWidth)
		m.list.SetHeight(listHeight)

		var cmd tea.Cmd
		m.picker, cmd = m.picker.Update(msg)
		return m, cmd

	case opDoneMsg:
		return m.finish(msg), nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		switch m.state {
		case stateModal:
			m.state = stateMenu
			return m, nil
		case stateRunning:
			return m, nil
		case statePicking:
			return m.updatePicking(msg)
		}
		return m.updateMenu(msg)
	}

	var cmd tea.Cmd
	m.picker, cmd = m.picker.Update(msg)
	return m, cmd
}

func (m model) updateMenu(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.list.FilterState() != list.Filtering {
		if m.showHelp {
			switch msg.String() {
			case "h", "esc", "q":
				m.showHelp = false
			}
			return m, nil
		}
		switch msg.String() {
		case "q":
			return m, tea.Quit
		case "h":
			m.showHelp = true
			return m, nil
		case "c":
			return m.cycleKind(), nil
		case "m":
			return m.cycleMolecule(), nil
		case "t":
			return m.cycleHint(), nil
		case "enter":
			item, ok := m.list.SelectedItem().(listItem)
			if !ok {
				return m, nil
			}
			m.req.Op = item.op
			m.label = ""
			m.selected = nil
			m.state = statePicking
			return m, m.picker.Init()
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m model) updatePicking(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		// a cancelled dialog: the operation aborts without a notice
		return m.start(nil)
	case "tab":
		if m.req.Op.MultiFile() {
			return m.start(m.selected)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.picker, cmd = m.picker.Update(msg)
	if ok, path := m.picker.DidSelectFile(msg); ok {
		if m.req.Op.MultiFile() {
			return m.addSelected(path), cmd
		}
		return m.start([]string{path})
	}
	if ok, path := m.picker.DidSelectDisabledFile(msg); ok {
		return m.start([]string{path})
	}
	return m, cmd
}

func (m model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	if m.showHelp {
		return m.renderHelpModal()
	}
	if m.state == stateModal {
		return m.renderNotification()
	}

	main := lipgloss.JoinHorizontal(
		lipgloss.Top,
		m.renderLeftPanel(),
		m.renderRightPanel(),
	)

	return lipgloss.JoinVertical(
		lipgloss.Left,
		main,
		m.renderStatusBar(),
	)
}

func (m model) renderLeftPanel() string {
	listWidth := m.width / 3

	return containerStyle.
		Width(listWidth - 2). // Account for padding
		Height(m.height - 4). // Account for status bar
		Render(m.list.View())
}

// params describes the request parameters that apply to op.
func (m model) params(op ops.Operation) string {
	switch op {
	case ops.Cleanse:
		return mutedStyle.Render("Sequence type: ") + paramStyle.Render(m.req.Hint.String()) + mutedStyle.Render("  (t)")
	case ops.Content, ops.ContentBatch:
		return mutedStyle.Render("Content: ") + paramStyle.Render(string(m.req.Kind)) + mutedStyle.Render(" (c)    Molecule: ") +
			paramStyle.Render(m.req.Molecule.String()) + mutedStyle.Render(" (m)")
	}
	return ""
}

func (m model) renderRightPanel() string {
	rightWidth := (m.width * 2) / 3
	panel := containerStyle.Width(rightWidth - 2).Height(m.height - 4)

	if m.state == statePicking {
		header := titleStyle.Render(opTitles[m.req.Op])
		hint := mutedStyle.Render("enter: select a .fasta file    q: cancel")
		var picked []string
		if m.req.Op.MultiFile() {
			hint = mutedStyle.Render("enter: add a .fasta file    tab: done    q: cancel")
			for _, p := range m.selected {
				picked = append(picked, paramStyle.Render("+ "+p))
			}
		}
		parts := append([]string{header, hint, ""}, picked...)
		parts = append(parts, "", m.picker.View())
		return panel.Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
	}
	if m.state == stateRunning {
		return panel.Render(mutedStyle.Render("Working..."))
	}

	item, ok := m.list.SelectedItem().(listItem)
	if !ok {
		return panel.Render("No operation selected")
	}
	parts := []string{
		titleStyle.Render(opTitles[item.op]),
		item.op.Description(),
	}
	if p := m.params(item.op); p != "" {
		parts = append(parts, "", p)
	}
	parts = append(parts, "", mutedStyle.Render("Output folder: ")+m.cfg.OutputDir)
	if m.label != "" {
		parts = append(parts, "", labelStyle.Render(m.label))
	}
	return panel.Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
}

func (m model) renderStatusBar() string {
	leftInfo := fmt.Sprintf("%d operations", len(ops.Operations))
	centerInfo := fmt.Sprintf("Content: %s  Molecule: %s  Cleanse: %s", m.req.Kind, m.req.Molecule, m.req.Hint)
	rightInfo := "Press 'h' for help • 'q' to quit"

	totalUsed := len(leftInfo) + len(centerInfo) + len(rightInfo)
	spacing := m.width - totalUsed - 6 // Account for padding

	var statusContent string
	if spacing > 0 {
		leftSpacing := spacing / 2
		rightSpacing := spacing - leftSpacing

		statusContent = fmt.Sprintf("%s%s%s%s%s",
			leftInfo,
			strings.Repeat(" ", leftSpacing),
			centerInfo,
			strings.Repeat(" ", rightSpacing),
			rightInfo,
		)
	} else {
		// Fallback for narrow terminals
		statusContent = fmt.Sprintf("%s | %s", leftInfo, centerInfo)
	}

	return statusBarStyle.
		Width(m.width).
		Render(statusContent)
}

func (m model) modalBox(border lipgloss.Color, content string) string {
	modalStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Padding(1, 2).
		Background(surfaceColor).
		Foreground(textColor).
		Width(60).
		Align(lipgloss.Center)

	return lipgloss.Place(
		m.width,
		m.height,
		lipgloss.Center,
		lipgloss.Center,
		modalStyle.Render(content),
	)
}

func (m model) renderNotification() string {
	color := secondaryColor
	if m.modal.Severity == ops.SeverityError {
		color = errorColor
	}
	title := lipgloss.NewStyle().Foreground(color).Bold(true).Render(m.modal.Title)
	return m.modalBox(color, title+"\n\n"+m.modal.Message+"\n\n"+mutedStyle.Render("press any key"))
}

func (m model) renderHelpModal() string {
	helpContent := `FASTA Processor - Help

Navigation:
  ↑/↓, j/k     Navigate operations
  /            Filter operations
  Enter        Run the selected operation

Parameters:
  c            Toggle AT / GC content
  m            Toggle DNA / RNA
  t            Toggle nucleotide / protein cleansing

File picker:
  Enter        Select a file (add, when combining)
  Tab          Finish selecting files to combine
  q            Cancel

General:
  h            Toggle this help
  q, Ctrl+C    Quit application
`
	return m.modalBox(primaryColor, helpContent)
}

// run starts the program and returns the exit code, so deferred cleanup
// happens before main exits.
func run(args []string) int {
	app := kingpin.New("fastaproc-tui", "Interactive FASTA processor.")
	configFlag := app.Flag("config", "path to a config file (JSON, YAML or TOML)").Short('c').String()
	verbose := app.Flag("verbose", "enable verbose (debug) logging to the log file").Short('v').Bool()
	kingpin.MustParse(app.Parse(args))

	cfg, err := config.LoadConfig(*configFlag)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return 1
	}
	// the screen belongs to the UI; logs only go to the configured file
	logger, closeLog := logging.New(logging.Options{Out: io.Discard, LogFile: cfg.LogFile, Level: cfg.LogLevel, Verbose: *verbose})
	defer func() { _ = closeLog() }()

	p := tea.NewProgram(initialModel(cfg, logger), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		logger.Error("terminal UI failed", "err", err)
		fmt.Printf("Error: %v\n", err)
		return 1
	}
	return 0
}

func main() {
	os.Exit(run(os.Args[1:]))
}
