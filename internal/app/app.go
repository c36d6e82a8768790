package app

import (
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"go.uber.org/zap"

	"github.com/abhisek/triviaz/internal/history"
	"github.com/abhisek/triviaz/internal/quiz"
	"github.com/abhisek/triviaz/internal/router"
	"github.com/abhisek/triviaz/internal/screen"
	historyscreen "github.com/abhisek/triviaz/internal/screens/history"
	"github.com/abhisek/triviaz/internal/screens/home"
	quizscreen "github.com/abhisek/triviaz/internal/screens/quiz"
	"github.com/abhisek/triviaz/internal/ui/layout"
)

// Options configures the TUI.
type Options struct {
	// Controller drives every quiz played in this program.
	Controller *quiz.Controller

	// History is nil when result history is disabled.
	History *history.Store

	// ProgressWidth is the display range for scaled progress.
	ProgressWidth float64

	// StartQuiz opens the quiz screen right away instead of the home menu.
	StartQuiz bool

	Logger *zap.Logger
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router    *router.Router
	startQuiz bool
	newQuiz   func() screen.Screen
	width     int
	height    int
}

// newAppModel creates a new AppModel with the home screen.
func newAppModel(opts Options) AppModel {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	newQuiz := func() screen.Screen {
		return quizscreen.New(opts.Controller, opts.ProgressWidth, logger)
	}

	homeOpts := home.Options{
		Source:  opts.Controller.Source().Describe(),
		NewQuiz: newQuiz,
	}
	if opts.History != nil {
		homeOpts.Stats = opts.History
		homeOpts.NewHistory = func() screen.Screen {
			return historyscreen.New(opts.History)
		}
	}

	return AppModel{
		router:    router.New(home.New(homeOpts)),
		startQuiz: opts.StartQuiz,
		newQuiz:   newQuiz,
	}
}

func (m AppModel) Init() tea.Cmd {
	cmd := m.router.Active().Init()
	if m.startQuiz {
		next := m.newQuiz()
		return tea.Batch(cmd, func() tea.Msg { return router.PushScreenMsg{Screen: next} })
	}
	return cmd
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			if msg.String() == "q" && m.router.Depth() > 1 {
				break
			}
			return m, tea.Quit
		case "esc":
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	title, status := "", ""
	if active != nil {
		title = active.Title()
		if sp, ok := active.(screen.StatusProvider); ok {
			status = sp.Status()
		}
	}

	header := layout.RenderHeader(title, status, m.width)
	footer := layout.RenderFooter(m.footerHints(active), m.width)

	contentHeight := max(m.height-lipgloss.Height(header)-lipgloss.Height(footer), 0)

	content := m.router.View(m.width, contentHeight)
	v.SetContent(layout.RenderFrame(header, content, footer, m.width, m.height))
	return v
}

func (m AppModel) footerHints(active screen.Screen) []layout.KeyHint {
	if kp, ok := active.(screen.KeyHintProvider); ok {
		return append(kp.KeyHints(), layout.KeyHint{Key: "Ctrl+C", Description: "Quit"})
	}
	if m.router.Depth() > 1 {
		return []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "q", Description: "Quit"},
	}
}

// Run starts the Bubble Tea program and blocks until it exits.
func Run(opts Options) error {
	if opts.Controller == nil {
		return fmt.Errorf("app: a quiz controller is required")
	}

	model := newAppModel(opts)
	defer model.router.Close()

	if _, err := tea.NewProgram(model).Run(); err != nil {
		return fmt.Errorf("running TUI: %w", err)
	}
	return nil
}
