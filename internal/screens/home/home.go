package home

import (
	"context"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/triviaz/internal/history"
	"github.com/abhisek/triviaz/internal/router"
	"github.com/abhisek/triviaz/internal/screen"
	"github.com/abhisek/triviaz/internal/ui/components"
	"github.com/abhisek/triviaz/internal/ui/layout"
)

// StatsReader supplies the lifetime stats shown on the home screen.
type StatsReader interface {
	Stats(ctx context.Context) (history.Stats, error)
}

// Options wires the home screen to the rest of the app.
type Options struct {
	// Source describes where questions come from.
	Source string

	// Stats is nil when history is disabled.
	Stats StatsReader

	// NewQuiz builds the quiz screen for START QUIZ.
	NewQuiz func() screen.Screen

	// NewHistory builds the history screen; nil disables the menu item.
	NewHistory func() screen.Screen
}

type statsLoadedMsg struct {
	Stats history.Stats
	Err   error
}

// HomeScreen is the main home screen of the application.
type HomeScreen struct {
	menu   components.Menu
	source string
	reader StatsReader
	stats  *history.Stats
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.Resumer = (*HomeScreen)(nil)

// New creates a new HomeScreen.
func New(opts Options) *HomeScreen {
	items := []components.MenuItem{
		{Label: "START QUIZ", Action: push(opts.NewQuiz), Disabled: opts.NewQuiz == nil},
		{Label: "HISTORY", Action: push(opts.NewHistory), Disabled: opts.NewHistory == nil},
		{Label: "EXIT", Action: func() tea.Cmd { return tea.Quit }},
	}
	return &HomeScreen{
		menu:   components.NewMenu(items),
		source: opts.Source,
		reader: opts.Stats,
	}
}

func push(build func() screen.Screen) func() tea.Cmd {
	return func() tea.Cmd {
		if build == nil {
			return nil
		}
		s := build()
		return func() tea.Msg { return router.PushScreenMsg{Screen: s} }
	}
}

func (h *HomeScreen) Init() tea.Cmd {
	return h.loadStats()
}

// Resume refreshes the stats after a quiz or the history screen closes.
func (h *HomeScreen) Resume() tea.Cmd {
	return h.loadStats()
}

func (h *HomeScreen) loadStats() tea.Cmd {
	if h.reader == nil {
		return nil
	}
	reader := h.reader
	return func() tea.Msg {
		st, err := reader.Stats(context.Background())
		return statsLoadedMsg{Stats: st, Err: err}
	}
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if msg, ok := msg.(statsLoadedMsg); ok {
		if msg.Err == nil {
			h.stats = &msg.Stats
		}
		return h, nil
	}

	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	compact := layout.IsCompact(width, height)

	// All sections share a uniform content width so they line up.
	cw := components.ContentWidth(width)

	sections := []string{renderTitle(cw, compact)}
	if h.source != "" {
		sections = append(sections, renderSource(h.source, cw))
	}
	sections = append(sections, renderStatsBar(h.stats, h.reader != nil, cw, compact))
	sections = append(sections, renderMenu(h.menu, cw, compact))

	return components.StageFrame(strings.Join(sections, "\n\n"), width, height)
}

func (h *HomeScreen) Title() string {
	return "Home"
}
