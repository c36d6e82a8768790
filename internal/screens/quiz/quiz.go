// Package quiz is the screen that plays one quiz session against the
// session controller.
package quiz

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"charm.land/bubbles/v2/key"
	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"
	"go.uber.org/zap"

	quizctl "github.com/abhisek/triviaz/internal/quiz"
	"github.com/abhisek/triviaz/internal/router"
	"github.com/abhisek/triviaz/internal/screen"
	"github.com/abhisek/triviaz/internal/screens/summary"
	"github.com/abhisek/triviaz/internal/ui/components"
	"github.com/abhisek/triviaz/internal/ui/layout"
	"github.com/abhisek/triviaz/internal/ui/theme"
)

// QuizScreen implements screen.Screen for an active quiz.
type QuizScreen struct {
	ctrl        *quizctl.Controller
	logger      *zap.Logger
	progressMax float64

	st          quizctl.State
	updates     <-chan quizctl.State
	unsubscribe func()
	cancelLoad  context.CancelFunc

	spinner  spinner.Model
	spinning bool
	keys     keyMap
	choices  components.ChoiceList
	notice   string
	finished bool
}

var _ screen.Screen = (*QuizScreen)(nil)
var _ screen.KeyHintProvider = (*QuizScreen)(nil)
var _ screen.StatusProvider = (*QuizScreen)(nil)
var _ screen.Closer = (*QuizScreen)(nil)

// New creates a quiz screen driving ctrl. progressMax is the display range
// the scaled progress is mapped onto.
func New(ctrl *quizctl.Controller, progressMax float64, logger *zap.Logger) *QuizScreen {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &QuizScreen{
		ctrl:        ctrl,
		logger:      logger,
		progressMax: progressMax,
		// Snapshots up to the controller's current version belong to an
		// earlier session; this screen starts its own load.
		st: quizctl.State{
			Phase:    quizctl.PhaseLoading,
			Selected: -1,
			Version:  ctrl.State().Version,
		},
		spinner: spinner.New(
			spinner.WithSpinner(spinner.Dot),
			spinner.WithStyle(theme.Spinner),
		),
		keys:    defaultKeys(),
		choices: components.NewChoiceList(nil),
	}
}

func (s *QuizScreen) Init() tea.Cmd {
	s.updates, s.unsubscribe = s.ctrl.Subscribe()
	return tea.Batch(s.waitForState(), s.startLoad())
}

func (s *QuizScreen) Title() string {
	return "Quiz"
}

// Status shows the running score in the header.
func (s *QuizScreen) Status() string {
	if !s.st.Loaded() {
		return ""
	}
	return fmt.Sprintf("Score %d  ·  %d/%d", s.st.Score, s.st.Index+1, s.st.Len())
}

func (s *QuizScreen) KeyHints() []layout.KeyHint {
	back := layout.KeyHint{Key: "Esc", Description: "Back"}
	switch {
	case s.st.Phase == quizctl.PhaseLoadFailed:
		return []layout.KeyHint{hint(s.keys.Retry), back}
	case !s.st.Loaded():
		return []layout.KeyHint{back}
	case s.st.AnswerSelected:
		return []layout.KeyHint{hint(s.keys.Next), back}
	default:
		return []layout.KeyHint{hint(s.keys.Number), hint(s.keys.Up), hint(s.keys.Choose), back}
	}
}

func hint(b key.Binding) layout.KeyHint {
	return layout.KeyHint{Key: b.Help().Key, Description: b.Help().Desc}
}

// Close unsubscribes from the controller and abandons an in-flight load.
func (s *QuizScreen) Close() {
	if s.cancelLoad != nil {
		s.cancelLoad()
		s.cancelLoad = nil
	}
	if s.unsubscribe != nil {
		s.unsubscribe()
		s.unsubscribe = nil
	}
	s.updates = nil
}

func (s *QuizScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case stateMsg:
		cmd := s.apply(quizctl.State(msg))
		return s, tea.Batch(cmd, s.waitForState())

	case loadDoneMsg:
		if msg.Err != nil && !quizctl.IsSuperseded(msg.Err) {
			s.logger.Debug("quiz screen load failed", zap.Error(msg.Err))
		}
		return s, s.apply(s.ctrl.State())

	case spinner.TickMsg:
		if !s.spinning {
			return s, nil
		}
		var cmd tea.Cmd
		s.spinner, cmd = s.spinner.Update(msg)
		return s, cmd

	case tea.KeyMsg:
		return s.handleKey(msg)
	}
	return s, nil
}

// startLoad asks the controller for a fresh list.
func (s *QuizScreen) startLoad() tea.Cmd {
	if s.cancelLoad != nil {
		s.cancelLoad()
	}
	ctx, cancel := context.WithCancel(context.Background())
	s.cancelLoad = cancel
	s.notice = ""
	s.finished = false

	load := func() tea.Msg {
		return loadDoneMsg{Err: s.ctrl.Load(ctx)}
	}
	if s.spinning {
		return load
	}
	s.spinning = true
	return tea.Batch(load, s.spinner.Tick)
}

// waitForState blocks on the subscription for the next snapshot.
func (s *QuizScreen) waitForState() tea.Cmd {
	ch := s.updates
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		st, ok := <-ch
		if !ok {
			return nil
		}
		return stateMsg(st)
	}
}

// apply adopts st when it is newer than what the screen already shows.
func (s *QuizScreen) apply(st quizctl.State) tea.Cmd {
	if st.Version <= s.st.Version {
		return nil
	}
	if st.SessionID != s.st.SessionID || st.Index != s.st.Index || len(s.choices.Choices) != len(st.Choices) {
		s.choices = components.NewChoiceList(st.Choices)
		s.notice = ""
	}
	s.choices.Chosen = st.Selected
	s.st = st
	s.spinning = st.Phase == quizctl.PhaseLoading

	if st.Phase == quizctl.PhaseCompleted && !s.finished {
		s.finished = true
		next := summary.New(st, s.playAgain)
		return func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }
	}
	return nil
}

// playAgain builds a fresh quiz screen on the same controller.
func (s *QuizScreen) playAgain() screen.Screen {
	return New(s.ctrl, s.progressMax, s.logger)
}

func (s *QuizScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	if s.st.Phase == quizctl.PhaseLoadFailed {
		if key.Matches(msg, s.keys.Retry) {
			return s, s.startLoad()
		}
		return s, nil
	}
	if !s.st.Loaded() || s.st.ReachedEnd {
		return s, nil
	}

	if s.st.AnswerSelected {
		if key.Matches(msg, s.keys.Next) {
			return s, s.act(s.ctrl.Advance())
		}
		return s, nil
	}

	switch {
	case key.Matches(msg, s.keys.Up):
		s.choices = s.choices.Move(-1)
	case key.Matches(msg, s.keys.Down):
		s.choices = s.choices.Move(1)
	case key.Matches(msg, s.keys.Choose):
		return s, s.act(s.ctrl.SelectAt(s.choices.Cursor))
	case key.Matches(msg, s.keys.Number):
		n, _ := strconv.Atoi(msg.String())
		if n > len(s.st.Choices) {
			return s, nil
		}
		s.choices.Cursor = n - 1
		return s, s.act(s.ctrl.SelectAt(n - 1))
	}
	return s, nil
}

// act applies the controller state after a command and surfaces misuse
// errors as a notice.
func (s *QuizScreen) act(err error) tea.Cmd {
	switch {
	case err == nil:
	case errors.Is(err, quizctl.ErrAlreadyAnswered):
		s.notice = "Already answered. Press Enter for the next question."
	default:
		s.notice = err.Error()
	}
	return s.apply(s.ctrl.State())
}
