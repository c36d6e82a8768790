// Package plain plays a quiz over line-oriented stdin/stdout, for use
// when stdout is not a terminal.
package plain

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/abhisek/triviaz/internal/quiz"
	"github.com/abhisek/triviaz/internal/trivia"
)

// Runner drives a quiz controller from a line reader.
type Runner struct {
	ctrl   *quiz.Controller
	in     *bufio.Reader
	out    io.Writer
	logger *zap.Logger
}

// New creates a Runner reading choices from in and writing to out.
func New(ctrl *quiz.Controller, in io.Reader, out io.Writer, logger *zap.Logger) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{ctrl: ctrl, in: bufio.NewReader(in), out: out, logger: logger}
}

// Run loads the quiz and plays it to the end or until input runs out.
// A load failure is reported on out and returned.
func (r *Runner) Run(ctx context.Context) error {
	fmt.Fprintf(r.out, "Loading trivia from %s...\n", r.ctrl.Source().Describe())

	if err := r.ctrl.Load(ctx); err != nil {
		if le := (*trivia.LoadError)(nil); errors.As(err, &le) {
			fmt.Fprintf(r.out, "Trivia source unavailable: %s\n", le.Detail())
		}
		return err
	}

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		st := r.ctrl.State()
		if st.ReachedEnd {
			break
		}

		r.printQuestion(st)
		choice, err := r.readChoice(len(st.Choices))
		if errors.Is(err, io.EOF) {
			fmt.Fprintln(r.out, "\nStopped early.")
			break
		}
		if err != nil {
			return fmt.Errorf("reading answer: %w", err)
		}

		if err := r.ctrl.SelectAt(choice); err != nil {
			return fmt.Errorf("selecting answer: %w", err)
		}
		r.printFeedback(r.ctrl.State())

		if err := r.ctrl.Advance(); err != nil {
			return fmt.Errorf("advancing: %w", err)
		}
	}

	r.printScore(r.ctrl.State())
	return nil
}

func (r *Runner) printQuestion(st quiz.State) {
	fmt.Fprintf(r.out, "\nQuestion %d/%d (score %d)\n", st.Index+1, st.Len(), st.Score)
	fmt.Fprintln(r.out, st.Question)
	for i, a := range st.Choices {
		fmt.Fprintf(r.out, "  %d) %s\n", i+1, a.Text)
	}
}

// readChoice returns a 0-based choice index, prompting again on bad input.
func (r *Runner) readChoice(n int) (int, error) {
	for {
		fmt.Fprint(r.out, "> ")
		line, err := r.in.ReadString('\n')
		line = strings.TrimSpace(line)
		if line == "" && err != nil {
			return 0, err
		}

		v, convErr := strconv.Atoi(line)
		if convErr == nil && v >= 1 && v <= n {
			return v - 1, nil
		}
		r.logger.Debug("ignoring invalid choice", zap.String("input", line))
		fmt.Fprintf(r.out, "Enter a number between 1 and %d.\n", n)

		if err != nil {
			return 0, err
		}
	}
}

func (r *Runner) printFeedback(st quiz.State) {
	item, ok := st.Current()
	if !ok {
		return
	}
	if st.Selected == item.CorrectIndex() {
		fmt.Fprintln(r.out, "Correct!")
		return
	}
	if correct, ok := item.CorrectAnswer(); ok {
		fmt.Fprintf(r.out, "Not quite. Correct answer: %s\n", correct.Text)
		return
	}
	fmt.Fprintln(r.out, "Not quite.")
}

func (r *Runner) printScore(st quiz.State) {
	fmt.Fprintf(r.out, "\nFinal score: %d/%d", st.Score, st.Len())
	if st.Answered > 0 {
		fmt.Fprintf(r.out, " (%.0f%% of answered)", st.Accuracy()*100)
	}
	fmt.Fprintln(r.out)
}
