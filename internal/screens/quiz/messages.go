package quiz

import quizctl "github.com/abhisek/triviaz/internal/quiz"

// stateMsg carries a snapshot published by the controller.
type stateMsg quizctl.State

// loadDoneMsg is sent when a Load call returns.
type loadDoneMsg struct {
	Err error
}
