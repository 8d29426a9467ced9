package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/labdesk/internal/database/repository"
)

type statusMsg struct {
	Text  string
	IsErr bool
}

// historyMsg carries a widget's refreshed session history.
type historyMsg struct {
	Widget string
	Recent []repository.Submission
	Count  int
	Err    error
}

func noticeCmd(text string) tea.Cmd {
	return func() tea.Msg { return statusMsg{Text: text, IsErr: true} }
}
