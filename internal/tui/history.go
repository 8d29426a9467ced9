package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/jask/labdesk/internal/database/repository"
)

const recentLimit = 5

// recordCmd stores a settled submission and reloads the widget's history.
func recordCmd(d Deps, widget, input string, failed bool, detail string, elapsed time.Duration) tea.Cmd {
	if d.History == nil {
		return nil
	}
	s := repository.Submission{
		ID:        uuid.NewString(),
		Widget:    widget,
		Input:     input,
		Outcome:   repository.OutcomeSuccess,
		Detail:    detail,
		Latency:   elapsed,
		CreatedAt: d.Now().UTC(),
	}
	if failed {
		s.Outcome = repository.OutcomeError
	}
	return func() tea.Msg {
		if err := d.History.Insert(d.Ctx, s); err != nil {
			log.WithError(err).WithField("widget", widget).Warn("record submission")
			return historyMsg{Widget: widget, Err: err}
		}
		return loadHistory(d, widget)
	}
}

func historyCmd(d Deps, widget string) tea.Cmd {
	if d.History == nil {
		return nil
	}
	return func() tea.Msg { return loadHistory(d, widget) }
}

func loadHistory(d Deps, widget string) historyMsg {
	recent, err := d.History.Recent(d.Ctx, widget, recentLimit)
	if err != nil {
		return historyMsg{Widget: widget, Err: err}
	}
	counts, err := d.History.CountByWidget(d.Ctx)
	if err != nil {
		return historyMsg{Widget: widget, Err: err}
	}
	return historyMsg{Widget: widget, Recent: recent, Count: counts[widget]}
}
