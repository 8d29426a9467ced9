package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jask/labdesk/internal/binder"
	"github.com/jask/labdesk/internal/client"
	"github.com/jask/labdesk/internal/database/repository"
	"github.com/jask/labdesk/internal/view"
)

// Similarity texts.
const (
	SimilarityEmptyNotice = "Please enter both sentences."
	SimilarityNetFailed   = "Failed to connect to the server."
	similarityFallback    = "Something went wrong"
)

type similarityWidget struct {
	deps    Deps
	binder  *binder.Binder[client.SimilarityRequest, client.SimilarityResponse]
	inputs  [2]textinput.Model
	focus   int
	spinner spinner.Model
	bars    map[view.Theme]progress.Model
	pending client.SimilarityRequest
	recent  []repository.Submission
}

func newSimilarityWidget(d Deps) *similarityWidget {
	w := &similarityWidget{
		deps:    d,
		binder:  binder.New(similarityName, d.Backend.Predict),
		inputs:  [2]textinput.Model{newInput("First sentence", 1000), newInput("Second sentence", 1000)},
		spinner: newSpinner(),
		bars: map[view.Theme]progress.Model{
			view.ThemeSuccess: progress.New(progress.WithSolidFill(string(colorSuccess)), progress.WithoutPercentage()),
			view.ThemeError:   progress.New(progress.WithSolidFill(string(colorError)), progress.WithoutPercentage()),
		},
	}
	w.inputs[0].Focus()
	return w
}

func (w *similarityWidget) Name() string  { return similarityName }
func (w *similarityWidget) Title() string { return "Similarity" }
func (w *similarityWidget) Busy() bool    { return w.binder.Busy() }

func (w *similarityWidget) Bindings() []key.Binding {
	return []key.Binding{nextFieldKey, prevFieldKey, compareKey}
}

func (w *similarityWidget) Init() tea.Cmd { return historyCmd(w.deps, similarityName) }

func (w *similarityWidget) SetSize(width, height int) {
	for i := range w.inputs {
		w.inputs[i].Width = max(10, width-4)
	}
	for t, bar := range w.bars {
		bar.Width = max(10, min(60, width-10))
		w.bars[t] = bar
	}
}

func (w *similarityWidget) setFocus(i int) {
	w.focus = i
	for j := range w.inputs {
		if j == i {
			w.inputs[j].Focus()
		} else {
			w.inputs[j].Blur()
		}
	}
}

func (w *similarityWidget) Update(msg tea.Msg) tea.Cmd {
	switch m := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(m, nextFieldKey, prevFieldKey):
			w.setFocus(1 - w.focus)
			return nil
		case key.Matches(m, compareKey):
			return w.submit()
		case key.Matches(m, submitKey):
			if w.focus == 0 {
				w.setFocus(1)
				return nil
			}
			return w.submit()
		}
		var cmd tea.Cmd
		w.inputs[w.focus], cmd = w.inputs[w.focus].Update(m)
		return cmd
	case binder.DoneMsg[client.SimilarityResponse]:
		return w.settle(m)
	case spinner.TickMsg:
		if !w.binder.Busy() {
			return nil
		}
		var cmd tea.Cmd
		w.spinner, cmd = w.spinner.Update(m)
		return cmd
	case historyMsg:
		if m.Widget == similarityName && m.Err == nil {
			w.recent = m.Recent
		}
	}
	return nil
}

func (w *similarityWidget) submit() tea.Cmd {
	req := client.SimilarityRequest{
		Sentence1: strings.TrimSpace(w.inputs[0].Value()),
		Sentence2: strings.TrimSpace(w.inputs[1].Value()),
	}
	cmd, err := w.binder.Submit(w.deps.Ctx, req)
	switch {
	case errors.Is(err, binder.ErrEmptyInput):
		return noticeCmd(SimilarityEmptyNotice)
	case err != nil:
		return nil
	}
	w.pending = req
	log.WithField("widget", similarityName).Debug("submitted")
	return tea.Batch(cmd, w.spinner.Tick)
}

func (w *similarityWidget) settle(m binder.DoneMsg[client.SimilarityResponse]) tea.Cmd {
	if !w.binder.Resolve(m) {
		return nil
	}
	input := w.pending.Sentence1 + " | " + w.pending.Sentence2
	if m.Err != nil {
		log.WithError(m.Err).WithField("widget", similarityName).Info("request failed")
		return recordCmd(w.deps, similarityName, input, true, w.errText(), m.Elapsed)
	}
	p := w.result()
	return recordCmd(w.deps, similarityName, input, false, p.Verdict+" "+p.Label, m.Elapsed)
}

// result is the card of the last comparison, nil unless it succeeded.
func (w *similarityWidget) result() *view.Similarity {
	if w.binder.State() != binder.Success {
		return nil
	}
	p := view.ProjectSimilarity(w.binder.Last(), w.pending.Sentence1, w.pending.Sentence2)
	return &p
}

func (w *similarityWidget) errText() string {
	if w.binder.State() != binder.Error {
		return ""
	}
	return similarityErrorText(w.binder.Err())
}

func similarityErrorText(err error) string {
	if client.IsTransport(err) {
		return SimilarityNetFailed
	}
	if msg, ok := client.ServerMessage(err); ok {
		return "Error: " + msg
	}
	return "Error: " + similarityFallback
}

func themeStyle(t view.Theme) lipgloss.Style {
	if t == view.ThemeSuccess {
		return successStyle
	}
	return errorStyle
}

func (w *similarityWidget) View() string {
	label := "Check Similarity"
	if w.binder.Busy() {
		label = w.spinner.View() + " Analyzing…"
	}
	lines := []string{
		titleStyle.Render("Sentence similarity"),
		mutedStyle.Render("Sentence 1"),
		w.inputs[0].View(),
		mutedStyle.Render("Sentence 2"),
		w.inputs[1].View(),
		"",
		button(label, w.binder.Busy()),
		"",
	}
	switch w.binder.State() {
	case binder.Error:
		lines = append(lines, errorStyle.Render(w.errText()))
	case binder.Success:
		lines = append(lines, w.renderResult(*w.result()))
	}
	if len(w.recent) > 0 {
		lines = append(lines, "", mutedStyle.Render("Recent verdicts"))
		for _, s := range w.recent {
			lines = append(lines, mutedStyle.Render("  "+s.Detail))
		}
	}
	return strings.Join(lines, "\n")
}

func (w *similarityWidget) renderResult(r view.Similarity) string {
	style := themeStyle(r.Theme)
	bar := w.bars[r.Theme]
	return cardStyle.BorderForeground(style.GetForeground()).Render(strings.Join([]string{
		style.Bold(true).Render(r.Verdict),
		bar.ViewAs(float64(r.Percentage)/100) + " " + style.Render(r.Label),
		mutedStyle.Render(fmt.Sprintf("Dash array: %s   Edit distance: %d", r.DashArray, r.EditDistance)),
	}, "\n"))
}
