package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jask/labdesk/internal/binder"
	"github.com/jask/labdesk/internal/client"
	"github.com/jask/labdesk/internal/database/repository"
	"github.com/jask/labdesk/internal/view"
)

// Weather error texts.
const (
	WeatherFailure   = "Failed to fetch weather data"
	WeatherNetFailed = "Network error. Please try again."
)

type weatherWidget struct {
	deps    Deps
	binder  *binder.Binder[client.WeatherQuery, client.WeatherResponse]
	input   textinput.Model
	spinner spinner.Model
	pending string
	recent  []repository.Submission
	width   int
}

func newWeatherWidget(d Deps) *weatherWidget {
	w := &weatherWidget{
		deps:    d,
		binder:  binder.New(weatherName, d.Backend.Weather),
		input:   newInput("Enter city name", 120),
		spinner: newSpinner(),
	}
	w.input.Focus()
	return w
}

func (w *weatherWidget) Name() string  { return weatherName }
func (w *weatherWidget) Title() string { return "Weather" }
func (w *weatherWidget) Busy() bool    { return w.binder.Busy() }

func (w *weatherWidget) Bindings() []key.Binding { return []key.Binding{lookupKey} }

func (w *weatherWidget) Init() tea.Cmd { return historyCmd(w.deps, weatherName) }

func (w *weatherWidget) SetSize(width, height int) {
	w.width = width
	w.input.Width = max(10, min(40, width-14))
}

func (w *weatherWidget) Update(msg tea.Msg) tea.Cmd {
	switch m := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(m, lookupKey) {
			return w.submit()
		}
		var cmd tea.Cmd
		w.input, cmd = w.input.Update(m)
		return cmd
	case binder.DoneMsg[client.WeatherResponse]:
		return w.settle(m)
	case spinner.TickMsg:
		if !w.binder.Busy() {
			return nil
		}
		var cmd tea.Cmd
		w.spinner, cmd = w.spinner.Update(m)
		return cmd
	case historyMsg:
		if m.Widget == weatherName && m.Err == nil {
			w.recent = m.Recent
		}
	}
	return nil
}

func (w *weatherWidget) submit() tea.Cmd {
	city := strings.TrimSpace(w.input.Value())
	cmd, err := w.binder.Submit(w.deps.Ctx, client.WeatherQuery{City: city})
	if err != nil {
		if !errors.Is(err, binder.ErrEmptyInput) && !errors.Is(err, binder.ErrBusy) {
			log.WithError(err).Warn("weather submit")
		}
		return nil
	}
	w.pending = city
	log.WithField("widget", weatherName).WithField("city", city).Debug("submitted")
	return tea.Batch(cmd, w.spinner.Tick)
}

func (w *weatherWidget) settle(m binder.DoneMsg[client.WeatherResponse]) tea.Cmd {
	if !w.binder.Resolve(m) {
		return nil
	}
	if m.Err != nil {
		log.WithError(m.Err).WithField("widget", weatherName).Info("request failed")
		return recordCmd(w.deps, weatherName, w.pending, true, w.errText(), m.Elapsed)
	}
	p := w.result()
	detail := fmt.Sprintf("%s, %d°C, %s", p.Location, p.Temperature, p.Condition)
	return recordCmd(w.deps, weatherName, w.pending, false, detail, m.Elapsed)
}

// result is the card of the last lookup, nil unless it succeeded.
func (w *weatherWidget) result() *view.Weather {
	if w.binder.State() != binder.Success {
		return nil
	}
	p := view.ProjectWeather(w.binder.Last())
	return &p
}

func (w *weatherWidget) errText() string {
	if w.binder.State() != binder.Error {
		return ""
	}
	return weatherErrorText(w.binder.Err())
}

func weatherErrorText(err error) string {
	if client.IsTransport(err) {
		return WeatherNetFailed
	}
	if msg, ok := client.ServerMessage(err); ok {
		return msg
	}
	return WeatherFailure
}

func (w *weatherWidget) View() string {
	lines := []string{
		titleStyle.Render("Weather"),
		lipgloss.JoinHorizontal(lipgloss.Center, w.input.View(), " ", button("Search", w.binder.Busy())),
		"",
	}
	switch w.binder.State() {
	case binder.Loading:
		lines = append(lines, w.spinner.View()+mutedStyle.Render(" Loading…"))
	case binder.Error:
		lines = append(lines, errorStyle.Render(w.errText()))
	case binder.Success:
		lines = append(lines, w.renderResult(*w.result()))
	}
	if len(w.recent) > 0 {
		lines = append(lines, "", mutedStyle.Render("Recent: "+recentCities(w.recent)))
	}
	return strings.Join(lines, "\n")
}

func (w *weatherWidget) renderResult(r view.Weather) string {
	card := cardStyle.Render(strings.Join([]string{
		titleStyle.Render(r.Location),
		fmt.Sprintf("%d°C  %s", r.Temperature, r.Condition),
		mutedStyle.Render("Wind: " + r.Wind + " km/h"),
	}, "\n"))
	if len(r.Days) == 0 {
		return card
	}

	rows := make([]string, 0, len(r.Days))
	for _, d := range r.Days {
		rows = append(rows, fmt.Sprintf("%-7s %4d° / %4d°  %s", d.Label(), d.High(), d.Low(), d.Condition))
	}
	forecast := strings.Join(rows, "\n")

	chart := view.ForecastChart(r.Days, max(10, w.width-lipgloss.Width(forecast)-4), 8, chartStyle)
	if chart == "" {
		return lipgloss.JoinVertical(lipgloss.Left, card, "", forecast)
	}
	return lipgloss.JoinVertical(lipgloss.Left, card, "", lipgloss.JoinHorizontal(lipgloss.Top, forecast, "  ", chart))
}

func recentCities(recent []repository.Submission) string {
	seen := map[string]bool{}
	out := make([]string, 0, len(recent))
	for _, s := range recent {
		k := strings.ToLower(s.Input)
		if seen[k] {
			continue
		}
		seen[k] = true
		name := s.Input
		if s.Outcome == repository.OutcomeError {
			name += " (failed)"
		}
		out = append(out, name)
	}
	return strings.Join(out, ", ")
}
