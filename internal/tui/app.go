package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// App is the root model: a tab bar over the three widgets, a status line and
// a footer of key bindings.
type App struct {
	deps      Deps
	keys      keyMap
	widgets   []widget
	active    int
	status    string
	statusErr bool
	width     int
	height    int
}

// New builds the app. startTab names the first active widget; unknown names
// fall back to chat.
func New(d Deps, startTab string) *App {
	d = d.withDefaults()
	a := &App{
		deps: d,
		keys: defaultKeyMap(),
		widgets: []widget{
			newChatWidget(d),
			newWeatherWidget(d),
			newSimilarityWidget(d),
		},
	}
	for i, w := range a.widgets {
		if w.Name() == startTab {
			a.active = i
		}
	}
	return a
}

func (a *App) Init() tea.Cmd {
	cmds := make([]tea.Cmd, 0, len(a.widgets))
	for _, w := range a.widgets {
		cmds = append(cmds, w.Init())
	}
	return tea.Batch(cmds...)
}

// Active returns the name of the focused widget.
func (a *App) Active() string { return a.widgets[a.active].Name() }

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = m.Width, m.Height
		for _, w := range a.widgets {
			w.SetSize(m.Width, a.bodyHeight())
		}
		return a, nil
	case tea.KeyMsg:
		switch {
		case key.Matches(m, a.keys.Quit):
			return a, tea.Quit
		case key.Matches(m, a.keys.Chat):
			a.active = 0
			return a, nil
		case key.Matches(m, a.keys.Weather):
			a.active = 1
			return a, nil
		case key.Matches(m, a.keys.Similarity):
			a.active = 2
			return a, nil
		case key.Matches(m, a.keys.Next):
			a.active = (a.active + 1) % len(a.widgets)
			return a, nil
		case key.Matches(m, a.keys.Prev):
			a.active = (a.active + len(a.widgets) - 1) % len(a.widgets)
			return a, nil
		}
		w := a.widgets[a.active]
		wasBusy := w.Busy()
		cmd := w.Update(m)
		if !wasBusy && w.Busy() {
			// an accepted submission supersedes any earlier notice
			a.status, a.statusErr = "", false
		}
		return a, cmd
	case statusMsg:
		a.status = m.Text
		a.statusErr = m.IsErr
		return a, nil
	case historyMsg:
		if m.Err != nil {
			a.status = "history: " + m.Err.Error()
			a.statusErr = true
		}
	}

	// everything else is broadcast; binders drop messages that are not theirs
	var cmds []tea.Cmd
	for _, w := range a.widgets {
		if cmd := w.Update(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return a, tea.Batch(cmds...)
}

func (a *App) bodyHeight() int {
	// tab bar, blank line, status bar, footer
	return max(1, a.height-4)
}

func (a *App) View() string {
	w := a.widgets[a.active]
	body := w.View()
	if a.height > 0 {
		body = lipgloss.NewStyle().MaxHeight(a.bodyHeight()).Render(body)
	}
	bindings := append(w.Bindings(), a.keys.ShortHelp()...)
	return appStyle.Render(strings.Join([]string{
		a.renderTabs(),
		"",
		body,
		renderChrome(a.width, a.status, a.statusErr, bindings),
	}, "\n"))
}

func (a *App) renderTabs() string {
	parts := []string{headerAppStyle.Render("labdesk")}
	for i, w := range a.widgets {
		label := w.Title()
		style := inactiveTabStyle
		switch {
		case i == a.active:
			style = activeTabStyle
		case w.Busy():
			style = busyTabStyle
			label += " …"
		}
		parts = append(parts, style.Render(label))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}
