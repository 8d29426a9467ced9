package tui

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"github.com/jask/labdesk/internal/client"
	"github.com/jask/labdesk/internal/database"
	"github.com/jask/labdesk/internal/database/repository"
)

var testNow = time.Date(2026, 10, 18, 9, 41, 0, 0, time.UTC)

type testEnv struct {
	app     *App
	hits    *atomic.Int32
	history *repository.SubmissionRepo
}

func newTestEnv(t *testing.T, h http.HandlerFunc) testEnv {
	t.Helper()
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		h(w, r)
	}))
	t.Cleanup(srv.Close)
	return newTestEnvURL(t, srv.URL, &hits)
}

// newDeadEnv points every widget at a server that is already closed.
func newDeadEnv(t *testing.T) testEnv {
	t.Helper()
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()
	return newTestEnvURL(t, url, new(atomic.Int32))
}

func newTestEnvURL(t *testing.T, url string, hits *atomic.Int32) testEnv {
	t.Helper()
	session, err := database.OpenSession(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { _ = session.Close() })

	history := repository.NewSubmissionRepo(session.DB)
	backend := client.New(client.Endpoints{Chat: url, Weather: url, Similarity: url}, client.WithTimeout(5*time.Second))
	app := New(Deps{
		Ctx:        context.Background(),
		Backend:    backend,
		History:    history,
		Now:        func() time.Time { return testNow },
		Location:   time.UTC,
		TimeFormat: "15:04",
	}, "chat")
	app.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return testEnv{app: app, hits: hits, history: history}
}

func (e testEnv) typeText(s string) {
	e.app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
}

func (e testEnv) press(k tea.KeyType) tea.Cmd {
	_, cmd := e.app.Update(tea.KeyMsg{Type: k})
	return cmd
}

// drain runs cmd and every command it leads to, feeding messages back into
// the app the way the bubbletea loop would. Spinner ticks are dropped so the
// animation does not loop forever.
func (e testEnv) drain(t *testing.T, cmd tea.Cmd) []tea.Msg {
	t.Helper()
	queue := []tea.Cmd{cmd}
	var seen []tea.Msg
	for steps := 0; len(queue) > 0; steps++ {
		require.Less(t, steps, 200, "command loop did not settle")
		c := queue[0]
		queue = queue[1:]
		if c == nil {
			continue
		}
		switch m := c().(type) {
		case nil, spinner.TickMsg:
		case tea.BatchMsg:
			queue = append(queue, m...)
		case tea.QuitMsg:
			seen = append(seen, m)
		default:
			seen = append(seen, m)
			_, next := e.app.Update(m)
			queue = append(queue, next)
		}
	}
	return seen
}

func (e testEnv) chat() *chatWidget             { return e.app.widgets[0].(*chatWidget) }
func (e testEnv) weather() *weatherWidget       { return e.app.widgets[1].(*weatherWidget) }
func (e testEnv) similarity() *similarityWidget { return e.app.widgets[2].(*similarityWidget) }

func TestNewHonorsStartTab(t *testing.T) {
	d := Deps{Backend: client.New(client.Endpoints{})}
	require.Equal(t, "weather", New(d, "weather").Active())
	require.Equal(t, "similarity", New(d, "similarity").Active())
	require.Equal(t, "chat", New(d, "news").Active())
}

func TestTabSwitchingKeys(t *testing.T) {
	env := newTestEnv(t, func(w http.ResponseWriter, r *http.Request) {})

	steps := []struct {
		key  tea.KeyType
		want string
	}{
		{tea.KeyF2, "weather"},
		{tea.KeyCtrlN, "similarity"},
		{tea.KeyCtrlN, "chat"},
		{tea.KeyCtrlP, "similarity"},
		{tea.KeyF1, "chat"},
		{tea.KeyF3, "similarity"},
	}
	for _, s := range steps {
		env.press(s.key)
		require.Equal(t, s.want, env.app.Active())
	}
}

func TestQuitKey(t *testing.T) {
	env := newTestEnv(t, func(w http.ResponseWriter, r *http.Request) {})
	msgs := env.drain(t, env.press(tea.KeyCtrlC))
	require.Contains(t, msgs, tea.Msg(tea.QuitMsg{}))
}

func TestKeysReachOnlyActiveWidget(t *testing.T) {
	env := newTestEnv(t, func(w http.ResponseWriter, r *http.Request) {})

	env.typeText("hello")
	require.Equal(t, "hello", env.chat().input.Value())
	require.Empty(t, env.weather().input.Value())
	require.Empty(t, env.similarity().inputs[0].Value())
}

func TestViewShowsTabsStatusAndFooter(t *testing.T) {
	env := newTestEnv(t, func(w http.ResponseWriter, r *http.Request) {})

	out := env.app.View()
	require.Contains(t, out, "labdesk")
	require.Contains(t, out, "Chat")
	require.Contains(t, out, "Weather")
	require.Contains(t, out, "Similarity")
	require.Contains(t, out, "Ready")
	require.Contains(t, out, "ctrl+c")
}

func TestAppWithoutHistory(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"response":"ok"}`))
	}))
	t.Cleanup(srv.Close)

	app := New(Deps{Backend: client.New(client.Endpoints{Chat: srv.URL})}, "chat")
	env := testEnv{app: app, hits: new(atomic.Int32)}
	require.Nil(t, app.Init())

	env.typeText("ping")
	env.drain(t, env.press(tea.KeyEnter))
	require.Equal(t, 2, env.chat().log.Len())
}
