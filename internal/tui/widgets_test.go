package tui

import (
	"context"
	"io"
	"net/http"
	"sync/atomic"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jask/labdesk/internal/binder"
	"github.com/jask/labdesk/internal/database/repository"
	"github.com/jask/labdesk/internal/view"
)

func TestChatEmptyInputIsIgnored(t *testing.T) {
	env := newTestEnv(t, func(w http.ResponseWriter, r *http.Request) {})

	env.typeText("   ")
	require.Nil(t, env.press(tea.KeyEnter))
	require.Zero(t, env.chat().log.Len())
	require.Equal(t, binder.Idle, env.chat().binder.State())
	require.Zero(t, env.hits.Load())
}

func TestChatRoundTrip(t *testing.T) {
	env := newTestEnv(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/chat", r.URL.Path)
		body, _ := io.ReadAll(r.Body)
		assert.JSONEq(t, `{"message":"hello"}`, string(body))
		_, _ = w.Write([]byte(`{"response":"hi"}`))
	})
	chat := env.chat()

	env.typeText("  hello ")
	cmd := env.press(tea.KeyEnter)
	require.NotNil(t, cmd)
	require.True(t, chat.Busy())
	require.Empty(t, chat.input.Value())
	require.Equal(t, 1, chat.log.Len())
	require.Contains(t, env.app.View(), "Bot is typing")

	// the trigger is disabled while loading
	env.typeText("again")
	require.Nil(t, env.press(tea.KeyEnter))

	env.drain(t, cmd)
	require.EqualValues(t, 1, env.hits.Load())
	require.Equal(t, binder.Success, chat.binder.State())

	msgs := chat.log.Messages()
	require.Len(t, msgs, 2)
	require.Equal(t, view.User, msgs[0].Speaker)
	require.Equal(t, "hello", msgs[0].Text)
	require.Equal(t, view.Bot, msgs[1].Speaker)
	require.Equal(t, "hi", msgs[1].Text)
	require.Regexp(t, `^\d{2}:\d{2}$`, msgs[1].Time)
	require.Equal(t, "09:41", msgs[1].Time)

	require.Equal(t, 1, chat.count)
	require.Contains(t, env.app.View(), "1 requests this session")
}

func TestChatFailuresShowApology(t *testing.T) {
	cases := map[string]func(t *testing.T) testEnv{
		"server error": func(t *testing.T) testEnv {
			return newTestEnv(t, func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, "boom", http.StatusInternalServerError)
			})
		},
		"connection refused": newDeadEnv,
	}
	for name, setup := range cases {
		t.Run(name, func(t *testing.T) {
			env := setup(t)
			chat := env.chat()

			env.typeText("hello")
			env.drain(t, env.press(tea.KeyEnter))

			require.Equal(t, binder.Error, chat.binder.State())
			msgs := chat.log.Messages()
			require.Len(t, msgs, 2)
			require.Equal(t, ChatFailure, msgs[1].Text)

			recent, err := env.history.Recent(context.Background(), chatName, 5)
			require.NoError(t, err)
			require.Len(t, recent, 1)
			require.Equal(t, repository.OutcomeError, recent[0].Outcome)
		})
	}
}

func TestWeatherEmptyInputIsIgnored(t *testing.T) {
	env := newTestEnv(t, func(w http.ResponseWriter, r *http.Request) {})
	env.press(tea.KeyF2)

	env.typeText("  ")
	require.Nil(t, env.press(tea.KeyEnter))
	require.Equal(t, binder.Idle, env.weather().binder.State())
	require.Zero(t, env.hits.Load())
}

func TestWeatherRendersCard(t *testing.T) {
	env := newTestEnv(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/weather", r.URL.Path)
		assert.Equal(t, "Paris", r.URL.Query().Get("city"))
		_, _ = w.Write([]byte(`{
			"city": "Paris", "country": "France",
			"current": {"temperature": 21.5, "weathercode": 95, "windspeed": 12.4},
			"daily": {
				"time": ["2026-10-18", "2026-10-19", "2026-10-20"],
				"temperature_2m_max": [24.2, 19.6, 17.0],
				"temperature_2m_min": [13.1, 11.0, 9.4],
				"weathercode": [0, 61, 7]
			}
		}`))
	})
	env.press(tea.KeyF2)
	weather := env.weather()

	env.typeText("Paris")
	cmd := env.press(tea.KeyEnter)
	require.True(t, weather.Busy())
	require.Contains(t, env.app.View(), "Loading")
	require.Contains(t, env.app.View(), "Search")

	// the trigger is disabled while loading
	require.Nil(t, env.press(tea.KeyEnter))
	require.Equal(t, binder.Loading, weather.binder.State())

	env.drain(t, cmd)
	require.EqualValues(t, 1, env.hits.Load())
	require.Equal(t, binder.Success, weather.binder.State())
	require.NotNil(t, weather.result())
	require.Equal(t, "Thunderstorm", weather.result().Condition)
	require.Equal(t, "Unknown", weather.result().Days[2].Condition)

	out := env.app.View()
	require.Contains(t, out, "Paris, France")
	require.Contains(t, out, "22°C")
	require.Contains(t, out, "Thunderstorm")
	require.Contains(t, out, "Wind: 12.4 km/h")
	require.Contains(t, out, "Sun 18    24° /   13°  Clear sky")
	require.Contains(t, out, "Mon 19    20° /   11°  Slight rain")
	require.Contains(t, out, "Tue 20    17° /    9°  Unknown")
	require.NotContains(t, out, "%!")
	require.Contains(t, out, "Recent: Paris")
}

func TestWeatherUnknownCode(t *testing.T) {
	env := newTestEnv(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"city":"Oslo","country":"Norway","current":{"temperature":-2.5,"weathercode":7,"windspeed":3}}`))
	})
	env.press(tea.KeyF2)

	env.typeText("Oslo")
	env.drain(t, env.press(tea.KeyEnter))
	require.Equal(t, "Unknown", env.weather().result().Condition)
	require.Equal(t, -2, env.weather().result().Temperature)
}

func TestWeatherErrors(t *testing.T) {
	cases := []struct {
		name  string
		setup func(t *testing.T) testEnv
		want  string
	}{
		{
			name: "backend message",
			setup: func(t *testing.T) testEnv {
				return newTestEnv(t, func(w http.ResponseWriter, r *http.Request) {
					w.WriteHeader(http.StatusNotFound)
					_, _ = w.Write([]byte(`{"error":"City not found"}`))
				})
			},
			want: "City not found",
		},
		{
			name: "no message",
			setup: func(t *testing.T) testEnv {
				return newTestEnv(t, func(w http.ResponseWriter, r *http.Request) {
					http.Error(w, "<html>oops</html>", http.StatusBadGateway)
				})
			},
			want: WeatherFailure,
		},
		{name: "transport", setup: newDeadEnv, want: WeatherNetFailed},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			env := tc.setup(t)
			env.press(tea.KeyF2)
			weather := env.weather()

			env.typeText("Atlantis")
			env.drain(t, env.press(tea.KeyEnter))

			require.Equal(t, binder.Error, weather.binder.State())
			require.Nil(t, weather.result())
			require.Equal(t, tc.want, weather.errText())
			require.Contains(t, env.app.View(), tc.want)
		})
	}
}

func TestWeatherNewLookupHidesPriorResult(t *testing.T) {
	var fail atomic.Bool
	env := newTestEnv(t, func(w http.ResponseWriter, r *http.Request) {
		if fail.Load() {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"error":"City not found"}`))
			return
		}
		_, _ = w.Write([]byte(`{"city":"Lima","country":"Peru","current":{"temperature":18,"weathercode":3,"windspeed":9}}`))
	})
	env.press(tea.KeyF2)
	weather := env.weather()

	env.typeText("Lima")
	env.drain(t, env.press(tea.KeyEnter))
	require.NotNil(t, weather.result())

	fail.Store(true)
	cmd := env.press(tea.KeyEnter)
	require.Nil(t, weather.result())
	require.Empty(t, weather.errText())
	env.drain(t, cmd)

	require.Nil(t, weather.result())
	require.Equal(t, "City not found", weather.errText())
	require.NotContains(t, env.app.View(), "Overcast")
}

func TestSimilarityEmptyInputRaisesNotice(t *testing.T) {
	env := newTestEnv(t, func(w http.ResponseWriter, r *http.Request) {})
	env.press(tea.KeyF3)

	env.typeText("only one sentence")
	env.drain(t, env.press(tea.KeyCtrlS))

	require.Zero(t, env.hits.Load())
	require.Equal(t, binder.Idle, env.similarity().binder.State())
	require.Equal(t, SimilarityEmptyNotice, env.app.status)
	require.True(t, env.app.statusErr)
	require.Contains(t, env.app.View(), SimilarityEmptyNotice)
}

func TestSimilarityFocusAndSubmit(t *testing.T) {
	env := newTestEnv(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/predict", r.URL.Path)
		body, _ := io.ReadAll(r.Body)
		assert.JSONEq(t, `{"sentence1":"kitten","sentence2":"sitting"}`, string(body))
		_, _ = w.Write([]byte(`{"similarity_score":0.873,"is_paraphrase":true,"verdict":"Paraphrase"}`))
	})
	env.press(tea.KeyF3)
	sim := env.similarity()

	env.typeText("kitten")
	require.Nil(t, env.press(tea.KeyEnter), "enter on the first field moves focus")
	require.Equal(t, 1, sim.focus)
	env.typeText("sitting")

	cmd := env.press(tea.KeyEnter)
	require.True(t, sim.Busy())
	require.Contains(t, env.app.View(), "Analyzing")

	// the trigger is disabled while loading
	require.Nil(t, env.press(tea.KeyCtrlS))
	require.Nil(t, env.press(tea.KeyEnter))
	require.Equal(t, binder.Loading, sim.binder.State())

	env.drain(t, cmd)
	require.EqualValues(t, 1, env.hits.Load())
	require.Equal(t, binder.Success, sim.binder.State())
	require.NotNil(t, sim.result())
	require.Equal(t, "87%", sim.result().Label)
	require.Equal(t, view.ThemeSuccess, sim.result().Theme)
	require.Equal(t, "87, 100", sim.result().DashArray)
	require.Equal(t, 3, sim.result().EditDistance)

	out := env.app.View()
	require.Contains(t, out, "Paraphrase")
	require.Contains(t, out, "87%")
	require.Contains(t, out, "Dash array: 87, 100")
	require.Contains(t, out, "Recent verdicts")
}

func TestSimilarityTabSwitchesFields(t *testing.T) {
	env := newTestEnv(t, func(w http.ResponseWriter, r *http.Request) {})
	env.press(tea.KeyF3)
	sim := env.similarity()

	env.press(tea.KeyTab)
	require.Equal(t, 1, sim.focus)
	env.typeText("second")
	env.press(tea.KeyShiftTab)
	require.Equal(t, 0, sim.focus)
	env.typeText("first")

	require.Equal(t, "first", sim.inputs[0].Value())
	require.Equal(t, "second", sim.inputs[1].Value())
}

func TestSimilarityErrors(t *testing.T) {
	cases := []struct {
		name  string
		setup func(t *testing.T) testEnv
		want  string
	}{
		{
			name: "backend message",
			setup: func(t *testing.T) testEnv {
				return newTestEnv(t, func(w http.ResponseWriter, r *http.Request) {
					w.WriteHeader(http.StatusServiceUnavailable)
					_, _ = w.Write([]byte(`{"error":"model not loaded"}`))
				})
			},
			want: "Error: model not loaded",
		},
		{
			name: "no message",
			setup: func(t *testing.T) testEnv {
				return newTestEnv(t, func(w http.ResponseWriter, r *http.Request) {
					w.WriteHeader(http.StatusInternalServerError)
				})
			},
			want: "Error: Something went wrong",
		},
		{name: "transport", setup: newDeadEnv, want: SimilarityNetFailed},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			env := tc.setup(t)
			env.press(tea.KeyF3)
			sim := env.similarity()

			env.typeText("a")
			env.press(tea.KeyTab)
			env.typeText("b")
			env.drain(t, env.press(tea.KeyCtrlS))

			require.Equal(t, binder.Error, sim.binder.State())
			require.Nil(t, sim.result())
			require.Equal(t, tc.want, sim.errText())
			require.Contains(t, env.app.View(), tc.want)
		})
	}
}

func TestAcceptedSubmitClearsNotice(t *testing.T) {
	env := newTestEnv(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"similarity_score":0.92,"is_paraphrase":true,"verdict":"Paraphrase"}`))
	})
	env.press(tea.KeyF3)
	sim := env.similarity()

	env.typeText("the cat sat")
	env.drain(t, env.press(tea.KeyCtrlS))
	require.Equal(t, SimilarityEmptyNotice, env.app.status)
	require.True(t, env.app.statusErr)

	env.press(tea.KeyTab)
	env.typeText("a cat was sitting")
	cmd := env.press(tea.KeyCtrlS)
	require.True(t, sim.Busy())
	require.Empty(t, env.app.status)
	require.False(t, env.app.statusErr)

	env.drain(t, cmd)
	require.Equal(t, binder.Success, sim.binder.State())
	require.False(t, env.app.statusErr)
	out := env.app.View()
	require.NotContains(t, out, SimilarityEmptyNotice)
	require.Contains(t, out, "92%")
}

func TestRejectedSubmitKeepsNotice(t *testing.T) {
	env := newTestEnv(t, func(w http.ResponseWriter, r *http.Request) {})
	env.press(tea.KeyF3)

	env.drain(t, env.press(tea.KeyCtrlS))
	env.drain(t, env.press(tea.KeyCtrlS))
	require.Equal(t, SimilarityEmptyNotice, env.app.status)
	require.Zero(t, env.hits.Load())
}
