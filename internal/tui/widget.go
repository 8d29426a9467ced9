package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/labdesk/internal/client"
	"github.com/jask/labdesk/internal/database"
	"github.com/jask/labdesk/internal/database/repository"
	"github.com/jask/labdesk/internal/logging"
)

var log = logging.GetLogger()

// Widget names, used as binder names and as the history key.
const (
	chatName       = "chat"
	weatherName    = "weather"
	similarityName = "similarity"
)

// Backend is the set of calls the widgets make.
type Backend interface {
	Chat(ctx context.Context, req client.ChatRequest) (client.ChatResponse, error)
	Weather(ctx context.Context, q client.WeatherQuery) (client.WeatherResponse, error)
	Predict(ctx context.Context, req client.SimilarityRequest) (client.SimilarityResponse, error)
}

// Deps are handed to every widget constructor. History may be nil, in which
// case nothing is recorded.
type Deps struct {
	Ctx        context.Context
	Backend    Backend
	History    *repository.SubmissionRepo
	Now        func() time.Time
	Location   *time.Location
	TimeFormat string
}

func (d Deps) withDefaults() Deps {
	if d.Ctx == nil {
		d.Ctx = context.Background()
	}
	if d.Now == nil {
		d.Now = database.Now
	}
	if d.Location == nil {
		d.Location = time.Local
	}
	if d.TimeFormat == "" {
		d.TimeFormat = "15:04"
	}
	return d
}

// widget is one tab of the app. Key messages reach only the active widget;
// everything else is broadcast.
type widget interface {
	Name() string
	Title() string
	Init() tea.Cmd
	Update(msg tea.Msg) tea.Cmd
	View() string
	SetSize(width, height int)
	Busy() bool
	Bindings() []key.Binding
}

func newInput(placeholder string, limit int) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = limit
	ti.Prompt = "› "
	ti.PromptStyle = titleStyle
	ti.Cursor.SetMode(cursor.CursorStatic)
	return ti
}

func newSpinner() spinner.Model {
	return spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(spinnerStyle))
}
