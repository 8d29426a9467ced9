package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jask/labdesk/internal/binder"
	"github.com/jask/labdesk/internal/client"
	"github.com/jask/labdesk/internal/view"
)

// ChatFailure is the bot reply shown for any failed chat request.
const ChatFailure = "Sorry, I'm having trouble connecting to the server."

type chatWidget struct {
	deps    Deps
	binder  *binder.Binder[client.ChatRequest, client.ChatResponse]
	input   textinput.Model
	log     *view.Log
	vp      viewport.Model
	spinner spinner.Model
	count   int
}

func newChatWidget(d Deps) *chatWidget {
	w := &chatWidget{
		deps:    d,
		binder:  binder.New(chatName, d.Backend.Chat),
		input:   newInput("Type a message…", 2000),
		log:     view.NewLog(d.TimeFormat, d.Location, d.Now),
		vp:      viewport.New(80, 10),
		spinner: newSpinner(),
	}
	w.input.Focus()
	return w
}

func (w *chatWidget) Name() string  { return chatName }
func (w *chatWidget) Title() string { return "Chat" }
func (w *chatWidget) Busy() bool    { return w.binder.Busy() }

func (w *chatWidget) Bindings() []key.Binding {
	return []key.Binding{submitKey, scrollUpKey, scrollDownKey}
}

func (w *chatWidget) Init() tea.Cmd { return historyCmd(w.deps, chatName) }

func (w *chatWidget) SetSize(width, height int) {
	w.input.Width = max(10, width-4)
	w.vp.Width = width
	w.vp.Height = max(3, height-5)
	w.refresh()
}

func (w *chatWidget) Update(msg tea.Msg) tea.Cmd {
	switch m := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(m, submitKey):
			return w.submit()
		case key.Matches(m, scrollUpKey, scrollDownKey):
			var cmd tea.Cmd
			w.vp, cmd = w.vp.Update(m)
			return cmd
		}
		var cmd tea.Cmd
		w.input, cmd = w.input.Update(m)
		return cmd
	case binder.DoneMsg[client.ChatResponse]:
		return w.settle(m)
	case spinner.TickMsg:
		if !w.binder.Busy() {
			return nil
		}
		var cmd tea.Cmd
		w.spinner, cmd = w.spinner.Update(m)
		return cmd
	case historyMsg:
		if m.Widget == chatName && m.Err == nil {
			w.count = m.Count
		}
	}
	return nil
}

func (w *chatWidget) submit() tea.Cmd {
	text := strings.TrimSpace(w.input.Value())
	cmd, err := w.binder.Submit(w.deps.Ctx, client.ChatRequest{Message: text})
	if err != nil {
		if !errors.Is(err, binder.ErrEmptyInput) && !errors.Is(err, binder.ErrBusy) {
			log.WithError(err).Warn("chat submit")
		}
		return nil
	}
	w.log.Append(view.User, text)
	w.input.Reset()
	w.refresh()
	log.WithField("widget", chatName).Debug("submitted")
	return tea.Batch(cmd, w.spinner.Tick)
}

func (w *chatWidget) settle(m binder.DoneMsg[client.ChatResponse]) tea.Cmd {
	if !w.binder.Resolve(m) {
		return nil
	}
	input := lastUserText(w.log)
	if m.Err != nil {
		log.WithError(m.Err).WithField("widget", chatName).Info("request failed")
		w.log.Append(view.Bot, ChatFailure)
		w.refresh()
		return recordCmd(w.deps, chatName, input, true, m.Err.Error(), m.Elapsed)
	}
	w.log.Append(view.Bot, m.Value.Response)
	w.refresh()
	return recordCmd(w.deps, chatName, input, false, m.Value.Response, m.Elapsed)
}

func lastUserText(l *view.Log) string {
	msgs := l.Messages()
	for i := len(msgs) - 1; i >= 0; i-- {
		if msgs[i].Speaker == view.User {
			return msgs[i].Text
		}
	}
	return ""
}

func (w *chatWidget) refresh() {
	bubbleWidth := max(10, w.vp.Width*3/4)
	var b strings.Builder
	for i, msg := range w.log.Messages() {
		if i > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(renderBubble(msg, bubbleWidth, w.vp.Width))
	}
	w.vp.SetContent(b.String())
	w.vp.GotoBottom()
}

func renderBubble(msg view.Message, bubbleWidth, width int) string {
	style, align := botBubbleStyle, lipgloss.Left
	if msg.Speaker == view.User {
		style, align = userBubbleStyle, lipgloss.Right
	}
	body := style.Width(min(bubbleWidth, lipgloss.Width(msg.Text)+2)).Render(msg.Text)
	stamp := mutedStyle.Render(msg.Time)
	block := lipgloss.JoinVertical(align, body, stamp)
	return lipgloss.PlaceHorizontal(width, align, block)
}

func (w *chatWidget) View() string {
	header := titleStyle.Render("Chat") + mutedStyle.Render(fmt.Sprintf("  %d requests this session", w.count))

	status := " "
	if w.binder.Busy() {
		status = w.spinner.View() + mutedStyle.Render(" Bot is typing…")
	}
	controls := lipgloss.JoinHorizontal(lipgloss.Center, w.input.View(), " ", button("Send", w.binder.Busy()))
	return lipgloss.JoinVertical(lipgloss.Left, header, w.vp.View(), status, controls)
}
