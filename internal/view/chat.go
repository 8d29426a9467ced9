package view

import (
	"time"

	"github.com/google/uuid"
)

// Speaker identifies who wrote a chat message.
type Speaker int

const (
	User Speaker = iota
	Bot
)

// Message is one rendered chat bubble. Time is the client wall clock at
// render time, formatted with the log's layout.
type Message struct {
	ID      string
	Speaker Speaker
	Text    string
	Time    string
}

// Log is the append-only chat transcript of the current session.
type Log struct {
	messages []Message
	layout   string
	loc      *time.Location
	now      func() time.Time
}

// NewLog returns an empty log. A nil now uses time.Now; a nil loc uses
// time.Local.
func NewLog(layout string, loc *time.Location, now func() time.Time) *Log {
	if layout == "" {
		layout = "15:04"
	}
	if loc == nil {
		loc = time.Local
	}
	if now == nil {
		now = time.Now
	}
	return &Log{layout: layout, loc: loc, now: now}
}

// Append stamps and stores a message.
func (l *Log) Append(s Speaker, text string) Message {
	m := Message{
		ID:      uuid.NewString(),
		Speaker: s,
		Text:    text,
		Time:    l.now().In(l.loc).Format(l.layout),
	}
	l.messages = append(l.messages, m)
	return m
}

// Messages returns a copy of the transcript, oldest first.
func (l *Log) Messages() []Message {
	out := make([]Message, len(l.messages))
	copy(out, l.messages)
	return out
}

func (l *Log) Len() int { return len(l.messages) }
