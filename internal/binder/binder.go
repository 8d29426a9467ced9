// Package binder coordinates one widget's submit → request → render cycle.
//
// A Binder owns the widget's request state. Submit validates the payload and,
// when accepted, moves to Loading and hands back the single tea.Cmd that
// performs the request. The bubbletea loop feeds the resulting DoneMsg back
// through Resolve, which settles the binder in Success or Error. While
// Loading, further submissions are rejected.
package binder

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/go-playground/validator/v10"
)

// State is the request state of a widget.
type State int

const (
	Idle State = iota
	Loading
	Success
	Error
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Loading:
		return "loading"
	case Success:
		return "success"
	case Error:
		return "error"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

var (
	// ErrBusy is returned by Submit while a request is in flight.
	ErrBusy = errors.New("binder: request in flight")
	// ErrEmptyInput is returned by Submit when a required field is empty.
	ErrEmptyInput = errors.New("binder: required input missing")
)

// SendFunc performs the request for one submission.
type SendFunc[P, R any] func(ctx context.Context, payload P) (R, error)

// DoneMsg carries the outcome of one submission back into Update.
type DoneMsg[R any] struct {
	Binder  string
	Seq     uint64
	Value   R
	Err     error
	Elapsed time.Duration
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Binder is the per-widget Interaction Binder. It is not safe for concurrent
// use; all methods run on the bubbletea loop.
type Binder[P, R any] struct {
	name  string
	send  SendFunc[P, R]
	state State
	seq   uint64
	last  R
	err   error
}

// New returns an Idle binder. name must be unique per program since DoneMsgs
// are broadcast to every widget.
func New[P, R any](name string, send SendFunc[P, R]) *Binder[P, R] {
	return &Binder[P, R]{name: name, send: send}
}

func (b *Binder[P, R]) Name() string { return b.name }

func (b *Binder[P, R]) State() State { return b.state }

// Busy reports whether the action control must be disabled.
func (b *Binder[P, R]) Busy() bool { return b.state == Loading }

// Err returns the error of the last settled submission.
func (b *Binder[P, R]) Err() error { return b.err }

// Last returns the value of the last successful submission.
func (b *Binder[P, R]) Last() R { return b.last }

// Submit starts a submission. On error nothing changes: no state transition
// and no request.
func (b *Binder[P, R]) Submit(ctx context.Context, payload P) (tea.Cmd, error) {
	if b.state == Loading {
		return nil, ErrBusy
	}
	if err := validatePayload(payload); err != nil {
		return nil, err
	}

	b.seq++
	b.state = Loading
	b.err = nil

	name, seq, send := b.name, b.seq, b.send
	return func() tea.Msg {
		start := time.Now()
		v, err := send(ctx, payload)
		return DoneMsg[R]{Binder: name, Seq: seq, Value: v, Err: err, Elapsed: time.Since(start)}
	}, nil
}

// Resolve settles the in-flight submission. It returns false for messages
// that belong to another binder or to a stale submission.
func (b *Binder[P, R]) Resolve(msg DoneMsg[R]) bool {
	if msg.Binder != b.name || msg.Seq != b.seq || b.state != Loading {
		return false
	}
	if msg.Err != nil {
		b.state = Error
		b.err = msg.Err
		return true
	}
	b.state = Success
	b.last = msg.Value
	return true
}

func validatePayload(payload any) error {
	v := reflect.ValueOf(payload)
	for v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return ErrEmptyInput
		}
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return nil
	}
	if err := validate.Struct(payload); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			return fmt.Errorf("%w: %s", ErrEmptyInput, verrs[0].Field())
		}
		return err
	}
	return nil
}
