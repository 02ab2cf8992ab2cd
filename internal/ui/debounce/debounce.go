// Package debounce turns a stream of values into a single settled value per quiescence window.
//
// Every Trigger supersedes the previous one: the tick it schedules still fires,
// but only the message carrying the newest tag is reported as settled.
package debounce

import (
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

var lastID atomic.Int64

// Msg is delivered when a Trigger's window elapses
type Msg struct {
	id    int64
	tag   int
	Value string
}

// Debouncer is a cancel-and-restart timer driven by tea commands
type Debouncer struct {
	id     int64
	tag    int
	window time.Duration
}

func New(window time.Duration) *Debouncer {
	return &Debouncer{
		id:     lastID.Add(1),
		window: window,
	}
}

func (d *Debouncer) Window() time.Duration {
	return d.window
}

// Trigger restarts the window for value
func (d *Debouncer) Trigger(value string) tea.Cmd {
	d.tag++
	msg := Msg{id: d.id, tag: d.tag, Value: value}
	return tea.Tick(d.window, func(time.Time) tea.Msg {
		return msg
	})
}

// Settled reports whether msg belongs to this debouncer and no Trigger happened after it
func (d *Debouncer) Settled(msg Msg) (string, bool) {
	if msg.id != d.id || msg.tag != d.tag {
		return "", false
	}
	return msg.Value, true
}
