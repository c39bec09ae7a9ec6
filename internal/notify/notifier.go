// Package notify delivers the modal messages screens show to the user.
package notify

import "sync"

// Notifier displays a message with a title and body. Calls are fire-and-forget.
type Notifier interface {
	Notify(title, body string)
}

type NotifierFunc func(title, body string)

func (f NotifierFunc) Notify(title, body string) {
	f(title, body)
}

type Message struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

// Recorder keeps every message it is handed, in order.
type Recorder struct {
	mu       sync.Mutex
	messages []Message
}

func (r *Recorder) Notify(title, body string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages = append(r.messages, Message{Title: title, Body: body})
}

func (r *Recorder) Messages() []Message {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Message, len(r.messages))
	copy(out, r.messages)
	return out
}

// Last returns the most recent message, or false if none was recorded.
func (r *Recorder) Last() (Message, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.messages) == 0 {
		return Message{}, false
	}
	return r.messages[len(r.messages)-1], true
}

type multi []Notifier

// Multi returns a Notifier that forwards to every non-nil n.
func Multi(notifiers ...Notifier) Notifier {
	m := make(multi, 0, len(notifiers))
	for _, n := range notifiers {
		if n != nil {
			m = append(m, n)
		}
	}
	return m
}

func (m multi) Notify(title, body string) {
	for _, n := range m {
		n.Notify(title, body)
	}
}
