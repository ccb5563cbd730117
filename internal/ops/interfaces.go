package ops

import (
	"sync"

	"github.com/charmbracelet/log"
)

// Selector supplies input paths. Implementations return ErrCancelled when
// the user backs out.
type Selector interface {
	SelectOne() (string, error)
	SelectMany() ([]string, error)
}

// Notifier delivers a titled message to the user.
type Notifier interface {
	Info(title, message string)
	Error(title, message string)
}

// StaticSelector returns paths chosen before the operation started. An
// empty selector behaves like a cancelled dialog.
type StaticSelector []string

func (s StaticSelector) SelectOne() (string, error) {
	if len(s) == 0 {
		return "", ErrCancelled
	}
	return s[0], nil
}

func (s StaticSelector) SelectMany() ([]string, error) {
	if len(s) == 0 {
		return nil, ErrCancelled
	}
	return append([]string(nil), s...), nil
}

// LogNotifier writes notifications to a logger.
type LogNotifier struct {
	Logger *log.Logger
}

func (n LogNotifier) Info(title, message string) {
	n.Logger.Info(message, "title", title)
}

func (n LogNotifier) Error(title, message string) {
	n.Logger.Error(message, "title", title)
}

// Severity of a notification.
type Severity int

const (
	SeverityInfo Severity = iota
	SeverityError
)

// Notification is one delivered message.
type Notification struct {
	Severity Severity
	Title    string
	Message  string
}

// RecordingNotifier keeps every notification it receives.
type RecordingNotifier struct {
	mu   sync.Mutex
	msgs []Notification
}

func (r *RecordingNotifier) Info(title, message string) {
	r.add(Notification{Severity: SeverityInfo, Title: title, Message: message})
}

func (r *RecordingNotifier) Error(title, message string) {
	r.add(Notification{Severity: SeverityError, Title: title, Message: message})
}

func (r *RecordingNotifier) add(n Notification) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.msgs = append(r.msgs, n)
}

// Notifications returns the messages received so far.
func (r *RecordingNotifier) Notifications() []Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Notification(nil), r.msgs...)
}

// Last returns the most recent notification.
func (r *RecordingNotifier) Last() (Notification, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.msgs) == 0 {
		return Notification{}, false
	}
	return r.msgs[len(r.msgs)-1], true
}
