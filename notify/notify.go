package notify

import "time"

type Level string

const (
	LevelInfo  Level = "info"
	LevelError Level = "error"
)

type Message struct {
	Level Level     `json:"level"`
	Text  string    `json:"text"`
	At    time.Time `json:"at"`
}

// Notifier is the sink for user-visible messages.
type Notifier interface {
	Info(text string)
	Error(text string)
}

// Multi forwards every message to all of its notifiers in order.
type Multi []Notifier

func (m Multi) Info(text string) {
	for _, n := range m {
		n.Info(text)
	}
}

func (m Multi) Error(text string) {
	for _, n := range m {
		n.Error(text)
	}
}
