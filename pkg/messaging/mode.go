package messaging

import (
	"log/slog"
	"sync"
)

// Notifier shows a short user notification.
type Notifier interface {
	Notify(title, message string)
}

// LogNotifier writes notifications to a logger.
type LogNotifier struct {
	Logger *slog.Logger
}

func (n LogNotifier) Notify(title, message string) {
	logger := n.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger.Info(message, "notification", title)
}

// Mode is the process-wide "link checking enabled" flag.
type Mode struct {
	mu       sync.Mutex
	enabled  bool
	onChange []func(enabled bool)
}

// OnChange registers fn to run after every Toggle or Set, with the lock released.
func (m *Mode) OnChange(fn func(enabled bool)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onChange = append(m.onChange, fn)
}

func (m *Mode) Enabled() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.enabled
}

// Toggle flips the flag and returns the new state.
func (m *Mode) Toggle() bool {
	m.mu.Lock()
	m.enabled = !m.enabled
	enabled, listeners := m.enabled, m.onChange
	m.mu.Unlock()

	for _, fn := range listeners {
		fn(enabled)
	}
	return enabled
}

// Set stores enabled and returns it.
func (m *Mode) Set(enabled bool) bool {
	m.mu.Lock()
	m.enabled = enabled
	listeners := m.onChange
	m.mu.Unlock()

	for _, fn := range listeners {
		fn(enabled)
	}
	return enabled
}
