// Package audit emits one structured event per humanize request, including
// disclosure opt-outs and their justification.
package audit

import "log/slog"

type Entry struct {
	IP         string
	UserAgent  string
	OptOut     bool
	Reason     string
	TextLength int
}

type Logger struct {
	log *slog.Logger
}

func NewLogger(log *slog.Logger) *Logger {
	return &Logger{log: log}
}

func (l *Logger) Record(e Entry) {
	l.log.Info("humanize request",
		"event_type", "humanize.requested",
		"ip", e.IP,
		"user_agent", e.UserAgent,
		"opt_out", e.OptOut,
		"reason", e.Reason,
		"text_length", e.TextLength,
	)
}
