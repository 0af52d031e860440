// Package audit records security-relevant agent events: authentication
// outcomes, intent classification, risk scores and transfer execution.
package audit

import "go.uber.org/zap"

// Level grades an event's severity.
type Level string

const (
	LevelInfo  Level = "info"
	LevelWarn  Level = "warn"
	LevelError Level = "error"
)

// Event is one structured audit record. Fields carry event-specific values
// such as amounts and scores; raw message text never belongs here.
type Event struct {
	Level   Level
	UserID  string
	Message string
	Fields  map[string]any
}

// Sink accepts audit events. Implementations must be safe for concurrent use.
type Sink interface {
	Record(Event)
}

// ZapSink writes audit events through a zap logger.
type ZapSink struct {
	log *zap.Logger
}

// NewZapSink wraps log in a Sink.
func NewZapSink(log *zap.Logger) *ZapSink {
	return &ZapSink{log: log.Named("audit")}
}

// Record logs the event at its severity with user_id plus any fields.
func (s *ZapSink) Record(e Event) {
	fields := make([]zap.Field, 0, len(e.Fields)+1)
	fields = append(fields, zap.String("user_id", e.UserID))
	for k, v := range e.Fields {
		fields = append(fields, zap.Any(k, v))
	}

	switch e.Level {
	case LevelWarn:
		s.log.Warn(e.Message, fields...)
	case LevelError:
		s.log.Error(e.Message, fields...)
	default:
		s.log.Info(e.Message, fields...)
	}
}

// NopSink discards all events.
type NopSink struct{}

// Record implements Sink.
func (NopSink) Record(Event) {}
