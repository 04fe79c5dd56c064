package diagnostics

import "github.com/hexadocs/docbuild/internal/utils"

// LogSink renders records through the structured logger.
type LogSink struct {
	logger *utils.Logger
}

// NewLogSink creates a sink writing to logger.
func NewLogSink(logger *utils.Logger) *LogSink {
	return &LogSink{logger: logger}
}

// Emit implements Sink.
func (s *LogSink) Emit(rec Record) {
	if s.logger == nil {
		return
	}

	event := s.logger.Info()
	switch rec.Severity {
	case SeverityWarning:
		event = s.logger.Warn()
	case SeverityError:
		event = s.logger.Error()
	}

	event.
		Str("code", rec.Code).
		Strs("sources", rec.Sources).
		Msg(rec.Message)
}

// Tee fans records out to multiple sinks in order.
type Tee []Sink

// Emit implements Sink.
func (t Tee) Emit(rec Record) {
	for _, sink := range t {
		sink.Emit(rec)
	}
}
