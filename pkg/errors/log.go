package errors

import (
	log "github.com/sirupsen/logrus"
)

// LogHandler is an ErrorHandler that writes through logrus.
type LogHandler struct {
	// Verbose attaches stack traces to the log entries.
	Verbose bool
	// Logger overrides the standard logrus logger when set.
	Logger *log.Logger
}

func (h *LogHandler) logger() *log.Logger {
	if h.Logger != nil {
		return h.Logger
	}
	return log.StandardLogger()
}

// HandleError logs a ClockError. Render errors are logged as warnings
// because the frame loop continues without the failed element.
func (h *LogHandler) HandleError(err *ClockError) {
	if err == nil {
		return
	}
	entry := h.logger().WithFields(log.Fields{
		"op":   err.Op,
		"kind": err.Kind.String(),
	})
	if err.Attribute != "" {
		entry = entry.WithField("attribute", err.Attribute)
	}
	if h.Verbose && err.StackTrace != "" {
		entry = entry.WithField("stack", err.StackTrace)
	}
	if err.Kind == KindRender {
		entry.Warn(err.Err)
		return
	}
	entry.Error(err.Err)
}

// HandlePanic logs a PanicError.
func (h *LogHandler) HandlePanic(err *PanicError) {
	if err == nil {
		return
	}
	entry := h.logger().WithField("panic", err.Value)
	if err.Op != "" {
		entry = entry.WithField("op", err.Op)
	}
	if h.Verbose && err.StackTrace != "" {
		entry = entry.WithField("stack", err.StackTrace)
	}
	entry.Error("recovered panic")
}
