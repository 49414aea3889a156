// Package report delivers non-fatal errors from the render thread to the
// user without stopping the application.
package report

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/hologram/internal/logger"
)

// Category classifies a reported error.
type Category int

const (
	Unknown Category = iota
	BufferCreation
)

// String returns the category label shown to the user.
func (c Category) String() string {
	switch c {
	case BufferCreation:
		return "buffer creation error"
	default:
		return "unknown error"
	}
}

// Reporter receives errors the renderer survives.
type Reporter interface {
	ReportError(category Category, cause string)
}

// Func adapts a function to Reporter.
type Func func(category Category, cause string)

// ReportError calls f.
func (f Func) ReportError(category Category, cause string) {
	f(category, cause)
}

// Message formats the user-facing text for an error.
func Message(category Category, cause string) string {
	switch category {
	case BufferCreation:
		return fmt.Sprintf("Could not create vertex buffer objects: %s", cause)
	default:
		return fmt.Sprintf("Unknown error: %s", cause)
	}
}

// LogReporter writes reports to the log.
type LogReporter struct {
	log *zap.Logger
}

// NewLogReporter returns a Reporter that logs at error level.
func NewLogReporter() *LogReporter {
	return &LogReporter{log: logger.Named("report")}
}

// ReportError logs the error.
func (r *LogReporter) ReportError(category Category, cause string) {
	r.log.Error(Message(category, cause),
		zap.Stringer("category", category),
		zap.String("cause", cause),
	)
}
