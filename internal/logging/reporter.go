package logging

import (
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Reporter logs poll errors. It never blocks the poll loop.
type Reporter struct {
	logger *zerolog.Logger
}

// NewReporter returns a Reporter writing to logger, or to the global
// logger when logger is nil
func NewReporter(logger *zerolog.Logger) *Reporter {
	return &Reporter{logger: logger}
}

// ReportError implements poller.ErrorReporter
func (r *Reporter) ReportError(context string, err error) {
	logger := r.logger
	if logger == nil {
		logger = &log.Logger
	}
	logger.Error().Err(err).Str("context", context).Msg("poll error")
}
