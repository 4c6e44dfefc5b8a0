package poller

import "github.com/vietdv277/skymap/pkg/types"

// Publisher receives every successful poll result. Publish is called from
// the poll loop and must not call Configure, Clear or Stop on the same
// scheduler.
type Publisher interface {
	Publish(result types.PollResult)
}

// ErrorReporter receives failures that did not replace the published result
type ErrorReporter interface {
	ReportError(context string, err error)
}

// PublisherFunc adapts a function to Publisher
type PublisherFunc func(result types.PollResult)

func (f PublisherFunc) Publish(result types.PollResult) { f(result) }

// ReporterFunc adapts a function to ErrorReporter
type ReporterFunc func(context string, err error)

func (f ReporterFunc) ReportError(context string, err error) { f(context, err) }

var discard = ReporterFunc(func(string, error) {})

func reporterOrDiscard(r ErrorReporter) ErrorReporter {
	if r == nil {
		return discard
	}
	return r
}
