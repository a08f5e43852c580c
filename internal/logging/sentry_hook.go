package logging

import (
	"errors"
	"time"

	"github.com/getsentry/sentry-go"
	log "github.com/sirupsen/logrus"
)

const sentryFlushTimeout = 2 * time.Second

// SentryHook forwards logrus entries of the given levels to Sentry.
type SentryHook struct {
	levels []log.Level
	hub    *sentry.Hub
}

func NewSentryHook(levels []log.Level) *SentryHook {
	return &SentryHook{
		levels: levels,
		hub:    sentry.CurrentHub(),
	}
}

func (h *SentryHook) Levels() []log.Level {
	return h.levels
}

func (h *SentryHook) Fire(entry *log.Entry) error {
	hub := h.hub
	if hub == nil {
		return errors.New("sentry hub not set")
	}

	hub.WithScope(func(scope *sentry.Scope) {
		scope.SetLevel(sentryLevel(entry.Level))
		for k, v := range entry.Data {
			if k == log.ErrorKey {
				continue
			}
			scope.SetExtra(k, v)
		}

		if err, ok := entry.Data[log.ErrorKey].(error); ok && err != nil {
			scope.SetExtra("message", entry.Message)
			hub.CaptureException(err)
			return
		}
		hub.CaptureMessage(entry.Message)
	})

	// process is about to die, make sure the event leaves
	if entry.Level <= log.FatalLevel {
		hub.Flush(sentryFlushTimeout)
	}

	return nil
}

func sentryLevel(level log.Level) sentry.Level {
	switch level {
	case log.PanicLevel, log.FatalLevel:
		return sentry.LevelFatal
	case log.ErrorLevel:
		return sentry.LevelError
	case log.WarnLevel:
		return sentry.LevelWarning
	case log.InfoLevel:
		return sentry.LevelInfo
	default:
		return sentry.LevelDebug
	}
}
