package logger

import (
	"strings"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"
)

type restyLogger struct {
	log *zerolog.Logger
}

// Resty routes resty's internal messages through l.
func Resty(l *zerolog.Logger) resty.Logger {
	return restyLogger{log: Or(l)}
}

func (r restyLogger) Errorf(format string, v ...interface{}) {
	r.log.Error().Str("component", "resty").Msgf(strings.TrimSpace(format), v...)
}

func (r restyLogger) Warnf(format string, v ...interface{}) {
	r.log.Warn().Str("component", "resty").Msgf(strings.TrimSpace(format), v...)
}

func (r restyLogger) Debugf(format string, v ...interface{}) {
	r.log.Debug().Str("component", "resty").Msgf(strings.TrimSpace(format), v...)
}
