package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/tracelog"
	"github.com/rs/zerolog"
)

// pgxLogger adapts zerolog.Logger to pgx's tracelog interface.
type pgxLogger struct {
	logger zerolog.Logger
}

// newPgxLogger tags the child logger with component=pgx so SQL noise stays filterable.
func newPgxLogger(logger zerolog.Logger) *pgxLogger {
	l := logger.With().Str("component", "pgx").Logger()
	return &pgxLogger{logger: l}
}

// Log implements tracelog.Logger. SQL text, args and durations get typed fields;
// the rest of data is attached as-is.
func (l *pgxLogger) Log(_ context.Context, level tracelog.LogLevel, msg string, data map[string]any) {
	var event *zerolog.Event

	switch level {
	case tracelog.LogLevelNone:
		return
	case tracelog.LogLevelTrace:
		event = l.logger.Trace()
	case tracelog.LogLevelDebug:
		event = l.logger.Debug()
	case tracelog.LogLevelInfo:
		event = l.logger.Info()
	case tracelog.LogLevelWarn:
		event = l.logger.Warn()
	case tracelog.LogLevelError:
		event = l.logger.Error()
	default:
		event = l.logger.Info().Str("pgx_log_level", level.String())
	}

	if sqlVal, ok := data["sql"].(string); ok {
		event = event.Str("sql", sqlVal)
		delete(data, "sql")
	}
	if args, ok := data["args"]; ok {
		// Args are only worth their allocation at trace level.
		if level == tracelog.LogLevelTrace {
			event = event.Interface("args", args)
		}
		delete(data, "args")
	}
	if d, ok := data["time"].(time.Duration); ok {
		event = event.Dur("took", d)
		delete(data, "time")
	}

	if len(data) > 0 {
		event = event.Fields(data)
	}
	event.Msg(msg)
}
