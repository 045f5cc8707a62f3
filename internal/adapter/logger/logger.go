package logger

import (
	"os"
	"sort"

	"github.com/charmbracelet/log"
)

// LoggerAdapter implements ports.LoggerPort on charmbracelet/log. In
// production the level is raised to Info; everywhere else Debug rows
// from the loaders are visible too.
type LoggerAdapter struct {
	logger *log.Logger
}

func NewLoggerAdapter(env string) *LoggerAdapter {
	level := log.DebugLevel
	if env == "production" {
		level = log.InfoLevel
	}
	l := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Level:           level,
	})
	return &LoggerAdapter{logger: l}
}

func (l *LoggerAdapter) Debug(message string, fields map[string]interface{}) {
	l.logger.Debug(message, keyvals(fields)...)
}

func (l *LoggerAdapter) Info(message string, fields map[string]interface{}) {
	l.logger.Info(message, keyvals(fields)...)
}

func (l *LoggerAdapter) Warn(message string, fields map[string]interface{}) {
	l.logger.Warn(message, keyvals(fields)...)
}

func (l *LoggerAdapter) Error(message string, fields map[string]interface{}) {
	l.logger.Error(message, keyvals(fields)...)
}

// keyvals flattens the field map into the pair list charm log expects,
// in stable key order.
func keyvals(fields map[string]interface{}) []interface{} {
	if len(fields) == 0 {
		return nil
	}
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]interface{}, 0, len(fields)*2)
	for _, k := range keys {
		out = append(out, k, fields[k])
	}
	return out
}
