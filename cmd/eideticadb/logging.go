package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/eidetica/eideticadb/elog"
)

var logLevelMap = map[string]slog.Level{
	"debug": slog.LevelDebug,
	"info":  slog.LevelInfo,
	"warn":  slog.LevelWarn,
	"error": slog.LevelError,
}

// slogAdapter makes the process's default *slog.Logger satisfy
// elog.Logger, so the core's debug-level commit/merge-fold/backend logs
// flow through the same handler as the CLI's own logging.
type slogAdapter struct{ logger *slog.Logger }

func (a slogAdapter) Debugf(format string, args ...any) {
	a.logger.Debug(fmt.Sprintf(format, args...))
}

// initLogging installs a text-handler slog.Logger writing to stderr as the
// process default, at the level named by level (falling back to warn for
// an unrecognized name), and wires it into the core engine's elog seam.
func initLogging(level string) error {
	lvl, ok := logLevelMap[strings.ToLower(level)]
	if !ok {
		lvl = slog.LevelWarn
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})
	logger := slog.New(handler)
	slog.SetDefault(logger)
	elog.SetDefault(slogAdapter{logger: logger})
	return nil
}
