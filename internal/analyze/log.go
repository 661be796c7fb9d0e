package analyze

import "log/slog"

// logDebug tolerates a nil logger.
func logDebug(logger *slog.Logger, msg string, args ...any) {
	if logger == nil {
		return
	}
	logger.Debug(msg, args...)
}
