package util

import (
	"log/slog"
	"os"
)

// CloseFileFunc closes f and logs, rather than returns, a close failure.
// Meant for deferred closes on read paths.
func CloseFileFunc(f *os.File) {
	if err := f.Close(); err != nil {
		slog.Warn("close file", "path", f.Name(), "error", err)
	}
}
