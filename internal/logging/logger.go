package logging

import (
	"log/slog"
	"os"
)

// Setup installs the default slog logger: JSON records on stdout at
// info level. Once the database is up, main swaps in a MultiHandler so
// the Postgres sink sees the same stream.
func Setup() {
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	slog.SetDefault(slog.New(handler))
}
