package logger

import (
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// New builds the process logger: human-readable console output in
// development, JSON everywhere else. The zerolog global is pointed at
// the same writer so libraries using it stay consistent.
func New(env string) zerolog.Logger {
	var w io.Writer = os.Stdout
	if env == "development" {
		w = zerolog.ConsoleWriter{Out: os.Stdout}
	}

	l := zerolog.New(w).With().Timestamp().Logger()
	log.Logger = l
	return l
}
