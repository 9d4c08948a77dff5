package logging

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Setup configura el logger global según la verbosidad (-v, -vv, -vvv).
// Los logs van a stderr para no ensuciar la salida JSON en stdout.
func Setup(verbosity int, noColor bool) zerolog.Logger {
	return SetupWriter(os.Stderr, verbosity, noColor)
}

// SetupWriter es Setup con un destino arbitrario (tests).
func SetupWriter(out io.Writer, verbosity int, noColor bool) zerolog.Logger {
	level := Level(verbosity)

	console := zerolog.ConsoleWriter{
		Out:        out,
		TimeFormat: time.Kitchen,
		NoColor:    noColor,
	}

	logger := zerolog.New(console).Level(level).With().Timestamp().Logger()
	if verbosity >= 2 {
		logger = logger.With().Caller().Logger()
	}

	log.Logger = logger
	logger.Debug().Int("verbosity", verbosity).Msg("logger inicializado")
	return logger
}

// Level traduce la verbosidad a nivel de zerolog.
func Level(verbosity int) zerolog.Level {
	switch {
	case verbosity <= 0:
		return zerolog.WarnLevel
	case verbosity == 1:
		return zerolog.InfoLevel
	case verbosity == 2:
		return zerolog.DebugLevel
	default:
		return zerolog.TraceLevel
	}
}

// Component devuelve un logger hijo con el campo "component".
func Component(name string) zerolog.Logger {
	return log.With().Str("component", name).Logger()
}
