package logger

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/invorya/pos-api/pkg/config"
)

// Logger es el logger estructurado de la aplicación. Embebe zerolog.Logger,
// así que expone su API de eventos directamente (Info(), Warn(), With(), ...).
type Logger struct {
	zerolog.Logger
}

// New construye el logger a partir de la configuración de la app: salida de
// consola legible en development, JSON en el resto, nivel según APP_LOG_LEVEL
// y el nombre del servicio como campo fijo. También reapunta el logger global
// de zerolog para las librerías que escriben por él.
func New(cfg config.AppConfig) *Logger {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}

	zl := zerolog.New(os.Stdout)
	if cfg.Env == "development" {
		zl = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout})
	}
	zl = zl.Level(level).With().Timestamp().Str("service", cfg.Name).Logger()

	log.Logger = zl

	return &Logger{Logger: zl}
}
