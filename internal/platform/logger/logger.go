package logger

import (
	"os"

	"github.com/rs/zerolog"
)

var log = zerolog.New(os.Stdout).With().Timestamp().Logger()

func Info(msg string, fields ...map[string]interface{}) {
	ev := log.Info()
	applyFields(ev, fields)
	ev.Msg(msg)
}

func Warn(msg string, fields ...map[string]interface{}) {
	ev := log.Warn()
	applyFields(ev, fields)
	ev.Msg(msg)
}

func Error(msg string, err error, fields ...map[string]interface{}) {
	ev := log.Error().Err(err)
	applyFields(ev, fields)
	ev.Msg(msg)
}

func applyFields(ev *zerolog.Event, fields []map[string]interface{}) {
	for _, f := range fields {
		for k, v := range f {
			ev.Interface(k, v)
		}
	}
}
