package logger

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// Log: глобальный логгер сервиса. До Init пишет в stderr с уровнем info.
var Log = logrus.New()

// Init настраивает уровень и формат. JSON для production, text для development.
func Init(level string, development bool) {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	Log.SetLevel(lvl)
	Log.SetOutput(os.Stdout)

	if development {
		Log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
		return
	}
	Log.SetFormatter(&logrus.JSONFormatter{})
}

// Discard глушит вывод, используется в тестах.
func Discard() {
	Log.SetOutput(io.Discard)
}
