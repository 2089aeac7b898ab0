package goroutine

import (
	"context"
	"runtime/debug"

	"github.com/sirupsen/logrus"

	"github.com/ignatzorin/photomarket-backend/internal/logger"
)

// SafeGo запускает горутину и логирует panic вместо падения процесса.
func SafeGo(fn func()) {
	go func() {
		defer recoverPanic(nil)
		fn()
	}()
}

// SafeGoWithContext работает как SafeGo, но с контекстом; поля из fields попадают в лог паники.
func SafeGoWithContext(ctx context.Context, fields logrus.Fields, fn func(context.Context)) {
	go func() {
		defer recoverPanic(fields)
		fn(ctx)
	}()
}

func recoverPanic(fields logrus.Fields) {
	if r := recover(); r != nil {
		entry := logrus.NewEntry(logrus.StandardLogger())
		if logger.Log != nil {
			entry = logrus.NewEntry(logger.Log)
		}
		entry.WithFields(fields).WithField("panic", r).WithField("stack", string(debug.Stack())).Error("panic in goroutine")
	}
}
