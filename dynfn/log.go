package dynfn

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/on-the-ground/dyn_fn_go/internal/vtables"
)

// SetLogger installs a zap logger for engine lifecycle events (dispatch
// table construction). The default is a nop logger; the engine never logs on
// the invocation path.
func SetLogger(logger *zap.Logger) {
	vtables.SetLogger(logger)
}

// WithTestLogger installs a console logger at debug level and returns a
// function restoring the nop default. Meant for tests and examples.
func WithTestLogger() func() {
	consoleCore := zapcore.NewCore(
		zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig()),
		zapcore.Lock(os.Stdout),
		zap.DebugLevel,
	)
	SetLogger(zap.New(consoleCore))
	return func() { SetLogger(nil) }
}
