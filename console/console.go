//go:build js && wasm

package console

import (
	"sync/atomic"
	"syscall/js"

	"github.com/rs/zerolog"
)

var threshold atomic.Int32

func init() {
	threshold.Store(int32(zerolog.InfoLevel))
}

// Configure sets the minimum level forwarded to the browser console. The format is
// chosen by the browser.
func Configure(conf Config) {
	threshold.Store(int32(conf.Level))
}

func call(level zerolog.Level, method string, args []any) {
	if int32(level) < threshold.Load() {
		return
	}

	console := js.Global().Get("console")
	console.Call(method, "[hobbit] "+format(args))
}

func Log(args ...any) {
	call(zerolog.DebugLevel, "log", args)
}

func Warn(args ...any) {
	call(zerolog.WarnLevel, "warn", args)
}

func Error(args ...any) {
	call(zerolog.ErrorLevel, "error", args)
}
