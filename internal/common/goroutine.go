package common

import (
	"fmt"
	"os"

	"github.com/ternarybob/arbor"
)

// SafeGo runs fn in a goroutine. A panic is logged with its stack and does not
// take down the process.
func SafeGo(logger arbor.ILogger, name string, fn func()) {
	go func() {
		defer LogPanic(logger, name)
		fn()
	}()
}

// LogPanic recovers a panic in the calling goroutine and logs it.
// Usage: defer common.LogPanic(logger, "cache-purge")
func LogPanic(logger arbor.ILogger, name string) {
	r := recover()
	if r == nil {
		return
	}

	stackTrace := GetStackTrace()
	if logger == nil {
		fmt.Fprintf(os.Stderr, "PANIC in goroutine %s: %v\n%s\n", name, r, stackTrace)
		return
	}
	logger.Error().
		Str("goroutine", name).
		Str("panic", fmt.Sprintf("%v", r)).
		Str("stack", stackTrace).
		Msg("Recovered from panic in goroutine")
}
