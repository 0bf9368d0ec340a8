package common

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"
)

// CrashLogDir is where crash reports are written. Set by InstallCrashHandler.
var CrashLogDir = "./logs"

// InstallCrashHandler prepares the crash report directory.
// Call it first in main, followed by defer RecoverWithCrashFile().
func InstallCrashHandler(logDir string) {
	if logDir != "" {
		CrashLogDir = logDir
	}
	if err := os.MkdirAll(CrashLogDir, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "CRASH: Failed to create log directory: %v\n", err)
	}
}

// WriteCrashFile writes the panic value, stacks and runtime stats to
// crash-<timestamp>.log and returns its path, or "" when the file could not be written.
func WriteCrashFile(panicVal interface{}, stackTrace string) string {
	now := time.Now()
	crashPath := filepath.Join(CrashLogDir, fmt.Sprintf("crash-%s.log", now.Format("2006-01-02T15-04-05")))

	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)

	var b strings.Builder
	fmt.Fprintf(&b, "=== FINHEALTH CRASH REPORT ===\nTime: %s\nVersion: %s\n\n", now.Format(time.RFC3339), GetFullVersion())
	fmt.Fprintf(&b, "=== PANIC VALUE ===\n%v\n\n", panicVal)
	fmt.Fprintf(&b, "=== STACK TRACE ===\n%s\n", stackTrace)
	fmt.Fprintf(&b, "=== ALL GOROUTINES ===\n%s\n", GetAllGoroutineStacks())
	fmt.Fprintf(&b, "=== RUNTIME ===\nGoroutines: %d\nCPUs: %d\nOS/Arch: %s/%s\n", runtime.NumGoroutine(), runtime.NumCPU(), runtime.GOOS, runtime.GOARCH)
	fmt.Fprintf(&b, "Alloc: %d MB\nSys: %d MB\nNumGC: %d\n", mem.Alloc/1024/1024, mem.Sys/1024/1024, mem.NumGC)
	b.WriteString("=== END CRASH REPORT ===\n")

	if err := os.WriteFile(crashPath, []byte(b.String()), 0644); err != nil {
		fmt.Fprintf(os.Stderr, "CRASH: Failed to write crash file: %v\n%s", err, b.String())
		return ""
	}

	fmt.Fprintf(os.Stderr, "\n!!! FATAL CRASH - Report saved to: %s !!!\nPanic: %v\n", crashPath, panicVal)
	return crashPath
}

// GetAllGoroutineStacks returns stack traces for all goroutines, capped at 64MB.
func GetAllGoroutineStacks() string {
	buf := make([]byte, 64*1024)
	for {
		n := runtime.Stack(buf, true)
		if n < len(buf) || len(buf) >= 64*1024*1024 {
			return string(buf[:n])
		}
		buf = make([]byte, len(buf)*2)
	}
}

// GetStackTrace returns the current goroutine's stack trace.
func GetStackTrace() string {
	buf := make([]byte, 8192)
	n := runtime.Stack(buf, false)
	return string(buf[:n])
}

// RecoverWithCrashFile writes a crash report and exits when the caller panicked.
// Usage: defer common.RecoverWithCrashFile()
func RecoverWithCrashFile() {
	if r := recover(); r != nil {
		WriteCrashFile(r, GetStackTrace())
		os.Exit(1)
	}
}
