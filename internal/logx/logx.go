// Package logx provides the compiler's single logging entry point.
//
// It wraps the standard log.Logger the way the teacher's examples do
// (plain log.Println/log.Fatalf, no structured logging library), adding
// the [WARN]/[ERROR] prefixes the original PortCatcher tool printed to
// stderr so skipped-line and skipped-item diagnostics read the same way.
package logx

import (
	"log"
	"os"
)

// Logger is the minimal surface the pipeline needs: warnings for
// recoverable per-item problems, errors for stage-level failures that are
// still survivable (e.g. a report file that can't be opened), and Fatalf
// for conditions that abort the run.
type Logger struct {
	l *log.Logger
}

// New returns a Logger writing to stderr with no extra timestamp noise,
// matching the teacher's log.Println usage (which also carries no custom
// flags).
func New() *Logger {
	return &Logger{l: log.New(os.Stderr, "", 0)}
}

func (lg *Logger) Warnf(format string, args ...any) {
	lg.l.Printf("[WARN] "+format, args...)
}

func (lg *Logger) Errorf(format string, args ...any) {
	lg.l.Printf("[ERROR] "+format, args...)
}

func (lg *Logger) Infof(format string, args ...any) {
	lg.l.Printf(format, args...)
}

func (lg *Logger) Fatalf(format string, args ...any) {
	lg.l.Fatalf("[ERROR] "+format, args...)
}

// Default is shared by cmd/portcatcher and any package that doesn't need
// an injected Logger (mirrors the teacher's reliance on the package-level
// "log" logger throughout examples/*).
var Default = New()
