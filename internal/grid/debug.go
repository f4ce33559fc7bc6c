package grid

import (
	"io"
	"log"
)

var (
	// ops: boxes the strict iterators refused, snapshot blobs that failed
	// to load.
	opsLog *log.Logger
	// diag: grid allocations and serialized blob sizes.
	diagLog *log.Logger
	// trace: one line per box iterator, with its clipped extent. Noisy
	// under the benchmark workloads.
	traceLog *log.Logger
)

// SetLogWriters points the ops, diag and trace streams at the given
// writers. A nil writer silences its stream.
func SetLogWriters(ops, diag, trace io.Writer) {
	opsLog, diagLog, traceLog = streamTo(ops), streamTo(diag), streamTo(trace)
}

func streamTo(w io.Writer) *log.Logger {
	if w == nil {
		return nil
	}
	return log.New(w, "[grid] ", log.LstdFlags|log.Lmicroseconds)
}

func logTo(l *log.Logger, format string, args []any) {
	if l != nil {
		l.Printf(format, args...)
	}
}

func opsf(format string, args ...any)   { logTo(opsLog, format, args) }
func diagf(format string, args ...any)  { logTo(diagLog, format, args) }
func tracef(format string, args ...any) { logTo(traceLog, format, args) }
