// Package leaktest checks that tests stop every goroutine they start.
package leaktest

import (
	"runtime"
	"testing"
	"time"
)

// Polling bounds for Check
const (
	settleTimeout = 2 * time.Second
	pollInterval  = 10 * time.Millisecond
	stackDumpSize = 64 << 10
)

// GoroutineChecker compares the goroutine count against a baseline taken
// when it was created
type GoroutineChecker struct {
	t        testing.TB
	baseline int
}

// NewGoroutineChecker records the current goroutine count
func NewGoroutineChecker(t testing.TB) *GoroutineChecker {
	t.Helper()
	runtime.Gosched()
	return &GoroutineChecker{t: t, baseline: runtime.NumGoroutine()}
}

// Check waits for the goroutine count to fall back to baseline+tolerance and
// fails the test with a stack dump if it does not within settleTimeout.
func (g *GoroutineChecker) Check(tolerance int) {
	g.t.Helper()

	target := g.baseline + tolerance
	if Settle(target, settleTimeout) {
		return
	}

	buf := make([]byte, stackDumpSize)
	n := runtime.Stack(buf, true)
	g.t.Errorf("goroutine leak: baseline=%d now=%d tolerance=%d\n%s",
		g.baseline, runtime.NumGoroutine(), tolerance, buf[:n])
}

// Settle polls until at most target goroutines are running. It reports
// whether the target was reached before timeout.
func Settle(target int, timeout time.Duration) bool {
	deadline := time.Now().Add(timeout)
	for {
		runtime.Gosched()
		if runtime.NumGoroutine() <= target {
			return true
		}
		if time.Now().After(deadline) {
			return false
		}
		time.Sleep(pollInterval)
	}
}

// Verify runs fn and checks that it leaves no goroutines behind
func Verify(t testing.TB, fn func()) {
	t.Helper()
	checker := NewGoroutineChecker(t)
	fn()
	checker.Check(0)
}
