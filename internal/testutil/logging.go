package testutil

import (
	"fmt"
	"strings"
	"sync"
)

// TestLogger records formatted log lines, tagged with their level, so
// tests can assert on the sequence of protocol steps the runner reports.
type TestLogger struct {
	sync.Mutex

	lines []string
}

func NewTestLogger() *TestLogger {
	return &TestLogger{lines: make([]string, 0)}
}

func (t *TestLogger) Debugf(format string, args ...interface{}) { t.putf("debug", format, args...) }
func (t *TestLogger) Infof(format string, args ...interface{})  { t.putf("info", format, args...) }
func (t *TestLogger) Errorf(format string, args ...interface{}) { t.putf("error", format, args...) }

func (t *TestLogger) putf(level, format string, args ...interface{}) {
	t.Lock()
	t.lines = append(t.lines, level+": "+fmt.Sprintf(format, args...))
	t.Unlock()
}

// Lines returns a copy of the logged lines
func (t *TestLogger) Lines() []string {
	t.Lock()
	defer t.Unlock()

	return append([]string(nil), t.lines...)
}

// Contains reports whether any logged line contains the substring.
func (t *TestLogger) Contains(substr string) bool {
	for _, line := range t.Lines() {
		if strings.Contains(line, substr) {
			return true
		}
	}
	return false
}
