package mixer

import (
	"context"
	"strings"
	"sync"
	"testing"
)

// testLogger implements Logger for tests
type testLogger struct {
	t *testing.T
}

func (l *testLogger) LogDebug(message string, keyValuePairs ...any) {
	if l.t != nil {
		l.t.Logf("[DEBUG] %s %v", message, keyValuePairs)
	}
}

func (l *testLogger) LogInfo(message string, keyValuePairs ...any) {
	if l.t != nil {
		l.t.Logf("[INFO] %s %v", message, keyValuePairs)
	}
}

func (l *testLogger) LogWarn(message string, keyValuePairs ...any) {
	if l.t != nil {
		l.t.Logf("[WARN] %s %v", message, keyValuePairs)
	}
}

func (l *testLogger) LogError(message string, keyValuePairs ...any) {
	if l.t != nil {
		l.t.Logf("[ERROR] %s %v", message, keyValuePairs)
	}
}

// recordingProber records every probed URL and answers from a callback.
type recordingProber struct {
	mu     sync.Mutex
	calls  []string
	answer func(url string) (bool, error)
}

func (p *recordingProber) Probe(_ context.Context, url string) (bool, error) {
	p.mu.Lock()
	p.calls = append(p.calls, url)
	p.mu.Unlock()

	if p.answer == nil {
		return false, nil
	}
	return p.answer(url)
}

func (p *recordingProber) Calls() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.calls...)
}

// foundInDate answers true for any candidate inside the given snapshot.
func foundInDate(date string) func(string) (bool, error) {
	return func(url string) (bool, error) {
		return strings.Contains(url, "/"+date+"/"), nil
	}
}
