package main

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/mattermost/mattermost-plugin-emojimix/server/mixer"
	"github.com/mattermost/mattermost/server/public/plugin/plugintest"
	"github.com/stretchr/testify/require"
)

const (
	testBotUserID = "bot-user-id"
	mixedURL      = "https://www.gstatic.com/android/keyboard/emojikitchen/20250130/u1f60a/u1f60a_u1f436.png"
)

// testLogger implements Logger interface for testing
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

// snapshotProber reports composites as present only in one catalog snapshot
type snapshotProber struct {
	mu    sync.Mutex
	date  string
	calls int
}

func (p *snapshotProber) Probe(_ context.Context, url string) (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls++
	return p.date != "" && strings.Contains(url, "/"+p.date+"/"), nil
}

func (p *snapshotProber) Calls() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.calls
}

// setupPluginForTest creates a plugin with a mock API and a mixer backed by prober
func setupPluginForTest(t *testing.T, prober mixer.Prober) (*Plugin, *plugintest.API) {
	t.Helper()
	return setupPluginWithConfig(t, mixer.DefaultConfig(), prober)
}

func setupPluginWithConfig(t *testing.T, config mixer.Config, prober mixer.Prober) (*Plugin, *plugintest.API) {
	t.Helper()

	api := &plugintest.API{}
	logger := &testLogger{t: t}

	m, err := mixer.New(config, prober, logger)
	require.NoError(t, err)

	p := &Plugin{}
	p.SetAPI(api)
	p.logger = logger
	p.probeLogger = logger
	p.botUserID = testBotUserID
	p.setConfiguration(&configuration{mixer: m})

	return p, api
}

// pairProber answers true for exactly one composite URL
type pairProber struct {
	hit string
}

func (p *pairProber) Probe(_ context.Context, url string) (bool, error) {
	return url == p.hit, nil
}
