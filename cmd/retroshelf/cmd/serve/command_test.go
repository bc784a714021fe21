package serve

import (
	"bytes"
	"context"
	"net/http"
	"regexp"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/retroshelf/internal/cmd/application"
)

// syncBuffer is a bytes.Buffer safe for the server goroutine to write to.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestParseConfigDefaults(t *testing.T) {
	cmd := NewCommand(&application.Mock{})
	require.NoError(t, cmd.ParseFlags(nil))

	cfg, err := parseConfig(cmd)
	require.NoError(t, err)
	assert.Equal(t, "localhost", cfg.Host)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "/api/v1", cfg.PathPrefix)
	assert.False(t, cfg.CORSEnabled)
	assert.True(t, cfg.MetricsEnabled)
	assert.Equal(t, 5*time.Minute, cfg.CacheTTL)
}

func TestParseConfigFlags(t *testing.T) {
	cmd := NewCommand(&application.Mock{})
	require.NoError(t, cmd.ParseFlags([]string{
		"--host", "0.0.0.0",
		"--port", "9000",
		"--cors-origins", "https://a.example,https://b.example",
		"--rate-limit", "60",
		"--cache-ttl", "30s",
		"--metrics=false",
		"--prefix", "/api/v2",
		"--write-timeout", "1m",
	}))

	cfg, err := parseConfig(cmd)
	require.NoError(t, err)
	assert.Equal(t, "0.0.0.0", cfg.Host)
	assert.Equal(t, 9000, cfg.Port)
	assert.True(t, cfg.CORSEnabled)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSOrigins)
	assert.Equal(t, 60, cfg.RateLimit)
	assert.Equal(t, 30*time.Second, cfg.CacheTTL)
	assert.False(t, cfg.MetricsEnabled)
	assert.Equal(t, "/api/v2", cfg.PathPrefix)
	assert.Equal(t, time.Minute, cfg.WriteTimeout)
}

func TestParseConfigEnvironment(t *testing.T) {
	t.Setenv("HTTP_HOST", "10.0.0.1")
	t.Setenv("HTTP_PORT", "7070")

	cmd := NewCommand(&application.Mock{})
	require.NoError(t, cmd.ParseFlags(nil))
	cfg, err := parseConfig(cmd)
	require.NoError(t, err)
	assert.Equal(t, "10.0.0.1", cfg.Host)
	assert.Equal(t, 7070, cfg.Port)

	// Explicit flags win over the environment.
	cmd = NewCommand(&application.Mock{})
	require.NoError(t, cmd.ParseFlags([]string{"--port", "9999"}))
	cfg, err = parseConfig(cmd)
	require.NoError(t, err)
	assert.Equal(t, 9999, cfg.Port)
}

func TestParseConfigInvalidEnvPort(t *testing.T) {
	t.Setenv("HTTP_PORT", "eighty")

	cmd := NewCommand(&application.Mock{})
	require.NoError(t, cmd.ParseFlags(nil))
	_, err := parseConfig(cmd)
	assert.Error(t, err)
}

func TestParsePort(t *testing.T) {
	p, err := parsePort("8080")
	require.NoError(t, err)
	assert.Equal(t, 8080, p)

	_, err = parsePort("0")
	assert.Error(t, err)
	_, err = parsePort("70000")
	assert.Error(t, err)
	_, err = parsePort("abc")
	assert.Error(t, err)
}

func TestServeUntilCancelled(t *testing.T) {
	t.Setenv("HTTP_HOST", "")
	t.Setenv("HTTP_PORT", "")

	out := &syncBuffer{}
	cmd := NewCommand(&application.Mock{})
	cmd.SetOut(out)
	cmd.SetArgs([]string{"--host", "127.0.0.1", "--port", "0"})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- cmd.ExecuteContext(ctx)
	}()

	addr := regexp.MustCompile(`http://(\S+)`)
	var base string
	require.Eventually(t, func() bool {
		m := addr.FindStringSubmatch(out.String())
		if m == nil {
			return false
		}
		base = m[0]
		return true
	}, 5*time.Second, 10*time.Millisecond)

	resp, err := http.Get(base + "/health")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(15 * time.Second):
		t.Fatal("serve did not stop after cancel")
	}
	assert.Contains(t, out.String(), "Server stopped gracefully")
}
