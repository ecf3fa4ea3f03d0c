package cli

import (
	"bytes"
	"context"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/alexanderramin/planboard/internal/config"
	"github.com/alexanderramin/planboard/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

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

func TestServe_LogsSchemaAndShutsDown(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.DBPath = db.MemoryPath
	cfg.Seed = false
	app := NewApp(cfg)
	logs := &syncBuffer{}
	app.Logger = slog.New(slog.NewTextHandler(logs, nil))
	require.NoError(t, app.openStore(context.Background()))
	t.Cleanup(func() { app.Close() })

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- app.serve(ctx, ln) }()

	require.Eventually(t, func() bool {
		resp, err := http.Get("http://" + ln.Addr().String() + "/api/plan/1")
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 2*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-errCh:
		require.NoError(t, err)
	case <-time.After(shutdownTimeout + time.Second):
		t.Fatal("serve did not return after cancel")
	}

	out := logs.String()
	assert.Contains(t, out, `msg="server listening"`)
	assert.Contains(t, out, "schema=2")
	assert.Contains(t, out, "db=:memory:")
}

func TestStoreAttrs_WithoutStore(t *testing.T) {
	app := NewApp(config.DefaultConfig())
	app.Logger = slog.New(slog.DiscardHandler)

	attrs := app.storeAttrs()
	require.Len(t, attrs, 1)
	assert.Equal(t, slog.String("db", ":memory:"), attrs[0])
}
