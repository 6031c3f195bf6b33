package telegram_test

import (
	"context"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/example/jiobot/internal/adapters/telegram"
)

func TestListenAndServe_StopsOnCancel(t *testing.T) {
	srv := telegram.NewServer("127.0.0.1:0", http.NotFoundHandler())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- telegram.ListenAndServe(ctx, srv, zaptest.NewLogger(t)) }()

	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("server did not stop")
	}
}

func TestListenAndServe_AddressInUse(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	srv := telegram.NewServer(ln.Addr().String(), http.NotFoundHandler())
	err = telegram.ListenAndServe(context.Background(), srv, nil)
	assert.ErrorContains(t, err, "serve http")
}
