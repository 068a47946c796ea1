package assist

import (
	"context"
	"os/exec"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finbook-dev/finbook/internal/summary"
)

func requireSh(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}
}

func TestBridgeReply(t *testing.T) {
	requireSh(t)

	// Stub assistant: read one request, answer request id 1.
	b, err := StartBridge("sh", "-c",
		`read line; printf '{"jsonrpc":"2.0","result":"hello from the bridge","id":1}\n'`)
	require.NoError(t, err)
	defer b.Shutdown()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	got, err := b.Reply(ctx, summary.Overview{}, "hi")
	require.NoError(t, err)
	assert.Equal(t, "hello from the bridge", got)
}

func TestBridgeError(t *testing.T) {
	requireSh(t)

	b, err := StartBridge("sh", "-c",
		`read line; printf '{"jsonrpc":"2.0","result":null,"error":{"code":-32000,"message":"no model"},"id":1}\n'`)
	require.NoError(t, err)
	defer b.Shutdown()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err = b.Reply(ctx, summary.Overview{}, "hi")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no model")
}

func TestBridgeProcessExit(t *testing.T) {
	requireSh(t)

	// Assistant that exits without answering.
	b, err := StartBridge("sh", "-c", `read line; exit 0`)
	require.NoError(t, err)
	defer b.Shutdown()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err = b.Reply(ctx, summary.Overview{}, "hi")
	require.Error(t, err)
}

func TestBridgeConcurrentReplies(t *testing.T) {
	requireSh(t)

	// Stub assistant: echo every request id back in its result. If
	// concurrent request frames interleaved on the pipe, the stub
	// would see malformed lines and the correlation would break.
	b, err := StartBridge("sh", "-c",
		`while read line; do id=$(printf '%s' "$line" | sed 's/.*"id"://;s/}.*//'); printf '{"jsonrpc":"2.0","result":"reply %s","id":%s}\n' "$id" "$id"; done`)
	require.NoError(t, err)
	defer b.Shutdown()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	const workers = 8
	padding := strings.Repeat("x", 64*1024)

	results := make(chan string, workers)
	errs := make(chan error, workers)
	for i := 0; i < workers; i++ {
		go func() {
			got, err := b.Reply(ctx, summary.Overview{}, "question "+padding)
			if err != nil {
				errs <- err
				return
			}
			results <- got
		}()
	}

	seen := make(map[string]bool)
	for i := 0; i < workers; i++ {
		select {
		case err := <-errs:
			t.Fatalf("reply failed: %v", err)
		case got := <-results:
			assert.False(t, seen[got], "duplicate reply %q", got)
			seen[got] = true
			assert.Regexp(t, `^reply \d+$`, got)
		}
	}
}

func TestBridgeStartFailure(t *testing.T) {
	_, err := StartBridge("/nonexistent/assistant-binary")
	require.Error(t, err)
}
