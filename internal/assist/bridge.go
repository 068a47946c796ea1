package assist

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/exec"
	"sync"

	"github.com/finbook-dev/finbook/internal/summary"
)

// Bridge talks to an external assistant process over JSON-RPC 2.0 on
// stdio. The process is long-lived; each Reply is one "reply" request.
// ID correlation allows concurrent in-flight requests.
type Bridge struct {
	cmd    *exec.Cmd
	stdin  io.WriteCloser
	reader *bufio.Reader

	// wmu serializes request frames on the pipe; concurrent Reply
	// calls must not interleave their bytes.
	wmu sync.Mutex

	mu      sync.Mutex
	nextID  int
	pending map[int]chan *rpcResponse
}

type rpcRequest struct {
	JSONRPC string      `json:"jsonrpc"`
	Method  string      `json:"method"`
	Params  replyParams `json:"params"`
	ID      int         `json:"id"`
}

type replyParams struct {
	Message  string           `json:"message"`
	Overview summary.Overview `json:"overview"`
}

// rpcResponse is a JSON-RPC 2.0 response. Result must NOT have
// omitempty: a nil result is still a response.
type rpcResponse struct {
	JSONRPC string          `json:"jsonrpc"`
	Result  json.RawMessage `json:"result"`
	Error   *rpcError       `json:"error,omitempty"`
	ID      int             `json:"id"`
}

type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// StartBridge launches the assistant process and begins reading its
// responses.
func StartBridge(command string, args ...string) (*Bridge, error) {
	cmd := exec.Command(command, args...)
	cmd.Stderr = os.Stderr

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, fmt.Errorf("stdin pipe: %w", err)
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("stdout pipe: %w", err)
	}

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("starting assistant %s: %w", command, err)
	}

	b := &Bridge{
		cmd:     cmd,
		stdin:   stdin,
		reader:  bufio.NewReader(stdout),
		pending: make(map[int]chan *rpcResponse),
	}
	go b.readLoop()
	return b, nil
}

// Shutdown closes the assistant's stdin and waits for it to exit.
func (b *Bridge) Shutdown() {
	_ = b.stdin.Close()
	_ = b.cmd.Wait()
}

// Reply implements Assistant by sending one JSON-RPC "reply" request.
func (b *Bridge) Reply(ctx context.Context, ov summary.Overview, message string) (string, error) {
	req := rpcRequest{
		JSONRPC: "2.0",
		Method:  "reply",
		Params:  replyParams{Message: message, Overview: ov},
	}

	ch := make(chan *rpcResponse, 1)
	b.mu.Lock()
	b.nextID++
	req.ID = b.nextID
	b.pending[req.ID] = ch
	b.mu.Unlock()

	defer func() {
		b.mu.Lock()
		delete(b.pending, req.ID)
		b.mu.Unlock()
	}()

	if err := b.send(req); err != nil {
		return "", err
	}

	select {
	case resp, ok := <-ch:
		if !ok || resp == nil {
			return "", fmt.Errorf("assistant closed the connection")
		}
		if resp.Error != nil {
			return "", fmt.Errorf("assistant error %d: %s", resp.Error.Code, resp.Error.Message)
		}
		var text string
		if err := json.Unmarshal(resp.Result, &text); err != nil {
			return "", fmt.Errorf("assistant returned non-string result: %w", err)
		}
		return text, nil
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

// send writes one newline-delimited request frame under the write
// lock so frames from concurrent calls never interleave.
func (b *Bridge) send(req rpcRequest) error {
	data, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("marshaling request: %w", err)
	}
	b.wmu.Lock()
	defer b.wmu.Unlock()
	if _, err := b.stdin.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("writing to assistant: %w", err)
	}
	return nil
}

// readLoop dispatches responses to their waiting request by ID. On
// EOF every pending request is failed by closing its channel.
func (b *Bridge) readLoop() {
	for {
		line, err := b.reader.ReadBytes('\n')
		if err != nil {
			b.mu.Lock()
			for id, ch := range b.pending {
				close(ch)
				delete(b.pending, id)
			}
			b.mu.Unlock()
			return
		}

		var resp rpcResponse
		if err := json.Unmarshal(line, &resp); err != nil {
			continue // not a response; skip
		}

		b.mu.Lock()
		ch, ok := b.pending[resp.ID]
		b.mu.Unlock()
		if ok {
			ch <- &resp
		}
	}
}
