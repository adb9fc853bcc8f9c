// Package rpc serves the MCP tool catalog over a long-lived JSON-RPC 2.0
// stream with Content-Length framing, typically stdin/stdout.
package rpc

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/reamplc-eng/shopify-order-mcp/internal/tools"
)

const (
	codeServerError    = -32000
	codeMethodNotFound = -32601
	codeInvalidParams  = -32602
)

type request struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      any             `json:"id,omitempty"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type response struct {
	JSONRPC string    `json:"jsonrpc"`
	ID      any       `json:"id,omitempty"`
	Result  any       `json:"result,omitempty"`
	Error   *rpcError `json:"error,omitempty"`
}

type callParams struct {
	Name      string         `json:"name"`
	Arguments map[string]any `json:"arguments"`
}

// Server answers MCP requests read from one stream connection. The caller
// owns the connection and may close it at any time; EOF ends the loop and
// releases everything this connection held.
type Server struct {
	dispatcher *tools.Dispatcher
	name       string
	version    string
}

// NewServer returns a stream server backed by the given dispatcher. A nil
// dispatcher serves initialize/ping but answers tool requests with a fixed
// service unavailable error.
func NewServer(dispatcher *tools.Dispatcher, name, version string) *Server {
	return &Server{dispatcher: dispatcher, name: name, version: version}
}

// Serve processes requests until the reader is exhausted or the context is
// cancelled. Per-request failures are reported in-band; only transport
// failures end the loop with an error.
func (s *Server) Serve(ctx context.Context, r io.Reader, w io.Writer) error {
	br := bufio.NewReader(r)
	bw := bufio.NewWriter(w)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		req, err := readMessage(br)
		if err != nil {
			if err == io.EOF {
				return nil
			}
			_ = writeMessage(bw, response{JSONRPC: "2.0", Error: &rpcError{Code: codeServerError, Message: err.Error()}})
			return err
		}
		if err := s.handle(ctx, req, bw); err != nil {
			_ = writeMessage(bw, makeError(req.ID, codeServerError, err.Error()))
		}
	}
}

func (s *Server) handle(ctx context.Context, req *request, w *bufio.Writer) error {
	switch req.Method {
	case "initialize":
		result := map[string]any{
			"serverInfo":   map[string]any{"name": s.name, "version": s.version},
			"capabilities": map[string]any{"tools": map[string]any{"list": true, "call": true}},
		}
		return writeMessage(w, makeResult(req.ID, result))

	case "ping":
		return writeMessage(w, makeResult(req.ID, map[string]any{}))

	case "tools/list":
		if s.dispatcher == nil {
			return writeMessage(w, makeResult(req.ID, map[string]any{"tools": []tools.Definition{}}))
		}
		return writeMessage(w, makeResult(req.ID, map[string]any{"tools": s.dispatcher.Catalog().Definitions()}))

	case "tools/call":
		var p callParams
		if len(req.Params) > 0 {
			if err := json.Unmarshal(req.Params, &p); err != nil {
				return writeMessage(w, makeError(req.ID, codeInvalidParams, "invalid params"))
			}
		}
		if s.dispatcher == nil {
			return writeMessage(w, makeResult(req.ID, tools.Result{
				Content: []tools.ContentBlock{{Type: "text", Text: "service unavailable: tool catalog not initialized"}},
				IsError: true,
			}))
		}
		return writeMessage(w, makeResult(req.ID, s.dispatcher.Call(ctx, p.Name, p.Arguments)))
	}

	return writeMessage(w, makeError(req.ID, codeMethodNotFound, fmt.Sprintf("method not found: %s", req.Method)))
}

func makeResult(id, result any) response {
	return response{JSONRPC: "2.0", ID: id, Result: result}
}

func makeError(id any, code int, msg string) response {
	return response{JSONRPC: "2.0", ID: id, Error: &rpcError{Code: code, Message: msg}}
}

func writeMessage(w *bufio.Writer, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Content-Length: %d\r\n\r\n", len(data)); err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		return err
	}
	return w.Flush()
}

func readMessage(r *bufio.Reader) (*request, error) {
	headers := map[string]string{}
	for {
		line, err := r.ReadString('\n')
		if err != nil {
			if err == io.EOF {
				return nil, io.EOF
			}
			return nil, err
		}
		s := strings.TrimRight(line, "\r\n")
		if s == "" {
			break
		}
		if i := strings.IndexByte(s, ':'); i >= 0 {
			key := strings.ToLower(strings.TrimSpace(s[:i]))
			headers[key] = strings.TrimSpace(s[i+1:])
		}
	}
	clStr, ok := headers["content-length"]
	if !ok {
		return nil, fmt.Errorf("missing Content-Length")
	}
	var length int
	if _, err := fmt.Sscanf(clStr, "%d", &length); err != nil {
		return nil, fmt.Errorf("invalid Content-Length: %v", err)
	}
	body := make([]byte, length)
	if _, err := io.ReadFull(r, body); err != nil {
		return nil, err
	}
	var req request
	if err := json.Unmarshal(body, &req); err != nil {
		return nil, err
	}
	return &req, nil
}
