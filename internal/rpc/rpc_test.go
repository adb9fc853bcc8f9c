package rpc

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/reamplc-eng/shopify-order-mcp/internal/shopify"
	"github.com/reamplc-eng/shopify-order-mcp/internal/tools"
)

func frame(t *testing.T, v any) string {
	t.Helper()
	data, err := json.Marshal(v)
	if err != nil {
		t.Fatal(err)
	}
	return fmt.Sprintf("Content-Length: %d\r\n\r\n%s", len(data), data)
}

func readResponses(t *testing.T, buf *bytes.Buffer) []response {
	t.Helper()
	r := bufio.NewReader(buf)
	var out []response
	for {
		line, err := r.ReadString('\n')
		if err != nil {
			return out
		}
		var length int
		if _, err := fmt.Sscanf(line, "Content-Length: %d", &length); err != nil {
			t.Fatalf("bad frame header %q: %v", line, err)
		}
		// blank line
		if _, err := r.ReadString('\n'); err != nil {
			t.Fatal(err)
		}
		body := make([]byte, length)
		if _, err := io.ReadFull(r, body); err != nil {
			t.Fatal(err)
		}
		var resp response
		if err := json.Unmarshal(body, &resp); err != nil {
			t.Fatalf("bad frame body: %v", err)
		}
		out = append(out, resp)
	}
}

func newStreamServer(t *testing.T, upstream http.HandlerFunc) *Server {
	t.Helper()
	ts := httptest.NewServer(upstream)
	t.Cleanup(ts.Close)
	client := &shopify.Client{
		BaseURL:     ts.URL,
		AccessToken: "shpat_test",
		APIVersion:  shopify.DefaultAPIVersion,
		HTTP:        ts.Client(),
	}
	return NewServer(tools.NewDispatcher(client, tools.NewCatalog()), "shopify-order-mcp", "test")
}

func TestServeSession(t *testing.T) {
	s := newStreamServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"order":{"id":1001}}`))
	})

	in := strings.Join([]string{
		frame(t, request{JSONRPC: "2.0", ID: 1.0, Method: "initialize"}),
		frame(t, request{JSONRPC: "2.0", ID: 2.0, Method: "ping"}),
		frame(t, request{JSONRPC: "2.0", ID: 3.0, Method: "tools/list"}),
		frame(t, request{JSONRPC: "2.0", ID: 4.0, Method: "tools/call",
			Params: json.RawMessage(`{"name":"get_order","arguments":{"orderId":"1001"}}`)}),
	}, "")

	var out bytes.Buffer
	if err := s.Serve(context.Background(), strings.NewReader(in), &out); err != nil {
		t.Fatalf("Serve: %v", err)
	}
	resps := readResponses(t, &out)
	if len(resps) != 4 {
		t.Fatalf("expected 4 responses, got %d", len(resps))
	}
	for i, r := range resps {
		if r.Error != nil {
			t.Errorf("response %d: unexpected error %+v", i, r.Error)
		}
	}

	list, _ := json.Marshal(resps[2].Result)
	var listResult struct {
		Tools []tools.Definition `json:"tools"`
	}
	if err := json.Unmarshal(list, &listResult); err != nil {
		t.Fatal(err)
	}
	if len(listResult.Tools) != 7 {
		t.Errorf("tools/list returned %d tools", len(listResult.Tools))
	}

	call, _ := json.Marshal(resps[3].Result)
	var callResult tools.Result
	if err := json.Unmarshal(call, &callResult); err != nil {
		t.Fatal(err)
	}
	if callResult.IsError || !strings.Contains(callResult.Content[0].Text, "1001") {
		t.Errorf("tools/call result = %+v", callResult)
	}
}

func TestServeMethodNotFound(t *testing.T) {
	s := newStreamServer(t, func(w http.ResponseWriter, r *http.Request) {})
	in := frame(t, request{JSONRPC: "2.0", ID: 1.0, Method: "resources/list"})

	var out bytes.Buffer
	if err := s.Serve(context.Background(), strings.NewReader(in), &out); err != nil {
		t.Fatalf("Serve: %v", err)
	}
	resps := readResponses(t, &out)
	if len(resps) != 1 || resps[0].Error == nil {
		t.Fatalf("responses = %+v", resps)
	}
	if resps[0].Error.Code != codeMethodNotFound {
		t.Errorf("code = %d, want %d", resps[0].Error.Code, codeMethodNotFound)
	}
}

func TestServeUnknownToolInBand(t *testing.T) {
	s := newStreamServer(t, func(w http.ResponseWriter, r *http.Request) {})
	in := frame(t, request{JSONRPC: "2.0", ID: 1.0, Method: "tools/call",
		Params: json.RawMessage(`{"name":"bogus_tool"}`)})

	var out bytes.Buffer
	if err := s.Serve(context.Background(), strings.NewReader(in), &out); err != nil {
		t.Fatalf("Serve: %v", err)
	}
	resps := readResponses(t, &out)
	if len(resps) != 1 || resps[0].Error != nil {
		t.Fatalf("tool failures must be in-band results: %+v", resps)
	}
	data, _ := json.Marshal(resps[0].Result)
	var result tools.Result
	if err := json.Unmarshal(data, &result); err != nil {
		t.Fatal(err)
	}
	if !result.IsError || !strings.Contains(result.Content[0].Text, "bogus_tool") {
		t.Errorf("result = %+v", result)
	}
}

func TestServeDegraded(t *testing.T) {
	s := NewServer(nil, "shopify-order-mcp", "test")
	in := frame(t, request{JSONRPC: "2.0", ID: 1.0, Method: "tools/call",
		Params: json.RawMessage(`{"name":"get_order","arguments":{"orderId":"1"}}`)})

	var out bytes.Buffer
	if err := s.Serve(context.Background(), strings.NewReader(in), &out); err != nil {
		t.Fatalf("Serve: %v", err)
	}
	resps := readResponses(t, &out)
	data, _ := json.Marshal(resps[0].Result)
	var result tools.Result
	if err := json.Unmarshal(data, &result); err != nil {
		t.Fatal(err)
	}
	if !result.IsError || !strings.Contains(result.Content[0].Text, "service unavailable") {
		t.Errorf("result = %+v", result)
	}
}

func TestServeEOFEndsCleanly(t *testing.T) {
	s := newStreamServer(t, func(w http.ResponseWriter, r *http.Request) {})
	var out bytes.Buffer
	if err := s.Serve(context.Background(), strings.NewReader(""), &out); err != nil {
		t.Fatalf("EOF must end the loop without error, got %v", err)
	}
}
