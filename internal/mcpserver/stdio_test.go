package mcpserver

import (
	"bufio"
	"bytes"
	"encoding/json"
	"testing"
)

func TestWriteReadFramedMessageRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	req := &RPCRequest{JSONRPC: "2.0", Method: "read_file"}
	if err := writeFramedMessage(&buf, req); err != nil {
		t.Fatalf("writeFramedMessage: %v", err)
	}

	body, err := readFramedMessage(bufio.NewReader(&buf))
	if err != nil {
		t.Fatalf("readFramedMessage: %v", err)
	}

	var got RPCRequest
	if err := json.Unmarshal(body, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got.Method != "read_file" {
		t.Errorf("Method = %q, want read_file", got.Method)
	}
}

func TestReadFramedMessageMissingContentLength(t *testing.T) {
	r := bufio.NewReader(bytes.NewBufferString("X-Custom: 1\r\n\r\n"))
	if _, err := readFramedMessage(r); err == nil {
		t.Fatal("expected error for missing Content-Length")
	}
}
