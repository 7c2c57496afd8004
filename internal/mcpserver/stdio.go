package mcpserver

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"sync"

	"github.com/dshills/refactorengine/internal/dispatcher"
)

// ServeStdio reads Content-Length-framed JSON-RPC requests from r, routes
// each through disp, and writes the framed response to w. It blocks until
// r returns io.EOF or ctx is cancelled.
func ServeStdio(ctx context.Context, r io.Reader, w io.Writer, disp *dispatcher.Dispatcher, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}

	reader := bufio.NewReaderSize(r, 64*1024)
	var writeMu sync.Mutex

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		body, err := readFramedMessage(reader)
		if err != nil {
			if err == io.EOF {
				return nil
			}
			return fmt.Errorf("mcpserver: read message: %w", err)
		}

		go func(body []byte) {
			resp := handleMessage(ctx, disp, body, logger)
			if resp == nil {
				return
			}
			writeMu.Lock()
			defer writeMu.Unlock()
			if err := writeFramedMessage(w, resp); err != nil {
				logger.Error("mcpserver: write response failed", "error", err)
			}
		}(body)
	}
}

func handleMessage(ctx context.Context, disp *dispatcher.Dispatcher, body []byte, logger *slog.Logger) *RPCResponse {
	var req RPCRequest
	if err := json.Unmarshal(body, &req); err != nil {
		return errorResponse(nil, ErrCodeParseError, err)
	}
	return dispatchRequest(ctx, disp, &req, logger)
}

func dispatchRequest(ctx context.Context, disp *dispatcher.Dispatcher, req *RPCRequest, logger *slog.Logger) *RPCResponse {
	result, err := disp.Dispatch(ctx, req.Method, req.Params)
	if err != nil {
		logger.Warn("mcpserver: tool call failed", "method", req.Method, "error", err)
		return errorResponse(req.ID, ErrCodeInternalError, err)
	}
	return resultResponse(req.ID, result)
}

func readFramedMessage(r *bufio.Reader) ([]byte, error) {
	contentLength := -1
	for {
		line, err := r.ReadString('\n')
		if err != nil {
			return nil, err
		}
		line = strings.TrimSpace(line)
		if line == "" {
			break
		}
		if strings.HasPrefix(strings.ToLower(line), "content-length:") {
			parts := strings.SplitN(line, ":", 2)
			if len(parts) == 2 {
				if n, err := strconv.Atoi(strings.TrimSpace(parts[1])); err == nil {
					contentLength = n
				}
			}
		}
	}
	if contentLength < 0 {
		return nil, fmt.Errorf("mcpserver: missing Content-Length header")
	}
	body := make([]byte, contentLength)
	if _, err := io.ReadFull(r, body); err != nil {
		return nil, err
	}
	return body, nil
}

func writeFramedMessage(w io.Writer, msg any) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Content-Length: %d\r\n\r\n", len(data)); err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}
