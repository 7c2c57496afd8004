package mcpserver

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/dshills/refactorengine/internal/dispatcher"
)

// upgrader accepts any origin: the server is meant to run on a loopback
// port a local MCP-aware client connects to, not as a public endpoint.
var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

const websocketWriteTimeout = 10 * time.Second

// WebSocketHandler upgrades an HTTP connection and serves one JSON-RPC
// connection over it: each inbound WebSocket text message is a full
// JSON-RPC request, and each response is written back as its own message,
// with no Content-Length framing (gorilla/websocket already delivers
// whole messages).
func WebSocketHandler(disp *dispatcher.Dispatcher, logger *slog.Logger) http.HandlerFunc {
	if logger == nil {
		logger = slog.Default()
	}
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			logger.Error("mcpserver: websocket upgrade failed", "error", err)
			return
		}
		defer conn.Close()

		ctx := r.Context()
		serveWebSocketConn(ctx, conn, disp, logger)
	}
}

func serveWebSocketConn(ctx context.Context, conn *websocket.Conn, disp *dispatcher.Dispatcher, logger *slog.Logger) {
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return
		}

		var req RPCRequest
		var resp *RPCResponse
		if err := json.Unmarshal(data, &req); err != nil {
			resp = errorResponse(nil, ErrCodeParseError, err)
		} else {
			resp = dispatchRequest(ctx, disp, &req, logger)
		}

		conn.SetWriteDeadline(time.Now().Add(websocketWriteTimeout))
		if err := conn.WriteJSON(resp); err != nil {
			logger.Error("mcpserver: websocket write failed", "error", err)
			return
		}
	}
}
