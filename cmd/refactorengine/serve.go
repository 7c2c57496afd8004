package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dshills/refactorengine/internal/config"
	"github.com/dshills/refactorengine/internal/dispatcher"
	"github.com/dshills/refactorengine/internal/lang"
	"github.com/dshills/refactorengine/internal/lang/goadapter"
	"github.com/dshills/refactorengine/internal/lang/javaadapter"
	"github.com/dshills/refactorengine/internal/lang/pyadapter"
	"github.com/dshills/refactorengine/internal/lang/rustadapter"
	"github.com/dshills/refactorengine/internal/lang/tsadapter"
	"github.com/dshills/refactorengine/internal/lockmgr"
	"github.com/dshills/refactorengine/internal/logging"
	"github.com/dshills/refactorengine/internal/lsp"
	"github.com/dshills/refactorengine/internal/lspadapter"
	"github.com/dshills/refactorengine/internal/mcpserver"
	"github.com/dshills/refactorengine/internal/opqueue"
	"github.com/dshills/refactorengine/internal/planner"
)

// ServeCommand starts the MCP server, wiring the language registry,
// planner, operation queue, and an LSP client whose servers it registers
// per language.
type ServeCommand struct {
	Transport string `name:"transport" help:"stdio or websocket" default:"stdio" enum:"stdio,websocket"`
	Addr      string `name:"addr" help:"Listen address for the websocket transport" default:":7717"`
	Workspace string `name:"workspace" help:"Workspace root passed to workspace.roots" default:"."`
	EnvFile   string `name:"env-file" help:"Path to a .env file to load before reading config" default:".env"`
	LogLevel  string `name:"log-level" help:"debug, info, warn, or error" default:"info"`
	LogFormat string `name:"log-format" help:"auto, text, or json" default:"auto" enum:"auto,text,json"`
	NoLSP     bool   `name:"no-lsp" help:"Do not start a language server; the rename, move and navigation tools are then not registered and analyze.dead_code reports nothing"`
}

// Run builds the server's dependency graph and serves until the process
// receives SIGINT/SIGTERM or the transport's input closes.
func (cmd *ServeCommand) Run() error {
	_ = godotenv.Load(cmd.EnvFile)

	logger := logging.New(
		logging.WithLevel(parseLogLevel(cmd.LogLevel)),
		logging.WithFormat(logging.Format(cmd.LogFormat)),
	)

	cfg := config.New(config.WithProjectConfigDir(cmd.Workspace))
	if err := cfg.Load(context.Background()); err != nil {
		logger.Warn("serve: config load failed, continuing with defaults", "error", err)
	}
	defer cfg.Close()

	serverCfg := cfg.Server()
	if cmd.Workspace != "" {
		serverCfg.WorkspaceRoots = append(serverCfg.WorkspaceRoots, cmd.Workspace)
	}

	registry := buildRegistry()
	pl := planner.New(registry)

	locks := lockmgr.NewManager()
	queue := opqueue.New(locks, opqueue.WithQueueLogger(logger))
	defer queue.Close()

	metricsRegistry := prometheus.NewRegistry()
	disp := dispatcher.New(queue,
		dispatcher.WithLogger(logger),
		dispatcher.WithMetrics(dispatcher.NewMetrics(metricsRegistry)),
	)

	var adapter *lspadapter.Adapter
	var lspClient *lsp.Client
	if !cmd.NoLSP {
		lspClient = buildLSPClient(serverCfg, logger)
		ctx := context.Background()
		if err := lspClient.Start(ctx); err != nil {
			logger.Warn("serve: lsp client start failed, continuing without LSP", "error", err)
			lspClient = nil
		} else {
			defer func() {
				if err := lspClient.Shutdown(ctx); err != nil {
					logger.Warn("serve: lsp client shutdown reported errors", "error", err)
				}
			}()
			adapter = lspadapter.New(lspClient)
		}
	}

	mcpserver.RegisterIntentTools(disp, pl, registry)
	mcpserver.RegisterFileTools(disp)
	if adapter != nil {
		mcpserver.RegisterLSPTools(disp, pl, registry, adapter)
	}
	if lspClient != nil {
		mcpserver.RegisterNavigationTools(disp, lspClient)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	switch cmd.Transport {
	case "websocket":
		return cmd.serveWebSocket(ctx, disp, logger, metricsRegistry)
	default:
		return mcpserver.ServeStdio(ctx, os.Stdin, os.Stdout, disp, logger)
	}
}

func (cmd *ServeCommand) serveWebSocket(ctx context.Context, disp *dispatcher.Dispatcher, logger *slog.Logger, metricsRegistry *prometheus.Registry) error {
	mux := http.NewServeMux()
	mux.Handle("/", mcpserver.WebSocketHandler(disp, logger))
	mux.Handle("/metrics", promhttp.HandlerFor(metricsRegistry, promhttp.HandlerOpts{}))

	srv := &http.Server{Addr: cmd.Addr, Handler: mux}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("serve: websocket listening", "addr", cmd.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	}
}

func buildRegistry() *lang.Registry {
	registry := lang.NewRegistry()
	registry.Register(goadapter.New())
	registry.Register(rustadapter.New())
	registry.Register(pyadapter.New())
	registry.Register(tsadapter.New())
	registry.Register(javaadapter.New())
	return registry
}

func buildLSPClient(serverCfg config.ServerConfig, logger *slog.Logger) *lsp.Client {
	client := lsp.NewClient(
		lsp.WithAutoDetectServers(false),
		lsp.WithClientRequestTimeout(serverCfg.LSPRequestTimeout),
		lsp.WithClientDiagnosticsCallback(func(path string, diags []lsp.Diagnostic) {
			if len(diags) > 0 {
				logger.Debug("serve: diagnostics updated", "path", path, "count", len(diags))
			}
		}),
	)
	for languageID, entry := range serverCfg.LSPServers {
		client.RegisterServer(languageID, lsp.ServerConfig{
			Command: entry.Command,
			Args:    entry.Args,
		})
	}
	return client
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
