package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"signalrelaygo/internal/config"
	"signalrelaygo/internal/http/http_server"
	"signalrelaygo/internal/registry"
	"signalrelaygo/internal/services/relay"
	"signalrelaygo/internal/services/session"
	"signalrelaygo/internal/ws"
)

var (
	Log, _ = zap.NewDevelopment()
)

func main() {
	defer Log.Sync()
	zap.ReplaceGlobals(Log)

	// 1. Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		Log.Fatal("Failed to load configuration", zap.Error(err))
	}
	Log.Debug("Configuration loaded successfully", zap.Any("config", cfg))

	// 2. Context with signal handling
	ctx, stop := signal.NotifyContext(context.Background(),
		os.Interrupt, syscall.SIGINT, syscall.SIGTERM,
	)
	defer stop()

	// 3. Registries: the only shared mutable state, in-memory per process.
	conns := registry.NewConnectionRegistry()
	rooms := registry.NewRoomRegistry()

	// 4. WebSockets hub (transport gateway)
	hub := ws.NewHub()

	// 5. Session controller + signaling relay on top of the hub
	sessionSvc := session.NewSessionService(conns, rooms, hub)
	relaySvc := relay.NewRelayService(hub)

	// 6. Initialize the WS server
	wsSrv := ws.NewWsServer(hub, sessionSvc, relaySvc)

	// 7. HTTP + WS server
	httpServer := http_server.NewHttpServer(ctx, cfg.HttpServerPort, cfg.ClientDistDir, wsSrv, sessionSvc)

	go func() {
		<-ctx.Done()
		if err := httpServer.Dispose(); err != nil {
			Log.Error("Failed to shut down HTTP server", zap.Error(err))
		}
	}()

	Log.Info("Starting signaling server", zap.Uint16("port", cfg.HttpServerPort))
	if err := httpServer.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		Log.Fatal("Failed to start HTTP server", zap.Error(err))
	}
}
