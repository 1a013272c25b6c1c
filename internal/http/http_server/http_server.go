package http_server

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/gin-contrib/cors"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"signalrelaygo/internal/http/registryhandler"
	"signalrelaygo/internal/services/session"
	"signalrelaygo/internal/ws"
)

type httpServer struct {
	listenPort uint16
	distDir    string
	srv        http.Server
	ln         net.Listener
	wsSrv      *ws.WsServer
	sessionSvc session.ISessionService
	ctx        context.Context
}

func NewHttpServer(ctx context.Context, listenPort uint16, distDir string, wsSrv *ws.WsServer, sessionSvc session.ISessionService) *httpServer {
	return &httpServer{
		listenPort: listenPort,
		distDir:    distDir,
		wsSrv:      wsSrv,
		sessionSvc: sessionSvc,
		ctx:        ctx,
	}
}

func (h *httpServer) Start() error {
	var err error
	listenAddr := fmt.Sprintf(":%d", h.listenPort)
	h.ln, err = net.Listen("tcp", listenAddr)
	if err != nil {
		return err
	}

	routerEngine := gin.New()
	routerEngine.Use(cors.Default())
	routerEngine.Use(ginzap.RecoveryWithZap(zap.L(), true))

	routerEngine.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "OK"})
	})

	// websocket endpoint
	routerEngine.GET("/ws", h.wsSrv.Handle)

	// Registry snapshot side channel
	rh := registryhandler.New(h.sessionSvc)
	rh.Register(routerEngine.Group("/sio"))

	// Static files for the web client, when a build is present.
	if info, err := os.Stat(h.distDir); err == nil && info.IsDir() {
		zap.L().Info("serving static client", zap.String("dir", h.distDir))
		routerEngine.Static("/assets", filepath.Join(h.distDir, "assets"))
		routerEngine.NoRoute(func(c *gin.Context) {
			c.File(filepath.Join(h.distDir, "index.html"))
		})
	}

	h.srv = http.Server{
		Handler: routerEngine,
	}

	return h.srv.Serve(h.ln)
}

// Dispose gracefully shuts the HTTP server down.
// It waits up to 10 s for in-flight requests to finish.
func (h *httpServer) Dispose() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := h.srv.Shutdown(ctx); err != nil {
		zap.L().Error("http_dispose", zap.Error(err))
		return err
	}
	return nil
}
