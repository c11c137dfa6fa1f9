package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-contrib/pprof"
	"github.com/gin-gonic/gin"

	"github.com/kiosk404/spycats/internal/pkg/core"
	"github.com/kiosk404/spycats/pkg/logger"
	"github.com/kiosk404/spycats/pkg/version"
)

// GenericAPIServer contains state for a generic api server.
type GenericAPIServer struct {
	middlewares []string

	// InsecureServingInfo holds configuration of the insecure HTTP server.
	InsecureServingInfo *InsecureServingInfo

	// ShutdownTimeout is the timeout used for server shutdown. This specifies
	// the timeout before server shutdown returns.
	shutdownTimeout time.Duration

	*gin.Engine
	healthz         bool
	enableProfiling bool

	insecureServer *http.Server
}

func initGenericAPIServer(s *GenericAPIServer) {
	s.Setup()
	s.InstallAPIs()
}

// InstallAPIs installs generic apis.
func (s *GenericAPIServer) InstallAPIs() {
	if s.healthz {
		s.GET("/healthz", func(c *gin.Context) {
			core.WriteResponse(c, nil, map[string]string{"status": "ok"})
		})
	}

	if s.enableProfiling {
		pprof.Register(s.Engine)
	}

	s.GET("/version", func(c *gin.Context) {
		core.WriteResponse(c, nil, version.Get())
	})
}

// Setup does some setup work for gin engine.
func (s *GenericAPIServer) Setup() {
	gin.DebugPrintRouteFunc = func(httpMethod, absolutePath, handlerName string, nuHandlers int) {
		logger.Debug("[Server] %-6s %-s --> %s (%d handlers)", httpMethod, absolutePath, handlerName, nuHandlers)
	}
	s.Use(gin.Recovery())
}

// Middlewares returns the middleware names requested by configuration.
func (s *GenericAPIServer) Middlewares() []string {
	return s.middlewares
}

// Run spawns the http server. It only returns when the port cannot be
// listened on initially or the server is closed.
func (s *GenericAPIServer) Run() error {
	s.insecureServer = &http.Server{
		Addr:              s.InsecureServingInfo.Address,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	logger.Info("[Server] start to listening the incoming requests on http address: %s", s.InsecureServingInfo.Address)

	if err := s.insecureServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	logger.Info("[Server] server on %s stopped", s.InsecureServingInfo.Address)

	return nil
}

// Close graceful shutdown the api server.
func (s *GenericAPIServer) Close() {
	if s.insecureServer == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()

	if err := s.insecureServer.Shutdown(ctx); err != nil {
		logger.Warn("[Server] shutdown insecure server failed: %s", err.Error())
	}
}
