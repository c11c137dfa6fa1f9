package hq

import (
	"context"
	"fmt"

	"github.com/kiosk404/spycats/internal/hq/config"
	"github.com/kiosk404/spycats/internal/hq/handler/middleware"
	"github.com/kiosk404/spycats/internal/hq/service/cats"
	genericapiserver "github.com/kiosk404/spycats/internal/pkg/server"
	"github.com/kiosk404/spycats/pkg/http/shutdown"
	"github.com/kiosk404/spycats/pkg/http/shutdown/posixsignal"
	"github.com/kiosk404/spycats/pkg/logger"
)

type apiServer struct {
	gs               *shutdown.GracefulShutdown
	genericAPIServer *genericapiserver.GenericAPIServer

	catsModule *cats.Module
	cors       middleware.CORSConfig
}

type preparedAPIServer struct {
	*apiServer
}

func createAPIServer(cfg *config.Config) (*apiServer, error) {
	gs := shutdown.New()
	gs.AddShutdownManager(posixsignal.NewPosixSignalManager())

	genericConfig, err := buildGenericConfig(cfg)
	if err != nil {
		return nil, err
	}

	genericServer, err := genericConfig.Complete().New()
	if err != nil {
		return nil, err
	}

	// Initialize Cats module (K8S-style: Config → Complete → New).
	catsCfg := &cats.Config{Store: *cfg.Store}
	catsModule, err := catsCfg.Complete().New(context.Background())
	if err != nil {
		return nil, fmt.Errorf("failed to create Cats module: %w", err)
	}
	logger.Info("[HQ] Cats module initialized successfully")

	return &apiServer{
		gs:               gs,
		genericAPIServer: genericServer,
		catsModule:       catsModule,
		cors: middleware.CORSConfig{
			AllowOrigins: cfg.CORS.AllowOrigins,
			MaxAge:       cfg.CORS.MaxAge,
		},
	}, nil
}

func (s *apiServer) PrepareRun() preparedAPIServer {
	initRouter(s.genericAPIServer, &routerDeps{
		catService: s.catsModule.Service,
		cors:       s.cors,
	})

	s.gs.AddShutdownCallback(shutdown.Func(func(string) error {
		s.genericAPIServer.Close()
		// Close the store only after in-flight requests have drained.
		if err := s.catsModule.Close(); err != nil {
			logger.Warn("[HQ] close cats module: %v", err)
		}
		logger.Flush()
		return nil
	}))

	return preparedAPIServer{s}
}

func (s preparedAPIServer) Run() error {
	// start shutdown managers
	if err := s.gs.Start(); err != nil {
		logger.Fatal("[HQ] start shutdown manager failed: %s", err.Error())
	}

	return s.genericAPIServer.Run()
}

func buildGenericConfig(cfg *config.Config) (genericConfig *genericapiserver.Config, lastErr error) {
	genericConfig = genericapiserver.NewConfig()
	if lastErr = cfg.ApplyTo(genericConfig); lastErr != nil {
		return
	}

	return
}
