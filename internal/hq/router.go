package hq

import (
	"github.com/kiosk404/spycats/internal/hq/handler/middleware"
	v1 "github.com/kiosk404/spycats/internal/hq/handler/v1"
	"github.com/kiosk404/spycats/internal/hq/service/cats/domain/service"
	genericapiserver "github.com/kiosk404/spycats/internal/pkg/server"
	"github.com/kiosk404/spycats/pkg/logger"
)

// routerDeps holds the dependencies needed for route registration.
type routerDeps struct {
	catService service.CatService
	cors       middleware.CORSConfig
}

func initRouter(s *genericapiserver.GenericAPIServer, deps *routerDeps) {
	installMiddleware(s, deps)
	installController(s, deps)
}

func installMiddleware(s *genericapiserver.GenericAPIServer, deps *routerDeps) {
	s.Use(middleware.CORS(deps.cors))

	for _, name := range s.Middlewares() {
		mw, ok := middleware.Middlewares[name]
		if !ok {
			logger.Warn("[HQ] can not find middleware: %s", name)
			continue
		}

		logger.Info("[HQ] install middleware: %s", name)
		s.Use(mw)
	}
}

func installController(s *genericapiserver.GenericAPIServer, deps *routerDeps) {
	catHandler := v1.NewCatHandler(deps.catService)

	// --- /v1 route group ---
	apiV1 := s.Group("/v1")
	{
		apiV1.GET("/cats", catHandler.List)
		apiV1.POST("/cats", catHandler.Create)
		apiV1.GET("/cats/:id", catHandler.Get)
		apiV1.PATCH("/cats/:id/salary", catHandler.UpdateSalary)
		apiV1.DELETE("/cats/:id", catHandler.Delete)
	}
}
