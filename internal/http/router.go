package http

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	httpH "github.com/Yamier22/motion-library/internal/http/handlers"
	httpMW "github.com/Yamier22/motion-library/internal/http/middleware"
	"github.com/Yamier22/motion-library/internal/pkg/logger"
)

type RouterConfig struct {
	Log *logger.Logger

	CORSOrigins []string

	HealthHandler     *httpH.HealthHandler
	ModelHandler      *httpH.ModelHandler
	TrajectoryHandler *httpH.TrajectoryHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(otelgin.Middleware("motion-library"))
	r.Use(httpMW.AttachTraceContext())
	r.Use(httpMW.RequestLogger(cfg.Log))
	r.Use(httpMW.CORS(cfg.CORSOrigins))

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/", cfg.HealthHandler.Root)
		r.GET("/healthcheck", cfg.HealthHandler.Check)
	}

	api := r.Group("/api")
	{
		// Models
		if cfg.ModelHandler != nil {
			api.GET("/models", cfg.ModelHandler.List)
			api.POST("/models", cfg.ModelHandler.Upload)
			api.GET("/models/:id", cfg.ModelHandler.Download)
			api.DELETE("/models/:id", cfg.ModelHandler.Delete)
			api.GET("/models/:id/files", cfg.ModelHandler.Files)
			api.GET("/models/:id/files/*filepath", cfg.ModelHandler.File)
			api.GET("/models/:id/thumbnail", cfg.ModelHandler.Thumbnail)
		}

		// Trajectories
		if cfg.TrajectoryHandler != nil {
			api.GET("/trajectories", cfg.TrajectoryHandler.List)
			api.POST("/trajectories", cfg.TrajectoryHandler.Upload)
			api.GET("/trajectories/:id", cfg.TrajectoryHandler.Download)
			api.DELETE("/trajectories/:id", cfg.TrajectoryHandler.Delete)
			api.GET("/trajectories/:id/thumbnail", cfg.TrajectoryHandler.Thumbnail)
		}
	}

	return r
}
