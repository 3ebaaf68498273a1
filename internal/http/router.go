package http

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	httpH "github.com/yungbote/debate-analyzer-backend/internal/http/handlers"
	httpMW "github.com/yungbote/debate-analyzer-backend/internal/http/middleware"
)

type RouterConfig struct {
	ServiceName string

	AdminAuth *httpMW.AdminAuth

	TranscriptHandler *httpH.TranscriptHandler
	SpeakerHandler    *httpH.SpeakerHandler
	HealthHandler     *httpH.HealthHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.Default()
	if cfg.ServiceName != "" {
		r.Use(otelgin.Middleware(cfg.ServiceName))
	}
	r.Use(httpMW.CORS())

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
	}

	api := r.Group("/api")
	{
		// Speakers (public)
		if cfg.SpeakerHandler != nil {
			api.GET("/speakers", cfg.SpeakerHandler.List)
			api.GET("/speakers/:id_or_slug", cfg.SpeakerHandler.Get)
			api.GET("/stat-catalog", cfg.SpeakerHandler.StatCatalog)
		}
	}

	admin := api.Group("/admin")
	{
		if cfg.AdminAuth != nil {
			admin.Use(cfg.AdminAuth.Require())
		}

		// Transcripts
		if cfg.TranscriptHandler != nil {
			admin.POST("/transcripts", cfg.TranscriptHandler.Register)
			admin.GET("/transcripts", cfg.TranscriptHandler.List)
			admin.GET("/transcripts/:id", cfg.TranscriptHandler.Get)
			admin.PATCH("/transcripts/:id", cfg.TranscriptHandler.Update)
			admin.DELETE("/transcripts/:id", cfg.TranscriptHandler.Delete)
			admin.PUT("/transcripts/:id/mappings", cfg.TranscriptHandler.SaveMappings)
			admin.POST("/transcripts/:id/recompute-stats", cfg.TranscriptHandler.RecomputeStats)
			admin.GET("/transcripts/:id/video-url", cfg.TranscriptHandler.VideoURL)
		}

		// Speakers (admin)
		if cfg.SpeakerHandler != nil {
			admin.GET("/speakers", cfg.SpeakerHandler.List)
			admin.POST("/speakers", cfg.SpeakerHandler.Create)
			admin.PATCH("/speakers/:id", cfg.SpeakerHandler.Update)
			admin.DELETE("/speakers/:id", cfg.SpeakerHandler.Delete)
		}
	}

	return r
}
