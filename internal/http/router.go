package http

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/mockuniversity/mocku-backend/internal/http/handlers"
	"github.com/mockuniversity/mocku-backend/internal/http/middleware"
	"github.com/mockuniversity/mocku-backend/internal/pkg/logger"
)

type RouterConfig struct {
	Log            *logger.Logger
	Mode           string
	PartnerOrigin  string
	TracingEnabled bool

	AuthMW *middleware.AuthMiddleware

	RecommendationHandler *handlers.RecommendationHandler
	WebhookHandler        *handlers.WebhookHandler
	AuthHandler           *handlers.AuthHandler
	ApplicationHandler    *handlers.ApplicationHandler
	ContactHandler        *handlers.ContactHandler
	ProgramHandler        *handlers.ProgramHandler
	IntegrationHandler    *handlers.IntegrationHandler
	RealtimeHandler       *handlers.RealtimeHandler
}

// NewRouter builds the gin engine. Handler fields left nil simply skip
// their routes, which keeps partial wiring usable in tests.
func NewRouter(cfg RouterConfig) *gin.Engine {
	if cfg.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.HandleMethodNotAllowed = true
	r.Use(gin.Recovery())
	if cfg.TracingEnabled {
		r.Use(otelgin.Middleware("mocku-backend"))
	}
	if cfg.Log != nil {
		r.Use(middleware.AttachRequestContext(cfg.Log))
	}

	// The window channel accepts envelopes from any origin and drops
	// untrusted ones silently inside the messenger; registered before
	// the CORS middleware so the allow-list cannot reject them first.
	if cfg.IntegrationHandler != nil {
		r.POST("/api/integration/message", cfg.IntegrationHandler.Message)
	}

	r.Use(middleware.CORS(cfg.PartnerOrigin))

	api := r.Group("/api")
	api.GET("/health", handlers.Health)

	if cfg.RecommendationHandler != nil {
		api.POST("/upsert", cfg.RecommendationHandler.Upsert)
		api.GET("/status", cfg.RecommendationHandler.Status)
	}
	if cfg.WebhookHandler != nil {
		api.POST("/webhook", cfg.WebhookHandler.Event)
		api.POST("/recommendations", cfg.WebhookHandler.Receive)
	}
	if cfg.AuthHandler != nil {
		auth := api.Group("/auth")
		auth.POST("/login", cfg.AuthHandler.Login)
		if cfg.AuthMW != nil {
			auth.POST("/logout", cfg.AuthMW.RequireAuth(), cfg.AuthHandler.Logout)
			auth.GET("/me", cfg.AuthMW.RequireAuth(), cfg.AuthHandler.Me)
		}
	}
	if cfg.ApplicationHandler != nil {
		api.POST("/applications", cfg.ApplicationHandler.Submit)
	}
	if cfg.ContactHandler != nil {
		api.POST("/contact", cfg.ContactHandler.Submit)
	}
	if cfg.ProgramHandler != nil {
		api.GET("/programs", cfg.ProgramHandler.List)
	}
	if cfg.IntegrationHandler != nil {
		integ := api.Group("/integration")
		integ.GET("/mirror", cfg.IntegrationHandler.Mirror)
		integ.GET("/mirror/:external_id", cfg.IntegrationHandler.MirrorRecord)
	}
	if cfg.RealtimeHandler != nil {
		api.GET("/realtime/stream", cfg.RealtimeHandler.Stream)
	}

	return r
}
