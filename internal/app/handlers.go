package app

import (
	"github.com/mockuniversity/mocku-backend/internal/http/handlers"
)

type appHandlers struct {
	recommendation *handlers.RecommendationHandler
	webhook        *handlers.WebhookHandler
	auth           *handlers.AuthHandler
	application    *handlers.ApplicationHandler
	contact        *handlers.ContactHandler
	program        *handlers.ProgramHandler
	integration    *handlers.IntegrationHandler
	realtime       *handlers.RealtimeHandler
}

func (a *App) wireHandlers() {
	a.handlers = appHandlers{
		recommendation: handlers.NewRecommendationHandler(a.log, a.services.recommendation),
		webhook:        handlers.NewWebhookHandler(a.log, a.services.recommendation),
		auth:           handlers.NewAuthHandler(a.log, a.services.auth),
		application:    handlers.NewApplicationHandler(a.log, a.services.application),
		contact:        handlers.NewContactHandler(a.log, a.services.contact),
		program:        handlers.NewProgramHandler(a.log, a.services.program),
		integration:    handlers.NewIntegrationHandler(a.log, a.messenger, a.mirror),
		realtime:       handlers.NewRealtimeHandler(a.log, a.hub),
	}
}
