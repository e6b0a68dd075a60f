package app

import (
	"github.com/mockuniversity/mocku-backend/internal/http/middleware"
)

func (a *App) wireMiddleware() {
	a.authMW = middleware.NewAuthMiddleware(a.log, a.services.auth)
}
