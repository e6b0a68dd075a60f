package app

import (
	"github.com/mockuniversity/mocku-backend/internal/services"
)

type appServices struct {
	recommendation services.RecommendationService
	auth           services.AuthService
	application    services.ApplicationService
	contact        services.ContactService
	program        services.ProgramService
}

func (a *App) wireServices() error {
	notifier := services.NewNotifierFromEnv(a.log)
	gdb := a.dbService.DB()

	programSvc, err := services.NewProgramService(a.log)
	if err != nil {
		return err
	}

	a.services = appServices{
		recommendation: services.NewRecommendationService(a.log, a.records, notifier, a.broadcaster),
		auth: services.NewAuthService(
			gdb,
			a.log,
			a.repos.student,
			a.repos.studentToken,
			a.cfg.JWTSecretKey,
			a.cfg.AccessTokenTTL,
		),
		application: services.NewApplicationService(gdb, a.log, a.repos.application, notifier),
		contact:     services.NewContactService(gdb, a.log, a.repos.contact, notifier),
		program:     programSvc,
	}
	return nil
}
