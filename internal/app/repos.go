package app

import (
	"github.com/mockuniversity/mocku-backend/internal/repos"
)

type appRepos struct {
	student      repos.StudentRepo
	studentToken repos.StudentTokenRepo
	application  repos.ApplicationRepo
	contact      repos.ContactMessageRepo
}

func (a *App) wireRepos() {
	gdb := a.dbService.DB()
	a.repos = appRepos{
		student:      repos.NewStudentRepo(gdb, a.log),
		studentToken: repos.NewStudentTokenRepo(gdb, a.log),
		application:  repos.NewApplicationRepo(gdb, a.log),
		contact:      repos.NewContactMessageRepo(gdb, a.log),
	}
}
