package services

import (
	"github.com/ghuser/pressroom/pkg/app"
	"github.com/ghuser/pressroom/services/user/infrastructure/persistence/postgres"
)

// Services is the application-layer service container for this bounded context.
type Services struct {
	User *UserService
}

// New wires the user service with infrastructure from the Application container.
func New(a *app.Application) *Services {
	repo := postgres.NewUserRepository(a.Db)
	return &Services{
		User: NewUserService(repo, a.Tokens),
	}
}
