package services

import (
	"github.com/ghuser/pressroom/pkg/app"
	"github.com/ghuser/pressroom/pkg/cache"
	"github.com/ghuser/pressroom/services/post/infrastructure/persistence/postgres"
)

// Services is the application-layer service container for this bounded context.
type Services struct {
	Post *PostService
}

// New wires the post service with infrastructure from the Application container.
func New(a *app.Application) *Services {
	repo := postgres.NewPostRepository(a.Db)
	postCache := cache.NewPostCache(a.Redis)
	return &Services{
		Post: NewPostService(repo, postCache),
	}
}
