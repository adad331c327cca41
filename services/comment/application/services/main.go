package services

import (
	"github.com/ghuser/pressroom/pkg/app"
	"github.com/ghuser/pressroom/services/comment/infrastructure/persistence/postgres"
)

// Services is the application-layer service container for this bounded context.
type Services struct {
	Comment *CommentService
}

// New wires the comment service with infrastructure from the Application container.
func New(a *app.Application) *Services {
	repo := postgres.NewCommentRepository(a.Db)
	return &Services{
		Comment: NewCommentService(repo),
	}
}
