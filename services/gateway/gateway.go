// Package gateway is the request edge of the service: it exposes the
// query/mutation API over HTTP and the change-notification stream over
// websockets, translating between transport and the application services.
//
// The gateway is also where change events are born: after a post mutation
// succeeds, exactly one ChangeEvent is published to the bus. Failed
// mutations publish nothing.
package gateway

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/graphql-go/graphql"

	"github.com/ghuser/pressroom/pkg/auth"
	"github.com/ghuser/pressroom/pkg/events"
	"github.com/ghuser/pressroom/pkg/logger"
	commentsvcs "github.com/ghuser/pressroom/services/comment/application/services"
	postsvcs "github.com/ghuser/pressroom/services/post/application/services"
	postevents "github.com/ghuser/pressroom/services/post/domain/events"
	usersvcs "github.com/ghuser/pressroom/services/user/application/services"
)

// Gateway routes API requests to the application services and coordinates
// event publication and streaming sessions.
type Gateway struct {
	log      logger.Logger
	bus      *events.Bus
	tokens   *auth.Tokens
	posts    *postsvcs.PostService
	users    *usersvcs.UserService
	comments *commentsvcs.CommentService

	schema   graphql.Schema
	sessions *SessionManager
}

// New builds a Gateway with its GraphQL schema and session manager.
func New(
	log logger.Logger,
	bus *events.Bus,
	tokens *auth.Tokens,
	posts *postsvcs.PostService,
	users *usersvcs.UserService,
	comments *commentsvcs.CommentService,
) (*Gateway, error) {
	g := &Gateway{
		log:      log,
		bus:      bus,
		tokens:   tokens,
		posts:    posts,
		users:    users,
		comments: comments,
	}
	g.sessions = NewSessionManager(log, bus)

	schema, err := g.buildSchema()
	if err != nil {
		return nil, fmt.Errorf("build schema: %w", err)
	}
	g.schema = schema
	return g, nil
}

// Sessions exposes the session manager for shutdown coordination.
func (g *Gateway) Sessions() *SessionManager {
	return g.sessions
}

// publishChange emits the single ChangeEvent for a successful post mutation.
// Marshal failures are logged and swallowed; the mutation already committed
// and must not be failed retroactively.
func (g *Gateway) publishChange(kind postevents.Kind, postID uuid.UUID, title string) {
	evt := postevents.NewChangeEvent(kind, postID, title)
	msg, err := events.NewMessage(evt)
	if err != nil {
		g.log.Error("marshal change event", "kind", string(kind), "post_id", postID, "error", err)
		return
	}
	g.bus.Publish(kind.Topic(), msg)
}
