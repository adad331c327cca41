package gateway

import (
	"github.com/go-chi/chi/v5"
)

// Routes mounts the gateway's endpoints: the query/mutation API and the
// change-notification stream.
func (g *Gateway) Routes(r chi.Router) {
	r.Post("/graphql", g.ServeGraphQL)
	r.Get("/graphql/ws", g.ServeStream)
}
