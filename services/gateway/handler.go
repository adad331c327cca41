package gateway

import (
	"encoding/json"
	"net/http"

	"github.com/graphql-go/graphql"

	"github.com/ghuser/pressroom/pkg/httpx"
)

type graphqlRequest struct {
	Query         string                 `json:"query"`
	OperationName string                 `json:"operationName"`
	Variables     map[string]interface{} `json:"variables"`
}

// ServeGraphQL executes one query or mutation. Authentication is optional:
// the Subject, if any, was attached to the request context by the auth
// middleware, and resolvers that need one fail with an UNAUTHENTICATED
// error code rather than the request being rejected up front.
func (g *Gateway) ServeGraphQL(w http.ResponseWriter, r *http.Request) {
	var req graphqlRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "malformed request body")
		return
	}
	if req.Query == "" {
		httpx.JSONError(w, http.StatusBadRequest, "query is required")
		return
	}

	result := graphql.Do(graphql.Params{
		Schema:         g.schema,
		RequestString:  req.Query,
		OperationName:  req.OperationName,
		VariableValues: req.Variables,
		Context:        r.Context(),
	})

	// GraphQL transports errors in the body; HTTP status stays 200.
	httpx.JSON(w, http.StatusOK, result)
}
