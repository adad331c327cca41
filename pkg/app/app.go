package app

import (
	"github.com/ghuser/pressroom/pkg/auth"
	"github.com/ghuser/pressroom/pkg/cache"
	"github.com/ghuser/pressroom/pkg/config"
	"github.com/ghuser/pressroom/pkg/database"
	"github.com/ghuser/pressroom/pkg/events"
	"github.com/ghuser/pressroom/pkg/logger"
)

// Application holds shared infrastructure dependencies for all services.
// Constructed once in cmd/api and passed to every service's route registration.
//
// Logging: app.Logger is backed by a trace-aware handler — use slog's context
// methods and trace_id, span_id, and request_id are injected automatically:
//
//	app.Logger.InfoContext(ctx, "publishing change event", "post_id", id)
//
// Use app.Logger.Info/Error (no context) only for startup and shutdown messages.
type Application struct {
	Config *config.Config
	Db     *database.Database
	Logger logger.Logger
	Bus    *events.Bus
	Redis  *cache.RedisClient
	Tokens *auth.Tokens
}
