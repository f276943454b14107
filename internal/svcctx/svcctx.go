// Package svcctx provides service context for dependency injection via context.
// This package is separate from server to avoid import cycles with endpoints.
package svcctx

import (
	"context"
	"log/slog"

	"github.com/odoma/benchdash/internal/assets"
	"github.com/odoma/benchdash/internal/config"
	"github.com/odoma/benchdash/internal/dataset"
	"github.com/odoma/benchdash/internal/home"
	"github.com/odoma/benchdash/internal/schema"
	"github.com/odoma/benchdash/internal/session"
)

// Services holds all core services that flow through context.
// Components extract what they need via the individual extractors.
// A Services value is immutable; a config reload installs a new one.
type Services struct {
	Datasets *dataset.Store
	Sessions *session.Store
	Assets   *assets.Resolver
	Schema   schema.Schema
	Config   *config.Manager
	Logger   *slog.Logger
	Home     *home.Dir
}

type servicesKey struct{}

// WithServices returns a new context with services attached.
func WithServices(ctx context.Context, s *Services) context.Context {
	return context.WithValue(ctx, servicesKey{}, s)
}

// ServicesFrom extracts the full Services struct from context.
// Returns nil if not present.
func ServicesFrom(ctx context.Context) *Services {
	s, _ := ctx.Value(servicesKey{}).(*Services)
	return s
}

// DatasetsFrom extracts the dataset store from context.
func DatasetsFrom(ctx context.Context) *dataset.Store {
	if s := ServicesFrom(ctx); s != nil {
		return s.Datasets
	}
	return nil
}

// SessionsFrom extracts the session store from context.
func SessionsFrom(ctx context.Context) *session.Store {
	if s := ServicesFrom(ctx); s != nil {
		return s.Sessions
	}
	return nil
}

// AssetsFrom extracts the asset resolver from context.
func AssetsFrom(ctx context.Context) *assets.Resolver {
	if s := ServicesFrom(ctx); s != nil {
		return s.Assets
	}
	return nil
}

// SchemaFrom extracts the tool schema from context, defaulting to the
// published benchmark's schema.
func SchemaFrom(ctx context.Context) schema.Schema {
	if s := ServicesFrom(ctx); s != nil && len(s.Schema.Tools) > 0 {
		return s.Schema
	}
	return schema.Default()
}

// ConfigFrom extracts the config manager from context.
func ConfigFrom(ctx context.Context) *config.Manager {
	if s := ServicesFrom(ctx); s != nil {
		return s.Config
	}
	return nil
}

// LoggerFrom extracts the logger from context.
func LoggerFrom(ctx context.Context) *slog.Logger {
	if s := ServicesFrom(ctx); s != nil && s.Logger != nil {
		return s.Logger
	}
	return slog.Default()
}

// HomeFrom extracts the home directory from context.
func HomeFrom(ctx context.Context) *home.Dir {
	if s := ServicesFrom(ctx); s != nil {
		return s.Home
	}
	return nil
}
