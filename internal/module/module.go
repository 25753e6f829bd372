// Package module defines the feature modules served by the HTTP service and
// the registry that initializes them and collects their routes.
package module

import (
	"net/http"

	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// Route represents an HTTP route exposed by a module.
type Route struct {
	Method  string
	Path    string
	Handler http.HandlerFunc
}

// Module is a feature area mounted under /api/v1/{name}.
type Module interface {
	// Name returns the module's unique identifier and URL segment.
	Name() string

	// Description is a one-line summary shown in the module listing.
	Description() string

	// Init configures the module with its config subtree and logger.
	Init(config *viper.Viper, logger *zap.Logger) error

	// Routes returns the HTTP routes this module exposes.
	Routes() []Route
}
