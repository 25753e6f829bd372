package module

import (
	"fmt"
	"sync"

	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// Registry holds the registered modules in registration order.
type Registry struct {
	mu      sync.RWMutex
	modules map[string]Module
	enabled map[string]bool
	order   []string
	logger  *zap.Logger
}

// NewRegistry creates an empty registry.
func NewRegistry(logger *zap.Logger) *Registry {
	return &Registry{
		modules: make(map[string]Module),
		enabled: make(map[string]bool),
		logger:  logger,
	}
}

// Register adds a module. Names must be unique.
func (r *Registry) Register(m Module) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	name := m.Name()
	if _, exists := r.modules[name]; exists {
		return fmt.Errorf("module %q already registered", name)
	}

	r.modules[name] = m
	r.order = append(r.order, name)
	r.logger.Info("module registered", zap.String("name", name))
	return nil
}

// InitAll initializes every module whose modules.<name>.enabled setting is
// not false. Disabled modules expose no routes.
func (r *Registry) InitAll(config *viper.Viper) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if config == nil {
		config = viper.New()
	}

	for _, name := range r.order {
		key := "modules." + name + ".enabled"
		if config.IsSet(key) && !config.GetBool(key) {
			r.logger.Info("module disabled, skipping", zap.String("name", name))
			continue
		}

		sub := config.Sub("modules." + name)
		if sub == nil {
			sub = viper.New()
		}

		r.logger.Info("initializing module", zap.String("name", name))
		if err := r.modules[name].Init(sub, r.logger.Named(name)); err != nil {
			return fmt.Errorf("failed to initialize module %q: %w", name, err)
		}
		r.enabled[name] = true
	}
	return nil
}

// Get returns a module by name.
func (r *Registry) Get(name string) (Module, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	m, ok := r.modules[name]
	return m, ok
}

// Enabled returns the initialized modules in registration order.
func (r *Registry) Enabled() []Module {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]Module, 0, len(r.order))
	for _, name := range r.order {
		if r.enabled[name] {
			result = append(result, r.modules[name])
		}
	}
	return result
}

// AllRoutes returns the routes of every initialized module, keyed by name.
func (r *Registry) AllRoutes() map[string][]Route {
	r.mu.RLock()
	defer r.mu.RUnlock()

	routes := make(map[string][]Route)
	for _, name := range r.order {
		if !r.enabled[name] {
			continue
		}
		if mr := r.modules[name].Routes(); len(mr) > 0 {
			routes[name] = mr
		}
	}
	return routes
}
