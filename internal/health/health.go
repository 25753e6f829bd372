// Package health checks the backend once at client start and holds the
// resulting error banner until the user dismisses it.
package health

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	"github.com/HerbHall/renewhub/pkg/models"
)

// UnreachableMessage is the banner text shown when the backend cannot be used.
const UnreachableMessage = "Cannot connect to the backend server. Please check that the backend service is running."

// Checker reports backend health.
type Checker interface {
	CheckHealth(ctx context.Context) (models.HealthStatus, error)
}

// Result is the outcome of the startup check.
type Result struct {
	Checked bool
	Healthy bool
	Status  models.HealthStatus
	Err     error
}

// Banner runs a single health check and tracks whether its error banner is
// showing. Later calls to Check return the first result without contacting
// the backend again.
type Banner struct {
	checker Checker
	logger  *zap.Logger

	mu        sync.Mutex
	result    Result
	visible   bool
	dismissed bool
}

// NewBanner creates a banner over checker. A nil logger discards output.
func NewBanner(checker Checker, logger *zap.Logger) *Banner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Banner{checker: checker, logger: logger}
}

// Check performs the health check the first time it is called.
func (b *Banner) Check(ctx context.Context) Result {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.result.Checked {
		return b.result
	}

	status, err := b.checker.CheckHealth(ctx)
	if errors.Is(err, context.Canceled) {
		return Result{Err: err}
	}

	b.result = Result{Checked: true, Status: status, Err: err}
	b.result.Healthy = err == nil && status.Healthy()
	if !b.result.Healthy {
		b.logger.Warn("backend health check failed",
			zap.String("status", status.Status), zap.Error(err))
		b.visible = !b.dismissed
	}
	return b.result
}

// Result returns the stored outcome. Checked is false before Check completes.
func (b *Banner) Result() Result {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.result
}

// Visible reports whether the error banner is showing.
func (b *Banner) Visible() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.visible
}

// Message returns the banner text, or "" when the banner is hidden.
func (b *Banner) Message() string {
	if !b.Visible() {
		return ""
	}
	return UnreachableMessage
}

// Dismiss hides the banner for good.
func (b *Banner) Dismiss() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.visible = false
	b.dismissed = true
}
