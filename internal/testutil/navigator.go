package testutil

import "sync"

// Navigator records every location it is asked to navigate to.
type Navigator struct {
	mu      sync.Mutex
	targets []string
}

// NewNavigator returns an empty Navigator.
func NewNavigator() *Navigator {
	return &Navigator{}
}

// Navigate records target.
func (n *Navigator) Navigate(target string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.targets = append(n.targets, target)
}

// Targets returns a copy of the recorded targets in call order.
func (n *Navigator) Targets() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	cp := make([]string, len(n.targets))
	copy(cp, n.targets)
	return cp
}

// Last returns the most recent target, or "" when none was recorded.
func (n *Navigator) Last() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	if len(n.targets) == 0 {
		return ""
	}
	return n.targets[len(n.targets)-1]
}
