package srv

import "context"

// cleanupService runs fn on shutdown and does nothing on start.
type cleanupService struct {
	name string
	fn   func() error
}

func (c *cleanupService) Start(context.Context) error { return nil }

func (c *cleanupService) Shutdown(context.Context) error {
	if c.fn == nil {
		return nil
	}
	return c.fn()
}

func (c *cleanupService) String() string { return c.name }

// NewCleanup wraps a close func so it is released with the other services.
func NewCleanup(name string, fn func() error) Service {
	return &cleanupService{name: name, fn: fn}
}
