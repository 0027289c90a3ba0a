package keepalive

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
)

// CleanupManager releases resources in reverse registration order, bounded
// by a timeout.
type CleanupManager struct {
	mu          sync.Mutex
	resources   []CleanupResource
	timeout     time.Duration
	logger      *zap.SugaredLogger
	cleanupOnce sync.Once
	errs        []error
}

// CleanupResource represents a resource that needs cleanup
type CleanupResource interface {
	Cleanup(ctx context.Context) error
	Name() string
}

// CleanupFunc is a function-based cleanup resource
type CleanupFunc struct {
	name string
	fn   func(ctx context.Context) error
}

func (c *CleanupFunc) Cleanup(ctx context.Context) error {
	return c.fn(ctx)
}

func (c *CleanupFunc) Name() string {
	return c.name
}

// NewCleanupManager creates a new cleanup manager with the specified timeout
func NewCleanupManager(timeout time.Duration, logger *zap.SugaredLogger) *CleanupManager {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &CleanupManager{
		timeout: timeout,
		logger:  logger,
	}
}

// Register adds a resource to be cleaned up
func (cm *CleanupManager) Register(resource CleanupResource) {
	cm.mu.Lock()
	defer cm.mu.Unlock()
	cm.resources = append(cm.resources, resource)
}

// RegisterFunc registers a cleanup function
func (cm *CleanupManager) RegisterFunc(name string, fn func(ctx context.Context) error) {
	cm.Register(&CleanupFunc{name: name, fn: fn})
}

// Execute cleans up every registered resource, last registered first.
// Only the first call does any work; later calls return the same errors.
func (cm *CleanupManager) Execute() []error {
	cm.cleanupOnce.Do(func() {
		cm.errs = cm.executeWithTimeout()
	})
	return cm.errs
}

func (cm *CleanupManager) executeWithTimeout() []error {
	cm.mu.Lock()
	resources := make([]CleanupResource, len(cm.resources))
	copy(resources, cm.resources)
	cm.mu.Unlock()

	if len(resources) == 0 {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), cm.timeout)
	defer cancel()

	done := make(chan struct{})
	var cleanupErrors []error
	var mu sync.Mutex

	go func() {
		defer close(done)
		for i := len(resources) - 1; i >= 0; i-- {
			resource := resources[i]
			func() {
				defer func() {
					if r := recover(); r != nil {
						mu.Lock()
						cleanupErrors = append(cleanupErrors, fmt.Errorf("%s: panic during cleanup: %v", resource.Name(), r))
						mu.Unlock()
						cm.logger.Errorf("cleanup: panic cleaning up %s: %v", resource.Name(), r)
					}
				}()

				if err := resource.Cleanup(ctx); err != nil {
					mu.Lock()
					cleanupErrors = append(cleanupErrors, fmt.Errorf("%s: %w", resource.Name(), err))
					mu.Unlock()
					cm.logger.Warnf("cleanup: error cleaning up %s: %v", resource.Name(), err)
				} else {
					cm.logger.Debugf("cleanup: cleaned up %s", resource.Name())
				}
			}()
		}
	}()

	select {
	case <-done:
		return cleanupErrors
	case <-ctx.Done():
		cm.logger.Warnf("cleanup: timeout after %v, some resources may not have been cleaned up", cm.timeout)
		mu.Lock()
		defer mu.Unlock()
		return append(cleanupErrors, errors.New("cleanup timeout exceeded"))
	}
}
