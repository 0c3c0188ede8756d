// Package catalog keeps the named live objects that may be inspected from
// outside the process.
package catalog

import (
	"sync"

	"github.com/pkg/errors"
)

// Catalog is an insertion-ordered set of named objects.
type Catalog struct {
	mu      sync.RWMutex
	names   []string
	objects map[string]any
}

// New returns an empty catalog.
func New() *Catalog {
	return &Catalog{objects: make(map[string]any)}
}

// Add registers obj under name.
func (c *Catalog) Add(name string, obj any) error {
	if name == "" {
		return errors.New("object name must not be empty")
	}
	if obj == nil {
		return errors.Errorf("object %q is nil", name)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.objects[name]; ok {
		return errors.Errorf("object %q already registered", name)
	}
	c.names = append(c.names, name)
	c.objects[name] = obj
	return nil
}

// Get returns the object registered under name.
func (c *Catalog) Get(name string) (any, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	obj, ok := c.objects[name]
	return obj, ok
}

// Names lists the registered names in insertion order.
func (c *Catalog) Names() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]string(nil), c.names...)
}
