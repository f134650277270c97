package model

import (
	"encoding/json"
	"sync"

	"github.com/getmockd/apputil/pkg/property"
)

// Collection is an ordered list of models.
type Collection struct {
	mu     sync.RWMutex
	models []*Model
}

// NewCollection creates a collection from items. See Add for the accepted
// item types.
func NewCollection(items ...any) *Collection {
	c := &Collection{}
	c.Add(items...)
	return c
}

// Add appends items. An item is either a *Model or a map[string]any,
// which is wrapped in a new model. Other values are ignored.
func (c *Collection) Add(items ...any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, item := range items {
		switch v := item.(type) {
		case *Model:
			if v != nil {
				c.models = append(c.models, v)
			}
		case map[string]any:
			c.models = append(c.models, New(v))
		}
	}
}

// At returns the model at index. Negative indexes count from the end.
func (c *Collection) At(index int) (any, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if index < 0 {
		index += len(c.models)
	}
	if index < 0 || index >= len(c.models) {
		return nil, false
	}
	return c.models[index], true
}

// Get returns the model whose id or cid equals key.
func (c *Collection) Get(key string) (any, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, m := range c.models {
		if m.ID() == key || m.CID() == key {
			return m, true
		}
	}
	return nil, false
}

// Remove deletes the model whose id or cid equals key.
func (c *Collection) Remove(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i, m := range c.models {
		if m.ID() == key || m.CID() == key {
			c.models = append(c.models[:i], c.models[i+1:]...)
			return true
		}
	}
	return false
}

// Len returns the number of models.
func (c *Collection) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.models)
}

// Models returns a copy of the model list.
func (c *Collection) Models() []*Model {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]*Model, len(c.models))
	copy(out, c.models)
	return out
}

// Field exposes "length" and "models".
func (c *Collection) Field(name string) (any, bool) {
	switch name {
	case "length":
		return c.Len(), true
	case "models":
		return c.Models(), true
	}
	return nil, false
}

// ToSlice converts every model to its attribute map.
func (c *Collection) ToSlice() []any {
	models := c.Models()
	out := make([]any, len(models))
	for i, m := range models {
		out[i] = m.ToMap()
	}
	return out
}

// MarshalJSON encodes the collection as an array of attribute objects.
func (c *Collection) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.ToSlice())
}

var (
	_ property.Getter      = (*Collection)(nil)
	_ property.Indexer     = (*Collection)(nil)
	_ property.FieldReader = (*Collection)(nil)
)
