// Package credentials persists the user's API key pair in a storage.Store
// and announces updates on an event bus.
package credentials

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/getmockd/apputil/pkg/events"
	"github.com/getmockd/apputil/pkg/logging"
	"github.com/getmockd/apputil/pkg/storage"
)

// ItemName is the storage item holding the encoded credentials.
const ItemName = "credentials"

// EventUpdated is published after credentials are stored.
const EventUpdated = "credentials:updated"

// ErrNotFound is returned by Get when no credentials are stored.
var ErrNotFound = errors.New("credentials not found")

// Credentials is a user's API key pair.
type Credentials struct {
	Key    string `json:"key"`
	Secret string `json:"secret"`
}

// Redacted returns a copy safe for logs: the secret is masked and only the
// last four characters of the key are kept.
func (c Credentials) Redacted() Credentials {
	r := Credentials{Key: mask(c.Key, 4)}
	if c.Secret != "" {
		r.Secret = "********"
	}
	return r
}

func mask(s string, keep int) string {
	if len(s) <= keep {
		return strings.Repeat("*", len(s))
	}
	return strings.Repeat("*", len(s)-keep) + s[len(s)-keep:]
}

// Manager loads and stores credentials.
type Manager struct {
	store     storage.Store
	publisher events.Publisher
	log       *slog.Logger
}

// NewManager creates a Manager. publisher and log may be nil.
func NewManager(store storage.Store, publisher events.Publisher, log *slog.Logger) *Manager {
	if log == nil {
		log = logging.Nop()
	}
	return &Manager{
		store:     store,
		publisher: publisher,
		log:       log,
	}
}

// Get loads the stored credentials. It returns ErrNotFound when nothing is
// stored and a wrapped decode error when the item is not valid JSON.
func (m *Manager) Get(ctx context.Context) (Credentials, error) {
	v, ok, err := m.store.GetItem(ctx, ItemName)
	if err != nil {
		return Credentials{}, fmt.Errorf("load credentials: %w", err)
	}
	if !ok {
		return Credentials{}, ErrNotFound
	}

	var c Credentials
	if err := json.Unmarshal([]byte(v), &c); err != nil {
		return Credentials{}, fmt.Errorf("decode credentials: %w", err)
	}
	return c, nil
}

// Set stores c and then publishes EventUpdated.
func (m *Manager) Set(ctx context.Context, c Credentials) error {
	data, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("encode credentials: %w", err)
	}
	if err := m.store.SetItem(ctx, ItemName, string(data)); err != nil {
		return fmt.Errorf("store credentials: %w", err)
	}
	m.log.Debug("credentials stored", "key", c.Redacted().Key)

	if m.publisher == nil {
		return nil
	}
	if err := m.publisher.Publish(ctx, events.Event{Name: EventUpdated}); err != nil {
		m.log.Warn("failed to publish credentials update", "error", err)
	}
	return nil
}
