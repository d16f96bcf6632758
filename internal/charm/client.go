// ABOUTME: Charm KV client wrapper for backing up pyramid data.
// ABOUTME: Provides thread-safe initialization, read-only detection and cloud sync.
package charm

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/charmbracelet/charm/client"
	"github.com/charmbracelet/charm/kv"
)

const (
	// DBName is the Charm KV database name.
	DBName      = "pyramid"
	// DefaultHost is used when CHARM_HOST is unset.
	DefaultHost = "charm.2389.dev"

	// CatalogKey holds the JSON-encoded catalog.
	CatalogKey = "catalog"
	// DayPrefix prefixes one key per day record: day:<YYYY-MM-DD>.
	DayPrefix = "day:"
)

// ErrReadOnly is returned for writes while another process holds the KV lock.
var ErrReadOnly = errors.New("cannot write: database is locked by another process (MCP server?)")

// store is the subset of *kv.KV the client uses.
type store interface {
	Set(key, value []byte) error
	Get(key []byte) ([]byte, error)
	Delete(key []byte) error
	Keys() ([][]byte, error)
	Sync() error
	IsReadOnly() bool
	Close() error
}

var (
	globalClient *Client
	clientOnce   sync.Once
	clientErr    error
)

// Client wraps a Charm KV database.
type Client struct {
	kv       store
	autoSync bool
	mu       sync.RWMutex
}

// NewClient wraps an already opened KV store.
func NewClient(s store) *Client {
	return &Client{kv: s, autoSync: true}
}

// InitClient initializes the global Charm client.
// Thread-safe; can be called multiple times.
func InitClient() (*Client, error) {
	clientOnce.Do(func() {
		// Set server before opening KV
		if os.Getenv("CHARM_HOST") == "" {
			if err := os.Setenv("CHARM_HOST", DefaultHost); err != nil {
				clientErr = err
				return
			}
		}

		db, err := kv.OpenWithDefaultsFallback(DBName)
		if err != nil {
			clientErr = err
			return
		}

		globalClient = NewClient(db)

		// Pull remote data on startup (skip in read-only mode)
		if !db.IsReadOnly() {
			_ = db.Sync()
		}
	})

	return globalClient, clientErr
}

// Close closes the KV database connection.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.kv != nil {
		return c.kv.Close()
	}
	return nil
}

// IsReadOnly returns true if the database is open in read-only mode.
// This happens when another process (like an MCP server) holds the lock.
func (c *Client) IsReadOnly() bool {
	return c.kv.IsReadOnly()
}

// Sync synchronizes local state with Charm Cloud.
func (c *Client) Sync() error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.kv.IsReadOnly() {
		return nil
	}
	return c.kv.Sync()
}

// syncIfEnabled calls Sync if autoSync is enabled.
func (c *Client) syncIfEnabled() {
	if c.autoSync && !c.kv.IsReadOnly() {
		_ = c.kv.Sync()
	}
}

// SetAutoSync enables or disables automatic sync after writes.
func (c *Client) SetAutoSync(enabled bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.autoSync = enabled
}

// ID returns the Charm user ID for the current account.
func (c *Client) ID() (string, error) {
	cc, err := client.NewClientWithDefaults()
	if err != nil {
		return "", fmt.Errorf("create charm client: %w", err)
	}
	return cc.ID()
}

// set stores a value with the given key.
func (c *Client) set(key string, data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.kv.IsReadOnly() {
		return ErrReadOnly
	}

	if err := c.kv.Set([]byte(key), data); err != nil {
		return err
	}
	c.syncIfEnabled()
	return nil
}

// get returns the value stored under key.
func (c *Client) get(key string) ([]byte, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.kv.Get([]byte(key))
}

// delete removes a key.
func (c *Client) delete(key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.kv.IsReadOnly() {
		return ErrReadOnly
	}

	if err := c.kv.Delete([]byte(key)); err != nil {
		return err
	}
	c.syncIfEnabled()
	return nil
}

// keysByPrefix returns every key starting with prefix.
func (c *Client) keysByPrefix(prefix string) ([]string, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	keys, err := c.kv.Keys()
	if err != nil {
		return nil, err
	}

	var matches []string
	prefixBytes := []byte(prefix)
	for _, key := range keys {
		if bytes.HasPrefix(key, prefixBytes) {
			matches = append(matches, string(key))
		}
	}
	return matches, nil
}

// hasKey reports whether key exists.
func (c *Client) hasKey(key string) (bool, error) {
	keys, err := c.keysByPrefix(key)
	if err != nil {
		return false, err
	}
	for _, k := range keys {
		if k == key {
			return true, nil
		}
	}
	return false, nil
}
