package model

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/Laisky/errors/v2"
	"github.com/Laisky/zap"

	"github.com/Laisky/mcp-chat/common/helper"
	"github.com/Laisky/mcp-chat/common/logger"
)

// ConnectionStore owns the durable set of registered tool connections. Every
// mutation rewrites the full JSON snapshot before returning, so a successful
// response always reflects durable state. A single mutex serializes
// load-modify-save cycles; the snapshot is written to a temp file and renamed
// into place so concurrent process crashes cannot corrupt it.
type ConnectionStore struct {
	mu          sync.Mutex
	storageFile string
	connections []*Connection
	index       map[string]int
}

// NewConnectionStore opens the snapshot at storageFile. A missing file is
// initialized empty and written immediately; an unreadable or corrupt file
// starts the store empty and logs the condition instead of failing startup.
func NewConnectionStore(storageFile string) (*ConnectionStore, error) {
	store := &ConnectionStore{
		storageFile: storageFile,
		index:       make(map[string]int),
	}
	if err := store.Reload(); err != nil {
		return nil, err
	}
	return store, nil
}

// Add registers a new connection after enforcing URL uniqueness. On
// persistence failure the in-memory state is rolled back and the error is
// surfaced.
func (s *ConnectionStore) Add(name, description, rawURL string) (*Connection, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	url := NormalizeConnectionURL(rawURL)
	if url == "" {
		return nil, errors.New("connection url is required")
	}
	if _, ok := s.findByURLLocked(url); ok {
		return nil, errors.Wrapf(ErrDuplicateURL, "url %s", url)
	}

	connection := &Connection{
		Id:          helper.GenerateConnectionID(),
		Name:        name,
		Description: description,
		URL:         url,
		CreatedAt:   time.Now().UTC(),
	}
	s.connections = append(s.connections, connection)
	s.index[connection.Id] = len(s.connections) - 1

	if err := s.saveLocked(); err != nil {
		s.connections = s.connections[:len(s.connections)-1]
		delete(s.index, connection.Id)
		return nil, err
	}
	return cloneConnection(connection), nil
}

// Update merges the provided fields onto an existing connection and persists
// the result. Only name, description, and url are mutable.
func (s *ConnectionStore) Update(id string, updates ConnectionUpdate) (*Connection, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	pos, ok := s.index[id]
	if !ok {
		return nil, errors.Wrapf(ErrConnectionNotFound, "id %s", id)
	}

	previous := *s.connections[pos]
	connection := s.connections[pos]
	if updates.Name != nil {
		connection.Name = *updates.Name
	}
	if updates.Description != nil {
		connection.Description = *updates.Description
	}
	if updates.URL != nil {
		url := NormalizeConnectionURL(*updates.URL)
		if existing, ok := s.findByURLLocked(url); ok && existing.Id != id {
			*s.connections[pos] = previous
			return nil, errors.Wrapf(ErrDuplicateURL, "url %s", url)
		}
		connection.URL = url
	}

	if err := s.saveLocked(); err != nil {
		*s.connections[pos] = previous
		return nil, err
	}
	return cloneConnection(connection), nil
}

// Remove deletes a connection by id. It reports false when the id is unknown.
func (s *ConnectionStore) Remove(id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	pos, ok := s.index[id]
	if !ok {
		return false, nil
	}

	removed := s.connections[pos]
	s.connections = append(s.connections[:pos], s.connections[pos+1:]...)
	s.rebuildIndexLocked()

	if err := s.saveLocked(); err != nil {
		s.connections = append(s.connections[:pos], append([]*Connection{removed}, s.connections[pos:]...)...)
		s.rebuildIndexLocked()
		return false, err
	}
	return true, nil
}

// Get returns the connection with the given id, or nil when absent.
func (s *ConnectionStore) Get(id string) *Connection {
	s.mu.Lock()
	defer s.mu.Unlock()

	pos, ok := s.index[id]
	if !ok {
		return nil
	}
	return cloneConnection(s.connections[pos])
}

// List returns all connections in insertion order.
func (s *ConnectionStore) List() []*Connection {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]*Connection, 0, len(s.connections))
	for _, connection := range s.connections {
		out = append(out, cloneConnection(connection))
	}
	return out
}

// FindByURL returns the connection with the exact (normalized) URL, or nil.
func (s *ConnectionStore) FindByURL(rawURL string) *Connection {
	s.mu.Lock()
	defer s.mu.Unlock()

	connection, ok := s.findByURLLocked(NormalizeConnectionURL(rawURL))
	if !ok {
		return nil
	}
	return cloneConnection(connection)
}

// Reload discards in-memory state and re-reads the snapshot. A missing file
// is created empty so memory and disk never diverge; a corrupt file starts
// the store empty and is logged as a recoverable error.
func (s *ConnectionStore) Reload() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.connections = nil
	s.index = make(map[string]int)

	data, err := os.ReadFile(s.storageFile)
	if err != nil {
		if !os.IsNotExist(err) {
			return errors.Wrapf(err, "read connection snapshot %s", s.storageFile)
		}
		if err := s.saveLocked(); err != nil {
			return err
		}
		logger.Logger.Info("created new connection snapshot", zap.String("file", s.storageFile))
		return nil
	}

	var connections []*Connection
	if err := json.Unmarshal(data, &connections); err != nil {
		logger.Logger.Error("connection snapshot is corrupt, starting empty",
			zap.String("file", s.storageFile), zap.Error(err))
		return nil
	}

	s.connections = connections
	s.rebuildIndexLocked()
	logger.Logger.Info("loaded connection snapshot",
		zap.String("file", s.storageFile), zap.Int("count", len(connections)))
	return nil
}

// Backup writes the current snapshot to backupPath, or to a timestamped file
// next to the storage file when backupPath is empty. Live state is untouched.
func (s *ConnectionStore) Backup(backupPath string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if backupPath == "" {
		backupPath = filepath.Join(filepath.Dir(s.storageFile),
			fmt.Sprintf("mcp-connections-backup-%d.json", time.Now().UnixMilli()))
	}

	data, err := json.MarshalIndent(s.connections, "", "  ")
	if err != nil {
		return "", errors.Wrap(err, "marshal connection snapshot")
	}
	if err := os.WriteFile(backupPath, data, 0o644); err != nil {
		return "", errors.Wrapf(err, "write backup %s", backupPath)
	}
	return backupPath, nil
}

// Clear removes every connection and persists the empty snapshot.
func (s *ConnectionStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	previous := s.connections
	s.connections = nil
	s.index = make(map[string]int)

	if err := s.saveLocked(); err != nil {
		s.connections = previous
		s.rebuildIndexLocked()
		return err
	}
	return nil
}

// StorageStats summarizes the store for the maintenance endpoint.
type StorageStats struct {
	TotalConnections int           `json:"total_connections"`
	StorageFile      string        `json:"storage_file"`
	Connections      []*Connection `json:"connections"`
}

// Stats returns a snapshot of storage metadata.
func (s *ConnectionStore) Stats() StorageStats {
	return StorageStats{
		TotalConnections: len(s.List()),
		StorageFile:      s.storageFile,
		Connections:      s.List(),
	}
}

// StorageFile returns the snapshot path backing this store.
func (s *ConnectionStore) StorageFile() string {
	return s.storageFile
}

// saveLocked writes the full snapshot. Callers must hold the mutex. The write
// goes through a temp file and an atomic rename so a crash mid-write leaves
// the previous snapshot intact.
func (s *ConnectionStore) saveLocked() error {
	if s.connections == nil {
		// Persist an empty array rather than JSON null.
		s.connections = []*Connection{}
	}
	data, err := json.MarshalIndent(s.connections, "", "  ")
	if err != nil {
		return errors.Wrap(err, "marshal connection snapshot")
	}

	dir := filepath.Dir(s.storageFile)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.Wrapf(err, "create storage directory %s", dir)
	}

	tmp, err := os.CreateTemp(dir, ".mcp-connections-*.json")
	if err != nil {
		return errors.Wrap(err, "create temp snapshot")
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return errors.Wrap(err, "write temp snapshot")
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return errors.Wrap(err, "close temp snapshot")
	}
	if err := os.Rename(tmpName, s.storageFile); err != nil {
		_ = os.Remove(tmpName)
		return errors.Wrapf(err, "replace snapshot %s", s.storageFile)
	}
	return nil
}

func (s *ConnectionStore) rebuildIndexLocked() {
	s.index = make(map[string]int, len(s.connections))
	for i, connection := range s.connections {
		s.index[connection.Id] = i
	}
}

func (s *ConnectionStore) findByURLLocked(url string) (*Connection, bool) {
	for _, connection := range s.connections {
		if connection.URL == url {
			return connection, true
		}
	}
	return nil, false
}

func cloneConnection(connection *Connection) *Connection {
	if connection == nil {
		return nil
	}
	clone := *connection
	return &clone
}
