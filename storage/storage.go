// Package storage keeps spreadsheets as opaque blobs addressed by bucket and key.
package storage

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"
)

// XLSXContentType is the media type stored with every workbook.
const XLSXContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ErrNotFound is returned when no object exists under a key.
var ErrNotFound = errors.New("object not found")

// Location returns the "bucket/key" form callers use to refer to a stored object.
func Location(bucket, key string) string {
	return bucket + "/" + key
}

// TrimBucket strips a leading "bucket/" from key, accepting both locations and plain keys.
func TrimBucket(bucket, key string) string {
	return strings.TrimPrefix(strings.TrimSpace(key), bucket+"/")
}

// Memory is an in-process object store.
type Memory struct {
	mu      sync.RWMutex
	objects map[string][]byte
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{objects: make(map[string][]byte)}
}

// Get returns a copy of the object under bucket/key.
func (m *Memory) Get(_ context.Context, bucket, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	data, ok := m.objects[Location(bucket, key)]
	if !ok {
		return nil, fmt.Errorf("get %s: %w", Location(bucket, key), ErrNotFound)
	}
	return append([]byte(nil), data...), nil
}

// Put stores a copy of data under bucket/key and returns its location.
func (m *Memory) Put(_ context.Context, bucket, key string, data []byte) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	loc := Location(bucket, key)
	m.objects[loc] = append([]byte(nil), data...)
	return loc, nil
}

// PresignGet returns a memory:// URL; it fails like MinIO would for a missing object.
func (m *Memory) PresignGet(_ context.Context, bucket, key string, ttl time.Duration) (string, error) {
	m.mu.RLock()
	_, ok := m.objects[Location(bucket, key)]
	m.mu.RUnlock()
	if !ok {
		return "", fmt.Errorf("presign %s: %w", Location(bucket, key), ErrNotFound)
	}

	u := url.URL{
		Scheme:   "memory",
		Host:     bucket,
		Path:     "/" + key,
		RawQuery: url.Values{"X-Amz-Expires": {strconv.Itoa(int(ttl.Seconds()))}}.Encode(),
	}
	return u.String(), nil
}

// Keys lists every stored location.
func (m *Memory) Keys() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	keys := make([]string, 0, len(m.objects))
	for k := range m.objects {
		keys = append(keys, k)
	}
	return keys
}
