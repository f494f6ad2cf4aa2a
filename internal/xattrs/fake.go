package xattrs

import (
	"errors"
	"sync"
)

// FakeBackend is an in-memory Backend for deterministic tests. It maps
// path -> attribute name -> value and can be told to fail probes or
// removals to exercise error-swallowing paths.
type FakeBackend struct {
	mu    sync.Mutex
	attrs map[string]map[string]string

	// ProbeErr, when non-nil, is returned from every Probe call.
	ProbeErr error
	// RemoveErr, when non-nil, is returned from every Remove call without
	// mutating the attribute map.
	RemoveErr error
}

// NewFakeBackend creates an empty FakeBackend.
func NewFakeBackend() *FakeBackend {
	return &FakeBackend{attrs: make(map[string]map[string]string)}
}

// SetAttr records an attribute on path.
func (f *FakeBackend) SetAttr(path, name, value string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.attrs[path] == nil {
		f.attrs[path] = make(map[string]string)
	}
	f.attrs[path][name] = value
}

// HasAttr reports whether path currently carries the named attribute.
func (f *FakeBackend) HasAttr(path, name string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.attrs[path][name]
	return ok
}

// Name implements Backend.
func (f *FakeBackend) Name() string { return "fake" }

// Supported implements Backend.
func (f *FakeBackend) Supported() bool { return true }

// Probe implements Backend.
func (f *FakeBackend) Probe(path, name string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.ProbeErr != nil {
		return false, f.ProbeErr
	}
	_, ok := f.attrs[path][name]
	return ok, nil
}

// Remove implements Backend.
func (f *FakeBackend) Remove(path, name string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.RemoveErr != nil {
		return f.RemoveErr
	}
	if _, ok := f.attrs[path][name]; !ok {
		return errors.New("attribute not present")
	}
	delete(f.attrs[path], name)
	return nil
}
