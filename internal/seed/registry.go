// Package seed ships a small catalog of known-good generation payloads.
// The payloads exercise the full ingestion path without a live model, so
// the CLI can run end to end offline and the pipeline has realistic
// fixtures to validate against.
package seed

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
	"sync"
)

//go:embed payloads/*.json
var payloadFS embed.FS

// Well-known payload names.
const (
	ReadingMaterial = "reading_material"
	QuestionBatch   = "question_batch"
)

// Registry provides access to the embedded seed payloads.
type Registry struct {
	mu       sync.RWMutex
	payloads map[string]string
	loaded   bool
}

// NewRegistry creates an empty seed registry.
func NewRegistry() *Registry {
	return &Registry{payloads: make(map[string]string)}
}

// Load reads all embedded payloads into memory.
func (r *Registry) Load() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	entries, err := fs.ReadDir(payloadFS, "payloads")
	if err != nil {
		return fmt.Errorf("read payload directory: %w", err)
	}
	for _, entry := range entries {
		data, err := payloadFS.ReadFile(path.Join("payloads", entry.Name()))
		if err != nil {
			return fmt.Errorf("read payload %s: %w", entry.Name(), err)
		}
		name := strings.TrimSuffix(entry.Name(), ".json")
		r.payloads[name] = string(data)
	}
	r.loaded = true
	return nil
}

// Get returns a payload by name.
func (r *Registry) Get(name string) (string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	payload, ok := r.payloads[name]
	if !ok {
		return "", fmt.Errorf("seed payload not found: %s", name)
	}
	return payload, nil
}

// Names returns all payload names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.payloads))
	for name := range r.payloads {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
